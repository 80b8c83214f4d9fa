package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/onerilhan/go-betting-api/internal/models"
	"github.com/onerilhan/go-betting-api/internal/svcerr"
)

// newTestTx sqlmock üzerinden gerçek bir *sql.Tx üretir
func newTestTx(t *testing.T) (*sql.Tx, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, smock, err := sqlmock.New()
	assert.NoError(t, err)

	smock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	return tx, smock, func() { db.Close() }
}

// TestBalanceService_CreditTx_Success bakiye artışının yeni bakiyeyi döndüğünü test eder.
func TestBalanceService_CreditTx_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	balanceService := NewBalanceService(mockUserRepo)

	tx, _, cleanup := newTestTx(t)
	defer cleanup()

	mockUserRepo.On("GetBalanceForUpdateTx", tx, 1).Return(int64(5000), nil)
	mockUserRepo.On("UpdateBalanceTx", tx, 1, int64(7500)).Return(nil)

	// Act
	newBalance, err := balanceService.CreditTx(tx, 1, 2500)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(7500), newBalance)
	mockUserRepo.AssertExpectations(t)
}

// TestBalanceService_DebitTx_Success bakiye düşümünün yeni bakiyeyi döndüğünü test eder.
func TestBalanceService_DebitTx_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	balanceService := NewBalanceService(mockUserRepo)

	tx, _, cleanup := newTestTx(t)
	defer cleanup()

	mockUserRepo.On("GetBalanceForUpdateTx", tx, 1).Return(int64(5000), nil)
	mockUserRepo.On("UpdateBalanceTx", tx, 1, int64(3000)).Return(nil)

	// Act
	newBalance, err := balanceService.DebitTx(tx, 1, 2000)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(3000), newBalance)
	mockUserRepo.AssertExpectations(t)
}

// TestBalanceService_DebitTx_InsufficientFunds yetersiz bakiyede hiçbir
// yazma olmadan ErrInsufficientFunds dönmesini test eder.
func TestBalanceService_DebitTx_InsufficientFunds(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	balanceService := NewBalanceService(mockUserRepo)

	tx, _, cleanup := newTestTx(t)
	defer cleanup()

	mockUserRepo.On("GetBalanceForUpdateTx", tx, 1).Return(int64(1000), nil)

	// Act
	_, err := balanceService.DebitTx(tx, 1, 2000)

	// Assert
	assert.ErrorIs(t, err, svcerr.ErrInsufficientFunds)
	mockUserRepo.AssertNotCalled(t, "UpdateBalanceTx", mock.Anything, mock.Anything, mock.Anything)
}

// TestBalanceService_DebitTx_ExactBalance bakiyenin tamamının çekilebildiğini test eder.
func TestBalanceService_DebitTx_ExactBalance(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	balanceService := NewBalanceService(mockUserRepo)

	tx, _, cleanup := newTestTx(t)
	defer cleanup()

	mockUserRepo.On("GetBalanceForUpdateTx", tx, 1).Return(int64(2000), nil)
	mockUserRepo.On("UpdateBalanceTx", tx, 1, int64(0)).Return(nil)

	// Act
	newBalance, err := balanceService.DebitTx(tx, 1, 2000)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(0), newBalance)
	mockUserRepo.AssertExpectations(t)
}

// TestBalanceService_CreditTx_NonPositiveAmount sıfır veya negatif tutarın reddedildiğini test eder.
func TestBalanceService_CreditTx_NonPositiveAmount(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	balanceService := NewBalanceService(mockUserRepo)

	tx, _, cleanup := newTestTx(t)
	defer cleanup()

	// Act & Assert
	_, err := balanceService.CreditTx(tx, 1, 0)
	assert.Error(t, err)

	_, err = balanceService.DebitTx(tx, 1, -500)
	assert.Error(t, err)

	mockUserRepo.AssertNotCalled(t, "GetBalanceForUpdateTx", mock.Anything, mock.Anything)
}

// TestBalanceService_GetBalance kullanıcının güncel bakiyesini döndüğünü test eder.
func TestBalanceService_GetBalance(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	balanceService := NewBalanceService(mockUserRepo)

	mockUserRepo.On("GetByID", 7).Return(&models.User{ID: 7, Balance: 12345}, nil)

	// Act
	balance, err := balanceService.GetBalance(7)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(12345), balance)
	mockUserRepo.AssertExpectations(t)
}
