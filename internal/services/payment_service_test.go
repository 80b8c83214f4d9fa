package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/onerilhan/go-betting-api/internal/banking"
	"github.com/onerilhan/go-betting-api/internal/models"
	"github.com/onerilhan/go-betting-api/internal/svcerr"
)

const testMinAmount = int64(10000)

// TestPaymentService_InitDeposit_Success yatırma başlatmanın ödeme URL'si
// döndürdüğünü ve bakiyeye dokunmadığını test eder.
func TestPaymentService_InitDeposit_Success(t *testing.T) {
	// Arrange
	mockPaymentRepo := new(MockPaymentRepository)
	mockUserRepo := new(MockUserRepository)
	mockBalance := new(MockBalanceService)
	mockBank := new(MockBankClient)

	paymentService := NewPaymentService(nil, mockPaymentRepo, new(MockTransactionRepository), mockUserRepo, mockBalance, mockBank, testMinAmount)

	mockUserRepo.On("GetByID", 1).Return(&models.User{ID: 1}, nil)
	mockPaymentRepo.On("Create", mock.MatchedBy(func(p *models.Payment) bool {
		return p.UserID == 1 && p.Amount == 50000 &&
			p.Type == models.PaymentTypeDeposit && p.Status == models.PaymentStatusPending
	})).Return(&models.Payment{ID: 7, UserID: 1, Amount: 50000, Status: models.PaymentStatusPending}, nil)
	mockBank.On("InitPayment", mock.Anything, int64(50000), "deposit_7").Return(&banking.InitPaymentResponse{
		PaymentID:  "mock_abc",
		PaymentURL: "http://localhost:3000/mock-payment/mock_abc",
		OrderID:    "deposit_7",
	}, nil)
	mockPaymentRepo.On("UpdateExternalInfo", 7, "mock_abc", "http://localhost:3000/mock-payment/mock_abc").Return(nil)

	// Act
	response, err := paymentService.InitDeposit(context.Background(), 1, &models.InitDepositRequest{Amount: 50000})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 7, response.PaymentID)
	assert.NotEmpty(t, response.PaymentURL)
	mockBalance.AssertNotCalled(t, "CreditTx", mock.Anything, mock.Anything, mock.Anything)
	mockPaymentRepo.AssertExpectations(t)
}

// TestPaymentService_InitDeposit_BelowMinimum minimum tutarın altındaki isteğin reddedildiğini test eder.
func TestPaymentService_InitDeposit_BelowMinimum(t *testing.T) {
	// Arrange
	mockPaymentRepo := new(MockPaymentRepository)
	paymentService := NewPaymentService(nil, mockPaymentRepo, new(MockTransactionRepository), new(MockUserRepository), new(MockBalanceService), new(MockBankClient), testMinAmount)

	// Act
	_, err := paymentService.InitDeposit(context.Background(), 1, &models.InitDepositRequest{Amount: 500})

	// Assert
	assert.ErrorIs(t, err, svcerr.ErrInvalidState)
	mockPaymentRepo.AssertNotCalled(t, "Create", mock.Anything)
}

// TestPaymentService_InitDeposit_BankFailure banka init hatasında kaydın
// pending kaldığını ve ErrExternalService döndüğünü test eder.
func TestPaymentService_InitDeposit_BankFailure(t *testing.T) {
	// Arrange
	mockPaymentRepo := new(MockPaymentRepository)
	mockUserRepo := new(MockUserRepository)
	mockBank := new(MockBankClient)

	paymentService := NewPaymentService(nil, mockPaymentRepo, new(MockTransactionRepository), mockUserRepo, new(MockBalanceService), mockBank, testMinAmount)

	mockUserRepo.On("GetByID", 1).Return(&models.User{ID: 1}, nil)
	mockPaymentRepo.On("Create", mock.Anything).Return(&models.Payment{ID: 7}, nil)
	mockBank.On("InitPayment", mock.Anything, int64(50000), "deposit_7").Return(nil, errors.New("bağlantı zaman aşımı"))

	// Act
	_, err := paymentService.InitDeposit(context.Background(), 1, &models.InitDepositRequest{Amount: 50000})

	// Assert
	assert.ErrorIs(t, err, svcerr.ErrExternalService)
	mockPaymentRepo.AssertNotCalled(t, "UpdateExternalInfo", mock.Anything, mock.Anything, mock.Anything)
}

// TestPaymentService_InitWithdrawal_Success çekme akışını test eder:
// bakiye banka çağrısından önce düşülür, kart maskesi kaydedilir,
// ledger satırı ödemeye bağlanır.
func TestPaymentService_InitWithdrawal_Success(t *testing.T) {
	// Arrange
	db, smock, cleanup := newTestDB(t)
	defer cleanup()

	mockPaymentRepo := new(MockPaymentRepository)
	mockTxRepo := new(MockTransactionRepository)
	mockBalance := new(MockBalanceService)
	mockBank := new(MockBankClient)

	paymentService := NewPaymentService(db, mockPaymentRepo, mockTxRepo, new(MockUserRepository), mockBalance, mockBank, testMinAmount)

	smock.ExpectBegin()
	smock.ExpectCommit()

	mockBalance.On("DebitTx", mock.Anything, 1, int64(30000)).Return(int64(20000), nil)
	mockPaymentRepo.On("CreateTx", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
		return p.Type == models.PaymentTypeWithdrawal &&
			p.Status == models.PaymentStatusProcessing &&
			p.CardMask != nil && *p.CardMask == "1234 **** **** 3456"
	})).Return(&models.Payment{ID: 8, UserID: 1, Amount: 30000, Status: models.PaymentStatusProcessing}, nil)
	mockTxRepo.On("CreateTx", mock.Anything, mock.MatchedBy(func(tr *models.Transaction) bool {
		return tr.Type == models.TransactionTypeBet && tr.BalanceAfter == 20000 &&
			tr.PaymentID != nil && *tr.PaymentID == 8
	})).Return(&models.Transaction{ID: 200}, nil)
	mockPaymentRepo.On("LinkTransactionTx", mock.Anything, 8, 200).Return(nil)
	mockBank.On("InitPayout", mock.Anything, int64(30000), "1234567890123456").Return(&banking.InitPayoutResponse{
		PayoutID: "payout_xyz",
		Status:   "PROCESSING",
	}, nil)
	mockPaymentRepo.On("UpdateExternalID", 8, "payout_xyz").Return(nil)

	// Act
	response, err := paymentService.InitWithdrawal(context.Background(), 1, &models.InitWithdrawalRequest{
		Amount:     30000,
		CardNumber: "1234567890123456",
	})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 8, response.PayoutID)
	assert.Equal(t, models.PaymentStatusProcessing, response.Status)
	assert.NoError(t, smock.ExpectationsWereMet())
	mockPaymentRepo.AssertExpectations(t)
}

// TestPaymentService_InitWithdrawal_BankFailure banka payout hatasında
// düşümün commit edilmiş kaldığını ve ErrExternalService döndüğünü test eder.
func TestPaymentService_InitWithdrawal_BankFailure(t *testing.T) {
	// Arrange
	db, smock, cleanup := newTestDB(t)
	defer cleanup()

	mockPaymentRepo := new(MockPaymentRepository)
	mockTxRepo := new(MockTransactionRepository)
	mockBalance := new(MockBalanceService)
	mockBank := new(MockBankClient)

	paymentService := NewPaymentService(db, mockPaymentRepo, mockTxRepo, new(MockUserRepository), mockBalance, mockBank, testMinAmount)

	smock.ExpectBegin()
	smock.ExpectCommit()

	mockBalance.On("DebitTx", mock.Anything, 1, int64(30000)).Return(int64(20000), nil)
	mockPaymentRepo.On("CreateTx", mock.Anything, mock.Anything).Return(&models.Payment{ID: 8}, nil)
	mockTxRepo.On("CreateTx", mock.Anything, mock.Anything).Return(&models.Transaction{ID: 200}, nil)
	mockPaymentRepo.On("LinkTransactionTx", mock.Anything, 8, 200).Return(nil)
	mockBank.On("InitPayout", mock.Anything, int64(30000), mock.Anything).Return(nil, errors.New("banka erişilemez"))

	// Act
	_, err := paymentService.InitWithdrawal(context.Background(), 1, &models.InitWithdrawalRequest{
		Amount:     30000,
		CardNumber: "1234567890123456",
	})

	// Assert
	assert.ErrorIs(t, err, svcerr.ErrExternalService)
	// Transaction commit edilmiş olmalı: düşüm geri alınmaz, kayıt processing kalır
	assert.NoError(t, smock.ExpectationsWereMet())
	mockPaymentRepo.AssertNotCalled(t, "UpdateExternalID", mock.Anything, mock.Anything)
}

// TestPaymentService_HandleWebhook_DepositSuccess SUCCESS webhook'unda
// bakiyeye kredi ve deposit ledger satırı yazıldığını test eder.
func TestPaymentService_HandleWebhook_DepositSuccess(t *testing.T) {
	// Arrange
	db, smock, cleanup := newTestDB(t)
	defer cleanup()

	mockPaymentRepo := new(MockPaymentRepository)
	mockTxRepo := new(MockTransactionRepository)
	mockBalance := new(MockBalanceService)

	paymentService := NewPaymentService(db, mockPaymentRepo, mockTxRepo, new(MockUserRepository), mockBalance, new(MockBankClient), testMinAmount)

	smock.ExpectBegin()
	smock.ExpectCommit()

	externalID := "mock_abc"
	mockPaymentRepo.On("GetByExternalIDForUpdateTx", mock.Anything, externalID).Return(&models.Payment{
		ID:     7,
		UserID: 1,
		Amount: 50000,
		Type:   models.PaymentTypeDeposit,
		Status: models.PaymentStatusPending,
	}, nil)
	mockBalance.On("CreditTx", mock.Anything, 1, int64(50000)).Return(int64(50000), nil)
	mockTxRepo.On("CreateTx", mock.Anything, mock.MatchedBy(func(tr *models.Transaction) bool {
		return tr.Type == models.TransactionTypeDeposit && tr.Amount == 50000 && tr.BalanceAfter == 50000
	})).Return(&models.Transaction{ID: 300}, nil)
	mockPaymentRepo.On("MarkCompletedTx", mock.Anything, 7, mock.MatchedBy(func(id *int) bool {
		return id != nil && *id == 300
	})).Return(nil)

	// Act
	err := paymentService.HandleWebhook(&banking.Webhook{
		PaymentID: externalID,
		Amount:    50000,
		Status:    banking.WebhookStatusSuccess,
		Timestamp: time.Now(),
	})

	// Assert
	assert.NoError(t, err)
	mockPaymentRepo.AssertExpectations(t)
	mockBalance.AssertExpectations(t)
}

// TestPaymentService_HandleWebhook_DuplicateIsNoop terminal ödemeye gelen
// ikinci webhook'un hiçbir şey yazmadığını test eder.
func TestPaymentService_HandleWebhook_DuplicateIsNoop(t *testing.T) {
	// Arrange
	db, smock, cleanup := newTestDB(t)
	defer cleanup()

	mockPaymentRepo := new(MockPaymentRepository)
	mockBalance := new(MockBalanceService)

	paymentService := NewPaymentService(db, mockPaymentRepo, new(MockTransactionRepository), new(MockUserRepository), mockBalance, new(MockBankClient), testMinAmount)

	smock.ExpectBegin()
	smock.ExpectCommit()

	mockPaymentRepo.On("GetByExternalIDForUpdateTx", mock.Anything, "mock_abc").Return(&models.Payment{
		ID:     7,
		UserID: 1,
		Amount: 50000,
		Type:   models.PaymentTypeDeposit,
		Status: models.PaymentStatusCompleted,
	}, nil)

	// Act
	err := paymentService.HandleWebhook(&banking.Webhook{
		PaymentID: "mock_abc",
		Status:    banking.WebhookStatusSuccess,
	})

	// Assert
	assert.NoError(t, err)
	mockBalance.AssertNotCalled(t, "CreditTx", mock.Anything, mock.Anything, mock.Anything)
	mockPaymentRepo.AssertNotCalled(t, "MarkCompletedTx", mock.Anything, mock.Anything, mock.Anything)
}

// TestPaymentService_HandleWebhook_PayoutFailed başarısız payout'ta peşin
// düşülen tutarın telafi iadesiyle geri verildiğini test eder.
func TestPaymentService_HandleWebhook_PayoutFailed(t *testing.T) {
	// Arrange
	db, smock, cleanup := newTestDB(t)
	defer cleanup()

	mockPaymentRepo := new(MockPaymentRepository)
	mockTxRepo := new(MockTransactionRepository)
	mockBalance := new(MockBalanceService)

	paymentService := NewPaymentService(db, mockPaymentRepo, mockTxRepo, new(MockUserRepository), mockBalance, new(MockBankClient), testMinAmount)

	smock.ExpectBegin()
	smock.ExpectCommit()

	externalID := "payout_xyz"
	mockPaymentRepo.On("GetByExternalIDForUpdateTx", mock.Anything, externalID).Return(&models.Payment{
		ID:     8,
		UserID: 1,
		Amount: 30000,
		Type:   models.PaymentTypeWithdrawal,
		Status: models.PaymentStatusProcessing,
	}, nil)
	mockBalance.On("CreditTx", mock.Anything, 1, int64(30000)).Return(int64(50000), nil)
	mockTxRepo.On("CreateTx", mock.Anything, mock.MatchedBy(func(tr *models.Transaction) bool {
		return tr.Type == models.TransactionTypeBetRefund && tr.Amount == 30000 && tr.BalanceAfter == 50000
	})).Return(&models.Transaction{ID: 301}, nil)
	mockPaymentRepo.On("MarkFailedTx", mock.Anything, 8, "Çekim banka tarafından reddedildi").Return(nil)

	// Act
	err := paymentService.HandleWebhook(&banking.Webhook{
		PaymentID:    externalID,
		Status:       banking.WebhookStatusFailed,
		ErrorMessage: "Çekim banka tarafından reddedildi",
	})

	// Assert
	assert.NoError(t, err)
	mockBalance.AssertExpectations(t)
	mockTxRepo.AssertExpectations(t)
	mockPaymentRepo.AssertExpectations(t)
}

// TestPaymentService_HandleWebhook_PayoutSuccess başarılı payout'ta sadece
// kaydın kapandığını, bakiyeye dokunulmadığını test eder.
func TestPaymentService_HandleWebhook_PayoutSuccess(t *testing.T) {
	// Arrange
	db, smock, cleanup := newTestDB(t)
	defer cleanup()

	mockPaymentRepo := new(MockPaymentRepository)
	mockBalance := new(MockBalanceService)

	paymentService := NewPaymentService(db, mockPaymentRepo, new(MockTransactionRepository), new(MockUserRepository), mockBalance, new(MockBankClient), testMinAmount)

	smock.ExpectBegin()
	smock.ExpectCommit()

	mockPaymentRepo.On("GetByExternalIDForUpdateTx", mock.Anything, "payout_xyz").Return(&models.Payment{
		ID:     8,
		UserID: 1,
		Amount: 30000,
		Type:   models.PaymentTypeWithdrawal,
		Status: models.PaymentStatusProcessing,
	}, nil)
	mockPaymentRepo.On("MarkCompletedTx", mock.Anything, 8, (*int)(nil)).Return(nil)

	// Act
	err := paymentService.HandleWebhook(&banking.Webhook{
		PaymentID: "payout_xyz",
		Status:    banking.WebhookStatusSuccess,
	})

	// Assert
	assert.NoError(t, err)
	mockBalance.AssertNotCalled(t, "CreditTx", mock.Anything, mock.Anything, mock.Anything)
	mockPaymentRepo.AssertExpectations(t)
}

// TestMaskCardNumber kart maskeleme formatını test eder.
func TestMaskCardNumber(t *testing.T) {
	// Act & Assert
	mask, err := MaskCardNumber("1234567890127890")
	assert.NoError(t, err)
	assert.Equal(t, "1234 **** **** 7890", mask)

	// Boşluklu giriş de kabul edilir
	mask, err = MaskCardNumber("1234 5678 9012 7890")
	assert.NoError(t, err)
	assert.Equal(t, "1234 **** **** 7890", mask)

	// Geçersiz girişler
	_, err = MaskCardNumber("123")
	assert.Error(t, err)

	_, err = MaskCardNumber("1234abcd90127890")
	assert.Error(t, err)
}
