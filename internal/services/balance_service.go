package services

import (
	"database/sql"
	"fmt"

	"github.com/onerilhan/go-betting-api/internal/interfaces"
	"github.com/onerilhan/go-betting-api/internal/svcerr"
)

// BalanceService bakiye business logic'i.
// Bakiyeye dokunan tek katman budur: her değişiklik FOR UPDATE kilidi
// altında okunan güncel değer üzerinden hesaplanır ve yeni bakiye döner.
// Çağıran, dönen değeri aynı transaction'daki ledger satırının
// balance_after alanına yazmakla yükümlüdür.
type BalanceService struct {
	userRepo interfaces.UserRepositoryInterface
}

// NewBalanceService yeni service oluşturur
func NewBalanceService(userRepo interfaces.UserRepositoryInterface) *BalanceService {
	return &BalanceService{userRepo: userRepo}
}

// GetBalance kullanıcının güncel bakiyesini döner
func (s *BalanceService) GetBalance(userID int) (int64, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}

	return user.Balance, nil
}

// CreditTx bakiyeyi transaction içinde artırır ve yeni bakiyeyi döner
func (s *BalanceService) CreditTx(tx *sql.Tx, userID int, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("kredi tutarı pozitif olmalı: %d", amount)
	}

	current, err := s.userRepo.GetBalanceForUpdateTx(tx, userID)
	if err != nil {
		return 0, err
	}

	newBalance := current + amount
	if err := s.userRepo.UpdateBalanceTx(tx, userID, newBalance); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// DebitTx bakiyeyi transaction içinde azaltır ve yeni bakiyeyi döner.
// Bakiye yetersizse svcerr.ErrInsufficientFunds döner ve hiçbir şey yazılmaz.
func (s *BalanceService) DebitTx(tx *sql.Tx, userID int, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("düşüm tutarı pozitif olmalı: %d", amount)
	}

	current, err := s.userRepo.GetBalanceForUpdateTx(tx, userID)
	if err != nil {
		return 0, err
	}

	if current < amount {
		return 0, fmt.Errorf("bakiye %d, istenen %d: %w", current, amount, svcerr.ErrInsufficientFunds)
	}

	newBalance := current - amount
	if err := s.userRepo.UpdateBalanceTx(tx, userID, newBalance); err != nil {
		return 0, err
	}

	return newBalance, nil
}
