package repository

import (
	"database/sql"
	"fmt"

	"github.com/onerilhan/go-betting-api/internal/models"
)

// TransactionRepository ledger database işlemleri.
// Ledger append-only'dir: bu repository bilinçli olarak update/delete
// metodu taşımaz; düzeltmeler yeni telafi satırlarıyla yapılır.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository yeni repository oluşturur
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateTx yeni ledger satırını transaction içinde yazar.
// BalanceAfter, aynı transaction'da az önce yazılan bakiyeye eşit olmalı;
// bu eşleşme çağıranın sorumluluğudur (BalanceService dönüş değeri kullanılır).
func (r *TransactionRepository) CreateTx(tx *sql.Tx, t *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, type, amount, balance_after, description, bet_id, payment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := tx.QueryRow(query, t.UserID, t.Type, t.Amount, t.BalanceAfter, t.Description, t.BetID, t.PaymentID).Scan(
		&t.ID,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ledger kaydı oluşturulamadı: %w", err)
	}

	return t, nil
}

// GetByUserID kullanıcının ledger geçmişini getirir (en yeni önce)
func (r *TransactionRepository) GetByUserID(userID, limit, offset int) ([]*models.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, balance_after, COALESCE(description, ''), bet_id, payment_id, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ledger geçmişi sorgusu hatası: %w", err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Type,
			&t.Amount,
			&t.BalanceAfter,
			&t.Description,
			&t.BetID,
			&t.PaymentID,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ledger scan hatası: %w", err)
		}
		transactions = append(transactions, &t)
	}

	return transactions, rows.Err()
}
