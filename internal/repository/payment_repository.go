package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/onerilhan/go-betting-api/internal/models"
	"github.com/onerilhan/go-betting-api/internal/svcerr"
)

// PaymentRepository ödeme database işlemleri
type PaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository yeni repository oluşturur
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create yeni ödeme kaydı oluşturur (yatırma akışı, transaction dışı)
func (r *PaymentRepository) Create(p *models.Payment) (*models.Payment, error) {
	query := `
		INSERT INTO payments (user_id, amount, type, status, card_mask)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(query, p.UserID, p.Amount, p.Type, p.Status, p.CardMask).Scan(
		&p.ID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ödeme kaydı oluşturulamadı: %w", err)
	}

	return p, nil
}

// CreateTx yeni ödeme kaydını transaction içinde oluşturur (çekim akışı)
func (r *PaymentRepository) CreateTx(tx *sql.Tx, p *models.Payment) (*models.Payment, error) {
	query := `
		INSERT INTO payments (user_id, amount, type, status, card_mask)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(query, p.UserID, p.Amount, p.Type, p.Status, p.CardMask).Scan(
		&p.ID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ödeme kaydı oluşturulamadı: %w", err)
	}

	return p, nil
}

// UpdateExternalInfo dış sağlayıcıdan dönen id ve ödeme URL'sini yazar
func (r *PaymentRepository) UpdateExternalInfo(id int, externalID, paymentURL string) error {
	query := `UPDATE payments SET external_id = $1, payment_url = $2, updated_at = NOW() WHERE id = $3`

	_, err := r.db.Exec(query, externalID, paymentURL, id)
	if err != nil {
		return fmt.Errorf("ödeme dış bilgisi güncellenemedi: %w", err)
	}

	return nil
}

// UpdateExternalID çekim için dış sağlayıcı id'sini yazar
func (r *PaymentRepository) UpdateExternalID(id int, externalID string) error {
	query := `UPDATE payments SET external_id = $1, updated_at = NOW() WHERE id = $2`

	_, err := r.db.Exec(query, externalID, id)
	if err != nil {
		return fmt.Errorf("ödeme dış id güncellenemedi: %w", err)
	}

	return nil
}

// GetByExternalIDForUpdateTx ödemeyi external_id ile satır kilidi alarak getirir.
// Duplicate webhook'lar bu kilit + status kontrolü sayesinde no-op olur.
func (r *PaymentRepository) GetByExternalIDForUpdateTx(tx *sql.Tx, externalID string) (*models.Payment, error) {
	query := `
		SELECT id, user_id, amount, type, status, external_id, payment_url, card_mask, error_message, transaction_id
		FROM payments
		WHERE external_id = $1
		FOR UPDATE
	`

	var p models.Payment
	err := tx.QueryRow(query, externalID).Scan(
		&p.ID,
		&p.UserID,
		&p.Amount,
		&p.Type,
		&p.Status,
		&p.ExternalID,
		&p.PaymentURL,
		&p.CardMask,
		&p.ErrorMessage,
		&p.TransactionID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svcerr.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("ödeme arama hatası: %w", err)
	}

	return &p, nil
}

// MarkCompletedTx ödemeyi completed yapar, varsa ledger satırını bağlar
func (r *PaymentRepository) MarkCompletedTx(tx *sql.Tx, id int, transactionID *int) error {
	query := `UPDATE payments SET status = 'completed', transaction_id = COALESCE($1, transaction_id), updated_at = NOW() WHERE id = $2`

	_, err := tx.Exec(query, transactionID, id)
	if err != nil {
		return fmt.Errorf("ödeme tamamlanamadı: %w", err)
	}

	return nil
}

// MarkFailedTx ödemeyi failed yapar ve hata mesajını yazar
func (r *PaymentRepository) MarkFailedTx(tx *sql.Tx, id int, errorMessage string) error {
	query := `UPDATE payments SET status = 'failed', error_message = $1, updated_at = NOW() WHERE id = $2`

	_, err := tx.Exec(query, errorMessage, id)
	if err != nil {
		return fmt.Errorf("ödeme failed yapılamadı: %w", err)
	}

	return nil
}

// LinkTransactionTx ödemeyi ledger satırına bağlar
func (r *PaymentRepository) LinkTransactionTx(tx *sql.Tx, paymentID, transactionID int) error {
	query := `UPDATE payments SET transaction_id = $1, updated_at = NOW() WHERE id = $2`

	_, err := tx.Exec(query, transactionID, paymentID)
	if err != nil {
		return fmt.Errorf("ödeme transaction bağlanamadı: %w", err)
	}

	return nil
}

// GetByIDAndUser ödemeyi sahibine göre kapsamlı getirir
func (r *PaymentRepository) GetByIDAndUser(id, userID int) (*models.Payment, error) {
	query := `
		SELECT id, user_id, amount, type, status, external_id, payment_url, card_mask, error_message, transaction_id, created_at, updated_at
		FROM payments
		WHERE id = $1 AND user_id = $2
	`

	var p models.Payment
	err := r.db.QueryRow(query, id, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.Amount,
		&p.Type,
		&p.Status,
		&p.ExternalID,
		&p.PaymentURL,
		&p.CardMask,
		&p.ErrorMessage,
		&p.TransactionID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svcerr.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("ödeme arama hatası: %w", err)
	}

	return &p, nil
}

// GetByUserID kullanıcının ödemelerini getirir (en yeni önce)
func (r *PaymentRepository) GetByUserID(userID, limit int) ([]*models.Payment, error) {
	query := `
		SELECT id, user_id, amount, type, status, external_id, payment_url, card_mask, error_message, transaction_id, created_at, updated_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ödeme listesi sorgusu hatası: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var p models.Payment
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Amount,
			&p.Type,
			&p.Status,
			&p.ExternalID,
			&p.PaymentURL,
			&p.CardMask,
			&p.ErrorMessage,
			&p.TransactionID,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ödeme scan hatası: %w", err)
		}
		payments = append(payments, &p)
	}

	return payments, rows.Err()
}
