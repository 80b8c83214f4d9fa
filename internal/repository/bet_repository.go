package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/onerilhan/go-betting-api/internal/models"
	"github.com/onerilhan/go-betting-api/internal/svcerr"
)

// BetRepository bahis database işlemleri
type BetRepository struct {
	db *sql.DB
}

// NewBetRepository yeni repository oluşturur
func NewBetRepository(db *sql.DB) *BetRepository {
	return &BetRepository{db: db}
}

// CreateTx yeni bahsi transaction içinde oluşturur (status=pending)
func (r *BetRepository) CreateTx(tx *sql.Tx, bet *models.Bet) (*models.Bet, error) {
	query := `
		INSERT INTO bets (user_id, bet_event_id, participant_id, amount, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(query, bet.UserID, bet.BetEventID, bet.ParticipantID, bet.Amount).Scan(
		&bet.ID,
		&bet.CreatedAt,
		&bet.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("bahis kaydı oluşturulamadı: %w", err)
	}

	bet.Status = models.BetStatusPending
	return bet, nil
}

// GetPendingByEventTx etkinliğin bekleyen bahislerini katılımcının user id'si
// ile birlikte, satır kilidiyle getirir. Settlement bu liste üzerinde döner;
// kilit sayesinde hiçbir bahis yarı işlenmiş kalmaz.
func (r *BetRepository) GetPendingByEventTx(tx *sql.Tx, betEventID int) ([]*models.Bet, error) {
	query := `
		SELECT b.id, b.user_id, b.bet_event_id, b.participant_id, b.amount, b.status, p.user_id
		FROM bets b
		JOIN bet_event_participants p ON p.id = b.participant_id
		WHERE b.bet_event_id = $1 AND b.status = 'pending'
		ORDER BY b.id
		FOR UPDATE OF b
	`

	rows, err := tx.Query(query, betEventID)
	if err != nil {
		return nil, fmt.Errorf("bekleyen bahis sorgusu hatası: %w", err)
	}
	defer rows.Close()

	var bets []*models.Bet
	for rows.Next() {
		var b models.Bet
		err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.BetEventID,
			&b.ParticipantID,
			&b.Amount,
			&b.Status,
			&b.ParticipantUserID,
		)
		if err != nil {
			return nil, fmt.Errorf("bahis scan hatası: %w", err)
		}
		bets = append(bets, &b)
	}

	return bets, rows.Err()
}

// UpdateStatusTx bahsin durumunu transaction içinde günceller.
// Yalnızca settlement ve iptal akışları çağırır; pending dışındaki bir
// bahsin durumu bir daha değişmez.
func (r *BetRepository) UpdateStatusTx(tx *sql.Tx, betID int, status string) error {
	query := `UPDATE bets SET status = $1, updated_at = NOW() WHERE id = $2`

	_, err := tx.Exec(query, status, betID)
	if err != nil {
		return fmt.Errorf("bahis durumu güncellenemedi: %w", err)
	}

	return nil
}

// GetByUserID kullanıcının bahislerini getirir (en yeni önce)
func (r *BetRepository) GetByUserID(userID int) ([]*models.Bet, error) {
	query := `
		SELECT id, user_id, bet_event_id, participant_id, amount, status, created_at, updated_at
		FROM bets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("bahis listesi sorgusu hatası: %w", err)
	}
	defer rows.Close()

	var bets []*models.Bet
	for rows.Next() {
		var b models.Bet
		err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.BetEventID,
			&b.ParticipantID,
			&b.Amount,
			&b.Status,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("bahis scan hatası: %w", err)
		}
		bets = append(bets, &b)
	}

	return bets, rows.Err()
}

// GetByID ID ile bahis getirir
func (r *BetRepository) GetByID(id int) (*models.Bet, error) {
	query := `
		SELECT id, user_id, bet_event_id, participant_id, amount, status, created_at, updated_at
		FROM bets
		WHERE id = $1
	`

	var b models.Bet
	err := r.db.QueryRow(query, id).Scan(
		&b.ID,
		&b.UserID,
		&b.BetEventID,
		&b.ParticipantID,
		&b.Amount,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svcerr.ErrNotFound
		}
		return nil, fmt.Errorf("bahis arama hatası: %w", err)
	}

	return &b, nil
}
