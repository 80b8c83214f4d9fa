package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/onerilhan/go-betting-api/internal/models"
	"github.com/onerilhan/go-betting-api/internal/svcerr"
)

// EventRepository bahis etkinliği ve katılımcı database işlemleri
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository yeni repository oluşturur
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create yeni etkinlik oluşturur (status=upcoming)
func (r *EventRepository) Create(req *models.CreateBetEventRequest) (*models.BetEvent, error) {
	query := `
		INSERT INTO bet_events (title, description, status, start_date, end_date)
		VALUES ($1, $2, 'upcoming', $3, $4)
		RETURNING id, title, description, status, start_date, end_date, winner_id, created_at, updated_at
	`

	var event models.BetEvent
	err := r.db.QueryRow(query, req.Title, req.Description, req.StartDate, req.EndDate).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Status,
		&event.StartDate,
		&event.EndDate,
		&event.WinnerID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("etkinlik oluşturulamadı: %w", err)
	}

	return &event, nil
}

// GetByID ID ile etkinlik getirir (katılımcılar dahil değil)
func (r *EventRepository) GetByID(id int) (*models.BetEvent, error) {
	query := `
		SELECT id, title, description, status, start_date, end_date, winner_id, created_at, updated_at
		FROM bet_events
		WHERE id = $1
	`

	var event models.BetEvent
	err := r.db.QueryRow(query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Status,
		&event.StartDate,
		&event.EndDate,
		&event.WinnerID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svcerr.ErrNotFound
		}
		return nil, fmt.Errorf("etkinlik arama hatası: %w", err)
	}

	return &event, nil
}

// GetAll tüm etkinlikleri listeler (en yeni başlangıç tarihi önce)
func (r *EventRepository) GetAll() ([]*models.BetEvent, error) {
	query := `
		SELECT id, title, description, status, start_date, end_date, winner_id, created_at, updated_at
		FROM bet_events
		ORDER BY start_date DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("etkinlik listesi sorgusu hatası: %w", err)
	}
	defer rows.Close()

	var events []*models.BetEvent
	for rows.Next() {
		var e models.BetEvent
		err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Description,
			&e.Status,
			&e.StartDate,
			&e.EndDate,
			&e.WinnerID,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("etkinlik scan hatası: %w", err)
		}
		events = append(events, &e)
	}

	return events, rows.Err()
}

// Update etkinlik alanlarını günceller (katılımcılar hariç)
func (r *EventRepository) Update(id int, req *models.UpdateBetEventRequest) error {
	query := `
		UPDATE bet_events
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    status = COALESCE($3, status),
		    start_date = COALESCE($4, start_date),
		    end_date = COALESCE($5, end_date),
		    updated_at = NOW()
		WHERE id = $6
	`

	result, err := r.db.Exec(query, req.Title, req.Description, req.Status, req.StartDate, req.EndDate, id)
	if err != nil {
		return fmt.Errorf("etkinlik güncellenemedi: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return svcerr.ErrNotFound
	}

	return nil
}

// GetForUpdateTx etkinliği exclusive satır kilidi ile okur.
// Settlement'ın etkinlik başına tam bir kez koşmasını bu kilit + aynı
// transaction içindeki status kontrolü garanti eder.
func (r *EventRepository) GetForUpdateTx(tx *sql.Tx, id int) (*models.BetEvent, error) {
	query := `SELECT id, status, winner_id FROM bet_events WHERE id = $1 FOR UPDATE`

	var event models.BetEvent
	err := tx.QueryRow(query, id).Scan(&event.ID, &event.Status, &event.WinnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svcerr.ErrNotFound
		}
		return nil, fmt.Errorf("etkinlik kilitleme hatası: %w", err)
	}

	return &event, nil
}

// GetForShareTx etkinliği paylaşımlı kilitle okur.
// Bahis yerleştirme bu kilidi alır: settlement'ın exclusive kilidiyle
// çakıştığı için bahis, settlement taraması ile commit'i arasına giremez.
func (r *EventRepository) GetForShareTx(tx *sql.Tx, id int) (*models.BetEvent, error) {
	query := `SELECT id, status FROM bet_events WHERE id = $1 FOR SHARE`

	var event models.BetEvent
	err := tx.QueryRow(query, id).Scan(&event.ID, &event.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svcerr.ErrNotFound
		}
		return nil, fmt.Errorf("etkinlik kilitleme hatası: %w", err)
	}

	return &event, nil
}

// SetFinishedTx etkinliği finished yapar ve kazananı yazar
func (r *EventRepository) SetFinishedTx(tx *sql.Tx, id, winnerID int) error {
	query := `UPDATE bet_events SET status = 'finished', winner_id = $1, updated_at = NOW() WHERE id = $2`

	_, err := tx.Exec(query, winnerID, id)
	if err != nil {
		return fmt.Errorf("etkinlik sonuçlandırılamadı: %w", err)
	}

	return nil
}

// SetCancelledTx etkinliği cancelled yapar
func (r *EventRepository) SetCancelledTx(tx *sql.Tx, id int) error {
	query := `UPDATE bet_events SET status = 'cancelled', updated_at = NOW() WHERE id = $1`

	_, err := tx.Exec(query, id)
	if err != nil {
		return fmt.Errorf("etkinlik iptal edilemedi: %w", err)
	}

	return nil
}

// GetParticipants etkinliğin katılımcılarını kullanıcı bilgileriyle getirir
func (r *EventRepository) GetParticipants(betEventID int) ([]*models.Participant, error) {
	query := `
		SELECT p.id, p.bet_event_id, p.user_id, COALESCE(p.additional_info, ''), p.created_at,
		       u.id, u.email, u.first_name, u.last_name, u.role
		FROM bet_event_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.bet_event_id = $1
		ORDER BY p.id
	`

	rows, err := r.db.Query(query, betEventID)
	if err != nil {
		return nil, fmt.Errorf("katılımcı sorgusu hatası: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		var p models.Participant
		var u models.User
		err := rows.Scan(
			&p.ID,
			&p.BetEventID,
			&p.UserID,
			&p.AdditionalInfo,
			&p.CreatedAt,
			&u.ID,
			&u.Email,
			&u.FirstName,
			&u.LastName,
			&u.Role,
		)
		if err != nil {
			return nil, fmt.Errorf("katılımcı scan hatası: %w", err)
		}
		p.User = &u
		participants = append(participants, &p)
	}

	return participants, rows.Err()
}

// GetParticipantTx katılımcıyı etkinlik kapsamında transaction içinde getirir
func (r *EventRepository) GetParticipantTx(tx *sql.Tx, participantID, betEventID int) (*models.Participant, error) {
	query := `SELECT id, bet_event_id, user_id FROM bet_event_participants WHERE id = $1 AND bet_event_id = $2`

	var p models.Participant
	err := tx.QueryRow(query, participantID, betEventID).Scan(&p.ID, &p.BetEventID, &p.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svcerr.ErrNotFound
		}
		return nil, fmt.Errorf("katılımcı arama hatası: %w", err)
	}

	return &p, nil
}

// HasParticipantUserTx kullanıcının etkinlikte katılımcı olup olmadığını döner
func (r *EventRepository) HasParticipantUserTx(tx *sql.Tx, betEventID, userID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM bet_event_participants WHERE bet_event_id = $1 AND user_id = $2)`

	var exists bool
	err := tx.QueryRow(query, betEventID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("katılımcı kontrol hatası: %w", err)
	}

	return exists, nil
}

// ReplaceParticipantsTx katılımcı listesini komple değiştirir:
// mevcut kayıtlar silinir, yeni user id'leri eklenir
func (r *EventRepository) ReplaceParticipantsTx(tx *sql.Tx, betEventID int, userIDs []int) error {
	if _, err := tx.Exec(`DELETE FROM bet_event_participants WHERE bet_event_id = $1`, betEventID); err != nil {
		return fmt.Errorf("katılımcılar silinemedi: %w", err)
	}

	for _, userID := range userIDs {
		_, err := tx.Exec(
			`INSERT INTO bet_event_participants (bet_event_id, user_id) VALUES ($1, $2)`,
			betEventID, userID,
		)
		if err != nil {
			return fmt.Errorf("katılımcı eklenemedi: %w", err)
		}
	}

	return nil
}

// CountUsersWithRoleTx verilen id'lerden role=participant olanları sayar.
// Listeyi komple değiştirmeden önce hepsinin geçerli katılımcı kullanıcı
// olduğunu doğrulamak için kullanılır.
func (r *EventRepository) CountUsersWithRoleTx(tx *sql.Tx, userIDs []int, role string) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE id = ANY($1) AND role = $2`

	var count int
	err := tx.QueryRow(query, pq.Array(userIDs), role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("katılımcı rol kontrolü hatası: %w", err)
	}

	return count, nil
}

// GetParticipantStats kullanıcının katıldığı etkinlikleri bahis
// istatistikleriyle getirir (üzerine oynanan bahis sayısı ve toplamı)
func (r *EventRepository) GetParticipantStats(userID int) ([]*models.ParticipantEventStats, error) {
	query := `
		SELECT e.id, e.title, e.status, e.start_date, p.id,
		       COUNT(b.id), COALESCE(SUM(b.amount), 0), e.winner_id
		FROM bet_event_participants p
		JOIN bet_events e ON e.id = p.bet_event_id
		LEFT JOIN bets b ON b.participant_id = p.id
		WHERE p.user_id = $1
		GROUP BY e.id, e.title, e.status, e.start_date, p.id, e.winner_id
		ORDER BY e.start_date DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("katılımcı istatistik sorgusu hatası: %w", err)
	}
	defer rows.Close()

	var stats []*models.ParticipantEventStats
	for rows.Next() {
		var s models.ParticipantEventStats
		var winnerID sql.NullInt64
		err := rows.Scan(
			&s.BetEventID,
			&s.Title,
			&s.Status,
			&s.StartDate,
			&s.ParticipantID,
			&s.BetsOnMe,
			&s.TotalBetsAmount,
			&winnerID,
		)
		if err != nil {
			return nil, fmt.Errorf("katılımcı istatistik scan hatası: %w", err)
		}

		// Ödül havuzu modeli: potansiyel kazanç, üzerine oynanan toplam tutar
		s.PotentialWinning = s.TotalBetsAmount

		if s.Status == models.EventStatusFinished && winnerID.Valid && int(winnerID.Int64) == userID {
			place := 1
			s.Place = &place
		}

		stats = append(stats, &s)
	}

	return stats, rows.Err()
}
