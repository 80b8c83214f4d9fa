package models

import "time"

// Bahis durumları.
// pending → {won, lost} geçişi yalnızca etkinliğin tek settlement çağrısında,
// pending → cancelled geçişi yalnızca etkinlik iptalinde olur; sonrası immutable.
const (
	BetStatusPending   = "pending"
	BetStatusWon       = "won"
	BetStatusLost      = "lost"
	BetStatusCancelled = "cancelled"
)

// Bet bir taraftarın belirli bir katılımcıya oynadığı bahsi temsil eder
type Bet struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	BetEventID    int       `json:"bet_event_id" db:"bet_event_id"`
	ParticipantID int       `json:"participant_id" db:"participant_id"`
	Amount        int64     `json:"amount" db:"amount"` // kuruş
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	// Settlement için join edilen alan: bahis oynanan katılımcının user id'si
	ParticipantUserID int `json:"participant_user_id,omitempty" db:"participant_user_id"`
}

// PlaceBetRequest bahis oynama isteği
type PlaceBetRequest struct {
	BetEventID    int   `json:"bet_event_id"`
	ParticipantID int   `json:"participant_id"`
	Amount        int64 `json:"amount"`
}
