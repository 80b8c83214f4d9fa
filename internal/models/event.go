package models

import "time"

// Etkinlik durumları.
// Geçişler: upcoming → active → {finished, cancelled}; terminal durumdan çıkış yok.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusActive    = "active"
	EventStatusFinished  = "finished"
	EventStatusCancelled = "cancelled"
)

// BetEvent bahis etkinliğini temsil eder.
// WinnerID etkinlik sonuçlandırılırken tam bir kez set edilir ve
// katılımcılardan birinin user id'si olmak zorundadır.
type BetEvent struct {
	ID           int            `json:"id" db:"id"`
	Title        string         `json:"title" db:"title"`
	Description  string         `json:"description" db:"description"`
	Status       string         `json:"status" db:"status"`
	StartDate    time.Time      `json:"start_date" db:"start_date"`
	EndDate      *time.Time     `json:"end_date" db:"end_date"`
	WinnerID     *int           `json:"winner_id" db:"winner_id"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
	Participants []*Participant `json:"participants,omitempty"`
}

// IsTerminal etkinliğin kapandığını söyler
func (e *BetEvent) IsTerminal() bool {
	return e.Status == EventStatusFinished || e.Status == EventStatusCancelled
}

// Participant etkinliğe bağlı yarışmacı kaydı.
// UserID role=participant olan bir kullanıcıya işaret eder.
type Participant struct {
	ID             int       `json:"id" db:"id"`
	BetEventID     int       `json:"bet_event_id" db:"bet_event_id"`
	UserID         int       `json:"user_id" db:"user_id"`
	AdditionalInfo string    `json:"additional_info" db:"additional_info"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	User           *User     `json:"user,omitempty"`
}

// CreateBetEventRequest etkinlik oluşturma isteği
type CreateBetEventRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	ParticipantsIDs []int      `json:"participants_ids"`
}

// UpdateBetEventRequest etkinlik güncelleme isteği.
// ParticipantsIDs gönderilirse mevcut katılımcı listesi komple değiştirilir.
type UpdateBetEventRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Status          *string    `json:"status"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	ParticipantsIDs []int      `json:"participants_ids"`
}

// EndBetEventRequest etkinlik sonuçlandırma isteği
type EndBetEventRequest struct {
	WinnerID int `json:"winner_id"`
}

// ParticipantEventStats katılımcının bir etkinlikteki bahis istatistikleri
type ParticipantEventStats struct {
	BetEventID       int       `json:"bet_event_id"`
	Title            string    `json:"title"`
	Status           string    `json:"status"`
	StartDate        time.Time `json:"start_date"`
	ParticipantID    int       `json:"participant_id"`
	BetsOnMe         int       `json:"bets_on_me"`
	TotalBetsAmount  int64     `json:"total_bets_amount"`
	PotentialWinning int64     `json:"potential_winning"`
	Place            *int      `json:"place,omitempty"`
}
