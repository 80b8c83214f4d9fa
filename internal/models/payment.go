package models

import "time"

// Ödeme tipleri
const (
	PaymentTypeDeposit    = "deposit"
	PaymentTypeWithdrawal = "withdrawal"
)

// Ödeme durumları.
// completed ve failed terminaldir; duplicate webhook'lar no-op olur.
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
	PaymentStatusCancelled  = "cancelled"
)

// Payment iç bakiyeyi dış bankaya bağlayan yatırma/çekme kaydı.
// ExternalID dış sağlayıcının correlation id'sidir; payout id'leri
// "payout_" önekiyle gelir.
type Payment struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	Amount        int64     `json:"amount" db:"amount"` // kuruş
	Type          string    `json:"type" db:"type"`
	Status        string    `json:"status" db:"status"`
	ExternalID    *string   `json:"external_id" db:"external_id"`
	PaymentURL    *string   `json:"payment_url" db:"payment_url"`
	CardMask      *string   `json:"card_mask" db:"card_mask"`
	ErrorMessage  *string   `json:"error_message" db:"error_message"`
	TransactionID *int      `json:"transaction_id" db:"transaction_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// InitDepositRequest para yatırma isteği
type InitDepositRequest struct {
	Amount int64 `json:"amount"`
}

// InitDepositResponse para yatırma yanıtı; kullanıcı PaymentURL'e yönlendirilir
type InitDepositResponse struct {
	PaymentID  int    `json:"payment_id"`
	PaymentURL string `json:"payment_url"`
}

// InitWithdrawalRequest para çekme isteği
type InitWithdrawalRequest struct {
	Amount     int64  `json:"amount"`
	CardNumber string `json:"card_number"`
}

// InitWithdrawalResponse para çekme yanıtı
type InitWithdrawalResponse struct {
	PayoutID int    `json:"payout_id"`
	Status   string `json:"status"`
}
