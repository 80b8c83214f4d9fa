package models

import "time"

// Ledger transaction tipleri
const (
	TransactionTypeDeposit   = "deposit"    // Hesaba para yatırma
	TransactionTypeBet       = "bet"        // Bahis veya para çekme kaynaklı düşüm
	TransactionTypeWinning   = "winning"    // Kazanan katılımcıya ödül
	TransactionTypeRefund    = "refund"     // Kaybeden/iptal bahis iadesi
	TransactionTypeBetRefund = "bet_refund" // Başarısız çekim sonrası telafi iadesi
)

// Transaction append-only ledger satırı.
// Yazıldıktan sonra asla güncellenmez veya silinmez; düzeltmeler yeni
// telafi satırları olarak eklenir. BalanceAfter, satır yazıldığı andaki
// kullanıcı bakiyesinin snapshot'ıdır; kullanıcının güncel bakiyesi her
// zaman en son satırın BalanceAfter değerine eşittir.
type Transaction struct {
	ID           int       `json:"id" db:"id"`
	UserID       int       `json:"user_id" db:"user_id"`
	Type         string    `json:"type" db:"type"`
	Amount       int64     `json:"amount" db:"amount"` // kuruş
	BalanceAfter int64     `json:"balance_after" db:"balance_after"`
	Description  string    `json:"description" db:"description"`
	BetID        *int      `json:"bet_id" db:"bet_id"`
	PaymentID    *int      `json:"payment_id" db:"payment_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
