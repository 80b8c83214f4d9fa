package banking

import (
	"context"
	"time"
)

// Webhook durumları (dış banka sözleşmesi)
const (
	WebhookStatusSuccess = "SUCCESS"
	WebhookStatusFailed  = "FAILED"
	WebhookStatusPending = "PENDING"
)

// InitPaymentResponse ödeme başlatma yanıtı
type InitPaymentResponse struct {
	PaymentID  string `json:"payment_id"`
	PaymentURL string `json:"payment_url"`
	OrderID    string `json:"order_id"`
}

// InitPayoutResponse çekim başlatma yanıtı
type InitPayoutResponse struct {
	PayoutID string `json:"payout_id"`
	Status   string `json:"status"`
}

// Webhook dış bankadan gelen asenkron bildirim.
// PaymentID bizim Payment.ExternalID alanımızla eşleşir;
// payout bildirimleri "payout_" önekiyle ayırt edilir.
type Webhook struct {
	PaymentID    string    `json:"payment_id"`
	OrderID      string    `json:"order_id"`
	Amount       int64     `json:"amount"`
	Status       string    `json:"status"`
	ErrorCode    string    `json:"error_code,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// WebhookFunc webhook teslim fonksiyonu. Mock client bildirimleri bu
// fonksiyona teslim eder; gerçek entegrasyonda bildirimler HTTP endpoint'ine
// gelir ve aynı PaymentService metoduna yönlendirilir.
type WebhookFunc func(webhook *Webhook) error

// Client dış banka sağlayıcısının sözleşmesi.
// PaymentService yalnızca bu interface'i görür; mock ve gerçek
// implementasyon birbirinin yerine takılabilir.
type Client interface {
	// InitPayment yatırma işlemi başlatır, ödeme sayfası URL'si döner
	InitPayment(ctx context.Context, amount int64, orderID string) (*InitPaymentResponse, error)

	// InitPayout karta çekim işlemi başlatır
	InitPayout(ctx context.Context, amount int64, cardNumber string) (*InitPayoutResponse, error)
}
