package banking

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MockConfig mock bankanın zamanlama ayarları
type MockConfig struct {
	// WebhookDelay onaydan sonra webhook teslimine kadar geçen süre
	WebhookDelay time.Duration
	// PayoutDelay çekimin otomatik sonuçlanma süresi
	PayoutDelay time.Duration
	// PayoutFailRate çekimlerin başarısız olma oranı (0..1)
	PayoutFailRate float64
	// PaymentPageBaseURL mock ödeme sayfasının base URL'i
	PaymentPageBaseURL string
}

type mockPayment struct {
	PaymentID string
	OrderID   string
	Amount    int64
	Status    string // PENDING | SUCCESS | FAILED
	CreatedAt time.Time
}

type mockPayout struct {
	PayoutID  string
	Amount    int64
	CardMask  string
	Status    string // PROCESSING | SUCCESS | FAILED
	CreatedAt time.Time
}

// TinkoffMock dış bankanın in-memory taklidi.
//
// SADECE geliştirme ve test için: gerçek entegrasyonda bu struct yerine
// bankanın HTTP API'sini çağıran bir Client implementasyonu takılır.
// Ödemeler bellekte tutulur, webhook'lar timer ile gecikmeli teslim edilir.
type TinkoffMock struct {
	cfg       MockConfig
	deliverFn WebhookFunc

	mutex    sync.Mutex
	payments map[string]*mockPayment
	payouts  map[string]*mockPayout
	rng      *rand.Rand
	wg       sync.WaitGroup
}

var _ Client = (*TinkoffMock)(nil)

// NewTinkoffMock yeni mock client oluşturur.
// deliverFn webhook'ların teslim edileceği fonksiyondur (PaymentService.HandleWebhook).
func NewTinkoffMock(cfg MockConfig, deliverFn WebhookFunc) *TinkoffMock {
	log.Warn().Msg("⚠️ MOCK BANKA SERVİSİ KULLANILIYOR - PRODUCTION İÇİN DEĞİL!")

	return &TinkoffMock{
		cfg:       cfg,
		deliverFn: deliverFn,
		payments:  make(map[string]*mockPayment),
		payouts:   make(map[string]*mockPayout),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// InitPayment yatırma işlemi başlatır (taklit)
func (m *TinkoffMock) InitPayment(ctx context.Context, amount int64, orderID string) (*InitPaymentResponse, error) {
	paymentID := "mock_" + uuid.NewString()

	m.mutex.Lock()
	m.payments[paymentID] = &mockPayment{
		PaymentID: paymentID,
		OrderID:   orderID,
		Amount:    amount,
		Status:    WebhookStatusPending,
		CreatedAt: time.Now(),
	}
	m.mutex.Unlock()

	log.Info().
		Str("payment_id", paymentID).
		Str("order_id", orderID).
		Int64("amount", amount).
		Msg("[MOCK] Ödeme başlatıldı")

	return &InitPaymentResponse{
		PaymentID:  paymentID,
		PaymentURL: fmt.Sprintf("%s/mock-payment/%s", m.cfg.PaymentPageBaseURL, paymentID),
		OrderID:    orderID,
	}, nil
}

// InitPayout karta çekim başlatır (taklit).
// Çekim PayoutDelay sonra otomatik sonuçlanır ve webhook teslim edilir.
func (m *TinkoffMock) InitPayout(ctx context.Context, amount int64, cardNumber string) (*InitPayoutResponse, error) {
	payoutID := "payout_" + uuid.NewString()

	m.mutex.Lock()
	m.payouts[payoutID] = &mockPayout{
		PayoutID:  payoutID,
		Amount:    amount,
		CardMask:  maskCard(cardNumber),
		Status:    "PROCESSING",
		CreatedAt: time.Now(),
	}
	m.mutex.Unlock()

	log.Info().
		Str("payout_id", payoutID).
		Int64("amount", amount).
		Msg("[MOCK] Çekim başlatıldı")

	m.wg.Add(1)
	time.AfterFunc(m.cfg.PayoutDelay, func() {
		defer m.wg.Done()
		m.autoCompletePayout(payoutID)
	})

	return &InitPayoutResponse{
		PayoutID: payoutID,
		Status:   "PROCESSING",
	}, nil
}

// ConfirmPayment mock ödeme sayfasından gelen kullanıcı onayını işler
// ve webhook teslimini zamanlar. Zaten işlenmiş ödeme için no-op.
func (m *TinkoffMock) ConfirmPayment(paymentID, status string) error {
	if status != WebhookStatusSuccess && status != WebhookStatusFailed {
		return fmt.Errorf("geçersiz onay durumu: %s", status)
	}

	m.mutex.Lock()
	payment, ok := m.payments[paymentID]
	if !ok {
		m.mutex.Unlock()
		return fmt.Errorf("mock ödeme bulunamadı: %s", paymentID)
	}
	if payment.Status != WebhookStatusPending {
		m.mutex.Unlock()
		log.Warn().Str("payment_id", paymentID).Str("status", payment.Status).Msg("[MOCK] Ödeme zaten işlenmiş")
		return nil
	}
	payment.Status = status
	m.mutex.Unlock()

	log.Info().Str("payment_id", paymentID).Str("status", status).Msg("[MOCK] Ödeme onaylandı, webhook zamanlandı")

	m.scheduleWebhook(&Webhook{
		PaymentID: payment.PaymentID,
		OrderID:   payment.OrderID,
		Amount:    payment.Amount,
		Status:    status,
		Timestamp: time.Now(),
	})

	return nil
}

// autoCompletePayout çekimi PayoutFailRate'e göre sonuçlandırır
func (m *TinkoffMock) autoCompletePayout(payoutID string) {
	m.mutex.Lock()
	payout, ok := m.payouts[payoutID]
	if !ok || payout.Status != "PROCESSING" {
		m.mutex.Unlock()
		return
	}

	status := WebhookStatusSuccess
	errMessage := ""
	if m.rng.Float64() < m.cfg.PayoutFailRate {
		status = WebhookStatusFailed
		errMessage = "Çekim banka tarafından reddedildi"
	}
	payout.Status = status
	m.mutex.Unlock()

	log.Info().Str("payout_id", payoutID).Str("status", status).Msg("[MOCK] Çekim sonuçlandı")

	m.scheduleWebhook(&Webhook{
		PaymentID:    payoutID,
		OrderID:      payoutID,
		Amount:       payout.Amount,
		Status:       status,
		ErrorMessage: errMessage,
		Timestamp:    time.Now(),
	})
}

// scheduleWebhook webhook'u WebhookDelay sonra teslim eder
func (m *TinkoffMock) scheduleWebhook(webhook *Webhook) {
	m.wg.Add(1)
	time.AfterFunc(m.cfg.WebhookDelay, func() {
		defer m.wg.Done()

		if err := m.deliverFn(webhook); err != nil {
			log.Error().
				Err(err).
				Str("payment_id", webhook.PaymentID).
				Msg("[MOCK] Webhook teslimi başarısız")
			return
		}

		log.Debug().Str("payment_id", webhook.PaymentID).Msg("[MOCK] Webhook teslim edildi")
	})
}

// Wait zamanlanmış tüm webhook teslimlerini bekler (testler için)
func (m *TinkoffMock) Wait() {
	m.wg.Wait()
}

// maskCard kart numarasını maskeler: ilk 4 ve son 4 hane kalır
func maskCard(cardNumber string) string {
	if len(cardNumber) < 4 {
		return "****"
	}
	return cardNumber[:4] + " **** **** " + cardNumber[len(cardNumber)-4:]
}
