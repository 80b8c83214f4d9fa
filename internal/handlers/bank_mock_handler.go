package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-betting-api/internal/banking"
)

// BankMockHandler mock ödeme sayfasının onay endpoint'ini sunar.
// Gerçek entegrasyonda bu handler devre dışı kalır; kullanıcı bankanın
// kendi ödeme sayfasında onay verir.
type BankMockHandler struct {
	mock *banking.TinkoffMock
}

// NewBankMockHandler yeni handler oluşturur
func NewBankMockHandler(mock *banking.TinkoffMock) *BankMockHandler {
	return &BankMockHandler{mock: mock}
}

// confirmRequest mock ödeme onay isteği
type confirmRequest struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"` // SUCCESS | FAILED
}

// ConfirmPayment mock ödeme sayfasındaki onay/red butonunu taklit eder.
// Onaydan sonra webhook, konfigüre edilen gecikmeyle teslim edilir.
func (h *BankMockHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz JSON formatı", http.StatusBadRequest)
		return
	}

	if req.PaymentID == "" {
		http.Error(w, "payment_id gerekli", http.StatusBadRequest)
		return
	}

	if err := h.mock.ConfirmPayment(req.PaymentID, req.Status); err != nil {
		log.Warn().Err(err).Str("payment_id", req.PaymentID).Msg("Mock ödeme onayı başarısız")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}
