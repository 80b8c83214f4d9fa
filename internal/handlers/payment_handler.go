package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-betting-api/internal/banking"
	"github.com/onerilhan/go-betting-api/internal/interfaces"
	"github.com/onerilhan/go-betting-api/internal/middleware"
	"github.com/onerilhan/go-betting-api/internal/models"
)

// PaymentHandler ödeme HTTP isteklerini yönetir
type PaymentHandler struct {
	paymentService interfaces.PaymentServiceInterface
}

// NewPaymentHandler yeni handler oluşturur
func NewPaymentHandler(paymentService interfaces.PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// InitDeposit para yatırma başlatır
func (h *PaymentHandler) InitDeposit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "User bilgisi bulunamadı", http.StatusInternalServerError)
		return
	}

	var req models.InitDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz JSON formatı", http.StatusBadRequest)
		return
	}

	response, err := h.paymentService.InitDeposit(r.Context(), claims.UserID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// InitWithdrawal para çekme başlatır
func (h *PaymentHandler) InitWithdrawal(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "User bilgisi bulunamadı", http.StatusInternalServerError)
		return
	}

	var req models.InitWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz JSON formatı", http.StatusBadRequest)
		return
	}

	response, err := h.paymentService.InitWithdrawal(r.Context(), claims.UserID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// Webhook banka callback endpoint'i (public, auth yok).
// Banka imza doğrulaması mock'ta yoktur; gerçek entegrasyonda burada yapılır.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var webhook banking.Webhook
	if err := json.NewDecoder(r.Body).Decode(&webhook); err != nil {
		http.Error(w, "Geçersiz JSON formatı", http.StatusBadRequest)
		return
	}

	if webhook.PaymentID == "" {
		http.Error(w, "payment_id gerekli", http.StatusBadRequest)
		return
	}

	if err := h.paymentService.HandleWebhook(&webhook); err != nil {
		log.Error().Err(err).Str("payment_id", webhook.PaymentID).Msg("Webhook işlenemedi")
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetMyPayments kullanıcının ödemelerini döner
func (h *PaymentHandler) GetMyPayments(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "User bilgisi bulunamadı", http.StatusInternalServerError)
		return
	}

	limit := parseQueryInt(r, "limit", 50)

	payments, err := h.paymentService.GetUserPayments(claims.UserID, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payments)
}

// GetStatus ödemenin durumunu döner; sadece sahibi görebilir
func (h *PaymentHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "User bilgisi bulunamadı", http.StatusInternalServerError)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Geçersiz ödeme ID", http.StatusBadRequest)
		return
	}

	payment, err := h.paymentService.GetPaymentStatus(id, claims.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payment)
}
