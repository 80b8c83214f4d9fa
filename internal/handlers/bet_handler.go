package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-betting-api/internal/interfaces"
	"github.com/onerilhan/go-betting-api/internal/middleware"
	"github.com/onerilhan/go-betting-api/internal/models"
)

// BetHandler bahis HTTP isteklerini yönetir
type BetHandler struct {
	betService interfaces.BetServiceInterface
}

// NewBetHandler yeni handler oluşturur
func NewBetHandler(betService interfaces.BetServiceInterface) *BetHandler {
	return &BetHandler{betService: betService}
}

// PlaceBet bahis oynama endpoint'i (fan)
func (h *BetHandler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "User bilgisi bulunamadı", http.StatusInternalServerError)
		return
	}

	var req models.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz JSON formatı", http.StatusBadRequest)
		return
	}

	if req.BetEventID <= 0 || req.ParticipantID <= 0 {
		http.Error(w, "bet_event_id ve participant_id gerekli", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "Bahis tutarı pozitif olmalı", http.StatusBadRequest)
		return
	}

	bet, err := h.betService.PlaceBet(claims.UserID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bet)

	log.Info().
		Int("bet_id", bet.ID).
		Int("user_id", claims.UserID).
		Msg("Bahis kabul edildi")
}

// GetMyBets kullanıcının bahislerini döner
func (h *BetHandler) GetMyBets(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "User bilgisi bulunamadı", http.StatusInternalServerError)
		return
	}

	bets, err := h.betService.GetUserBets(claims.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bets)
}

// GetByID bahsi getirir; herkes sadece kendi bahsini görebilir
func (h *BetHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "User bilgisi bulunamadı", http.StatusInternalServerError)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Geçersiz bahis ID", http.StatusBadRequest)
		return
	}

	bet, err := h.betService.GetBetByID(id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if bet.UserID != claims.UserID && claims.Role != models.RoleAdmin {
		http.Error(w, "Bu bahse erişim yetkiniz yok", http.StatusForbidden)
		return
	}

	writeJSON(w, http.StatusOK, bet)
}
