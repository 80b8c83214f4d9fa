package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-betting-api/internal/interfaces"
	"github.com/onerilhan/go-betting-api/internal/middleware"
	"github.com/onerilhan/go-betting-api/internal/models"
)

// EventHandler etkinlik HTTP isteklerini yönetir
type EventHandler struct {
	eventService interfaces.EventServiceInterface
}

// NewEventHandler yeni handler oluşturur
func NewEventHandler(eventService interfaces.EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create yeni etkinlik oluşturur (admin)
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBetEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz JSON formatı", http.StatusBadRequest)
		return
	}

	event, err := h.eventService.CreateEvent(&req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)

	log.Info().
		Int("bet_event_id", event.ID).
		Str("title", event.Title).
		Msg("Etkinlik oluşturuldu")
}

// Update etkinliği günceller (admin)
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Geçersiz etkinlik ID", http.StatusBadRequest)
		return
	}

	var req models.UpdateBetEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz JSON formatı", http.StatusBadRequest)
		return
	}

	event, err := h.eventService.UpdateEvent(id, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// End etkinliği sonuçlandırır ve bahisleri dağıtır (admin)
func (h *EventHandler) End(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Geçersiz etkinlik ID", http.StatusBadRequest)
		return
	}

	var req models.EndBetEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz JSON formatı", http.StatusBadRequest)
		return
	}
	if req.WinnerID <= 0 {
		http.Error(w, "winner_id gerekli", http.StatusBadRequest)
		return
	}

	event, err := h.eventService.EndEvent(id, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Cancel etkinliği iptal eder, bekleyen bahisler iade edilir (admin)
func (h *EventHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Geçersiz etkinlik ID", http.StatusBadRequest)
		return
	}

	event, err := h.eventService.CancelEvent(id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// GetAll etkinlikleri katılımcılarıyla listeler
func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.GetAllEvents()
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// GetByID etkinliği katılımcılarıyla getirir
func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Geçersiz etkinlik ID", http.StatusBadRequest)
		return
	}

	event, err := h.eventService.GetEventByID(id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// GetMyStats yarışmacının kendi etkinlik istatistiklerini döner
func (h *EventHandler) GetMyStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "User bilgisi bulunamadı", http.StatusInternalServerError)
		return
	}

	stats, err := h.eventService.GetParticipantStats(claims.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// pathID mux route'undaki {id} parametresini okur
func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}
