package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-betting-api/internal/svcerr"
)

// writeJSON başarılı JSON yanıtı yazar
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// handleServiceError service hatasını HTTP status'a çevirir.
// Domain hataları kendi mesajıyla döner; bilinmeyen hatalar iç detay
// sızdırmadan 500 olur.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svcerr.ErrNotFound), errors.Is(err, svcerr.ErrPaymentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, svcerr.ErrInsufficientFunds),
		errors.Is(err, svcerr.ErrEventNotBettable),
		errors.Is(err, svcerr.ErrAlreadyFinished),
		errors.Is(err, svcerr.ErrAlreadyCancelled),
		errors.Is(err, svcerr.ErrInvalidWinner),
		errors.Is(err, svcerr.ErrInvalidState):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, svcerr.ErrExternalService):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		log.Error().Err(err).Msg("Beklenmeyen service hatası")
		http.Error(w, "Sunucu hatası", http.StatusInternalServerError)
	}
}
