package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-betting-api/internal/interfaces"
	"github.com/onerilhan/go-betting-api/internal/middleware"
	"github.com/onerilhan/go-betting-api/internal/models"
)

// UserHandler kullanıcı HTTP isteklerini yönetir
type UserHandler struct {
	userService     interfaces.UserServiceInterface
	balanceService  interfaces.BalanceServiceInterface
	transactionRepo interfaces.TransactionRepositoryInterface
}

// NewUserHandler yeni handler oluşturur
func NewUserHandler(
	userService interfaces.UserServiceInterface,
	balanceService interfaces.BalanceServiceInterface,
	transactionRepo interfaces.TransactionRepositoryInterface,
) *UserHandler {
	return &UserHandler{
		userService:     userService,
		balanceService:  balanceService,
		transactionRepo: transactionRepo,
	}
}

// Register kullanıcı kayıt endpoint'i
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	// JSON'u parse et
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz JSON formatı", http.StatusBadRequest)
		return
	}

	// Temel validasyon
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		http.Error(w, "Geçerli bir email adresi gerekli", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 6 {
		http.Error(w, "Şifre en az 6 karakter olmalı", http.StatusBadRequest)
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		http.Error(w, "Ad ve soyad gerekli", http.StatusBadRequest)
		return
	}

	// Kullanıcıyı oluştur
	user, err := h.userService.Register(&req)
	if err != nil {
		log.Error().Err(err).Msg("Kullanıcı kaydı başarısız")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, user)

	log.Info().
		Str("email", user.Email).
		Str("role", user.Role).
		Msg("Yeni kullanıcı kaydedildi")
}

// Login kullanıcı giriş endpoint'i
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	// JSON'u parse et
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz JSON formatı", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email ve şifre gerekli", http.StatusBadRequest)
		return
	}

	// Kullanıcı girişi yap
	response, err := h.userService.Login(&req)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("Giriş başarısız")
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, response)

	log.Info().
		Str("email", response.User.Email).
		Str("role", response.User.Role).
		Msg("Kullanıcı giriş yaptı")
}

// GetProfile kullanıcının kendi profilini döner (protected endpoint)
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "User bilgisi bulunamadı", http.StatusInternalServerError)
		return
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// GetBalance kullanıcının güncel bakiyesini döner
func (h *UserHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "User bilgisi bulunamadı", http.StatusInternalServerError)
		return
	}

	balance, err := h.balanceService.GetBalance(claims.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &models.BalanceResponse{Balance: balance})
}

// GetTransactions kullanıcının ledger geçmişini döner
func (h *UserHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		http.Error(w, "User bilgisi bulunamadı", http.StatusInternalServerError)
		return
	}

	limit := parseQueryInt(r, "limit", 50)
	offset := parseQueryInt(r, "offset", 0)
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	transactions, err := h.transactionRepo.GetByUserID(claims.UserID, limit, offset)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

// GetParticipants kayıtlı yarışmacıları listeler (bahis için seçim ekranı)
func (h *UserHandler) GetParticipants(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetParticipants()
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// parseQueryInt query parametresini int'e çevirir, yoksa default döner
func parseQueryInt(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
