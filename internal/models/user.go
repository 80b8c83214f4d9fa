package models

import "time"

// Kullanıcı rolleri
const (
	RoleFan         = "fan"         // Bahis yapan taraftar
	RoleParticipant = "participant" // Bahis yapılan yarışmacı
	RoleAdmin       = "admin"       // Etkinlikleri yöneten admin
)

// User kullanıcı modelini temsil eder.
// Balance kuruş cinsinden tutulur ve SADECE BalanceService tarafından değiştirilir;
// her değişiklik transactions tablosuna bir ledger satırı yazar.
type User struct {
	ID        int       `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // JSON'da gösterilmez
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Role      string    `json:"role" db:"role"`
	Balance   int64     `json:"balance" db:"balance"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateUserRequest kullanıcı oluşturma isteği
type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// LoginRequest giriş isteği
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse giriş yanıtı
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// BalanceResponse bakiye yanıtı
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}
