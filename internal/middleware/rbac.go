package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-betting-api/internal/models"
)

// Permission tek bir yetkiyi temsil eder
type Permission string

// Mevcut yetkiler
const (
	// Ortak yetkiler
	PermViewOwnProfile Permission = "view_own_profile"
	PermViewOwnBalance Permission = "view_own_balance"
	PermViewOwnLedger  Permission = "view_own_ledger"
	PermInitDeposit    Permission = "init_deposit"
	PermInitWithdrawal Permission = "init_withdrawal"
	PermViewEvents     Permission = "view_events"

	// Fan yetkileri
	PermPlaceBet    Permission = "place_bet"
	PermViewOwnBets Permission = "view_own_bets"

	// Participant yetkileri
	PermViewOwnStats Permission = "view_own_stats"

	// Admin yetkileri
	PermManageEvents  Permission = "manage_events"
	PermResolveEvents Permission = "resolve_events"
)

// RolePermissions her rolün yetkilerini tanımlar
var RolePermissions = map[string][]Permission{
	models.RoleFan: {
		PermViewOwnProfile,
		PermViewOwnBalance,
		PermViewOwnLedger,
		PermInitDeposit,
		PermInitWithdrawal,
		PermViewEvents,
		PermPlaceBet,
		PermViewOwnBets,
	},
	models.RoleParticipant: {
		PermViewOwnProfile,
		PermViewOwnBalance,
		PermViewOwnLedger,
		PermInitDeposit,
		PermInitWithdrawal,
		PermViewEvents,
		PermViewOwnStats,
	},
	models.RoleAdmin: {
		// Admin her şeyi görür ve etkinlikleri yönetir, ama bahis oynayamaz
		PermViewOwnProfile,
		PermViewOwnBalance,
		PermViewOwnLedger,
		PermViewEvents,
		PermManageEvents,
		PermResolveEvents,
	},
}

// HasPermission rolün yetkiyi taşıyıp taşımadığını kontrol eder
func HasPermission(role string, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// RequirePermission belirli bir yetki isteyen RBAC middleware oluşturur.
// AuthMiddleware'den sonra zincirlenmelidir.
func RequirePermission(permission Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r)
			if !ok {
				log.Error().
					Str("path", r.URL.Path).
					Msg("RBAC: context'te auth claims yok, AuthMiddleware atlanmış olabilir")
				http.Error(w, "Kimlik doğrulama gerekli", http.StatusUnauthorized)
				return
			}

			if !HasPermission(claims.Role, permission) {
				log.Warn().
					Int("user_id", claims.UserID).
					Str("role", claims.Role).
					Str("permission", string(permission)).
					Str("path", r.URL.Path).
					Msg("RBAC: yetki reddedildi")
				http.Error(w, "Bu işlem için yetkiniz yok", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole belirli bir rol isteyen middleware oluşturur
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r)
			if !ok {
				http.Error(w, "Kimlik doğrulama gerekli", http.StatusUnauthorized)
				return
			}

			if claims.Role != role {
				log.Warn().
					Int("user_id", claims.UserID).
					Str("role", claims.Role).
					Str("required_role", role).
					Str("path", r.URL.Path).
					Msg("RBAC: rol reddedildi")
				http.Error(w, "Bu işlem için yetkiniz yok", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
