// internal/interfaces/service.go
package interfaces

import (
	"context"
	"database/sql"

	"github.com/onerilhan/go-betting-api/internal/banking"
	"github.com/onerilhan/go-betting-api/internal/models"
)

// UserServiceInterface kullanıcı business logic için interface
type UserServiceInterface interface {
	// Register yeni kullanıcı kaydeder (fan veya participant)
	Register(req *models.CreateUserRequest) (*models.User, error)

	// Login kullanıcı girişi yapar ve token döner
	Login(req *models.LoginRequest) (*models.LoginResponse, error)

	// GetUserByID ID ile kullanıcı getirir
	GetUserByID(userID int) (*models.User, error)

	// GetParticipants kayıtlı yarışmacıları listeler
	GetParticipants() ([]*models.User, error)
}

// BalanceServiceInterface bakiye business logic için interface.
// Bakiyeye dokunan TEK katman budur; her Credit/Debit çağrısının döndüğü
// yeni bakiye, aynı transaction'da yazılan ledger satırına işlenmelidir.
type BalanceServiceInterface interface {
	// GetBalance kullanıcının güncel bakiyesini döner
	GetBalance(userID int) (int64, error)

	// CreditTx bakiyeyi transaction içinde artırır, yeni bakiyeyi döner
	CreditTx(tx *sql.Tx, userID int, amount int64) (int64, error)

	// DebitTx bakiyeyi transaction içinde azaltır, yeni bakiyeyi döner.
	// Yetersiz bakiyede svcerr.ErrInsufficientFunds döner.
	DebitTx(tx *sql.Tx, userID int, amount int64) (int64, error)
}

// EventServiceInterface etkinlik business logic için interface
type EventServiceInterface interface {
	// CreateEvent yeni etkinlik ve katılımcı listesi oluşturur
	CreateEvent(req *models.CreateBetEventRequest) (*models.BetEvent, error)

	// UpdateEvent etkinliği günceller (terminal durumda reddedilir)
	UpdateEvent(id int, req *models.UpdateBetEventRequest) (*models.BetEvent, error)

	// EndEvent etkinliği sonuçlandırır ve settlement'ı çalıştırır
	EndEvent(id int, req *models.EndBetEventRequest) (*models.BetEvent, error)

	// CancelEvent etkinliği iptal eder ve bekleyen bahisleri iade eder
	CancelEvent(id int) (*models.BetEvent, error)

	// GetAllEvents etkinlikleri katılımcılarıyla listeler
	GetAllEvents() ([]*models.BetEvent, error)

	// GetEventByID etkinliği katılımcılarıyla getirir
	GetEventByID(id int) (*models.BetEvent, error)

	// GetParticipantStats katılımcının etkinlik istatistiklerini getirir
	GetParticipantStats(userID int) ([]*models.ParticipantEventStats, error)
}

// BetServiceInterface bahis business logic için interface
type BetServiceInterface interface {
	// PlaceBet bahis oynar: bakiye düşer, bahis ve ledger satırı yazılır
	PlaceBet(userID int, req *models.PlaceBetRequest) (*models.Bet, error)

	// GetUserBets kullanıcının bahislerini getirir
	GetUserBets(userID int) ([]*models.Bet, error)

	// GetBetByID ID ile bahis getirir
	GetBetByID(id int) (*models.Bet, error)
}

// SettlementExecutor etkinlik sonuçlandığında bekleyen bahisleri işler.
// EventService sonuçlandırma transaction'ının içinden çağırır; implementasyon
// BetService'tedir (paket döngüsünü bu interface kırar).
type SettlementExecutor interface {
	// ProcessBetEventResultsTx bekleyen bahisleri won/lost yapar ve
	// ödül havuzu dağıtımını aynı transaction içinde yürütür
	ProcessBetEventResultsTx(tx *sql.Tx, betEventID, winnerID int) error
}

// RefundExecutor etkinlik iptalinde bekleyen bahisleri iade eder
type RefundExecutor interface {
	// RefundBetEventBetsTx bekleyen bahisleri cancelled yapar ve
	// stake'leri aynı transaction içinde iade eder
	RefundBetEventBetsTx(tx *sql.Tx, betEventID int) error
}

// PaymentServiceInterface ödeme business logic için interface
type PaymentServiceInterface interface {
	// InitDeposit para yatırma başlatır ve ödeme URL'si döner
	InitDeposit(ctx context.Context, userID int, req *models.InitDepositRequest) (*models.InitDepositResponse, error)

	// InitWithdrawal para çekme başlatır (bakiye peşin düşülür)
	InitWithdrawal(ctx context.Context, userID int, req *models.InitWithdrawalRequest) (*models.InitWithdrawalResponse, error)

	// HandleWebhook banka callback'ini işler (idempotent)
	HandleWebhook(webhook *banking.Webhook) error

	// GetUserPayments kullanıcının ödemelerini getirir
	GetUserPayments(userID, limit int) ([]*models.Payment, error)

	// GetPaymentStatus ödemeyi sahibine göre getirir
	GetPaymentStatus(id, userID int) (*models.Payment, error)
}
