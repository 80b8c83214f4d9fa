// internal/interfaces/repository.go
package interfaces

import (
	"database/sql"

	"github.com/onerilhan/go-betting-api/internal/models"
)

// UserRepositoryInterface kullanıcı database işlemleri için interface
type UserRepositoryInterface interface {
	// Create yeni kullanıcı oluşturur
	Create(req *models.CreateUserRequest) (*models.User, error)

	// GetByEmail email ile kullanıcı bulur
	GetByEmail(email string) (*models.User, error)

	// GetByID ID ile kullanıcı bulur
	GetByID(id int) (*models.User, error)

	// GetParticipants role=participant olan kullanıcıları listeler
	GetParticipants() ([]*models.User, error)

	// GetBalanceForUpdateTx bakiyeyi satır kilidi ile okur
	GetBalanceForUpdateTx(tx *sql.Tx, userID int) (int64, error)

	// UpdateBalanceTx bakiyeyi transaction içinde günceller
	UpdateBalanceTx(tx *sql.Tx, userID int, newBalance int64) error
}

// EventRepositoryInterface bahis etkinliği database işlemleri için interface
type EventRepositoryInterface interface {
	// Create yeni etkinlik oluşturur
	Create(req *models.CreateBetEventRequest) (*models.BetEvent, error)

	// GetByID ID ile etkinlik getirir
	GetByID(id int) (*models.BetEvent, error)

	// GetAll tüm etkinlikleri listeler
	GetAll() ([]*models.BetEvent, error)

	// Update etkinlik alanlarını günceller
	Update(id int, req *models.UpdateBetEventRequest) error

	// GetForUpdateTx etkinliği exclusive kilitle okur
	GetForUpdateTx(tx *sql.Tx, id int) (*models.BetEvent, error)

	// GetForShareTx etkinliği paylaşımlı kilitle okur
	GetForShareTx(tx *sql.Tx, id int) (*models.BetEvent, error)

	// SetFinishedTx etkinliği finished yapar ve kazananı yazar
	SetFinishedTx(tx *sql.Tx, id, winnerID int) error

	// SetCancelledTx etkinliği cancelled yapar
	SetCancelledTx(tx *sql.Tx, id int) error

	// GetParticipants etkinliğin katılımcılarını getirir
	GetParticipants(betEventID int) ([]*models.Participant, error)

	// GetParticipantTx katılımcıyı etkinlik kapsamında getirir
	GetParticipantTx(tx *sql.Tx, participantID, betEventID int) (*models.Participant, error)

	// HasParticipantUserTx kullanıcının etkinlikte katılımcı olup olmadığını döner
	HasParticipantUserTx(tx *sql.Tx, betEventID, userID int) (bool, error)

	// ReplaceParticipantsTx katılımcı listesini komple değiştirir
	ReplaceParticipantsTx(tx *sql.Tx, betEventID int, userIDs []int) error

	// CountUsersWithRoleTx verilen id'lerden belirtilen role sahip olanları sayar
	CountUsersWithRoleTx(tx *sql.Tx, userIDs []int, role string) (int, error)

	// GetParticipantStats kullanıcının katıldığı etkinlikleri istatistiklerle getirir
	GetParticipantStats(userID int) ([]*models.ParticipantEventStats, error)
}

// BetRepositoryInterface bahis database işlemleri için interface
type BetRepositoryInterface interface {
	// CreateTx yeni bahsi transaction içinde oluşturur
	CreateTx(tx *sql.Tx, bet *models.Bet) (*models.Bet, error)

	// GetPendingByEventTx etkinliğin bekleyen bahislerini kilitle getirir
	GetPendingByEventTx(tx *sql.Tx, betEventID int) ([]*models.Bet, error)

	// UpdateStatusTx bahis durumunu transaction içinde günceller
	UpdateStatusTx(tx *sql.Tx, betID int, status string) error

	// GetByUserID kullanıcının bahislerini getirir
	GetByUserID(userID int) ([]*models.Bet, error)

	// GetByID ID ile bahis getirir
	GetByID(id int) (*models.Bet, error)
}

// TransactionRepositoryInterface ledger database işlemleri için interface.
// Ledger append-only olduğu için update/delete yoktur.
type TransactionRepositoryInterface interface {
	// CreateTx yeni ledger satırını transaction içinde yazar
	CreateTx(tx *sql.Tx, t *models.Transaction) (*models.Transaction, error)

	// GetByUserID kullanıcının ledger geçmişini getirir
	GetByUserID(userID, limit, offset int) ([]*models.Transaction, error)
}

// PaymentRepositoryInterface ödeme database işlemleri için interface
type PaymentRepositoryInterface interface {
	// Create yeni ödeme kaydı oluşturur (transaction dışı)
	Create(p *models.Payment) (*models.Payment, error)

	// CreateTx yeni ödeme kaydını transaction içinde oluşturur
	CreateTx(tx *sql.Tx, p *models.Payment) (*models.Payment, error)

	// UpdateExternalInfo dış id ve ödeme URL'sini yazar
	UpdateExternalInfo(id int, externalID, paymentURL string) error

	// UpdateExternalID dış sağlayıcı id'sini yazar
	UpdateExternalID(id int, externalID string) error

	// GetByExternalIDForUpdateTx ödemeyi external_id ile kilitleyerek getirir
	GetByExternalIDForUpdateTx(tx *sql.Tx, externalID string) (*models.Payment, error)

	// MarkCompletedTx ödemeyi completed yapar
	MarkCompletedTx(tx *sql.Tx, id int, transactionID *int) error

	// MarkFailedTx ödemeyi failed yapar
	MarkFailedTx(tx *sql.Tx, id int, errorMessage string) error

	// LinkTransactionTx ödemeyi ledger satırına bağlar
	LinkTransactionTx(tx *sql.Tx, paymentID, transactionID int) error

	// GetByIDAndUser ödemeyi sahibine göre kapsamlı getirir
	GetByIDAndUser(id, userID int) (*models.Payment, error)

	// GetByUserID kullanıcının ödemelerini getirir
	GetByUserID(userID, limit int) ([]*models.Payment, error)
}
