package services

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"github.com/onerilhan/go-betting-api/internal/banking"
	"github.com/onerilhan/go-betting-api/internal/interfaces"
	"github.com/onerilhan/go-betting-api/internal/models"
)

// MockUserRepository, UserRepositoryInterface için sahte (mock) bir yapıdır.
type MockUserRepository struct {
	mock.Mock
}

var _ interfaces.UserRepositoryInterface = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(req *models.CreateUserRequest) (*models.User, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) GetByID(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) GetParticipants() ([]*models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *MockUserRepository) GetBalanceForUpdateTx(tx *sql.Tx, userID int) (int64, error) {
	args := m.Called(tx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockUserRepository) UpdateBalanceTx(tx *sql.Tx, userID int, newBalance int64) error {
	args := m.Called(tx, userID, newBalance)
	return args.Error(0)
}

// MockEventRepository, EventRepositoryInterface için sahte (mock) bir yapıdır.
type MockEventRepository struct {
	mock.Mock
}

var _ interfaces.EventRepositoryInterface = (*MockEventRepository)(nil)

func (m *MockEventRepository) Create(req *models.CreateBetEventRequest) (*models.BetEvent, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BetEvent), args.Error(1)
}
func (m *MockEventRepository) GetByID(id int) (*models.BetEvent, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BetEvent), args.Error(1)
}
func (m *MockEventRepository) GetAll() ([]*models.BetEvent, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BetEvent), args.Error(1)
}
func (m *MockEventRepository) Update(id int, req *models.UpdateBetEventRequest) error {
	args := m.Called(id, req)
	return args.Error(0)
}
func (m *MockEventRepository) GetForUpdateTx(tx *sql.Tx, id int) (*models.BetEvent, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BetEvent), args.Error(1)
}
func (m *MockEventRepository) GetForShareTx(tx *sql.Tx, id int) (*models.BetEvent, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BetEvent), args.Error(1)
}
func (m *MockEventRepository) SetFinishedTx(tx *sql.Tx, id, winnerID int) error {
	args := m.Called(tx, id, winnerID)
	return args.Error(0)
}
func (m *MockEventRepository) SetCancelledTx(tx *sql.Tx, id int) error {
	args := m.Called(tx, id)
	return args.Error(0)
}
func (m *MockEventRepository) GetParticipants(betEventID int) ([]*models.Participant, error) {
	args := m.Called(betEventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Participant), args.Error(1)
}
func (m *MockEventRepository) GetParticipantTx(tx *sql.Tx, participantID, betEventID int) (*models.Participant, error) {
	args := m.Called(tx, participantID, betEventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participant), args.Error(1)
}
func (m *MockEventRepository) HasParticipantUserTx(tx *sql.Tx, betEventID, userID int) (bool, error) {
	args := m.Called(tx, betEventID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockEventRepository) ReplaceParticipantsTx(tx *sql.Tx, betEventID int, userIDs []int) error {
	args := m.Called(tx, betEventID, userIDs)
	return args.Error(0)
}
func (m *MockEventRepository) CountUsersWithRoleTx(tx *sql.Tx, userIDs []int, role string) (int, error) {
	args := m.Called(tx, userIDs, role)
	return args.Int(0), args.Error(1)
}
func (m *MockEventRepository) GetParticipantStats(userID int) ([]*models.ParticipantEventStats, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ParticipantEventStats), args.Error(1)
}

// MockBetRepository, BetRepositoryInterface için sahte (mock) bir yapıdır.
type MockBetRepository struct {
	mock.Mock
}

var _ interfaces.BetRepositoryInterface = (*MockBetRepository)(nil)

func (m *MockBetRepository) CreateTx(tx *sql.Tx, bet *models.Bet) (*models.Bet, error) {
	args := m.Called(tx, bet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}
func (m *MockBetRepository) GetPendingByEventTx(tx *sql.Tx, betEventID int) ([]*models.Bet, error) {
	args := m.Called(tx, betEventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bet), args.Error(1)
}
func (m *MockBetRepository) UpdateStatusTx(tx *sql.Tx, betID int, status string) error {
	args := m.Called(tx, betID, status)
	return args.Error(0)
}
func (m *MockBetRepository) GetByUserID(userID int) ([]*models.Bet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bet), args.Error(1)
}
func (m *MockBetRepository) GetByID(id int) (*models.Bet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

// MockTransactionRepository, TransactionRepositoryInterface için sahte (mock) bir yapıdır.
type MockTransactionRepository struct {
	mock.Mock
}

var _ interfaces.TransactionRepositoryInterface = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) CreateTx(tx *sql.Tx, t *models.Transaction) (*models.Transaction, error) {
	args := m.Called(tx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}
func (m *MockTransactionRepository) GetByUserID(userID, limit, offset int) ([]*models.Transaction, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

// MockPaymentRepository, PaymentRepositoryInterface için sahte (mock) bir yapıdır.
type MockPaymentRepository struct {
	mock.Mock
}

var _ interfaces.PaymentRepositoryInterface = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) Create(p *models.Payment) (*models.Payment, error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}
func (m *MockPaymentRepository) CreateTx(tx *sql.Tx, p *models.Payment) (*models.Payment, error) {
	args := m.Called(tx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}
func (m *MockPaymentRepository) UpdateExternalInfo(id int, externalID, paymentURL string) error {
	args := m.Called(id, externalID, paymentURL)
	return args.Error(0)
}
func (m *MockPaymentRepository) UpdateExternalID(id int, externalID string) error {
	args := m.Called(id, externalID)
	return args.Error(0)
}
func (m *MockPaymentRepository) GetByExternalIDForUpdateTx(tx *sql.Tx, externalID string) (*models.Payment, error) {
	args := m.Called(tx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}
func (m *MockPaymentRepository) MarkCompletedTx(tx *sql.Tx, id int, transactionID *int) error {
	args := m.Called(tx, id, transactionID)
	return args.Error(0)
}
func (m *MockPaymentRepository) MarkFailedTx(tx *sql.Tx, id int, errorMessage string) error {
	args := m.Called(tx, id, errorMessage)
	return args.Error(0)
}
func (m *MockPaymentRepository) LinkTransactionTx(tx *sql.Tx, paymentID, transactionID int) error {
	args := m.Called(tx, paymentID, transactionID)
	return args.Error(0)
}
func (m *MockPaymentRepository) GetByIDAndUser(id, userID int) (*models.Payment, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}
func (m *MockPaymentRepository) GetByUserID(userID, limit int) ([]*models.Payment, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

// MockBalanceService, BalanceServiceInterface için sahte (mock) bir yapıdır.
type MockBalanceService struct {
	mock.Mock
}

var _ interfaces.BalanceServiceInterface = (*MockBalanceService)(nil)

func (m *MockBalanceService) GetBalance(userID int) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBalanceService) CreditTx(tx *sql.Tx, userID int, amount int64) (int64, error) {
	args := m.Called(tx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBalanceService) DebitTx(tx *sql.Tx, userID int, amount int64) (int64, error) {
	args := m.Called(tx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

// MockSettlementExecutor, SettlementExecutor için sahte (mock) bir yapıdır.
type MockSettlementExecutor struct {
	mock.Mock
}

var _ interfaces.SettlementExecutor = (*MockSettlementExecutor)(nil)

func (m *MockSettlementExecutor) ProcessBetEventResultsTx(tx *sql.Tx, betEventID, winnerID int) error {
	args := m.Called(tx, betEventID, winnerID)
	return args.Error(0)
}

// MockRefundExecutor, RefundExecutor için sahte (mock) bir yapıdır.
type MockRefundExecutor struct {
	mock.Mock
}

var _ interfaces.RefundExecutor = (*MockRefundExecutor)(nil)

func (m *MockRefundExecutor) RefundBetEventBetsTx(tx *sql.Tx, betEventID int) error {
	args := m.Called(tx, betEventID)
	return args.Error(0)
}

// MockBankClient, banking.Client için sahte (mock) bir yapıdır.
type MockBankClient struct {
	mock.Mock
}

var _ banking.Client = (*MockBankClient)(nil)

func (m *MockBankClient) InitPayment(ctx context.Context, amount int64, orderID string) (*banking.InitPaymentResponse, error) {
	args := m.Called(ctx, amount, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*banking.InitPaymentResponse), args.Error(1)
}
func (m *MockBankClient) InitPayout(ctx context.Context, amount int64, cardNumber string) (*banking.InitPayoutResponse, error) {
	args := m.Called(ctx, amount, cardNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*banking.InitPayoutResponse), args.Error(1)
}
