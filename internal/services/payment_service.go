package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-betting-api/internal/banking"
	"github.com/onerilhan/go-betting-api/internal/db"
	"github.com/onerilhan/go-betting-api/internal/interfaces"
	"github.com/onerilhan/go-betting-api/internal/models"
	"github.com/onerilhan/go-betting-api/internal/svcerr"
)

// Payout external id'leri bu önekle gelir; webhook yönlendirmesi buna bakar
const payoutExternalIDPrefix = "payout_"

// PaymentService ödeme business logic'i.
// Yatırmada para ancak banka SUCCESS webhook'u gelince hesaba geçer.
// Çekmede bakiye peşin düşülür ve banka çağrısından ÖNCE commit edilir;
// banka FAILED derse telafi iadesi yapılır. Webhook işleme idempotenttir.
type PaymentService struct {
	db              *sql.DB
	paymentRepo     interfaces.PaymentRepositoryInterface
	transactionRepo interfaces.TransactionRepositoryInterface
	userRepo        interfaces.UserRepositoryInterface
	balanceService  interfaces.BalanceServiceInterface
	bank            banking.Client
	minAmount       int64
}

// NewPaymentService yeni service oluşturur
func NewPaymentService(
	database *sql.DB,
	paymentRepo interfaces.PaymentRepositoryInterface,
	transactionRepo interfaces.TransactionRepositoryInterface,
	userRepo interfaces.UserRepositoryInterface,
	balanceService interfaces.BalanceServiceInterface,
	bank banking.Client,
	minAmount int64,
) *PaymentService {
	return &PaymentService{
		db:              database,
		paymentRepo:     paymentRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		balanceService:  balanceService,
		bank:            bank,
		minAmount:       minAmount,
	}
}

// InitDeposit para yatırma başlatır.
// Payment kaydı pending olarak açılır, banka init çağrısı yapılır ve dönen
// ödeme URL'si kullanıcıya verilir. Banka çağrısı başarısız olursa kayıt
// pending kalır; bakiyeye hiçbir şey yazılmadığı için telafi gerekmez.
func (s *PaymentService) InitDeposit(ctx context.Context, userID int, req *models.InitDepositRequest) (*models.InitDepositResponse, error) {
	if req.Amount < s.minAmount {
		return nil, fmt.Errorf("minimum yatırma tutarı %d kuruş: %w", s.minAmount, svcerr.ErrInvalidState)
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.Create(&models.Payment{
		UserID: userID,
		Amount: req.Amount,
		Type:   models.PaymentTypeDeposit,
		Status: models.PaymentStatusPending,
	})
	if err != nil {
		return nil, err
	}

	orderID := fmt.Sprintf("deposit_%d", payment.ID)
	bankResp, err := s.bank.InitPayment(ctx, req.Amount, orderID)
	if err != nil {
		log.Error().Err(err).Int("payment_id", payment.ID).Msg("Banka ödeme init başarısız")
		return nil, fmt.Errorf("banka ödeme başlatılamadı: %w", svcerr.ErrExternalService)
	}

	if err := s.paymentRepo.UpdateExternalInfo(payment.ID, bankResp.PaymentID, bankResp.PaymentURL); err != nil {
		return nil, err
	}

	log.Info().
		Int("payment_id", payment.ID).
		Int("user_id", userID).
		Int64("amount", req.Amount).
		Str("external_id", bankResp.PaymentID).
		Msg("Yatırma başlatıldı")

	return &models.InitDepositResponse{
		PaymentID:  payment.ID,
		PaymentURL: bankResp.PaymentURL,
	}, nil
}

// InitWithdrawal para çekme başlatır.
// Düşüm + payment(processing) + ledger satırı banka çağrısından ÖNCE tek
// transaction'da commit edilir: banka init'i patlarsa kayıtlar processing
// kalır ve telafi operasyonel olarak yapılabilir, para asla havada kalmaz.
func (s *PaymentService) InitWithdrawal(ctx context.Context, userID int, req *models.InitWithdrawalRequest) (*models.InitWithdrawalResponse, error) {
	if req.Amount < s.minAmount {
		return nil, fmt.Errorf("minimum çekme tutarı %d kuruş: %w", s.minAmount, svcerr.ErrInvalidState)
	}
	cardMask, err := MaskCardNumber(req.CardNumber)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, svcerr.ErrInvalidState)
	}

	var payment *models.Payment

	err = db.WithTransaction(s.db, func(tx *sql.Tx) error {
		newBalance, err := s.balanceService.DebitTx(tx, userID, req.Amount)
		if err != nil {
			return err
		}

		payment, err = s.paymentRepo.CreateTx(tx, &models.Payment{
			UserID:   userID,
			Amount:   req.Amount,
			Type:     models.PaymentTypeWithdrawal,
			Status:   models.PaymentStatusProcessing,
			CardMask: &cardMask,
		})
		if err != nil {
			return err
		}

		transaction, err := s.transactionRepo.CreateTx(tx, &models.Transaction{
			UserID:       userID,
			Type:         models.TransactionTypeBet,
			Amount:       req.Amount,
			BalanceAfter: newBalance,
			Description:  fmt.Sprintf("Para çekme #%d (%s)", payment.ID, cardMask),
			PaymentID:    &payment.ID,
		})
		if err != nil {
			return err
		}

		return s.paymentRepo.LinkTransactionTx(tx, payment.ID, transaction.ID)
	})
	if err != nil {
		return nil, err
	}

	// Bakiye düşümü commit edildi, şimdi bankaya payout init
	bankResp, err := s.bank.InitPayout(ctx, req.Amount, req.CardNumber)
	if err != nil {
		// Para düşülmüş durumda; kayıt processing kaldı, webhook gelmeyecek.
		// Operasyon bu kayıtları görüp manuel telafi edebilir.
		log.Error().Err(err).
			Int("payment_id", payment.ID).
			Int("user_id", userID).
			Msg("Banka payout init başarısız, ödeme processing durumda bırakıldı")
		return nil, fmt.Errorf("banka payout başlatılamadı: %w", svcerr.ErrExternalService)
	}

	if err := s.paymentRepo.UpdateExternalID(payment.ID, bankResp.PayoutID); err != nil {
		return nil, err
	}

	log.Info().
		Int("payment_id", payment.ID).
		Int("user_id", userID).
		Int64("amount", req.Amount).
		Str("external_id", bankResp.PayoutID).
		Msg("Çekme başlatıldı")

	return &models.InitWithdrawalResponse{
		PayoutID: payment.ID,
		Status:   models.PaymentStatusProcessing,
	}, nil
}

// HandleWebhook banka callback'ini işler.
// external_id satır kilidi + terminal status kontrolü sayesinde duplicate
// webhook'lar no-op olur. "payout_" öneki çekme callback'ini ayırır.
func (s *PaymentService) HandleWebhook(webhook *banking.Webhook) error {
	return db.WithTransaction(s.db, func(tx *sql.Tx) error {
		payment, err := s.paymentRepo.GetByExternalIDForUpdateTx(tx, webhook.PaymentID)
		if err != nil {
			return err
		}

		// Terminal ödeme için gelen her webhook no-op
		if payment.Status == models.PaymentStatusCompleted || payment.Status == models.PaymentStatusFailed {
			log.Warn().
				Int("payment_id", payment.ID).
				Str("status", payment.Status).
				Str("webhook_status", webhook.Status).
				Msg("Terminal ödeme için duplicate webhook, atlanıyor")
			return nil
		}

		if strings.HasPrefix(webhook.PaymentID, payoutExternalIDPrefix) {
			return s.handlePayoutWebhookTx(tx, payment, webhook)
		}
		return s.handleDepositWebhookTx(tx, payment, webhook)
	})
}

// handleDepositWebhookTx yatırma callback'ini işler:
// SUCCESS bakiyeye kredi + deposit ledger satırı, FAILED sadece kayıt günceller
func (s *PaymentService) handleDepositWebhookTx(tx *sql.Tx, payment *models.Payment, webhook *banking.Webhook) error {
	switch webhook.Status {
	case banking.WebhookStatusSuccess:
		newBalance, err := s.balanceService.CreditTx(tx, payment.UserID, payment.Amount)
		if err != nil {
			return err
		}

		transaction, err := s.transactionRepo.CreateTx(tx, &models.Transaction{
			UserID:       payment.UserID,
			Type:         models.TransactionTypeDeposit,
			Amount:       payment.Amount,
			BalanceAfter: newBalance,
			Description:  fmt.Sprintf("Para yatırma #%d", payment.ID),
			PaymentID:    &payment.ID,
		})
		if err != nil {
			return err
		}

		if err := s.paymentRepo.MarkCompletedTx(tx, payment.ID, &transaction.ID); err != nil {
			return err
		}

		log.Info().
			Int("payment_id", payment.ID).
			Int("user_id", payment.UserID).
			Int64("amount", payment.Amount).
			Msg("Yatırma tamamlandı")
		return nil

	case banking.WebhookStatusFailed:
		errMsg := webhook.ErrorMessage
		if errMsg == "" {
			errMsg = "banka ödemeyi reddetti"
		}
		if err := s.paymentRepo.MarkFailedTx(tx, payment.ID, errMsg); err != nil {
			return err
		}

		log.Warn().
			Int("payment_id", payment.ID).
			Str("error", errMsg).
			Msg("Yatırma başarısız")
		return nil

	default:
		// PENDING gibi ara durumlar kaydı değiştirmez
		return nil
	}
}

// handlePayoutWebhookTx çekme callback'ini işler:
// SUCCESS kaydı kapatır, FAILED peşin düşülen tutarı telafi iadesiyle geri verir
func (s *PaymentService) handlePayoutWebhookTx(tx *sql.Tx, payment *models.Payment, webhook *banking.Webhook) error {
	switch webhook.Status {
	case banking.WebhookStatusSuccess:
		if err := s.paymentRepo.MarkCompletedTx(tx, payment.ID, nil); err != nil {
			return err
		}

		log.Info().
			Int("payment_id", payment.ID).
			Int("user_id", payment.UserID).
			Int64("amount", payment.Amount).
			Msg("Çekme tamamlandı")
		return nil

	case banking.WebhookStatusFailed:
		// Bakiye init sırasında düşülmüştü, telafi iadesi yap
		newBalance, err := s.balanceService.CreditTx(tx, payment.UserID, payment.Amount)
		if err != nil {
			return err
		}

		_, err = s.transactionRepo.CreateTx(tx, &models.Transaction{
			UserID:       payment.UserID,
			Type:         models.TransactionTypeBetRefund,
			Amount:       payment.Amount,
			BalanceAfter: newBalance,
			Description:  fmt.Sprintf("Başarısız çekme #%d iadesi", payment.ID),
			PaymentID:    &payment.ID,
		})
		if err != nil {
			return err
		}

		errMsg := webhook.ErrorMessage
		if errMsg == "" {
			errMsg = "banka payout'u reddetti"
		}
		if err := s.paymentRepo.MarkFailedTx(tx, payment.ID, errMsg); err != nil {
			return err
		}

		log.Warn().
			Int("payment_id", payment.ID).
			Int("user_id", payment.UserID).
			Int64("amount", payment.Amount).
			Msg("Çekme başarısız, tutar iade edildi")
		return nil

	default:
		return nil
	}
}

// GetUserPayments kullanıcının ödemelerini getirir
func (s *PaymentService) GetUserPayments(userID, limit int) ([]*models.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.paymentRepo.GetByUserID(userID, limit)
}

// GetPaymentStatus ödemeyi sahibine göre getirir
func (s *PaymentService) GetPaymentStatus(id, userID int) (*models.Payment, error) {
	return s.paymentRepo.GetByIDAndUser(id, userID)
}

// MaskCardNumber kart numarasını "1234 **** **** 7890" formatına maskeler.
// Ham kart numarası hiçbir yerde saklanmaz veya loglanmaz.
func MaskCardNumber(cardNumber string) (string, error) {
	digits := strings.ReplaceAll(cardNumber, " ", "")
	if len(digits) < 13 || len(digits) > 19 {
		return "", fmt.Errorf("geçersiz kart numarası uzunluğu")
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("kart numarası sadece rakam içermeli")
		}
	}

	return fmt.Sprintf("%s **** **** %s", digits[:4], digits[len(digits)-4:]), nil
}
