package services

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-betting-api/internal/db"
	"github.com/onerilhan/go-betting-api/internal/interfaces"
	"github.com/onerilhan/go-betting-api/internal/models"
	"github.com/onerilhan/go-betting-api/internal/svcerr"
)

// BetService bahis business logic'i.
// Settlement ve iptal iadeleri de buradadır; EventService bunları
// sonuçlandırma/iptal transaction'ının içinden çağırır.
type BetService struct {
	db              *sql.DB
	betRepo         interfaces.BetRepositoryInterface
	eventRepo       interfaces.EventRepositoryInterface
	transactionRepo interfaces.TransactionRepositoryInterface
	balanceService  interfaces.BalanceServiceInterface
}

// NewBetService yeni service oluşturur
func NewBetService(
	database *sql.DB,
	betRepo interfaces.BetRepositoryInterface,
	eventRepo interfaces.EventRepositoryInterface,
	transactionRepo interfaces.TransactionRepositoryInterface,
	balanceService interfaces.BalanceServiceInterface,
) *BetService {
	return &BetService{
		db:              database,
		betRepo:         betRepo,
		eventRepo:       eventRepo,
		transactionRepo: transactionRepo,
		balanceService:  balanceService,
	}
}

// PlaceBet bahis oynar: bakiye düşer, bahis ve ledger satırı tek
// transaction'da yazılır. Etkinlik satırında FOR SHARE kilidi tutulur;
// settlement'ın exclusive kilidi ile çakıştığı için bahis, settlement
// taraması ile commit'i arasına giremez.
func (s *BetService) PlaceBet(userID int, req *models.PlaceBetRequest) (*models.Bet, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("bahis tutarı pozitif olmalı: %w", svcerr.ErrInvalidState)
	}

	var bet *models.Bet

	err := db.WithTransaction(s.db, func(tx *sql.Tx) error {
		// Etkinliği paylaşımlı kilitle oku ve durumunu kontrol et
		event, err := s.eventRepo.GetForShareTx(tx, req.BetEventID)
		if err != nil {
			return err
		}
		if event.IsTerminal() {
			return fmt.Errorf("etkinlik durumu %s: %w", event.Status, svcerr.ErrEventNotBettable)
		}

		// Katılımcı bu etkinliğe ait mi
		if _, err := s.eventRepo.GetParticipantTx(tx, req.ParticipantID, req.BetEventID); err != nil {
			return err
		}

		// Bakiyeden düş
		newBalance, err := s.balanceService.DebitTx(tx, userID, req.Amount)
		if err != nil {
			return err
		}

		// Bahsi oluştur
		bet, err = s.betRepo.CreateTx(tx, &models.Bet{
			UserID:        userID,
			BetEventID:    req.BetEventID,
			ParticipantID: req.ParticipantID,
			Amount:        req.Amount,
		})
		if err != nil {
			return err
		}

		// Ledger satırını yaz
		_, err = s.transactionRepo.CreateTx(tx, &models.Transaction{
			UserID:       userID,
			Type:         models.TransactionTypeBet,
			Amount:       req.Amount,
			BalanceAfter: newBalance,
			Description:  fmt.Sprintf("Bahis #%d (etkinlik #%d)", bet.ID, req.BetEventID),
			BetID:        &bet.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("bet_id", bet.ID).
		Int("user_id", userID).
		Int("bet_event_id", req.BetEventID).
		Int64("amount", req.Amount).
		Msg("Bahis oynandı")

	return bet, nil
}

// ProcessBetEventResultsTx etkinliğin bekleyen bahislerini sonuçlandırır.
// Ödül havuzu modeli: kazanan katılımcıya, üzerine oynanan her bahsin
// stake'i ayrı winning satırı olarak ödenir; kaybeden bahisçilere
// stake'leri refund olarak iade edilir. Para yaratılmaz veya yok edilmez,
// sadece kaybedenlerden kazanan katılımcıya akar.
func (s *BetService) ProcessBetEventResultsTx(tx *sql.Tx, betEventID, winnerID int) error {
	bets, err := s.betRepo.GetPendingByEventTx(tx, betEventID)
	if err != nil {
		return err
	}

	for _, bet := range bets {
		if bet.ParticipantUserID == winnerID {
			// Kazanan katılımcıya oynanan bahis: stake kazanana gider
			if err := s.betRepo.UpdateStatusTx(tx, bet.ID, models.BetStatusWon); err != nil {
				return err
			}

			newBalance, err := s.balanceService.CreditTx(tx, winnerID, bet.Amount)
			if err != nil {
				return err
			}

			_, err = s.transactionRepo.CreateTx(tx, &models.Transaction{
				UserID:       winnerID,
				Type:         models.TransactionTypeWinning,
				Amount:       bet.Amount,
				BalanceAfter: newBalance,
				Description:  fmt.Sprintf("Bahis #%d ödülü (etkinlik #%d)", bet.ID, betEventID),
				BetID:        &bet.ID,
			})
			if err != nil {
				return err
			}
		} else {
			// Kaybeden katılımcıya oynanan bahis: stake sahibine iade edilir
			if err := s.betRepo.UpdateStatusTx(tx, bet.ID, models.BetStatusLost); err != nil {
				return err
			}

			newBalance, err := s.balanceService.CreditTx(tx, bet.UserID, bet.Amount)
			if err != nil {
				return err
			}

			_, err = s.transactionRepo.CreateTx(tx, &models.Transaction{
				UserID:       bet.UserID,
				Type:         models.TransactionTypeRefund,
				Amount:       bet.Amount,
				BalanceAfter: newBalance,
				Description:  fmt.Sprintf("Bahis #%d iadesi (etkinlik #%d)", bet.ID, betEventID),
				BetID:        &bet.ID,
			})
			if err != nil {
				return err
			}
		}
	}

	log.Info().
		Int("bet_event_id", betEventID).
		Int("winner_id", winnerID).
		Int("bet_count", len(bets)).
		Msg("Etkinlik bahisleri sonuçlandırıldı")

	return nil
}

// RefundBetEventBetsTx etkinlik iptalinde bekleyen bahisleri iade eder.
// Her bahis cancelled olur, stake sahibine refund satırıyla döner.
func (s *BetService) RefundBetEventBetsTx(tx *sql.Tx, betEventID int) error {
	bets, err := s.betRepo.GetPendingByEventTx(tx, betEventID)
	if err != nil {
		return err
	}

	for _, bet := range bets {
		if err := s.betRepo.UpdateStatusTx(tx, bet.ID, models.BetStatusCancelled); err != nil {
			return err
		}

		newBalance, err := s.balanceService.CreditTx(tx, bet.UserID, bet.Amount)
		if err != nil {
			return err
		}

		_, err = s.transactionRepo.CreateTx(tx, &models.Transaction{
			UserID:       bet.UserID,
			Type:         models.TransactionTypeRefund,
			Amount:       bet.Amount,
			BalanceAfter: newBalance,
			Description:  fmt.Sprintf("Bahis #%d iptal iadesi (etkinlik #%d)", bet.ID, betEventID),
			BetID:        &bet.ID,
		})
		if err != nil {
			return err
		}
	}

	log.Info().
		Int("bet_event_id", betEventID).
		Int("bet_count", len(bets)).
		Msg("İptal edilen etkinliğin bahisleri iade edildi")

	return nil
}

// GetUserBets kullanıcının bahislerini getirir
func (s *BetService) GetUserBets(userID int) ([]*models.Bet, error) {
	return s.betRepo.GetByUserID(userID)
}

// GetBetByID ID ile bahis getirir
func (s *BetService) GetBetByID(id int) (*models.Bet, error) {
	return s.betRepo.GetByID(id)
}
