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

// EventService etkinlik business logic'i.
// Sonuçlandırma ve iptal, bet_events satırındaki exclusive kilit + aynı
// transaction'daki status kontrolü ile etkinlik başına tam bir kez koşar.
type EventService struct {
	db         *sql.DB
	eventRepo  interfaces.EventRepositoryInterface
	settlement interfaces.SettlementExecutor
	refunder   interfaces.RefundExecutor
}

// NewEventService yeni service oluşturur
func NewEventService(
	database *sql.DB,
	eventRepo interfaces.EventRepositoryInterface,
	settlement interfaces.SettlementExecutor,
	refunder interfaces.RefundExecutor,
) *EventService {
	return &EventService{
		db:         database,
		eventRepo:  eventRepo,
		settlement: settlement,
		refunder:   refunder,
	}
}

// CreateEvent yeni etkinlik ve katılımcı listesi oluşturur
func (s *EventService) CreateEvent(req *models.CreateBetEventRequest) (*models.BetEvent, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("etkinlik başlığı boş olamaz: %w", svcerr.ErrInvalidState)
	}
	if len(req.ParticipantsIDs) == 0 {
		return nil, fmt.Errorf("etkinlik en az bir katılımcı içermeli: %w", svcerr.ErrInvalidState)
	}

	event, err := s.eventRepo.Create(req)
	if err != nil {
		return nil, err
	}

	err = db.WithTransaction(s.db, func(tx *sql.Tx) error {
		return s.replaceParticipantsTx(tx, event.ID, req.ParticipantsIDs)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("bet_event_id", event.ID).
		Int("participant_count", len(req.ParticipantsIDs)).
		Msg("Etkinlik oluşturuldu")

	return s.GetEventByID(event.ID)
}

// UpdateEvent etkinliği günceller. Terminal durumdaki etkinlik değiştirilemez.
// ParticipantsIDs gönderilirse mevcut katılımcı listesi komple değiştirilir.
func (s *EventService) UpdateEvent(id int, req *models.UpdateBetEventRequest) (*models.BetEvent, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event.IsTerminal() {
		return nil, fmt.Errorf("etkinlik durumu %s: %w", event.Status, svcerr.ErrInvalidState)
	}

	// Status alanı bu endpoint'ten sadece upcoming/active arasında değişebilir
	if req.Status != nil && *req.Status != models.EventStatusUpcoming && *req.Status != models.EventStatusActive {
		return nil, fmt.Errorf("durum geçişi %s bu işlemle yapılamaz: %w", *req.Status, svcerr.ErrInvalidState)
	}

	if err := s.eventRepo.Update(id, req); err != nil {
		return nil, err
	}

	if req.ParticipantsIDs != nil {
		err = db.WithTransaction(s.db, func(tx *sql.Tx) error {
			return s.replaceParticipantsTx(tx, id, req.ParticipantsIDs)
		})
		if err != nil {
			return nil, err
		}
	}

	return s.GetEventByID(id)
}

// EndEvent etkinliği sonuçlandırır: kazanan yazılır, bekleyen bahisler
// aynı transaction içinde dağıtılır. İkinci çağrı kilit + status kontrolüne
// takılır ve etkinliğe uygun hata döner; settlement asla iki kez koşmaz.
func (s *EventService) EndEvent(id int, req *models.EndBetEventRequest) (*models.BetEvent, error) {
	err := db.WithTransaction(s.db, func(tx *sql.Tx) error {
		event, err := s.eventRepo.GetForUpdateTx(tx, id)
		if err != nil {
			return err
		}

		switch event.Status {
		case models.EventStatusFinished:
			return svcerr.ErrAlreadyFinished
		case models.EventStatusCancelled:
			return svcerr.ErrAlreadyCancelled
		}

		// Kazanan, etkinliğin katılımcılarından biri olmalı
		isParticipant, err := s.eventRepo.HasParticipantUserTx(tx, id, req.WinnerID)
		if err != nil {
			return err
		}
		if !isParticipant {
			return fmt.Errorf("kullanıcı %d etkinlik %d katılımcısı değil: %w", req.WinnerID, id, svcerr.ErrInvalidWinner)
		}

		if err := s.eventRepo.SetFinishedTx(tx, id, req.WinnerID); err != nil {
			return err
		}

		return s.settlement.ProcessBetEventResultsTx(tx, id, req.WinnerID)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("bet_event_id", id).
		Int("winner_id", req.WinnerID).
		Msg("Etkinlik sonuçlandırıldı")

	return s.GetEventByID(id)
}

// CancelEvent etkinliği iptal eder ve bekleyen bahisleri iade eder
func (s *EventService) CancelEvent(id int) (*models.BetEvent, error) {
	err := db.WithTransaction(s.db, func(tx *sql.Tx) error {
		event, err := s.eventRepo.GetForUpdateTx(tx, id)
		if err != nil {
			return err
		}

		switch event.Status {
		case models.EventStatusFinished:
			return svcerr.ErrAlreadyFinished
		case models.EventStatusCancelled:
			return svcerr.ErrAlreadyCancelled
		}

		if err := s.eventRepo.SetCancelledTx(tx, id); err != nil {
			return err
		}

		return s.refunder.RefundBetEventBetsTx(tx, id)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int("bet_event_id", id).Msg("Etkinlik iptal edildi")

	return s.GetEventByID(id)
}

// GetAllEvents etkinlikleri katılımcılarıyla listeler
func (s *EventService) GetAllEvents() ([]*models.BetEvent, error) {
	events, err := s.eventRepo.GetAll()
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		participants, err := s.eventRepo.GetParticipants(event.ID)
		if err != nil {
			return nil, err
		}
		event.Participants = participants
	}

	return events, nil
}

// GetEventByID etkinliği katılımcılarıyla getirir
func (s *EventService) GetEventByID(id int) (*models.BetEvent, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	participants, err := s.eventRepo.GetParticipants(id)
	if err != nil {
		return nil, err
	}
	event.Participants = participants

	return event, nil
}

// GetParticipantStats katılımcının etkinlik istatistiklerini getirir
func (s *EventService) GetParticipantStats(userID int) ([]*models.ParticipantEventStats, error) {
	return s.eventRepo.GetParticipantStats(userID)
}

// replaceParticipantsTx id listesini doğrulayıp katılımcıları komple değiştirir
func (s *EventService) replaceParticipantsTx(tx *sql.Tx, betEventID int, userIDs []int) error {
	count, err := s.eventRepo.CountUsersWithRoleTx(tx, userIDs, models.RoleParticipant)
	if err != nil {
		return err
	}
	if count != len(userIDs) {
		return fmt.Errorf("katılımcı listesi role=participant olmayan kullanıcı içeriyor: %w", svcerr.ErrInvalidState)
	}

	return s.eventRepo.ReplaceParticipantsTx(tx, betEventID, userIDs)
}
