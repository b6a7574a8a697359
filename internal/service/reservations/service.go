package reservations

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "github.com/golfops/GP-TeeSheetService/internal/infra/storage/reservation"
	"github.com/golfops/GP-TeeSheetService/internal/service/reservations/models"
)

// Service сервис чтения и удаления бронирований
type Service struct {
	reservationRepo ReservationRepository
	txManager       TxManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Show возвращает бронирование со слотами, владельцем и сборами
func (s *Service) Show(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Show: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Show: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Show - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// Destroy удаляет бронирование, если ни один его слот не оплачен.
// Проверка и удаление выполняются в одной транзакции с блокировкой строки,
// чтобы параллельная оплата не проскочила между проверкой и удалением.
// Возвращает снимок бронирования на момент удаления.
func (s *Service) Destroy(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	var destroyed *models.ReservationResponse

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		reservation, err := s.reservationRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Destroy: reservation id=%d not found", id)
				return ErrReservationNotFound
			}
			s.logger.Error("Destroy: repository error for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: Destroy - repository error: %v", ErrInternal, err)
		}

		if !reservation.CanBeDestroyed() {
			s.logger.Warn("Destroy: reservation id=%d has paid slots", id)
			return fmt.Errorf("%w: reservation id=%d", ErrHasPaidSlots, id)
		}

		if err := s.reservationRepo.Delete(ctx, id); err != nil {
			s.logger.Error("Destroy: failed to delete reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: Destroy - delete reservation: %v", ErrInternal, err)
		}

		destroyed = models.FromDomainReservation(reservation)
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Destroy: reservation id=%d deleted", id)
	return destroyed, nil
}
