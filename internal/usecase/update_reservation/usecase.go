package update_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	reservationRepo "github.com/golfops/GP-TeeSheetService/internal/infra/storage/reservation"
	"github.com/golfops/GP-TeeSheetService/internal/integrations/clover"
	reservationModels "github.com/golfops/GP-TeeSheetService/internal/service/reservations/models"
)

// UseCase use case для обновления бронирования: атрибуты и pay-переход
type UseCase struct {
	reservationRepo ReservationRepository
	propertyRepo    PropertyRepository
	cloverClient    CloverClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	propertyRepo PropertyRepository,
	cloverClient CloverClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		propertyRepo:    propertyRepo,
		cloverClient:    cloverClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case обновления бронирования
// Все мутации и вызовы Clover идут в одной сериализуемой транзакции с
// блокировкой строки бронирования: отказ Clover откатывает обновление целиком
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*reservationModels.ReservationResponse, error) {
	uc.logger.Info("UpdateReservation: id=%d, paying_slot=%v", req.ReservationID, req.PayingSlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Reservation

	// 2. Выполняем обновление в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование с блокировкой строки (FOR UPDATE)
		reservation, err := uc.reservationRepo.GetByIDForUpdate(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("UpdateReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2.2. Обновляем атрибуты: верхнеуровневый notes и attributes
		if attrs := effectiveAttributes(req); attrs != nil {
			if err := uc.applyAttributes(txCtx, reservation, attrs); err != nil {
				return err
			}
		}

		// 2.3. Pay-переход
		if req.PayingSlotID != nil {
			if err := uc.paySlot(txCtx, reservation, req); err != nil {
				return err
			}
		}

		result = reservation
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d", result.ID)
	return reservationModels.FromDomainReservation(result), nil
}

// applyAttributes обновляет заметки и connect-идентификатор
func (uc *UseCase) applyAttributes(ctx context.Context, reservation *domain.Reservation, attrs *AttributesParams) error {
	err := uc.reservationRepo.UpdateAttributes(ctx, reservation.ID, attrs.Notes, attrs.ConnectReservationIdentifier)
	if err != nil {
		uc.logger.Error("UpdateReservation: failed to update attributes: %v", err)
		return fmt.Errorf("%w: failed to update attributes: %v", ErrInternal, err)
	}

	if attrs.Notes != nil {
		reservation.Notes = attrs.Notes
	}
	if attrs.ConnectReservationIdentifier != nil {
		reservation.ConnectReservationIdentifier = attrs.ConnectReservationIdentifier
	}

	return nil
}

// paySlot выполняет pay-переход ровно одного слота: доменный переход,
// оркестрация Clover и сохранение платежных полей
func (uc *UseCase) paySlot(ctx context.Context, reservation *domain.Reservation, req *Request) error {
	slot := reservation.SlotByID(*req.PayingSlotID)
	if slot == nil {
		uc.logger.Warn("UpdateReservation: slot id=%d not found in reservation id=%d",
			*req.PayingSlotID, reservation.ID)
		return ErrSlotNotFound
	}

	// Property должен быть настроен для Clover до любых мутаций
	property, err := uc.propertyRepo.GetByID(ctx, reservation.PropertyID)
	if err != nil {
		uc.logger.Error("UpdateReservation: failed to get property id=%d: %v", reservation.PropertyID, err)
		return fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	if !property.HasCloverTender() {
		uc.logger.Warn("UpdateReservation: property id=%d has no clover tender", property.ID)
		return ErrCloverConfig
	}

	// Доменный переход: повторная оплата отклоняется без мутаций
	details := domain.PaymentDetails{
		Amount:          req.PaymentDetails.Amount,
		PaymentDatetime: req.PaymentDetails.PaymentDatetime,
		Fop:             req.PaymentDetails.Fop,
		FopLast4Digits:  req.PaymentDetails.FopLast4Digits,
	}

	if err := slot.Pay(details, uc.timeProvider.Now()); err != nil {
		if errors.Is(err, domain.ErrPaymentAlreadyInitiated) {
			uc.logger.Warn("UpdateReservation: slot id=%d already paid", slot.ID)
			return fmt.Errorf("%w: slot id=%d", ErrPaymentAlreadyInitiated, slot.ID)
		}
		return fmt.Errorf("%w: pay transition: %v", ErrInternal, err)
	}

	// Оркестрация Clover: заказ -> блокировка -> оплата через tender.
	// Любая ошибка - жесткий отказ, транзакция откатывается целиком.
	orderID, err := uc.cloverClient.CreateOrder(ctx, cloverLineItems(slot), nil)
	if err != nil {
		uc.logger.Error("UpdateReservation: clover create order failed: %v", err)
		return fmt.Errorf("%w: %v", ErrCloverError, err)
	}

	if err := uc.cloverClient.UpdateOrderState(ctx, orderID, clover.OrderStateLocked); err != nil {
		uc.logger.Error("UpdateReservation: clover lock order failed: %v", err)
		return fmt.Errorf("%w: %v", ErrCloverError, err)
	}

	amount := clover.ToCents(*slot.PaymentAmount)
	if err := uc.cloverClient.ApplyTender(ctx, orderID, *property.CloverConnectTenderIdentifier, amount); err != nil {
		uc.logger.Error("UpdateReservation: clover apply tender failed: %v", err)
		return fmt.Errorf("%w: %v", ErrCloverError, err)
	}

	if err := uc.reservationRepo.UpdateSlotPayment(ctx, slot); err != nil {
		uc.logger.Error("UpdateReservation: failed to persist slot payment: %v", err)
		return fmt.Errorf("%w: failed to persist slot payment: %v", ErrInternal, err)
	}

	// Первый успешный платеж закрепляет за бронированием connect-идентификатор
	if reservation.ConnectReservationIdentifier == nil {
		identifier := uuid.NewString()
		if err := uc.reservationRepo.UpdateAttributes(ctx, reservation.ID, nil, &identifier); err != nil {
			uc.logger.Error("UpdateReservation: failed to set connect identifier: %v", err)
			return fmt.Errorf("%w: failed to set connect identifier: %v", ErrInternal, err)
		}
		reservation.ConnectReservationIdentifier = &identifier
	}

	uc.logger.Info("UpdateReservation: slot id=%d paid, clover order=%s, amount=%d cents",
		slot.ID, orderID, amount)
	return nil
}

// cloverLineItems собирает позиции заказа Clover из сборов слота.
// Слот без сборов оплачивается одной позицией на итоговую сумму.
func cloverLineItems(slot *domain.Slot) []clover.LineItem {
	if len(slot.Fees) == 0 {
		return []clover.LineItem{{
			Name:  fmt.Sprintf("Slot %d", slot.Position),
			Price: clover.ToCents(*slot.PaymentAmount),
		}}
	}

	items := make([]clover.LineItem, 0, len(slot.Fees))
	for _, fee := range slot.Fees {
		name := fee.Kind
		if fee.Description != "" {
			name = fee.Description
		}
		items = append(items, clover.LineItem{
			Name:     name,
			Price:    clover.ToCents(fee.Amount),
			TaxCents: clover.ToCents(fee.Tax),
		})
	}
	return items
}
