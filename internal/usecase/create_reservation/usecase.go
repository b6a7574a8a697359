package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	courseRepo "github.com/golfops/GP-TeeSheetService/internal/infra/storage/course"
	golferRepo "github.com/golfops/GP-TeeSheetService/internal/infra/storage/golfer"
	"github.com/golfops/GP-TeeSheetService/internal/service/golfers"
	reservationModels "github.com/golfops/GP-TeeSheetService/internal/service/reservations/models"
)

// UseCase use case для создания бронирования на тии-тайм
type UseCase struct {
	courseRepo       CourseRepository
	reservationRepo  ReservationRepository
	golferRepo       GolferRepository
	identityResolver IdentityResolver
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	courseRepo CourseRepository,
	reservationRepo ReservationRepository,
	golferRepo GolferRepository,
	identityResolver IdentityResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		courseRepo:       courseRepo,
		reservationRepo:  reservationRepo,
		golferRepo:       golferRepo,
		identityResolver: identityResolver,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию: проверка вместимости тии-тайма,
// разрешение личностей и вставка либо проходят целиком, либо откатываются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*reservationModels.ReservationResponse, error) {
	uc.logger.Info("CreateReservation: tee_time=%s, slots=%d", req.TeeTimeIdentifier, len(req.Slots))

	// 1. Валидация входных данных и разбор идентификатора тии-тайма
	teeTimeID, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем поле
	course, err := uc.courseRepo.GetByID(ctx, teeTimeID.GolfCourseID)
	if err != nil {
		if errors.Is(err, courseRepo.ErrCourseNotFound) {
			uc.logger.Warn("CreateReservation: golf course id=%d not found", teeTimeID.GolfCourseID)
			return nil, ErrCourseNotFound
		}
		uc.logger.Error("CreateReservation: failed to get golf course id=%d: %v", teeTimeID.GolfCourseID, err)
		return nil, fmt.Errorf("%w: failed to get golf course: %v", ErrInternal, err)
	}

	// 3. Разрешаем сезон на дату тии-тайма и проверяем рабочие часы
	season, err := uc.courseRepo.GetActiveSeason(ctx, course.ID, teeTimeID.StartsAt)
	if err != nil {
		if errors.Is(err, courseRepo.ErrSeasonNotFound) {
			uc.logger.Warn("CreateReservation: no season covers %s for course id=%d",
				teeTimeID.StartsAt.Format(domain.DateFormat), course.ID)
			return nil, fmt.Errorf("%w: no season covers this date", ErrTeeTimeNotBookable)
		}
		uc.logger.Error("CreateReservation: failed to get season: %v", err)
		return nil, fmt.Errorf("%w: failed to get season: %v", ErrInternal, err)
	}

	if err := validateTeeTimeWithinSeason(teeTimeID, season); err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	// 4. Проверяем блокировки и турниры, накрывающие тии-тайм
	blocks, err := uc.courseRepo.ListBlocks(ctx, course.ID,
		teeTimeID.StartsAt, teeTimeID.StartsAt.Add(domain.SlotIntervalMinutes*time.Minute))
	if err != nil {
		uc.logger.Error("CreateReservation: failed to list blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocks: %v", ErrInternal, err)
	}

	for _, block := range blocks {
		if block.Covers(teeTimeID.StartsAt) {
			uc.logger.Warn("CreateReservation: tee time covered by %s id=%d", block.Kind, block.ID)
			return nil, fmt.Errorf("%w: tee time is covered by a %s", ErrTeeTimeNotBookable, block.Kind)
		}
	}

	capacity := course.Capacity
	if capacity <= 0 {
		capacity = domain.DefaultTeeTimeCapacity
	}

	var result *domain.Reservation

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Считаем занятые места с блокировкой строк (FOR UPDATE)
		taken, err := uc.reservationRepo.CountSlotsAtTeeTime(txCtx, course.ID, teeTimeID.StartsAt)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to count slots: %v", err)
			return fmt.Errorf("%w: failed to count slots: %v", ErrInternal, err)
		}

		if taken+len(req.Slots) > capacity {
			uc.logger.Warn("CreateReservation: no room, %d taken + %d requested > %d capacity",
				taken, len(req.Slots), capacity)
			return ErrNoAvailableSlots
		}

		// 5.2. Разрешаем личность каждого места
		slots := make([]*domain.Slot, 0, len(req.Slots))
		for i := range req.Slots {
			params := &req.Slots[i]

			occupant, err := uc.identityResolver.Resolve(txCtx, golfers.OccupantParams{
				Golfer: params.Golfer,
				Guest:  params.Guest,
			})
			if err != nil {
				uc.logger.Warn("CreateReservation: identity resolution failed for slot %d: %v", i+1, err)
				return err
			}

			slots = append(slots, buildSlot(params, occupant, i+1))
		}

		// 5.3. Определяем владельца бронирования
		owner, err := uc.resolveOwner(txCtx, req.OwnerGolfpayIdentifier, slots)
		if err != nil {
			return err
		}

		// 5.4. Сохраняем бронирование
		reservation := &domain.Reservation{
			GolfCourseID:      course.ID,
			PropertyID:        course.PropertyID,
			TeeTimeIdentifier: teeTimeID.String(),
			StartsAt:          teeTimeID.StartsAt,
			Owner:             owner,
			Notes:             req.Notes,
			Slots:             slots,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)
	return reservationModels.FromDomainReservation(result), nil
}

// resolveOwner определяет владельца бронирования: явный golfpay-идентификатор
// либо гольфер первого места. Бронирование из одних гостей остается без
// владельца.
func (uc *UseCase) resolveOwner(ctx context.Context, ownerIdentifier *string, slots []*domain.Slot) (*domain.Golfer, error) {
	if ownerIdentifier != nil && *ownerIdentifier != "" {
		owner, err := uc.golferRepo.GetByGolfpayIdentifier(ctx, *ownerIdentifier)
		if err != nil {
			if errors.Is(err, golferRepo.ErrGolferNotFound) {
				uc.logger.Warn("CreateReservation: owner golfpay_identifier=%s not found", *ownerIdentifier)
				return nil, ErrOwnerNotFound
			}
			uc.logger.Error("CreateReservation: failed to get owner: %v", err)
			return nil, fmt.Errorf("%w: failed to get owner: %v", ErrInternal, err)
		}
		return owner, nil
	}

	for _, slot := range slots {
		if slot.Occupant.Golfer != nil {
			return slot.Occupant.Golfer, nil
		}
	}

	return nil, nil
}

// buildSlot собирает доменный слот из параметров запроса
func buildSlot(params *SlotParams, occupant domain.Occupant, position int) *domain.Slot {
	slot := &domain.Slot{
		Position:       position,
		Holes:          domain.Holes(params.Holes),
		Transportation: domain.Transportation(params.Transportation),
		Occupant:       occupant,
		FeeSummary:     params.FeeSummary,
		GolferState:    domain.GolferStateReserved,
		PaymentState:   domain.PaymentStateUnpaid,
	}

	slot.Fees = make([]domain.FeeLineItem, 0, len(params.Fees))
	for _, fee := range params.Fees {
		slot.Fees = append(slot.Fees, domain.FeeLineItem{
			Kind:        fee.Kind,
			Amount:      fee.Amount,
			Tax:         fee.Tax,
			Description: fee.Description,
		})
	}

	return slot
}
