package golfers

import (
	"context"
	"errors"
	"fmt"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	golferRepo "github.com/golfops/GP-TeeSheetService/internal/infra/storage/golfer"
)

// Service сервис разрешения личности гольфера (identity resolver).
// Сопоставляет атрибуты места с существующим гольфером либо создает нового;
// гости минуют разрешение и встраиваются в слот без дедупликации.
type Service struct {
	golferRepo GolferRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса разрешения личности
func NewService(golferRepo GolferRepository, logger Logger) *Service {
	return &Service{
		golferRepo: golferRepo,
		logger:     logger,
	}
}

// Resolve разрешает параметры места в занимающего (Occupant).
//
// Порядок сопоставления (первое совпадение выигрывает):
//  1. Точное совпадение golfpay_identifier
//  2. Точное совпадение email (нормализованного в нижний регистр)
//  3. Точное совпадение телефона (нормализованного до цифр)
//
// Любое одиночное совпадение разрешается в найденного гольфера; атрибуты
// запроса, противоречащие найденной записи, её НЕ перезаписывают.
// Без совпадений создается новый гольфер (first_name и хотя бы один контакт
// обязательны).
func (s *Service) Resolve(ctx context.Context, params OccupantParams) (domain.Occupant, error) {
	if (params.Golfer == nil) == (params.Guest == nil) {
		return domain.Occupant{}, ErrExactlyOneOccupant
	}

	if params.Guest != nil {
		if params.Guest.Name == "" {
			return domain.Occupant{}, ErrMissingGuestName
		}
		return domain.Occupant{Guest: &domain.Guest{
			Name:  params.Guest.Name,
			Phone: params.Guest.Phone,
		}}, nil
	}

	golfer, err := s.resolveGolfer(ctx, params.Golfer)
	if err != nil {
		return domain.Occupant{}, err
	}

	return domain.Occupant{Golfer: golfer}, nil
}

func (s *Service) resolveGolfer(ctx context.Context, params *GolferParams) (*domain.Golfer, error) {
	// 1. Сопоставление по golfpay_identifier
	if params.GolfpayIdentifier != nil && *params.GolfpayIdentifier != "" {
		existing, err := s.golferRepo.GetByGolfpayIdentifier(ctx, *params.GolfpayIdentifier)
		if err == nil {
			s.logger.Info("Resolve: matched golfer id=%d by golfpay_identifier", existing.ID)
			return existing, nil
		}
		if !errors.Is(err, golferRepo.ErrGolferNotFound) {
			return nil, fmt.Errorf("%w: resolveGolfer - golfpay lookup: %v", ErrInternal, err)
		}
	}

	// 2. Сопоставление по нормализованному email
	if params.Email != nil && *params.Email != "" {
		normalized := domain.NormalizeEmail(*params.Email)
		existing, err := s.golferRepo.GetByNormalizedEmail(ctx, normalized)
		if err == nil {
			s.logger.Info("Resolve: matched golfer id=%d by email", existing.ID)
			return existing, nil
		}
		if !errors.Is(err, golferRepo.ErrGolferNotFound) {
			return nil, fmt.Errorf("%w: resolveGolfer - email lookup: %v", ErrInternal, err)
		}
	}

	// 3. Сопоставление по нормализованному телефону
	if params.Phone != nil && *params.Phone != "" {
		normalized := domain.NormalizePhone(*params.Phone)
		if normalized != "" {
			existing, err := s.golferRepo.GetByNormalizedPhone(ctx, normalized)
			if err == nil {
				s.logger.Info("Resolve: matched golfer id=%d by phone", existing.ID)
				return existing, nil
			}
			if !errors.Is(err, golferRepo.ErrGolferNotFound) {
				return nil, fmt.Errorf("%w: resolveGolfer - phone lookup: %v", ErrInternal, err)
			}
		}
	}

	// Совпадений нет - создаем нового гольфера
	golfer, err := buildNewGolfer(params)
	if err != nil {
		return nil, err
	}

	created, err := s.golferRepo.CreateOrFetch(ctx, golfer)
	if err != nil {
		return nil, fmt.Errorf("%w: resolveGolfer - create: %v", ErrInternal, err)
	}

	s.logger.Info("Resolve: created golfer id=%d", created.ID)
	return created, nil
}

// buildNewGolfer валидирует обязательные поля и готовит запись с
// нормализованными ключами сопоставления
func buildNewGolfer(params *GolferParams) (*domain.Golfer, error) {
	if params.FirstName == nil || *params.FirstName == "" {
		return nil, fmt.Errorf("%w: first_name is required", ErrMissingRequiredFields)
	}

	hasEmail := params.Email != nil && *params.Email != ""
	hasPhone := params.Phone != nil && *params.Phone != ""
	if !hasEmail && !hasPhone {
		return nil, fmt.Errorf("%w: email or phone is required", ErrMissingRequiredFields)
	}

	golfer := &domain.Golfer{
		GolfpayIdentifier: params.GolfpayIdentifier,
		FirstName:         *params.FirstName,
		LastName:          params.LastName,
		Email:             params.Email,
		Phone:             params.Phone,
	}

	if hasEmail {
		normalized := domain.NormalizeEmail(*params.Email)
		golfer.NormalizedEmail = &normalized
	}
	if hasPhone {
		normalized := domain.NormalizePhone(*params.Phone)
		if normalized != "" {
			golfer.NormalizedPhone = &normalized
		}
	}

	return golfer, nil
}
