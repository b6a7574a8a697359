package generate_tee_sheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	courseRepo "github.com/golfops/GP-TeeSheetService/internal/infra/storage/course"
	"github.com/golfops/GP-TeeSheetService/internal/integrations/weather"
	reservationModels "github.com/golfops/GP-TeeSheetService/internal/service/reservations/models"
)

// UseCase use case генерации тии-листа поля на дату
type UseCase struct {
	courseRepo      CourseRepository
	reservationRepo ReservationRepository
	weatherClient   WeatherClient
	cache           *PlaceholderCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// weatherClient может быть nil - тогда прогноз в ответ не включается.
func NewUseCase(
	courseRepo CourseRepository,
	reservationRepo ReservationRepository,
	weatherClient WeatherClient,
	cache *PlaceholderCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		courseRepo:      courseRepo,
		reservationRepo: reservationRepo,
		weatherClient:   weatherClient,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case генерации тии-листа
//
// Для сегодняшней даты генерируется AM- либо PM-половина сетки в зависимости
// от текущего времени; для остальных дат - полный день. Времена, накрытые
// блокировками и турнирами, в сетку не попадают. Время с реальным слотом
// бронирования отдается без плейсхолдера; реальные позиции вне сетки
// попадают в выдачу как есть.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateTeeSheet: course=%d, date=%s", req.GolfCourseID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateTeeSheet: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем поле
	course, err := uc.courseRepo.GetByID(ctx, req.GolfCourseID)
	if err != nil {
		if errors.Is(err, courseRepo.ErrCourseNotFound) {
			uc.logger.Warn("GenerateTeeSheet: golf course id=%d not found", req.GolfCourseID)
			return nil, ErrCourseNotFound
		}
		uc.logger.Error("GenerateTeeSheet: failed to get golf course id=%d: %v", req.GolfCourseID, err)
		return nil, fmt.Errorf("%w: failed to get golf course: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:         req.Date.Format(domain.DateFormat),
		GolfCourseID: course.ID,
		Items:        []Item{},
	}

	// 3. Прогноз погоды: отказы поглощаются и не валят запрос
	if uc.weatherClient != nil && course.Latitude != nil && course.Longitude != nil {
		forecast := uc.weatherClient.ForecastForDayWithGracefulDegradation(ctx, weather.Location{
			Latitude:  *course.Latitude,
			Longitude: *course.Longitude,
		}, req.Date)
		resp.Weather = &forecast
	}

	// 4. Разрешаем сезон на дату. Без сезона сетка не генерируется,
	// но существующие бронирования все равно попадают в выдачу.
	season, err := uc.courseRepo.GetActiveSeason(ctx, course.ID, req.Date)
	if err != nil && !errors.Is(err, courseRepo.ErrSeasonNotFound) {
		uc.logger.Error("GenerateTeeSheet: failed to get season: %v", err)
		return nil, fmt.Errorf("%w: failed to get season: %v", ErrInternal, err)
	}

	if season == nil {
		uc.logger.Info("GenerateTeeSheet: no season covers %s for course id=%d",
			req.Date.Format(domain.DateFormat), course.ID)
		return uc.respondWithRealItemsOnly(ctx, course, req, resp)
	}

	resp.Season = seasonInfo(season)

	// 5. Вычисляем окно генерации: AM/PM-половина для сегодня, полный
	// день для остальных дат
	window, err := resolveWindow(season, req.Date, now)
	if err != nil {
		uc.logger.Error("GenerateTeeSheet: failed to resolve window: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve window: %v", ErrInternal, err)
	}

	// 6. Блокировки и турниры, накрывающие окно
	blocks, err := uc.courseRepo.ListBlocks(ctx, course.ID, window.From, window.To)
	if err != nil {
		uc.logger.Error("GenerateTeeSheet: failed to list blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to list blocks: %v", ErrInternal, err)
	}

	// 7. Реальные слоты бронирований в окне
	real, err := uc.reservationRepo.ListTeeSheetItems(ctx, course.ID, window.From, window.To)
	if err != nil {
		uc.logger.Error("GenerateTeeSheet: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	// 8. Плейсхолдеры открытых времен из кэша. Занятое реальным слотом
	// время плейсхолдер не получает: на каждое время сетки либо реальные
	// слоты, либо одно открытое время
	occupied := make(map[int64]struct{}, len(real))
	for _, item := range real {
		occupied[item.StartsAt.Unix()] = struct{}{}
	}

	placeholders := make([]*domain.TeeSheetItem, 0)
	for _, t := range gridTimes(window) {
		if isCovered(t, blocks) {
			continue
		}
		if _, busy := occupied[t.Unix()]; busy {
			continue
		}
		placeholders = append(placeholders, uc.cache.GetOrCreate(course, season, t))
	}

	// 9. Слияние и стабильная сортировка
	merged := mergeItems(real, placeholders)

	resp.Items = make([]Item, 0, len(merged))
	for _, item := range merged {
		resp.Items = append(resp.Items, toResponseItem(item))
	}

	uc.logger.Info("GenerateTeeSheet: %d items (%d real, %d open) for course=%d, date=%s",
		len(resp.Items), len(real), len(placeholders), course.ID, resp.Date)

	return resp, nil
}

// respondWithRealItemsOnly отдает тии-лист без плейсхолдеров: сетки нет,
// но исторические бронирования за день остаются видимыми
func (uc *UseCase) respondWithRealItemsOnly(ctx context.Context, course *domain.GolfCourse, req *Request, resp *Response) (*Response, error) {
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	real, err := uc.reservationRepo.ListTeeSheetItems(ctx, course.ID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GenerateTeeSheet: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	resp.Items = make([]Item, 0, len(real))
	for _, item := range real {
		resp.Items = append(resp.Items, toResponseItem(item))
	}

	return resp, nil
}

// toResponseItem конвертирует доменную позицию в ответ
func toResponseItem(item *domain.TeeSheetItem) Item {
	respItem := Item{
		StartsAt: item.StartsAt.Format(time.RFC3339),
		TeeTimeIdentifier: domain.TeeTimeID{
			GolfCourseID: item.GolfCourseID,
			StartsAt:     item.StartsAt,
		}.String(),
		Open:          item.Placeholder,
		ReservationID: item.ReservationID,
	}

	if item.Slot != nil {
		slot := reservationModels.FromDomainSlot(item.Slot)
		respItem.Slot = &slot
	}

	return respItem
}
