package generate_tee_sheet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	courseRepo "github.com/golfops/GP-TeeSheetService/internal/infra/storage/course"
	"github.com/golfops/GP-TeeSheetService/internal/integrations/weather"
	"github.com/golfops/GP-TeeSheetService/pkg/ptr"
)

var sheetDate = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

type mockCourseRepo struct {
	course *domain.GolfCourse
	season *domain.Season
	blocks []*domain.CourseBlock
}

func (m *mockCourseRepo) GetByID(_ context.Context, id int64) (*domain.GolfCourse, error) {
	if m.course == nil || m.course.ID != id {
		return nil, courseRepo.ErrCourseNotFound
	}
	return m.course, nil
}

func (m *mockCourseRepo) GetActiveSeason(_ context.Context, _ int64, date time.Time) (*domain.Season, error) {
	if m.season == nil || !m.season.Covers(date) {
		return nil, courseRepo.ErrSeasonNotFound
	}
	return m.season, nil
}

func (m *mockCourseRepo) ListBlocks(_ context.Context, _ int64, _, _ time.Time) ([]*domain.CourseBlock, error) {
	return m.blocks, nil
}

type mockReservationRepo struct {
	items []*domain.TeeSheetItem
}

func (m *mockReservationRepo) ListTeeSheetItems(_ context.Context, _ int64, from, to time.Time) ([]*domain.TeeSheetItem, error) {
	result := make([]*domain.TeeSheetItem, 0)
	for _, item := range m.items {
		if !item.StartsAt.Before(from) && item.StartsAt.Before(to) {
			result = append(result, item)
		}
	}
	return result, nil
}

type mockWeatherClient struct {
	forecast weather.DayForecast
	calls    int
}

func (m *mockWeatherClient) ForecastForDayWithGracefulDegradation(_ context.Context, _ weather.Location, _ time.Time) weather.DayForecast {
	m.calls++
	return m.forecast
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func fixtureCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{
		course: &domain.GolfCourse{ID: 3, PropertyID: 1, Capacity: 4},
		season: &domain.Season{
			ID:        11,
			Name:      "Summer",
			StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC),
			OpenTime:  "07:00",
			CloseTime: "19:00",
			TimeFrames: []domain.TimeFrame{
				{StartTime: "07:00", EndTime: "12:00", GreenFee: 50, CartFee: 20},
				{StartTime: "12:00", EndTime: "19:00", GreenFee: 35, CartFee: 20},
			},
		},
	}
}

func newUseCase(courses *mockCourseRepo, reservations *mockReservationRepo, weatherClient WeatherClient, now time.Time) *UseCase {
	uc := NewUseCase(courses, reservations, weatherClient, NewPlaceholderCache(), noopLogger{})
	uc.timeProvider = fixedTimeProvider{now: now}
	return uc
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 6, 15, hour, minute, 0, 0, time.UTC)
}

func TestExecute_FullDayForFutureDate(t *testing.T) {
	// "Сейчас" за день до запрошенной даты
	now := time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC)
	uc := newUseCase(fixtureCourseRepo(), &mockReservationRepo{}, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{GolfCourseID: 3, Date: sheetDate})
	require.NoError(t, err)

	// 07:00..19:00 включительно с шагом 30 минут = 25 слотов
	assert.Len(t, resp.Items, 25)
	assert.Equal(t, at(7, 0).Format(time.RFC3339), resp.Items[0].StartsAt)
	assert.Equal(t, at(19, 0).Format(time.RFC3339), resp.Items[len(resp.Items)-1].StartsAt)
	for _, item := range resp.Items {
		assert.True(t, item.Open)
	}

	require.NotNil(t, resp.Season)
	assert.Equal(t, "Summer", resp.Season.Name)
	assert.Len(t, resp.Season.TimeFrames, 2)
}

func TestExecute_MorningGivesAMPartition(t *testing.T) {
	uc := newUseCase(fixtureCourseRepo(), &mockReservationRepo{}, nil, at(9, 15))

	resp, err := uc.Execute(context.Background(), &Request{GolfCourseID: 3, Date: sheetDate})
	require.NoError(t, err)

	// 07:00..11:30 = 10 слотов, полдень не входит
	assert.Len(t, resp.Items, 10)
	assert.Equal(t, at(7, 0).Format(time.RFC3339), resp.Items[0].StartsAt)
	assert.Equal(t, at(11, 30).Format(time.RFC3339), resp.Items[len(resp.Items)-1].StartsAt)
}

func TestExecute_AfternoonGivesPMPartition(t *testing.T) {
	uc := newUseCase(fixtureCourseRepo(), &mockReservationRepo{}, nil, at(14, 40))

	resp, err := uc.Execute(context.Background(), &Request{GolfCourseID: 3, Date: sheetDate})
	require.NoError(t, err)

	// 12:00..19:00 = 15 слотов
	assert.Len(t, resp.Items, 15)
	assert.Equal(t, at(12, 0).Format(time.RFC3339), resp.Items[0].StartsAt)
	assert.Equal(t, at(19, 0).Format(time.RFC3339), resp.Items[len(resp.Items)-1].StartsAt)
}

func TestExecute_SkipsBlockedTimes(t *testing.T) {
	courses := fixtureCourseRepo()
	courses.blocks = []*domain.CourseBlock{
		{Kind: domain.BlockKindTournament, StartsAt: at(8, 0), EndsAt: at(9, 0)},
	}
	now := time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC)
	uc := newUseCase(courses, &mockReservationRepo{}, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{GolfCourseID: 3, Date: sheetDate})
	require.NoError(t, err)

	// 08:00 и 08:30 накрыты, 09:00 (конец блока, полуинтервал) - нет
	assert.Len(t, resp.Items, 23)
	for _, item := range resp.Items {
		assert.NotEqual(t, at(8, 0).Format(time.RFC3339), item.StartsAt)
		assert.NotEqual(t, at(8, 30).Format(time.RFC3339), item.StartsAt)
	}
}

func TestExecute_MergesRealItems(t *testing.T) {
	slot := &domain.Slot{ID: 7, Position: 1, Holes: domain.Holes18,
		Transportation: domain.TransportationCart,
		GolferState:    domain.GolferStateReserved, PaymentState: domain.PaymentStateUnpaid}
	reservations := &mockReservationRepo{
		items: []*domain.TeeSheetItem{
			{StartsAt: at(9, 0), GolfCourseID: 3, ReservationID: ptr.Ptr(int64(42)), Slot: slot},
		},
	}
	now := time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC)
	cache := NewPlaceholderCache()
	uc := NewUseCase(fixtureCourseRepo(), reservations, nil, cache, noopLogger{})
	uc.timeProvider = fixedTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{GolfCourseID: 3, Date: sheetDate})
	require.NoError(t, err)

	// 24 плейсхолдера + 1 реальный слот: занятое время плейсхолдер не получает
	require.Len(t, resp.Items, 25)
	assert.Equal(t, 24, cache.Len())

	// На 09:00 ровно одна позиция - реальный слот
	var atNine []Item
	for _, item := range resp.Items {
		if item.StartsAt == at(9, 0).Format(time.RFC3339) {
			atNine = append(atNine, item)
		}
	}
	require.Len(t, atNine, 1)
	assert.False(t, atNine[0].Open)
	require.NotNil(t, atNine[0].ReservationID)
	assert.Equal(t, int64(42), *atNine[0].ReservationID)
	require.NotNil(t, atNine[0].Slot)
}

func TestExecute_OccupiedTimeHasNoOpenItem(t *testing.T) {
	reservations := &mockReservationRepo{
		items: []*domain.TeeSheetItem{
			{StartsAt: at(9, 0), GolfCourseID: 3, ReservationID: ptr.Ptr(int64(42)),
				Slot: &domain.Slot{ID: 7}},
		},
	}
	now := time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC)
	uc := newUseCase(fixtureCourseRepo(), reservations, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{GolfCourseID: 3, Date: sheetDate})
	require.NoError(t, err)

	for _, item := range resp.Items {
		if item.StartsAt == at(9, 0).Format(time.RFC3339) {
			assert.False(t, item.Open, "occupied time must not be offered as open")
		}
	}
}

func TestExecute_OffGridRealItemIncluded(t *testing.T) {
	reservations := &mockReservationRepo{
		items: []*domain.TeeSheetItem{
			{StartsAt: at(9, 17), GolfCourseID: 3, ReservationID: ptr.Ptr(int64(42)),
				Slot: &domain.Slot{ID: 7}},
		},
	}
	now := time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC)
	uc := newUseCase(fixtureCourseRepo(), reservations, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{GolfCourseID: 3, Date: sheetDate})
	require.NoError(t, err)

	// Позиция вне сетки встает между 09:00 и 09:30
	require.Len(t, resp.Items, 26)
	var found bool
	for i, item := range resp.Items {
		if item.StartsAt == at(9, 17).Format(time.RFC3339) {
			found = true
			assert.Equal(t, at(9, 0).Format(time.RFC3339), resp.Items[i-1].StartsAt)
			assert.Equal(t, at(9, 30).Format(time.RFC3339), resp.Items[i+1].StartsAt)
		}
	}
	assert.True(t, found)
}

func TestExecute_PlaceholdersComeFromCache(t *testing.T) {
	now := time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC)
	cache := NewPlaceholderCache()
	uc := NewUseCase(fixtureCourseRepo(), &mockReservationRepo{}, nil, cache, noopLogger{})
	uc.timeProvider = fixedTimeProvider{now: now}

	_, err := uc.Execute(context.Background(), &Request{GolfCourseID: 3, Date: sheetDate})
	require.NoError(t, err)
	assert.Equal(t, 25, cache.Len())

	// Повторная генерация не плодит записей
	_, err = uc.Execute(context.Background(), &Request{GolfCourseID: 3, Date: sheetDate})
	require.NoError(t, err)
	assert.Equal(t, 25, cache.Len())
}

func TestExecute_NoSeasonReturnsRealItemsOnly(t *testing.T) {
	courses := fixtureCourseRepo()
	courses.season = nil
	reservations := &mockReservationRepo{
		items: []*domain.TeeSheetItem{
			{StartsAt: at(9, 0), GolfCourseID: 3, ReservationID: ptr.Ptr(int64(42)), Slot: &domain.Slot{ID: 7}},
		},
	}
	uc := newUseCase(courses, reservations, nil, at(9, 0))

	resp, err := uc.Execute(context.Background(), &Request{GolfCourseID: 3, Date: sheetDate})
	require.NoError(t, err)
	assert.Nil(t, resp.Season)
	require.Len(t, resp.Items, 1)
	assert.False(t, resp.Items[0].Open)
}

func TestExecute_WeatherOverlay(t *testing.T) {
	courses := fixtureCourseRepo()
	courses.course.Latitude = ptr.Ptr(33.5)
	courses.course.Longitude = ptr.Ptr(-112.0)
	weatherClient := &mockWeatherClient{
		forecast: weather.DayForecast{
			Date:    "2026-06-15",
			Weather: &weather.Forecast{Summary: "sunny", TempHigh: 38},
		},
	}
	uc := newUseCase(courses, &mockReservationRepo{}, weatherClient, at(9, 0))

	resp, err := uc.Execute(context.Background(), &Request{GolfCourseID: 3, Date: sheetDate})
	require.NoError(t, err)
	require.NotNil(t, resp.Weather)
	assert.Equal(t, "sunny", resp.Weather.Weather.Summary)
	assert.Equal(t, 1, weatherClient.calls)
}

func TestExecute_WeatherDegradationDoesNotFail(t *testing.T) {
	courses := fixtureCourseRepo()
	courses.course.Latitude = ptr.Ptr(33.5)
	courses.course.Longitude = ptr.Ptr(-112.0)
	weatherClient := &mockWeatherClient{
		forecast: weather.DayForecast{
			Date:         "2026-06-15",
			ErrorMessage: ptr.Ptr("weather service degraded: timeout"),
		},
	}
	uc := newUseCase(courses, &mockReservationRepo{}, weatherClient, at(9, 0))

	resp, err := uc.Execute(context.Background(), &Request{GolfCourseID: 3, Date: sheetDate})
	require.NoError(t, err)
	require.NotNil(t, resp.Weather)
	assert.Nil(t, resp.Weather.Weather)
	assert.NotNil(t, resp.Weather.ErrorMessage)
	assert.NotEmpty(t, resp.Items)
}

func TestExecute_CourseNotFound(t *testing.T) {
	uc := newUseCase(&mockCourseRepo{}, &mockReservationRepo{}, nil, at(9, 0))

	_, err := uc.Execute(context.Background(), &Request{GolfCourseID: 3, Date: sheetDate})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestPlaceholderCache_EvictDay(t *testing.T) {
	cache := NewPlaceholderCache()
	course := &domain.GolfCourse{ID: 3, PropertyID: 1}
	season := &domain.Season{ID: 11}

	cache.GetOrCreate(course, season, at(9, 0))
	cache.GetOrCreate(course, season, at(9, 30))
	cache.GetOrCreate(course, season, at(9, 0).AddDate(0, 0, 1))
	require.Equal(t, 3, cache.Len())

	cache.EvictDay(3, sheetDate)
	assert.Equal(t, 1, cache.Len())
}

func TestPlaceholderCache_SeasonChangeRotatesKey(t *testing.T) {
	cache := NewPlaceholderCache()
	course := &domain.GolfCourse{ID: 3, PropertyID: 1}

	first := cache.GetOrCreate(course, &domain.Season{ID: 11}, at(9, 0))
	second := cache.GetOrCreate(course, &domain.Season{ID: 12}, at(9, 0))

	assert.NotSame(t, first, second)
	assert.Equal(t, 2, cache.Len())
}
