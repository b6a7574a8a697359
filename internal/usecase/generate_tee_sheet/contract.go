package generate_tee_sheet

import (
	"context"
	"time"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	"github.com/golfops/GP-TeeSheetService/internal/integrations/weather"
)

// CourseRepository интерфейс репозитория полей
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.GolfCourse, error)
	GetActiveSeason(ctx context.Context, golfCourseID int64, date time.Time) (*domain.Season, error)
	ListBlocks(ctx context.Context, golfCourseID int64, from, to time.Time) ([]*domain.CourseBlock, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListTeeSheetItems(ctx context.Context, golfCourseID int64, from, to time.Time) ([]*domain.TeeSheetItem, error)
}

// WeatherClient интерфейс клиента прогноза погоды.
// Отказы сервиса поглощаются и не валят запрос тии-листа.
type WeatherClient interface {
	ForecastForDayWithGracefulDegradation(ctx context.Context, location weather.Location, date time.Time) weather.DayForecast
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
