package create_reservation

import (
	"context"
	"time"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	"github.com/golfops/GP-TeeSheetService/internal/service/golfers"
)

// CourseRepository интерфейс репозитория полей
type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.GolfCourse, error)
	GetActiveSeason(ctx context.Context, golfCourseID int64, date time.Time) (*domain.Season, error)
	ListBlocks(ctx context.Context, golfCourseID int64, from, to time.Time) ([]*domain.CourseBlock, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	CountSlotsAtTeeTime(ctx context.Context, golfCourseID int64, startsAt time.Time) (int, error)
}

// GolferRepository интерфейс репозитория гольферов (поиск владельца)
type GolferRepository interface {
	GetByGolfpayIdentifier(ctx context.Context, identifier string) (*domain.Golfer, error)
}

// IdentityResolver интерфейс сервиса разрешения личности гольфера
type IdentityResolver interface {
	Resolve(ctx context.Context, params golfers.OccupantParams) (domain.Occupant, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
