package golfers

import (
	"context"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
)

// GolferRepository интерфейс репозитория гольферов
type GolferRepository interface {
	GetByGolfpayIdentifier(ctx context.Context, identifier string) (*domain.Golfer, error)
	GetByNormalizedEmail(ctx context.Context, email string) (*domain.Golfer, error)
	GetByNormalizedPhone(ctx context.Context, phone string) (*domain.Golfer, error)
	CreateOrFetch(ctx context.Context, golfer *domain.Golfer) (*domain.Golfer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
