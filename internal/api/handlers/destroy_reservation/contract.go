package destroy_reservation

import (
	"context"

	reservationModels "github.com/golfops/GP-TeeSheetService/internal/service/reservations/models"
)

// ReservationService интерфейс сервиса бронирований
type ReservationService interface {
	Destroy(ctx context.Context, reservationID int64) (*reservationModels.ReservationResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
