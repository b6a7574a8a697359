package update_reservation

import (
	"context"

	reservationModels "github.com/golfops/GP-TeeSheetService/internal/service/reservations/models"
	updateReservation "github.com/golfops/GP-TeeSheetService/internal/usecase/update_reservation"
)

// UpdateReservationUseCase интерфейс use case обновления бронирования
type UpdateReservationUseCase interface {
	Execute(ctx context.Context, req *updateReservation.Request) (*reservationModels.ReservationResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
