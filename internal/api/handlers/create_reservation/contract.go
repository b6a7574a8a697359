package create_reservation

import (
	"context"

	reservationModels "github.com/golfops/GP-TeeSheetService/internal/service/reservations/models"
	createReservation "github.com/golfops/GP-TeeSheetService/internal/usecase/create_reservation"
)

// CreateReservationUseCase интерфейс use case создания бронирования
type CreateReservationUseCase interface {
	Execute(ctx context.Context, req *createReservation.Request) (*reservationModels.ReservationResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
