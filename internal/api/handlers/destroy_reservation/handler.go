package destroy_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/golfops/GP-TeeSheetService/internal/api/handlers"
	"github.com/golfops/GP-TeeSheetService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "invalid reservation ID"
	msgReservationNotFound  = "reservation not found"
	msgHasPaidSlots         = "reservation has paid slots and cannot be destroyed"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /reservations/{id} - Invalid reservation ID: %s", vars["reservationId"])
		handlers.RespondValidationError(w, msgInvalidReservationID, nil)
		return
	}

	reservation, err := h.service.Destroy(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Reservation not found: id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrHasPaidSlots):
			h.logger.Warn("DELETE /reservations/{id} - Reservation has paid slots: id=%d", reservationID)
			handlers.RespondReservationError(w, handlers.CodeHasPaidSlots, msgHasPaidSlots)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to destroy reservation: id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation destroyed: id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
