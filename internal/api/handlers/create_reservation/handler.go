package create_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/golfops/GP-TeeSheetService/internal/api/handlers"
	"github.com/golfops/GP-TeeSheetService/internal/service/golfers"
	createReservation "github.com/golfops/GP-TeeSheetService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgCourseNotFound     = "golf course not found"
	msgInvalidTeeTime     = "Invalid tee time identifier"
	msgNoRoom             = "Tee time doesn't have room"
	msgOwnerNotFound      = "reservation_owner_golfpay_identifier not found"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tee_times/{teeTimeIdentifier}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teeTimeIdentifier := vars["teeTimeIdentifier"]

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tee_times/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody, nil)
		return
	}

	reservation, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(teeTimeIdentifier))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrTeeTimeNotFound):
			h.logger.Warn("POST /tee_times/{id}/reservations - Invalid tee time identifier: %s", teeTimeIdentifier)
			handlers.RespondError(w, http.StatusNotFound,
				handlers.ContextReservation, handlers.CodeRecordNotFound, msgInvalidTeeTime, nil)

		case errors.Is(err, createReservation.ErrCourseNotFound):
			h.logger.Warn("POST /tee_times/{id}/reservations - Course not found: tee_time=%s", teeTimeIdentifier)
			handlers.RespondNotFound(w, msgCourseNotFound)

		case errors.Is(err, createReservation.ErrNoAvailableSlots):
			h.logger.Warn("POST /tee_times/{id}/reservations - No room: tee_time=%s", teeTimeIdentifier)
			handlers.RespondReservationError(w, handlers.CodeNoAvailableSlots, msgNoRoom)

		case errors.Is(err, createReservation.ErrTeeTimeNotBookable):
			h.logger.Warn("POST /tee_times/{id}/reservations - Not bookable: tee_time=%s, error=%v",
				teeTimeIdentifier, err)
			handlers.RespondReservationError(w, handlers.CodeNoAvailableSlots, err.Error())

		case errors.Is(err, createReservation.ErrOwnerNotFound):
			h.logger.Warn("POST /tee_times/{id}/reservations - Owner not found: tee_time=%s", teeTimeIdentifier)
			handlers.RespondReservationError(w, handlers.CodeRecordNotFound, msgOwnerNotFound)

		case errors.Is(err, createReservation.ErrInvalidInput),
			errors.Is(err, golfers.ErrExactlyOneOccupant),
			errors.Is(err, golfers.ErrMissingRequiredFields),
			errors.Is(err, golfers.ErrMissingGuestName):
			h.logger.Warn("POST /tee_times/{id}/reservations - Validation failed: %v", err)
			handlers.RespondValidationError(w, err.Error(), nil)

		default:
			h.logger.Error("POST /tee_times/{id}/reservations - Failed to create reservation: tee_time=%s, error=%v",
				teeTimeIdentifier, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tee_times/{id}/reservations - Reservation created: id=%d, tee_time=%s",
		reservation.ID, teeTimeIdentifier)
	handlers.RespondJSON(w, http.StatusCreated, reservation)
}
