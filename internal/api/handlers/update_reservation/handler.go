package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/golfops/GP-TeeSheetService/internal/api/handlers"
	updateReservation "github.com/golfops/GP-TeeSheetService/internal/usecase/update_reservation"
)

const (
	msgInvalidReservationID  = "invalid reservation ID"
	msgInvalidRequestBody    = "invalid request body"
	msgReservationNotFound   = "reservation not found"
	msgMissingCloverTender   = "clover_connect_tender_identifier must be present"
	msgPaymentAlreadyStarted = "payment already initiated for this slot"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %s", vars["reservationId"])
		handlers.RespondValidationError(w, msgInvalidReservationID, nil)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody, nil)
		return
	}

	ucReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid payment datetime: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody, nil)
		return
	}

	reservation, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, updateReservation.ErrPaymentAlreadyInitiated):
			h.logger.Warn("PATCH /reservations/{id} - Payment already initiated: id=%d", reservationID)
			handlers.RespondReservationError(w, handlers.CodePaymentAlreadyInitiated, msgPaymentAlreadyStarted)

		case errors.Is(err, updateReservation.ErrCloverConfig):
			h.logger.Warn("PATCH /reservations/{id} - Clover tender missing: id=%d", reservationID)
			handlers.RespondReservationError(w, handlers.CodeCloverError, msgMissingCloverTender)

		case errors.Is(err, updateReservation.ErrCloverError):
			h.logger.Error("PATCH /reservations/{id} - Clover payment failed: id=%d, error=%v",
				reservationID, err)
			handlers.RespondReservationError(w, handlers.CodeCloverError, err.Error())

		case errors.Is(err, updateReservation.ErrSlotNotFound),
			errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id} - Validation failed: id=%d, error=%v", reservationID, err)
			handlers.RespondValidationError(w, err.Error(), nil)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to update reservation: id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation updated: id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
