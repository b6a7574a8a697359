package handlers

import (
	"encoding/json"
	"net/http"
)

// Контексты ошибок в envelope
const (
	ContextAuth        = "auth"
	ContextValidation  = "validation"
	ContextDB          = "db"
	ContextReservation = "reservation"
)

// Коды ошибок в envelope
const (
	CodeInvalidToken            = "invalid_token"
	CodeInvalidParams           = "invalid_params"
	CodeRecordNotFound          = "record_not_found"
	CodeNoAvailableSlots        = "no_available_slots"
	CodeHasPaidSlots            = "has_paid_slots"
	CodePaymentAlreadyInitiated = "payment_already_initiated"
	CodeCloverError             = "clover_error"
	CodeInternalError           = "internal_error"
)

// ErrorResponse envelope ошибки API: каждый не-2xx ответ имеет эту форму
type ErrorResponse struct {
	ErrorContext string            `json:"error_context"`
	ErrorCode    string            `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	ErrorFields  map[string]string `json:"error_fields"`
}

// RespondJSON отправляет JSON-ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет envelope ошибки
func RespondError(w http.ResponseWriter, status int, context, code, message string, fields map[string]string) {
	if fields == nil {
		fields = map[string]string{}
	}
	RespondJSON(w, status, ErrorResponse{
		ErrorContext: context,
		ErrorCode:    code,
		ErrorMessage: message,
		ErrorFields:  fields,
	})
}

// RespondValidationError отправляет 422 с контекстом validation
func RespondValidationError(w http.ResponseWriter, message string, fields map[string]string) {
	RespondError(w, http.StatusUnprocessableEntity, ContextValidation, CodeInvalidParams, message, fields)
}

// RespondNotFound отправляет 404 с контекстом db
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, ContextDB, CodeRecordNotFound, message, nil)
}

// RespondUnauthorized отправляет 401 с контекстом auth
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, ContextAuth, CodeInvalidToken, message, nil)
}

// RespondReservationError отправляет 422 с контекстом reservation
func RespondReservationError(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusUnprocessableEntity, ContextReservation, code, message, nil)
}

// RespondInternalError отправляет 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, ContextDB, CodeInternalError, "internal server error", nil)
}

// DecodeJSON декодирует тело запроса в указанную структуру
func DecodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
