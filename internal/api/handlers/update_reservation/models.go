package update_reservation

import (
	"time"

	updateReservation "github.com/golfops/GP-TeeSheetService/internal/usecase/update_reservation"
)

// AttributesRequest обновляемые атрибуты бронирования
type AttributesRequest struct {
	Notes                        *string `json:"notes,omitempty"`
	ConnectReservationIdentifier *string `json:"connect_reservation_identifier,omitempty"`
}

// SlotUpdateRequest отметка слота в HTTP запросе
type SlotUpdateRequest struct {
	ID   int64 `json:"id"`
	Paid bool  `json:"paid"`
}

// PaymentDetailsRequest детали платежа в HTTP запросе
type PaymentDetailsRequest struct {
	Amount          *float64 `json:"amount,omitempty"`
	PaymentDatetime *string  `json:"payment_datetime,omitempty"` // RFC3339
	Fop             *string  `json:"fop,omitempty"`
	FopLast4Digits  *string  `json:"fop_last_4_digits,omitempty"`
}

// UpdateReservationRequest HTTP request model.
// Заметки принимаются как верхнеуровневым notes, так и attributes.notes.
type UpdateReservationRequest struct {
	Notes          *string                `json:"notes,omitempty"`
	Attributes     *AttributesRequest     `json:"attributes,omitempty"`
	PayingSlotID   *int64                 `json:"paying_slot_id,omitempty"`
	Slots          []SlotUpdateRequest    `json:"slots,omitempty"`
	PaymentDetails *PaymentDetailsRequest `json:"payment_details,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(reservationID int64) (*updateReservation.Request, error) {
	req := &updateReservation.Request{
		ReservationID: reservationID,
		Notes:         r.Notes,
		PayingSlotID:  r.PayingSlotID,
	}

	if r.Attributes != nil {
		req.Attributes = &updateReservation.AttributesParams{
			Notes:                        r.Attributes.Notes,
			ConnectReservationIdentifier: r.Attributes.ConnectReservationIdentifier,
		}
	}

	for _, slot := range r.Slots {
		req.Slots = append(req.Slots, updateReservation.SlotUpdateParams{
			ID:   slot.ID,
			Paid: slot.Paid,
		})
	}

	if r.PaymentDetails != nil {
		req.PaymentDetails = updateReservation.PaymentDetailsParams{
			Amount:         r.PaymentDetails.Amount,
			Fop:            r.PaymentDetails.Fop,
			FopLast4Digits: r.PaymentDetails.FopLast4Digits,
		}

		if r.PaymentDetails.PaymentDatetime != nil {
			parsed, err := time.Parse(time.RFC3339, *r.PaymentDetails.PaymentDatetime)
			if err != nil {
				return nil, err
			}
			req.PaymentDetails.PaymentDatetime = &parsed
		}
	}

	return req, nil
}
