package update_reservation

import "time"

// AttributesParams обновляемые атрибуты бронирования; nil-поля не трогаются
type AttributesParams struct {
	Notes                        *string
	ConnectReservationIdentifier *string
}

// SlotUpdateParams отметка слота в запросе обновления
type SlotUpdateParams struct {
	ID   int64
	Paid bool
}

// PaymentDetailsParams необязательные детали платежа для pay-перехода
type PaymentDetailsParams struct {
	Amount          *float64
	PaymentDatetime *time.Time
	Fop             *string
	FopLast4Digits  *string
}

// Request модель запроса на обновление бронирования.
// Pay-переход запускается парой PayingSlotID + Slots[{ID, Paid: true}].
// Заметки принимаются и верхним уровнем (Notes), и внутри Attributes;
// явный Attributes.Notes имеет приоритет.
type Request struct {
	ReservationID int64

	Notes      *string
	Attributes *AttributesParams

	PayingSlotID   *int64
	Slots          []SlotUpdateParams
	PaymentDetails PaymentDetailsParams
}

// effectiveAttributes объединяет верхнеуровневый Notes с Attributes
func effectiveAttributes(req *Request) *AttributesParams {
	if req.Notes == nil {
		return req.Attributes
	}

	attrs := &AttributesParams{Notes: req.Notes}
	if req.Attributes != nil {
		if req.Attributes.Notes != nil {
			attrs.Notes = req.Attributes.Notes
		}
		attrs.ConnectReservationIdentifier = req.Attributes.ConnectReservationIdentifier
	}
	return attrs
}
