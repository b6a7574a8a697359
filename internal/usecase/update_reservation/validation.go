package update_reservation

import (
	"fmt"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}

	if req.Notes == nil && req.Attributes == nil && req.PayingSlotID == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.Attributes != nil && req.Attributes.Notes != nil &&
		len(*req.Attributes.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.PayingSlotID != nil {
		if *req.PayingSlotID <= 0 {
			return fmt.Errorf("%w: paying_slot_id must be positive", ErrInvalidInput)
		}

		// Pay-переход требует явной отметки paid именно на оплачиваемом слоте
		if !slotMarkedPaid(req.Slots, *req.PayingSlotID) {
			return fmt.Errorf("%w: paying slot must be marked paid in slots", ErrInvalidInput)
		}

		if req.PaymentDetails.Amount != nil && *req.PaymentDetails.Amount < 0 {
			return fmt.Errorf("%w: payment amount must be non-negative", ErrInvalidInput)
		}
	}

	return nil
}

func slotMarkedPaid(slots []SlotUpdateParams, slotID int64) bool {
	for _, slot := range slots {
		if slot.ID == slotID && slot.Paid {
			return true
		}
	}
	return false
}
