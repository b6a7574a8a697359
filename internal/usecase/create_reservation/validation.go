package create_reservation

import (
	"fmt"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	"github.com/golfops/GP-TeeSheetService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.TeeTimeID, error) {
	teeTimeID, err := domain.ParseTeeTimeIdentifier(req.TeeTimeIdentifier)
	if err != nil {
		return domain.TeeTimeID{}, fmt.Errorf("%w: %q", ErrTeeTimeNotFound, req.TeeTimeIdentifier)
	}

	if !teeTimeID.IsGridAligned() {
		return domain.TeeTimeID{}, fmt.Errorf("%w: %q is not aligned to the %d-minute grid",
			ErrTeeTimeNotFound, req.TeeTimeIdentifier, domain.SlotIntervalMinutes)
	}

	if len(req.Slots) == 0 {
		return domain.TeeTimeID{}, fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	if len(req.Slots) > domain.MaxSlotsPerRequest {
		return domain.TeeTimeID{}, fmt.Errorf("%w: at most %d slots per request",
			ErrInvalidInput, domain.MaxSlotsPerRequest)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return domain.TeeTimeID{}, fmt.Errorf("%w: notes must be at most %d characters",
			ErrInvalidInput, domain.MaxNotesLength)
	}

	for i := range req.Slots {
		if err := validateSlotParams(&req.Slots[i]); err != nil {
			return domain.TeeTimeID{}, fmt.Errorf("%w (slot %d)", err, i+1)
		}
	}

	return teeTimeID, nil
}

// validateSlotParams валидирует параметры одного места
func validateSlotParams(slot *SlotParams) error {
	switch domain.Holes(slot.Holes) {
	case domain.Holes9, domain.Holes18:
	default:
		return fmt.Errorf("%w: holes must be %q or %q", ErrInvalidInput, domain.Holes9, domain.Holes18)
	}

	switch domain.Transportation(slot.Transportation) {
	case domain.TransportationCart, domain.TransportationWalking:
	default:
		return fmt.Errorf("%w: transportation must be %q or %q",
			ErrInvalidInput, domain.TransportationCart, domain.TransportationWalking)
	}

	if slot.FeeSummary != nil && len(*slot.FeeSummary) > domain.MaxFeeSummaryLength {
		return fmt.Errorf("%w: fee_summary must be at most %d characters",
			ErrInvalidInput, domain.MaxFeeSummaryLength)
	}

	for _, fee := range slot.Fees {
		if fee.Kind == "" {
			return fmt.Errorf("%w: fee kind is required", ErrInvalidInput)
		}
		if fee.Amount < 0 || fee.Tax < 0 {
			return fmt.Errorf("%w: fee amount and tax must be non-negative", ErrInvalidInput)
		}
	}

	return nil
}

// validateTeeTimeWithinSeason проверяет, что время старта попадает в рабочие
// часы сезона [open_time, close_time]
func validateTeeTimeWithinSeason(teeTimeID domain.TeeTimeID, season *domain.Season) error {
	if !season.Covers(teeTimeID.StartsAt) {
		return fmt.Errorf("%w: date is outside of the season", ErrTeeTimeNotBookable)
	}

	startTime := types.NewTimeString(teeTimeID.StartsAt)
	if startTime.IsBefore(season.OpenTime) || startTime.IsAfter(season.CloseTime) {
		return fmt.Errorf("%w: time %s is outside of season hours %s-%s",
			ErrTeeTimeNotBookable, startTime, season.OpenTime, season.CloseTime)
	}

	return nil
}
