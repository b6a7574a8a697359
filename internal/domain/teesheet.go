package domain

import "time"

// TeeSheetItem one entry of the day's tee sheet: either a real, persisted
// slot belonging to a reservation, or a synthesized placeholder for an open,
// bookable time. Placeholders are cache-backed and never persisted.
type TeeSheetItem struct {
	StartsAt     time.Time
	GolfCourseID int64
	PropertyID   int64
	SeasonID     int64

	// ReservationID/Slot set only on real items
	ReservationID *int64
	Slot          *Slot

	// Placeholder true for synthesized open times
	Placeholder bool
}

// IsOpen returns true if the item represents a bookable open time
func (i *TeeSheetItem) IsOpen() bool {
	return i.Placeholder
}
