package domain

// Scheduling constants
const (
	// SlotIntervalMinutes fixed tee-time grid step
	SlotIntervalMinutes = 30

	// DefaultTeeTimeCapacity default number of seats on a single tee time
	DefaultTeeTimeCapacity = 4

	// NoonHour boundary between the AM and PM tee-sheet partitions
	NoonHour = 12
)

// Business validation constants
const (
	MaxNotesLength      = 500
	MaxFeeSummaryLength = 500
	MaxSlotsPerRequest  = 8
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
