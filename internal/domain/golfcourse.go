package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golfops/GP-TeeSheetService/pkg/types"
)

// Property is the tenant owning golf courses. Carries the payment-processor
// tender configuration required to route charges.
type Property struct {
	ID                            int64
	Name                          string
	LocalTimeZone                 string
	CloverConnectTenderIdentifier *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCloverTender returns true if the property can route Clover charges
func (p *Property) HasCloverTender() bool {
	return p.CloverConnectTenderIdentifier != nil && *p.CloverConnectTenderIdentifier != ""
}

// GolfCourse a bookable course owned by a property
type GolfCourse struct {
	ID         int64
	PropertyID int64
	Name       string

	// Capacity seats per tee time
	Capacity int

	// Latitude/Longitude used by the weather overlay
	Latitude  *float64
	Longitude *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Season is a date-bounded configuration for a golf course. Looked up by
// (golf_course, date); immutable once resolved for a day.
type Season struct {
	ID           int64
	GolfCourseID int64
	Name         string

	StartDate time.Time
	EndDate   time.Time

	OpenTime  types.TimeString
	CloseTime types.TimeString

	TimeFrames []TimeFrame

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers returns true if the date falls inside the season
func (s *Season) Covers(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(s.StartDate)) && !d.After(truncateToDay(s.EndDate))
}

// TimeFrame a pricing window within a season's day
type TimeFrame struct {
	ID        int64
	SeasonID  int64
	StartTime types.TimeString
	EndTime   types.TimeString
	GreenFee  float64
	CartFee   float64
}

// BlockKind distinguishes administrative blocks from tournaments
type BlockKind string

const (
	BlockKindAdmin      BlockKind = "block"
	BlockKindTournament BlockKind = "tournament"
)

// CourseBlock a time range during which tee times are not bookable.
// Covers both administrative blocks and tournaments.
type CourseBlock struct {
	ID           int64
	GolfCourseID int64
	Kind         BlockKind
	Name         *string
	StartsAt     time.Time
	EndsAt       time.Time
}

// Covers returns true if t falls inside [StartsAt, EndsAt)
func (b *CourseBlock) Covers(t time.Time) bool {
	return !t.Before(b.StartsAt) && t.Before(b.EndsAt)
}

// TeeTimeID identifies a schedulable tee time: a course plus a grid-aligned
// start time. Serialized as "<golf_course_id>-<unix_seconds>".
type TeeTimeID struct {
	GolfCourseID int64
	StartsAt     time.Time
}

// ParseTeeTimeIdentifier parses the wire form of a tee time identifier
func ParseTeeTimeIdentifier(identifier string) (TeeTimeID, error) {
	parts := strings.SplitN(identifier, "-", 2)
	if len(parts) != 2 {
		return TeeTimeID{}, fmt.Errorf("invalid tee time identifier %q", identifier)
	}

	courseID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || courseID <= 0 {
		return TeeTimeID{}, fmt.Errorf("invalid tee time identifier %q", identifier)
	}

	unix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || unix <= 0 {
		return TeeTimeID{}, fmt.Errorf("invalid tee time identifier %q", identifier)
	}

	return TeeTimeID{GolfCourseID: courseID, StartsAt: time.Unix(unix, 0).UTC()}, nil
}

// String returns the wire form of the identifier
func (id TeeTimeID) String() string {
	return fmt.Sprintf("%d-%d", id.GolfCourseID, id.StartsAt.Unix())
}

// IsGridAligned returns true if the start time sits on the 30-minute grid
func (id TeeTimeID) IsGridAligned() bool {
	return id.StartsAt.Minute()%SlotIntervalMinutes == 0 &&
		id.StartsAt.Second() == 0 && id.StartsAt.Nanosecond() == 0
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
