package domain

import (
	"strings"
	"time"
	"unicode"
)

// Golfer represents an identity record shared across reservations.
// Golfers are deduplicated by golfpay_identifier, normalized email and
// normalized phone; they are never owned by a single reservation.
type Golfer struct {
	ID                int64
	GolfpayIdentifier *string
	FirstName         string
	LastName          *string
	Email             *string
	Phone             *string

	// Normalized lookup keys, kept alongside the raw values
	NormalizedEmail *string
	NormalizedPhone *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasContactMethod returns true if the golfer has at least one way to be reached
func (g *Golfer) HasContactMethod() bool {
	return (g.Email != nil && *g.Email != "") || (g.Phone != nil && *g.Phone != "")
}

// Guest is a non-identity occupant embedded in a slot.
// Guests are never persisted independently and never deduplicated.
type Guest struct {
	Name  string
	Phone *string
}

// NormalizeEmail lower-cases an email for identity matching
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips all non-digit characters for identity matching,
// so "1 (602) 555-1212" and "1-602-555-1212" compare equal
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
