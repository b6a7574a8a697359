package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golfops/GP-TeeSheetService/pkg/ptr"
)

func newUnpaidSlot() *Slot {
	return &Slot{
		ID:             1,
		Position:       1,
		Holes:          Holes18,
		Transportation: TransportationCart,
		Occupant:       Occupant{Golfer: &Golfer{ID: 10, FirstName: "Ann"}},
		Fees: []FeeLineItem{
			{Kind: "green", Amount: 4.56, Tax: 1.23, Description: "A Fee"},
			{Kind: "cart", Amount: 7.89, Tax: 2.34, Description: "A Fee"},
		},
		GolferState:  GolferStateReserved,
		PaymentState: PaymentStateUnpaid,
	}
}

func TestSlot_TotalPrice(t *testing.T) {
	slot := newUnpaidSlot()
	assert.InDelta(t, 16.02, slot.TotalPrice(), 0.0001)

	empty := &Slot{}
	assert.Zero(t, empty.TotalPrice())
}

func TestSlot_Pay_DefaultsToTotalPrice(t *testing.T) {
	slot := newUnpaidSlot()
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	err := slot.Pay(PaymentDetails{}, now)
	require.NoError(t, err)

	assert.Equal(t, PaymentStatePaid, slot.PaymentState)
	assert.Equal(t, GolferStateCheckedIn, slot.GolferState)
	require.NotNil(t, slot.PaymentAmount)
	assert.InDelta(t, slot.TotalPrice(), *slot.PaymentAmount, 0.0001)
	require.NotNil(t, slot.PaymentDatetime)
	assert.Equal(t, now, *slot.PaymentDatetime)
}

func TestSlot_Pay_WithExplicitDetails(t *testing.T) {
	slot := newUnpaidSlot()
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	paidAt := time.Date(2025, 6, 1, 9, 15, 0, 0, time.UTC)

	details := PaymentDetails{
		Amount:          ptr.Ptr(12.91),
		PaymentDatetime: &paidAt,
		Fop:             ptr.Ptr("VISA"),
		FopLast4Digits:  ptr.Ptr("3456"),
	}

	require.NoError(t, slot.Pay(details, now))

	assert.InDelta(t, 12.91, *slot.PaymentAmount, 0.0001)
	assert.Equal(t, paidAt, *slot.PaymentDatetime)
	assert.Equal(t, "VISA", *slot.Fop)
	assert.Equal(t, "3456", *slot.FopLast4Digits)
}

func TestSlot_Pay_AlreadyPaid(t *testing.T) {
	slot := newUnpaidSlot()
	now := time.Now()

	require.NoError(t, slot.Pay(PaymentDetails{}, now))
	before := *slot

	err := slot.Pay(PaymentDetails{Amount: ptr.Ptr(99.99)}, now.Add(time.Hour))
	require.ErrorIs(t, err, ErrPaymentAlreadyInitiated)

	// Failed transition must not mutate the slot
	assert.Equal(t, before.PaymentState, slot.PaymentState)
	assert.Equal(t, before.GolferState, slot.GolferState)
	assert.Equal(t, *before.PaymentAmount, *slot.PaymentAmount)
	assert.Equal(t, *before.PaymentDatetime, *slot.PaymentDatetime)
}

func TestSlot_CheckIn(t *testing.T) {
	slot := newUnpaidSlot()

	require.NoError(t, slot.CheckIn())
	assert.Equal(t, GolferStateCheckedIn, slot.GolferState)

	err := slot.CheckIn()
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestOccupant_Validate(t *testing.T) {
	golfer := &Golfer{ID: 1, FirstName: "Ann"}
	guest := &Guest{Name: "Guest 1"}

	assert.NoError(t, Occupant{Golfer: golfer}.Validate())
	assert.NoError(t, Occupant{Guest: guest}.Validate())
	assert.ErrorIs(t, Occupant{}.Validate(), ErrInvalidOccupant)
	assert.ErrorIs(t, Occupant{Golfer: golfer, Guest: guest}.Validate(), ErrInvalidOccupant)
}

func TestReservation_HasPaidSlots(t *testing.T) {
	reservation := &Reservation{Slots: []*Slot{newUnpaidSlot(), newUnpaidSlot()}}
	assert.False(t, reservation.HasPaidSlots())
	assert.True(t, reservation.CanBeDestroyed())

	require.NoError(t, reservation.Slots[1].Pay(PaymentDetails{}, time.Now()))
	assert.True(t, reservation.HasPaidSlots())
	assert.False(t, reservation.CanBeDestroyed())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "someone@somewhere.com", NormalizeEmail("Someone@SOMEWHERE.com"))
	assert.Equal(t, "a@x.com", NormalizeEmail("  a@x.com "))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "16025551212", NormalizePhone("1 (602) 555-1212"))
	assert.Equal(t, "16025551212", NormalizePhone("1-602-555-1212"))
	assert.Equal(t, "", NormalizePhone("ext."))
}

func TestParseTeeTimeIdentifier(t *testing.T) {
	startsAt := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
	id := TeeTimeID{GolfCourseID: 7, StartsAt: startsAt}

	parsed, err := ParseTeeTimeIdentifier(id.String())
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.GolfCourseID)
	assert.True(t, parsed.StartsAt.Equal(startsAt))
	assert.True(t, parsed.IsGridAligned())

	for _, invalid := range []string{"", "abc", "7", "x-123", "7-abc", "0-123", "7-0"} {
		_, err := ParseTeeTimeIdentifier(invalid)
		assert.Error(t, err, "identifier %q", invalid)
	}

	offGrid := TeeTimeID{GolfCourseID: 7, StartsAt: startsAt.Add(10 * time.Minute)}
	assert.False(t, offGrid.IsGridAligned())
}

func TestSeason_Covers(t *testing.T) {
	season := &Season{
		StartDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, season.Covers(time.Date(2025, 5, 1, 23, 0, 0, 0, time.UTC)))
	assert.True(t, season.Covers(time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)))
	assert.False(t, season.Covers(time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)))
	assert.False(t, season.Covers(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCourseBlock_Covers(t *testing.T) {
	block := &CourseBlock{
		StartsAt: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	}

	assert.True(t, block.Covers(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)))
	assert.True(t, block.Covers(time.Date(2025, 6, 2, 11, 30, 0, 0, time.UTC)))
	assert.False(t, block.Covers(time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)))
	assert.False(t, block.Covers(time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)))
}
