package domain

import (
	"errors"
	"fmt"
	"time"
)

// GolferState per-seat check-in progress
type GolferState string

const (
	GolferStateReserved  GolferState = "reserved"
	GolferStateCheckedIn GolferState = "checked_in"
)

// PaymentState per-seat payment progress, independent of GolferState
type PaymentState string

const (
	PaymentStateUnpaid PaymentState = "unpaid"
	PaymentStatePaid   PaymentState = "paid"
)

// Holes number of holes booked for a seat
type Holes string

const (
	Holes9  Holes = "9_holes"
	Holes18 Holes = "18_holes"
)

// Transportation how the golfer gets around the course
type Transportation string

const (
	TransportationCart    Transportation = "cart"
	TransportationWalking Transportation = "walking"
)

// State machine errors
var (
	// ErrPaymentAlreadyInitiated is returned when paying a slot whose
	// payment_state is already paid; a slot is paid at most once
	ErrPaymentAlreadyInitiated = errors.New("domain: payment has already been initiated for this slot")

	// ErrAlreadyCheckedIn is returned on a repeated check-in transition
	ErrAlreadyCheckedIn = errors.New("domain: slot is already checked in")

	// ErrHasPaidSlots is returned when destroying a reservation that owns
	// at least one paid slot
	ErrHasPaidSlots = errors.New("domain: reservation already has paid slots")

	// ErrInvalidOccupant is returned when a slot does not have exactly one
	// occupant kind (golfer xor guest)
	ErrInvalidOccupant = errors.New("domain: slot must have exactly one occupant")
)

// Occupant is the tagged variant occupying a slot: a shared Golfer record
// or an embedded Guest. Exactly one side must be set.
type Occupant struct {
	Golfer *Golfer
	Guest  *Guest
}

// Validate enforces the golfer-xor-guest invariant
func (o Occupant) Validate() error {
	if (o.Golfer == nil) == (o.Guest == nil) {
		return ErrInvalidOccupant
	}
	return nil
}

// IsGolfer returns true if the occupant is a golfer identity record
func (o Occupant) IsGolfer() bool {
	return o.Golfer != nil
}

// FeeLineItem a single fee charged on a slot
type FeeLineItem struct {
	ID          int64
	Kind        string
	Amount      float64
	Tax         float64
	Description string
}

// Total returns amount plus tax
func (f FeeLineItem) Total() float64 {
	return f.Amount + f.Tax
}

// PaymentDetails optional payment fields supplied with a pay transition
type PaymentDetails struct {
	Amount          *float64
	PaymentDatetime *time.Time
	Fop             *string
	FopLast4Digits  *string
}

// Slot is one seat within a reservation. Check-in and payment progress are
// tracked independently per seat.
type Slot struct {
	ID       int64
	Position int

	Holes          Holes
	Transportation Transportation

	Occupant   Occupant
	Fees       []FeeLineItem
	FeeSummary *string

	GolferState  GolferState
	PaymentState PaymentState

	PaymentAmount   *float64
	PaymentDatetime *time.Time
	Fop             *string
	FopLast4Digits  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalPrice sums the fee line items (amount + tax). Used as the default
// payment amount when payment_details does not override it.
func (s *Slot) TotalPrice() float64 {
	var total float64
	for _, fee := range s.Fees {
		total += fee.Total()
	}
	return total
}

// IsPaid returns true if payment has completed for this seat
func (s *Slot) IsPaid() bool {
	return s.PaymentState == PaymentStatePaid
}

// CheckIn transitions golfer_state reserved -> checked_in
func (s *Slot) CheckIn() error {
	if s.GolferState != GolferStateReserved {
		return fmt.Errorf("%w: slot id=%d", ErrAlreadyCheckedIn, s.ID)
	}
	s.GolferState = GolferStateCheckedIn
	return nil
}

// Pay transitions payment_state unpaid -> paid and checks the seat in.
// The payment amount defaults to the slot's total price unless overridden
// via details.Amount; details datetime/fop/last-4 are recorded if supplied.
// Paying an already-paid slot fails and mutates nothing.
func (s *Slot) Pay(details PaymentDetails, now time.Time) error {
	if s.PaymentState == PaymentStatePaid {
		return fmt.Errorf("%w: slot id=%d", ErrPaymentAlreadyInitiated, s.ID)
	}

	amount := s.TotalPrice()
	if details.Amount != nil {
		amount = *details.Amount
	}

	paidAt := now
	if details.PaymentDatetime != nil {
		paidAt = *details.PaymentDatetime
	}

	s.PaymentAmount = &amount
	s.PaymentDatetime = &paidAt
	if details.Fop != nil {
		s.Fop = details.Fop
	}
	if details.FopLast4Digits != nil {
		s.FopLast4Digits = details.FopLast4Digits
	}

	s.PaymentState = PaymentStatePaid
	if s.GolferState == GolferStateReserved {
		s.GolferState = GolferStateCheckedIn
	}

	return nil
}

// Reservation is the aggregate root owning a set of slots for one tee time
type Reservation struct {
	ID           int64
	GolfCourseID int64
	PropertyID   int64

	TeeTimeIdentifier string
	StartsAt          time.Time

	Owner *Golfer
	Notes *string

	ConnectReservationIdentifier *string

	Slots []*Slot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPaidSlots returns true if any owned slot has completed payment
func (r *Reservation) HasPaidSlots() bool {
	for _, slot := range r.Slots {
		if slot.IsPaid() {
			return true
		}
	}
	return false
}

// CanBeDestroyed returns true if no owned slot has been paid
func (r *Reservation) CanBeDestroyed() bool {
	return !r.HasPaidSlots()
}

// SlotByID finds an owned slot by id, nil if absent
func (r *Reservation) SlotByID(id int64) *Slot {
	for _, slot := range r.Slots {
		if slot.ID == id {
			return slot
		}
	}
	return nil
}
