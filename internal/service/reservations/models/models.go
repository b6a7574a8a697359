package models

import (
	"time"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
)

// Response модели

// GolferResponse данные гольфера в ответе API
type GolferResponse struct {
	ID                int64   `json:"id"`
	GolfpayIdentifier *string `json:"golfpay_identifier"`
	FirstName         string  `json:"first_name"`
	LastName          *string `json:"last_name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
}

// GuestResponse данные гостя в ответе API
type GuestResponse struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
}

// FeeResponse позиция сбора слота
type FeeResponse struct {
	ID          int64   `json:"id"`
	Kind        string  `json:"kind"`
	Amount      float64 `json:"amount"`
	Tax         float64 `json:"tax"`
	Description string  `json:"description"`
}

// SlotResponse данные слота бронирования
type SlotResponse struct {
	ID             int64  `json:"id"`
	Position       int    `json:"position"`
	Holes          string `json:"holes"`
	Transportation string `json:"transportation"`

	GolferState  string `json:"golfer_state"`
	PaymentState string `json:"payment_state"`

	Golfer *GolferResponse `json:"golfer,omitempty"`
	Guest  *GuestResponse  `json:"guest,omitempty"`

	Fees       []FeeResponse `json:"fees"`
	FeeSummary *string       `json:"fee_summary,omitempty"`

	PaymentAmount   *float64 `json:"payment_amount,omitempty"`
	PaymentDatetime *string  `json:"payment_datetime,omitempty"`
	Fop             *string  `json:"fop,omitempty"`
	FopLast4Digits  *string  `json:"fop_last_4_digits,omitempty"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID                int64  `json:"id"`
	GolfCourseID      int64  `json:"golf_course_id"`
	TeeTimeIdentifier string `json:"tee_time_identifier"`
	StartsAt          string `json:"starts_at"`

	Owner *GolferResponse `json:"owner"`
	Notes *string         `json:"notes"`

	ConnectReservationIdentifier *string `json:"connect_reservation_identifier"`

	Slots []SlotResponse `json:"slots"`
}

// FromDomainGolfer конвертирует domain.Golfer в response
func FromDomainGolfer(golfer *domain.Golfer) *GolferResponse {
	if golfer == nil {
		return nil
	}
	return &GolferResponse{
		ID:                golfer.ID,
		GolfpayIdentifier: golfer.GolfpayIdentifier,
		FirstName:         golfer.FirstName,
		LastName:          golfer.LastName,
		Email:             golfer.Email,
		Phone:             golfer.Phone,
	}
}

// FromDomainSlot конвертирует domain.Slot в response
func FromDomainSlot(slot *domain.Slot) SlotResponse {
	resp := SlotResponse{
		ID:             slot.ID,
		Position:       slot.Position,
		Holes:          string(slot.Holes),
		Transportation: string(slot.Transportation),
		GolferState:    string(slot.GolferState),
		PaymentState:   string(slot.PaymentState),
		Golfer:         FromDomainGolfer(slot.Occupant.Golfer),
		FeeSummary:     slot.FeeSummary,
		PaymentAmount:  slot.PaymentAmount,
		Fop:            slot.Fop,
		FopLast4Digits: slot.FopLast4Digits,
	}

	if slot.Occupant.Guest != nil {
		resp.Guest = &GuestResponse{
			Name:  slot.Occupant.Guest.Name,
			Phone: slot.Occupant.Guest.Phone,
		}
	}

	if slot.PaymentDatetime != nil {
		formatted := slot.PaymentDatetime.Format(time.RFC3339)
		resp.PaymentDatetime = &formatted
	}

	resp.Fees = make([]FeeResponse, 0, len(slot.Fees))
	for _, fee := range slot.Fees {
		resp.Fees = append(resp.Fees, FeeResponse{
			ID:          fee.ID,
			Kind:        fee.Kind,
			Amount:      fee.Amount,
			Tax:         fee.Tax,
			Description: fee.Description,
		})
	}

	return resp
}

// FromDomainReservation конвертирует domain.Reservation в response
func FromDomainReservation(reservation *domain.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:                           reservation.ID,
		GolfCourseID:                 reservation.GolfCourseID,
		TeeTimeIdentifier:            reservation.TeeTimeIdentifier,
		StartsAt:                     reservation.StartsAt.Format(time.RFC3339),
		Owner:                        FromDomainGolfer(reservation.Owner),
		Notes:                        reservation.Notes,
		ConnectReservationIdentifier: reservation.ConnectReservationIdentifier,
		Slots:                        make([]SlotResponse, 0, len(reservation.Slots)),
	}

	for _, slot := range reservation.Slots {
		resp.Slots = append(resp.Slots, FromDomainSlot(slot))
	}

	return resp
}
