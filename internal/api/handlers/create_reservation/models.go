package create_reservation

import (
	"github.com/golfops/GP-TeeSheetService/internal/service/golfers"
	createReservation "github.com/golfops/GP-TeeSheetService/internal/usecase/create_reservation"
)

// GolferAttributes атрибуты гольфера в HTTP запросе
type GolferAttributes struct {
	GolfpayIdentifier *string `json:"golfpay_identifier,omitempty"`
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	Email             *string `json:"email,omitempty"`
	Phone             *string `json:"phone,omitempty"`
}

// GuestAttributes атрибуты гостя в HTTP запросе
type GuestAttributes struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
}

// SlotFeeAttributes позиция сбора слота в HTTP запросе
type SlotFeeAttributes struct {
	Kind        string  `json:"kind"`
	Amount      float64 `json:"amount"`
	Tax         float64 `json:"tax"`
	Description string  `json:"description"`
}

// SlotAttributes параметры места в HTTP запросе
type SlotAttributes struct {
	GolferAttributes *GolferAttributes `json:"golfer_attributes,omitempty"`
	GuestAttributes  *GuestAttributes  `json:"guest_attributes,omitempty"`

	Holes          string `json:"holes"`
	Transportation string `json:"transportation"`

	FeeSummary         *string             `json:"fee_summary,omitempty"`
	SlotFeesAttributes []SlotFeeAttributes `json:"slot_fees_attributes,omitempty"`
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Notes                             *string          `json:"notes,omitempty"`
	ReservationOwnerGolfpayIdentifier *string          `json:"reservation_owner_golfpay_identifier,omitempty"`
	Slots                             []SlotAttributes `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(teeTimeIdentifier string) *createReservation.Request {
	req := &createReservation.Request{
		TeeTimeIdentifier:      teeTimeIdentifier,
		Notes:                  r.Notes,
		OwnerGolfpayIdentifier: r.ReservationOwnerGolfpayIdentifier,
		Slots:                  make([]createReservation.SlotParams, 0, len(r.Slots)),
	}

	for _, slot := range r.Slots {
		params := createReservation.SlotParams{
			Holes:          slot.Holes,
			Transportation: slot.Transportation,
			FeeSummary:     slot.FeeSummary,
		}

		if slot.GolferAttributes != nil {
			params.Golfer = &golfers.GolferParams{
				GolfpayIdentifier: slot.GolferAttributes.GolfpayIdentifier,
				FirstName:         slot.GolferAttributes.FirstName,
				LastName:          slot.GolferAttributes.LastName,
				Email:             slot.GolferAttributes.Email,
				Phone:             slot.GolferAttributes.Phone,
			}
		}

		if slot.GuestAttributes != nil {
			params.Guest = &golfers.GuestParams{
				Name:  slot.GuestAttributes.Name,
				Phone: slot.GuestAttributes.Phone,
			}
		}

		for _, fee := range slot.SlotFeesAttributes {
			params.Fees = append(params.Fees, createReservation.FeeParams{
				Kind:        fee.Kind,
				Amount:      fee.Amount,
				Tax:         fee.Tax,
				Description: fee.Description,
			})
		}

		req.Slots = append(req.Slots, params)
	}

	return req
}
