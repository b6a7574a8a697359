package create_reservation

import (
	"github.com/golfops/GP-TeeSheetService/internal/service/golfers"
)

// FeeParams позиция сбора, запрошенная для слота
type FeeParams struct {
	Kind        string
	Amount      float64
	Tax         float64
	Description string
}

// SlotParams параметры одного места бронирования.
// Ровно одно из полей Golfer/Guest должно быть задано.
type SlotParams struct {
	Golfer *golfers.GolferParams
	Guest  *golfers.GuestParams

	Holes          string
	Transportation string

	Fees       []FeeParams
	FeeSummary *string
}

// Request модель запроса на создание бронирования
type Request struct {
	TeeTimeIdentifier string // Идентификатор тии-тайма "<course_id>-<unix>"

	Notes                  *string
	OwnerGolfpayIdentifier *string // Явный владелец (опционально)

	Slots []SlotParams
}
