package golfers

// GolferParams атрибуты гольфера из запроса бронирования
type GolferParams struct {
	GolfpayIdentifier *string
	FirstName         *string
	LastName          *string
	Email             *string
	Phone             *string
}

// GuestParams атрибуты гостя из запроса бронирования
type GuestParams struct {
	Name  string
	Phone *string
}

// OccupantParams параметры места: ровно одно из двух полей должно быть задано
type OccupantParams struct {
	Golfer *GolferParams
	Guest  *GuestParams
}
