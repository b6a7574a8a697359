package golfers

import "errors"

var (
	// ErrExactlyOneOccupant возвращается, когда параметры места содержат
	// и гольфера, и гостя, либо ни того ни другого
	ErrExactlyOneOccupant = errors.New("golfers: exactly one parameter must be provided: golfer_attributes or guest_attributes")

	// ErrMissingRequiredFields возвращается при создании гольфера без
	// first_name или без единого контакта (email/телефон)
	ErrMissingRequiredFields = errors.New("golfers: required golfer fields are missing")

	// ErrMissingGuestName возвращается, когда у гостя не указано имя
	ErrMissingGuestName = errors.New("golfers: guest name is required")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("golfers: internal error")
)
