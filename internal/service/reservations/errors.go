package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не существует
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrHasPaidSlots возвращается при попытке удалить бронирование,
	// у которого есть хотя бы один оплаченный слот
	ErrHasPaidSlots = errors.New("reservations: reservation already has paid slots")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
