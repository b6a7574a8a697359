package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrSlotNotFound возвращается, когда оплачиваемый слот не принадлежит
	// бронированию
	ErrSlotNotFound = errors.New("update_reservation: paying slot not found in reservation")

	// ErrPaymentAlreadyInitiated возвращается при повторной оплате слота
	ErrPaymentAlreadyInitiated = errors.New("update_reservation: payment has already been initiated")

	// ErrCloverConfig возвращается, когда property не настроен для оплаты
	// через Clover
	ErrCloverConfig = errors.New("clover_connect_tender_identifier must be present")

	// ErrCloverError возвращается при отказе Clover; транзакция откатывается
	ErrCloverError = errors.New("update_reservation: clover order failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
