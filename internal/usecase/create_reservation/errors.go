package create_reservation

import "errors"

var (
	// ErrCourseNotFound возвращается, когда поле для гольфа не найдено
	ErrCourseNotFound = errors.New("create_reservation: golf course not found")

	// ErrTeeTimeNotFound возвращается, когда идентификатор тии-тайма не
	// разбирается или не указывает на время 30-минутной сетки
	ErrTeeTimeNotFound = errors.New("Invalid tee time identifier")

	// ErrTeeTimeNotBookable возвращается, когда тии-тайм вне сезона, вне
	// рабочих часов или накрыт блокировкой/турниром
	ErrTeeTimeNotBookable = errors.New("create_reservation: tee time is not bookable")

	// ErrNoAvailableSlots возвращается, когда на тии-тайме не хватает мест
	ErrNoAvailableSlots = errors.New("Tee time doesn't have room")

	// ErrOwnerNotFound возвращается, когда владелец бронирования не найден
	// по golfpay-идентификатору
	ErrOwnerNotFound = errors.New("reservation_owner_golfpay_identifier not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
