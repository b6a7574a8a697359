package generate_tee_sheet

import "errors"

var (
	// ErrCourseNotFound возвращается, когда поле для гольфа не найдено
	ErrCourseNotFound = errors.New("generate_tee_sheet: golf course not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_tee_sheet: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_tee_sheet: internal error")
)
