package course

import "errors"

var (
	// ErrCourseNotFound возвращается, когда поле для гольфа не найдено
	ErrCourseNotFound = errors.New("course.repository: golf course not found")

	// ErrSeasonNotFound возвращается, когда для даты нет активного сезона
	ErrSeasonNotFound = errors.New("course.repository: no active season for date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("course.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("course.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("course.repository: failed to scan row")
)
