package golfer

import "errors"

var (
	// ErrGolferNotFound возвращается, когда гольфер не найден
	ErrGolferNotFound = errors.New("golfer.repository: golfer not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("golfer.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("golfer.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("golfer.repository: failed to scan row")
)
