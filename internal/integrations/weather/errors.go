package weather

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("weather client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("weather client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Прогноз — необязательное наложение: его отсутствие никогда не
	// приводит к ошибке запроса тии-листа.
	ErrServiceDegraded = errors.New("weather service unavailable: graceful degradation applied")
)
