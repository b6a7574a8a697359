package clover

import "errors"

var (
	// ErrOrderFailed возвращается, когда Clover не смог создать или
	// обновить заказ. Любая ошибка процессора — жесткий отказ pay-перехода.
	ErrOrderFailed = errors.New("clover client: order operation failed")

	// ErrTenderFailed возвращается при ошибке применения tender к заказу
	ErrTenderFailed = errors.New("clover client: tender operation failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("clover client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от Clover
	ErrInvalidResponse = errors.New("clover client: invalid response")
)
