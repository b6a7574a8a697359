package update_reservation

import (
	"context"
	"time"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	"github.com/golfops/GP-TeeSheetService/internal/integrations/clover"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateAttributes(ctx context.Context, id int64, notes *string, connectIdentifier *string) error
	UpdateSlotPayment(ctx context.Context, slot *domain.Slot) error
}

// PropertyRepository интерфейс репозитория property (конфигурация tender)
type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// CloverClient интерфейс клиента Clover order API.
// Любая ошибка любого метода - жесткий отказ pay-перехода.
type CloverClient interface {
	CreateOrder(ctx context.Context, lineItems []clover.LineItem, discounts []clover.Discount) (string, error)
	UpdateOrderState(ctx context.Context, orderID string, state string) error
	ApplyTender(ctx context.Context, orderID string, tenderID string, amount int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
