package reservations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	reservationRepo "github.com/golfops/GP-TeeSheetService/internal/infra/storage/reservation"
)

type mockReservationRepo struct {
	reservations map[int64]*domain.Reservation
	deleted      []int64
}

func newMockReservationRepo(reservations ...*domain.Reservation) *mockReservationRepo {
	m := &mockReservationRepo{reservations: make(map[int64]*domain.Reservation)}
	for _, r := range reservations {
		m.reservations[r.ID] = r
	}
	return m
}

func (m *mockReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if r, ok := m.reservations[id]; ok {
		return r, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (m *mockReservationRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	return m.GetByID(ctx, id)
}

func (m *mockReservationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(m.reservations, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func unpaidReservation(id int64) *domain.Reservation {
	return &domain.Reservation{
		ID: id,
		Slots: []*domain.Slot{
			{ID: 1, GolferState: domain.GolferStateReserved, PaymentState: domain.PaymentStateUnpaid},
			{ID: 2, GolferState: domain.GolferStateCheckedIn, PaymentState: domain.PaymentStateUnpaid},
		},
	}
}

func TestShow(t *testing.T) {
	repo := newMockReservationRepo(unpaidReservation(42))
	svc := NewService(repo, passthroughTxManager{}, noopLogger{})

	reservation, err := svc.Show(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), reservation.ID)
	assert.Len(t, reservation.Slots, 2)
}

func TestShow_NotFound(t *testing.T) {
	svc := NewService(newMockReservationRepo(), passthroughTxManager{}, noopLogger{})

	_, err := svc.Show(context.Background(), 42)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestDestroy(t *testing.T) {
	repo := newMockReservationRepo(unpaidReservation(42))
	svc := NewService(repo, passthroughTxManager{}, noopLogger{})

	destroyed, err := svc.Destroy(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), destroyed.ID)
	assert.Len(t, destroyed.Slots, 2)
	assert.Equal(t, []int64{42}, repo.deleted)
}

func TestDestroy_HasPaidSlots(t *testing.T) {
	reservation := unpaidReservation(42)
	reservation.Slots[1].PaymentState = domain.PaymentStatePaid

	repo := newMockReservationRepo(reservation)
	svc := NewService(repo, passthroughTxManager{}, noopLogger{})

	_, err := svc.Destroy(context.Background(), 42)
	assert.ErrorIs(t, err, ErrHasPaidSlots)
	assert.Empty(t, repo.deleted, "reservation with a paid slot must stay intact")
}

func TestDestroy_NotFound(t *testing.T) {
	svc := NewService(newMockReservationRepo(), passthroughTxManager{}, noopLogger{})

	_, err := svc.Destroy(context.Background(), 42)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
