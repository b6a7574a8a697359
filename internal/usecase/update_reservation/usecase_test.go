package update_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	reservationRepo "github.com/golfops/GP-TeeSheetService/internal/infra/storage/reservation"
	"github.com/golfops/GP-TeeSheetService/internal/integrations/clover"
	"github.com/golfops/GP-TeeSheetService/pkg/ptr"
)

var now = time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC)

type mockReservationRepo struct {
	reservation *domain.Reservation

	updatedNotes      *string
	updatedConnectIDs []string
	paymentUpdates    []int64
}

func (m *mockReservationRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Reservation, error) {
	if m.reservation == nil || m.reservation.ID != id {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return m.reservation, nil
}

func (m *mockReservationRepo) UpdateAttributes(_ context.Context, _ int64, notes *string, connectIdentifier *string) error {
	if notes != nil {
		m.updatedNotes = notes
	}
	if connectIdentifier != nil {
		m.updatedConnectIDs = append(m.updatedConnectIDs, *connectIdentifier)
	}
	return nil
}

func (m *mockReservationRepo) UpdateSlotPayment(_ context.Context, slot *domain.Slot) error {
	m.paymentUpdates = append(m.paymentUpdates, slot.ID)
	return nil
}

type mockPropertyRepo struct {
	property *domain.Property
}

func (m *mockPropertyRepo) GetByID(_ context.Context, _ int64) (*domain.Property, error) {
	return m.property, nil
}

type cloverCall struct {
	method string
	amount int64
}

type mockCloverClient struct {
	calls []cloverCall

	createErr error
	tenderErr error
}

func (m *mockCloverClient) CreateOrder(_ context.Context, lineItems []clover.LineItem, _ []clover.Discount) (string, error) {
	m.calls = append(m.calls, cloverCall{method: "create", amount: int64(len(lineItems))})
	if m.createErr != nil {
		return "", m.createErr
	}
	return "order-1", nil
}

func (m *mockCloverClient) UpdateOrderState(_ context.Context, _ string, _ string) error {
	m.calls = append(m.calls, cloverCall{method: "state"})
	return nil
}

func (m *mockCloverClient) ApplyTender(_ context.Context, _ string, _ string, amount int64) error {
	m.calls = append(m.calls, cloverCall{method: "tender", amount: amount})
	return m.tenderErr
}

type trackingTxManager struct {
	rolledBack bool
}

func (m *trackingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		m.rolledBack = true
		return err
	}
	return nil
}

type fixedTimeProvider struct{}

func (fixedTimeProvider) Now() time.Time { return now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func fixtureReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:           42,
		GolfCourseID: 3,
		PropertyID:   1,
		Slots: []*domain.Slot{
			{
				ID:           7,
				Position:     1,
				GolferState:  domain.GolferStateReserved,
				PaymentState: domain.PaymentStateUnpaid,
				Fees: []domain.FeeLineItem{
					{Kind: "green_fee", Amount: 50, Tax: 5},
					{Kind: "cart_fee", Amount: 20, Tax: 2},
				},
			},
			{
				ID:           8,
				Position:     2,
				GolferState:  domain.GolferStateReserved,
				PaymentState: domain.PaymentStateUnpaid,
			},
		},
	}
}

func fixtureProperty() *domain.Property {
	return &domain.Property{ID: 1, CloverConnectTenderIdentifier: ptr.Ptr("tender-9")}
}

func newUseCase(repo *mockReservationRepo, property *domain.Property, cloverClient *mockCloverClient) (*UseCase, *trackingTxManager) {
	tx := &trackingTxManager{}
	uc := NewUseCase(repo, &mockPropertyRepo{property: property}, cloverClient, tx, noopLogger{})
	uc.timeProvider = fixedTimeProvider{}
	return uc, tx
}

func payRequest() *Request {
	return &Request{
		ReservationID: 42,
		PayingSlotID:  ptr.Ptr(int64(7)),
		Slots:         []SlotUpdateParams{{ID: 7, Paid: true}},
	}
}

func TestExecute_UpdateNotes(t *testing.T) {
	repo := &mockReservationRepo{reservation: fixtureReservation()}
	uc, _ := newUseCase(repo, fixtureProperty(), &mockCloverClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 42,
		Attributes:    &AttributesParams{Notes: ptr.Ptr("twilight league")},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "twilight league", *resp.Notes)
	assert.Equal(t, "twilight league", *repo.updatedNotes)
}

func TestExecute_TopLevelNotes(t *testing.T) {
	repo := &mockReservationRepo{reservation: fixtureReservation()}
	cloverClient := &mockCloverClient{}
	uc, _ := newUseCase(repo, fixtureProperty(), cloverClient)

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 42,
		Notes:         ptr.Ptr("ninth hole birthday"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "ninth hole birthday", *resp.Notes)
	assert.Equal(t, "ninth hole birthday", *repo.updatedNotes)
	assert.Empty(t, cloverClient.calls)
}

func TestExecute_AttributesNotesWinOverTopLevel(t *testing.T) {
	repo := &mockReservationRepo{reservation: fixtureReservation()}
	uc, _ := newUseCase(repo, fixtureProperty(), &mockCloverClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 42,
		Notes:         ptr.Ptr("top-level"),
		Attributes:    &AttributesParams{Notes: ptr.Ptr("nested")},
	})
	require.NoError(t, err)
	assert.Equal(t, "nested", *resp.Notes)
	assert.Equal(t, "nested", *repo.updatedNotes)
}

func TestExecute_PaySlot(t *testing.T) {
	repo := &mockReservationRepo{reservation: fixtureReservation()}
	cloverClient := &mockCloverClient{}
	uc, _ := newUseCase(repo, fixtureProperty(), cloverClient)

	resp, err := uc.Execute(context.Background(), payRequest())
	require.NoError(t, err)

	paid := resp.Slots[0]
	assert.Equal(t, "paid", paid.PaymentState)
	assert.Equal(t, "checked_in", paid.GolferState)
	require.NotNil(t, paid.PaymentAmount)
	assert.InDelta(t, 77.0, *paid.PaymentAmount, 0.001)

	// Второй слот не затронут
	assert.Equal(t, "unpaid", resp.Slots[1].PaymentState)
	assert.Equal(t, []int64{7}, repo.paymentUpdates)

	// Оркестрация Clover: create -> state -> tender на сумму в центах
	require.Len(t, cloverClient.calls, 3)
	assert.Equal(t, "create", cloverClient.calls[0].method)
	assert.Equal(t, "state", cloverClient.calls[1].method)
	assert.Equal(t, "tender", cloverClient.calls[2].method)
	assert.Equal(t, int64(7700), cloverClient.calls[2].amount)

	// Успешная оплата закрепляет connect-идентификатор
	assert.NotNil(t, resp.ConnectReservationIdentifier)
	assert.Len(t, repo.updatedConnectIDs, 1)
}

func TestExecute_PaySlot_AmountOverride(t *testing.T) {
	repo := &mockReservationRepo{reservation: fixtureReservation()}
	cloverClient := &mockCloverClient{}
	uc, _ := newUseCase(repo, fixtureProperty(), cloverClient)

	req := payRequest()
	req.PaymentDetails = PaymentDetailsParams{
		Amount:         ptr.Ptr(60.0),
		Fop:            ptr.Ptr("visa"),
		FopLast4Digits: ptr.Ptr("4242"),
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	paid := resp.Slots[0]
	assert.InDelta(t, 60.0, *paid.PaymentAmount, 0.001)
	assert.Equal(t, "visa", *paid.Fop)
	assert.Equal(t, "4242", *paid.FopLast4Digits)
	assert.Equal(t, int64(6000), cloverClient.calls[2].amount)
}

func TestExecute_PaySlot_AlreadyPaid(t *testing.T) {
	reservation := fixtureReservation()
	reservation.Slots[0].PaymentState = domain.PaymentStatePaid
	repo := &mockReservationRepo{reservation: reservation}
	cloverClient := &mockCloverClient{}
	uc, tx := newUseCase(repo, fixtureProperty(), cloverClient)

	_, err := uc.Execute(context.Background(), payRequest())
	assert.ErrorIs(t, err, ErrPaymentAlreadyInitiated)
	assert.True(t, tx.rolledBack)
	assert.Empty(t, cloverClient.calls, "clover must not be called for an already paid slot")
	assert.Empty(t, repo.paymentUpdates)
}

func TestExecute_PaySlot_NoCloverTender(t *testing.T) {
	repo := &mockReservationRepo{reservation: fixtureReservation()}
	uc, tx := newUseCase(repo, &domain.Property{ID: 1}, &mockCloverClient{})

	_, err := uc.Execute(context.Background(), payRequest())
	assert.ErrorIs(t, err, ErrCloverConfig)
	assert.True(t, tx.rolledBack)
	assert.Empty(t, repo.paymentUpdates)
}

func TestExecute_PaySlot_CloverFailureRollsBack(t *testing.T) {
	repo := &mockReservationRepo{reservation: fixtureReservation()}
	cloverClient := &mockCloverClient{tenderErr: errors.New("declined")}
	uc, tx := newUseCase(repo, fixtureProperty(), cloverClient)

	_, err := uc.Execute(context.Background(), payRequest())
	assert.ErrorIs(t, err, ErrCloverError)
	assert.True(t, tx.rolledBack)
	assert.Empty(t, repo.paymentUpdates, "payment must not be persisted when clover fails")
	assert.Empty(t, repo.updatedConnectIDs)
}

func TestExecute_PaySlot_UnknownSlot(t *testing.T) {
	repo := &mockReservationRepo{reservation: fixtureReservation()}
	uc, _ := newUseCase(repo, fixtureProperty(), &mockCloverClient{})

	req := payRequest()
	req.PayingSlotID = ptr.Ptr(int64(99))
	req.Slots = []SlotUpdateParams{{ID: 99, Paid: true}}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_PaySlot_NotMarkedPaid(t *testing.T) {
	repo := &mockReservationRepo{reservation: fixtureReservation()}
	uc, _ := newUseCase(repo, fixtureProperty(), &mockCloverClient{})

	req := payRequest()
	req.Slots = []SlotUpdateParams{{ID: 7, Paid: false}}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _ := newUseCase(&mockReservationRepo{}, fixtureProperty(), &mockCloverClient{})

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 42,
		Attributes:    &AttributesParams{Notes: ptr.Ptr("x")},
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_NothingToUpdate(t *testing.T) {
	uc, _ := newUseCase(&mockReservationRepo{reservation: fixtureReservation()}, fixtureProperty(), &mockCloverClient{})

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 42})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
