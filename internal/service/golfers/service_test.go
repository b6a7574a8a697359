package golfers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	golferRepo "github.com/golfops/GP-TeeSheetService/internal/infra/storage/golfer"
	"github.com/golfops/GP-TeeSheetService/pkg/ptr"
)

type mockGolferRepo struct {
	byGolfpay map[string]*domain.Golfer
	byEmail   map[string]*domain.Golfer
	byPhone   map[string]*domain.Golfer

	created   []*domain.Golfer
	createErr error
	nextID    int64
}

func newMockGolferRepo() *mockGolferRepo {
	return &mockGolferRepo{
		byGolfpay: make(map[string]*domain.Golfer),
		byEmail:   make(map[string]*domain.Golfer),
		byPhone:   make(map[string]*domain.Golfer),
		nextID:    100,
	}
}

func (m *mockGolferRepo) add(g *domain.Golfer) {
	if g.GolfpayIdentifier != nil {
		m.byGolfpay[*g.GolfpayIdentifier] = g
	}
	if g.NormalizedEmail != nil {
		m.byEmail[*g.NormalizedEmail] = g
	}
	if g.NormalizedPhone != nil {
		m.byPhone[*g.NormalizedPhone] = g
	}
}

func (m *mockGolferRepo) GetByGolfpayIdentifier(_ context.Context, identifier string) (*domain.Golfer, error) {
	if g, ok := m.byGolfpay[identifier]; ok {
		return g, nil
	}
	return nil, golferRepo.ErrGolferNotFound
}

func (m *mockGolferRepo) GetByNormalizedEmail(_ context.Context, email string) (*domain.Golfer, error) {
	if g, ok := m.byEmail[email]; ok {
		return g, nil
	}
	return nil, golferRepo.ErrGolferNotFound
}

func (m *mockGolferRepo) GetByNormalizedPhone(_ context.Context, phone string) (*domain.Golfer, error) {
	if g, ok := m.byPhone[phone]; ok {
		return g, nil
	}
	return nil, golferRepo.ErrGolferNotFound
}

func (m *mockGolferRepo) CreateOrFetch(_ context.Context, golfer *domain.Golfer) (*domain.Golfer, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	golfer.ID = m.nextID
	m.created = append(m.created, golfer)
	m.add(golfer)
	return golfer, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func existingGolfer() *domain.Golfer {
	return &domain.Golfer{
		ID:                7,
		GolfpayIdentifier: ptr.Ptr("gp-777"),
		FirstName:         "Anna",
		Email:             ptr.Ptr("Anna@Example.com"),
		NormalizedEmail:   ptr.Ptr("anna@example.com"),
		Phone:             ptr.Ptr("+1 (555) 010-2030"),
		NormalizedPhone:   ptr.Ptr("15550102030"),
	}
}

func TestResolve_ExactlyOneOccupant(t *testing.T) {
	svc := NewService(newMockGolferRepo(), noopLogger{})

	_, err := svc.Resolve(context.Background(), OccupantParams{})
	assert.ErrorIs(t, err, ErrExactlyOneOccupant)

	_, err = svc.Resolve(context.Background(), OccupantParams{
		Golfer: &GolferParams{FirstName: ptr.Ptr("Anna")},
		Guest:  &GuestParams{Name: "Guest"},
	})
	assert.ErrorIs(t, err, ErrExactlyOneOccupant)
}

func TestResolve_Guest(t *testing.T) {
	repo := newMockGolferRepo()
	svc := NewService(repo, noopLogger{})

	occupant, err := svc.Resolve(context.Background(), OccupantParams{
		Guest: &GuestParams{Name: "Walk In", Phone: ptr.Ptr("555-11-22")},
	})
	require.NoError(t, err)
	require.NotNil(t, occupant.Guest)
	assert.Nil(t, occupant.Golfer)
	assert.Equal(t, "Walk In", occupant.Guest.Name)
	assert.Empty(t, repo.created, "guests must not touch the golfer repository")
}

func TestResolve_GuestNameRequired(t *testing.T) {
	svc := NewService(newMockGolferRepo(), noopLogger{})

	_, err := svc.Resolve(context.Background(), OccupantParams{
		Guest: &GuestParams{},
	})
	assert.ErrorIs(t, err, ErrMissingGuestName)
}

func TestResolve_MatchByGolfpayIdentifier(t *testing.T) {
	repo := newMockGolferRepo()
	repo.add(existingGolfer())
	svc := NewService(repo, noopLogger{})

	occupant, err := svc.Resolve(context.Background(), OccupantParams{
		Golfer: &GolferParams{
			GolfpayIdentifier: ptr.Ptr("gp-777"),
			// Противоречащий email не должен ни перебить совпадение,
			// ни перезаписать найденную запись
			Email: ptr.Ptr("other@example.com"),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, occupant.Golfer)
	assert.Equal(t, int64(7), occupant.Golfer.ID)
	assert.Equal(t, "anna@example.com", *occupant.Golfer.NormalizedEmail)
	assert.Empty(t, repo.created)
}

func TestResolve_MatchByEmailCaseInsensitive(t *testing.T) {
	repo := newMockGolferRepo()
	repo.add(existingGolfer())
	svc := NewService(repo, noopLogger{})

	occupant, err := svc.Resolve(context.Background(), OccupantParams{
		Golfer: &GolferParams{Email: ptr.Ptr("ANNA@EXAMPLE.COM")},
	})
	require.NoError(t, err)
	require.NotNil(t, occupant.Golfer)
	assert.Equal(t, int64(7), occupant.Golfer.ID)
	assert.Empty(t, repo.created)
}

func TestResolve_MatchByPhoneIgnoresFormatting(t *testing.T) {
	repo := newMockGolferRepo()
	repo.add(existingGolfer())
	svc := NewService(repo, noopLogger{})

	occupant, err := svc.Resolve(context.Background(), OccupantParams{
		Golfer: &GolferParams{Phone: ptr.Ptr("1-555-010-20-30")},
	})
	require.NoError(t, err)
	require.NotNil(t, occupant.Golfer)
	assert.Equal(t, int64(7), occupant.Golfer.ID)
	assert.Empty(t, repo.created)
}

func TestResolve_GolfpayWinsOverEmail(t *testing.T) {
	repo := newMockGolferRepo()
	repo.add(existingGolfer())
	other := &domain.Golfer{
		ID:              8,
		FirstName:       "Boris",
		NormalizedEmail: ptr.Ptr("boris@example.com"),
	}
	repo.add(other)
	svc := NewService(repo, noopLogger{})

	occupant, err := svc.Resolve(context.Background(), OccupantParams{
		Golfer: &GolferParams{
			GolfpayIdentifier: ptr.Ptr("gp-777"),
			Email:             ptr.Ptr("boris@example.com"),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, occupant.Golfer)
	assert.Equal(t, int64(7), occupant.Golfer.ID)
}

func TestResolve_CreatesNewGolfer(t *testing.T) {
	repo := newMockGolferRepo()
	svc := NewService(repo, noopLogger{})

	occupant, err := svc.Resolve(context.Background(), OccupantParams{
		Golfer: &GolferParams{
			FirstName: ptr.Ptr("Carl"),
			LastName:  ptr.Ptr("Spackler"),
			Email:     ptr.Ptr("Carl@Bushwood.COM"),
			Phone:     ptr.Ptr("+1 (555) 000-11-22"),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, occupant.Golfer)
	require.Len(t, repo.created, 1)

	created := repo.created[0]
	assert.Equal(t, "Carl", created.FirstName)
	require.NotNil(t, created.NormalizedEmail)
	assert.Equal(t, "carl@bushwood.com", *created.NormalizedEmail)
	require.NotNil(t, created.NormalizedPhone)
	assert.Equal(t, "15550001122", *created.NormalizedPhone)
}

func TestResolve_CreateRequiresFirstName(t *testing.T) {
	svc := NewService(newMockGolferRepo(), noopLogger{})

	_, err := svc.Resolve(context.Background(), OccupantParams{
		Golfer: &GolferParams{Email: ptr.Ptr("nobody@example.com")},
	})
	assert.ErrorIs(t, err, ErrMissingRequiredFields)
}

func TestResolve_CreateRequiresContact(t *testing.T) {
	svc := NewService(newMockGolferRepo(), noopLogger{})

	_, err := svc.Resolve(context.Background(), OccupantParams{
		Golfer: &GolferParams{FirstName: ptr.Ptr("Carl")},
	})
	assert.ErrorIs(t, err, ErrMissingRequiredFields)
}

func TestResolve_RepeatedResolveIsIdempotent(t *testing.T) {
	repo := newMockGolferRepo()
	svc := NewService(repo, noopLogger{})

	params := OccupantParams{
		Golfer: &GolferParams{
			FirstName: ptr.Ptr("Carl"),
			Email:     ptr.Ptr("carl@bushwood.com"),
		},
	}

	first, err := svc.Resolve(context.Background(), params)
	require.NoError(t, err)

	second, err := svc.Resolve(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first.Golfer.ID, second.Golfer.ID)
	assert.Len(t, repo.created, 1)
}

func TestResolve_CreateFailure(t *testing.T) {
	repo := newMockGolferRepo()
	repo.createErr = errors.New("connection refused")
	svc := NewService(repo, noopLogger{})

	_, err := svc.Resolve(context.Background(), OccupantParams{
		Golfer: &GolferParams{
			FirstName: ptr.Ptr("Carl"),
			Email:     ptr.Ptr("carl@bushwood.com"),
		},
	})
	assert.ErrorIs(t, err, ErrInternal)
}
