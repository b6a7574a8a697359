package golfer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	"github.com/golfops/GP-TeeSheetService/pkg/dbmetrics"
	"github.com/golfops/GP-TeeSheetService/pkg/psqlbuilder"
)

// pqUniqueViolation код ошибки unique_violation в Postgres
const pqUniqueViolation = "23505"

var golferColumns = []string{
	"id",
	"golfpay_identifier",
	"first_name",
	"last_name",
	"email",
	"phone",
	"normalized_email",
	"normalized_phone",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с гольферами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория гольферов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает гольфера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Golfer, error) {
	return r.getByCondition(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByGolfpayIdentifier получает гольфера по внешнему идентификатору
// программы лояльности
func (r *Repository) GetByGolfpayIdentifier(ctx context.Context, identifier string) (*domain.Golfer, error) {
	return r.getByCondition(ctx, "GetByGolfpayIdentifier", squirrel.Eq{"golfpay_identifier": identifier})
}

// GetByNormalizedEmail получает гольфера по нормализованному email
// (вызывающая сторона обязана передать уже нормализованное значение)
func (r *Repository) GetByNormalizedEmail(ctx context.Context, email string) (*domain.Golfer, error) {
	return r.getByCondition(ctx, "GetByNormalizedEmail", squirrel.Eq{"normalized_email": email})
}

// GetByNormalizedPhone получает гольфера по нормализованному телефону
func (r *Repository) GetByNormalizedPhone(ctx context.Context, phone string) (*domain.Golfer, error) {
	return r.getByCondition(ctx, "GetByNormalizedPhone", squirrel.Eq{"normalized_phone": phone})
}

// CreateOrFetch создает нового гольфера. Гонка при одновременном создании
// гольфера с одинаковым email/телефоном разрешается уникальными индексами
// на ключах сопоставления: при конфликте вставки повторно выполняется поиск
// и возвращается уже существующая запись (insert-or-fetch, без
// check-then-create на стороне клиента)
func (r *Repository) CreateOrFetch(ctx context.Context, golfer *domain.Golfer) (*domain.Golfer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("golfers").
		Columns(
			"golfpay_identifier",
			"first_name",
			"last_name",
			"email",
			"phone",
			"normalized_email",
			"normalized_phone",
		).
		Values(
			golfer.GolfpayIdentifier,
			golfer.FirstName,
			golfer.LastName,
			golfer.Email,
			golfer.Phone,
			golfer.NormalizedEmail,
			golfer.NormalizedPhone,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateOrFetch - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&golfer.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return r.fetchByMatchingKeys(ctx, golfer)
		}
		return nil, fmt.Errorf("%w: CreateOrFetch - execute insert: %v", ErrExecQuery, err)
	}

	golfer.CreatedAt = createdAt.Time
	golfer.UpdatedAt = updatedAt.Time

	return golfer, nil
}

// fetchByMatchingKeys повторный поиск после конфликта вставки,
// в порядке приоритета ключей сопоставления
func (r *Repository) fetchByMatchingKeys(ctx context.Context, golfer *domain.Golfer) (*domain.Golfer, error) {
	if golfer.GolfpayIdentifier != nil && *golfer.GolfpayIdentifier != "" {
		existing, err := r.GetByGolfpayIdentifier(ctx, *golfer.GolfpayIdentifier)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, ErrGolferNotFound) {
			return nil, err
		}
	}

	if golfer.NormalizedEmail != nil && *golfer.NormalizedEmail != "" {
		existing, err := r.GetByNormalizedEmail(ctx, *golfer.NormalizedEmail)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, ErrGolferNotFound) {
			return nil, err
		}
	}

	if golfer.NormalizedPhone != nil && *golfer.NormalizedPhone != "" {
		existing, err := r.GetByNormalizedPhone(ctx, *golfer.NormalizedPhone)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, ErrGolferNotFound) {
			return nil, err
		}
	}

	return nil, ErrGolferNotFound
}

func (r *Repository) getByCondition(ctx context.Context, op string, cond squirrel.Eq) (*domain.Golfer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(golferColumns...).
		From("golfers").
		Where(cond).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var golfer domain.Golfer
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&golfer.ID,
		&golfer.GolfpayIdentifier,
		&golfer.FirstName,
		&golfer.LastName,
		&golfer.Email,
		&golfer.Phone,
		&golfer.NormalizedEmail,
		&golfer.NormalizedPhone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrGolferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan golfer: %v", ErrScanRow, op, err)
	}

	golfer.CreatedAt = createdAt.Time
	golfer.UpdatedAt = updatedAt.Time

	return &golfer, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
