package property

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	"github.com/golfops/GP-TeeSheetService/pkg/dbmetrics"
	"github.com/golfops/GP-TeeSheetService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения property (тенанта)
// Property потребляется только на чтение: конфигурация Clover tender
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория property
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает property по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"local_time_zone",
		"clover_connect_tender_identifier",
		"created_at",
		"updated_at",
	).
		From("properties").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var prop domain.Property
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&prop.ID,
		&prop.Name,
		&prop.LocalTimeZone,
		&prop.CloverConnectTenderIdentifier,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan property: %v", ErrScanRow, err)
	}

	prop.CreatedAt = createdAt.Time
	prop.UpdatedAt = updatedAt.Time

	return &prop, nil
}
