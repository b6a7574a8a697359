package course

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/golfops/GP-TeeSheetService/internal/domain"
	"github.com/golfops/GP-TeeSheetService/pkg/dbmetrics"
	"github.com/golfops/GP-TeeSheetService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с полями, сезонами и блокировками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория полей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает поле для гольфа по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.GolfCourse, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"property_id",
		"name",
		"capacity",
		"latitude",
		"longitude",
		"created_at",
		"updated_at",
	).
		From("golf_courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var course domain.GolfCourse
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&course.ID,
		&course.PropertyID,
		&course.Name,
		&course.Capacity,
		&course.Latitude,
		&course.Longitude,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan golf course: %v", ErrScanRow, err)
	}

	course.CreatedAt = createdAt.Time
	course.UpdatedAt = updatedAt.Time

	return &course, nil
}

// GetActiveSeason получает сезон поля, действующий на указанную дату,
// вместе с его time frames. Сезон неизменяем после разрешения для даты.
func (r *Repository) GetActiveSeason(ctx context.Context, golfCourseID int64, date time.Time) (*domain.Season, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	day := date.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Select(
		"id",
		"golf_course_id",
		"name",
		"start_date",
		"end_date",
		"open_time",
		"close_time",
		"created_at",
		"updated_at",
	).
		From("seasons").
		Where(squirrel.Eq{"golf_course_id": golfCourseID}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day}).
		OrderBy("start_date DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSeason - build select query: %v", ErrBuildQuery, err)
	}

	var season domain.Season
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&season.ID,
		&season.GolfCourseID,
		&season.Name,
		&season.StartDate,
		&season.EndDate,
		&season.OpenTime,
		&season.CloseTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSeasonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSeason - scan season: %v", ErrScanRow, err)
	}

	season.CreatedAt = createdAt.Time
	season.UpdatedAt = updatedAt.Time

	timeFrames, err := r.listTimeFrames(ctx, season.ID)
	if err != nil {
		return nil, err
	}
	season.TimeFrames = timeFrames

	return &season, nil
}

// listTimeFrames получает ценовые окна сезона, упорядоченные по началу
func (r *Repository) listTimeFrames(ctx context.Context, seasonID int64) ([]domain.TimeFrame, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"season_id",
		"start_time",
		"end_time",
		"green_fee",
		"cart_fee",
	).
		From("season_time_frames").
		Where(squirrel.Eq{"season_id": seasonID}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listTimeFrames - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listTimeFrames - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	timeFrames := make([]domain.TimeFrame, 0)
	for rows.Next() {
		var tf domain.TimeFrame
		if err := rows.Scan(
			&tf.ID,
			&tf.SeasonID,
			&tf.StartTime,
			&tf.EndTime,
			&tf.GreenFee,
			&tf.CartFee,
		); err != nil {
			return nil, fmt.Errorf("%w: listTimeFrames - scan time frame: %v", ErrScanRow, err)
		}
		timeFrames = append(timeFrames, tf)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listTimeFrames - rows error: %v", ErrScanRow, err)
	}

	return timeFrames, nil
}

// ListBlocks получает блокировки и турниры поля, пересекающие интервал
// [from, to). Используется генератором тии-листа: накрытые времена не
// бронируются и не появляются в выдаче.
func (r *Repository) ListBlocks(ctx context.Context, golfCourseID int64, from, to time.Time) ([]*domain.CourseBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"golf_course_id",
		"kind",
		"name",
		"starts_at",
		"ends_at",
	).
		From("course_blocks").
		Where(squirrel.Eq{"golf_course_id": golfCourseID}).
		Where(squirrel.Lt{"starts_at": to}).
		Where(squirrel.Gt{"ends_at": from}).
		OrderBy("starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.CourseBlock, 0)
	for rows.Next() {
		var block domain.CourseBlock
		if err := rows.Scan(
			&block.ID,
			&block.GolfCourseID,
			&block.Kind,
			&block.Name,
			&block.StartsAt,
			&block.EndsAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListBlocks - scan block: %v", ErrScanRow, err)
		}
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
