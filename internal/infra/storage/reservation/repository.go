package reservation

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

// Repository репозиторий для работы с бронированиями и их слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе со слотами и позициями сборов.
// Предполагается вызов внутри сериализуемой транзакции (через context),
// чтобы проверка вместимости тии-тайма и вставка были атомарны.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var ownerID *int64
	if reservation.Owner != nil {
		ownerID = &reservation.Owner.ID
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"golf_course_id",
			"property_id",
			"tee_time_identifier",
			"starts_at",
			"owner_golfer_id",
			"notes",
			"connect_reservation_identifier",
		).
		Values(
			reservation.GolfCourseID,
			reservation.PropertyID,
			reservation.TeeTimeIdentifier,
			reservation.StartsAt,
			ownerID,
			reservation.Notes,
			reservation.ConnectReservationIdentifier,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	for _, slot := range reservation.Slots {
		if err := r.createSlot(ctx, reservation.ID, slot); err != nil {
			return nil, err
		}
	}

	return reservation, nil
}

// createSlot создает слот бронирования и его позиции сборов
func (r *Repository) createSlot(ctx context.Context, reservationID int64, slot *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var golferID *int64
	var guestName, guestPhone *string
	if slot.Occupant.Golfer != nil {
		golferID = &slot.Occupant.Golfer.ID
	}
	if slot.Occupant.Guest != nil {
		guestName = &slot.Occupant.Guest.Name
		guestPhone = slot.Occupant.Guest.Phone
	}

	query, args, err := psqlbuilder.Insert("slots").
		Columns(
			"reservation_id",
			"position",
			"holes",
			"transportation",
			"golfer_id",
			"guest_name",
			"guest_phone",
			"golfer_state",
			"payment_state",
			"fee_summary",
		).
		Values(
			reservationID,
			slot.Position,
			slot.Holes,
			slot.Transportation,
			golferID,
			guestName,
			guestPhone,
			slot.GolferState,
			slot.PaymentState,
			slot.FeeSummary,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: createSlot - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return fmt.Errorf("%w: createSlot - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	for i := range slot.Fees {
		fee := &slot.Fees[i]

		query, args, err := psqlbuilder.Insert("slot_fees").
			Columns("slot_id", "kind", "amount", "tax", "description").
			Values(slot.ID, fee.Kind, fee.Amount, fee.Tax, fee.Description).
			Suffix("RETURNING id").
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: createSlot - build fee insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, query, args...).Scan(&fee.ID); err != nil {
			return fmt.Errorf("%w: createSlot - execute fee insert: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// GetByID получает бронирование со слотами, владельцем и сборами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование с блокировкой строки (FOR UPDATE).
// Обеспечивает взаимное исключение мутаций одного бронирования; должен
// вызываться внутри транзакции.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"golf_course_id",
		"property_id",
		"tee_time_identifier",
		"starts_at",
		"owner_golfer_id",
		"notes",
		"connect_reservation_identifier",
		"created_at",
		"updated_at",
	).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var reservation domain.Reservation
	var ownerID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.GolfCourseID,
		&reservation.PropertyID,
		&reservation.TeeTimeIdentifier,
		&reservation.StartsAt,
		&ownerID,
		&reservation.Notes,
		&reservation.ConnectReservationIdentifier,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	if ownerID.Valid {
		owner, err := r.getGolfer(ctx, ownerID.Int64)
		if err != nil {
			return nil, err
		}
		reservation.Owner = owner
	}

	slots, err := r.listSlots(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}
	reservation.Slots = slots

	return &reservation, nil
}

// listSlots получает слоты бронирования вместе с гольферами и сборами,
// упорядоченные по позиции
func (r *Repository) listSlots(ctx context.Context, reservationID int64) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.position",
		"s.holes",
		"s.transportation",
		"s.guest_name",
		"s.guest_phone",
		"s.golfer_state",
		"s.payment_state",
		"s.fee_summary",
		"s.payment_amount",
		"s.payment_datetime",
		"s.fop",
		"s.fop_last_4_digits",
		"s.created_at",
		"s.updated_at",
		"g.id",
		"g.golfpay_identifier",
		"g.first_name",
		"g.last_name",
		"g.email",
		"g.phone",
		"g.normalized_email",
		"g.normalized_phone",
	).
		From("slots s").
		LeftJoin("golfers g ON g.id = s.golfer_id").
		Where(squirrel.Eq{"s.reservation_id": reservationID}).
		OrderBy("s.position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		var slot domain.Slot
		var guestName, guestPhone *string
		var createdAt, updatedAt sql.NullTime
		var golferID sql.NullInt64
		var golfpayIdentifier, firstName, lastName, email, phone, normEmail, normPhone sql.NullString

		err := rows.Scan(
			&slot.ID,
			&slot.Position,
			&slot.Holes,
			&slot.Transportation,
			&guestName,
			&guestPhone,
			&slot.GolferState,
			&slot.PaymentState,
			&slot.FeeSummary,
			&slot.PaymentAmount,
			&slot.PaymentDatetime,
			&slot.Fop,
			&slot.FopLast4Digits,
			&createdAt,
			&updatedAt,
			&golferID,
			&golfpayIdentifier,
			&firstName,
			&lastName,
			&email,
			&phone,
			&normEmail,
			&normPhone,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: listSlots - scan slot: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		if golferID.Valid {
			slot.Occupant.Golfer = &domain.Golfer{
				ID:                golferID.Int64,
				GolfpayIdentifier: nullableString(golfpayIdentifier),
				FirstName:         firstName.String,
				LastName:          nullableString(lastName),
				Email:             nullableString(email),
				Phone:             nullableString(phone),
				NormalizedEmail:   nullableString(normEmail),
				NormalizedPhone:   nullableString(normPhone),
			}
		} else if guestName != nil {
			slot.Occupant.Guest = &domain.Guest{
				Name:  *guestName,
				Phone: guestPhone,
			}
		}

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listSlots - rows error: %v", ErrScanRow, err)
	}

	for _, slot := range slots {
		fees, err := r.listSlotFees(ctx, slot.ID)
		if err != nil {
			return nil, err
		}
		slot.Fees = fees
	}

	return slots, nil
}

// listSlotFees получает позиции сборов слота
func (r *Repository) listSlotFees(ctx context.Context, slotID int64) ([]domain.FeeLineItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "kind", "amount", "tax", "description").
		From("slot_fees").
		Where(squirrel.Eq{"slot_id": slotID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listSlotFees - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listSlotFees - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	fees := make([]domain.FeeLineItem, 0)
	for rows.Next() {
		var fee domain.FeeLineItem
		if err := rows.Scan(&fee.ID, &fee.Kind, &fee.Amount, &fee.Tax, &fee.Description); err != nil {
			return nil, fmt.Errorf("%w: listSlotFees - scan fee: %v", ErrScanRow, err)
		}
		fees = append(fees, fee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listSlotFees - rows error: %v", ErrScanRow, err)
	}

	return fees, nil
}

// getGolfer получает гольфера по ID (владелец бронирования)
func (r *Repository) getGolfer(ctx context.Context, id int64) (*domain.Golfer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"golfpay_identifier",
		"first_name",
		"last_name",
		"email",
		"phone",
		"normalized_email",
		"normalized_phone",
	).
		From("golfers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getGolfer - build select query: %v", ErrBuildQuery, err)
	}

	var golfer domain.Golfer
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&golfer.ID,
		&golfer.GolfpayIdentifier,
		&golfer.FirstName,
		&golfer.LastName,
		&golfer.Email,
		&golfer.Phone,
		&golfer.NormalizedEmail,
		&golfer.NormalizedPhone,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: getGolfer - owner id=%d", ErrScanRow, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getGolfer - scan golfer: %v", ErrScanRow, err)
	}

	return &golfer, nil
}

// CountSlotsAtTeeTime подсчитывает занятые места на тии-тайме.
// В транзакции блокирует строки бронирований (FOR UPDATE) для защиты от
// одновременного бронирования поверх вместимости.
func (r *Repository) CountSlotsAtTeeTime(ctx context.Context, golfCourseID int64, startsAt time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	idsBuilder := psqlbuilder.Select("id").
		From("reservations").
		Where(squirrel.Eq{"golf_course_id": golfCourseID}).
		Where(squirrel.Eq{"starts_at": startsAt})

	if dbmetrics.IsInTransaction(ctx) {
		idsBuilder = idsBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := idsBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountSlotsAtTeeTime - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CountSlotsAtTeeTime - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: CountSlotsAtTeeTime - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountSlotsAtTeeTime - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err = psqlbuilder.Select("COUNT(*)").
		From("slots").
		Where(squirrel.Eq{"reservation_id": ids}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountSlotsAtTeeTime - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountSlotsAtTeeTime - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateAttributes обновляет заметки и connect-идентификатор бронирования.
// nil-поля не изменяются.
func (r *Repository) UpdateAttributes(ctx context.Context, id int64, notes *string, connectIdentifier *string) error {
	if notes == nil && connectIdentifier == nil {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}
	if connectIdentifier != nil {
		updateBuilder = updateBuilder.Set("connect_reservation_identifier", *connectIdentifier)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateAttributes - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateAttributes - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateAttributes - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// UpdateSlotPayment сохраняет состояния и платежные поля слота после
// pay-перехода. Затрагивает только указанный слот.
func (r *Repository) UpdateSlotPayment(ctx context.Context, slot *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("golfer_state", slot.GolferState).
		Set("payment_state", slot.PaymentState).
		Set("payment_amount", slot.PaymentAmount).
		Set("payment_datetime", slot.PaymentDatetime).
		Set("fop", slot.Fop).
		Set("fop_last_4_digits", slot.FopLast4Digits).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlotPayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotPayment - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotPayment - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет бронирование; слоты и сборы удаляются каскадно (FK)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// ListTeeSheetItems получает занятые позиции тии-листа поля в интервале
// [from, to): по одной на слот бронирования, упорядоченные по времени старта
func (r *Repository) ListTeeSheetItems(ctx context.Context, golfCourseID int64, from, to time.Time) ([]*domain.TeeSheetItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"r.id",
		"r.golf_course_id",
		"r.property_id",
		"r.starts_at",
		"s.id",
		"s.position",
		"s.holes",
		"s.transportation",
		"s.guest_name",
		"s.guest_phone",
		"s.golfer_state",
		"s.payment_state",
		"g.id",
		"g.golfpay_identifier",
		"g.first_name",
		"g.last_name",
		"g.email",
		"g.phone",
	).
		From("reservations r").
		Join("slots s ON s.reservation_id = r.id").
		LeftJoin("golfers g ON g.id = s.golfer_id").
		Where(squirrel.Eq{"r.golf_course_id": golfCourseID}).
		Where(squirrel.GtOrEq{"r.starts_at": from}).
		Where(squirrel.Lt{"r.starts_at": to}).
		OrderBy("r.starts_at ASC, s.position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTeeSheetItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTeeSheetItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.TeeSheetItem, 0)
	for rows.Next() {
		var item domain.TeeSheetItem
		var reservationID int64
		var slot domain.Slot
		var guestName, guestPhone *string
		var golferID sql.NullInt64
		var golfpayIdentifier, firstName, lastName, email, phone sql.NullString

		err := rows.Scan(
			&reservationID,
			&item.GolfCourseID,
			&item.PropertyID,
			&item.StartsAt,
			&slot.ID,
			&slot.Position,
			&slot.Holes,
			&slot.Transportation,
			&guestName,
			&guestPhone,
			&slot.GolferState,
			&slot.PaymentState,
			&golferID,
			&golfpayIdentifier,
			&firstName,
			&lastName,
			&email,
			&phone,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: ListTeeSheetItems - scan item: %v", ErrScanRow, err)
		}

		if golferID.Valid {
			slot.Occupant.Golfer = &domain.Golfer{
				ID:                golferID.Int64,
				GolfpayIdentifier: nullableString(golfpayIdentifier),
				FirstName:         firstName.String,
				LastName:          nullableString(lastName),
				Email:             nullableString(email),
				Phone:             nullableString(phone),
			}
		} else if guestName != nil {
			slot.Occupant.Guest = &domain.Guest{Name: *guestName, Phone: guestPhone}
		}

		item.ReservationID = &reservationID
		item.Slot = &slot

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTeeSheetItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
