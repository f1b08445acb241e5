package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	"github.com/m04kA/Hotel-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Hotel-BookingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const pgUniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"booking_number",
	"room_id",
	"guest_name",
	"guest_phone",
	"guest_email",
	"check_in",
	"check_out",
	"nights",
	"is_tourist",
	"base_price",
	"price_per_night",
	"total_price",
	"payment_status",
	"status",
	"cancellation_reason",
	"cancellation_fee",
	"cancelled_at",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Уникальный индекс по booking_number — последний рубеж против гонки
// при конкурентном назначении номеров: нарушение транслируется в
// ErrDuplicateBookingNumber, и usecase повторяет попытку.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_number",
			"room_id",
			"guest_name",
			"guest_phone",
			"guest_email",
			"check_in",
			"check_out",
			"nights",
			"is_tourist",
			"base_price",
			"price_per_night",
			"total_price",
			"payment_status",
			"status",
			"notes",
		).
		Values(
			b.BookingNumber,
			b.RoomID,
			b.Guest.Name,
			b.Guest.Phone,
			b.Guest.Email,
			b.CheckIn,
			b.CheckOut,
			b.Nights,
			b.IsTourist,
			b.BasePrice,
			b.PricePerNight,
			b.TotalPrice,
			b.PaymentStatus,
			b.Status,
			b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, fmt.Errorf("%w: Create - number=%d: %w", ErrDuplicateBookingNumber, b.BookingNumber, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return b, nil
}

// MaxBookingNumber возвращает максимальный назначенный booking_number
// по всем бронированиям (включая отмененные — номера никогда не переиспользуются).
// Возвращает 0, если бронирований еще нет.
func (r *Repository) MaxBookingNumber(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(booking_number), 0)").
		From("bookings").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MaxBookingNumber - build select query: %w", ErrBuildQuery, err)
	}

	var max int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("%w: MaxBookingNumber - scan: %w", ErrScanRow, err)
	}

	return max, nil
}

// FindOverlapping получает активные бронирования комнаты, пересекающиеся
// с полуоткрытым интервалом [checkIn, checkOut).
// Условие пересечения: check_in < checkOut AND check_out > checkIn —
// выезд в день чужого заезда пересечением не считается.
// excludeID исключает само бронирование при редактировании или переносе.
// Внутри транзакции добавляется FOR UPDATE для блокировки строк комнаты.
func (r *Repository) FindOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID *int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.NotEq{"status": string(domain.StayCancelled)}).
		Where(squirrel.NotEq{"payment_status": string(domain.PaymentCanceled)}).
		Where(squirrel.Lt{"check_in": checkOut}).
		Where(squirrel.Gt{"check_out": checkIn}).
		OrderBy("check_in ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	// Блокируем пересекающиеся строки внутри транзакции создания/переноса,
	// чтобы параллельный запрос на те же даты не прошел проверку одновременно
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// List получает бронирования с фильтрацией для админ-панели и календаря
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}

	// Период фильтрует пересечением: остаются брони, чей интервал
	// [check_in, check_out) задевает [StartDate, EndDate)
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"check_out": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"check_in": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.
			Where(squirrel.NotEq{"status": string(domain.StayCancelled)}).
			Where(squirrel.NotEq{"payment_status": string(domain.PaymentCanceled)})
	}

	selectBuilder = selectBuilder.OrderBy("check_in ASC, booking_number ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdatePrices обновляет три ценовых поля одним запросом
// Поля всегда пишутся вместе — частичное обновление цен запрещено
func (r *Repository) UpdatePrices(ctx context.Context, id int64, prices domain.PriceSet) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("base_price", prices.BasePrice).
		Set("price_per_night", prices.PricePerNight).
		Set("total_price", prices.TotalPrice).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePrices - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePrices - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePrices - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Move переносит бронирование на другую комнату и даты одним запросом
// Переносятся только активные (pending/confirmed) бронирования
func (r *Repository) Move(ctx context.Context, id int64, roomID int64, checkIn, checkOut time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("room_id", roomID).
		Set("check_in", checkIn).
		Set("check_out", checkOut).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []string{
			string(domain.StayPending),
			string(domain.StayConfirmed),
		}}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Move - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Move - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Move - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotMove
	}

	return nil
}

// Cancel отменяет бронирование: статус, причина, сумма штрафа и момент отмены
// пишутся одним условным запросом. Условие по статусу защищает от повторной
// отмены при конкурентных запросах.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, fee float64, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(domain.StayCancelled)).
		Set("cancellation_reason", reason).
		Set("cancellation_fee", fee).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []string{
			string(domain.StayPending),
			string(domain.StayConfirmed),
		}}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotCancel
	}

	return nil
}

// UpdateStatus обновляет статус бронирования (админ-операция)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.StayStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete физически удаляет бронирование (bulk-delete из админки,
// использовать осторожно — история теряется)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в модель бронирования
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.BookingNumber,
		&b.RoomID,
		&b.Guest.Name,
		&b.Guest.Phone,
		&b.Guest.Email,
		&b.CheckIn,
		&b.CheckOut,
		&b.Nights,
		&b.IsTourist,
		&b.BasePrice,
		&b.PricePerNight,
		&b.TotalPrice,
		&b.PaymentStatus,
		&b.Status,
		&b.CancellationReason,
		&b.CancellationFee,
		&b.CancelledAt,
		&b.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
