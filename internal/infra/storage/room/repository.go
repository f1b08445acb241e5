package room

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	"github.com/m04kA/Hotel-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Hotel-BookingService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

// Repository репозиторий для работы с комнатами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую комнату
func (r *Repository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	specialPrices, err := marshalSpecialPrices(room.SpecialPrices)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal special prices: %w", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("rooms").
		Columns(
			"room_number",
			"type",
			"base_price",
			"max_occupancy",
			"special_prices",
		).
		Values(
			room.RoomNumber,
			room.Type,
			room.BasePrice,
			room.MaxOccupancy,
			specialPrices,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&room.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, fmt.Errorf("%w: Create - number=%s: %w", ErrDuplicateRoomNumber, room.RoomNumber, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time

	return room, nil
}

// GetByID получает комнату по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"room_number",
		"type",
		"base_price",
		"max_occupancy",
		"special_prices",
		"created_at",
		"updated_at",
	).
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %w", ErrScanRow, err)
	}

	return room, nil
}

// List получает все комнаты, отсортированные по номеру
func (r *Repository) List(ctx context.Context) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"room_number",
		"type",
		"base_price",
		"max_occupancy",
		"special_prices",
		"created_at",
		"updated_at",
	).
		From("rooms").
		OrderBy("room_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return rooms, nil
}

// UpdatePricing обновляет базовую цену и специальные цены комнаты
func (r *Repository) UpdatePricing(ctx context.Context, id int64, basePrice float64, specialPrices map[string]float64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	encoded, err := marshalSpecialPrices(specialPrices)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePricing - marshal special prices: %w", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("rooms").
		Set("base_price", basePrice).
		Set("special_prices", encoded).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, room_number, type, base_price, max_occupancy, special_prices, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePricing - build update query: %w", ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePricing - scan room: %w", ErrScanRow, err)
	}

	return room, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRoom сканирует строку в модель комнаты, распаковывая JSONB спеццен
func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room
	var specialPrices []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&room.ID,
		&room.RoomNumber,
		&room.Type,
		&room.BasePrice,
		&room.MaxOccupancy,
		&specialPrices,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(specialPrices) > 0 {
		if err := json.Unmarshal(specialPrices, &room.SpecialPrices); err != nil {
			return nil, err
		}
	}

	room.CreatedAt = createdAt.Time
	room.UpdatedAt = updatedAt.Time

	return &room, nil
}

func marshalSpecialPrices(prices map[string]float64) ([]byte, error) {
	if prices == nil {
		prices = map[string]float64{}
	}
	return json.Marshal(prices)
}
