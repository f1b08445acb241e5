package rooms

import (
	"context"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
	UpdatePricing(ctx context.Context, id int64, basePrice float64, specialPrices map[string]float64) (*domain.Room, error)
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
