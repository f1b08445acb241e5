package bookings

import (
	"context"
	"time"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	"github.com/m04kA/Hotel-BookingService/internal/infra/events"
	"github.com/m04kA/Hotel-BookingService/internal/integrations/mailer"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdatePrices(ctx context.Context, id int64, prices domain.PriceSet) error
	Cancel(ctx context.Context, id int64, reason string, fee float64, cancelledAt time.Time) error
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	PublishBookingCancelled(ctx context.Context, event events.BookingCancelledEvent) error
}

// Mailer интерфейс клиента почтового сервиса
type Mailer interface {
	SendWithGracefulDegradation(ctx context.Context, req mailer.EmailRequest) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
