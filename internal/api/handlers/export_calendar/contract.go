package export_calendar

import (
	"context"

	bookingModels "github.com/m04kA/Hotel-BookingService/internal/service/bookings/models"
	roomModels "github.com/m04kA/Hotel-BookingService/internal/service/rooms/models"
)

type BookingService interface {
	List(ctx context.Context, req *bookingModels.ListBookingsRequest) (*bookingModels.BookingListResponse, error)
}

type RoomService interface {
	GetByID(ctx context.Context, id int64) (*roomModels.RoomResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
