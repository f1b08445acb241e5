package update_price

import (
	"context"

	"github.com/m04kA/Hotel-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	UpdatePrice(ctx context.Context, bookingID int64, req *models.UpdatePriceRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
