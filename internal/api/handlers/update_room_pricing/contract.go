package update_room_pricing

import (
	"context"

	"github.com/m04kA/Hotel-BookingService/internal/service/rooms/models"
)

type RoomService interface {
	UpdatePricing(ctx context.Context, id int64, req *models.UpdatePricingRequest) (*models.RoomResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
