package list_bookings

import (
	"strconv"
	"time"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	"github.com/m04kA/Hotel-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает фильтр списка бронирований из query параметров
func ToServiceRequest(roomIDStr, startDateStr, endDateStr, statusStr, includeInactiveStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if roomIDStr != "" {
		roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.RoomID = &roomID
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
