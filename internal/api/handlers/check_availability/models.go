package check_availability

import (
	"strconv"
	"time"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	checkAvailability "github.com/m04kA/Hotel-BookingService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available bool    `json:"available"`
	Conflicts []int64 `json:"conflicts"`
}

// ToUseCaseRequest собирает запрос use case из path и query параметров
func ToUseCaseRequest(roomID int64, checkInStr, checkOutStr, excludeStr string) (*checkAvailability.Request, error) {
	checkIn, err := time.Parse(domain.DateFormat, checkInStr)
	if err != nil {
		return nil, err
	}
	checkOut, err := time.Parse(domain.DateFormat, checkOutStr)
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{
		RoomID:   roomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}

	if excludeStr != "" {
		excludeID, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ExcludeBookingID = &excludeID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	conflicts := resp.Conflicts
	if conflicts == nil {
		conflicts = []int64{}
	}
	return &AvailabilityResponse{
		Available: resp.Available,
		Conflicts: conflicts,
	}
}
