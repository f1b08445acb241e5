package move_booking

import (
	"time"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	moveBooking "github.com/m04kA/Hotel-BookingService/internal/usecase/move_booking"
)

// MoveBookingRequest HTTP request model для переноса брони в календаре
type MoveBookingRequest struct {
	TargetRoomID int64  `json:"targetRoomId"`
	TargetDate   string `json:"targetDate"` // новая дата заезда "2025-10-15"
}

// MoveBookingResponse HTTP response model
type MoveBookingResponse struct {
	ID            int64  `json:"id"`
	BookingNumber int64  `json:"bookingNumber"`
	RoomID        int64  `json:"roomId"`
	CheckIn       string `json:"checkIn"`
	CheckOut      string `json:"checkOut"`
	Nights        int    `json:"nights"`
	Status        string `json:"status"`
	UpdatedAt     string `json:"updatedAt"`
}

// ConflictResponse тело ответа 409 со списком конфликтующих бронирований
type ConflictResponse struct {
	Code      int     `json:"code"`
	Message   string  `json:"message"`
	Conflicts []int64 `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *MoveBookingRequest) ToUseCaseRequest(bookingID int64) (*moveBooking.Request, error) {
	targetDate, err := time.Parse(domain.DateFormat, r.TargetDate)
	if err != nil {
		return nil, err
	}

	return &moveBooking.Request{
		BookingID:    bookingID,
		TargetRoomID: r.TargetRoomID,
		TargetDate:   targetDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *moveBooking.Response) *MoveBookingResponse {
	return &MoveBookingResponse{
		ID:            resp.ID,
		BookingNumber: resp.BookingNumber,
		RoomID:        resp.RoomID,
		CheckIn:       resp.CheckIn.Format(domain.DateFormat),
		CheckOut:      resp.CheckOut.Format(domain.DateFormat),
		Nights:        resp.Nights,
		Status:        resp.Status,
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
