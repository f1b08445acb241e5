package move_booking

import (
	"time"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
)

// Request модель запроса на перенос бронирования (drag-and-drop в календаре)
type Request struct {
	BookingID    int64     // ID переносимого бронирования
	TargetRoomID int64     // Целевая комната (может совпадать с текущей)
	TargetDate   time.Time // Новая дата заезда; длительность сохраняется
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	ID            int64
	BookingNumber int64
	RoomID        int64
	CheckIn       time.Time
	CheckOut      time.Time
	Nights        int
	Status        string
	UpdatedAt     time.Time
}

// fromDomain конвертирует domain модель в ответ usecase
func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		BookingNumber: b.BookingNumber,
		RoomID:        b.RoomID,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Nights:        b.Nights,
		Status:        string(b.Status),
		UpdatedAt:     b.UpdatedAt,
	}
}
