package create_booking

import (
	"time"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	RoomID    int64        // ID комнаты
	Guest     domain.Guest // Контакты гостя
	CheckIn   time.Time    // Дата заезда (без времени)
	CheckOut  time.Time    // Дата выезда (без времени, исключающая граница)
	IsTourist bool         // Турист — бронирование освобождено от НДС

	// Ценовой якорь. Если не задан, базовая ставка за ночь берется
	// из цен комнаты (base_price + special_prices)
	PriceAnchor *domain.PriceAnchor
	PriceValue  *float64

	Notes *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	BookingNumber int64
	RoomID        int64
	Guest         domain.Guest

	CheckIn  time.Time
	CheckOut time.Time
	Nights   int

	IsTourist bool

	BasePrice     float64
	PricePerNight float64
	TotalPrice    float64

	PaymentStatus string
	Status        string

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// fromDomain конвертирует domain модель в ответ usecase
func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		BookingNumber: b.BookingNumber,
		RoomID:        b.RoomID,
		Guest:         b.Guest,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Nights:        b.Nights,
		IsTourist:     b.IsTourist,
		BasePrice:     b.BasePrice,
		PricePerNight: b.PricePerNight,
		TotalPrice:    b.TotalPrice,
		PaymentStatus: string(b.PaymentStatus),
		Status:        string(b.Status),
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
