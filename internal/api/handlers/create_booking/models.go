package create_booking

import (
	"time"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
	createBooking "github.com/m04kA/Hotel-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID     int64  `json:"roomId"`
	GuestName  string `json:"guestName"`
	GuestPhone string `json:"guestPhone,omitempty"`
	GuestEmail string `json:"guestEmail,omitempty"`
	CheckIn    string `json:"checkIn"`  // "2025-10-15"
	CheckOut   string `json:"checkOut"` // "2025-10-17"
	IsTourist  bool   `json:"isTourist,omitempty"`

	// Ценовой якорь: basePrice | pricePerNight | totalPrice.
	// Если не задан, цена считается от тарифов комнаты.
	PriceAnchor *string  `json:"priceAnchor,omitempty"`
	PriceValue  *float64 `json:"priceValue,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64  `json:"id"`
	BookingNumber int64  `json:"bookingNumber"`
	RoomID        int64  `json:"roomId"`
	GuestName     string `json:"guestName"`
	GuestPhone    string `json:"guestPhone,omitempty"`
	GuestEmail    string `json:"guestEmail,omitempty"`
	CheckIn       string `json:"checkIn"`
	CheckOut      string `json:"checkOut"`
	Nights        int    `json:"nights"`
	IsTourist     bool   `json:"isTourist"`

	BasePrice       float64 `json:"basePrice"`
	PriceWithoutVat float64 `json:"priceWithoutVat"` // легаси-алиас basePrice
	PricePerNight   float64 `json:"pricePerNight"`
	TotalPrice      float64 `json:"totalPrice"`

	PaymentStatus string  `json:"paymentStatus"`
	Status        string  `json:"status"`
	Notes         *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ConflictResponse тело ответа 409 со списком конфликтующих бронирований
type ConflictResponse struct {
	Code      int     `json:"code"`
	Message   string  `json:"message"`
	Conflicts []int64 `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	checkIn, err := time.Parse(domain.DateFormat, r.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := time.Parse(domain.DateFormat, r.CheckOut)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		RoomID: r.RoomID,
		Guest: domain.Guest{
			Name:  r.GuestName,
			Phone: r.GuestPhone,
			Email: r.GuestEmail,
		},
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		IsTourist:  r.IsTourist,
		PriceValue: r.PriceValue,
		Notes:      r.Notes,
	}

	if r.PriceAnchor != nil {
		anchor, err := domain.ParsePriceAnchor(*r.PriceAnchor)
		if err != nil {
			return nil, err
		}
		req.PriceAnchor = &anchor
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		BookingNumber:   resp.BookingNumber,
		RoomID:          resp.RoomID,
		GuestName:       resp.Guest.Name,
		GuestPhone:      resp.Guest.Phone,
		GuestEmail:      resp.Guest.Email,
		CheckIn:         resp.CheckIn.Format(domain.DateFormat),
		CheckOut:        resp.CheckOut.Format(domain.DateFormat),
		Nights:          resp.Nights,
		IsTourist:       resp.IsTourist,
		BasePrice:       resp.BasePrice,
		PriceWithoutVat: resp.BasePrice,
		PricePerNight:   resp.PricePerNight,
		TotalPrice:      resp.TotalPrice,
		PaymentStatus:   resp.PaymentStatus,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
