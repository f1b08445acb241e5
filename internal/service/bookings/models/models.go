package models

import (
	"errors"
	"time"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// UpdatePriceRequest запрос на изменение цены бронирования.
// Anchor указывает, какое из трёх полей цены задано; остальные два
// пересчитываются от него.
type UpdatePriceRequest struct {
	Anchor string  `json:"anchor"`
	Value  float64 `json:"value"`
}

// ListBookingsRequest запрос на получение списка бронирований с фильтрацией
type ListBookingsRequest struct {
	RoomID          *int64     `json:"roomId,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		RoomID:          r.RoomID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStayStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64  `json:"id"`
	BookingNumber int64  `json:"bookingNumber"`
	RoomID        int64  `json:"roomId"`
	GuestName     string `json:"guestName"`
	GuestPhone    string `json:"guestPhone,omitempty"`
	GuestEmail    string `json:"guestEmail,omitempty"`
	CheckIn       string `json:"checkIn"`  // "2025-10-15"
	CheckOut      string `json:"checkOut"` // "2025-10-17"
	Nights        int    `json:"nights"`
	IsTourist     bool   `json:"isTourist"`

	BasePrice       float64 `json:"basePrice"`
	PriceWithoutVat float64 `json:"priceWithoutVat"` // легаси-алиас basePrice, дублируется для старых клиентов
	PricePerNight   float64 `json:"pricePerNight"`
	TotalPrice      float64 `json:"totalPrice"`

	PaymentStatus string `json:"paymentStatus"`
	Status        string `json:"status"`

	CancellationReason *string  `json:"cancellationReason,omitempty"`
	CancellationFee    *float64 `json:"cancellationFee,omitempty"`
	CancelledAt        *string  `json:"cancelledAt,omitempty"` // ISO 8601 format
	Notes              *string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CancelBookingResponse результат отмены бронирования
type CancelBookingResponse struct {
	ID               int64   `json:"id"`
	BookingNumber    int64   `json:"bookingNumber"`
	Status           string  `json:"status"`
	CancellationFee  float64 `json:"cancellationFee"`
	IsFullRefund     bool    `json:"isFullRefund"`
	DaysUntilCheckIn int     `json:"daysUntilCheckIn"`
	CancelledAt      string  `json:"cancelledAt"` // ISO 8601 format
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		BookingNumber:      b.BookingNumber,
		RoomID:             b.RoomID,
		GuestName:          b.Guest.Name,
		GuestPhone:         b.Guest.Phone,
		GuestEmail:         b.Guest.Email,
		CheckIn:            b.CheckIn.Format(domain.DateFormat),
		CheckOut:           b.CheckOut.Format(domain.DateFormat),
		Nights:             b.Nights,
		IsTourist:          b.IsTourist,
		BasePrice:          b.BasePrice,
		PriceWithoutVat:    b.BasePrice,
		PricePerNight:      b.PricePerNight,
		TotalPrice:         b.TotalPrice,
		PaymentStatus:      string(b.PaymentStatus),
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CancellationFee:    b.CancellationFee,
		Notes:              b.Notes,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// legacyStayStatuses устаревшие написания статусов, принимаемые на входе.
// Старые клиенты присылают "canceled" в одну "l"; в ответах всегда
// каноническое "cancelled".
var legacyStayStatuses = map[string]domain.StayStatus{
	"canceled": domain.StayCancelled,
}

// ToDomainStayStatus конвертирует строку в domain.StayStatus с валидацией
func ToDomainStayStatus(status string) (domain.StayStatus, error) {
	if mapped, ok := legacyStayStatuses[status]; ok {
		return mapped, nil
	}

	s := domain.StayStatus(status)

	for _, valid := range domain.ValidStayStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
