package domain

import "time"

// StayStatus represents the lifecycle status of a booking
type StayStatus string

const (
	StayPending   StayStatus = "pending"
	StayConfirmed StayStatus = "confirmed"
	StayCancelled StayStatus = "cancelled"
	StayCompleted StayStatus = "completed"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentCanceled PaymentStatus = "canceled"
)

// Guest is the embedded guest contact of a booking.
// It has no independent lifecycle.
type Guest struct {
	Name  string
	Phone string
	Email string
}

// Booking represents a hotel room booking.
// BookingNumber is the human-facing sequential identifier, distinct from ID.
type Booking struct {
	ID            int64
	BookingNumber int64
	RoomID        int64
	Guest         Guest

	CheckIn  time.Time // date only, time-of-day is ignored
	CheckOut time.Time // date only, exclusive bound of the stay
	Nights   int

	IsTourist bool // tourist guests are VAT-exempt

	BasePrice     float64 // VAT-exclusive nightly rate
	PricePerNight float64 // VAT-inclusive nightly rate
	TotalPrice    float64 // VAT-inclusive total for the stay

	PaymentStatus PaymentStatus
	Status        StayStatus

	CancellationReason *string
	CancellationFee    *float64
	CancelledAt        *time.Time

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its room nights.
// Bookings cancelled by either stay status or payment status do not block the calendar.
func (b *Booking) IsActive() bool {
	return b.Status != StayCancelled && b.PaymentStatus != PaymentCanceled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StayCancelled
}

// CanBeCancelled returns true if the booking may still enter the cancellation flow
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StayPending || b.Status == StayConfirmed
}

// CanBeMoved returns true if the booking may be reassigned to another room/date
func (b *Booking) CanBeMoved() bool {
	return b.Status == StayPending || b.Status == StayConfirmed
}

// BookingsFilter filter for listing bookings on the admin dashboard
type BookingsFilter struct {
	RoomID          *int64      // optional, nil = all rooms
	StartDate       *time.Time  // only stays ending after this date (optional)
	EndDate         *time.Time  // only stays starting before this date (optional)
	Status          *StayStatus // optional
	IncludeInactive bool        // include cancelled bookings
}
