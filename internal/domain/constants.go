package domain

// Date format used across the API and storage layers
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default business parameters; production values come from configuration
const (
	DefaultVATRate              = 18.0
	DefaultFreeCancellationDays = 3
	DefaultBookingNumberStart   = 1001
)

// Validation limits
const (
	MaxNightsPerBooking = 365
	MaxNotesLength      = 500
	MaxGuestNameLength  = 200
)

// ValidStayStatuses closed set of stay statuses
var ValidStayStatuses = []StayStatus{
	StayPending,
	StayConfirmed,
	StayCancelled,
	StayCompleted,
}

// ValidPaymentStatuses closed set of payment statuses
var ValidPaymentStatuses = []PaymentStatus{
	PaymentPending,
	PaymentPartial,
	PaymentPaid,
	PaymentCanceled,
}
