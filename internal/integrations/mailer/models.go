package mailer

// EmailRequest запрос на отправку письма гостю
type EmailRequest struct {
	To       string `json:"to"`
	Template string `json:"template"` // booking_confirmation | booking_cancellation
	Subject  string `json:"subject"`

	// Параметры шаблона
	GuestName     string  `json:"guest_name"`
	BookingNumber int64   `json:"booking_number"`
	RoomNumber    string  `json:"room_number,omitempty"`
	CheckIn       string  `json:"check_in,omitempty"`  // YYYY-MM-DD
	CheckOut      string  `json:"check_out,omitempty"` // YYYY-MM-DD
	TotalPrice    float64 `json:"total_price,omitempty"`
	Fee           float64 `json:"fee,omitempty"`
}

// Шаблоны писем
const (
	TemplateBookingConfirmation = "booking_confirmation"
	TemplateBookingCancellation = "booking_cancellation"
)

// ErrorResponse модель ошибки почтового сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
