package events

// Имена очередей событий бронирования
const (
	QueueBookingCreated   = "booking.created"
	QueueBookingCancelled = "booking.cancelled"
	QueueBookingMoved     = "booking.moved"
)

// BookingCreatedEvent публикуется после успешного создания бронирования.
// Содержит достаточно данных, чтобы почтовый сервис и внешняя синхронизация
// календаря не ходили в основную БД.
type BookingCreatedEvent struct {
	BookingID     int64   `json:"booking_id"`
	BookingNumber int64   `json:"booking_number"`
	RoomID        int64   `json:"room_id"`
	RoomNumber    string  `json:"room_number"`
	GuestName     string  `json:"guest_name"`
	GuestEmail    string  `json:"guest_email"`
	CheckIn       string  `json:"check_in"`  // YYYY-MM-DD
	CheckOut      string  `json:"check_out"` // YYYY-MM-DD
	Nights        int     `json:"nights"`
	TotalPrice    float64 `json:"total_price"`
	CreatedAt     string  `json:"created_at"` // RFC 3339
}

// BookingCancelledEvent публикуется после отмены бронирования
type BookingCancelledEvent struct {
	BookingID       int64   `json:"booking_id"`
	BookingNumber   int64   `json:"booking_number"`
	GuestEmail      string  `json:"guest_email"`
	CancellationFee float64 `json:"cancellation_fee"`
	IsFullRefund    bool    `json:"is_full_refund"`
	CancelledAt     string  `json:"cancelled_at"` // RFC 3339
}

// BookingMovedEvent публикуется после переноса бронирования на другую
// комнату или дату
type BookingMovedEvent struct {
	BookingID     int64  `json:"booking_id"`
	BookingNumber int64  `json:"booking_number"`
	FromRoomID    int64  `json:"from_room_id"`
	ToRoomID      int64  `json:"to_room_id"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
}
