package check_availability

import "time"

// Request модель запроса проверки доступности комнаты
type Request struct {
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time

	// ExcludeBookingID исключает бронирование из проверки —
	// используется при редактировании дат существующей брони
	ExcludeBookingID *int64
}

// Response результат проверки доступности
type Response struct {
	Available bool
	Conflicts []int64 // номера конфликтующих бронирований
}
