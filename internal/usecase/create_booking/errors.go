package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrRoomUnavailable возвращается, когда запрошенные даты пересекаются
	// с активным бронированием комнаты
	ErrRoomUnavailable = errors.New("create_booking: room is not available for these dates")

	// ErrInvalidDateRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidDateRange = errors.New("create_booking: invalid date range")

	// ErrInvalidPriceInput возвращается при некорректном ценовом якоре
	ErrInvalidPriceInput = errors.New("create_booking: invalid price input")

	// ErrSequenceAssignment возвращается, когда не удалось атомарно назначить
	// booking_number за отведенное число попыток
	ErrSequenceAssignment = errors.New("create_booking: failed to assign booking number")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// RoomUnavailableError несет номера конфликтующих бронирований
// для пользовательского сообщения об ошибке
type RoomUnavailableError struct {
	Conflicts []int64 // booking numbers
}

func (e *RoomUnavailableError) Error() string {
	return fmt.Sprintf("%v: conflicts with bookings %v", ErrRoomUnavailable, e.Conflicts)
}

// Unwrap позволяет errors.Is(err, ErrRoomUnavailable)
func (e *RoomUnavailableError) Unwrap() error {
	return ErrRoomUnavailable
}
