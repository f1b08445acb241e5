package move_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("move_booking: booking not found")

	// ErrRoomNotFound возвращается, когда целевая комната не найдена
	ErrRoomNotFound = errors.New("move_booking: target room not found")

	// ErrRoomUnavailable возвращается, когда целевые даты пересекаются
	// с активным бронированием целевой комнаты
	ErrRoomUnavailable = errors.New("move_booking: target room is not available for these dates")

	// ErrCannotMove возвращается, когда бронирование не в переносимом статусе
	ErrCannotMove = errors.New("move_booking: booking cannot be moved")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("move_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("move_booking: internal error")
)

// RoomUnavailableError несет номера конфликтующих бронирований
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
