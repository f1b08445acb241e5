package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateBookingNumber возвращается при нарушении уникальности
	// booking_number (гонка при конкурентном создании)
	ErrDuplicateBookingNumber = errors.New("booking.repository: duplicate booking number")

	// ErrCannotCancel возвращается, когда бронирование не в отменяемом статусе
	ErrCannotCancel = errors.New("booking.repository: booking cannot be cancelled")

	// ErrCannotMove возвращается, когда бронирование не в переносимом статусе
	ErrCannotMove = errors.New("booking.repository: booking cannot be moved")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
