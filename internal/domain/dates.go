package domain

import (
	"errors"
	"time"
)

// ErrInvalidDateRange is returned when checkOut is not strictly after checkIn
var ErrInvalidDateRange = errors.New("domain: check-out must be after check-in")

// NormalizeDate strips the time-of-day component, keeping the calendar date
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Nights computes the number of nights in the half-open stay [checkIn, checkOut).
// Time-of-day is ignored. Fails with ErrInvalidDateRange unless checkOut is
// strictly after checkIn.
func Nights(checkIn, checkOut time.Time) (int, error) {
	in := NormalizeDate(checkIn)
	out := NormalizeDate(checkOut)

	if !out.After(in) {
		return 0, ErrInvalidDateRange
	}

	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		return 0, ErrInvalidDateRange
	}

	return nights, nil
}

// SameDay returns true if two timestamps fall on the same calendar date
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast returns true if date is before today relative to now
func IsDateInPast(date, now time.Time) bool {
	return NormalizeDate(date).Before(NormalizeDate(now))
}
