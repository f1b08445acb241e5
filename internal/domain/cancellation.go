package domain

import "time"

// CancellationQuote is the outcome of evaluating the cancellation policy
type CancellationQuote struct {
	Fee              float64
	IsFullRefund     bool
	DaysUntilCheckIn int
}

// DaysUntilCheckIn computes floor((checkIn - now) in days) on the raw instants,
// so exactly 72 hours before check-in counts as 3 full days
func DaysUntilCheckIn(checkIn, now time.Time) int {
	diff := checkIn.Sub(now)
	if diff < 0 {
		return -1
	}
	return int(diff.Hours() / 24)
}

// EvaluateCancellation applies the cancellation-fee policy: cancelling at
// least freeCancellationDays before check-in is free, anything later is
// charged the full total. The threshold is inclusive.
func EvaluateCancellation(checkIn, now time.Time, totalPrice float64, freeCancellationDays int) CancellationQuote {
	days := DaysUntilCheckIn(checkIn, now)

	if days >= freeCancellationDays {
		return CancellationQuote{
			Fee:              0,
			IsFullRefund:     true,
			DaysUntilCheckIn: days,
		}
	}

	return CancellationQuote{
		Fee:              totalPrice,
		IsFullRefund:     false,
		DaysUntilCheckIn: days,
	}
}

// IsStayUnderway returns true when the stay has already started relative to
// now; such bookings can no longer be cancelled
func IsStayUnderway(checkIn, now time.Time) bool {
	return !now.Before(checkIn)
}
