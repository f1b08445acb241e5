package domain

import "time"

// Overlaps reports whether two half-open stay intervals [aIn, aOut) and
// [bIn, bOut) share at least one night. Strict inequalities: a check-out on
// the same day as another booking's check-in is NOT a conflict.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// FindConflicts scans existing bookings of a room for stays overlapping the
// proposed [checkIn, checkOut) range. Inactive bookings are skipped, as is
// the booking identified by excludeID (used when editing or moving a stay).
// Returns the conflicting bookings in input order.
func FindConflicts(bookings []*Booking, checkIn, checkOut time.Time, excludeID *int64) []*Booking {
	in := NormalizeDate(checkIn)
	out := NormalizeDate(checkOut)

	conflicts := make([]*Booking, 0)
	for _, b := range bookings {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if Overlaps(in, out, NormalizeDate(b.CheckIn), NormalizeDate(b.CheckOut)) {
			conflicts = append(conflicts, b)
		}
	}

	return conflicts
}

// ConflictNumbers extracts the human-facing booking numbers of conflicts,
// for user-visible error messages
func ConflictNumbers(conflicts []*Booking) []int64 {
	numbers := make([]int64, len(conflicts))
	for i, b := range conflicts {
		numbers[i] = b.BookingNumber
	}
	return numbers
}
