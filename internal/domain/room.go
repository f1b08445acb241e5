package domain

import (
	"strings"
	"time"
)

// Room represents a hotel room. Rooms are long-lived reference data; many
// bookings reference one room.
type Room struct {
	ID           int64
	RoomNumber   string
	Type         string
	BasePrice    float64 // default VAT-exclusive nightly rate
	MaxOccupancy int

	// SpecialPrices maps a lowercase weekday name ("friday") or an ISO date
	// ("2025-03-14") to an override nightly base rate. Date keys win over
	// weekday keys.
	SpecialPrices map[string]float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NightlyBaseRate resolves the VAT-exclusive base rate for one night
func (r *Room) NightlyBaseRate(date time.Time) float64 {
	if len(r.SpecialPrices) == 0 {
		return r.BasePrice
	}

	if price, ok := r.SpecialPrices[date.Format(DateFormat)]; ok {
		return price
	}
	if price, ok := r.SpecialPrices[strings.ToLower(date.Weekday().String())]; ok {
		return price
	}

	return r.BasePrice
}

// AverageBaseRate computes the per-night base rate over the whole stay,
// used as the derivation anchor when the client does not supply a price
func (r *Room) AverageBaseRate(checkIn time.Time, nights int) float64 {
	if nights < 1 {
		return r.BasePrice
	}

	var total float64
	night := NormalizeDate(checkIn)
	for i := 0; i < nights; i++ {
		total += r.NightlyBaseRate(night)
		night = night.AddDate(0, 0, 1)
	}

	return Round2(total / float64(nights))
}
