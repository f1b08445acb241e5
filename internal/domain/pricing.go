package domain

import (
	"errors"
	"math"
)

// ErrInvalidPriceInput is returned when a price anchor is not a finite
// non-negative number or nights < 1
var ErrInvalidPriceInput = errors.New("domain: invalid price input")

// PriceAnchor names the price field the caller supplies; the other two are derived
type PriceAnchor string

const (
	AnchorBasePrice     PriceAnchor = "basePrice"
	AnchorPricePerNight PriceAnchor = "pricePerNight"
	AnchorTotalPrice    PriceAnchor = "totalPrice"
)

// ParsePriceAnchor validates the string spelling of a price anchor
func ParsePriceAnchor(s string) (PriceAnchor, error) {
	switch PriceAnchor(s) {
	case AnchorBasePrice, AnchorPricePerNight, AnchorTotalPrice:
		return PriceAnchor(s), nil
	default:
		return "", ErrInvalidPriceInput
	}
}

// PriceSet is the mutually consistent triple of price fields
type PriceSet struct {
	BasePrice     float64 // VAT-exclusive nightly rate
	PricePerNight float64 // VAT-inclusive nightly rate
	TotalPrice    float64 // VAT-inclusive total
}

// Round2 rounds half away from zero to 2 decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DerivePrices derives all three price fields from one anchor value.
//
// The effective VAT rate is 0 when isTourist is true. Each derived value is
// rounded to 2 decimals independently, never chained through unrounded
// intermediates. Round-trips between directions may therefore drift by ±0.01;
// that inexactness is the documented contract of this calculator.
func DerivePrices(anchor PriceAnchor, value float64, nights int, vatRate float64, isTourist bool) (PriceSet, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return PriceSet{}, ErrInvalidPriceInput
	}
	if nights < 1 {
		return PriceSet{}, ErrInvalidPriceInput
	}
	if math.IsNaN(vatRate) || math.IsInf(vatRate, 0) || vatRate < 0 {
		return PriceSet{}, ErrInvalidPriceInput
	}

	vat := vatRate
	if isTourist {
		vat = 0
	}
	factor := 1 + vat/100

	var ps PriceSet
	switch anchor {
	case AnchorBasePrice:
		ps.BasePrice = Round2(value)
		ps.PricePerNight = Round2(value * factor)
		ps.TotalPrice = Round2(ps.PricePerNight * float64(nights))
	case AnchorPricePerNight:
		ps.PricePerNight = Round2(value)
		ps.BasePrice = Round2(value / factor)
		ps.TotalPrice = Round2(ps.PricePerNight * float64(nights))
	case AnchorTotalPrice:
		ps.TotalPrice = Round2(value)
		ps.PricePerNight = Round2(value / float64(nights))
		ps.BasePrice = Round2(ps.PricePerNight / factor)
	default:
		return PriceSet{}, ErrInvalidPriceInput
	}

	return ps, nil
}
