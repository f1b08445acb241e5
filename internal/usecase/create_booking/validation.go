package create_booking

import (
	"fmt"
	"math"
	"strings"

	"github.com/m04kA/Hotel-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Guest.Name)
	if name == "" {
		return fmt.Errorf("%w: guest name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guest name is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Guest.Phone) == "" && strings.TrimSpace(req.Guest.Email) == "" {
		return fmt.Errorf("%w: guest phone or email is required", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	// Якорь и значение задаются только вместе
	if (req.PriceAnchor == nil) != (req.PriceValue == nil) {
		return fmt.Errorf("%w: price anchor and value must be provided together", ErrInvalidPriceInput)
	}
	if req.PriceValue != nil {
		v := *req.PriceValue
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: anchor value must be a finite non-negative number", ErrInvalidPriceInput)
		}
	}

	return nil
}
