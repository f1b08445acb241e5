package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntilCheckIn(t *testing.T) {
	checkIn := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"exactly 72 hours before", time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), 3},
		{"an hour past the 72h mark", time.Date(2025, 10, 15, 1, 0, 0, 0, time.UTC), 2},
		{"same instant", checkIn, 0},
		{"after check-in", time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC), -1},
		{"ten days before", time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntilCheckIn(checkIn, tt.now))
		})
	}
}

func TestEvaluateCancellation_FreeCancellation(t *testing.T) {
	checkIn := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
	// Ровно 3 дня до заезда — порог включительный, отмена бесплатна
	now := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	quote := EvaluateCancellation(checkIn, now, 826.00, 3)

	assert.Equal(t, 0.0, quote.Fee)
	assert.True(t, quote.IsFullRefund)
	assert.Equal(t, 3, quote.DaysUntilCheckIn)
}

func TestEvaluateCancellation_LateCancellationChargesFullPrice(t *testing.T) {
	checkIn := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
	// 2 дня и 23 часа до заезда — меньше трёх полных дней
	now := time.Date(2025, 10, 15, 1, 0, 0, 0, time.UTC)

	quote := EvaluateCancellation(checkIn, now, 826.00, 3)

	assert.Equal(t, 826.00, quote.Fee)
	assert.False(t, quote.IsFullRefund)
	assert.Equal(t, 2, quote.DaysUntilCheckIn)
}

func TestEvaluateCancellation_DayOfCheckIn(t *testing.T) {
	checkIn := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 17, 20, 0, 0, 0, time.UTC)

	quote := EvaluateCancellation(checkIn, now, 413.00, 3)

	assert.Equal(t, 413.00, quote.Fee)
	assert.False(t, quote.IsFullRefund)
	assert.Equal(t, 0, quote.DaysUntilCheckIn)
}

func TestIsStayUnderway(t *testing.T) {
	checkIn := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)

	assert.False(t, IsStayUnderway(checkIn, checkIn.Add(-time.Hour)))
	assert.True(t, IsStayUnderway(checkIn, checkIn))
	assert.True(t, IsStayUnderway(checkIn, checkIn.Add(time.Hour)))
}
