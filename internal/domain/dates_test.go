package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	nights, err := Nights(date(2025, 10, 15), date(2025, 10, 17))
	require.NoError(t, err)
	assert.Equal(t, 2, nights)

	nights, err = Nights(date(2025, 10, 15), date(2025, 10, 16))
	require.NoError(t, err)
	assert.Equal(t, 1, nights)
}

func TestNights_IgnoresTimeOfDay(t *testing.T) {
	// Поздний заезд и ранний выезд не меняют количество ночей
	checkIn := time.Date(2025, 10, 15, 23, 30, 0, 0, time.UTC)
	checkOut := time.Date(2025, 10, 17, 6, 0, 0, 0, time.UTC)

	nights, err := Nights(checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, 2, nights)
}

func TestNights_InvalidRange(t *testing.T) {
	_, err := Nights(date(2025, 10, 15), date(2025, 10, 15))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = Nights(date(2025, 10, 17), date(2025, 10, 15))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	// Разные времена одного дня — всё ещё ноль ночей
	_, err = Nights(
		time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 15, 22, 0, 0, 0, time.UTC),
	)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestNights_MonthAndYearBoundary(t *testing.T) {
	nights, err := Nights(date(2025, 12, 30), date(2026, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, 3, nights)
}

func TestNormalizeDate(t *testing.T) {
	got := NormalizeDate(time.Date(2025, 10, 15, 18, 45, 12, 999, time.UTC))
	assert.Equal(t, date(2025, 10, 15), got)
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(
		time.Date(2025, 10, 15, 0, 0, 1, 0, time.UTC),
		time.Date(2025, 10, 15, 23, 59, 59, 0, time.UTC),
	))
	assert.False(t, SameDay(date(2025, 10, 15), date(2025, 10, 16)))
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsDateInPast(date(2025, 10, 14), now))
	assert.False(t, IsDateInPast(date(2025, 10, 15), now)) // сегодня — не прошлое
	assert.False(t, IsDateInPast(date(2025, 10, 16), now))
}
