package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNightlyBaseRate(t *testing.T) {
	room := &Room{
		BasePrice: 100,
		SpecialPrices: map[string]float64{
			"friday":     150,
			"2025-10-17": 200, // пятница, но дата важнее дня недели
		},
	}

	// 2025-10-16 четверг, 2025-10-17 пятница, 2025-10-24 тоже пятница
	assert.Equal(t, 100.0, room.NightlyBaseRate(date(2025, 10, 16)))
	assert.Equal(t, 200.0, room.NightlyBaseRate(date(2025, 10, 17)))
	assert.Equal(t, 150.0, room.NightlyBaseRate(date(2025, 10, 24)))
}

func TestNightlyBaseRate_NoSpecialPrices(t *testing.T) {
	room := &Room{BasePrice: 90}
	assert.Equal(t, 90.0, room.NightlyBaseRate(date(2025, 10, 17)))
}

func TestAverageBaseRate(t *testing.T) {
	room := &Room{
		BasePrice: 100,
		SpecialPrices: map[string]float64{
			"friday": 150,
		},
	}

	// Чт 16.10 (100) + Пт 17.10 (150) = 250 / 2 = 125
	assert.Equal(t, 125.0, room.AverageBaseRate(date(2025, 10, 16), 2))
}

func TestAverageBaseRate_SingleNight(t *testing.T) {
	room := &Room{BasePrice: 350}
	assert.Equal(t, 350.0, room.AverageBaseRate(date(2025, 10, 15), 1))
}

func TestAverageBaseRate_InvalidNightsFallsBackToBase(t *testing.T) {
	room := &Room{BasePrice: 350}
	assert.Equal(t, 350.0, room.AverageBaseRate(date(2025, 10, 15), 0))
}
