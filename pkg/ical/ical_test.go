package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_EmptyCalendar(t *testing.T) {
	cal := Calendar{Name: "Room 101"}
	out := cal.Render()

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	assert.Contains(t, out, "VERSION:2.0\r\n")
	assert.Contains(t, out, "X-WR-CALNAME:Room 101\r\n")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}

func TestRender_FullDayEvent(t *testing.T) {
	cal := Calendar{
		Name: "Room 101",
		Events: []Event{
			{
				UID:       EventUID(1001, "hotel-bookingservice"),
				Summary:   "Booking #1001: Ivan Petrov",
				Start:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
				End:       time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC),
				CreatedAt: time.Date(2025, 10, 1, 12, 30, 0, 0, time.UTC),
			},
		},
	}
	out := cal.Render()

	assert.Contains(t, out, "UID:booking-1001@hotel-bookingservice\r\n")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20251015\r\n")
	// Полуоткрытый интервал: DTEND — день выезда
	assert.Contains(t, out, "DTEND;VALUE=DATE:20251017\r\n")
	assert.Contains(t, out, "DTSTAMP:20251001T123000Z\r\n")
	assert.Contains(t, out, "SUMMARY:Booking #1001: Ivan Petrov\r\n")
}

func TestRender_EscapesSpecialCharacters(t *testing.T) {
	cal := Calendar{
		Events: []Event{
			{
				UID:     "x@y",
				Summary: "Petrov; Ivan, notes\nsecond line",
				Start:   time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
				End:     time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	out := cal.Render()

	assert.Contains(t, out, `SUMMARY:Petrov\; Ivan\, notes\nsecond line`)
}

func TestRender_FoldsLongLines(t *testing.T) {
	cal := Calendar{
		Events: []Event{
			{
				UID:     "x@y",
				Summary: strings.Repeat("a", 200),
				Start:   time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
				End:     time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	out := cal.Render()

	for _, line := range strings.Split(out, "\r\n") {
		assert.LessOrEqual(t, len(line), 75)
	}

	// Свёрнутая строка восстанавливается после разворота
	unfolded := strings.ReplaceAll(out, "\r\n ", "")
	assert.Contains(t, unfolded, "SUMMARY:"+strings.Repeat("a", 200))
}

func TestEventUID_Deterministic(t *testing.T) {
	require.Equal(t, EventUID(1001, "example.com"), EventUID(1001, "example.com"))
	assert.NotEqual(t, EventUID(1001, "example.com"), EventUID(1002, "example.com"))
}
