// Package ical генерирует календари в формате iCalendar (RFC 5545).
// Покрывает только то подмножество формата, которое нужно для экспорта
// занятости комнат: VCALENDAR с полнодневными VEVENT.
package ical

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout  = "20060102"
	stampLayout = "20060102T150405Z"
	crlf        = "\r\n"
)

// Event полнодневное событие календаря. Интервал полуоткрытый:
// DTEND не входит в событие, как и дата выезда не входит в проживание.
type Event struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	CreatedAt   time.Time
}

// Calendar набор событий с именем календаря
type Calendar struct {
	Name   string
	ProdID string
	Events []Event
}

// Render сериализует календарь в текст iCalendar
func (c *Calendar) Render() string {
	var b strings.Builder

	prodID := c.ProdID
	if prodID == "" {
		prodID = "-//Hotel-BookingService//EN"
	}

	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:"+escape(prodID))
	writeLine(&b, "CALSCALE:GREGORIAN")
	if c.Name != "" {
		writeLine(&b, "X-WR-CALNAME:"+escape(c.Name))
	}

	for _, e := range c.Events {
		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, "UID:"+escape(e.UID))
		writeLine(&b, "DTSTAMP:"+e.CreatedAt.UTC().Format(stampLayout))
		writeLine(&b, "DTSTART;VALUE=DATE:"+e.Start.Format(dateLayout))
		writeLine(&b, "DTEND;VALUE=DATE:"+e.End.Format(dateLayout))
		writeLine(&b, "SUMMARY:"+escape(e.Summary))
		if e.Description != "" {
			writeLine(&b, "DESCRIPTION:"+escape(e.Description))
		}
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")
	return b.String()
}

// writeLine пишет строку контента, сворачивая её по 75 октетов (RFC 5545 3.1)
func writeLine(b *strings.Builder, line string) {
	const limit = 75
	for len(line) > limit {
		cut := limit
		// Не режем посреди многобайтового символа
		for cut > 1 && line[cut]&0xC0 == 0x80 {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString(crlf)
		line = " " + line[cut:]
	}
	b.WriteString(line)
	b.WriteString(crlf)
}

// escape экранирует спецсимволы текстовых значений (RFC 5545 3.3.11)
func escape(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
		"\r", "",
	)
	return r.Replace(s)
}

// EventUID детерминированный UID события для бронирования
func EventUID(bookingNumber int64, domain string) string {
	return fmt.Sprintf("booking-%d@%s", bookingNumber, domain)
}
