package calendar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"economic-calendar/internal/ports/notify"
)

const DefaultWindow = 24 * time.Hour

// ParseWindow interpreta "24h" o "90m". Cualquier otra unidad, una
// magnitud no entera o una que desborda time.Duration cae en 24h.
func ParseWindow(s string) time.Duration {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return DefaultWindow
	}
	num, err := strconv.ParseInt(s[:len(s)-1], 10, 64)
	if err != nil {
		return DefaultWindow
	}
	var unit time.Duration
	switch s[len(s)-1] {
	case 'h':
		unit = time.Hour
	case 'm':
		unit = time.Minute
	default:
		return DefaultWindow
	}
	// fuera de rango de time.Duration
	if num > math.MaxInt64/int64(unit) || num < math.MinInt64/int64(unit) {
		return DefaultWindow
	}
	return time.Duration(num) * unit
}

// Upcoming devuelve, en el orden de entrada, los eventos cuyo TimeUTC cae
// en [now, now+window]. Los eventos sin hora nunca se incluyen.
func Upcoming(events []Event, now time.Time, window time.Duration) []Event {
	from := now.UTC()
	until := from.Add(window)

	out := make([]Event, 0)
	for _, e := range events {
		if !e.HasTime() {
			continue
		}
		t, ok := ParseUTC(e.TimeUTC)
		if !ok {
			continue
		}
		if t.Before(from) || t.After(until) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FormatAlert: "[2024-01-05 14:30] US • CPI • HIGH"
func FormatAlert(e Event, loc *time.Location) string {
	return fmt.Sprintf("[%s] %s • %s • %s", RenderLocal(e, loc), e.Country, e.Title, strings.ToUpper(string(e.Importance)))
}

// ToAlerts renderiza eventos para los notifiers en la zona loc.
func ToAlerts(events []Event, loc *time.Location) []notify.Alert {
	out := make([]notify.Alert, 0, len(events))
	for _, e := range events {
		out = append(out, notify.Alert{
			EventID:    e.ID,
			TimeUTC:    e.TimeUTC,
			TimeLocal:  RenderLocal(e, loc),
			Country:    e.Country,
			Title:      e.Title,
			Importance: string(e.Importance),
			Line:       FormatAlert(e, loc),
		})
	}
	return out
}
