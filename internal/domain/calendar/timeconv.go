package calendar

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"
)

const (
	// UTCLayout replica isoformat() con offset explícito: 2024-01-05T13:30:00+00:00
	UTCLayout = "2006-01-02T15:04:05-07:00"
	// LocalLayout es la representación para humanos, precisión de minuto.
	LocalLayout = "2006-01-02 15:04"
)

var ErrUnparsedTime = errors.New("unparsed time")

// DateParser interpreta texto libre como un instante, asumiendo loc cuando
// el texto no trae offset propio.
type DateParser interface {
	ParseIn(s string, loc *time.Location) (time.Time, error)
}

// layouts conocidos se prueban antes del parser heurístico para que los
// formatos habituales no dependan de sus reglas.
var knownLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"Jan 2, 2006 3:04pm",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006 15:04",
	"Mon Jan 2, 2006 3:04pm",
	"2006/01/02 15:04:05",
}

// LayoutParser intenta layouts fijos y luego dateparse.
type LayoutParser struct {
	Layouts []string
}

func NewLayoutParser() LayoutParser {
	return LayoutParser{Layouts: knownLayouts}
}

func (p LayoutParser) ParseIn(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparsedTime
	}
	// un offset explícito en el texto manda sobre loc
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range p.Layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, ErrUnparsedTime
	}
	// sin año ("Fri Jan 5") dateparse devuelve el año 0 con offset LMT
	if t.Year() < 1 {
		return time.Time{}, ErrUnparsedTime
	}
	return t, nil
}

// TimeNormalizer produce la hora UTC canónica y la hora de visualización.
type TimeNormalizer struct {
	parser  DateParser
	display *time.Location

	mu    sync.Mutex
	zones map[string]*time.Location
}

// NewTimeNormalizer: displayZone vacío equivale a UTC.
func NewTimeNormalizer(parser DateParser, displayZone string) (*TimeNormalizer, error) {
	if parser == nil {
		parser = NewLayoutParser()
	}
	tn := &TimeNormalizer{parser: parser, zones: map[string]*time.Location{}}
	loc, err := tn.zone(displayZone)
	if err != nil {
		return nil, err
	}
	tn.display = loc
	return tn, nil
}

func (tn *TimeNormalizer) Display() *time.Location {
	return tn.display
}

// Normalize devuelve (utc, local) o ("", "") si algo falla.
// sourceZone vacío significa que el texto ya está en UTC.
func (tn *TimeNormalizer) Normalize(raw, sourceZone string) (string, string) {
	src, err := tn.zone(sourceZone)
	if err != nil {
		return "", ""
	}
	t, err := tn.parser.ParseIn(raw, src)
	if err != nil {
		return "", ""
	}
	return FormatUTC(t), t.In(tn.display).Format(LocalLayout)
}

func (tn *TimeNormalizer) zone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "UTC") {
		return time.UTC, nil
	}

	tn.mu.Lock()
	defer tn.mu.Unlock()
	if loc, ok := tn.zones[name]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	tn.zones[name] = loc
	return loc, nil
}

// FormatUTC renderiza un instante en UTC con segundos enteros.
func FormatUTC(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(UTCLayout)
}

// ParseUTC es la inversa de FormatUTC; acepta cualquier RFC3339.
func ParseUTC(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// RenderLocal re-renderiza TimeUTC en otra zona; cae en TimeLocal si no puede.
func RenderLocal(e Event, loc *time.Location) string {
	t, ok := ParseUTC(e.TimeUTC)
	if !ok || loc == nil {
		return e.TimeLocal
	}
	return t.In(loc).Format(LocalLayout)
}
