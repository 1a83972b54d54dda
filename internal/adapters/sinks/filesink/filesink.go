// Package filesink escribe el lote de una corrida en archivos CSV o JSON
// bajo un directorio de salida.
package filesink

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"economic-calendar/internal/domain/calendar"
)

const timestampLayout = "20060102_150405"

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

type Sink struct {
	format Format
	dir    string
	now    func() time.Time
}

func NewCSV(dir string) *Sink  { return &Sink{format: CSV, dir: dir, now: time.Now} }
func NewJSON(dir string) *Sink { return &Sink{format: JSON, dir: dir, now: time.Now} }

func (s *Sink) Name() string { return string(s.format) }

// FileName: events_{UTC yyyymmdd_HHMMSS}.{csv|json}
func (s *Sink) FileName(at time.Time) string {
	return fmt.Sprintf("events_%s.%s", at.UTC().Format(timestampLayout), s.format)
}

func (s *Sink) Write(ctx context.Context, events []calendar.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%s sink: create dir: %w", s.format, err)
	}

	at, ok := calendar.RunTime(ctx)
	if !ok {
		at = s.now()
	}
	path := filepath.Join(s.dir, s.FileName(at))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s sink: create file: %w", s.format, err)
	}

	switch s.format {
	case CSV:
		err = writeCSV(f, events)
	default:
		err = writeJSON(f, events)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s sink: write %s: %w", s.format, path, err)
	}
	return nil
}

func writeCSV(f *os.File, events []calendar.Event) error {
	w := csv.NewWriter(f)
	if err := w.Write(calendar.Columns); err != nil {
		return err
	}
	for _, e := range events {
		if err := w.Write(calendar.Row(e)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(f *os.File, events []calendar.Event) error {
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(calendar.ToRecords(events))
}
