package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"INFO":    Info,
		" warn ":  Warn,
		"warning": Warn,
		"error":   Error,
		"":        Info,
		"verbose": Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}
}

func TestNew_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "economic-calendar", Output: &buf})

	log.With(map[string]any{"run_id": "r1"}).Info("provider done", map[string]any{"provider": "ff", "events": 3})
	log.Debug("hidden", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (debug filtered), got %d: %s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["msg"] != "provider done" || rec["app"] != "economic-calendar" || rec["run_id"] != "r1" || rec["provider"] != "ff" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestEnabled(t *testing.T) {
	log := New(Options{Level: Warn, Output: &bytes.Buffer{}})
	if log.Enabled(Info) || !log.Enabled(Error) {
		t.Fatalf("unexpected enabled levels")
	}
	if Nop().Enabled(Warn) {
		t.Fatalf("nop logger must not be enabled below error")
	}
}
