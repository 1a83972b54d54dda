package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Timezone != "Europe/Madrid" || c.Output.Dir != "./data" || c.Notify.Window != "24h" {
		t.Fatalf("unexpected defaults %+v", c)
	}
	if len(c.Providers) != 2 || c.Providers[0].Name != ProviderForexFactory || c.Providers[1].Name != ProviderInvesting {
		t.Fatalf("unexpected providers %+v", c.Providers)
	}
	if !c.HasFormat("CSV") || c.HasFormat("json") {
		t.Fatalf("unexpected formats %v", c.Output.Formats)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "calendar.yaml")
	yml := `
providers:
  - type: rss
    name: ff_rss
    base_url: https://example.com/feed.xml
    zone: America/New_York
    http:
      timeout: 5s
      retry_count: 2
timezone: UTC
output:
  formats: [json]
  dir: /tmp/out
kafka:
  brokers: [kafka:9092]
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CALENDAR_TZ", "America/New_York")
	t.Setenv("DB_DSN", "postgres://u:p@localhost/calendar")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Providers) != 1 || c.Providers[0].Name != "ff_rss" || c.Providers[0].HTTP.Timeout != 5*time.Second {
		t.Fatalf("unexpected providers %+v", c.Providers)
	}
	if c.Timezone != "America/New_York" {
		t.Fatalf("env must override file, got %s", c.Timezone)
	}
	if c.Postgres.DSN == "" {
		t.Fatalf("expected DB_DSN applied")
	}
	if !c.HasFormat("json") || c.Output.Dir != "/tmp/out" {
		t.Fatalf("unexpected output %+v", c.Output)
	}
	if c.Kafka.Topic != "economic-calendar.events" {
		t.Fatalf("default kafka topic lost: %q", c.Kafka.Topic)
	}
}

func TestApplyEnv_ProvidersKeepExistingConfig(t *testing.T) {
	c := Default()
	c.Providers[1].BaseURL = "http://mirror/calendar"

	env := map[string]string{
		"CALENDAR_PROVIDERS":  "investing_com, rss",
		"CALENDAR_COUNTRIES":  "USD,EUR",
		"KAFKA_BROKERS":       "a:9092,b:9092",
		"CALENDAR_OUT_FORMAT": "csv,json",
	}
	ApplyEnv(&c, func(k string) string { return env[k] })

	if len(c.Providers) != 2 || c.Providers[0].BaseURL != "http://mirror/calendar" || c.Providers[1].Type != ProviderRSS {
		t.Fatalf("unexpected providers %+v", c.Providers)
	}
	if len(c.Countries) != 2 || c.Countries[1] != "EUR" {
		t.Fatalf("unexpected countries %v", c.Countries)
	}
	if len(c.Kafka.Brokers) != 2 {
		t.Fatalf("unexpected brokers %v", c.Kafka.Brokers)
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Timezone = "Mars/Olympus"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected invalid timezone error")
	}

	c = Default()
	c.Notify.Mode = "digest"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected invalid notify mode error")
	}

	c = Default()
	c.Providers = nil
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error without providers")
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" United States , ,EUR")
	if len(got) != 2 || got[0] != "United States" || got[1] != "EUR" {
		t.Fatalf("unexpected %v", got)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
