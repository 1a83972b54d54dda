package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"economic-calendar/internal/domain/calendar"

	"github.com/google/uuid"
)

// Requiere una base real: DB_DSN=postgres://... go test ./internal/adapters/storage/postgres
func TestEventsRepo_Postgres(t *testing.T) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Skip("DB_DSN not set")
	}

	ctx := context.Background()
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("schema: %v", err)
	}

	repo := NewEventsRepo(db)
	provider := "test-" + uuid.NewString()

	actual := 3.1
	timed := calendar.Event{
		Provider: provider, Title: "CPI", Country: "US", Importance: calendar.ImportanceHigh,
		TimeUTC: "2024-01-05T13:30:00+00:00", TimeLocal: "2024-01-05 14:30",
		Timezone: calendar.StorageTimezone, ActualValue: &actual,
	}
	timed.ID = calendar.EventID(timed.Provider, timed.Title, timed.Country, timed.TimeUTC)
	untimed := calendar.Event{Provider: provider, Title: "Holiday", Country: "EUR", Importance: calendar.ImportanceLow, Timezone: calendar.StorageTimezone}
	untimed.ID = calendar.EventID(untimed.Provider, untimed.Title, untimed.Country, "")

	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, `DELETE FROM events WHERE provider = $1`, provider)
	})

	n, err := repo.Insert(ctx, []calendar.Event{untimed, timed})
	if err != nil || n != 2 {
		t.Fatalf("expected 2 inserted, got %d err=%v", n, err)
	}

	changed := 9.9
	corrected := timed
	corrected.ActualValue = &changed
	n, err = repo.Insert(ctx, []calendar.Event{corrected})
	if err != nil || n != 0 {
		t.Fatalf("expected insert-or-ignore, got %d err=%v", n, err)
	}

	got, err := repo.GetByID(ctx, timed.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ActualValue == nil || *got.ActualValue != 3.1 || got.ForecastValue != nil {
		t.Fatalf("unexpected values %+v", got)
	}

	items, err := repo.List(ctx, calendar.ListFilter{Provider: provider})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != timed.ID || items[1].TimeUTC != "" {
		t.Fatalf("unexpected order %+v", items)
	}

	from := time.Date(2024, 1, 5, 13, 0, 0, 0, time.UTC)
	items, _ = repo.List(ctx, calendar.ListFilter{Provider: provider, From: &from})
	if len(items) != 1 {
		t.Fatalf("expected 1 timed event, got %d", len(items))
	}

	if _, err := repo.GetByID(ctx, "missing-"+provider); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
