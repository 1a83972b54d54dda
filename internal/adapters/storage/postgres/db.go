package postgres

import (
	"context"
	"database/sql"
	"time"

	"economic-calendar/internal/domain/calendar"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	ErrNotFound = calendar.ErrNotFound
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// time_utc se guarda como texto canónico (mismo string que entra en el id);
// al tener ancho fijo y offset +00:00, el orden lexicográfico es cronológico.
const schema = `
CREATE TABLE IF NOT EXISTS events (
	id             TEXT PRIMARY KEY,
	provider       TEXT NOT NULL,
	title          TEXT NOT NULL,
	country        TEXT NOT NULL,
	importance     TEXT NOT NULL,
	time_utc       TEXT,
	time_local     TEXT,
	timezone       TEXT NOT NULL,
	actual_value   DOUBLE PRECISION,
	forecast_value DOUBLE PRECISION,
	previous_value DOUBLE PRECISION,
	inserted_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS events_time_utc_idx ON events (time_utc);
`

// EnsureSchema crea la tabla si no existe.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
