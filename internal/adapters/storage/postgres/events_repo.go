package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"economic-calendar/internal/domain/calendar"
)

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

const selectColumns = `
	id, provider, title, country, importance,
	time_utc, time_local, timezone,
	actual_value, forecast_value, previous_value
`

// Insert usa ON CONFLICT DO NOTHING: un id repetido nunca actualiza valores.
func (r *EventsRepo) Insert(ctx context.Context, events []calendar.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (
			id, provider, title, country, importance,
			time_utc, time_local, timezone,
			actual_value, forecast_value, previous_value
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, e := range events {
		res, err := stmt.ExecContext(ctx,
			e.ID,
			e.Provider,
			e.Title,
			e.Country,
			string(e.Importance),
			nullString(e.TimeUTC),
			nullString(e.TimeLocal),
			e.Timezone,
			nullFloat(e.ActualValue),
			nullFloat(e.ForecastValue),
			nullFloat(e.PreviousValue),
		)
		if err != nil {
			return 0, fmt.Errorf("insert event %s: %w", e.ID, err)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (calendar.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return calendar.Event{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return calendar.Event{}, ErrNotFound
		}
		return calendar.Event{}, err
	}
	return e, nil
}

func (r *EventsRepo) List(ctx context.Context, filter calendar.ListFilter) ([]calendar.Event, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + selectColumns + ` FROM events WHERE 1=1`)

	args := []any{}
	argN := 1

	if filter.Provider != "" {
		sb.WriteString(fmt.Sprintf(" AND provider = $%d", argN))
		args = append(args, filter.Provider)
		argN++
	}

	// countries filter
	if len(filter.Countries) > 0 {
		placeholders := make([]string, 0, len(filter.Countries))
		for _, c := range filter.Countries {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, c)
			argN++
		}
		sb.WriteString(" AND country IN (" + strings.Join(placeholders, ",") + ")")
	}

	// importance filter
	if len(filter.Importances) > 0 {
		placeholders := make([]string, 0, len(filter.Importances))
		for _, imp := range filter.Importances {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(imp))
			argN++
		}
		sb.WriteString(" AND importance IN (" + strings.Join(placeholders, ",") + ")")
	}

	// from/to sobre el texto canónico
	if filter.OnlyTimed || filter.From != nil || filter.To != nil {
		sb.WriteString(" AND time_utc IS NOT NULL")
	}
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND time_utc >= $%d", argN))
		args = append(args, calendar.FormatUTC(*filter.From))
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND time_utc <= $%d", argN))
		args = append(args, calendar.FormatUTC(*filter.To))
		argN++
	}

	sb.WriteString(" ORDER BY time_utc ASC NULLS LAST, inserted_at ASC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, filter.EffectiveLimit())

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]calendar.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (calendar.Event, error) {
	var (
		e                   calendar.Event
		importance          string
		timeUTC, timeLocal  sql.NullString
		actual, fcast, prev sql.NullFloat64
	)
	if err := s.Scan(
		&e.ID,
		&e.Provider,
		&e.Title,
		&e.Country,
		&importance,
		&timeUTC,
		&timeLocal,
		&e.Timezone,
		&actual,
		&fcast,
		&prev,
	); err != nil {
		return calendar.Event{}, err
	}

	e.Importance = calendar.Importance(importance)
	e.TimeUTC = timeUTC.String
	e.TimeLocal = timeLocal.String
	e.ActualValue = floatPtr(actual)
	e.ForecastValue = floatPtr(fcast)
	e.PreviousValue = floatPtr(prev)
	return e, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
