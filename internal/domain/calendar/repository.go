package calendar

import (
	"context"
	"time"
)

// Repository persiste eventos con semántica insert-or-ignore:
// un id repetido se omite y nunca sobrescribe (first write wins).
type Repository interface {
	Insert(ctx context.Context, events []Event) (inserted int, err error)
	GetByID(ctx context.Context, id string) (Event, error)
	List(ctx context.Context, filter ListFilter) ([]Event, error)
}

type ListFilter struct {
	Provider    string
	Countries   []string
	Importances []Importance
	From        *time.Time
	To          *time.Time
	// OnlyTimed excluye eventos sin time_utc.
	OnlyTimed bool
	Limit     int
}

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// EffectiveLimit aplica el default y el tope.
func (f ListFilter) EffectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}

// Sink recibe el lote final de una corrida (csv, json, db, kafka...).
type Sink interface {
	Name() string
	Write(ctx context.Context, events []Event) error
}

type runTimeKey struct{}

// WithRunTime fija el instante de la corrida para que todos los sinks
// nombren sus salidas con el mismo timestamp.
func WithRunTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, runTimeKey{}, t)
}

func RunTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(runTimeKey{}).(time.Time)
	return t, ok
}

// repositorySink adapta un Repository a Sink.
type repositorySink struct {
	name string
	repo Repository
}

func NewRepositorySink(name string, repo Repository) Sink {
	return &repositorySink{name: name, repo: repo}
}

func (s *repositorySink) Name() string { return s.name }

func (s *repositorySink) Write(ctx context.Context, events []Event) error {
	_, err := s.repo.Insert(ctx, events)
	return err
}
