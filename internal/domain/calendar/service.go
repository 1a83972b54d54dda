package calendar

import (
	"context"
	"errors"
	"strings"
	"time"

	"economic-calendar/internal/platform/logger"
	"economic-calendar/internal/platform/metrics"
	"economic-calendar/internal/ports/provider"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Service orquesta una corrida de ingesta y las consultas de lectura.
type Service struct {
	repo       Repository
	normalizer *Normalizer
	providers  []provider.Provider
	sinks      []Sink
	metrics    *metrics.Pipeline
	log        logger.Logger
	now        func() time.Time
}

type Options struct {
	Repo       Repository
	Normalizer *Normalizer
	Providers  []provider.Provider
	Sinks      []Sink
	Metrics    *metrics.Pipeline
	Logger     logger.Logger
}

func NewService(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:       opts.Repo,
		normalizer: opts.Normalizer,
		providers:  opts.Providers,
		sinks:      opts.Sinks,
		metrics:    opts.Metrics,
		log:        log.With(map[string]any{"component": "calendar"}),
		now:        time.Now,
	}
}

// ProviderReport resume lo que aportó un proveedor en la corrida.
type ProviderReport struct {
	Name       string
	RawRecords int
	Events     int
	Err        error
}

// RunReport es el resultado de una corrida. Empty=true es la condición fatal
// (cero eventos en total tras filtrar).
type RunReport struct {
	RunID       string
	StartedAt   time.Time
	Events      []Event
	Diagnostics []Diagnostic
	Providers   []ProviderReport
	SinkErrors  map[string]error
	Empty       bool
}

// Run ejecuta: fetch secuencial -> normalización -> dedup en la corrida -> sinks.
// Un proveedor que falla cuenta como vacío; un sink que falla no detiene al resto.
func (s *Service) Run(ctx context.Context, q provider.Query, f Filter) RunReport {
	rep := RunReport{
		RunID:      uuid.NewString(),
		StartedAt:  s.now().UTC(),
		SinkErrors: map[string]error{},
	}
	log := s.log.With(map[string]any{"run_id": rep.RunID})

	seen := make(map[string]struct{})
	for _, p := range s.providers {
		pr := ProviderReport{Name: p.Name()}

		start := time.Now()
		raws, err := p.Fetch(ctx, q)
		s.metrics.ObserveFetch(p.Name(), time.Since(start).Seconds(), len(raws), err)
		if err != nil {
			pr.Err = err
			log.Warn("provider fetch failed", map[string]any{"provider": p.Name(), "error": err.Error()})
			rep.Providers = append(rep.Providers, pr)
			continue
		}
		pr.RawRecords = len(raws)

		res := s.normalizer.NormalizeAll(p.Name(), p.SourceZone(), raws, f)
		rep.Diagnostics = append(rep.Diagnostics, res.Diagnostics...)

		for _, e := range res.Events {
			if _, dup := seen[e.ID]; dup {
				rep.Diagnostics = append(rep.Diagnostics, Diagnostic{
					Provider: e.Provider, Title: e.Title, Kind: DiagDuplicate, Detail: e.ID,
				})
				continue
			}
			seen[e.ID] = struct{}{}
			rep.Events = append(rep.Events, e)
			pr.Events++
		}

		s.metrics.AddNormalized(p.Name(), pr.Events)
		log.Info("provider done", map[string]any{
			"provider": p.Name(),
			"raw":      pr.RawRecords,
			"events":   pr.Events,
		})
		rep.Providers = append(rep.Providers, pr)
	}

	for _, d := range rep.Diagnostics {
		s.metrics.IncDiagnostic(d.Provider, string(d.Kind))
		if log.Enabled(logger.Debug) {
			log.Debug("normalization note", map[string]any{
				"provider": d.Provider,
				"title":    d.Title,
				"kind":     string(d.Kind),
				"detail":   d.Detail,
			})
		}
	}

	s.metrics.SetLastRun(len(rep.Events))
	if len(rep.Events) == 0 {
		rep.Empty = true
		log.Warn("no events found", nil)
		return rep
	}

	sinkCtx := WithRunTime(ctx, rep.StartedAt)
	for _, sk := range s.sinks {
		err := sk.Write(sinkCtx, rep.Events)
		s.metrics.ObserveSink(sk.Name(), err)
		if err != nil {
			rep.SinkErrors[sk.Name()] = err
			log.Error("sink write failed", map[string]any{"sink": sk.Name(), "error": err.Error()})
			continue
		}
		log.Info("sink written", map[string]any{"sink": sk.Name(), "events": len(rep.Events)})
	}

	return rep
}

// Upcoming aplica el filtro de ventana a los eventos de una corrida.
func (s *Service) Upcoming(events []Event, window time.Duration) []Event {
	return Upcoming(events, s.now(), window)
}

func (s *Service) GetByID(ctx context.Context, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrInvalidInput
	}
	if s.repo == nil {
		return Event{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Event, error) {
	if s.repo == nil {
		return []Event{}, nil
	}
	return s.repo.List(ctx, filter)
}

// UpcomingStored consulta el repositorio y aplica la ventana desde ahora.
func (s *Service) UpcomingStored(ctx context.Context, window time.Duration) ([]Event, error) {
	now := s.now().UTC()
	until := now.Add(window)
	items, err := s.List(ctx, ListFilter{From: &now, To: &until, OnlyTimed: true, Limit: MaxListLimit})
	if err != nil {
		return nil, err
	}
	return Upcoming(items, now, window), nil
}
