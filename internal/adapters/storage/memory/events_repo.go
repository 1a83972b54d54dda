package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"economic-calendar/internal/domain/calendar"
)

var ErrNotFound = calendar.ErrNotFound

type eventRepo struct {
	mu    sync.RWMutex
	byID  map[string]calendar.Event
	order []string // orden de inserción
}

func NewEventRepo() calendar.Repository {
	return &eventRepo{
		byID: make(map[string]calendar.Event),
	}
}

// Insert omite ids ya presentes: el primer valor guardado se conserva.
func (r *eventRepo) Insert(ctx context.Context, events []calendar.Event) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range events {
		if e.ID == "" {
			return n, errors.New("event id required")
		}
		if _, exists := r.byID[e.ID]; exists {
			continue
		}
		r.byID[e.ID] = e
		r.order = append(r.order, e.ID)
		n++
	}
	return n, nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (calendar.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return calendar.Event{}, ErrNotFound
	}
	return e, nil
}

func (r *eventRepo) List(ctx context.Context, filter calendar.ListFilter) ([]calendar.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	timed := filter.OnlyTimed || filter.From != nil || filter.To != nil

	out := make([]calendar.Event, 0)
	for _, id := range r.order {
		e := r.byID[id]

		if filter.Provider != "" && e.Provider != filter.Provider {
			continue
		}

		// Country filter
		if len(filter.Countries) > 0 && !containsString(filter.Countries, e.Country) {
			continue
		}

		// Importance filter
		if len(filter.Importances) > 0 {
			ok := false
			for _, imp := range filter.Importances {
				if e.Importance == imp {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		// Date filters (time_utc)
		if timed {
			t, ok := calendar.ParseUTC(e.TimeUTC)
			if !ok {
				continue
			}
			if filter.From != nil && t.Before(*filter.From) {
				continue
			}
			if filter.To != nil && t.After(*filter.To) {
				continue
			}
		}

		out = append(out, e)
	}

	// time_utc ascendente; sin hora al final, estable respecto a la inserción.
	sort.SliceStable(out, func(i, j int) bool {
		ti, oki := calendar.ParseUTC(out[i].TimeUTC)
		tj, okj := calendar.ParseUTC(out[j].TimeUTC)
		if oki != okj {
			return oki
		}
		return ti.Before(tj)
	})

	if limit := filter.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
