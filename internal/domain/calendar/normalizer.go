package calendar

import (
	"fmt"
	"strings"

	"economic-calendar/internal/ports/provider"
)

// Input es un registro crudo junto con el contexto de su proveedor.
type Input struct {
	Provider   string
	SourceZone string
	Raw        provider.RawRecord
}

// Normalizer transforma registros crudos en eventos canónicos.
// Es puro: no hace I/O ni guarda estado mutable entre llamadas.
type Normalizer struct {
	times *TimeNormalizer
}

func NewNormalizer(times *TimeNormalizer) *Normalizer {
	return &Normalizer{times: times}
}

// Normalize devuelve el evento y ok=true, o ok=false si el registro quedó
// filtrado. Los datos malformados nunca son error: degradan a valores ausentes.
func (n *Normalizer) Normalize(in Input, f Filter) (Event, []Diagnostic, bool) {
	var diags []Diagnostic
	note := func(title string, kind DiagnosticKind, detail string) {
		diags = append(diags, Diagnostic{Provider: in.Provider, Title: title, Kind: kind, Detail: detail})
	}

	title := in.Raw.Get(provider.FieldTitle)
	if title == "" {
		note("", DiagMissingTitle, "record without title")
		return Event{}, diags, false
	}

	rawImp := in.Raw.Get(provider.FieldImportance)
	imp, known := ParseImportance(rawImp)
	if !known {
		note(title, DiagImportanceDefaulted, fmt.Sprintf("importance %q -> %s", rawImp, imp))
	}

	country := in.Raw.Get(provider.FieldCountry)
	if len(f.Countries) > 0 && !containsExact(f.Countries, country) {
		note(title, DiagCountryFiltered, fmt.Sprintf("country %q not allowed", country))
		return Event{}, diags, false
	}
	if len(f.Importances) > 0 && !containsFold(f.Importances, string(imp)) {
		note(title, DiagImportanceFiltered, fmt.Sprintf("importance %s not allowed", imp))
		return Event{}, diags, false
	}

	rawTime := in.Raw.Get(provider.FieldTime)
	utc, local := n.times.Normalize(rawTime, in.SourceZone)
	if utc == "" {
		note(title, DiagTimeUnparsed, fmt.Sprintf("time %q (zone %q)", rawTime, in.SourceZone))
	}

	number := func(key string) *float64 {
		raw := in.Raw.Get(key)
		v := ParseNumber(raw)
		if v == nil && raw != "" {
			note(title, DiagNumberUnparsed, fmt.Sprintf("%s %q", key, raw))
		}
		return v
	}

	e := Event{
		Provider:      in.Provider,
		Title:         title,
		Country:       country,
		Importance:    imp,
		TimeUTC:       utc,
		TimeLocal:     local,
		Timezone:      StorageTimezone,
		ActualValue:   number(provider.FieldActual),
		ForecastValue: number(provider.FieldForecast),
		PreviousValue: number(provider.FieldPrevious),
	}
	e.ID = EventID(e.Provider, e.Title, e.Country, e.TimeUTC)
	return e, diags, true
}

// NormalizeAll procesa un lote en orden de entrada.
func (n *Normalizer) NormalizeAll(providerName, sourceZone string, raws []provider.RawRecord, f Filter) Result {
	res := Result{Events: make([]Event, 0, len(raws))}
	for _, raw := range raws {
		e, diags, ok := n.Normalize(Input{Provider: providerName, SourceZone: sourceZone, Raw: raw}, f)
		res.Diagnostics = append(res.Diagnostics, diags...)
		if ok {
			res.Events = append(res.Events, e)
		}
	}
	return res
}

func containsExact(list []string, v string) bool {
	for _, s := range list {
		if strings.TrimSpace(s) == v {
			return true
		}
	}
	return false
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}
