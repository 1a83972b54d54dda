package calendar

// Event es el registro canónico, independiente del proveedor.
// Se crea una sola vez en Normalizer y no se muta después.
type Event struct {
	ID         string
	Provider   string
	Title      string
	Country    string
	Importance Importance

	// TimeUTC en ISO-8601 con offset ("" = ausente).
	TimeUTC string
	// TimeLocal en la zona de visualización, "YYYY-MM-DD HH:MM" ("" = ausente).
	TimeLocal string
	Timezone  string

	ActualValue   *float64
	ForecastValue *float64
	PreviousValue *float64
}

// HasTime indica si el evento participa en consultas por ventana de tiempo.
func (e Event) HasTime() bool {
	return e.TimeUTC != ""
}

// Diagnostic es una nota no fatal producida durante la normalización.
type Diagnostic struct {
	Provider string
	Title    string
	Kind     DiagnosticKind
	Detail   string
}

// Result agrupa los eventos producidos y las notas de diagnóstico.
type Result struct {
	Events      []Event
	Diagnostics []Diagnostic
}

// Filter son las listas de permitidos del llamador. Vacío = sin filtro.
type Filter struct {
	Countries   []string
	Importances []string
}
