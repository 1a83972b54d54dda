package calendar

import "strings"

type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

var importanceMap = map[string]Importance{
	"low":    ImportanceLow,
	"medium": ImportanceMedium,
	"high":   ImportanceHigh,
}

// ParseImportance canonicaliza una etiqueta; lo desconocido cae en medium.
// El segundo valor indica si la etiqueta era reconocida.
func ParseImportance(label string) (Importance, bool) {
	imp, ok := importanceMap[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return ImportanceMedium, false
	}
	return imp, true
}

// StorageTimezone es la etiqueta fija que se guarda en Event.Timezone.
const StorageTimezone = "UTC"

type DiagnosticKind string

const (
	DiagMissingTitle        DiagnosticKind = "missing_title"
	DiagCountryFiltered     DiagnosticKind = "country_filtered"
	DiagImportanceFiltered  DiagnosticKind = "importance_filtered"
	DiagImportanceDefaulted DiagnosticKind = "importance_defaulted"
	DiagTimeUnparsed        DiagnosticKind = "time_unparsed"
	DiagNumberUnparsed      DiagnosticKind = "number_unparsed"
	DiagDuplicate           DiagnosticKind = "duplicate"
)

// Rejects indica si el diagnóstico implica que el registro no produjo evento.
func (k DiagnosticKind) Rejects() bool {
	switch k {
	case DiagMissingTitle, DiagCountryFiltered, DiagImportanceFiltered, DiagDuplicate:
		return true
	default:
		return false
	}
}
