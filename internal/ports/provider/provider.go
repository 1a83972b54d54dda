package provider

import (
	"context"
	"strings"
)

// Claves de RawRecord. Los proveedores pueden omitir cualquiera.
const (
	FieldTitle      = "title"
	FieldCountry    = "country"
	FieldImportance = "importance"
	FieldTime       = "time"
	FieldActual     = "actual"
	FieldForecast   = "forecast"
	FieldPrevious   = "previous"
)

// RawRecord es el diccionario de campos tal como lo extrae el proveedor.
type RawRecord map[string]string

// Get devuelve el campo sin espacios; "" si no existe.
func (r RawRecord) Get(key string) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r[key])
}

// Query son los criterios que recibe cada proveedor.
// Fechas en formato YYYY-MM-DD.
type Query struct {
	DateFrom   string
	DateTo     string
	Countries  []string
	Importance []string
}

// Provider obtiene registros crudos de una fuente.
// SourceZone es la zona IANA en la que la fuente publica las horas.
type Provider interface {
	Name() string
	SourceZone() string
	Fetch(ctx context.Context, q Query) ([]RawRecord, error)
}
