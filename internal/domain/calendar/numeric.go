package calendar

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// ParseNumber convierte valores abreviados ("236K", "3.1%", "1.2M") a float.
// Devuelve nil si la entrada está vacía o no es numérica; nunca falla.
// Solo K y M en mayúscula son sufijos válidos.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")

	// El porcentaje se guarda por su valor nominal: "3.1%" => 3.1
	s = strings.TrimSuffix(s, "%")

	mult := decimal.NewFromInt(1)
	switch {
	case strings.HasSuffix(s, "K"):
		mult = thousand
		s = strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		mult = million
		s = strings.TrimSuffix(s, "M")
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	v := d.Mul(mult).InexactFloat64()
	return &v
}
