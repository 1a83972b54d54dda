package calendar

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// IdentitySeparator no aparece en títulos ni códigos de país.
const IdentitySeparator = "|"

// Identity calcula el id de contenido: sha1 hex de los campos no vacíos
// unidos por IdentitySeparator. Sin sal ni dependencia del tiempo.
func Identity(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		parts = append(parts, f)
	}
	sum := sha1.Sum([]byte(strings.Join(parts, IdentitySeparator)))
	return hex.EncodeToString(sum[:])
}

// EventID aplica Identity en el orden fijo provider, title, country, time_utc.
func EventID(provider, title, country, timeUTC string) string {
	return Identity(provider, title, country, timeUTC)
}
