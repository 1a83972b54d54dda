package calendar

import "strconv"

// Columns es el orden fijo de columnas/keys para todas las salidas.
var Columns = []string{
	"provider", "title", "country", "importance",
	"time_utc", "time_local", "timezone",
	"actual_value", "forecast_value", "previous_value",
	"id",
}

// Record es la forma serializable de Event (json). Los campos ausentes
// salen como null.
type Record struct {
	Provider      string   `json:"provider"`
	Title         string   `json:"title"`
	Country       string   `json:"country"`
	Importance    string   `json:"importance" enums:"low,medium,high"`
	TimeUTC       *string  `json:"time_utc"`
	TimeLocal     *string  `json:"time_local"`
	Timezone      string   `json:"timezone"`
	ActualValue   *float64 `json:"actual_value"`
	ForecastValue *float64 `json:"forecast_value"`
	PreviousValue *float64 `json:"previous_value"`
	ID            string   `json:"id"`
}

func ToRecord(e Event) Record {
	return Record{
		Provider:      e.Provider,
		Title:         e.Title,
		Country:       e.Country,
		Importance:    string(e.Importance),
		TimeUTC:       optString(e.TimeUTC),
		TimeLocal:     optString(e.TimeLocal),
		Timezone:      e.Timezone,
		ActualValue:   e.ActualValue,
		ForecastValue: e.ForecastValue,
		PreviousValue: e.PreviousValue,
		ID:            e.ID,
	}
}

func ToRecords(events []Event) []Record {
	out := make([]Record, 0, len(events))
	for _, e := range events {
		out = append(out, ToRecord(e))
	}
	return out
}

// Row devuelve los valores en el orden de Columns; ausente = celda vacía.
func Row(e Event) []string {
	return []string{
		e.Provider,
		e.Title,
		e.Country,
		string(e.Importance),
		e.TimeUTC,
		e.TimeLocal,
		e.Timezone,
		formatFloat(e.ActualValue),
		formatFloat(e.ForecastValue),
		formatFloat(e.PreviousValue),
		e.ID,
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
