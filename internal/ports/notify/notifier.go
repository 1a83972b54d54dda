package notify

import "context"

// Alert es un evento próximo ya renderizado para humanos.
type Alert struct {
	EventID    string `json:"id"`
	TimeUTC    string `json:"time_utc"`
	TimeLocal  string `json:"time_local"`
	Country    string `json:"country"`
	Title      string `json:"title"`
	Importance string `json:"importance"`
	Line       string `json:"line"`
}

// Notifier entrega alertas (stdout, mqtt, ...).
type Notifier interface {
	Name() string
	Notify(ctx context.Context, alerts []Alert) error
}
