package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline agrupa las métricas de ingesta y normalización.
// Todos los métodos aceptan receptor nil para que los tests no necesiten registro.
type Pipeline struct {
	rawRecords    *prometheus.CounterVec
	normalized    *prometheus.CounterVec
	diagnostics   *prometheus.CounterVec
	fetchErrors   *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	sinkWrites    *prometheus.CounterVec
	lastRunEvents prometheus.Gauge
	httpRequests  *prometheus.CounterVec
}

// New registra las métricas en reg. Si reg es nil usa un registro nuevo.
func New(reg prometheus.Registerer) *Pipeline {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	p := &Pipeline{
		rawRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calendar",
			Name:      "raw_records_total",
			Help:      "Raw records returned by providers",
		}, []string{"provider"}),
		normalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calendar",
			Name:      "events_normalized_total",
			Help:      "Canonical events produced by the normalizer",
		}, []string{"provider"}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calendar",
			Name:      "diagnostics_total",
			Help:      "Non-fatal normalization notes by kind",
		}, []string{"provider", "kind"}),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calendar",
			Name:      "fetch_errors_total",
			Help:      "Provider fetches that failed",
		}, []string{"provider"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "calendar",
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching one provider",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		sinkWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calendar",
			Name:      "sink_writes_total",
			Help:      "Sink writes by status",
		}, []string{"sink", "status"}),
		lastRunEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "calendar",
			Name:      "last_run_events",
			Help:      "Events produced by the most recent ingestion run",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calendar_api",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status class",
		}, []string{"route", "status"}),
	}
	reg.MustRegister(
		p.rawRecords, p.normalized, p.diagnostics, p.fetchErrors,
		p.fetchDuration, p.sinkWrites, p.lastRunEvents, p.httpRequests,
	)
	return p
}

func (p *Pipeline) ObserveFetch(provider string, seconds float64, records int, err error) {
	if p == nil {
		return
	}
	p.fetchDuration.WithLabelValues(provider).Observe(seconds)
	if err != nil {
		p.fetchErrors.WithLabelValues(provider).Inc()
		return
	}
	p.rawRecords.WithLabelValues(provider).Add(float64(records))
}

func (p *Pipeline) AddNormalized(provider string, n int) {
	if p == nil {
		return
	}
	p.normalized.WithLabelValues(provider).Add(float64(n))
}

func (p *Pipeline) IncDiagnostic(provider, kind string) {
	if p == nil {
		return
	}
	p.diagnostics.WithLabelValues(provider, kind).Inc()
}

func (p *Pipeline) ObserveSink(sink string, err error) {
	if p == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	p.sinkWrites.WithLabelValues(sink, status).Inc()
}

func (p *Pipeline) SetLastRun(events int) {
	if p == nil {
		return
	}
	p.lastRunEvents.Set(float64(events))
}

func (p *Pipeline) ObserveHTTP(route string, status int) {
	if p == nil {
		return
	}
	class := "2xx"
	switch {
	case status >= 500:
		class = "5xx"
	case status >= 400:
		class = "4xx"
	case status >= 300:
		class = "3xx"
	}
	p.httpRequests.WithLabelValues(route, class).Inc()
}
