// Package app arma los componentes a partir de la configuración. Lo
// comparten cmd/calendar y cmd/api.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	notifymqtt "economic-calendar/internal/adapters/notify/mqtt"
	notifystdout "economic-calendar/internal/adapters/notify/stdout"
	"economic-calendar/internal/adapters/providers"
	"economic-calendar/internal/adapters/sinks/filesink"
	"economic-calendar/internal/adapters/sinks/kafkasink"
	pg "economic-calendar/internal/adapters/storage/postgres"
	"economic-calendar/internal/domain/calendar"
	"economic-calendar/internal/platform/config"
	"economic-calendar/internal/platform/logger"
	"economic-calendar/internal/platform/metrics"
	"economic-calendar/internal/ports/notify"
)

// Closer acumula funciones de cierre en orden inverso.
type Closer struct {
	fns []func() error
}

func (c *Closer) Add(fn func() error) { c.fns = append(c.fns, fn) }

func (c *Closer) Close() error {
	var errs []error
	for i := len(c.fns) - 1; i >= 0; i-- {
		if err := c.fns[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.fns = nil
	return errors.Join(errs...)
}

func NewLogger(c config.Config, app string) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(c.Log.Level),
		Format: logger.ParseFormat(c.Log.Format),
		App:    app,
	})
}

// OpenDB abre Postgres y crea el esquema. dsn vacío => nil, nil.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, nil
	}
	db, err := pg.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pg.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return db, nil
}

// BuildSinks crea un sink por formato, en el orden configurado.
// Si db != nil se reutiliza para "postgres".
func BuildSinks(ctx context.Context, c config.Config, db *sql.DB, closer *Closer) ([]calendar.Sink, error) {
	out := make([]calendar.Sink, 0, len(c.Output.Formats))
	for _, f := range c.Output.Formats {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "csv":
			out = append(out, filesink.NewCSV(c.Output.Dir))
		case "json":
			out = append(out, filesink.NewJSON(c.Output.Dir))
		case "postgres":
			if db == nil {
				if c.Postgres.DSN == "" {
					return nil, errors.New("postgres output requires a dsn (-dsn or DB_DSN)")
				}
				opened, err := OpenDB(ctx, c.Postgres.DSN)
				if err != nil {
					return nil, err
				}
				db = opened
				closer.Add(opened.Close)
			}
			out = append(out, calendar.NewRepositorySink("postgres", pg.NewEventsRepo(db)))
		case "kafka":
			ks, err := kafkasink.New(c.Kafka.Brokers, c.Kafka.Topic, c.Kafka.Timeout)
			if err != nil {
				return nil, err
			}
			closer.Add(ks.Close)
			out = append(out, ks)
		default:
			return nil, fmt.Errorf("unknown output format: %s", f)
		}
	}
	return out, nil
}

// BuildNotifier: stdout escribe en out (os.Stdout si es nil).
func BuildNotifier(c config.Config, out io.Writer, closer *Closer) (notify.Notifier, error) {
	switch strings.ToLower(strings.TrimSpace(c.Notify.Notifier)) {
	case "", "stdout":
		return notifystdout.New(out), nil
	case "mqtt":
		n, err := notifymqtt.Connect(notifymqtt.Options{
			Broker:   c.MQTT.Broker,
			ClientID: c.MQTT.ClientID,
			Topic:    c.MQTT.Topic,
			Timeout:  c.MQTT.Timeout,
		})
		if err != nil {
			return nil, err
		}
		closer.Add(func() error { n.Close(); return nil })
		return n, nil
	default:
		return nil, fmt.Errorf("unknown notifier: %s", c.Notify.Notifier)
	}
}

type ServiceDeps struct {
	Repo    calendar.Repository
	Sinks   []calendar.Sink
	Metrics *metrics.Pipeline
	Logger  logger.Logger
}

// NewService arma proveedores y normalizador sobre la zona de visualización.
func NewService(c config.Config, deps ServiceDeps) (*calendar.Service, *calendar.TimeNormalizer, error) {
	ps, err := providers.All(c.Providers)
	if err != nil {
		return nil, nil, err
	}
	times, err := calendar.NewTimeNormalizer(calendar.NewLayoutParser(), c.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	svc := calendar.NewService(calendar.Options{
		Repo:       deps.Repo,
		Normalizer: calendar.NewNormalizer(times),
		Providers:  ps,
		Sinks:      deps.Sinks,
		Metrics:    deps.Metrics,
		Logger:     deps.Logger,
	})
	return svc, times, nil
}

// Filter traduce countries/importance de la config al filtro del normalizador.
func Filter(c config.Config) calendar.Filter {
	return calendar.Filter{Countries: c.Countries, Importances: c.Importance}
}
