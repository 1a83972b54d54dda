package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "economic-calendar/docs"
	mem "economic-calendar/internal/adapters/storage/memory"
	pg "economic-calendar/internal/adapters/storage/postgres"
	"economic-calendar/internal/app"
	"economic-calendar/internal/domain/calendar"
	"economic-calendar/internal/middleware"
	"economic-calendar/internal/platform/logger"
	"economic-calendar/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Si viene, se usa tal cual (cmd/api lo comparte con la ingesta).
	Service *calendar.Service

	// Sin Service: Repo, o Postgres si hay DB / DB_DSN, o in-memory.
	Repo calendar.Repository
	DB   *sql.DB

	Logger logger.Logger

	// Registry expone /metrics. nil => registro propio.
	Registry *prometheus.Registry
	Metrics  *metrics.Pipeline
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New(reg)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log, m))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	svc := opts.Service
	if svc == nil {
		svc = calendar.NewService(calendar.Options{
			Repo:    resolveRepo(opts, log),
			Metrics: m,
			Logger:  log,
		})
	}

	calendar.RegisterRoutes(r, svc)

	return r
}

func resolveRepo(opts Options, log logger.Logger) calendar.Repository {
	if opts.Repo != nil {
		return opts.Repo
	}

	// Si no te pasan DB explícita, intenta por env (para dev/handoff).
	// Esa conexión vive lo que el proceso; cmd/api abre y cierra la suya y
	// pasa Service.
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			opened, err := app.OpenDB(ctx, dsn)
			cancel()
			if err != nil {
				log.Warn("postgres unavailable, using memory", map[string]any{"error": err.Error()})
			} else {
				db = opened
			}
		}
	}

	if db != nil {
		return pg.NewEventsRepo(db)
	}
	return mem.NewEventRepo()
}
