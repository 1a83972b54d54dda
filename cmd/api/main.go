package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mem "economic-calendar/internal/adapters/storage/memory"
	pg "economic-calendar/internal/adapters/storage/postgres"
	"economic-calendar/internal/app"
	"economic-calendar/internal/domain/calendar"
	"economic-calendar/internal/platform/config"
	"economic-calendar/internal/platform/metrics"
	"economic-calendar/internal/ports/provider"
	"economic-calendar/internal/router"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// @title Economic Calendar API
// @version 1.0
// @description Consulta de eventos macroeconómicos normalizados (forex_factory, investing_com, rss).
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("CALENDAR_CONFIG"))
	if err != nil {
		app.NewLogger(config.Default(), "economic-calendar-api").Error("config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	log := app.NewLogger(cfg, "economic-calendar-api")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	closer := &app.Closer{}
	defer func() { _ = closer.Close() }()

	// Postgres si hay DSN; si no, in-memory.
	var repo calendar.Repository
	db, err := app.OpenDB(ctx, cfg.Postgres.DSN)
	switch {
	case err != nil:
		log.Error("postgres", map[string]any{"error": err.Error()})
		os.Exit(1)
	case db != nil:
		closer.Add(db.Close)
		repo = pg.NewEventsRepo(db)
	default:
		repo = mem.NewEventRepo()
	}

	svc, _, err := app.NewService(cfg, app.ServiceDeps{
		Repo:    repo,
		Sinks:   []calendar.Sink{calendar.NewRepositorySink("store", repo)},
		Metrics: m,
		Logger:  log,
	})
	if err != nil {
		log.Error("build service", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	if cfg.Server.IngestOnBoot {
		go func() {
			today := time.Now().UTC().Format("2006-01-02")
			rep := svc.Run(ctx, provider.Query{
				DateFrom:   today,
				DateTo:     today,
				Countries:  cfg.Countries,
				Importance: cfg.Importance,
			}, app.Filter(cfg))
			log.Info("boot ingestion", map[string]any{"run_id": rep.RunID, "events": len(rep.Events)})
		}()
	}

	addr := ":" + cfg.Server.Port

	r := router.NewRouter(router.Options{
		Service:  svc,
		Logger:   log,
		Registry: reg,
		Metrics:  m,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
