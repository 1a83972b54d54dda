package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"economic-calendar/internal/app"
	"economic-calendar/internal/domain/calendar"
	"economic-calendar/internal/platform/config"
	"economic-calendar/internal/platform/metrics"
	"economic-calendar/internal/ports/provider"
)

const (
	exitOK      = 0
	exitFatal   = 1
	exitNoEvent = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type cliFlags struct {
	configPath   string
	providers    string
	countries    string
	importance   string
	dateFrom     string
	dateTo       string
	tz           string
	outFormat    string
	outDir       string
	dsn          string
	notify       string
	notifyWindow string
	notifier     string
	logLevel     string
	logFormat    string
}

func parseFlags(args []string, stderr io.Writer) (cliFlags, map[string]bool, error) {
	var f cliFlags
	today := time.Now().UTC().Format("2006-01-02")

	fs := flag.NewFlagSet("calendar", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "YAML config file")
	fs.StringVar(&f.providers, "providers", "forex_factory,investing_com", "comma-separated providers")
	fs.StringVar(&f.countries, "countries", "", "comma-separated countries (exact match)")
	fs.StringVar(&f.importance, "importance", "", "comma-separated importance levels")
	fs.StringVar(&f.dateFrom, "date-from", today, "YYYY-MM-DD")
	fs.StringVar(&f.dateTo, "date-to", today, "YYYY-MM-DD")
	fs.StringVar(&f.tz, "tz", config.DefaultTimezone, "display timezone (IANA)")
	fs.StringVar(&f.outFormat, "out-format", "csv", "comma-separated outputs: csv,json,postgres,kafka")
	fs.StringVar(&f.outDir, "out-dir", config.DefaultOutDir, "output directory for csv/json")
	fs.StringVar(&f.dsn, "dsn", "", "postgres dsn (postgres output)")
	fs.StringVar(&f.notify, "notify", "", "notification mode: upcoming")
	fs.StringVar(&f.notifyWindow, "notify-window", config.DefaultWindow, "window for upcoming: 24h, 90m")
	fs.StringVar(&f.notifier, "notifier", "stdout", "stdout | mqtt")
	fs.StringVar(&f.logLevel, "log-level", "info", "debug | info | warn | error")
	fs.StringVar(&f.logFormat, "log-format", "text", "text | json")

	if err := fs.Parse(args); err != nil {
		return cliFlags{}, nil, err
	}

	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set, nil
}

// applyFlags pisa la config solo con los flags presentes en la línea de comandos.
func applyFlags(c *config.Config, f cliFlags, set map[string]bool) {
	if set["providers"] {
		c.Providers = config.ProvidersFromNames(config.SplitList(f.providers), c.Providers)
	}
	if set["countries"] {
		c.Countries = config.SplitList(f.countries)
	}
	if set["importance"] {
		c.Importance = config.SplitList(f.importance)
	}
	if set["tz"] {
		c.Timezone = f.tz
	}
	if set["out-format"] {
		c.Output.Formats = config.SplitList(f.outFormat)
	}
	if set["out-dir"] {
		c.Output.Dir = f.outDir
	}
	if set["dsn"] {
		c.Postgres.DSN = f.dsn
	}
	if set["notify"] {
		c.Notify.Mode = f.notify
	}
	if set["notify-window"] {
		c.Notify.Window = f.notifyWindow
	}
	if set["notifier"] {
		c.Notify.Notifier = f.notifier
	}
	if set["log-level"] {
		c.Log.Level = f.logLevel
	}
	if set["log-format"] {
		c.Log.Format = f.logFormat
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, set, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitFatal
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitFatal
	}
	applyFlags(&cfg, f, set)
	if err := cfg.Finalize(); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitFatal
	}

	log := app.NewLogger(cfg, "economic-calendar")

	closer := &app.Closer{}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Warn("close resources", map[string]any{"error": err.Error()})
		}
	}()

	sinks, err := app.BuildSinks(ctx, cfg, nil, closer)
	if err != nil {
		log.Error("build sinks", map[string]any{"error": err.Error()})
		return exitFatal
	}

	svc, times, err := app.NewService(cfg, app.ServiceDeps{
		Sinks:   sinks,
		Metrics: metrics.New(nil),
		Logger:  log,
	})
	if err != nil {
		log.Error("build service", map[string]any{"error": err.Error()})
		return exitFatal
	}

	q := provider.Query{
		DateFrom:   f.dateFrom,
		DateTo:     f.dateTo,
		Countries:  cfg.Countries,
		Importance: cfg.Importance,
	}
	rep := svc.Run(ctx, q, app.Filter(cfg))
	if rep.Empty {
		log.Warn("no events after filtering", map[string]any{"run_id": rep.RunID})
		return exitNoEvent
	}
	log.Info("run complete", map[string]any{
		"run_id":      rep.RunID,
		"events":      len(rep.Events),
		"diagnostics": len(rep.Diagnostics),
		"sink_errors": len(rep.SinkErrors),
	})

	if cfg.Notify.Mode == "upcoming" {
		notifier, err := app.BuildNotifier(cfg, stdout, closer)
		if err != nil {
			log.Error("build notifier", map[string]any{"error": err.Error()})
			return exitFatal
		}
		window := calendar.ParseWindow(cfg.Notify.Window)
		upcoming := svc.Upcoming(rep.Events, window)
		if err := notifier.Notify(ctx, calendar.ToAlerts(upcoming, times.Display())); err != nil {
			log.Error("notify", map[string]any{"notifier": notifier.Name(), "error": err.Error()})
		}
	}

	return exitOK
}
