package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/config"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/ics"
	appLog "github.com/kranthikiran885366/faculty-dashboard-sub000/internal/log"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/notify"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/schedule"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/store"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/web"
)

const version = "0.3.0"

// flagConfig holds CLI flag values; set flags override the config file.
type flagConfig struct {
	configPath string
	listen     string
	logLevel   string
}

func main() {
	appLog.Info("facultysched starting", "version", version)

	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	if flags.logLevel != "" {
		conf.LogLevel = flags.logLevel
	}

	level, err := appLog.ParseLevel(conf.LogLevel)
	if err != nil {
		appLog.Warn("unknown log level, using info", "log_level", conf.LogLevel)
	}
	appLog.SetLevel(level)

	loc, err := conf.Location()
	if err != nil {
		appLog.Error("invalid timezone", err)
		os.Exit(1)
	}
	schedule.MaxOccurrences = conf.MaxOccurrences
	schedule.ConflictHorizon = conf.ConflictHorizonDays

	appLog.Info("effective config",
		"listen", conf.Listen,
		"timezone", conf.Timezone,
		"week_start", conf.WeekStart,
		"reminder_scan", conf.ReminderScan,
		"conflict_policy", conf.ConflictPolicy,
		"seed_file", conf.SeedFile,
		"ics_count", len(conf.ImportICS),
	)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	today := schedule.Today(time.Now(), loc)
	events, err := store.Seed(conf.SeedFile, today, conf.FirstWeekday())
	if err != nil {
		appLog.Error("failed to seed schedule", err, "seed_file", conf.SeedFile)
		os.Exit(1)
	}
	st := store.New(events, store.Policy(conf.ConflictPolicy))
	appLog.Info("schedule loaded", "events", events.Len())

	importCalendars(ctx, st, conf, loc)

	scanner := notify.NewScanner(st, notify.LogNotifier{}, loc)
	if err := scanner.Start(ctx, conf.ReminderScan); err != nil {
		appLog.Error("failed to start reminder scanner", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              conf.Listen,
		Handler:           web.NewServer(conf, st, loc).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+conf.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			appLog.Error("HTTP server failed", err)
			exitCode = 1
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("HTTP shutdown failed", err)
	}
	scanner.Stop(shutdownCtx)

	appLog.Info("facultysched exiting")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// importCalendars merges the configured .ics calendars into st. Failures
// are logged; the service starts with whatever could be imported.
func importCalendars(ctx context.Context, st *store.Store, conf *config.Config, loc *time.Location) {
	sources := make([]ics.Source, 0, len(conf.ImportICS))
	for _, c := range conf.ImportICS {
		if c.URL == "" {
			continue
		}
		id := c.ID
		if id == "" {
			id = c.URL
		}
		sources = append(sources, ics.Source{ID: id, URL: c.URL})
	}
	if len(sources) == 0 {
		return
	}

	results, fetchErrs := ics.NewFetcher(conf.ICSCacheDir).FetchAll(ctx, sources)
	for _, err := range fetchErrs {
		appLog.Error("ics import: fetch failed", err)
	}

	for _, res := range results {
		cands, err := ics.ParseEvents(res.Source, res.Body, loc)
		if err != nil {
			appLog.Error("ics import: parse failed", err, "id", res.Source.ID)
			continue
		}
		added, rejected := st.Import(cands)
		appLog.Info("ics import completed",
			"id", res.Source.ID,
			"from_cache", res.FromCache,
			"added", added,
			"rejected", len(rejected),
		)
	}
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/facultysched/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.logLevel, "log-level", "", "debug, info, warn or error (overrides config if set)")

	flag.Parse()

	return cfg
}
