package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"DBWidget/internal/api"
	"DBWidget/internal/collector"
	"DBWidget/internal/config"
	"DBWidget/internal/metrics"
	"DBWidget/internal/model"
	"DBWidget/internal/notifier"
	"DBWidget/internal/recorder"
	"DBWidget/internal/scheduler"
	"DBWidget/internal/state"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.Info("DBWidget starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("config validation")
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	fetcher := collector.NewVSTFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	log.WithField("source", fetcher.Name()).Info("data source ready")
	col := collector.NewCollector(fetcher, cfg.DataSource.CacheTTL, cfg.Widget.OmegaShift)

	st, err := state.NewManager(cfg.Widget.StateFile)
	if err != nil {
		log.WithError(err).Fatal("init state")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.WithError(err).Warn("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	m := metrics.NewManager()
	loc := model.PacificLocation()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var tn *notifier.TelegramNotifier
	var sender notifier.Sender
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	} else {
		log.Info("telegram not configured, notifications disabled")
	}

	sched := scheduler.NewScheduler(ctx, col, st, sender, rec, m, loc)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.BannerCron); err != nil {
		log.WithError(err).Fatal("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info("Telegram polling started")
	}

	// Initial fetch so the banner has data before the first tick.
	go sched.RunRefreshNow()

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.NewRouter(api.NewHandler(st, rec, m, loc)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("addr", cfg.HTTP.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server failed")
		}
	}()

	log.Info("DBWidget is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	log.WithField("signal", sig.String()).Info("shutdown signal received, stopping...")
	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP shutdown")
	}
	log.Info("DBWidget stopped")
}
