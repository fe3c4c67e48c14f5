package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/charmbracelet/log"
	"github.com/maiconsbotelho/sinucalabs/internal/cache"
	"github.com/maiconsbotelho/sinucalabs/internal/club"
	"github.com/maiconsbotelho/sinucalabs/internal/config"
	"github.com/maiconsbotelho/sinucalabs/internal/database"
	server "github.com/maiconsbotelho/sinucalabs/internal/http"
	"github.com/maiconsbotelho/sinucalabs/internal/metrics"
	"github.com/maiconsbotelho/sinucalabs/internal/notifier/slack"
	"github.com/maiconsbotelho/sinucalabs/internal/processor"
	"github.com/maiconsbotelho/sinucalabs/internal/pubsub"
	"github.com/maiconsbotelho/sinucalabs/internal/ranking"
	"github.com/maiconsbotelho/sinucalabs/internal/scheduler"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	loc := cfg.Location()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	log.Info("Database initialization time recorded", "duration_ms", time.Since(startTime).Milliseconds())
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clubStore := club.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var rankingCache cache.Cache = cache.NewMemory(time.Now)
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %s", err)
		}
		defer rdb.Close()
		rankingCache = cache.NewRedis(rdb, "sinuca:rankings")
	}
	rankings := ranking.NewService(clubStore, rankingCache, metricsSvc, loc)

	notifier := slack.NewNotifierWithAPI(nil, cfg.Slack.ChannelID, metricsSvc, loc)
	if cfg.Slack.Enabled() {
		notifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc, loc)
	} else {
		log.Warn("Slack is not configured, notifications are logged only")
	}

	var bus pubsub.PubSubClient
	var inline *pubsub.Inline
	if cfg.ProjectID != "" {
		bus, err = pubsub.New(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	} else {
		log.Info("No GCP project configured, delivering events in process")
		inline = pubsub.NewInline()
		bus = inline
	}
	defer bus.Close()

	proc := processor.New(clubStore, notifier, metricsSvc, bus, rankings, loc)
	if inline != nil {
		inline.Subscribe(pubsub.EventMatchFinished, proc.HandleMessage)
	}

	sched, err := scheduler.New(proc, loc)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %s", err)
	}
	if _, err := sched.ScheduleDigest(cfg.DigestCron); err != nil {
		log.Fatalf("Failed to schedule ranking digest: %s", err)
	}
	sched.Start()
	defer func() {
		if err := sched.Shutdown(); err != nil {
			log.Error("Scheduler shutdown failed", "error", err)
		}
	}()

	s := server.NewServer(
		clubStore,
		metricsSvc,
		metrics.New(db),
		metricsHandler,
		cfg,
		notifier,
		proc,
		rankings,
	)

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server started", "port", cfg.Port, "timezone", loc.String())
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
