package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bracket-draft/internal/config"
	"github.com/mauv0809/bracket-draft/internal/database"
	"github.com/mauv0809/bracket-draft/internal/draft"
	"github.com/mauv0809/bracket-draft/internal/games"
	server "github.com/mauv0809/bracket-draft/internal/http"
	"github.com/mauv0809/bracket-draft/internal/ingest"
	"github.com/mauv0809/bracket-draft/internal/leaderboard"
	"github.com/mauv0809/bracket-draft/internal/metrics"
	"github.com/mauv0809/bracket-draft/internal/notifier"
	"github.com/mauv0809/bracket-draft/internal/notifier/slack"
	"github.com/mauv0809/bracket-draft/internal/pubsub"
	"github.com/mauv0809/bracket-draft/internal/roster"
	"github.com/mauv0809/bracket-draft/internal/scheduler"
	"github.com/mauv0809/bracket-draft/internal/source"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Unknown log level, keeping default", "level", cfg.LogLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	players := roster.New(db, roster.WithLegacyNumericOrder(cfg.LegacySortOrder))
	gameStore := games.New(db)
	draftStore := draft.New(db)
	board := leaderboard.New(db)

	src, err := source.NewCached(source.NewSample(time.Now), cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize tournament source: %s", err)
	}
	reconciler := ingest.New(src, players, gameStore, cfg.TournamentYear)

	var n notifier.Notifier = notifier.Nop{}
	if cfg.Slack.Enabled() {
		n = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Info("Slack is not configured, notifications are disabled")
	}

	var events pubsub.PubSubClient = pubsub.NewNop()
	if cfg.ProjectID != "" {
		events, err = pubsub.New(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	}
	defer events.Close()

	supervisor, err := scheduler.New(reconciler, board, n, events, metricsSvc, scheduler.Options{
		TournamentInterval: cfg.Refresh.TournamentInterval,
		ScoreInterval:      cfg.Refresh.ScoreInterval,
	})
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %s", err)
	}
	if cfg.Refresh.SeedOnStartup {
		if err := supervisor.Seed(ctx); err != nil {
			log.Error("Initial seed failed, continuing with an empty store", "error", err)
		}
	}
	if cfg.Refresh.Enabled {
		if err := supervisor.Start(ctx); err != nil {
			log.Fatalf("Failed to start scheduler: %s", err)
		}
	}

	s := server.NewServer(server.Dependencies{
		DB:             db,
		Players:        players,
		Draft:          draftStore,
		Games:          gameStore,
		Leaderboard:    board,
		Refresher:      supervisor,
		Notifier:       n,
		PubSub:         events,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
	}, cfg)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", "error", err)
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

	if err := supervisor.Shutdown(); err != nil {
		log.Error("Scheduler shutdown failed", "error", err)
	}
	log.Info("Server process shutting down")
}
