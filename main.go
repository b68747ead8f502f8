package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/teamboard/internal/club"
	"github.com/mauv0809/teamboard/internal/config"
	"github.com/mauv0809/teamboard/internal/database"
	"github.com/mauv0809/teamboard/internal/guard"
	server "github.com/mauv0809/teamboard/internal/http"
	"github.com/mauv0809/teamboard/internal/match"
	"github.com/mauv0809/teamboard/internal/metrics"
	"github.com/mauv0809/teamboard/internal/notifier/slack"
	"github.com/mauv0809/teamboard/internal/processor"
	"github.com/mauv0809/teamboard/internal/pubsub"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	ctx := context.Background()

	clubStore, storeTeardown := openStore(ctx, cfg)
	defer func() {
		log.Info("Closing store")
		storeTeardown()
	}()
	log.Info("Store initialization time recorded", "backend", cfg.Backend, "duration_ms", time.Since(startTime).Milliseconds())

	pubsubClient, err := pubsub.New(ctx, cfg.ProjectID)
	if err != nil {
		log.Fatalf("Failed to initialize pubsub: %s", err)
	}
	defer pubsubClient.Close()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	calc := match.NewCalculator(
		match.WithGamesPerMatch(cfg.Match.GamesPerMatch),
		match.WithTiePolicy(cfg.Match.TiePolicy),
	)

	var opts []processor.Option
	if cfg.ProjectID == "" {
		log.Info("No GCP project configured, result notifications are sent inline")
		opts = append(opts, processor.WithInlineNotifications())
	}
	proc := processor.New(clubStore, calc, notifier, metricsSvc, pubsubClient, opts...)
	deleteGuard := guard.New(cfg.Guard.DeleteCode, cfg.Guard.TokenSecret, cfg.Guard.TokenTTL)

	s := server.NewServer(proc, deleteGuard, notifier, metricsSvc, metricsHandler, cfg, pubsubClient)

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}

// openStore connects the configured backend. The returned teardown releases it.
func openStore(ctx context.Context, cfg config.Config) (club.ClubStore, func()) {
	if cfg.Backend == config.BackendMongo {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		store, err := club.NewMongo(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			log.Fatalf("Failed to initialize mongo store: %s", err)
		}
		return store, func() {
			if err := store.Close(context.Background()); err != nil {
				log.Error("Failed to disconnect from mongo", "error", err)
			}
		}
	}

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	return club.New(db), dbTeardown
}
