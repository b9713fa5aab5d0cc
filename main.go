package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/charmbracelet/log"
	"github.com/mauv0809/dna-dashboard/internal/config"
	server "github.com/mauv0809/dna-dashboard/internal/http"
	"github.com/mauv0809/dna-dashboard/internal/media"
	"github.com/mauv0809/dna-dashboard/internal/metrics"
	"github.com/mauv0809/dna-dashboard/internal/notifier"
	"github.com/mauv0809/dna-dashboard/internal/notifier/slack"
	"github.com/mauv0809/dna-dashboard/internal/players"
	"github.com/mauv0809/dna-dashboard/internal/pubsub"
	"github.com/mauv0809/dna-dashboard/internal/settings"
	"github.com/mauv0809/dna-dashboard/internal/sheets"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	ctx := context.Background()

	sheetsClient, sheetsTeardown, err := sheets.Open(ctx, cfg.Sheets)
	if err != nil {
		log.Fatalf("Failed to initialize sheets backend: %s", err)
	}
	defer func() {
		log.Info("Closing sheets backend")
		if err := sheetsTeardown(); err != nil {
			log.Error("Failed to close sheets backend", "error", err)
		}
	}()
	log.Info("Sheets backend ready", "backend", cfg.Sheets.Backend, "duration_ms", time.Since(startTime).Milliseconds())

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var events pubsub.PubSubClient
	if cfg.PubSub.ProjectID != "" {
		events, err = pubsub.New(ctx, cfg.PubSub.ProjectID, cfg.PubSub.Topic)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	} else {
		log.Info("GCP_PROJECT not set, change events are not published")
		events = pubsub.NewNoop()
	}
	defer events.Close()

	var notify notifier.Notifier = notifier.Noop{}
	if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
		notify = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	}

	r2 := media.NewR2Client(cfg.Storage)
	mediaStore := media.NewS3Store(media.Options{
		Client:    r2,
		Presigner: s3.NewPresignClient(r2),
		Bucket:    cfg.Storage.Bucket,
		PublicURL: cfg.Storage.PublicURL,
		MaxBytes:  cfg.MaxUploadBytes,
		Metrics:   metricsSvc,
		Publisher: events,
		Notifier:  notify,
	})
	playerStore := players.New(sheetsClient, metricsSvc, cfg.Location)
	settingsStore := settings.New(sheetsClient, metricsSvc, events, notify)

	s := server.NewServer(
		playerStore,
		settingsStore,
		mediaStore,
		metricsSvc,
		metricsHandler,
		cfg,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
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
