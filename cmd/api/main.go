package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/api"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/api/ws"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/auth"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/config"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/observability"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/queue"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/storage"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/pkg/dto"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("starting Optix API service", "port", cfg.Server.Port)

	// Connect to Postgres and bring the schema up to date
	db, err := storage.NewPostgresStore(cfg.Database)
	if err != nil {
		slog.Error("connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(cfg.Database); err != nil {
		slog.Error("run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to MinIO
	minioStore, err := storage.NewMinIOStore(cfg.MinIO)
	if err != nil {
		slog.Error("connect to minio", "error", err)
		os.Exit(1)
	}
	if err := minioStore.EnsureBucket(context.Background()); err != nil {
		slog.Warn("ensure minio bucket", "error", err)
	}

	// Connect to NATS
	producer, err := queue.NewProducer(cfg.NATS.URL)
	if err != nil {
		slog.Error("connect to nats", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	if err := producer.EnsureStream(context.Background()); err != nil {
		slog.Warn("ensure nats stream", "error", err)
	}

	// WebSocket hub
	hub := ws.NewHub()
	go hub.Run()

	// Consume perception-pipeline messages: store detections, close visits,
	// push alerts to connected owners.
	consumer, err := queue.NewConsumer(cfg.NATS.URL)
	if err != nil {
		slog.Error("create detection consumer", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = consumer.ConsumeDetections(ctx, "api-detections", func(ctx context.Context, kind queue.MessageKind, msg jetstream.Msg) error {
		switch kind {
		case queue.KindExited:
			var exit models.ExitMessage
			if err := json.Unmarshal(msg.Data(), &exit); err != nil {
				return fmt.Errorf("decode exit message: %w", err)
			}
			return db.CloseEvent(ctx, exit.LogID, exit.ExitedAt)

		default:
			var detection models.DetectionMessage
			if err := json.Unmarshal(msg.Data(), &detection); err != nil {
				return fmt.Errorf("decode detection message: %w", err)
			}

			log, err := db.CreateDetection(ctx, &detection)
			if err != nil {
				return fmt.Errorf("store detection: %w", err)
			}
			observability.DetectionsStored.WithLabelValues(string(log.EventType)).Inc()

			hub.BroadcastAlert(&dto.AlertMessage{
				Type:        string(log.EventType),
				LogID:       log.ID,
				UserID:      log.UserID,
				CameraID:    log.CameraID,
				PersonID:    log.PersonID,
				DetectedAt:  log.DetectedAt.Format(time.RFC3339),
				SnapshotURL: log.SnapshotURL,
			})
			return nil
		}
	})
	if err != nil {
		slog.Warn("start detection consumer", "error", err)
	}

	// Setup router
	router := api.NewRouter(api.RouterConfig{
		DB:       db,
		MinIO:    minioStore,
		Producer: producer,
		Hub:      hub,
		Issuer:   auth.NewTokenIssuer(cfg.Auth),
		Hasher:   auth.NewHasher(cfg.Auth.BcryptCost),
		Logger:   slog.Default(),
	})

	// Start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("API server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down API server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("API server stopped")
}
