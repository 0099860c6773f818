package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/models"
	"github.com/muhammadhussnainsaeed/Optix-Person-Tracker-for-Homes-Backend/internal/queue"
)

// detection-sim publishes synthetic perception-pipeline messages so the API
// can be exercised without real cameras.
func main() {
	natsURL := flag.String("nats", "nats://localhost:4222", "NATS server URL")
	userIDStr := flag.String("user", "", "owner user id (uuid, required)")
	cameraIDStr := flag.String("camera", "", "camera id (uuid, optional)")
	interval := flag.Duration("interval", 10*time.Second, "time between detections")
	flag.Parse()

	userID, err := uuid.Parse(*userIDStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "a valid -user uuid is required")
		os.Exit(1)
	}

	var cameraID *uuid.UUID
	if *cameraIDStr != "" {
		id, err := uuid.Parse(*cameraIDStr)
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid -camera uuid")
			os.Exit(1)
		}
		cameraID = &id
	}

	producer, err := queue.NewProducer(*natsURL)
	if err != nil {
		slog.Error("connect to nats", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	if err := producer.EnsureStream(context.Background()); err != nil {
		slog.Error("ensure stream", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	slog.Info("detection simulator running", "user_id", userID, "interval", interval.String())

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("detection simulator stopped")
			return
		case <-ticker.C:
			msg := models.DetectionMessage{
				UserID:     userID,
				CameraID:   cameraID,
				EventType:  models.EventTypeUnwantedDetected,
				DetectedAt: time.Now().UTC(),
				SnapshotURL: fmt.Sprintf("snapshots/%s/%s.jpg",
					userID, uuid.New()),
			}
			if rand.Intn(3) == 0 {
				msg.Interactions = []models.ObjectInteraction{{
					ObjectName: "front door",
					MovedAt:    msg.DetectedAt,
				}}
			}
			if err := producer.PublishDetection(ctx, userID.String(), msg); err != nil {
				slog.Error("publish detection", "error", err)
				continue
			}
			slog.Info("published detection", "camera_id", cameraID)
		}
	}
}
