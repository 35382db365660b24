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

	"github.com/your-org/faceline/internal/api"
	"github.com/your-org/faceline/internal/api/ws"
	"github.com/your-org/faceline/internal/cascadestore"
	"github.com/your-org/faceline/internal/config"
	"github.com/your-org/faceline/internal/models"
	"github.com/your-org/faceline/internal/observability"
	"github.com/your-org/faceline/internal/queue"
	"github.com/your-org/faceline/internal/storage"
	"github.com/your-org/faceline/pkg/dto"
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

	slog.Info("starting faceline API service", "port", cfg.Server.Port)

	// Connect to Postgres
	db, err := storage.NewPostgresStore(cfg.Database)
	if err != nil {
		slog.Error("connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

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

	if err := producer.EnsureStreams(context.Background()); err != nil {
		slog.Warn("ensure nats streams", "error", err)
	}

	// Cascade registry, resolving local files first and falling back to MinIO
	registry := cascadestore.New(cfg.Cascades.Dir, minioStore, "cascades")

	// WebSocket hub
	hub := ws.NewHub()
	go hub.Run()

	// Start event consumer to persist results and broadcast via WebSocket
	consumer, err := queue.NewConsumer(cfg.NATS.URL)
	if err != nil {
		slog.Error("create event consumer", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = consumer.ConsumeEvents(ctx, "api-events", func(ctx context.Context, msg jetstream.Msg) error {
		var evt models.FaceResultEvent
		if err := json.Unmarshal(msg.Data(), &evt); err != nil {
			return err
		}

		result := &models.FaceResult{
			JobID:      evt.JobID,
			FrameIndex: evt.FrameIndex,
			Outcome:    evt.Outcome,
			RectX:      evt.RectX,
			RectY:      evt.RectY,
			RectW:      evt.RectW,
			RectH:      evt.RectH,
			EyeLeftX:   evt.EyeLeftX,
			EyeLeftY:   evt.EyeLeftY,
			EyeRightX:  evt.EyeRightX,
			EyeRightY:  evt.EyeRightY,
			Distance:   evt.Distance,
			Angle:      evt.Angle,
			Deduped:    evt.Deduped,
			CropKey:    evt.CropKey,
		}
		if err := db.CreateFaceResult(ctx, result); err != nil {
			slog.Error("store face result", "error", err)
		}

		hub.BroadcastEvent(&dto.WSEvent{
			Type:  "face_result",
			JobID: evt.JobID,
			Data: dto.FaceResultResponse{
				ID:         result.ID,
				JobID:      result.JobID,
				FrameIndex: result.FrameIndex,
				Outcome:    string(result.Outcome),
				Deduped:    result.Deduped,
				CropURL:    result.CropKey,
				CreatedAt:  result.CreatedAt.Format(time.RFC3339),
			},
		})

		return nil
	})
	if err != nil {
		slog.Warn("start event consumer", "error", err)
	}

	// Setup router
	router := api.NewRouter(api.RouterConfig{
		APIKey:   cfg.Server.APIKey,
		DB:       db,
		MinIO:    minioStore,
		Producer: producer,
		Hub:      hub,
		Cascades: registry,
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
