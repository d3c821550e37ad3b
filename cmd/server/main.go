package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cx-tal-miterani/flight-booking-system/internal/config"
	"github.com/cx-tal-miterani/flight-booking-system/internal/handlers"
	"github.com/cx-tal-miterani/flight-booking-system/internal/logger"
	"github.com/cx-tal-miterani/flight-booking-system/internal/queue"
	"github.com/cx-tal-miterani/flight-booking-system/internal/registry"
	"github.com/cx-tal-miterani/flight-booking-system/internal/router"
	"github.com/cx-tal-miterani/flight-booking-system/internal/seed"
	"github.com/cx-tal-miterani/flight-booking-system/internal/service"
	"github.com/cx-tal-miterani/flight-booking-system/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logg, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	if err := run(cfg, logg); err != nil {
		logg.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, logg *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	policy, err := registry.ParseDuplicatePolicy(cfg.DuplicatePolicy)
	if err != nil {
		return err
	}
	assignment, err := service.ParseSeatAssignment(cfg.SeatAssignment)
	if err != nil {
		return err
	}
	reg := registry.New(cfg.BucketCount, policy)

	// WebSocket hub for live seat updates
	hub := websocket.NewHub(logg)
	go hub.Run(ctx)

	engine := service.NewEngine(reg, queue.New(cfg.QueueCapacity), service.Options{
		SeatCapacity:   cfg.SeatCapacity,
		SeatAssignment: assignment,
		Logger:         logg,
		Notifier:       hub,
	})

	flights, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return err
	}
	if err := seed.Apply(ctx, engine, flights, logg); err != nil {
		return err
	}

	h := handlers.NewHandler(engine)
	r := router.SetupRouter(h, hub, logg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("API Server starting",
			"port", cfg.Port,
			"buckets", reg.BucketCount(),
			"queueCapacity", cfg.QueueCapacity,
			"seatAssignment", assignment,
			"duplicatePolicy", reg.Policy(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logg.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logg.Info("Server stopped")
	return nil
}
