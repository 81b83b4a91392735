package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vitalecosystem/db"
	"vitalecosystem/db/migrations"
	"vitalecosystem/internal/config"
	"vitalecosystem/internal/contracts"
	"vitalecosystem/internal/handlers"
	"vitalecosystem/internal/logger"
	"vitalecosystem/internal/memstore"
	"vitalecosystem/internal/recorder"
	"vitalecosystem/internal/scheduler"
	"vitalecosystem/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("cannot load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store db.Store
	switch cfg.StorageDriver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		store = memstore.New()
	default:
		dbConn, err := db.New(cfg.PostgresConn, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.MaxIdleTime)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		if err := migrations.Run(dbConn.DB); err != nil {
			return err
		}
		store = db.NewStorage(dbConn)
	}

	v := validation.New()
	manager := contracts.NewManager(store, v, log)
	h := handlers.NewHandler(manager, recorder.New(store, v, log), store, v, log)

	if cfg.ExpirySchedule != "" {
		sched, err := scheduler.New(cfg.ExpirySchedule, manager, log)
		if err != nil {
			return err
		}
		// rattrape les contrats échus pendant l'arrêt du serveur
		sched.RunOnce(ctx)
		sched.Start()
		defer sched.Stop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Mount("/api", h.Routes())

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", cfg.ServerAddress, "storage", cfg.StorageDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
