package main

import (
	"context"
	"time"

	"home_dashboard/internal/backend"
	"home_dashboard/internal/config"
	"home_dashboard/internal/handlers"
	"home_dashboard/internal/logger"
	"home_dashboard/internal/metrics"
	"home_dashboard/internal/repository"
	"home_dashboard/internal/repository/db"
	"home_dashboard/internal/server"
	"home_dashboard/internal/service"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// run wires the dependencies and blocks until ctx is canceled or a
// long-lived goroutine fails.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	m := metrics.New()
	services := service.NewService(service.Deps{
		Repos:    repository.NewRepository(conn),
		Backend:  backend.New(cfg.Backend.URL, backend.WithTimeout(cfg.Backend.Timeout)),
		Settings: service.SettingsFromConfig(cfg),
		Log:      log,
		Metrics:  m,
	})
	if err := services.Sections.Restore(ctx); err != nil {
		log.Warnw("sections_restore_failed", "error", err)
	}

	apiHandler := handlers.NewHandler(services, log,
		handlers.WithMetrics(m),
		handlers.WithAuth(cfg.Auth.Enabled),
		handlers.WithPushInterval(cfg.Poll.Interval),
	)
	srv := &server.Server{}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		services.Poller.Run(ctx, cfg.Poll.Interval)
		return nil
	})

	eg.Go(func() error {
		log.Infow("starting server", "port", cfg.Port, "backend", cfg.Backend.URL)
		return srv.Run(cfg.Port, apiHandler.InitRoutes())
	})

	eg.Go(func() error {
		<-ctx.Done()
		log.Infow("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
