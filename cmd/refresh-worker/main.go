package main

import (
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"masterplan/internal/cache"
	"masterplan/internal/cli"
	"masterplan/internal/log"
	"masterplan/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		log.New(log.DefaultConfig()).Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	logger := cli.SetupLogger(cfg, log.ComponentWorker)
	logger.Info("Starting refresh-worker",
		"backend", cfg.DataBackend,
		"interval", cfg.RefreshCheckInterval.String(),
		"amqp", cfg.AMQPURL != "")

	// Cleanup runs after the workers have stopped, not from the signal handler.
	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	rt, err := cli.OpenRuntime(ctx, logger, cfg, true)
	if err != nil {
		logger.Error("Failed to open runtime", log.FieldError, err)
		os.Exit(1)
	}

	manager := cache.NewManager(logger)
	manager.Register(rt.Aggregates)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.NewRefreshWorker(rt.Tracker, cfg.RefreshCheckInterval, logger).Run(gctx)
	})
	g.Go(func() error {
		return manager.Run(gctx, cfg.AggregateCacheTTL)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", log.FieldError, err)
	}
	if err := rt.Close(); err != nil {
		logger.Warn("Failed to release resources", log.FieldError, err)
	}

	if ctx.Err() != nil {
		cli.WaitForShutdown(ctx, done)
	}
	logger.Info("refresh-worker stopped")
}
