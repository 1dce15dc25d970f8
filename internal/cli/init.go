// Package cli provides common initialization and terminal rendering for
// cmd/masterplan and cmd/refresh-worker.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"masterplan/internal/amqp"
	"masterplan/internal/backend"
	"masterplan/internal/cache"
	"masterplan/internal/config"
	"masterplan/internal/core"
	"masterplan/internal/ledger"
	"masterplan/internal/log"
	"masterplan/internal/services"
)

// SetupLogger builds the application logger from cfg and sets it as the
// default slog logger. Logs go to stderr so command output stays clean.
func SetupLogger(cfg *config.Config, component string) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: component,
		Output:    os.Stderr,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Runtime is an opened store with a loaded tracker on top of it.
type Runtime struct {
	Tracker    *services.Tracker
	Aggregates *cache.LRUCache[ledger.Aggregates]
	AMQP       *amqp.Client
	cleanup    []backend.CleanupFunc
}

// Close releases the store and the broker connection.
func (r *Runtime) Close() error {
	var firstErr error
	for i := len(r.cleanup) - 1; i >= 0; i-- {
		if err := r.cleanup[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OpenRuntime opens the configured store and loads the tracker. When
// withEvents is set and AMQP_URL is configured, refresh events are
// published; a broker that cannot be reached is logged and skipped.
func OpenRuntime(ctx context.Context, logger *log.Logger, cfg *config.Config, withEvents bool) (*Runtime, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	rt := &Runtime{
		Aggregates: cache.NewLRUCache[ledger.Aggregates](cfg.AggregateCacheSize, cfg.AggregateCacheTTL),
	}
	if res.Cleanup != nil {
		rt.cleanup = append(rt.cleanup, res.Cleanup)
	}

	opts := []services.Option{
		services.WithLogger(logger),
		services.WithAggregateCache(rt.Aggregates),
		services.WithDefaultTarget(core.Amount(cfg.DefaultTargetAmount)),
	}

	if withEvents {
		if client := ConnectAMQP(logger, cfg); client != nil {
			rt.AMQP = client
			rt.cleanup = append(rt.cleanup, client.Close)
			opts = append(opts, services.WithPublisher(client))
		}
	}

	rt.Tracker = services.NewTracker(res.Store, opts...)
	if err := rt.Tracker.Load(ctx); err != nil {
		if !core.IsWarning(err) {
			rt.Close()
			return nil, fmt.Errorf("load state: %w", err)
		}
		logger.Warn("State loaded but could not be written back", log.FieldError, err)
	}
	return rt, nil
}

// ConnectAMQP returns a broker client, or nil when AMQP is not configured
// or unreachable.
func ConnectAMQP(logger *log.Logger, cfg *config.Config) *amqp.Client {
	if cfg.AMQPURL == "" {
		logger.Debug("AMQP disabled, refresh events will not be published")
		return nil
	}
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Warn("Failed to initialize AMQP client, continuing without events",
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeNetwork)
		return nil
	}
	logger.Info("AMQP client initialized",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)
	return client
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that will be cancelled on shutdown signals,
// and a channel that signals when shutdown is complete.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func()) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		cancel()

		finished := make(chan struct{})
		go func() {
			if cleanup != nil {
				cleanup()
			}
			close(finished)
		}()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("Shutdown timeout reached")
		case <-finished:
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
