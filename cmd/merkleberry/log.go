package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/blockberries/merkleberry/accumulator"
	"github.com/blockberries/merkleberry/config"
	"github.com/blockberries/merkleberry/kv"
	"github.com/blockberries/merkleberry/logging"
	"github.com/blockberries/merkleberry/metrics"
)

// openLog assembles the store, logger and metrics from configuration
// and returns the accumulator with a close function for the store.
func openLog(cfg *config.Config) (*accumulator.Accumulator, func() error, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger := createLogger(cfg.Logging)
	if verbose {
		logger = logging.NewTextLogger(os.Stderr, slog.LevelDebug)
	}

	var m metrics.Metrics = metrics.NewNopMetrics()
	if cfg.Metrics.Enabled {
		pm := metrics.NewPrometheusMetrics(cfg.Metrics.Namespace)
		m = pm
		store = metrics.NewInstrumentedStore(store, m)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", pm.HTTPHandler())
			if err := http.ListenAndServe(cfg.Metrics.ListenAddr, mux); err != nil {
				logger.Error("metrics server stopped", logging.Error(err))
			}
		}()
	}

	acc := accumulator.New(store,
		accumulator.WithLogger(logger),
		accumulator.WithMetrics(m),
	)
	return acc, store.Close, nil
}

// openStore creates the configured storage backend, optionally wrapped
// in a read-through cache for immutable leaf and node records.
func openStore(cfg *config.Config) (kv.Store, error) {
	var store kv.Store
	var err error

	switch cfg.Store.Backend {
	case config.BackendMemory:
		store = kv.NewMemoryStore()
	case config.BackendLevelDB:
		store, err = kv.NewLevelDBStore(cfg.Store.Path)
	case config.BackendBadgerDB:
		store, err = kv.NewBadgerDBStore(cfg.Store.Path)
	default:
		err = fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if cfg.Cache.Enabled {
		// State keys are mutable and must always hit the backend.
		cached, err := kv.NewCachedStore(store, cfg.Cache.Size, accumulator.IsStateKey)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("creating cache: %w", err)
		}
		store = cached
	}

	return store, nil
}

// createLogger creates a logger based on configuration.
func createLogger(cfg config.LoggingConfig) *logging.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var w = os.Stderr
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		w = os.Stdout
	case "stderr", "":
		w = os.Stderr
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
		return logging.NewJSONLogger(w, level)
	default:
		return logging.NewTextLogger(w, level)
	}
}
