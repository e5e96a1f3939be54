package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"trustview/internal/logging"
	"trustview/internal/orchestrator"
	"trustview/internal/store"
)

// dataSource bundles the Source chosen by configuration with its cleanup.
type dataSource struct {
	orchestrator.Source
	cache *orchestrator.CachedSource
	db    *store.DB
	label string
}

// openSource returns the offline database when --db is set, otherwise the
// cached HTTP client.
func openSource() (*dataSource, error) {
	if cfg.IsOffline() {
		db, err := store.OpenReadOnly(cfg.Store.Path)
		if err != nil {
			logging.BootError("cannot open offline database %s: %v", cfg.Store.Path, err)
			return nil, err
		}
		db.SetListLimit(cfg.Store.ListLimit)
		logger.Info("using offline database",
			zap.String("path", cfg.Store.Path),
			zap.Int("list_limit", cfg.Store.ListLimit))
		return &dataSource{Source: db, db: db, label: "db " + cfg.Store.Path}, nil
	}

	client := orchestrator.NewClient(cfg.Orchestrator.APIURL, cfg.GetTimeout())
	cached := orchestrator.NewCachedSource(client, cfg.GetCacheTTL())
	logger.Info("using orchestrator API",
		zap.String("url", client.BaseURL()),
		zap.Duration("cache_ttl", cached.TTL()))
	return &dataSource{Source: cached, cache: cached, label: client.BaseURL()}, nil
}

// Close releases the database handle, if any.
func (d *dataSource) Close() {
	if d.db != nil {
		if err := d.db.Close(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}
}

// Health probes the underlying source.
func (d *dataSource) Health(ctx context.Context) (*orchestrator.HealthStatus, error) {
	hc, ok := d.Source.(orchestrator.HealthChecker)
	if !ok {
		return nil, fmt.Errorf("source does not support health checks")
	}
	return hc.Health(ctx)
}

// commandContext is cancelled on SIGINT/SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
