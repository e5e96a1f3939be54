package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trustview/cmd/trustview/ui"
	"trustview/internal/store"
)

// runDashboard starts the interactive TUI.
func runDashboard(cmd *cobra.Command, args []string) error {
	src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	opts := ui.Options{
		Source:          src.Source,
		Wallet:          cfg.Orchestrator.UserAddress,
		Location:        cfg.Location(),
		Timeout:         cfg.GetTimeout(),
		RefreshInterval: cfg.GetRefreshInterval(),
		AutoRefresh:     cfg.Refresh.Auto,
		Theme:           cfg.UI.Theme,
		SourceLabel:     src.label,
	}
	if src.cache != nil {
		opts.Cache = src.cache
	}

	if src.db != nil {
		w, err := store.NewWatcher(src.db.Path(), 0)
		if err != nil {
			logger.Warn("database watcher unavailable", zap.Error(err))
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if err := w.Start(ctx); err != nil {
				logger.Warn("database watcher failed to start", zap.Error(err))
			} else {
				defer w.Stop()
				opts.Changes = w.Changes()
			}
		}
	}

	logger.Info("starting dashboard",
		zap.String("source", src.label),
		zap.Bool("auto_refresh", opts.AutoRefresh))
	return ui.Run(opts)
}
