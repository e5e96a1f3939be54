package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"trustview/internal/logging"
	"trustview/internal/orchestrator"
)

// DefaultExportConcurrency bounds parallel detail fetches during export.
const DefaultExportConcurrency = 4

// ExportOptions controls Export.
type ExportOptions struct {
	Wallet      string
	Concurrency int
	// OnProgress, when set, is called after each intent is handled.
	OnProgress func(done, total int)
}

// ExportResult summarizes an export run.
type ExportResult struct {
	Listed  int
	Written int
	// Missing counts intents that disappeared between list and detail.
	Missing int
}

// Export copies the current list and every intent's detail from src into dst.
// The first fetch or write error cancels the remaining work.
func Export(ctx context.Context, src orchestrator.Source, dst *DB, opts ExportOptions) (ExportResult, error) {
	log := logging.Get(logging.CategoryExport)
	timer := logging.StartTimer(logging.CategoryExport, "export")
	defer timer.Stop()

	var res ExportResult
	intents, err := src.ListIntents(ctx, opts.Wallet)
	if err != nil {
		return res, fmt.Errorf("failed to list intents: %w", err)
	}
	res.Listed = len(intents)
	log.Info("exporting %d intents to %s", len(intents), dst.Path())

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultExportConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var (
		mu      sync.Mutex
		done    atomic.Int32
		written int
		missing int
	)
	for _, in := range intents {
		id := in.IntentID
		g.Go(func() error {
			defer func() {
				n := int(done.Add(1))
				if opts.OnProgress != nil {
					opts.OnProgress(n, len(intents))
				}
			}()

			detail, err := src.GetIntent(gctx, id, opts.Wallet)
			if errors.Is(err, orchestrator.ErrNotFound) {
				log.Warn("intent %s vanished before export", id)
				mu.Lock()
				missing++
				mu.Unlock()
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", id, err)
			}
			if err := dst.SaveIntent(gctx, detail); err != nil {
				return err
			}
			mu.Lock()
			written++
			mu.Unlock()
			return nil
		})
	}

	err = g.Wait()
	res.Written = written
	res.Missing = missing
	if err != nil {
		log.Error("export aborted: %v", err)
		return res, err
	}
	log.Info("exported %d intents (%d missing)", written, missing)
	return res, nil
}
