package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trustview/internal/store"
	"trustview/internal/transparency"
)

var (
	exportOut         string
	exportConcurrency int
)

// runExport writes a SQLite snapshot of every listed intent.
func runExport(cmd *cobra.Command, args []string) error {
	if cfg.IsOffline() && samePath(cfg.Store.Path, exportOut) {
		return fmt.Errorf("refusing to export %s onto itself", exportOut)
	}

	src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := store.Create(exportOut)
	if err != nil {
		return err
	}
	defer dst.Close()

	ctx, cancel := commandContext()
	defer cancel()

	res, err := store.Export(ctx, src.Source, dst, store.ExportOptions{
		Wallet:      cfg.Orchestrator.UserAddress,
		Concurrency: exportConcurrency,
		OnProgress: func(done, total int) {
			logger.Debug("export progress", zap.Int("done", done), zap.Int("total", total))
		},
	})
	if err != nil {
		logger.Error("export failed", zap.String("out", exportOut), zap.Error(err))
		return transparency.ClassifyTransportError(err)
	}

	fmt.Printf("Exported %s of %s intents to %s\n",
		humanize.Comma(int64(res.Written)), humanize.Comma(int64(res.Listed)), exportOut)
	if res.Missing > 0 {
		fmt.Printf("%s intents vanished before their detail could be read\n", humanize.Comma(int64(res.Missing)))
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
