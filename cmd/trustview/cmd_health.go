package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trustview/internal/transparency"
)

// runHealth probes the configured source.
func runHealth(cmd *cobra.Command, args []string) error {
	src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	ctx, cancel := commandContext()
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.GetTimeout())
	defer cancelTimeout()

	hs, err := src.Health(ctx)
	if err != nil {
		logger.Warn("health check failed", zap.String("source", src.label), zap.Error(err))
		return transparency.ClassifyTransportError(err)
	}
	if !hs.OK() {
		return fmt.Errorf("%s reported status %q", src.label, hs.Status)
	}
	fmt.Printf("%s: %s\n", src.label, hs.Status)
	return nil
}
