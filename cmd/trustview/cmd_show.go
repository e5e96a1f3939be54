package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trustview/cmd/trustview/ui"
	"trustview/internal/orchestrator"
	"trustview/internal/transparency"
)

var showPlain bool

// showWrapWidth is the word wrap for rendered reports.
const showWrapWidth = 100

// runShow prints the trust report for one intent.
func runShow(cmd *cobra.Command, args []string) error {
	intentID := args[0]

	src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	ctx, cancel := commandContext()
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.GetTimeout())
	defer cancelTimeout()

	detail, err := src.GetIntent(ctx, intentID, cfg.Orchestrator.UserAddress)
	if errors.Is(err, orchestrator.ErrNotFound) {
		return fmt.Errorf("intent %s not found", intentID)
	}
	if err != nil {
		logger.Error("detail fetch failed", zap.String("intent_id", intentID), zap.Error(err))
		return transparency.ClassifyTransportError(err)
	}

	report := transparency.FormatReport(*detail, cfg.Location())
	if showPlain {
		fmt.Print(report)
		return nil
	}

	styles := ui.NewStyles(ui.DetectTheme(cfg.UI.Theme))
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.GlamourStyle()),
		glamour.WithWordWrap(showWrapWidth),
	)
	if err != nil {
		logger.Warn("markdown renderer unavailable", zap.Error(err))
		fmt.Print(report)
		return nil
	}
	out, err := renderer.Render(report)
	if err != nil {
		logger.Warn("markdown render failed", zap.Error(err))
		fmt.Print(report)
		return nil
	}
	fmt.Print(out)
	return nil
}
