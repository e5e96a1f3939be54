package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trustview/cmd/trustview/ui"
	"trustview/internal/transparency"
	"trustview/internal/types"
)

var listJSON bool

// listOutput is the --json payload.
type listOutput struct {
	Counters transparency.Counters `json:"counters"`
	Intents  []types.Intent        `json:"intents"`
}

// runList prints the counters and the activity log once.
func runList(cmd *cobra.Command, args []string) error {
	src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	ctx, cancel := commandContext()
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.GetTimeout())
	defer cancelTimeout()

	intents, err := src.ListIntents(ctx, cfg.Orchestrator.UserAddress)
	if err != nil {
		logger.Error("list failed", zap.Error(err))
		return transparency.ClassifyTransportError(err)
	}
	counters := transparency.Summarize(intents)

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(listOutput{Counters: counters, Intents: intents})
	}

	styles := ui.NewStyles(ui.DetectTheme(cfg.UI.Theme))
	fmt.Println(ui.RenderCounters(counters, styles))
	fmt.Println()

	if len(intents) == 0 {
		fmt.Println("No intents found.")
		return nil
	}

	loc := cfg.Location()
	table := ui.NewSimpleTable("Activity Log", []string{"Timestamp", "Status", "Intent ID", "Message", "Age"})
	table.MaxCellWidth = 60
	for _, in := range intents {
		table.AddRow(
			ui.FormatTimestamp(in.CreatedAt, loc),
			styles.RenderStatus(in.Status),
			in.IntentID,
			in.Message,
			humanize.Time(time.Unix(in.CreatedAt, 0)),
		)
	}
	fmt.Print(table.View(styles))
	return nil
}
