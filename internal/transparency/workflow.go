package transparency

import (
	"fmt"
	"strings"
	"time"

	"trustview/internal/types"
)

// Fixed stage labels.
const (
	StageReceived   = "Intent Received"
	StageSimulation = "Simulation"
	StageAudit      = "Audit Log Finalized"
)

// receivedTimeLayout formats the Received stage timestamp.
const receivedTimeLayout = "15:04:05"

// DeriveStages builds the workflow timeline for one intent snapshot.
// The result always has len(detail.Steps)+3 entries: Received, Simulation,
// one entry per step in order, and the final audit stage. loc selects the
// timezone of the Received timestamp; nil means UTC.
func DeriveStages(detail types.IntentDetail, loc *time.Location) []types.Stage {
	if loc == nil {
		loc = time.UTC
	}

	stages := make([]types.Stage, 0, len(detail.Steps)+3)

	stages = append(stages, types.Stage{
		Label:  StageReceived,
		State:  types.StageDone,
		Detail: time.Unix(detail.CreatedAt, 0).In(loc).Format(receivedTimeLayout),
	})

	simulation := types.StageDone
	if detail.Status == types.StatusPending {
		simulation = types.StagePending
	}
	stages = append(stages, types.Stage{Label: StageSimulation, State: simulation})

	total := len(detail.Steps)
	for i, step := range detail.Steps {
		stages = append(stages, types.Stage{
			Label:  fmt.Sprintf("Executing Step %d/%d: %s", i+1, total, step.Action),
			State:  stepState(step.Status),
			Detail: stepDetail(step),
			TxHash: step.TxHash,
			Error:  step.Error,
		})
	}

	audit := types.StagePending
	if detail.Status.IsTerminal() {
		audit = types.StageDone
	}
	stages = append(stages, types.Stage{Label: StageAudit, State: audit})

	return stages
}

func stepState(s types.Status) types.StageState {
	switch s {
	case types.StatusSuccess:
		return types.StageDone
	case types.StatusFailed:
		return types.StageError
	default:
		return types.StagePending
	}
}

// stepDetail joins the optional step fields that are present.
func stepDetail(step types.Step) string {
	var parts []string
	if step.HasTxHash() {
		parts = append(parts, step.TxHash)
	}
	if step.HasError() {
		parts = append(parts, step.Error)
	}
	return strings.Join(parts, " | ")
}
