package transparency

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"trustview/internal/types"
)

const testCreatedAt = 1700000000 // 2023-11-14 22:13:20 UTC

func TestDeriveStagesScenarioA(t *testing.T) {
	detail := types.IntentDetail{
		Intent: types.Intent{IntentID: "a", Status: types.StatusFailed, CreatedAt: testCreatedAt},
		Steps: []types.Step{
			{Action: "swap", Status: types.StatusSuccess},
			{Action: "bridge", Status: types.StatusFailed, Error: "reverted"},
		},
	}

	want := []types.Stage{
		{Label: StageReceived, State: types.StageDone, Detail: "22:13:20"},
		{Label: StageSimulation, State: types.StageDone},
		{Label: "Executing Step 1/2: swap", State: types.StageDone},
		{Label: "Executing Step 2/2: bridge", State: types.StageError, Detail: "reverted", Error: "reverted"},
		{Label: StageAudit, State: types.StageDone},
	}

	got := DeriveStages(detail, time.UTC)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("DeriveStages() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveStagesScenarioB(t *testing.T) {
	detail := types.IntentDetail{Intent: types.Intent{Status: types.StatusPending, CreatedAt: testCreatedAt}}

	got := DeriveStages(detail, nil)
	want := []types.Stage{
		{Label: StageReceived, State: types.StageDone, Detail: "22:13:20"},
		{Label: StageSimulation, State: types.StagePending},
		{Label: StageAudit, State: types.StagePending},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("DeriveStages() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveStagesTxHashDetail(t *testing.T) {
	detail := types.IntentDetail{
		Intent: types.Intent{Status: types.StatusPending},
		Steps: []types.Step{
			{Action: "payment", Status: types.StatusSuccess, TxHash: "0xabc"},
			{Action: "payment", Status: types.StatusPending},
		},
	}
	stages := DeriveStages(detail, time.UTC)
	if stages[2].Detail != "0xabc" || stages[2].TxHash != "0xabc" {
		t.Fatalf("expected tx hash detail, got %+v", stages[2])
	}
	if stages[3].State != types.StagePending || stages[3].Detail != "" {
		t.Fatalf("expected bare pending step, got %+v", stages[3])
	}
	if stages[len(stages)-1].State != types.StagePending {
		t.Fatalf("audit stage must stay pending for pending intents")
	}
}

func TestDeriveStagesLengthAndAuditInvariant(t *testing.T) {
	statuses := []types.Status{types.StatusPending, types.StatusSuccess, types.StatusFailed, "queued"}
	for _, status := range statuses {
		for n := 0; n < 6; n++ {
			steps := make([]types.Step, n)
			for i := range steps {
				steps[i] = types.Step{Action: "payment", Status: statuses[i%len(statuses)]}
			}
			detail := types.IntentDetail{Intent: types.Intent{Status: status}, Steps: steps}
			stages := DeriveStages(detail, time.UTC)

			if len(stages) != n+3 {
				t.Fatalf("expected %d stages, got %d", n+3, len(stages))
			}
			audit := stages[len(stages)-1]
			if (audit.State == types.StageDone) != status.IsTerminal() {
				t.Fatalf("audit stage %s for status %q", audit.State, status)
			}
			for i, st := range stages[2 : len(stages)-1] {
				if (st.State == types.StageError) != (steps[i].Status == types.StatusFailed) {
					t.Fatalf("step %d state %s for status %q", i, st.State, steps[i].Status)
				}
			}
		}
	}
}

func TestDeriveStagesIsIdempotent(t *testing.T) {
	detail := types.IntentDetail{
		Intent: types.Intent{Status: types.StatusSuccess, CreatedAt: testCreatedAt},
		Steps:  []types.Step{{Action: "swap", Status: types.StatusSuccess, TxHash: "0x1"}},
	}
	if diff := cmp.Diff(DeriveStages(detail, time.UTC), DeriveStages(detail, time.UTC)); diff != "" {
		t.Fatalf("expected identical output:\n%s", diff)
	}
}
