package types

import (
	"encoding/json"
	"testing"
)

func TestStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusSuccess, true},
		{StatusFailed, true},
		{StatusPending, false},
		{Status("queued"), false},
		{Status(""), false},
	}
	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.want {
			t.Errorf("%q.IsTerminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatusIsKnown(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusSuccess, StatusFailed} {
		if !s.IsKnown() {
			t.Errorf("%q should be known", s)
		}
	}
	for _, s := range []Status{"queued", "", "FAILED"} {
		if s.IsKnown() {
			t.Errorf("%q should not be known", s)
		}
	}
}

func TestIntentDetailDecodesOrchestratorPayload(t *testing.T) {
	payload := `{
		"intent_id": "a55470d4-784f-485b-b36f-ce70e540da3b",
		"status": "failed",
		"created_at": 1700000000,
		"message": "Execution halted at step 2: insufficient funds",
		"raw_intent": "{\"action\":\"payment\"}",
		"steps": [
			{"step_index": 0, "action": "payment", "status": "success", "tx_hash": "0xabc"},
			{"step_index": 1, "action": "payment", "status": "failed", "error": "insufficient funds"}
		]
	}`

	var d IntentDetail
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.IntentID != "a55470d4-784f-485b-b36f-ce70e540da3b" || d.Status != StatusFailed {
		t.Fatalf("unexpected intent fields: %+v", d.Intent)
	}
	if d.RawIntent != `{"action":"payment"}` {
		t.Fatalf("unexpected raw intent %q", d.RawIntent)
	}
	if len(d.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(d.Steps))
	}
	if !d.Steps[0].HasTxHash() || d.Steps[0].HasError() {
		t.Fatalf("step 0 optional fields wrong: %+v", d.Steps[0])
	}
	if d.Steps[1].HasTxHash() || !d.Steps[1].HasError() {
		t.Fatalf("step 1 optional fields wrong: %+v", d.Steps[1])
	}
	if d.CompletedSteps() != 1 {
		t.Fatalf("expected 1 completed step, got %d", d.CompletedSteps())
	}
}

func TestStepOmitsEmptyOptionalFields(t *testing.T) {
	data, err := json.Marshal(Step{Action: "swap", Status: StatusPending})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"step_index":0,"action":"swap","status":"pending"}` {
		t.Fatalf("unexpected encoding %s", data)
	}
}

func TestStageStateIcon(t *testing.T) {
	if StageDone.Icon() != "✅" || StageError.Icon() != "❌" || StagePending.Icon() != "⏳" {
		t.Fatalf("unexpected stage icons")
	}
}
