package transparency

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"trustview/internal/types"
)

func TestFormatRawIntentRoundTrip(t *testing.T) {
	raw := `{"action":"payment","params":{"recipient":"0x71C7","amount":"100000000000000000"},"created_at":1700000000,"steps":[1,2.5,true,null]}`

	got := FormatRawIntent(raw)

	want := map[string]any{
		"action": "payment",
		"params": map[string]any{
			"recipient": "0x71C7",
			"amount":    "100000000000000000",
		},
		"created_at": json.Number("1700000000"),
		"steps":      []any{json.Number("1"), json.Number("2.5"), true, nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("FormatRawIntent() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatRawIntentScalarDocuments(t *testing.T) {
	if got := FormatRawIntent(`"just a string"`); got != "just a string" {
		t.Fatalf("expected decoded string, got %#v", got)
	}
	if got := FormatRawIntent(" [ ] "); cmp.Diff([]any{}, got) != "" {
		t.Fatalf("expected empty array, got %#v", got)
	}
}

func TestFormatRawIntentFallback(t *testing.T) {
	for _, raw := range []string{"", "{not json", "{} trailing", "   ", "{}}", `{"a":1}]`, "[1] ]", `{"a":1} {"b":2}`} {
		got := FormatRawIntent(raw)
		want := map[string]any{"raw": raw}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("FormatRawIntent(%q) mismatch (-want +got):\n%s", raw, diff)
		}
	}
}

func TestSummarizeResult(t *testing.T) {
	detail := types.IntentDetail{
		Intent: types.Intent{Status: types.StatusFailed, Message: "Execution halted at step 2: reverted"},
		Steps: []types.Step{
			{Action: "swap", Status: types.StatusSuccess},
			{Action: "bridge", Status: types.StatusFailed},
			{Action: "payment", Status: types.StatusPending},
		},
	}
	got := SummarizeResult(detail)
	want := ResultSummary{
		Status:         types.StatusFailed,
		Message:        "Execution halted at step 2: reverted",
		StepsCompleted: 1,
		TotalSteps:     3,
	}
	if got != want {
		t.Fatalf("SummarizeResult() = %+v, want %+v", got, want)
	}
}

func TestExplanationJSON(t *testing.T) {
	detail := types.IntentDetail{
		Intent:    types.Intent{Status: types.StatusSuccess, Message: "ok"},
		RawIntent: `{"amount":"1<2"}`,
		Steps:     []types.Step{{Action: "payment", Status: types.StatusSuccess}},
	}
	exp := Explain(detail)

	if !strings.Contains(exp.RawJSON(), `"amount": "1<2"`) {
		t.Fatalf("expected unescaped indented raw pane, got %s", exp.RawJSON())
	}
	result := exp.ResultJSON()
	for _, want := range []string{`"status": "success"`, `"steps_completed": 1`, `"total_steps": 1`} {
		if !strings.Contains(result, want) {
			t.Fatalf("expected %s in result pane, got %s", want, result)
		}
	}

	bad := Explain(types.IntentDetail{RawIntent: "oops"})
	if !strings.Contains(bad.RawJSON(), `"raw": "oops"`) {
		t.Fatalf("expected wrapped raw pane, got %s", bad.RawJSON())
	}
}
