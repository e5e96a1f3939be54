package transparency

import (
	"strings"
	"testing"
	"time"

	"trustview/internal/types"
)

func TestFormatReport(t *testing.T) {
	detail := types.IntentDetail{
		Intent: types.Intent{
			IntentID:  "a55470d4",
			Status:    types.StatusFailed,
			CreatedAt: testCreatedAt,
			Message:   "Execution halted at step 1: insufficient funds",
		},
		RawIntent: `{"action":"payment"}`,
		Steps: []types.Step{
			{Action: "payment", Status: types.StatusFailed, Error: "insufficient funds"},
		},
	}

	report := FormatReport(detail, time.UTC)
	for _, want := range []string{
		"# Intent `a55470d4`",
		"PREVENTED: Balance Insufficient",
		"❌ **Balance Check**: Insufficient funds for gas.",
		"1. **Intent Received** `@22:13:20` ✅",
		"3. **Executing Step 1/1: payment** ❌",
		"   - Error: insufficient funds",
		"4. **Audit Log Finalized** ✅",
		`"action": "payment"`,
		`"total_steps": 1`,
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("expected %q in report:\n%s", want, report)
		}
	}
}

func TestFormatReportWithoutBanner(t *testing.T) {
	detail := types.IntentDetail{Intent: types.Intent{IntentID: "x", Status: types.StatusPending}}
	report := FormatReport(detail, nil)
	if strings.Contains(report, "PREVENTED") {
		t.Fatalf("pending intents must not show an interception banner")
	}
	if !strings.Contains(report, "**Audit Log Finalized** ⏳") {
		t.Fatalf("expected pending audit stage:\n%s", report)
	}
}
