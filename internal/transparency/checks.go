package transparency

import "trustview/internal/types"

// Balance check explanations.
const (
	BalanceOKExplanation      = "Orchestrator has enough funds."
	BalanceBlockedExplanation = "Insufficient funds for gas."
)

// BalanceCheck is the outcome of the "has funds" precondition.
type BalanceCheck struct {
	OK          bool
	Explanation string
}

// EvaluateBalance derives the balance precondition from an intent's outcome.
// It fails only for failed intents whose message reports insufficient funds.
func EvaluateBalance(status types.Status, message string) BalanceCheck {
	if status == types.StatusFailed && IsInsufficientFunds(message) {
		return BalanceCheck{OK: false, Explanation: BalanceBlockedExplanation}
	}
	return BalanceCheck{OK: true, Explanation: BalanceOKExplanation}
}

// Check is one entry of the safety-check panel.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Icon returns the panel glyph for the check.
func (c Check) Icon() string {
	if c.Passed {
		return "✅"
	}
	return "❌"
}

// SafetyChecks returns the three pre-execution checks shown for an intent.
// Contract Scan and Budget Check are reported by the Orchestrator as static
// passes; only the balance check depends on the record.
func SafetyChecks(detail types.IntentDetail) []Check {
	balance := EvaluateBalance(detail.Status, detail.Message)
	return []Check{
		{Name: "Balance Check", Passed: balance.OK, Detail: balance.Explanation},
		{Name: "Contract Scan", Passed: true, Detail: "No malicious patterns."},
		{Name: "Budget Check", Passed: true, Detail: "Within $100 limit."},
	}
}
