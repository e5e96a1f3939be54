package transparency

import (
	"fmt"
	"strings"

	"trustview/internal/types"
)

// NoFundsLost closes every interception banner.
const NoFundsLost = "No funds were lost."

// Banner is the safety-interception notice shown for a failed intent.
type Banner struct {
	Category    FailureCategory
	Title       string
	Explanation string
	Assurance   string
	Message     string // the Orchestrator's own message
}

// Interception returns the banner for a failed intent, or nil otherwise.
func Interception(detail types.IntentDetail) *Banner {
	category := ClassifyFailure(detail.Status, detail.Message)
	if category == FailureNone {
		return nil
	}

	b := &Banner{
		Category:  category,
		Assurance: NoFundsLost,
		Message:   detail.Message,
	}

	switch category {
	case FailureBalanceBlock:
		b.Title = "PREVENTED: Balance Insufficient"
		b.Explanation = "The Orchestrator blocked this transaction because the wallet lacks gas fees."

	case FailureContractReject:
		b.Title = "PREVENTED: Contract Rejection"
		b.Explanation = "The destination contract rejected the transaction (reverted). " +
			"This usually means invalid parameters or unauthorized access."

	default:
		b.Title = "PREVENTED: Unsafe Transaction"
		b.Explanation = "The Orchestrator blocked this transaction due to a simulation failure."
	}

	return b
}

// FormatBanner returns the banner as a Markdown block.
func FormatBanner(b *Banner) string {
	if b == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("> 🛑 **%s**\n>\n", b.Title))
	sb.WriteString(fmt.Sprintf("> %s **%s**\n", b.Explanation, b.Assurance))
	if b.Message != "" {
		sb.WriteString(fmt.Sprintf(">\n> *Orchestrator: %s*\n", b.Message))
	}
	return sb.String()
}
