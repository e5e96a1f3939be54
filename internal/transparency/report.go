package transparency

import (
	"fmt"
	"strings"
	"time"

	"trustview/internal/types"
)

// FormatReport renders the full drill-down for one intent as Markdown:
// interception banner, safety checks, workflow timeline and both payloads.
func FormatReport(detail types.IntentDetail, loc *time.Location) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Intent `%s`\n\n", detail.IntentID))
	sb.WriteString(fmt.Sprintf("**Status**: %s\n\n", statusLabel(detail.Status)))

	if banner := Interception(detail); banner != nil {
		sb.WriteString(FormatBanner(banner))
		sb.WriteString("\n")
	}

	sb.WriteString("## 🛡️ Simulation & Checks\n\n")
	for _, c := range SafetyChecks(detail) {
		sb.WriteString(fmt.Sprintf("- %s **%s**: %s\n", c.Icon(), c.Name, c.Detail))
	}
	sb.WriteString("\n")

	sb.WriteString("## 🚦 Workflow Execution\n\n")
	sb.WriteString(FormatStages(DeriveStages(detail, loc)))
	sb.WriteString("\n")

	exp := Explain(detail)
	sb.WriteString("## 🧐 Explainability Log\n\n")
	sb.WriteString("### Raw Intent (JSON)\n\n")
	sb.WriteString("```json\n" + exp.RawJSON() + "\n```\n\n")
	sb.WriteString("### Execution Result\n\n")
	sb.WriteString("```json\n" + exp.ResultJSON() + "\n```\n")

	return sb.String()
}

// FormatStages renders the stage timeline as a numbered Markdown list.
func FormatStages(stages []types.Stage) string {
	var sb strings.Builder
	for i, st := range stages {
		switch {
		case st.Label == StageReceived && st.Detail != "":
			sb.WriteString(fmt.Sprintf("%d. **%s** `@%s` %s\n", i+1, st.Label, st.Detail, st.State.Icon()))
		default:
			sb.WriteString(fmt.Sprintf("%d. **%s** %s\n", i+1, st.Label, st.State.Icon()))
		}
		if st.TxHash != "" {
			sb.WriteString(fmt.Sprintf("   - Tx: `%s`\n", st.TxHash))
		}
		if st.Error != "" {
			sb.WriteString(fmt.Sprintf("   - Error: %s\n", st.Error))
		}
	}
	return sb.String()
}

func statusLabel(s types.Status) string {
	if s == "" {
		return "unknown"
	}
	return string(s)
}
