package transparency

import (
	"bytes"
	"encoding/json"
	"io"

	"trustview/internal/types"
)

// ResultSummary is the "Execution Result" pane.
type ResultSummary struct {
	Status         types.Status `json:"status"`
	Message        string       `json:"message"`
	StepsCompleted int          `json:"steps_completed"`
	TotalSteps     int          `json:"total_steps"`
}

// Explanation holds both payload panes of the drill-down.
type Explanation struct {
	Raw    any
	Result ResultSummary
}

// FormatRawIntent parses the Orchestrator's raw intent text for display.
// Valid JSON decodes to its structural value; empty or malformed text is
// wrapped as {"raw": raw} so the pane always renders.
func FormatRawIntent(raw string) any {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return map[string]any{"raw": raw}
	}
	// Anything after the first document, stray closers included, means the
	// text was not a single JSON value.
	if _, err := dec.Token(); err != io.EOF {
		return map[string]any{"raw": raw}
	}
	return v
}

// SummarizeResult builds the result pane from the detail record.
func SummarizeResult(detail types.IntentDetail) ResultSummary {
	return ResultSummary{
		Status:         detail.Status,
		Message:        detail.Message,
		StepsCompleted: detail.CompletedSteps(),
		TotalSteps:     len(detail.Steps),
	}
}

// Explain prepares both panes for one intent.
func Explain(detail types.IntentDetail) Explanation {
	return Explanation{
		Raw:    FormatRawIntent(detail.RawIntent),
		Result: SummarizeResult(detail),
	}
}

// RawJSON returns the raw pane as indented JSON.
func (e Explanation) RawJSON() string {
	return indentJSON(e.Raw)
}

// ResultJSON returns the result pane as indented JSON.
func (e Explanation) ResultJSON() string {
	return indentJSON(e.Result)
}

func indentJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		// Only reachable for values FormatRawIntent never produces.
		return "{}"
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
