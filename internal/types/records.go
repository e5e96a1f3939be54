package types

// =============================================================================
// ORCHESTRATOR RECORDS
// =============================================================================
//
// These are the shapes the Orchestrator reports over /intents and /status/{id}.
// The dashboard treats every record as an immutable snapshot.

// Status is the lifecycle state of an intent or of one of its steps.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// IsTerminal reports whether the Orchestrator has finished with the record.
// Unknown values are never terminal.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// IsKnown reports whether s is one of the three documented states.
func (s Status) IsKnown() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	}
	return false
}

// Intent is one submitted user request as it appears in the activity log.
type Intent struct {
	IntentID  string `json:"intent_id"`
	Status    Status `json:"status"`
	CreatedAt int64  `json:"created_at"` // epoch seconds
	Message   string `json:"message"`
}

// Step is one execution action inside an intent's plan.
// TxHash and Error are optional; an empty value means "not applicable".
type Step struct {
	StepIndex int    `json:"step_index"`
	Action    string `json:"action"`
	Status    Status `json:"status"`
	TxHash    string `json:"tx_hash,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HasTxHash reports whether the step was broadcast.
func (s Step) HasTxHash() bool { return s.TxHash != "" }

// HasError reports whether the Orchestrator recorded an error for the step.
func (s Step) HasError() bool { return s.Error != "" }

// IntentDetail is the drill-down record fetched lazily per intent.
type IntentDetail struct {
	Intent
	RawIntent string `json:"raw_intent"`
	Steps     []Step `json:"steps"`
}

// CompletedSteps counts steps that finished successfully.
func (d IntentDetail) CompletedSteps() int {
	n := 0
	for _, s := range d.Steps {
		if s.Status == StatusSuccess {
			n++
		}
	}
	return n
}
