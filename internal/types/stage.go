package types

// StageState is the display state of a derived workflow stage.
type StageState string

const (
	StageDone    StageState = "done"
	StagePending StageState = "pending"
	StageError   StageState = "error"
)

// Icon returns the timeline glyph for the state.
func (s StageState) Icon() string {
	switch s {
	case StageDone:
		return "✅"
	case StageError:
		return "❌"
	default:
		return "⏳"
	}
}

// Stage is a display-only timeline entry. It is recomputed from an
// IntentDetail on every render and never persisted.
type Stage struct {
	Label  string     `json:"label"`
	State  StageState `json:"state"`
	Detail string     `json:"detail,omitempty"`

	// Populated for step stages only.
	TxHash string `json:"tx_hash,omitempty"`
	Error  string `json:"error,omitempty"`
}
