// Package orchestrator reads intent records from the Orchestrator, either
// over its HTTP API or through a Source implemented elsewhere (the offline
// SQLite store). Results are plain types.* records; interpretation lives in
// the transparency package.
package orchestrator

import (
	"context"

	"trustview/internal/types"
)

// Source is the read-only view of the Orchestrator that the dashboard
// consumes. wallet is the X-User-Address filter; empty means all intents.
type Source interface {
	ListIntents(ctx context.Context, wallet string) ([]types.Intent, error)
	GetIntent(ctx context.Context, intentID, wallet string) (*types.IntentDetail, error)
}

// HealthChecker is implemented by sources that can report liveness.
type HealthChecker interface {
	Health(ctx context.Context) (*HealthStatus, error)
}

// HealthStatus is the /health payload.
type HealthStatus struct {
	Status string `json:"status"`
}

// OK reports whether the Orchestrator declared itself healthy.
func (h *HealthStatus) OK() bool {
	return h != nil && h.Status == "ok"
}
