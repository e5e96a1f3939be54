// Package transparency turns raw Orchestrator records into the trust
// narrative shown by the dashboard.
//
// Everything here is a pure function of its inputs:
//
//   - ClassifyFailure: why a failed intent was stopped
//   - EvaluateBalance / SafetyChecks: the pre-execution check panel
//   - DeriveStages: the workflow timeline for one snapshot
//   - Explain: the raw intent and execution result panes
//   - Summarize: the overview counters
//
// ClassifyTransportError is the one piece that looks at dashboard-side
// errors instead of Orchestrator records; it feeds the error banner.
package transparency
