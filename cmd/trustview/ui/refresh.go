package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultRefreshInterval is the auto refresh period.
const DefaultRefreshInterval = 5 * time.Second

// refreshTickMsg fires when an auto refresh is due. gen identifies the
// schedule it belongs to; ticks from a stopped schedule are ignored.
type refreshTickMsg struct {
	gen int
}

// Refresher schedules auto refresh cycles. It is a value owned by the
// dashboard model and never runs goroutines of its own: each tick is a
// tea.Tick command, and the next one is scheduled only when the dashboard
// reports the current cycle finished.
type Refresher struct {
	interval time.Duration
	enabled  bool
	gen      int
	inFlight bool
}

// NewRefresher creates a stopped refresher.
func NewRefresher(interval time.Duration) Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return Refresher{interval: interval}
}

// Interval returns the refresh period.
func (r Refresher) Interval() time.Duration { return r.interval }

// Enabled reports whether auto refresh is on.
func (r Refresher) Enabled() bool { return r.enabled }

// Start enables auto refresh and schedules the first tick.
func (r *Refresher) Start() tea.Cmd {
	if r.enabled {
		return nil
	}
	r.enable()
	return r.schedule()
}

func (r *Refresher) enable() {
	r.enabled = true
	r.gen++
}

// Stop disables auto refresh. Any tick already scheduled becomes stale.
func (r *Refresher) Stop() {
	r.enabled = false
	r.inFlight = false
	r.gen++
}

// Toggle flips auto refresh and returns the command to run, if any.
func (r *Refresher) Toggle() tea.Cmd {
	if r.enabled {
		r.Stop()
		return nil
	}
	return r.Start()
}

// Accept reports whether msg belongs to the live schedule. An accepted tick
// marks a cycle in flight until CycleDone.
func (r *Refresher) Accept(msg refreshTickMsg) bool {
	if !r.enabled || msg.gen != r.gen {
		return false
	}
	r.inFlight = true
	return true
}

// CycleDone schedules the next tick after a cycle that was started by Accept.
// Cycles started manually do not reschedule.
func (r *Refresher) CycleDone() tea.Cmd {
	if !r.enabled || !r.inFlight {
		return nil
	}
	r.inFlight = false
	return r.schedule()
}

func (r *Refresher) schedule() tea.Cmd {
	gen := r.gen
	return tea.Tick(r.interval, func(time.Time) tea.Msg {
		return refreshTickMsg{gen: gen}
	})
}
