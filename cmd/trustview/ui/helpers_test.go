package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"trustview/internal/orchestrator"
	"trustview/internal/types"
)

const testCreatedAt = 1700000000

type fakeSource struct {
	mu          sync.Mutex
	intents     []types.Intent
	details     map[string]*types.IntentDetail
	listErr     error
	listCalls   int
	detailCalls int
	wallets     []string
}

func (f *fakeSource) ListIntents(ctx context.Context, wallet string) ([]types.Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.wallets = append(f.wallets, wallet)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.intents, nil
}

func (f *fakeSource) GetIntent(ctx context.Context, id, wallet string) (*types.IntentDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls++
	d, ok := f.details[id]
	if !ok {
		return nil, orchestrator.ErrNotFound
	}
	return d, nil
}

type countingInvalidator struct{ n int }

func (c *countingInvalidator) Invalidate() { c.n++ }

func scenarioSource() *fakeSource {
	failed := &types.IntentDetail{
		Intent: types.Intent{
			IntentID:  "intent-failed",
			Status:    types.StatusFailed,
			CreatedAt: testCreatedAt + 20,
			Message:   "execution reverted",
		},
		RawIntent: `{"action":"swap","amount":"1000000000000000000"}`,
		Steps: []types.Step{
			{StepIndex: 0, Action: "approve", Status: types.StatusSuccess, TxHash: "0xabc"},
			{StepIndex: 1, Action: "swap", Status: types.StatusFailed, Error: "reverted"},
		},
	}
	ok := &types.IntentDetail{
		Intent: types.Intent{
			IntentID:  "intent-ok",
			Status:    types.StatusSuccess,
			CreatedAt: testCreatedAt + 10,
			Message:   "Transaction executed successfully",
		},
		RawIntent: `{"action":"transfer"}`,
		Steps:     []types.Step{{StepIndex: 0, Action: "transfer", Status: types.StatusSuccess, TxHash: "0xdef"}},
	}
	pending := &types.IntentDetail{
		Intent: types.Intent{
			IntentID:  "intent-pending",
			Status:    types.StatusPending,
			CreatedAt: testCreatedAt,
		},
	}
	return &fakeSource{
		intents: []types.Intent{pending.Intent, ok.Intent, failed.Intent},
		details: map[string]*types.IntentDetail{
			failed.IntentID:  failed,
			ok.IntentID:      ok,
			pending.IntentID: pending,
		},
	}
}

func testOptions(src orchestrator.Source) Options {
	return Options{
		Source:          src,
		Location:        time.UTC,
		Timeout:         time.Second,
		RefreshInterval: 10 * time.Millisecond,
		Theme:           "light",
		GlamourStyle:    "notty",
	}
}

// update feeds msg to the model and returns the concrete type.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// collect runs cmd and flattens batches into the messages they produce.
// Spinner ticks are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case nil:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

// settle feeds every message produced by cmd back into the model once.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case listLoadedMsg, detailLoadedMsg:
			m, _ = update(t, m, msg)
		}
	}
	return m
}

func loaded(t *testing.T, src *fakeSource) Model {
	t.Helper()
	m := New(testOptions(src))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 200, Height: 120})
	return settle(t, m, m.fetchList())
}
