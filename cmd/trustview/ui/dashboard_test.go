package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"trustview/internal/transparency"
	"trustview/internal/types"
)

func TestDashboardShowsCountersAndActivity(t *testing.T) {
	m := loaded(t, scenarioSource())

	want := transparency.Counters{Total: 3, Success: 1, Failed: 1, Pending: 1}
	if m.counters != want {
		t.Fatalf("counters = %+v, want %+v", m.counters, want)
	}
	if m.Loading() {
		t.Fatalf("expected no outstanding fetch after the first list")
	}

	view := m.View()
	for _, s := range []string{"Total", "Success", "Failed", "Pending", "intent-failed", "intent-ok", "execution reverted"} {
		if !strings.Contains(view, s) {
			t.Fatalf("expected %q in view", s)
		}
	}
}

func TestDashboardEmptyOnListError(t *testing.T) {
	src := scenarioSource()
	src.listErr = errors.New("dial tcp 127.0.0.1:8081: connect: connection refused")
	m := loaded(t, src)

	if m.counters.Total != 0 {
		t.Fatalf("expected zero counters on error, got %+v", m.counters)
	}
	view := m.View()
	if !strings.Contains(view, "No intents found or server unreachable.") {
		t.Fatalf("expected empty-state message")
	}
	if !strings.Contains(view, "Connection error") {
		t.Fatalf("expected classified error banner")
	}
}

func TestDashboardOpensDetailAndGoesBack(t *testing.T) {
	src := scenarioSource()
	m := loaded(t, src)

	// Newest first: intent-failed is at the top.
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Page() != DetailPage {
		t.Fatalf("expected detail page after enter")
	}
	if !m.Loading() {
		t.Fatalf("expected loading while detail is fetched")
	}
	m = settle(t, m, cmd)

	view := m.View()
	for _, s := range []string{
		"PREVENTED: Contract Rejection",
		"No funds were lost.",
		"Executing Step 2/2: swap",
		"Audit Log Finalized",
		"Raw Intent (JSON)",
		"1000000000000000000",
	} {
		if !strings.Contains(view, s) {
			t.Fatalf("expected %q in detail view", s)
		}
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Page() != ActivityPage {
		t.Fatalf("expected activity page after esc")
	}
}

func TestDashboardDetailNotFound(t *testing.T) {
	src := scenarioSource()
	m := loaded(t, src)
	delete(src.details, "intent-failed")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(t, m, cmd)

	if !strings.Contains(m.View(), "Intent intent-failed not found.") {
		t.Fatalf("expected not-found warning")
	}
}

func TestManualRefreshInvalidatesCache(t *testing.T) {
	src := scenarioSource()
	inv := &countingInvalidator{}
	opts := testOptions(src)
	opts.Cache = inv
	m := New(opts)
	m = settle(t, m, m.fetchList())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if inv.n != 1 {
		t.Fatalf("expected one invalidation, got %d", inv.n)
	}
	_ = settle(t, m, cmd)
	if src.listCalls != 2 {
		t.Fatalf("expected a second list fetch, got %d", src.listCalls)
	}
}

func TestWalletChangeRefetchesWithHeader(t *testing.T) {
	src := scenarioSource()
	m := loaded(t, src)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	for _, r := range "0xabc" {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Wallet() != "0xabc" {
		t.Fatalf("wallet = %q", m.Wallet())
	}
	_ = settle(t, m, cmd)

	if got := src.wallets[len(src.wallets)-1]; got != "0xabc" {
		t.Fatalf("expected fetch with wallet 0xabc, got %q", got)
	}
}

func TestStaleWalletResultIgnored(t *testing.T) {
	src := scenarioSource()
	m := loaded(t, src)
	m.wallet = "0xnew"

	m, _ = update(t, m, listLoadedMsg{wallet: "", intents: []types.Intent{{IntentID: "stale"}}})
	if strings.Contains(m.View(), "stale") {
		t.Fatalf("result for a previous wallet must not be shown")
	}
}

func TestAutoRefreshCycle(t *testing.T) {
	src := scenarioSource()
	m := loaded(t, src)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if !m.AutoRefresh() || cmd == nil {
		t.Fatalf("expected auto refresh to start with a scheduled tick")
	}

	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one tick, got %d", len(msgs))
	}
	m, cmd = update(t, m, msgs[0])
	if !m.Loading() {
		t.Fatalf("expected tick to start a fetch cycle")
	}

	// The next tick is scheduled only once the cycle completes.
	for _, msg := range collect(cmd) {
		var next tea.Cmd
		m, next = update(t, m, msg)
		if next == nil {
			t.Fatalf("expected the completed cycle to schedule the next tick")
		}
		if _, ok := next().(refreshTickMsg); !ok {
			t.Fatalf("expected refresh tick")
		}
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if m.AutoRefresh() {
		t.Fatalf("expected auto refresh to stop")
	}
}

func TestFilterAndSortKeys(t *testing.T) {
	m := loaded(t, scenarioSource())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if m.activity.SortMode() != SortOldest {
		t.Fatalf("expected oldest-first after one s")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	for _, r := range "fail rev" {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if got := len(m.activity.Visible()); got != 1 {
		t.Fatalf("expected one filtered row, got %d", got)
	}
	// Typing while filtering must not trigger shortcuts.
	if m.AutoRefresh() {
		t.Fatalf("'a' inside the filter must not toggle auto refresh")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.activity.Filtering() || len(m.activity.Visible()) != 3 {
		t.Fatalf("esc should clear the filter")
	}
}

func TestQuit(t *testing.T) {
	m := loaded(t, scenarioSource())
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
