package transparency

import (
	"testing"

	"trustview/internal/types"
)

func TestSummarizeCounts(t *testing.T) {
	intents := []types.Intent{
		{IntentID: "a", Status: types.StatusSuccess},
		{IntentID: "b", Status: types.StatusFailed},
		{IntentID: "c", Status: types.StatusPending},
		{IntentID: "d", Status: types.StatusSuccess},
		{IntentID: "e", Status: "queued"},
	}
	got := Summarize(intents)
	want := Counters{Total: 5, Success: 2, Failed: 1, Pending: 2}
	if got != want {
		t.Fatalf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestSummarizeInvariant(t *testing.T) {
	statuses := []types.Status{types.StatusSuccess, types.StatusFailed, types.StatusPending, ""}
	for n := 0; n < 40; n++ {
		var intents []types.Intent
		for i := 0; i < n; i++ {
			intents = append(intents, types.Intent{Status: statuses[(i*7+n)%len(statuses)]})
		}
		c := Summarize(intents)
		if c.Success+c.Failed+c.Pending != c.Total {
			t.Fatalf("counters do not add up: %+v", c)
		}
		if c.Total < 0 || c.Success < 0 || c.Failed < 0 || c.Pending < 0 {
			t.Fatalf("negative counter: %+v", c)
		}
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	a := []types.Intent{{Status: types.StatusFailed}, {Status: types.StatusSuccess}, {Status: types.StatusPending}}
	b := []types.Intent{a[2], a[0], a[1]}
	if Summarize(a) != Summarize(b) {
		t.Fatalf("expected order-independent counters")
	}
	if (Summarize(nil) != Counters{}) {
		t.Fatalf("expected zero counters for empty list")
	}
}
