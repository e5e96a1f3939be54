package ui

import "testing"

func TestRenderCacheEvictsLeastRecentlyUsed(t *testing.T) {
	rc := NewRenderCache(2)
	k1, k2, k3 := ComputeKey("a"), ComputeKey("b"), ComputeKey("c")

	rc.Set(k1, "one")
	rc.Set(k2, "two")
	if _, ok := rc.Get(k1); !ok { // k1 becomes most recent
		t.Fatalf("expected k1")
	}
	rc.Set(k3, "three")

	if _, ok := rc.Get(k2); ok {
		t.Fatalf("k2 should have been evicted")
	}
	if v, ok := rc.Get(k1); !ok || v != "one" {
		t.Fatalf("k1 should survive, got %q %v", v, ok)
	}
	if rc.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", rc.Len())
	}
}

func TestRenderCacheGetOrCompute(t *testing.T) {
	rc := NewRenderCache(0)
	calls := 0
	compute := func() string { calls++; return "rendered" }

	key := ComputeKey("intent", 80, true)
	rc.GetOrCompute(key, compute)
	rc.GetOrCompute(key, compute)
	if calls != 1 {
		t.Fatalf("expected one compute, got %d", calls)
	}

	rc.Clear()
	rc.GetOrCompute(key, compute)
	if calls != 2 {
		t.Fatalf("expected recompute after Clear, got %d", calls)
	}
}

func TestComputeKeySeparatesInputs(t *testing.T) {
	if ComputeKey("ab", "c") == ComputeKey("a", "bc") {
		t.Fatalf("keys must differ when input boundaries differ")
	}
	if ComputeKey(int64(1), 2) != ComputeKey(int64(1), 2) {
		t.Fatalf("keys must be deterministic")
	}
}
