package ports

import (
	"context"
	"testing"
	"time"
)

// RunResultStoreContract is a reusable test suite that verifies an adapter
// complies with ResultStore. Adapter tests call it with a fresh store.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	t.Helper()
	ctx := context.Background()

	rec := &SimulationRecord{
		ID:        "sim-1",
		Status:    StatusCompleted,
		Submitted: time.Now().UTC().Truncate(time.Second),
		NumADOs:   10,
		Times:     []float64{0, 0.5, 1},
		Expect:    map[string][]float64{"sz": {1, 0.9, 0.8}},
	}

	t.Run("SaveAndLoad", func(t *testing.T) {
		if err := store.Save(ctx, rec.ID, rec); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		got, err := store.Load(ctx, rec.ID)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got.Status != rec.Status || got.NumADOs != rec.NumADOs {
			t.Errorf("record mismatch: got %+v, want %+v", got, rec)
		}
		if len(got.Expect["sz"]) != 3 {
			t.Errorf("expectation trajectory lost: %+v", got.Expect)
		}
	})

	t.Run("LoadIsolated", func(t *testing.T) {
		got, err := store.Load(ctx, rec.ID)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		got.Status = "mutated"
		again, err := store.Load(ctx, rec.ID)
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if again.Status == "mutated" {
			t.Error("store leaked a mutable reference to its internal record")
		}
	})

	t.Run("LoadMissing", func(t *testing.T) {
		_, err := store.Load(ctx, "does-not-exist")
		if err != ErrSimulationNotFound {
			t.Errorf("expected ErrSimulationNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		if err := store.Save(ctx, "sim-2", &SimulationRecord{ID: "sim-2", Status: StatusRunning}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		found := map[string]bool{}
		for _, id := range ids {
			found[id] = true
		}
		if !found["sim-1"] || !found["sim-2"] {
			t.Errorf("missing IDs in list: %v", ids)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "sim-2"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Load(ctx, "sim-2"); err != ErrSimulationNotFound {
			t.Errorf("expected ErrSimulationNotFound after delete, got %v", err)
		}
	})
}
