package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"

	"github.com/openqs/heom/internal/adapters/redis"
	"github.com/openqs/heom/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redis.Option) *redis.Store {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	store := newTestStore(t)
	ports.RunResultStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	store := newTestStore(t, redis.WithPrefix("other:"), redis.WithTTL(time.Hour))
	ctx := context.Background()

	rec := &ports.SimulationRecord{ID: "a", Status: ports.StatusCompleted}
	if err := store.Save(ctx, "a", rec); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := store.Load(ctx, "a")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Status != ports.StatusCompleted {
		t.Errorf("unexpected status %q", got.Status)
	}
}
