package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("expected miss on empty cache")
	}

	if err := c.Set(ctx, "plan", `{"transfers":[]}`, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok := c.Get(ctx, "plan")
	if !ok || got != `{"transfers":[]}` {
		t.Errorf("Get = %q, %v; want stored value", got, ok)
	}

	if err := c.Delete(ctx, "plan"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := c.Get(ctx, "plan"); ok {
		t.Error("expected miss after delete")
	}

	// Deleting again is not an error.
	if err := c.Delete(ctx, "plan"); err != nil {
		t.Errorf("double delete: %v", err)
	}
}

func TestMemoryCacheTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if err := c.Set(ctx, "k", "v", time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestNoopCache(t *testing.T) {
	ctx := context.Background()
	var c Cache = Noop{}

	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("noop cache must always miss")
	}
}
