package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryServiceRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()

	var got sample
	if err := svc.Get(ctx, "missing", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected cache miss, got %v", err)
	}

	if err := svc.Set(ctx, "k", sample{Name: "gate", Count: 2}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := svc.Get(ctx, "k", &got); err != nil || got.Name != "gate" || got.Count != 2 {
		t.Fatalf("unexpected value %+v err=%v", got, err)
	}
	if !svc.Exists(ctx, "k") {
		t.Error("expected key to exist")
	}
}

func TestMemoryServiceExpiry(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService().(*memoryService)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.Set(ctx, "k", 1, time.Second)
	now = now.Add(2 * time.Second)

	var v int
	if err := svc.Get(ctx, "k", &v); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expired key to miss, got %v", err)
	}
}

func TestMemoryServiceDeletePattern(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()
	svc.Set(ctx, "etik:shows:event:1", 1, 0)
	svc.Set(ctx, "etik:shows:event:2", 2, 0)
	svc.Set(ctx, "etik:station:gate", 3, 0)

	if err := svc.DeletePattern(ctx, "etik:shows:*"); err != nil {
		t.Fatalf("delete pattern: %v", err)
	}
	if svc.Exists(ctx, "etik:shows:event:1") || svc.Exists(ctx, "etik:shows:event:2") {
		t.Error("show keys should be gone")
	}
	if !svc.Exists(ctx, "etik:station:gate") {
		t.Error("station key should survive")
	}
}

func TestMemoryServiceGetOrSet(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()
	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return sample{Name: "fetched"}, nil
	}

	for i := 0; i < 2; i++ {
		var got sample
		if err := svc.GetOrSet(ctx, "k", time.Minute, fetch, &got); err != nil || got.Name != "fetched" {
			t.Fatalf("unexpected result %+v err=%v", got, err)
		}
	}
	if calls != 1 {
		t.Errorf("fetcher should run once, ran %d times", calls)
	}

	boom := errors.New("boom")
	var got sample
	err := svc.GetOrSet(ctx, "other", time.Minute, func() (interface{}, error) { return nil, boom }, &got)
	if !errors.Is(err, boom) {
		t.Errorf("expected fetcher error, got %v", err)
	}
}
