package cache

import (
	"context"
	"testing"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/store/kv"
)

func newTestCache() *Cache {
	return New(kv.NewMemory(0), logger.Nop())
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()

	if c.Load(ctx) != nil {
		t.Error("Load() on empty cache returned a config")
	}
	if _, ok := c.Timestamp(ctx); ok {
		t.Error("Timestamp() on empty cache reported a value")
	}

	cfg := &domain.Config{
		Sections:     []*domain.Section{{ID: "s1", Name: "Work", Items: []domain.Item{}}},
		Version:      domain.SchemaVersion,
		LastModified: 1000,
	}
	c.Save(ctx, cfg)

	got := c.Load(ctx)
	if got == nil || len(got.Sections) != 1 || got.Sections[0].Name != "Work" {
		t.Fatalf("Load() = %v", got)
	}
	ts, ok := c.Timestamp(ctx)
	if !ok || ts != 1000 {
		t.Errorf("Timestamp() = %d, %v, want 1000, true", ts, ok)
	}

	c.Clear(ctx)
	if c.Load(ctx) != nil {
		t.Error("Load() after Clear returned a config")
	}
}

func TestCacheIsValid(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()
	c.Save(ctx, &domain.Config{Version: domain.SchemaVersion, LastModified: 1000})

	tests := []struct {
		name     string
		remoteTS int64
		want     bool
	}{
		{name: "cache newer than remote", remoteTS: 500, want: true},
		{name: "cache equal to remote", remoteTS: 1000, want: true},
		{name: "cache older than remote", remoteTS: 2000, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsValid(ctx, tt.remoteTS); got != tt.want {
				t.Errorf("IsValid(%d) = %v, want %v", tt.remoteTS, got, tt.want)
			}
		})
	}

	if newTestCache().IsValid(ctx, 0) {
		t.Error("IsValid() on empty cache = true")
	}
}
