package kv

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/MrSnakeDoc/stash/internal/errs"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFile(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	if _, ok, _ := store.Get(ctx, "config"); ok {
		t.Error("Get() on empty store reported a value")
	}

	if err := store.Set(ctx, "config", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := store.Get(ctx, "config")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v, %v", got, ok, err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("Get() = %s", got)
	}

	if err := store.Delete(ctx, "config", "missing-key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := store.Get(ctx, "config"); ok {
		t.Error("Get() after Delete still reports a value")
	}
}

func TestFileStoreQuota(t *testing.T) {
	ctx := context.Background()
	store, err := NewFile(t.TempDir(), 16)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	if err := store.Set(ctx, "a", make([]byte, 10)); err != nil {
		t.Fatalf("Set() within quota error = %v", err)
	}
	err = store.Set(ctx, "b", make([]byte, 10))
	if !errors.Is(err, errs.ErrQuotaExceeded) {
		t.Fatalf("Set() over quota error = %v, want quota exceeded", err)
	}

	// Overwriting a key counts the replaced size, not twice.
	if err := store.Set(ctx, "a", make([]byte, 16)); err != nil {
		t.Errorf("Set() overwrite within quota error = %v", err)
	}

	usage, err := store.BytesInUse(ctx)
	if err != nil {
		t.Fatalf("BytesInUse() error = %v", err)
	}
	if usage != 16 {
		t.Errorf("BytesInUse() = %d, want 16", usage)
	}
	if store.Quota() != 16 {
		t.Errorf("Quota() = %d, want 16", store.Quota())
	}
}

func TestFileStoreUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	store, err := NewFile(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	for _, key := range []string{"../escape", "a/b", "", ".hidden", "with space"} {
		if err := store.Set(ctx, key, []byte("v")); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
		got, ok, err := store.Get(ctx, key)
		if err != nil || !ok || string(got) != "v" {
			t.Errorf("Get(%q) = %s, %v, %v", key, got, ok, err)
		}
	}
}

func TestMemoryStoreQuota(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(8)

	if err := store.Set(ctx, "k", []byte("1234567")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(ctx, "k2", []byte("xxxxxxxx")); !errors.Is(err, errs.ErrQuotaExceeded) {
		t.Errorf("Set() over quota error = %v, want quota exceeded", err)
	}
}
