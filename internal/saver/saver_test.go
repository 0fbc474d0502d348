package saver

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/logger"
)

// recordingSave captures every write the coordinator performs.
type recordingSave struct {
	mu      sync.Mutex
	saved   []*domain.Config
	block   chan struct{} // when non-nil, the save blocks until closed
	err     error
	entered chan struct{} // when non-nil, signaled as a save starts
}

func (r *recordingSave) fn(ctx context.Context, cfg *domain.Config) error {
	if r.entered != nil {
		r.entered <- struct{}{}
	}
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	r.saved = append(r.saved, cfg)
	r.mu.Unlock()
	return r.err
}

func (r *recordingSave) snapshot() []*domain.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Config, len(r.saved))
	copy(out, r.saved)
	return out
}

func cfgWithTS(ts int64) *domain.Config {
	return &domain.Config{Version: domain.SchemaVersion, LastModified: ts}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestScheduleCoalescesBurst(t *testing.T) {
	rec := &recordingSave{}
	s := New(rec.fn, 30*time.Millisecond, logger.Nop(), nil)

	// Five rapid edits: exactly one write, carrying the last payload.
	for i := int64(1); i <= 5; i++ {
		s.Schedule(cfgWithTS(i))
	}

	waitFor(t, func() bool { return len(rec.snapshot()) == 1 })
	time.Sleep(60 * time.Millisecond) // no second write may follow

	saved := rec.snapshot()
	if len(saved) != 1 {
		t.Fatalf("writes = %d, want 1", len(saved))
	}
	if saved[0].LastModified != 5 {
		t.Errorf("written payload ts = %d, want 5 (most recent)", saved[0].LastModified)
	}
	if s.State() != Idle {
		t.Errorf("State() = %v, want Idle", s.State())
	}
}

func TestScheduleDuringSavingBecomesPending(t *testing.T) {
	rec := &recordingSave{
		block:   make(chan struct{}),
		entered: make(chan struct{}, 2),
	}
	s := New(rec.fn, 10*time.Millisecond, logger.Nop(), nil)

	s.Schedule(cfgWithTS(1))
	<-rec.entered // first write in flight and blocked

	// Edits landing while a write is in flight are not re-debounced; only
	// the most recent survives as the single pending payload.
	s.Schedule(cfgWithTS(2))
	s.Schedule(cfgWithTS(3))
	if !s.HasPending() {
		t.Error("HasPending() = false while a write is in flight")
	}

	close(rec.block)
	<-rec.entered // pending write starts

	waitFor(t, func() bool { return len(rec.snapshot()) == 2 })
	saved := rec.snapshot()
	if saved[0].LastModified != 1 || saved[1].LastModified != 3 {
		t.Errorf("writes = %d,%d want 1,3", saved[0].LastModified, saved[1].LastModified)
	}
	waitFor(t, func() bool { return s.State() == Idle })
}

func TestFlushWritesImmediatelyAndReturnsError(t *testing.T) {
	wantErr := errors.New("remote rejected")
	rec := &recordingSave{err: wantErr}
	s := New(rec.fn, time.Hour, logger.Nop(), nil) // debounce would never fire

	s.Schedule(cfgWithTS(1))
	err := s.Flush(context.Background(), cfgWithTS(2))
	if !errors.Is(err, wantErr) {
		t.Fatalf("Flush() error = %v, want %v", err, wantErr)
	}

	saved := rec.snapshot()
	if len(saved) != 1 {
		t.Fatalf("writes = %d, want 1 (scheduled payload superseded)", len(saved))
	}
	if saved[0].LastModified != 2 {
		t.Errorf("written payload ts = %d, want 2", saved[0].LastModified)
	}
}

func TestDebounceErrorReportedViaCallback(t *testing.T) {
	wantErr := errors.New("write failed")
	rec := &recordingSave{err: wantErr}

	var mu sync.Mutex
	var got error
	s := New(rec.fn, 10*time.Millisecond, logger.Nop(), func(err error) {
		mu.Lock()
		got = err
		mu.Unlock()
	})

	s.Schedule(cfgWithTS(1))
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil
	})
	mu.Lock()
	defer mu.Unlock()
	if !errors.Is(got, wantErr) {
		t.Errorf("onError got %v, want %v", got, wantErr)
	}
}

func TestShutdownFlushesScheduledPayload(t *testing.T) {
	rec := &recordingSave{}
	s := New(rec.fn, time.Hour, logger.Nop(), nil)

	s.Schedule(cfgWithTS(7))
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	saved := rec.snapshot()
	if len(saved) != 1 || saved[0].LastModified != 7 {
		t.Fatalf("writes = %v, want the scheduled payload", saved)
	}

	// Scheduling after shutdown is a no-op.
	s.Schedule(cfgWithTS(8))
	time.Sleep(20 * time.Millisecond)
	if len(rec.snapshot()) != 1 {
		t.Error("Schedule() after Shutdown still wrote")
	}
}

func TestStopCancelsScheduledSave(t *testing.T) {
	rec := &recordingSave{}
	s := New(rec.fn, 10*time.Millisecond, logger.Nop(), nil)

	s.Schedule(cfgWithTS(1))
	s.Stop()

	time.Sleep(50 * time.Millisecond)
	if len(rec.snapshot()) != 0 {
		t.Error("Stop() did not cancel the scheduled save")
	}
	if s.State() != Idle {
		t.Errorf("State() = %v, want Idle", s.State())
	}
}
