// Package saver coalesces bursts of save requests into at most one
// in-flight remote write. The coordinator is an explicit state machine
// (Idle -> Scheduled -> Saving -> Idle) rather than closures over mutable
// flags, so the pending-override behavior is testable in isolation.
package saver

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/logger"
)

// DefaultDelay is the debounce window for scheduled saves.
const DefaultDelay = 1 * time.Second

// State is the coordinator's lifecycle state.
type State int

const (
	// Idle: nothing scheduled, nothing in flight.
	Idle State = iota
	// Scheduled: a payload is waiting on the debounce timer.
	Scheduled
	// Saving: a write is in flight. A Schedule call in this state is not
	// re-debounced; it becomes the single pending payload executed right
	// after the current write completes.
	Saving
)

// SaveFunc performs the underlying write.
type SaveFunc func(ctx context.Context, cfg *domain.Config) error

// Saver is a debounced save coordinator. Safe for concurrent use.
type Saver struct {
	save    SaveFunc
	delay   time.Duration
	logger  logger.Logger
	onError func(error) // debounce-path failures land here, not on a caller

	mu        sync.Mutex
	cond      *sync.Cond
	state     State
	timer     *time.Timer
	scheduled *domain.Config // payload waiting on the timer
	pending   *domain.Config // payload superseding everything once the in-flight write ends
	stopped   bool
}

// New creates a coordinator. onError may be nil; debounce-path failures
// are then only logged.
func New(save SaveFunc, delay time.Duration, log logger.Logger, onError func(error)) *Saver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	s := &Saver{
		save:    save,
		delay:   delay,
		logger:  log,
		onError: onError,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Schedule requests a debounced save of cfg. While Idle or Scheduled it
// (re)arms the timer with cfg as the payload, superseding any earlier
// still-scheduled payload. While Saving it records cfg as the pending
// payload; only the most recent one survives.
func (s *Saver) Schedule(cfg *domain.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	if s.state == Saving {
		s.logger.Debug("save in flight, recording pending payload")
		s.pending = cfg
		return
	}

	s.scheduled = cfg
	if s.timer != nil {
		s.timer.Stop()
	}
	s.state = Scheduled
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// fire is the timer callback: it promotes the scheduled payload into an
// in-flight write.
func (s *Saver) fire() {
	s.mu.Lock()
	if s.state != Scheduled || s.scheduled == nil {
		s.mu.Unlock()
		return
	}
	cfg := s.scheduled
	s.scheduled = nil
	s.timer = nil
	s.state = Saving
	s.mu.Unlock()

	s.run(cfg, func(err error) {
		s.logger.Error("debounced save failed", logger.Error(err))
		if s.onError != nil {
			s.onError(err)
		}
	})
}

// run performs the write and then drains any pending payloads that arrived
// while it was in flight. Every error goes through report.
func (s *Saver) run(cfg *domain.Config, report func(error)) {
	for {
		if err := s.save(context.Background(), cfg); err != nil {
			report(err)
		}

		s.mu.Lock()
		if s.pending != nil {
			cfg = s.pending
			s.pending = nil
			s.mu.Unlock()
			s.logger.Debug("executing pending save")
			continue
		}
		s.state = Idle
		s.cond.Broadcast()
		s.mu.Unlock()
		return
	}
}

// Flush cancels any pending debounce timer and saves cfg synchronously,
// waiting for an in-flight write to finish first. The write error, if any,
// is returned to the caller. This is the flush-on-exit and migration path.
func (s *Saver) Flush(ctx context.Context, cfg *domain.Config) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.scheduled = nil
	for s.state == Saving {
		s.cond.Wait()
	}
	s.state = Saving
	s.mu.Unlock()

	err := s.save(ctx, cfg)

	// A Schedule call may have landed while the flush was writing; drain it
	// in the background on the debounce error path.
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	if pending == nil {
		s.state = Idle
		s.cond.Broadcast()
	}
	s.mu.Unlock()

	if pending != nil {
		go s.run(pending, func(err error) {
			s.logger.Error("pending save failed", logger.Error(err))
			if s.onError != nil {
				s.onError(err)
			}
		})
	}
	return err
}

// HasPending reports whether a payload is waiting behind an in-flight write.
func (s *Saver) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// State returns the current lifecycle state.
func (s *Saver) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Shutdown refuses further scheduling, writes any still-scheduled payload
// immediately and waits for an in-flight write to finish. This is the
// process-exit path: a burst of edits right before shutdown still lands.
func (s *Saver) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	cfg := s.scheduled
	s.scheduled = nil
	for s.state == Saving {
		s.cond.Wait()
	}
	if cfg == nil {
		s.state = Idle
		s.mu.Unlock()
		return nil
	}
	s.state = Saving
	s.mu.Unlock()

	err := s.save(ctx, cfg)

	s.mu.Lock()
	s.pending = nil
	s.state = Idle
	s.cond.Broadcast()
	s.mu.Unlock()
	return err
}

// Stop cancels any scheduled save and refuses further scheduling. An
// in-flight write is left to finish.
func (s *Saver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.scheduled = nil
	if s.state == Scheduled {
		s.state = Idle
	}
}
