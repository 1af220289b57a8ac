package swarm

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Scheduler invokes a tick function at a steady wall-clock cadence on a
// single goroutine. Ticks never overlap; intervals missed while a tick runs
// are dropped rather than replayed.
type Scheduler struct {
	interval time.Duration
	tick     func()
	log      *zap.Logger
	stopped  atomic.Bool
	count    atomic.Uint64
}

// NewScheduler creates a scheduler. A nil logger discards output.
func NewScheduler(interval time.Duration, tick func(), log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{interval: interval, tick: tick, log: log}
}

// Run ticks until ctx ends or Stop is called. It returns ctx.Err() when
// the context ended the loop and nil after Stop.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Debug("scheduler started", zap.Duration("interval", s.interval))
	defer func() {
		s.log.Debug("scheduler stopped", zap.Uint64("ticks", s.count.Load()))
	}()

	for {
		if s.stopped.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.stopped.Load() {
				return nil
			}
			s.tick()
			s.count.Add(1)
		}
	}
}

// Stop ends Run before its next tick. Safe to call from any goroutine and
// from inside the tick function.
func (s *Scheduler) Stop() {
	s.stopped.Store(true)
}

// Ticks returns the number of ticks run so far.
func (s *Scheduler) Ticks() uint64 {
	return s.count.Load()
}
