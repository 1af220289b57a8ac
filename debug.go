package swarm

import (
	"time"

	"go.uber.org/zap"
)

// debugStats accumulates tick timings between debug log lines.
// Only populated when Config.Debug is true.
type debugStats struct {
	count    int
	total    time.Duration
	slowest  time.Duration
	lastTick time.Duration
}

func (d *debugStats) record(elapsed time.Duration) {
	d.count++
	d.total += elapsed
	d.lastTick = elapsed
	if elapsed > d.slowest {
		d.slowest = elapsed
	}
}

func (d *debugStats) reset() {
	*d = debugStats{lastTick: d.lastTick}
}

// Stats is a snapshot of simulation health.
type Stats struct {
	Ticks uint64
	// MeanTargetDistance is the average distance from each particle to its
	// unscaled target.
	MeanTargetDistance float64
	Explosion          float64
	BoundsMin          Vec3
	BoundsMax          Vec3
	LastTick           time.Duration
}

// Stats computes a health snapshot. It walks every particle, so call it at
// reporting cadence rather than every frame.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked()
}

func (s *Session) statsLocked() Stats {
	lo, hi := s.store.Bounds()
	return Stats{
		Ticks:              s.ticks,
		MeanTargetDistance: s.store.MeanTargetDistance(),
		Explosion:          s.state.Explosion,
		BoundsMin:          lo,
		BoundsMax:          hi,
		LastTick:           s.debug.lastTick,
	}
}

// debugLog writes accumulated tick timings and a health snapshot.
func (s *Session) debugLog() {
	if s.debug.count == 0 {
		return
	}
	st := s.statsLocked()
	s.log.Debug("tick stats",
		zap.Uint64("tick", st.Ticks),
		zap.Duration("mean", s.debug.total/time.Duration(s.debug.count)),
		zap.Duration("slowest", s.debug.slowest),
		zap.Float64("mean_target_distance", st.MeanTargetDistance),
		zap.Float64("explosion", st.Explosion),
		zap.Stringer("gesture", s.seen.Label),
		zap.Bool("detecting", s.seen.Detecting))
	s.debug.reset()
}
