package swarm

import (
	"testing"
	"time"
)

func TestDebugStatsRecordAndReset(t *testing.T) {
	var d debugStats
	d.record(2 * time.Millisecond)
	d.record(5 * time.Millisecond)
	d.record(1 * time.Millisecond)

	if d.count != 3 || d.total != 8*time.Millisecond {
		t.Errorf("count=%d total=%v", d.count, d.total)
	}
	if d.slowest != 5*time.Millisecond {
		t.Errorf("slowest = %v, want 5ms", d.slowest)
	}
	if d.lastTick != time.Millisecond {
		t.Errorf("lastTick = %v, want 1ms", d.lastTick)
	}

	d.reset()
	if d.count != 0 || d.total != 0 || d.slowest != 0 {
		t.Errorf("reset left %+v", d)
	}
	if d.lastTick != time.Millisecond {
		t.Error("reset cleared lastTick")
	}
}

func TestStatsWithoutDebug(t *testing.T) {
	s := newTestSession(t, 40)
	s.Tick()
	st := s.Stats()
	if st.Ticks != 1 {
		t.Errorf("Ticks = %d, want 1", st.Ticks)
	}
	if st.LastTick != 0 {
		t.Errorf("LastTick = %v, want 0 with debug off", st.LastTick)
	}
	for k := 0; k < 3; k++ {
		if st.BoundsMin[k] > st.BoundsMax[k] {
			t.Errorf("bounds inverted on axis %d: %v > %v", k, st.BoundsMin[k], st.BoundsMax[k])
		}
	}
	if st.MeanTargetDistance <= 0 {
		t.Errorf("MeanTargetDistance = %v, want positive after noise moved particles", st.MeanTargetDistance)
	}
}
