package swarm

import (
	"context"
	"errors"
	"math"
	"time"
)

// ErrSourceUnavailable is returned by landmark sources that cannot start,
// such as a tracker without camera access.
var ErrSourceUnavailable = errors.New("landmark source unavailable")

// LandmarkSource delivers landmark frames on its own cadence. Run calls emit
// once per camera frame with either the 21 points of one hand or an empty
// slice when no hand is visible, and returns when ctx ends or the source
// fails. emit is safe to call from any goroutine.
type LandmarkSource interface {
	Run(ctx context.Context, emit func(points []Vec2)) error
}

// LandmarkSourceFunc adapts a function to LandmarkSource.
type LandmarkSourceFunc func(ctx context.Context, emit func(points []Vec2)) error

// Run calls f.
func (f LandmarkSourceFunc) Run(ctx context.Context, emit func(points []Vec2)) error {
	return f(ctx, emit)
}

// Points returns the hand's landmarks as a slice suitable for emit.
func (h *Hand) Points() []Vec2 {
	return append([]Vec2(nil), h[:]...)
}

// SyntheticSource emits a synthetic hand circling the frame center. It
// stands in for a camera tracker in demos and soak runs.
type SyntheticSource struct {
	// Rate is frames per second. Values <= 0 mean 30.
	Rate int
	// Radius is the circle radius in normalized frame units.
	Radius float64
	// Period is the time for one lap. Values <= 0 mean 8s.
	Period time.Duration
	// Gestures are cycled every Hold. Empty means open only.
	Gestures []Gesture
	Hold     time.Duration
}

// Run emits frames until ctx ends and then returns ctx.Err().
func (s SyntheticSource) Run(ctx context.Context, emit func(points []Vec2)) error {
	rate := s.Rate
	if rate <= 0 {
		rate = 30
	}
	period := s.Period
	if period <= 0 {
		period = 8 * time.Second
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			h := s.handAt(now.Sub(start), period)
			emit(h.Points())
		}
	}
}

// handAt returns the hand elapsed into the run.
func (s SyntheticSource) handAt(elapsed, period time.Duration) Hand {
	angle := 2 * math.Pi * float64(elapsed%period) / float64(period)
	g := GestureOpen
	if len(s.Gestures) > 0 && s.Hold > 0 {
		g = s.Gestures[int(elapsed/s.Hold)%len(s.Gestures)]
	}
	return SyntheticHand(g, 0.5+s.Radius*math.Cos(angle), 0.5+s.Radius*math.Sin(angle))
}
