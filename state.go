package swarm

import "math"

// Explosion energy levels set by control events.
const (
	explosionTrigger  = 1.0
	explosionRetarget = 0.5
)

// AnimationState is the per-session state the integrator reads each tick.
// Control events mutate it between ticks; Tick advances Time and decays
// Explosion.
type AnimationState struct {
	// Time is the simulated time in seconds, advanced by a fixed step per tick.
	Time    float64
	Shape   Shape
	Palette Palette
	// Explosion is the decaying impulse energy. Never negative.
	Explosion float64
}

// newAnimationState returns the session-start state.
func newAnimationState(shape Shape, palette Palette) AnimationState {
	return AnimationState{Shape: shape, Palette: palette}
}

// Energize raises the explosion energy to at least e.
func (s *AnimationState) Energize(e float64) {
	s.Explosion = math.Max(s.Explosion, e)
}

// Rotation returns the slow scene sway as (pitch, yaw) in radians.
func (s *AnimationState) Rotation() Vec2 {
	return Vec2{
		X: math.Sin(s.Time*0.15) * 0.1,
		Y: math.Sin(s.Time*0.2) * 0.3,
	}
}
