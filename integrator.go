package swarm

import (
	"math"
	"math/rand/v2"
)

// PhysicsConfig holds the spring-damper and pulse constants.
type PhysicsConfig struct {
	// Spring is the fraction of the target displacement added to velocity per tick.
	Spring float64 `json:"spring"`
	// Damping multiplies velocity once per tick, after the spring impulse.
	Damping float64 `json:"damping"`
	// ExplosionScale converts explosion energy into impulse amplitude.
	ExplosionScale float64 `json:"explosion_scale"`
	// ExplosionDecay multiplies explosion energy once per tick.
	ExplosionDecay float64 `json:"explosion_decay"`
	// ExplosionFloor is the energy below which explosion snaps to zero.
	ExplosionFloor float64 `json:"explosion_floor"`
	// Noise is the amplitude of the sinusoidal X/Y velocity drift.
	Noise float64 `json:"noise"`
	// HandReach maps the normalized hand offset from frame center to world units.
	HandReach float64 `json:"hand_reach"`
	// BaseSize, PulseSize and PinchPulseSize shape the per-particle size pulse.
	BaseSize       float64 `json:"base_size"`
	PulseSize      float64 `json:"pulse_size"`
	PinchPulseSize float64 `json:"pinch_pulse_size"`
}

// DefaultPhysics returns the stock constants.
func DefaultPhysics() PhysicsConfig {
	return PhysicsConfig{
		Spring:         0.03,
		Damping:        0.92,
		ExplosionScale: 0.5,
		ExplosionDecay: 0.95,
		ExplosionFloor: 0.01,
		Noise:          0.02,
		HandReach:      6,
		BaseSize:       0.08,
		PulseSize:      0.05,
		PinchPulseSize: 0.15,
	}
}

// Integrator advances a ParticleStore by one fixed step per Tick.
type Integrator struct {
	cfg PhysicsConfig
	rng *rand.Rand
}

// NewIntegrator creates an integrator. rng feeds the explosion impulses; nil
// uses the global source.
func NewIntegrator(cfg PhysicsConfig, rng *rand.Rand) *Integrator {
	return &Integrator{cfg: cfg, rng: rng}
}

// Config returns the integrator's constants.
func (in *Integrator) Config() PhysicsConfig {
	return in.cfg
}

// Tick moves every particle one step toward its spread-scaled, hand-offset
// target, refreshes sizes and colors, then decays the explosion energy and
// advances state.Time by dt. dt is the fixed simulation step and does not
// scale the spring.
func (in *Integrator) Tick(state *AnimationState, store *ParticleStore, g GestureSample, dt float64) {
	cfg := &in.cfg
	t := state.Time
	n := store.Len()

	var offX, offY float64
	if g.HandPresent {
		offX = (g.Hand.X - 0.5) * cfg.HandReach
		offY = (0.5 - g.Hand.Y) * cfg.HandReach
	}

	pulse := cfg.PulseSize
	if g.Label == GesturePinch {
		pulse = cfg.PinchPulseSize
	}

	kick := state.Explosion * cfg.ExplosionScale

	for i := 0; i < n; i++ {
		target := store.Targets[i]
		v := store.Velocities[i]
		p := store.Positions[i]

		goalX := target[0]*g.Spread + offX
		goalY := target[1]*g.Spread + offY
		goalZ := target[2] * g.Spread

		if kick > 0 {
			v[0] += jitter(in.rng, kick)
			v[1] += jitter(in.rng, kick)
			v[2] += jitter(in.rng, kick)
		}

		noise := math.Sin(t*2+float64(i)*0.1) * cfg.Noise
		v[0] += noise
		v[1] += noise

		v[0] += (goalX - p[0]) * cfg.Spring
		v[1] += (goalY - p[1]) * cfg.Spring
		v[2] += (goalZ - p[2]) * cfg.Spring
		v = v.Mul(cfg.Damping)

		store.Velocities[i] = v
		store.Positions[i] = p.Add(v)

		store.Sizes[i] = cfg.BaseSize + math.Sin(t*3+float64(i)*0.05)*pulse
		store.Colors[i] = ColorAt(state.Palette, i, n, t)
	}

	state.Explosion *= cfg.ExplosionDecay
	if state.Explosion < cfg.ExplosionFloor {
		state.Explosion = 0
	}
	state.Time += dt
}
