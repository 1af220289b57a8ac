package swarm

import (
	"math"
	"math/rand/v2"
)

// Initial per-particle state drawn at session start.
var (
	initialSpeed = Range{-0.005, 0.005}
	initialSize  = Range{0.05, 0.15}
)

// ParticleStore holds per-particle state as parallel slices. Every slice has
// length Len() for the life of the store; index i is the particle's identity
// and survives every retarget.
type ParticleStore struct {
	Positions  []Vec3
	Velocities []Vec3
	Targets    []Vec3
	Sizes      []float64
	Colors     []Color
}

// NewParticleStore allocates n particles resting on targets. Targets shorter
// than n leave the remaining particles at fallback-cube points, so no entry
// is ever undefined. Velocities, sizes and colors get their session-start
// values from rng.
func NewParticleStore(n int, targets []Vec3, rng *rand.Rand) *ParticleStore {
	if n < 0 {
		n = 0
	}
	s := &ParticleStore{
		Positions:  make([]Vec3, n),
		Velocities: make([]Vec3, n),
		Targets:    make([]Vec3, n),
		Sizes:      make([]float64, n),
		Colors:     make([]Color, n),
	}
	for i := 0; i < n; i++ {
		var p Vec3
		if i < len(targets) && finite(targets[i]) {
			p = targets[i]
		} else {
			p = fallbackPoint(rng)
		}
		s.Positions[i] = p
		s.Targets[i] = p
		s.Velocities[i] = Vec3{
			initialSpeed.Random(rng),
			initialSpeed.Random(rng),
			initialSpeed.Random(rng),
		}
		s.Sizes[i] = initialSize.Random(rng)
		s.Colors[i] = hslColor(float64(i)/float64(n), 0.8, 0.6)
	}
	return s
}

// Len returns the particle count.
func (s *ParticleStore) Len() int {
	return len(s.Positions)
}

// Retarget replaces targets index-for-index. Extra points are ignored;
// particles past len(points) keep their previous target. Non-finite points
// are skipped for the same reason. Returns the number of targets replaced.
func (s *ParticleStore) Retarget(points []Vec3) int {
	n := min(len(points), len(s.Targets))
	replaced := 0
	for i := 0; i < n; i++ {
		if !finite(points[i]) {
			continue
		}
		s.Targets[i] = points[i]
		replaced++
	}
	return replaced
}

// MeanTargetDistance returns the average distance between each particle and
// its unscaled target. Zero for an empty store.
func (s *ParticleStore) MeanTargetDistance() float64 {
	if len(s.Positions) == 0 {
		return 0
	}
	var sum float64
	for i := range s.Positions {
		sum += s.Positions[i].Sub(s.Targets[i]).Len()
	}
	return sum / float64(len(s.Positions))
}

// Bounds returns the axis-aligned box around all particle positions.
func (s *ParticleStore) Bounds() (lo, hi Vec3) {
	if len(s.Positions) == 0 {
		return Vec3{}, Vec3{}
	}
	lo = Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range s.Positions {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], p[k])
			hi[k] = math.Max(hi[k], p[k])
		}
	}
	return lo, hi
}

// Random returns a random float64 in [Min, Max) drawn from rng, or from the
// global source when rng is nil.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + randFloat(rng)*(r.Max-r.Min)
}
