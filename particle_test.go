package swarm

import (
	"math"
	"testing"
)

func TestNewParticleStoreRestsOnTargets(t *testing.T) {
	targets := GenerateShape(ShapeHeart, 50, testRand())
	s := NewParticleStore(50, targets, testRand())
	if s.Len() != 50 {
		t.Fatalf("Len = %d, want 50", s.Len())
	}
	for i := 0; i < s.Len(); i++ {
		if s.Positions[i] != targets[i] || s.Targets[i] != targets[i] {
			t.Fatalf("particle %d not resting on its target", i)
		}
		v := s.Velocities[i]
		for k := 0; k < 3; k++ {
			if math.Abs(v[k]) > 0.005 {
				t.Fatalf("particle %d initial velocity %v out of range", i, v)
			}
		}
		if s.Sizes[i] < 0.05 || s.Sizes[i] >= 0.15 {
			t.Fatalf("particle %d initial size %v out of range", i, s.Sizes[i])
		}
	}
	assertColorNear(t, "first color", s.Colors[0], hslColor(0, 0.8, 0.6), epsilon)
}

func TestNewParticleStoreShortTargets(t *testing.T) {
	targets := []Vec3{{1, 2, 3}, {math.NaN(), 0, 0}}
	s := NewParticleStore(5, targets, testRand())
	if s.Targets[0] != (Vec3{1, 2, 3}) {
		t.Errorf("target 0 = %v", s.Targets[0])
	}
	for i := 1; i < 5; i++ {
		if !finite(s.Targets[i]) {
			t.Errorf("target %d = %v is not finite", i, s.Targets[i])
		}
	}
}

func TestNewParticleStoreEmpty(t *testing.T) {
	for _, n := range []int{0, -3} {
		s := NewParticleStore(n, nil, testRand())
		if s.Len() != 0 || len(s.Targets) != 0 || len(s.Colors) != 0 {
			t.Errorf("n=%d: store not empty", n)
		}
		if d := s.MeanTargetDistance(); d != 0 {
			t.Errorf("n=%d: MeanTargetDistance = %v, want 0", n, d)
		}
	}
}

func TestRetarget(t *testing.T) {
	s := NewParticleStore(4, []Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}}, testRand())

	tests := []struct {
		name     string
		points   []Vec3
		replaced int
		want     []Vec3
	}{
		{
			"shorter cloud keeps the tail",
			[]Vec3{{9, 9, 9}, {8, 8, 8}},
			2,
			[]Vec3{{9, 9, 9}, {8, 8, 8}, {2, 0, 0}, {3, 0, 0}},
		},
		{
			"longer cloud is truncated",
			[]Vec3{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}, {4, 4, 4}, {5, 5, 5}},
			4,
			[]Vec3{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}, {4, 4, 4}},
		},
		{
			"non-finite points are skipped",
			[]Vec3{{math.Inf(1), 0, 0}, {7, 7, 7}},
			1,
			[]Vec3{{1, 1, 1}, {7, 7, 7}, {3, 3, 3}, {4, 4, 4}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]Vec3(nil), s.Positions...)
			if got := s.Retarget(tt.points); got != tt.replaced {
				t.Errorf("Retarget replaced %d, want %d", got, tt.replaced)
			}
			for i, want := range tt.want {
				if s.Targets[i] != want {
					t.Errorf("target %d = %v, want %v", i, s.Targets[i], want)
				}
			}
			for i := range before {
				if s.Positions[i] != before[i] {
					t.Errorf("Retarget moved particle %d", i)
				}
			}
			if s.Len() != 4 {
				t.Errorf("Len = %d, want 4", s.Len())
			}
		})
	}
}

func TestMeanTargetDistanceAndBounds(t *testing.T) {
	s := NewParticleStore(2, []Vec3{{0, 0, 0}, {0, 0, 0}}, testRand())
	s.Positions[0] = Vec3{3, 4, 0}
	s.Positions[1] = Vec3{-1, 0, 2}
	assertNear(t, "MeanTargetDistance", s.MeanTargetDistance(), (5+math.Sqrt(5))/2)

	lo, hi := s.Bounds()
	if lo != (Vec3{-1, 0, 0}) || hi != (Vec3{3, 4, 2}) {
		t.Errorf("Bounds = %v, %v", lo, hi)
	}
}
