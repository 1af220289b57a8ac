package swarm

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateShapeLength(t *testing.T) {
	counts := []int{0, 1, 2, 7, 100, 3000}
	for _, shape := range Shapes() {
		for _, n := range counts {
			pts := GenerateShape(shape, n, testRand())
			if len(pts) != n {
				t.Errorf("GenerateShape(%v, %d) returned %d points", shape, n, len(pts))
			}
		}
	}
}

func TestGenerateShapeNegativeCount(t *testing.T) {
	pts := GenerateShape(ShapeSphere, -5, testRand())
	if pts == nil || len(pts) != 0 {
		t.Errorf("negative count: got %v, want empty non-nil slice", pts)
	}
}

func TestGenerateShapeFinite(t *testing.T) {
	for _, shape := range Shapes() {
		for _, n := range []int{1, 2, 3, 999} {
			for i, p := range GenerateShape(shape, n, testRand()) {
				if !finite(p) {
					t.Fatalf("%v n=%d: point %d = %v is not finite", shape, n, i, p)
				}
			}
		}
	}
}

func TestSphereRadius(t *testing.T) {
	for _, n := range []int{1, 2, 50, 3000} {
		for i, p := range GenerateShape(ShapeSphere, n, nil) {
			if math.Abs(p.Len()-2.5) > 1e-9 {
				t.Fatalf("n=%d: point %d radius = %v, want 2.5", n, i, p.Len())
			}
		}
	}
}

func TestFireworkRadius(t *testing.T) {
	for i, p := range GenerateShape(ShapeFirework, 3000, testRand()) {
		r := p.Len()
		if r < 2-1e-9 || r >= 4 {
			t.Fatalf("point %d radius = %v, want [2, 4)", i, r)
		}
	}
}

func TestSaturnLayout(t *testing.T) {
	const n = 1000
	pts := GenerateShape(ShapeSaturn, n, testRand())
	ring := int(math.Floor(n * 0.6))

	for i := 0; i < ring; i++ {
		p := pts[i]
		r := math.Hypot(p.X(), p.Z())
		if r < 2.75-1e-9 || r > 3.25+1e-9 {
			t.Fatalf("ring point %d planar radius = %v, want 3 ± 0.25", i, r)
		}
		if math.Abs(p.Y()) > 0.1+1e-9 {
			t.Fatalf("ring point %d height = %v, want within ±0.1", i, p.Y())
		}
	}
	for i := ring; i < n; i++ {
		if r := pts[i].Len(); math.Abs(r-1.5) > 1e-9 {
			t.Fatalf("planet point %d radius = %v, want 1.5", i, r)
		}
	}
}

func TestStarAlternatingRadius(t *testing.T) {
	for i, p := range GenerateShape(ShapeStar, 200, testRand()) {
		want := 1.5
		if i%2 == 0 {
			want = 3
		}
		assertNear(t, "star radius", math.Hypot(p.X(), p.Y()), want)
		if math.Abs(p.Z()) > 1 {
			t.Fatalf("point %d depth = %v, want within ±1", i, p.Z())
		}
	}
}

func TestSpiralRises(t *testing.T) {
	pts := GenerateShape(ShapeSpiral, 400, nil)
	assertNear(t, "first height", pts[0].Y(), -3)
	for i := 1; i < len(pts); i++ {
		if pts[i].Y() <= pts[i-1].Y() {
			t.Fatalf("height at %d = %v not above %v", i, pts[i].Y(), pts[i-1].Y())
		}
	}
}

func TestFlowerPlanarRadius(t *testing.T) {
	for i, p := range GenerateShape(ShapeFlower, 600, testRand()) {
		r := math.Hypot(p.X(), p.Y())
		if r < 1-1e-9 || r > 3+1e-9 {
			t.Fatalf("point %d planar radius = %v, want [1, 3]", i, r)
		}
	}
}

func TestGenerateShapeSeeded(t *testing.T) {
	a := GenerateShape(ShapeHeart, 100, testRand())
	b := GenerateShape(ShapeHeart, 100, testRand())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs between equal seeds: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestUnknownShapeFallsBackToCube(t *testing.T) {
	pts := GenerateShape(Shape(200), 500, testRand())
	if len(pts) != 500 {
		t.Fatalf("len = %d, want 500", len(pts))
	}
	for i, p := range pts {
		for k := 0; k < 3; k++ {
			if p[k] < -fallbackHalfExtent || p[k] >= fallbackHalfExtent {
				t.Fatalf("point %d = %v outside fallback cube", i, p)
			}
		}
	}
}

func TestParseShape(t *testing.T) {
	for _, shape := range Shapes() {
		got, err := ParseShape(shape.String())
		if err != nil {
			t.Fatalf("ParseShape(%q): %v", shape.String(), err)
		}
		if got != shape {
			t.Errorf("ParseShape(%q) = %v, want %v", shape.String(), got, shape)
		}
	}
	if _, err := ParseShape("dodecahedron"); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("unknown name: err = %v, want ErrUnknownShape", err)
	}
}

func TestShapeTextRoundTrip(t *testing.T) {
	text, err := ShapeButterfly.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var s Shape
	if err := s.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if s != ShapeButterfly {
		t.Errorf("round trip = %v, want butterfly", s)
	}
	if _, err := Shape(42).MarshalText(); err == nil {
		t.Error("expected error marshaling an invalid shape")
	}
}

func TestShapesOrder(t *testing.T) {
	want := []string{"heart", "flower", "saturn", "firework", "spiral", "sphere", "star", "butterfly"}
	got := Shapes()
	if len(got) != len(want) {
		t.Fatalf("len(Shapes()) = %d, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.String() != want[i] {
			t.Errorf("Shapes()[%d] = %v, want %s", i, s, want[i])
		}
	}
}

func BenchmarkGenerateShape(b *testing.B) {
	rng := testRand()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		GenerateShape(Shape(i%int(shapeCount)), 3000, rng)
	}
}
