package swarm

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrUnknownShape is returned by ParseShape for names outside the shape set.
var ErrUnknownShape = errors.New("unknown shape")

// Shape identifies one of the parametric target clouds.
type Shape uint8

const (
	ShapeHeart     Shape = iota // parametric heart curve with depth jitter
	ShapeFlower                 // six-turn rose curve r = 2 + cos(5t)
	ShapeSaturn                 // ring (60%) followed by planet sphere (40%)
	ShapeFirework               // Fibonacci sphere with radius in [2, 4)
	ShapeSpiral                 // eight-turn rising helix
	ShapeSphere                 // Fibonacci sphere, radius 2.5
	ShapeStar                   // five-pointed star, alternating radius
	ShapeButterfly              // Fay's butterfly curve with depth jitter
	shapeCount
)

var shapeNames = [shapeCount]string{
	"heart", "flower", "saturn", "firework", "spiral", "sphere", "star", "butterfly",
}

// String returns the lowercase shape name.
func (s Shape) String() string {
	if s < shapeCount {
		return shapeNames[s]
	}
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// Valid reports whether s names a known shape.
func (s Shape) Valid() bool {
	return s < shapeCount
}

// Shapes returns every shape in selection order (the 1-8 keys).
func Shapes() []Shape {
	out := make([]Shape, shapeCount)
	for i := range out {
		out[i] = Shape(i)
	}
	return out
}

// ParseShape maps a shape name to its Shape.
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("parse shape %q: %w", name, ErrUnknownShape)
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("marshal %v: %w", s, ErrUnknownShape)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	v, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// fallbackHalfExtent bounds the cube that replaces undefined points.
const fallbackHalfExtent = 5.0

// GenerateShape samples count points of the given shape. Shapes with depth
// or radius jitter draw from rng, so repeated calls differ; a nil rng uses
// the global source. Any point that is not finite, and every point of an
// unknown shape, is replaced by a uniform random point in the fallback cube.
func GenerateShape(shape Shape, count int, rng *rand.Rand) []Vec3 {
	if count <= 0 {
		return []Vec3{}
	}
	pts := make([]Vec3, count)
	switch shape {
	case ShapeHeart:
		for i := range pts {
			t := float64(i) / float64(count) * 2 * math.Pi
			x := 16 * math.Pow(math.Sin(t), 3)
			y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
			z := jitter(rng, 5)
			pts[i] = Vec3{x * 0.15, y * 0.15, z * 0.3}
		}
	case ShapeFlower:
		for i := range pts {
			t := float64(i) / float64(count) * 2 * math.Pi * 6
			r := 2 + math.Cos(5*t)
			pts[i] = Vec3{r * math.Cos(t), r * math.Sin(t), jitter(rng, 2)}
		}
	case ShapeSaturn:
		ring := int(math.Floor(float64(count) * 0.6))
		for i := 0; i < ring; i++ {
			angle := float64(i) / float64(ring) * 2 * math.Pi
			r := 3 + jitter(rng, 0.5)
			pts[i] = Vec3{math.Cos(angle) * r, jitter(rng, 0.2), math.Sin(angle) * r}
		}
		fibonacciSphere(pts[ring:], func(int) float64 { return 1.5 })
	case ShapeFirework:
		fibonacciSphere(pts, func(int) float64 { return 2 + randFloat(rng)*2 })
	case ShapeSpiral:
		for i := range pts {
			t := float64(i) / float64(count) * math.Pi * 8
			r := t * 0.15
			pts[i] = Vec3{math.Cos(t) * r, t*0.2 - 3, math.Sin(t) * r}
		}
	case ShapeSphere:
		fibonacciSphere(pts, func(int) float64 { return 2.5 })
	case ShapeStar:
		for i := range pts {
			t := float64(i) / float64(count) * 2 * math.Pi
			r := 2.0
			if i%2 == 0 {
				r += 1
			} else {
				r -= 0.5
			}
			pts[i] = Vec3{math.Cos(t*5) * r, math.Sin(t*5) * r, jitter(rng, 2)}
		}
	case ShapeButterfly:
		for i := range pts {
			t := float64(i) / float64(count) * math.Pi * 12
			r := math.Exp(math.Cos(t)) - 2*math.Cos(4*t) - math.Pow(math.Sin(t/12), 5)
			pts[i] = Vec3{math.Sin(t) * r * 1.2, math.Cos(t) * r * 1.2, jitter(rng, 1.5)}
		}
	default:
		for i := range pts {
			pts[i] = fallbackPoint(rng)
		}
		return pts
	}
	for i := range pts {
		if !finite(pts[i]) {
			pts[i] = fallbackPoint(rng)
		}
	}
	return pts
}

// fibonacciSphere fills pts with a golden-angle spiral over the sphere.
// radius is evaluated once per point so callers can randomise it.
func fibonacciSphere(pts []Vec3, radius func(i int) float64) {
	n := len(pts)
	if n == 0 {
		return
	}
	turn := math.Sqrt(float64(n) * math.Pi)
	for i := range pts {
		phi := math.Acos(-1 + 2*float64(i)/float64(n))
		theta := turn * phi
		r := radius(i)
		pts[i] = Vec3{
			r * math.Cos(theta) * math.Sin(phi),
			r * math.Sin(theta) * math.Sin(phi),
			r * math.Cos(phi),
		}
	}
}

// fallbackPoint returns a uniform random point in the fallback cube.
func fallbackPoint(rng *rand.Rand) Vec3 {
	w := fallbackHalfExtent * 2
	return Vec3{jitter(rng, w), jitter(rng, w), jitter(rng, w)}
}

// jitter returns a uniform value in [-width/2, width/2).
func jitter(rng *rand.Rand, width float64) float64 {
	return (randFloat(rng) - 0.5) * width
}

func randFloat(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}
