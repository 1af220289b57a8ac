package viewer

import (
	"math"
	"testing"

	"github.com/phanxgames/swarm"
	"github.com/tanema/gween/ease"
)

const epsilon = 1e-6

func assertNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// settledCamera returns an 800x600 camera at the resting distance.
func settledCamera() *Camera {
	cam := NewCamera(800, 600, 60)
	cam.zoomTween = nil
	cam.Distance = defaultDistance
	return cam
}

func TestProjectCenter(t *testing.T) {
	cam := settledCamera()
	mvp := cam.ViewProjection(swarm.Vec2{})

	x, y, depth, ok := cam.Project(mvp, swarm.Vec3{})
	if !ok {
		t.Fatal("origin not visible")
	}
	assertNear(t, "x", x, 400, epsilon)
	assertNear(t, "y", y, 300, epsilon)
	assertNear(t, "depth", depth, 15, epsilon)
}

func TestProjectAxes(t *testing.T) {
	cam := settledCamera()
	mvp := cam.ViewProjection(swarm.Vec2{})

	x, _, _, _ := cam.Project(mvp, swarm.Vec3{1, 0, 0})
	if x <= 400 {
		t.Errorf("+X projected to x=%v, want right of center", x)
	}
	_, y, _, _ := cam.Project(mvp, swarm.Vec3{0, 1, 0})
	if y >= 300 {
		t.Errorf("+Y projected to y=%v, want above center", y)
	}
	_, _, depth, _ := cam.Project(mvp, swarm.Vec3{0, 0, 5})
	assertNear(t, "near depth", depth, 10, epsilon)

	if _, _, _, ok := cam.Project(mvp, swarm.Vec3{0, 0, 20}); ok {
		t.Error("point behind the eye reported visible")
	}
}

func TestProjectRotation(t *testing.T) {
	cam := settledCamera()
	// A quarter turn of yaw swings +X away from the eye.
	mvp := cam.ViewProjection(swarm.Vec2{Y: math.Pi / 2})
	x, _, depth, ok := cam.Project(mvp, swarm.Vec3{1, 0, 0})
	if !ok {
		t.Fatal("point not visible")
	}
	assertNear(t, "x", x, 400, epsilon)
	assertNear(t, "depth", depth, 16, epsilon)

	// User yaw adds to the frame sway.
	cam.Yaw = math.Pi / 4
	a := cam.ViewProjection(swarm.Vec2{Y: math.Pi / 4})
	ax, _, _, _ := cam.Project(a, swarm.Vec3{1, 0, 0})
	assertNear(t, "combined x", ax, 400, epsilon)
}

func TestProjectYawThenPitch(t *testing.T) {
	cam := settledCamera()
	// Yaw swings +X to -Z, then pitch lifts it to +Y. The reverse order
	// would leave it at -Z, one unit farther from the eye.
	mvp := cam.ViewProjection(swarm.Vec2{X: math.Pi / 2, Y: math.Pi / 2})
	x, y, depth, ok := cam.Project(mvp, swarm.Vec3{1, 0, 0})
	if !ok {
		t.Fatal("point not visible")
	}
	assertNear(t, "x", x, 400, epsilon)
	if y >= 300 {
		t.Errorf("y = %v, want above center", y)
	}
	assertNear(t, "depth", depth, 15, epsilon)
}

func TestCameraIntroZoom(t *testing.T) {
	cam := NewCamera(800, 600, 60)
	if cam.Distance != introDistance {
		t.Fatalf("start distance = %v, want %v", cam.Distance, introDistance)
	}
	prev := cam.Distance
	for i := 0; i < 120; i++ {
		cam.update(1.0 / 60)
		if cam.Distance > prev {
			t.Fatalf("tick %d: distance grew from %v to %v", i, prev, cam.Distance)
		}
		prev = cam.Distance
	}
	assertNear(t, "distance", cam.Distance, defaultDistance, 1e-3)
	if !cam.Settled() {
		t.Error("camera not settled after the intro")
	}
}

func TestCameraOrbitEases(t *testing.T) {
	cam := settledCamera()
	cam.Orbit(1)
	cam.update(1.0 / 60)
	if cam.Yaw <= 0 || cam.Yaw >= 1 {
		t.Errorf("after one tick yaw = %v, want strictly between 0 and 1", cam.Yaw)
	}
	for i := 0; i < 600; i++ {
		cam.update(1.0 / 60)
	}
	assertNear(t, "yaw", cam.Yaw, 1, 1e-3)
	if !cam.Settled() {
		t.Error("orbit did not settle")
	}
}

func TestZoomToClamps(t *testing.T) {
	cam := settledCamera()
	cam.ZoomTo(1000, 0.1, ease.Linear)
	for i := 0; i < 20; i++ {
		cam.update(1.0 / 60)
	}
	assertNear(t, "distance", cam.Distance, maxDistance, 1e-3)
}
