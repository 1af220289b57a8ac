package viewer

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/swarm"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera defaults.
const (
	defaultDistance = 15.0
	introDistance   = 32.0
	introSeconds    = 1.6
	defaultFovY     = 75.0
	nearPlane       = 0.1
	farPlane        = 1000.0
	minDistance     = 4.0
	maxDistance     = 60.0
)

// Camera is a perspective camera orbiting the origin. The scene sway from
// each frame is applied on top of the user's orbit.
type Camera struct {
	// Distance is the eye distance from the origin along +Z before rotation.
	Distance float64
	// FovY is the vertical field of view in degrees.
	FovY float64
	// Yaw and Pitch are the user orbit in radians.
	Yaw, Pitch float64
	// Width and Height are the viewport size in pixels.
	Width, Height int

	zoomTween *gween.Tween

	orbit     harmonica.Spring
	yawTarget float64
	yawVel    float64
}

// NewCamera creates a camera for a w x h viewport that zooms in from afar.
func NewCamera(w, h, tps int) *Camera {
	return &Camera{
		Distance:  introDistance,
		FovY:      defaultFovY,
		Width:     w,
		Height:    h,
		zoomTween: gween.New(introDistance, defaultDistance, introSeconds, ease.OutCubic),
		orbit:     harmonica.NewSpring(harmonica.FPS(tps), 6.0, 0.8),
	}
}

// ZoomTo animates Distance to d over duration seconds.
func (c *Camera) ZoomTo(d float64, duration float32, fn ease.TweenFunc) {
	d = math.Max(minDistance, math.Min(maxDistance, d))
	c.zoomTween = gween.New(float32(c.Distance), float32(d), duration, fn)
}

// Orbit moves the yaw target by delta radians. The camera eases toward it.
func (c *Camera) Orbit(delta float64) {
	c.yawTarget += delta
}

// Resize sets the viewport size.
func (c *Camera) Resize(w, h int) {
	c.Width, c.Height = w, h
}

// Settled reports whether the zoom and orbit animations have finished.
func (c *Camera) Settled() bool {
	return c.zoomTween == nil && math.Abs(c.yawTarget-c.Yaw) < 1e-4 && math.Abs(c.yawVel) < 1e-4
}

// update advances the zoom tween and orbit spring by one tick of dt seconds.
func (c *Camera) update(dt float32) {
	if c.zoomTween != nil {
		val, done := c.zoomTween.Update(dt)
		c.Distance = float64(val)
		if done {
			c.zoomTween = nil
		}
	}
	c.Yaw, c.yawVel = c.orbit.Update(c.Yaw, c.yawVel, c.yawTarget)
}

// ViewProjection returns the combined model-view-projection matrix for a
// frame whose scene sway is rot (pitch, yaw).
func (c *Camera) ViewProjection(rot swarm.Vec2) mgl64.Mat4 {
	aspect := 1.0
	if c.Height > 0 {
		aspect = float64(c.Width) / float64(c.Height)
	}
	proj := mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, nearPlane, farPlane)
	view := mgl64.LookAtV(mgl64.Vec3{0, 0, c.Distance}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	// Euler XYZ: pitch is applied after yaw.
	model := mgl64.HomogRotate3DX(rot.X + c.Pitch).Mul4(mgl64.HomogRotate3DY(rot.Y + c.Yaw))
	return proj.Mul4(view).Mul4(model)
}

// Project maps p through mvp to screen pixels. depth is the distance along
// the view axis; ok is false for points behind the near plane.
func (c *Camera) Project(mvp mgl64.Mat4, p swarm.Vec3) (x, y, depth float64, ok bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	w := clip[3]
	if w <= nearPlane {
		return 0, 0, 0, false
	}
	x = (clip[0]/w + 1) / 2 * float64(c.Width)
	y = (1 - clip[1]/w) / 2 * float64(c.Height)
	return x, y, w, true
}
