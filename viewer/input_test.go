package viewer

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/swarm"
)

func TestShapeForKey(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want swarm.Shape
		ok   bool
	}{
		{ebiten.KeyDigit1, swarm.ShapeHeart, true},
		{ebiten.KeyDigit3, swarm.ShapeSaturn, true},
		{ebiten.KeyDigit6, swarm.ShapeSphere, true},
		{ebiten.KeyDigit8, swarm.ShapeButterfly, true},
		{ebiten.KeyDigit9, 0, false},
		{ebiten.KeyC, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got, ok := shapeForKey(tt.key)
			if ok != tt.ok || got != tt.want {
				t.Errorf("shapeForKey = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestGestureForModifiers(t *testing.T) {
	tests := []struct {
		name             string
		shift, ctrl, alt bool
		want             swarm.Gesture
	}{
		{"plain", false, false, false, swarm.GestureOpen},
		{"shift", true, false, false, swarm.GestureFist},
		{"ctrl", false, true, false, swarm.GesturePinch},
		{"alt", false, false, true, swarm.GesturePeace},
		{"ctrl wins", true, true, true, swarm.GesturePinch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gestureForModifiers(tt.shift, tt.ctrl, tt.alt); got != tt.want {
				t.Errorf("gesture = %v, want %v", got, tt.want)
			}
		})
	}
}

// The emulated hand must read back as the gesture it was built for, at the
// cursor position.
func TestMouseHandClassifies(t *testing.T) {
	for _, g := range []swarm.Gesture{swarm.GestureOpen, swarm.GestureFist, swarm.GesturePinch, swarm.GesturePeace} {
		s := swarm.Classify(swarm.SyntheticHand(g, 0.25, 0.75))
		if s.Label != g {
			t.Errorf("%v classified as %v", g, s.Label)
		}
		assertNear(t, "palm x", s.Hand.X, 0.25, 1e-9)
	}
}
