package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/swarm"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// orbitPerPixel is the yaw change per pixel of right-button drag.
const orbitPerPixel = 0.01

var shapeKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
}

// shapeForKey maps the digit keys 1-8 onto the shape list.
func shapeForKey(k ebiten.Key) (swarm.Shape, bool) {
	shapes := swarm.Shapes()
	for i, key := range shapeKeys {
		if key == k && i < len(shapes) {
			return shapes[i], true
		}
	}
	return 0, false
}

// gestureForModifiers picks the emulated gesture for a mouse-held hand:
// plain is open, Shift is fist, Ctrl is pinch, Alt is peace.
func gestureForModifiers(shift, ctrl, alt bool) swarm.Gesture {
	switch {
	case ctrl:
		return swarm.GesturePinch
	case shift:
		return swarm.GestureFist
	case alt:
		return swarm.GesturePeace
	}
	return swarm.GestureOpen
}

// controls turns keyboard and mouse input into session controls.
type controls struct {
	sess      *swarm.Session
	log       *zap.Logger
	mouseHand bool

	handDown   bool
	dragging   bool
	lastCursor int
}

// update reads one tick of input. Control events are applied before the
// session tick that follows.
func (c *controls) update(cam *Camera) {
	for _, k := range shapeKeys {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		if shape, ok := shapeForKey(k); ok {
			if err := c.sess.SetShape(shape); err != nil {
				c.log.Warn("set shape", zap.Error(err))
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		c.sess.CyclePalette()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		c.sess.TriggerExplosion()
	}

	mx, my := ebiten.CursorPosition()

	if c.mouseHand && cam.Width > 0 && cam.Height > 0 {
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			g := gestureForModifiers(
				ebiten.IsKeyPressed(ebiten.KeyShift),
				ebiten.IsKeyPressed(ebiten.KeyControl),
				ebiten.IsKeyPressed(ebiten.KeyAlt),
			)
			h := swarm.SyntheticHand(g, float64(mx)/float64(cam.Width), float64(my)/float64(cam.Height))
			c.sess.PushHand(&h)
			c.handDown = true
		} else if c.handDown {
			c.sess.PushHand(nil)
			c.handDown = false
		}
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if c.dragging {
			cam.Orbit(float64(mx-c.lastCursor) * orbitPerPixel)
		}
		c.dragging = true
		c.lastCursor = mx
	} else {
		c.dragging = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		cam.ZoomTo(cam.Distance*(1-wy*0.1), 0.2, ease.OutQuad)
	}
}
