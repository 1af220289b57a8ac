package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/swarm"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	badgeRest     = 0.35 // badge alpha once the flash has faded
	badgeFadeSecs = 1.2
	fpsRefresh    = 0.5 // seconds between FPS text updates
	hudW, hudH    = 220, 80
)

// hud draws the gesture badge, the current shape and palette, and an
// optional FPS readout in the top-left corner.
type hud struct {
	showFPS bool

	label     swarm.Gesture
	detecting bool
	alpha     float64
	fade      *gween.Tween

	fpsText  string
	sinceFPS float64

	img *ebiten.Image
}

func newHUD(showFPS bool) *hud {
	return &hud{showFPS: showFPS, alpha: badgeRest}
}

// update flashes the badge whenever the gesture label or detecting flag
// changes and refreshes the FPS text.
func (h *hud) update(f *swarm.Frame, dt float64) {
	g := f.Gesture
	if g.Label != h.label || g.Detecting != h.detecting {
		h.label = g.Label
		h.detecting = g.Detecting
		h.fade = gween.New(1, badgeRest, badgeFadeSecs, ease.OutQuad)
		h.alpha = 1
	}
	if h.fade != nil {
		val, done := h.fade.Update(float32(dt))
		h.alpha = float64(val)
		if done {
			h.fade = nil
		}
	}

	if h.showFPS {
		h.sinceFPS += dt
		if h.fpsText == "" || h.sinceFPS >= fpsRefresh {
			h.sinceFPS = 0
			h.fpsText = fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		}
	}
}

// badge returns the gesture line.
func badge(f *swarm.Frame) string {
	switch {
	case f.TrackingDisabled:
		return "tracking off"
	case !f.Gesture.Detecting:
		return "no hand"
	}
	return fmt.Sprintf("gesture: %s  spread %.2f", f.Gesture.Label, f.Gesture.Spread)
}

// status returns the shape and palette line.
func status(f *swarm.Frame) string {
	return fmt.Sprintf("shape: %s  palette: %s", f.Shape, f.Palette)
}

func (h *hud) draw(screen *ebiten.Image, f *swarm.Frame) {
	if h.img == nil {
		h.img = ebiten.NewImage(hudW, hudH)
	}

	// Status and FPS are drawn at full opacity, the badge with its fade.
	h.img.Clear()
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrintAt(h.img, status(f), 4, 2)
	if h.showFPS {
		ebitenutil.DebugPrintAt(h.img, h.fpsText, 4, 18)
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(8, 8)
	screen.DrawImage(h.img, &op)

	h.img.Clear()
	ebitenutil.DebugPrintAt(h.img, badge(f), 4, 2)
	op.GeoM.Reset()
	op.GeoM.Translate(8, 8+hudH)
	op.ColorScale.ScaleAlpha(float32(h.alpha))
	screen.DrawImage(h.img, &op)
}
