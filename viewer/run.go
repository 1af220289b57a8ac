package viewer

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/swarm"
	"go.uber.org/zap"
)

// ErrNoSession is returned by Run when called without a session.
var ErrNoSession = errors.New("viewer: nil session")

// RunConfig controls the viewer window.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS draws an FPS and TPS readout under the status line.
	ShowFPS bool
	// MouseHand lets the left mouse button stand in for a tracked hand:
	// plain drag is open, Shift fist, Ctrl pinch, Alt peace.
	MouseHand bool
	// ScreenshotDir receives PNGs from script "screenshot" steps.
	// Defaults to "screenshots".
	ScreenshotDir string
	// Script, when set, is stepped once per tick before the session tick.
	Script *swarm.ScriptRunner
	// ExitWhenScriptDone ends Run once Script has finished.
	ExitWhenScriptDone bool
	// Background is the clear color. Zero means near-black.
	Background color.Color
	Logger     *zap.Logger
}

// game implements ebiten.Game on top of a session. Each Update is exactly
// one session tick, so the simulation advances at the configured TPS.
type game struct {
	sess  *swarm.Session
	cfg   RunConfig
	log   *zap.Logger
	cam   *Camera
	batch particleBatch
	hud   *hud
	input controls
	shots screenshotter
	frame swarm.Frame
	dt    float64
}

func newGame(sess *swarm.Session, cfg RunConfig) *game {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	if cfg.Title == "" {
		cfg.Title = "swarm"
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	if cfg.Background == nil {
		cfg.Background = color.RGBA{0x05, 0x05, 0x0a, 0xff}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("viewer")

	tps := sess.Config().TickRate
	g := &game{
		sess:  sess,
		cfg:   cfg,
		log:   log,
		cam:   NewCamera(cfg.Width, cfg.Height, tps),
		hud:   newHUD(cfg.ShowFPS),
		input: controls{sess: sess, log: log, mouseHand: cfg.MouseHand},
		shots: screenshotter{dir: cfg.ScreenshotDir, log: log, now: time.Now},
		dt:    1 / float64(tps),
	}
	if cfg.Script != nil {
		cfg.Script.OnScreenshot = g.shots.request
	}
	sess.Frame(&g.frame)
	return g
}

// Run opens a window and drives sess until the window closes or the script
// finishes. Keys 1-8 select shapes, C cycles the palette and Space triggers
// an explosion; right-drag orbits and the wheel zooms.
func Run(sess *swarm.Session, cfg RunConfig) error {
	if sess == nil {
		return ErrNoSession
	}
	g := newGame(sess, cfg)

	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(sess.Config().TickRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

func (g *game) Update() error {
	g.input.update(g.cam)
	if g.cfg.Script != nil {
		g.cfg.Script.Step(g.sess)
	}
	g.sess.Tick()
	g.sess.Frame(&g.frame)

	g.cam.update(float32(g.dt))
	g.hud.update(&g.frame, g.dt)

	if g.cfg.Script != nil && g.cfg.ExitWhenScriptDone && g.cfg.Script.Done() {
		g.log.Info("script finished", zap.Uint64("ticks", g.frame.Tick))
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background)
	g.batch.build(&g.frame, g.cam)
	g.batch.draw(screen)
	g.hud.draw(screen, &g.frame)
	g.shots.flush(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.cam.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
