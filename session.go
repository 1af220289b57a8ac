package swarm

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRand sets the random source for shape jitter, initial state and
// explosion impulses. The default is a PCG seeded from Config.Seed.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		s.rng = r
	}
}

// WithEntityStore sets the optional ECS bridge.
func WithEntityStore(store EntityStore) Option {
	return func(s *Session) {
		s.entities = store
	}
}

// Session owns the animation state and particle store for one run, applies
// control events between ticks and advances the simulation one fixed step
// per Tick. Control methods, Tick and Frame are serialized; PushLandmarks
// only swaps the gesture slot and never waits for a tick.
type Session struct {
	mu       sync.Mutex
	cfg      Config
	log      *zap.Logger
	rng      *rand.Rand
	state    AnimationState
	store    *ParticleStore
	integ    *Integrator
	handlers handlerRegistry
	entities EntityStore
	ticks    uint64
	seen     GestureSample
	debug    debugStats

	gesture  atomic.Pointer[GestureSample]
	disabled atomic.Bool
}

// NewSession validates cfg and builds a session resting on cfg.Shape.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	s := &Session{
		cfg: cfg,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	s.state = newAnimationState(cfg.Shape, cfg.Palette)
	s.store = NewParticleStore(cfg.Particles, GenerateShape(cfg.Shape, cfg.Particles, s.rng), s.rng)
	s.integ = NewIntegrator(cfg.Physics, s.rng)
	neutral := NeutralGesture
	s.gesture.Store(&neutral)
	s.seen = neutral

	s.log.Info("session started",
		zap.Int("particles", cfg.Particles),
		zap.Stringer("shape", cfg.Shape),
		zap.Stringer("palette", cfg.Palette),
		zap.Float64("time_step", cfg.TimeStep))
	return s, nil
}

// Len returns the fixed particle count.
func (s *Session) Len() int {
	return s.store.Len()
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// OnEvent registers a callback for every session event. Callbacks run on the
// goroutine that caused the event, with the session locked, so they must not
// call back into the session. The returned handle may be removed from any
// goroutine except from inside a callback.
func (s *Session) OnEvent(fn func(Event)) CallbackHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.handlers.add(fn)
	h.lock = &s.mu
	return h
}

// SetEntityStore sets the optional ECS bridge.
func (s *Session) SetEntityStore(store EntityStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities = store
}

// SetShape regenerates the target cloud for shape, replaces every target
// index-for-index and raises explosion energy to at least 0.5 so the jump
// reads as a burst rather than a teleport.
func (s *Session) SetShape(shape Shape) error {
	if !shape.Valid() {
		return fmt.Errorf("set shape %v: %w", shape, ErrUnknownShape)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	points := GenerateShape(shape, s.store.Len(), s.rng)
	replaced := s.store.Retarget(points)
	s.state.Shape = shape
	s.state.Energize(explosionRetarget)

	s.log.Info("shape changed", zap.Stringer("shape", shape), zap.Int("targets", replaced))
	s.emit(Event{Type: EventShapeChanged, Shape: shape, Explosion: s.state.Explosion})
	return nil
}

// SetPalette switches the active palette.
func (s *Session) SetPalette(p Palette) error {
	if !p.Valid() {
		return fmt.Errorf("set palette %v: %w", p, ErrUnknownPalette)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setPaletteLocked(p)
	return nil
}

// CyclePalette advances to the next palette and returns it.
func (s *Session) CyclePalette() Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Palette.Next()
	s.setPaletteLocked(next)
	return next
}

func (s *Session) setPaletteLocked(p Palette) {
	s.state.Palette = p
	s.log.Info("palette changed", zap.Stringer("palette", p))
	s.emit(Event{Type: EventPaletteChanged, Palette: p})
}

// TriggerExplosion sets explosion energy to full.
func (s *Session) TriggerExplosion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Explosion = explosionTrigger
	s.log.Debug("explosion triggered")
	s.emit(Event{Type: EventExplosion, Explosion: s.state.Explosion})
}

// PushLandmarks feeds one landmark callback. An empty slice means no hand
// was detected. A frame with the wrong point count is logged and treated as
// no hand. Safe to call from any goroutine; the newest sample simply
// replaces the previous one.
func (s *Session) PushLandmarks(points []Vec2) {
	if len(points) == 0 {
		s.PushHand(nil)
		return
	}
	h, err := HandFromPoints(points)
	if err != nil {
		s.log.Warn("malformed landmark frame", zap.Error(err))
		s.PushHand(nil)
		return
	}
	s.PushHand(&h)
}

// PushHand feeds one classified-or-absent hand. Ignored once tracking has
// been disabled, including by a failure that races with this call.
func (s *Session) PushHand(h *Hand) {
	for {
		if s.disabled.Load() {
			return
		}
		prev := s.gesture.Load()
		next := NextGesture(*prev, h)
		if s.gesture.CompareAndSwap(prev, &next) {
			return
		}
	}
}

// Gesture returns the most recent gesture sample.
func (s *Session) Gesture() GestureSample {
	return *s.gesture.Load()
}

// TrackingEnabled reports whether hand tracking is still accepted.
func (s *Session) TrackingEnabled() bool {
	return !s.disabled.Load()
}

// AttachFeed runs src on its own goroutine, feeding every frame into
// PushLandmarks. If src fails, the failure is logged, tracking is disabled
// for the rest of the session and the gesture falls back to "no hand". The
// returned channel yields the source's result once and is then closed; a
// source stopped by ctx yields nil.
func (s *Session) AttachFeed(ctx context.Context, src LandmarkSource) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := src.Run(ctx, s.PushLandmarks)
		if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			err = nil
		}
		if err != nil {
			s.disableTracking(err)
		}
		done <- err
	}()
	return done
}

func (s *Session) disableTracking(err error) {
	if s.disabled.Swap(true) {
		return
	}
	// A pusher that passed its disabled check may still swap in a hand;
	// retry until the cleared sample is the one stored.
	var cleared GestureSample
	for {
		prev := s.gesture.Load()
		cleared = NextGesture(*prev, nil)
		if s.gesture.CompareAndSwap(prev, &cleared) {
			break
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Error("hand tracking disabled", zap.Error(err))
	s.emit(Event{Type: EventTrackingLost, Gesture: cleared, Err: err})
}

// Tick advances the simulation by one fixed step.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var start time.Time
	if s.cfg.Debug {
		start = time.Now()
	}

	g := *s.gesture.Load()
	s.integ.Tick(&s.state, s.store, g, s.cfg.TimeStep)
	s.ticks++

	if g.Label != s.seen.Label || g.Detecting != s.seen.Detecting {
		s.emit(Event{Type: EventGestureChanged, Gesture: g})
	}
	s.seen = g

	if s.cfg.Debug {
		s.debug.record(time.Since(start))
		if s.ticks%uint64(s.cfg.DebugEvery) == 0 {
			s.debugLog()
		}
	}
}

// Ticks returns the number of completed ticks.
func (s *Session) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// State returns a copy of the animation state.
func (s *Session) State() AnimationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Frame is the render-sink view of the session after a completed tick.
type Frame struct {
	Tick      uint64
	Time      float64
	Positions []Vec3
	Colors    []Color
	Sizes     []float64
	// Rotation is the scene sway as (pitch, yaw) in radians.
	Rotation         Vec2
	Shape            Shape
	Palette          Palette
	Gesture          GestureSample
	Explosion        float64
	TrackingDisabled bool
}

// Frame copies the particle buffers and display state into dst, reusing
// dst's slices when they are large enough.
func (s *Session) Frame(dst *Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dst.Tick = s.ticks
	dst.Time = s.state.Time
	dst.Positions = append(dst.Positions[:0], s.store.Positions...)
	dst.Colors = append(dst.Colors[:0], s.store.Colors...)
	dst.Sizes = append(dst.Sizes[:0], s.store.Sizes...)
	dst.Rotation = s.state.Rotation()
	dst.Shape = s.state.Shape
	dst.Palette = s.state.Palette
	dst.Gesture = s.seen
	dst.Explosion = s.state.Explosion
	dst.TrackingDisabled = s.disabled.Load()
}

// emit delivers e to callbacks and the entity store. Caller holds s.mu.
func (s *Session) emit(e Event) {
	e.Tick = s.ticks
	e.Time = s.state.Time
	s.handlers.emit(e)
	if s.entities != nil {
		s.entities.EmitEvent(e)
	}
}
