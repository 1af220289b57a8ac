package swarm

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned by LoadScript for scripts without steps.
var ErrEmptyScript = errors.New("script has no steps")

// scriptStep is a single action in a control script.
type scriptStep struct {
	Action  string  `json:"action"`
	Shape   string  `json:"shape,omitempty"`
	Palette string  `json:"palette,omitempty"`
	Gesture string  `json:"gesture,omitempty"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a control script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences control events and synthetic hands across ticks.
// Call Step once per tick, before Session.Tick.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	hands     []*Hand
	done      bool

	// OnScreenshot receives "screenshot" step labels. Nil drops them.
	OnScreenshot func(label string)
}

// LoadScript parses a JSON control script. Every step is validated up
// front so a bad script fails before the session starts.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "shape":
		_, err := ParseShape(st.Shape)
		return err
	case "palette":
		_, err := ParsePalette(st.Palette)
		return err
	case "hand", "sweep":
		if st.Gesture == "" {
			return nil
		}
		_, err := ParseGesture(st.Gesture)
		return err
	case "cycle_palette", "explode", "release", "wait", "screenshot":
		return nil
	}
	return fmt.Errorf("unknown action %q", st.Action)
}

// Done reports whether every step has run and all queued hands were fed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one tick.
func (r *ScriptRunner) Step(s *Session) {
	if r.done {
		return
	}
	// Queued hands feed one per tick before the script advances.
	if len(r.hands) > 0 {
		s.PushHand(r.hands[0])
		r.hands = r.hands[1:]
		r.checkDone()
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "shape":
		shape, _ := ParseShape(st.Shape)
		_ = s.SetShape(shape)
	case "palette":
		p, _ := ParsePalette(st.Palette)
		_ = s.SetPalette(p)
	case "cycle_palette":
		s.CyclePalette()
	case "explode":
		s.TriggerExplosion()
	case "hand":
		h := SyntheticHand(st.gesture(), st.X, st.Y)
		s.PushHand(&h)
	case "sweep":
		r.queueSweep(st)
	case "release":
		s.PushHand(nil)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "screenshot":
		if r.OnScreenshot != nil {
			r.OnScreenshot(st.Label)
		}
	}
	r.checkDone()
}

// queueSweep queues a hand moving linearly from (FromX, FromY) to (ToX, ToY)
// over Frames ticks. Minimum two frames.
func (r *ScriptRunner) queueSweep(st scriptStep) {
	frames := max(st.Frames, 2)
	g := st.gesture()
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		h := SyntheticHand(g, lerp(st.FromX, st.ToX, t), lerp(st.FromY, st.ToY, t))
		r.hands = append(r.hands, &h)
	}
}

func (r *ScriptRunner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.hands) == 0 {
		r.done = true
	}
}

func (st scriptStep) gesture() Gesture {
	g, err := ParseGesture(st.Gesture)
	if err != nil {
		return GestureOpen
	}
	return g
}
