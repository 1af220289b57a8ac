package swarm

import (
	"errors"
	"testing"
)

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"no steps", `{"steps": []}`, ErrEmptyScript},
		{"unknown shape", `{"steps": [{"action": "shape", "shape": "blob"}]}`, ErrUnknownShape},
		{"unknown palette", `{"steps": [{"action": "palette", "palette": "x"}]}`, ErrUnknownPalette},
		{"unknown gesture", `{"steps": [{"action": "hand", "gesture": "wave"}]}`, ErrUnknownGesture},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := LoadScript([]byte(`{"steps": [{"action": "dance"}]}`)); err == nil {
		t.Error("expected error for unknown action")
	}
	if _, err := LoadScript([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestScriptRunnerSequence(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "shape", "shape": "heart"},
		{"action": "hand", "gesture": "fist", "x": 0.5, "y": 0.5},
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "end"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	var shots []string
	r.OnScreenshot = func(label string) { shots = append(shots, label) }

	s := newTestSession(t, 20)
	steps := 0
	for !r.Done() && steps < 100 {
		r.Step(s)
		s.Tick()
		steps++
		if steps == 1 && s.State().Shape != ShapeHeart {
			t.Errorf("after step 1 shape = %v, want heart", s.State().Shape)
		}
		if steps == 2 && s.Gesture().Label != GestureFist {
			t.Errorf("after step 2 gesture = %v, want fist", s.Gesture().Label)
		}
	}
	// shape, hand, three wait ticks, screenshot.
	if steps != 6 {
		t.Errorf("script took %d ticks, want 6", steps)
	}
	if len(shots) != 1 || shots[0] != "end" {
		t.Errorf("screenshots = %v", shots)
	}
	r.Step(s)
	if !r.Done() {
		t.Error("runner left the done state")
	}
}

func TestScriptRunnerSweep(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "sweep", "gesture": "pinch", "fromX": 0.2, "fromY": 0.5, "toX": 0.8, "toY": 0.5, "frames": 4},
		{"action": "release"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSession(t, 10)

	r.Step(s) // queues the sweep
	var xs []float64
	for i := 0; i < 4; i++ {
		r.Step(s)
		g := s.Gesture()
		if g.Label != GesturePinch {
			t.Fatalf("sweep frame %d gesture = %v", i, g.Label)
		}
		xs = append(xs, g.Hand.X)
	}
	want := []float64{0.2, 0.4, 0.6, 0.8}
	for i := range want {
		assertNear(t, "sweep x", xs[i], want[i])
	}

	r.Step(s)
	if s.Gesture().Detecting {
		t.Error("release should clear the hand")
	}
	if !r.Done() {
		t.Error("runner should be done")
	}
}

func TestScriptRunnerControls(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "palette", "palette": "fire"},
		{"action": "cycle_palette"},
		{"action": "explode"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSession(t, 10)
	for !r.Done() {
		r.Step(s)
	}
	st := s.State()
	if st.Palette != PaletteNeon {
		t.Errorf("palette = %v, want neon", st.Palette)
	}
	assertNear(t, "Explosion", st.Explosion, 1)
}
