package swarm

import (
	"errors"
	"fmt"
)

// ErrLandmarkCount is returned when a landmark frame does not carry exactly
// LandmarkCount points.
var ErrLandmarkCount = errors.New("landmark frame must have 21 points")

// ErrUnknownGesture is returned by ParseGesture for names outside the gesture set.
var ErrUnknownGesture = errors.New("unknown gesture")

// LandmarkCount is the number of tracked points on a hand.
const LandmarkCount = 21

// Anatomical landmark indices.
const (
	LandmarkWrist      = 0
	LandmarkThumbTip   = 4
	LandmarkIndexPIP   = 6
	LandmarkIndexTip   = 8
	LandmarkMiddleBase = 9
	LandmarkMiddlePIP  = 10
	LandmarkMiddleTip  = 12
	LandmarkRingPIP    = 14
	LandmarkRingTip    = 16
	LandmarkPinkyPIP   = 18
	LandmarkPinkyTip   = 20
)

// Classifier thresholds.
const (
	pinchThreshold = 0.08
	spreadGain     = 5.0
	fistSpread     = 0.3
)

// Hand holds one detected hand's landmarks in normalized frame coordinates.
type Hand [LandmarkCount]Vec2

// HandFromPoints converts a landmark slice delivered by a tracker into a Hand.
func HandFromPoints(points []Vec2) (Hand, error) {
	var h Hand
	if len(points) != LandmarkCount {
		return h, fmt.Errorf("hand from %d points: %w", len(points), ErrLandmarkCount)
	}
	copy(h[:], points)
	return h, nil
}

// Gesture is a discrete hand pose.
type Gesture uint8

const (
	GestureOpen  Gesture = iota // neutral open hand (default)
	GestureFist                 // every fingertip below its PIP joint
	GesturePinch                // thumb and index tips touching
	GesturePeace                // index and middle up, ring and pinky down
)

var gestureNames = [...]string{"open", "fist", "pinch", "peace"}

// String returns the lowercase gesture name.
func (g Gesture) String() string {
	if int(g) < len(gestureNames) {
		return gestureNames[g]
	}
	return fmt.Sprintf("gesture(%d)", uint8(g))
}

// ParseGesture maps a gesture name to its Gesture.
func ParseGesture(name string) (Gesture, error) {
	for i, n := range gestureNames {
		if n == name {
			return Gesture(i), nil
		}
	}
	return 0, fmt.Errorf("parse gesture %q: %w", name, ErrUnknownGesture)
}

// GestureSample is the control signal derived from one landmark callback.
type GestureSample struct {
	Label Gesture
	// Spread scales the target cloud. 1 is neutral.
	Spread float64
	// Hand is the palm position; only meaningful when HandPresent is true.
	Hand        Vec2
	HandPresent bool
	Detecting   bool
}

// NeutralGesture is the sample used before any hand has been seen.
var NeutralGesture = GestureSample{Label: GestureOpen, Spread: 1}

// Classify derives a gesture sample from a detected hand. Tests run in the
// fixed order open, fist, peace, pinch; each later match overwrites the
// label, so a pinch always wins.
func Classify(h Hand) GestureSample {
	palm := h[LandmarkWrist].Mid(h[LandmarkMiddleBase])
	rawSpread := h[LandmarkThumbTip].Dist(h[LandmarkPinkyTip])
	pinchDist := h[LandmarkThumbTip].Dist(h[LandmarkIndexTip])

	label := GestureOpen
	if fingersClosed(h) {
		label = GestureFist
	}
	if h.fingerUp(LandmarkIndexTip, LandmarkIndexPIP) &&
		h.fingerUp(LandmarkMiddleTip, LandmarkMiddlePIP) &&
		h.fingerDown(LandmarkRingTip, LandmarkRingPIP) &&
		h.fingerDown(LandmarkPinkyTip, LandmarkPinkyPIP) {
		label = GesturePeace
	}
	if pinchDist < pinchThreshold {
		label = GesturePinch
	}

	spread := 1 + rawSpread*spreadGain
	if label == GestureFist {
		spread = fistSpread
	}
	return GestureSample{
		Label:       label,
		Spread:      spread,
		Hand:        palm,
		HandPresent: true,
		Detecting:   true,
	}
}

// NextGesture folds one landmark callback into the previous sample. A nil
// hand keeps the previous label and spread and clears the hand position.
func NextGesture(prev GestureSample, h *Hand) GestureSample {
	if h == nil {
		prev.Hand = Vec2{}
		prev.HandPresent = false
		prev.Detecting = false
		return prev
	}
	return Classify(*h)
}

// fingersClosed reports whether all four fingertips sit below their PIP joints.
func fingersClosed(h Hand) bool {
	return h.fingerDown(LandmarkIndexTip, LandmarkIndexPIP) &&
		h.fingerDown(LandmarkMiddleTip, LandmarkMiddlePIP) &&
		h.fingerDown(LandmarkRingTip, LandmarkRingPIP) &&
		h.fingerDown(LandmarkPinkyTip, LandmarkPinkyPIP)
}

// Y grows downward, so a raised fingertip has the smaller Y.
func (h *Hand) fingerUp(tip, pip int) bool   { return h[tip].Y < h[pip].Y }
func (h *Hand) fingerDown(tip, pip int) bool { return h[tip].Y > h[pip].Y }
