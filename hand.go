package swarm

// Finger layout of a synthetic hand, relative to the palm center. Distances
// are in normalized frame units.
const (
	synthWristDrop = 0.10 // wrist below palm
	synthBaseRise  = 0.10 // middle-finger base above palm
	synthPIPRise   = 0.15 // PIP joints above palm
	synthTipUp     = 0.25 // raised fingertip above palm
	synthTipDown   = 0.08 // curled fingertip above palm (still below the PIP)
	synthThumbOut  = 0.15 // open thumb to the left of palm
	synthThumbTuck = 0.12 // tucked thumb to the left of palm
)

// finger x-offsets from palm: index, middle, ring, pinky.
var synthFingerX = [4]float64{-0.04, 0, 0.04, 0.08}

// fingertip, PIP and MCP landmark indices per finger (index..pinky).
var fingerJoints = [4][3]int{
	{8, 6, 5},
	{12, 10, 9},
	{16, 14, 13},
	{20, 18, 17},
}

// SyntheticHand builds landmarks that Classify reads as gesture g with the
// palm at (x, y). It stands in for a tracker in tests, scripts and pointer
// emulation.
func SyntheticHand(g Gesture, x, y float64) Hand {
	var up [4]bool
	switch g {
	case GestureOpen, GesturePinch:
		up = [4]bool{true, true, true, true}
	case GesturePeace:
		up = [4]bool{true, true, false, false}
	case GestureFist:
		// all curled
	}

	var h Hand
	h[LandmarkWrist] = Vec2{x, y + synthWristDrop}
	for f, j := range fingerJoints {
		fx := x + synthFingerX[f]
		tipY := y - synthTipDown
		if up[f] {
			tipY = y - synthTipUp
		}
		tip, pip, mcp := j[0], j[1], j[2]
		h[mcp] = Vec2{fx, y - synthBaseRise}
		h[pip] = Vec2{fx, y - synthPIPRise}
		h[pip+1] = Vec2{fx, (y-synthPIPRise+tipY)/2} // DIP
		h[tip] = Vec2{fx, tipY}
	}

	thumb := Vec2{x - synthThumbOut, y}
	switch g {
	case GestureFist, GesturePeace:
		thumb = Vec2{x - synthThumbTuck, y}
	case GesturePinch:
		idx := h[LandmarkIndexTip]
		thumb = Vec2{idx.X + 0.02, idx.Y + 0.02}
	}
	// Thumb chain 1-3 runs from the wrist toward the tip.
	for k := 1; k <= 3; k++ {
		f := float64(k) / 4
		h[k] = Vec2{
			lerp(h[LandmarkWrist].X, thumb.X, f),
			lerp(h[LandmarkWrist].Y, thumb.Y, f),
		}
	}
	h[LandmarkThumbTip] = thumb
	return h
}
