package engine

import "math"

// Interpolation constants.
const (
	moveEasing    = 0.5  // share of the horizontal gap closed per update
	rotationDecay = 0.85 // visual rotation multiplier per update
	snapEpsilon   = 0.01
)

// UpdateAnimation moves the current piece's visual fields toward its logical
// position. It never changes X, Y, the matrix or any counter.
//
// FY falls at one row per dropIntervalMs and never overshoots Y; if FY is
// already past Y it snaps. FX closes half the gap per call. Calls with
// deltaMs <= 0 change nothing. nowMs is the host frame clock; it is
// currently unused.
func UpdateAnimation(s *State, deltaMs, dropIntervalMs float64, nowMs int64) {
	if s.Over || s.Current == nil || deltaMs <= 0 {
		return
	}
	p := s.Current

	target := float64(p.Y)
	switch {
	case dropIntervalMs <= 0:
		p.FY = target
	case p.FY < target-snapEpsilon:
		p.FY = math.Min(p.FY+deltaMs/dropIntervalMs, target)
	default:
		p.FY = target
	}

	gap := float64(p.X) - p.FX
	if math.Abs(gap) > snapEpsilon {
		p.FX += gap * moveEasing
	} else {
		p.FX = float64(p.X)
	}

	if math.Abs(p.Rotation) > snapEpsilon {
		p.Rotation *= rotationDecay
	} else {
		p.Rotation = 0
	}
}
