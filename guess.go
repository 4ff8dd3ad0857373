// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mapgesture

import "math"

// Dual-pointer classification thresholds, in inches.
const (
	// GuessMaxDeltaYInches bounds how far apart (vertically) two
	// fingers may be and still be considered candidates for tilt.
	GuessMaxDeltaYInches = 1.0

	// GuessMinSwipeLengthSameInches is the minimum accumulated swipe
	// length, with both fingers moving the same vertical direction,
	// to commit to DualTilt.
	GuessMinSwipeLengthSameInches = 0.1

	// GuessMinSwipeLengthOppositeInches is the minimum accumulated
	// swipe length, with fingers moving opposite vertical directions,
	// to commit to rotate/scale.
	GuessMinSwipeLengthOppositeInches = 0.075
)

// dualPointerGuessSingleFamily resolves the easy case first: when at
// most one of the two dual-gesture families (tilt; rotate-or-zoom) is
// enabled, the classification is immediate and the swipe heuristic
// below never runs.
func (e *Engine) dualPointerGuessSingleFamily() (mode GestureMode, resolved bool) {
	rotateOrZoom := e.rotate || e.zoom
	switch {
	case e.tilt && rotateOrZoom:
		return 0, false
	case e.tilt:
		return DualTilt, true
	case rotateOrZoom:
		return DualFree, true
	default:
		return SingleClickGuess, true
	}
}

// dualPointerGuess classifies a DualGuess mode into its committed
// successor using an accumulated-swipe heuristic. Callers must first
// try dualPointerGuessSingleFamily; this only runs when
// both families are enabled. It mutates e.swipe1/e.swipe2, accumulating
// DPI-normalized displacement since the last call.
func (e *Engine) dualPointerGuess(pos1, pos2 Point) GestureMode {
	dpi := e.effectiveDPI()

	if math.Abs(pos1.Y-pos2.Y)/dpi > GuessMaxDeltaYInches {
		return DualFree
	}

	e.swipe1.X += (pos1.X - e.prev1.X) / dpi
	e.swipe1.Y += (pos1.Y - e.prev1.Y) / dpi
	e.swipe2.X += (pos2.X - e.prev2.X) / dpi
	e.swipe2.Y += (pos2.Y - e.prev2.Y) / dpi

	l1 := e.swipe1.Length()
	l2 := e.swipe2.Length()
	yProduct := e.swipe1.Y * e.swipe2.Y

	switch {
	case (l1 > GuessMinSwipeLengthOppositeInches || l2 > GuessMinSwipeLengthOppositeInches) && yProduct <= 0:
		// Opposite vertical motion: rotate/scale.
		if e.panningMode == Free {
			return DualFree
		}
		if e.rotate || e.zoom {
			return DualRotate
		}
		return DualGuess
	case (l1 > GuessMinSwipeLengthSameInches || l2 > GuessMinSwipeLengthSameInches) && yProduct > 0 && e.tilt:
		// Same vertical motion: tilt.
		return DualTilt
	default:
		return DualGuess
	}
}

func (e *Engine) effectiveDPI() float64 {
	if e.dpi <= 0 {
		return DefaultDPI
	}
	return e.dpi
}
