// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mapgesture

import (
	"math"
	"testing"
)

func newTransformEngine() (*Engine, *NullView) {
	v := NewNullView()
	e := NewEngine(v)
	return e, v
}

func TestSinglePointerPan_NoOpAtSamePosition(t *testing.T) {
	e, v := newTransformEngine()
	e.prev1 = Point{X: 50, Y: 50}
	e.singlePointerPan(Point{X: 50, Y: 50})
	if v.TranslateX != 0 || v.TranslateY != 0 {
		t.Errorf("pan at zero delta mutated view: (%v, %v)", v.TranslateX, v.TranslateY)
	}
}

func TestSinglePointerPan_AdvancesPrev1(t *testing.T) {
	e, _ := newTransformEngine()
	e.prev1 = Point{X: 50, Y: 50}
	e.singlePointerPan(Point{X: 80, Y: 40})
	if e.prev1 != (Point{X: 80, Y: 40}) {
		t.Errorf("prev1 = %v, want (80, 40)", e.prev1)
	}
}

func TestZoomAboutAnchor_PreservesAnchorWorldPoint(t *testing.T) {
	e, v := newTransformEngine()
	anchor := Point{X: 300, Y: 200}

	beforeX, _ := v.ScreenToGroundPlane(anchor.X, anchor.Y, 0)
	worldBefore := v.TranslateX + beforeX

	e.zoomAboutAnchor(anchor, 1.5)

	afterX, _ := v.ScreenToGroundPlane(anchor.X, anchor.Y, 0)
	worldAfter := v.TranslateX + afterX

	if math.Abs(worldAfter-worldBefore) > 1e-9 {
		t.Errorf("anchor world point moved: before=%v after=%v", worldBefore, worldAfter)
	}
	if v.Zoom_ != 11.5 {
		t.Errorf("Zoom_ = %v, want 11.5", v.Zoom_)
	}
}

func TestZoomAboutAnchor_ZeroDeltaNoOp(t *testing.T) {
	e, v := newTransformEngine()
	e.zoomAboutAnchor(Point{X: 100, Y: 100}, 0)
	if v.Calls["Zoom"] != 0 {
		t.Errorf("Zoom called %d times for a zero delta", v.Calls["Zoom"])
	}
}

func TestStartSingleZoom_AnchorsAtPos(t *testing.T) {
	e, v := newTransformEngine()
	v.Zoom_ = 12
	e.startSingleZoom(Point{X: 40, Y: 60})
	if e.singleZoomStartZoom != 12 {
		t.Errorf("singleZoomStartZoom = %v, want 12", e.singleZoomStartZoom)
	}
	if e.doubleTapStartPos != (Point{X: 40, Y: 60}) {
		t.Errorf("doubleTapStartPos = %v, want (40, 60)", e.doubleTapStartPos)
	}
}

func TestSinglePointerZoom_DragUpZoomsOut(t *testing.T) {
	e, v := newTransformEngine()
	e.startSingleZoom(Point{X: 400, Y: 300})
	e.singlePointerZoom(Point{X: 400, Y: 100}) // dragged up: deltaY negative
	if v.Zoom_ >= 10 {
		t.Errorf("Zoom_ = %v, want < 10 after upward drag", v.Zoom_)
	}
}

func TestDualPointerPan_PanOnly(t *testing.T) {
	e, v := newTransformEngine()
	e.pan, e.zoom, e.rotate = true, false, false
	e.prev1, e.prev2 = Point{X: 100, Y: 300}, Point{X: 500, Y: 300}

	e.dualPointerPan(Point{X: 150, Y: 300}, Point{X: 550, Y: 300}, true, true)

	if v.Calls["Zoom"] != 0 {
		t.Error("scale applied despite scale flag semantics gated on e.zoom=false")
	}
	if v.Calls["Yaw"] != 0 {
		t.Error("rotation applied despite e.rotate=false")
	}
	if v.TranslateX == 0 {
		t.Error("pan was not applied")
	}
	if e.prev1 != (Point{X: 150, Y: 300}) || e.prev2 != (Point{X: 550, Y: 300}) {
		t.Errorf("prev1/prev2 not advanced: %v, %v", e.prev1, e.prev2)
	}
}

func TestDualPointerPan_ScaleFromDistanceRatio(t *testing.T) {
	e, v := newTransformEngine()
	e.pan, e.zoom, e.rotate = false, true, false
	e.prev1, e.prev2 = Point{X: 100, Y: 300}, Point{X: 500, Y: 300}

	// Fingers spread from 400px apart to 800px apart: distance doubles.
	e.dualPointerPan(Point{X: 0, Y: 300}, Point{X: 800, Y: 300}, true, true)

	if math.Abs(v.Zoom_-11) > 1e-9 {
		t.Errorf("Zoom_ = %v, want 11 (log2(2) = 1 level)", v.Zoom_)
	}
}

func TestDualPointerTilt_ClampsToMaxPitch(t *testing.T) {
	e, v := newTransformEngine()
	e.prev1 = Point{X: 400, Y: 600}
	e.dualPointerTilt(Point{X: 400, Y: 0}) // full-height upward drag
	if v.Pitch_ != v.GetMaxPitch() {
		t.Errorf("Pitch_ = %v, want clamped to %v", v.Pitch_, v.GetMaxPitch())
	}
}

func TestDualPointerTilt_ZeroHeightIsNoOp(t *testing.T) {
	e, v := newTransformEngine()
	v.H = 0
	e.prev1 = Point{X: 400, Y: 600}
	e.dualPointerTilt(Point{X: 400, Y: 0})
	if v.Pitch_ != 0 {
		t.Errorf("Pitch_ = %v, want 0 when view height is zero", v.Pitch_)
	}
}

// TestDualPointerTilt_ClampsToViewMaxPitchBelowDefault proves the
// clamp is computed by the engine against view.GetMaxPitch(), not
// hardcoded to MaxPitchForPanLimiting or delegated to the View: a
// tighter view-reported max must win even though NullView itself no
// longer clamps Pitch.
func TestDualPointerTilt_ClampsToViewMaxPitchBelowDefault(t *testing.T) {
	e, v := newTransformEngine()
	v.MaxPitch = 0.2 // well below MaxPitchForPanLimiting
	e.prev1 = Point{X: 400, Y: 600}
	e.dualPointerTilt(Point{X: 400, Y: 0}) // full-height upward drag
	if v.Pitch_ != 0.2 {
		t.Errorf("Pitch_ = %v, want clamped to view.MaxPitch = 0.2", v.Pitch_)
	}
}

// TestDualPointerTilt_ClampIsRelativeToCurrentPitch confirms the
// clamp targets GetPitch()+delta, not just the delta in isolation, so
// a pitch already near the ceiling only receives the remaining room.
func TestDualPointerTilt_ClampIsRelativeToCurrentPitch(t *testing.T) {
	e, v := newTransformEngine()
	v.Pitch_ = v.GetMaxPitch() - 0.05
	e.prev1 = Point{X: 400, Y: 600}
	e.dualPointerTilt(Point{X: 400, Y: 0}) // large upward drag
	if v.Pitch_ != v.GetMaxPitch() {
		t.Errorf("Pitch_ = %v, want clamped to %v", v.Pitch_, v.GetMaxPitch())
	}
}

func TestCalculateRotatingScalingFactor_RotationDominates(t *testing.T) {
	prev1, prev2 := Point{X: 0, Y: 0}, Point{X: 100, Y: 0}
	curr1, curr2 := Point{X: 0, Y: 0}, Point{X: 70.7, Y: 70.7} // ~45deg rotate, same length
	got := calculateRotatingScalingFactor(prev1, prev2, curr1, curr2)
	if got <= 0 {
		t.Errorf("calculateRotatingScalingFactor() = %v, want > 0 (rotation dominant)", got)
	}
}

func TestCalculateRotatingScalingFactor_ScaleDominates(t *testing.T) {
	prev1, prev2 := Point{X: 0, Y: 0}, Point{X: 100, Y: 0}
	curr1, curr2 := Point{X: 0, Y: 0}, Point{X: 200, Y: 0} // pure scale, no rotation
	got := calculateRotatingScalingFactor(prev1, prev2, curr1, curr2)
	if got >= 0 {
		t.Errorf("calculateRotatingScalingFactor() = %v, want < 0 (scale dominant)", got)
	}
}

func TestCalculateRotatingScalingFactor_AmbiguousReturnsZero(t *testing.T) {
	prev1, prev2 := Point{X: 0, Y: 0}, Point{X: 100, Y: 0}
	curr1, curr2 := Point{X: 0, Y: 0}, Point{X: 110, Y: 20} // some of both, neither 2x dominant
	got := calculateRotatingScalingFactor(prev1, prev2, curr1, curr2)
	if got != 0 {
		t.Errorf("calculateRotatingScalingFactor() = %v, want 0 for ambiguous motion", got)
	}
}

func TestCalculateRotatingScalingFactor_NoMotionIsZero(t *testing.T) {
	p1, p2 := Point{X: 0, Y: 0}, Point{X: 100, Y: 0}
	got := calculateRotatingScalingFactor(p1, p2, p1, p2)
	if got != 0 {
		t.Errorf("calculateRotatingScalingFactor() = %v, want 0 for identical points", got)
	}
}

func TestNormalizeAngle_WrapsToPiRange(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{math.Pi + 0.1, -math.Pi + 0.1},
		{-math.Pi - 0.1, math.Pi - 0.1},
		{3 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := normalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("normalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestStickyReclassification pins down the resolution of how the two
// rotate/scale dominance checks in this package divide responsibility:
// dualPointerGuess's swipe-length heuristic governs only the initial
// DualGuess transition into DualRotate, while
// calculateRotatingScalingFactor's 2x-dominance ratio governs Sticky
// re-classification between DualRotate and DualScale once already
// committed to one of them (StickyFinal does not re-classify).
func TestStickyReclassification(t *testing.T) {
	e, v := newTransformEngine()
	e.SetPanningMode(Sticky)
	e.pan, e.zoom, e.rotate, e.tilt = true, true, true, true
	e.mode = DualRotate
	e.prev1, e.prev2 = Point{X: 0, Y: 0}, Point{X: 100, Y: 0}

	// Pure scale motion should reclassify DualRotate -> DualScale.
	consumed := e.onMove(Point{X: 0, Y: 0}, Point{X: 200, Y: 0})
	if consumed {
		t.Fatal("onMove reported consumed with no interaction listener")
	}
	if e.mode != DualScale {
		t.Errorf("mode = %v, want DualScale after dominant scale motion", e.mode)
	}
	if v.Calls["Yaw"] != 0 {
		t.Error("Yaw applied after reclassifying to DualScale")
	}
}
