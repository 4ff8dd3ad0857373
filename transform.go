// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mapgesture

import "math"

// SingleZoomSensitivity converts vertical drag pixels into zoom-level
// delta during a single-finger drag-zoom.
const SingleZoomSensitivity = 0.005

// RotationScalingThresholdSticky is the factor magnitude above which
// a Sticky dual gesture switches to DualRotate (or below its negation,
// DualScale) during re-classification.
const RotationScalingThresholdSticky = 0.3

// getTranslation projects start and end through the ground plane at
// start's elevation and returns the pan vector (dx, dy) that would
// move the ground-plane point under start to sit under end.
//
// Near the horizon (pitch above MaxPitchForPanLimiting) screen-plane
// projection becomes numerically unstable, so the magnitude of the
// ground-plane delta is clamped to the screen-pixel delta divided by
// pixels-per-meter, preventing runaway pan.
func (e *Engine) getTranslation(start, end Point) (dx, dy float64) {
	elev := e.view.ScreenPositionToLngLat(start.X, start.Y)
	sx, sy := e.view.ScreenToGroundPlane(start.X, start.Y, elev)
	ex, ey := e.view.ScreenToGroundPlane(end.X, end.Y, elev)
	if isNonFinite(sx) || isNonFinite(sy) || isNonFinite(ex) || isNonFinite(ey) {
		return 0, 0
	}
	dx, dy = sx-ex, sy-ey

	if e.view.GetPitch() > MaxPitchForPanLimiting {
		if ppm := e.view.PixelsPerMeter(); ppm > 0 {
			screenDist := end.Sub(start).Length()
			maxDist := screenDist / ppm
			if d := math.Hypot(dx, dy); d > maxDist && d > 0 {
				scale := maxDist / d
				dx *= scale
				dy *= scale
			}
		}
	}
	return dx, dy
}

func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// singlePointerPan translates the view from prev1 to pos and advances
// prev1.
func (e *Engine) singlePointerPan(pos Point) {
	if pos == e.prev1 {
		return
	}
	dx, dy := e.getTranslation(e.prev1, pos)
	e.view.Translate(dx, dy)
	e.prev1 = pos
}

// startSingleZoom anchors a drag-zoom at pos: the anchor screen point
// is held fixed in ground-plane coordinates while the drag proceeds.
func (e *Engine) startSingleZoom(pos Point) {
	e.singleZoomStartZoom = e.view.GetZoom()
	e.doubleTapStartPos = pos
	e.prev1 = pos
}

// singlePointerZoom applies a vertical-drag zoom anchored at
// doubleTapStartPos, keeping the anchor's ground-plane point fixed on
// screen.
func (e *Engine) singlePointerZoom(pos Point) {
	deltaY := pos.Y - e.prev1.Y
	deltaZoom := deltaY * SingleZoomSensitivity
	e.zoomAboutAnchor(e.doubleTapStartPos, deltaZoom)
	e.prev1 = pos
}

// zoomAboutAnchor applies deltaZoom while keeping the ground-plane
// point under anchor fixed on screen: project the anchor before and
// after the zoom, then translate by the difference.
func (e *Engine) zoomAboutAnchor(anchor Point, deltaZoom float64) {
	if deltaZoom == 0 {
		return
	}
	elev := e.view.ScreenPositionToLngLat(anchor.X, anchor.Y)
	startX, startY := e.view.ScreenToGroundPlane(anchor.X, anchor.Y, elev)
	e.view.Zoom(deltaZoom)
	endX, endY := e.view.ScreenToGroundPlane(anchor.X, anchor.Y, elev)
	if isNonFinite(startX) || isNonFinite(startY) || isNonFinite(endX) || isNonFinite(endY) {
		return
	}
	e.view.Translate(startX-endX, startY-endY)
}

// dualPointerPan applies pan (if enabled), scale (if enabled and
// requested), and rotate (if enabled and requested) for two active
// pointers, then advances prev1/prev2.
func (e *Engine) dualPointerPan(pos1, pos2 Point, rotate, scale bool) {
	prevC := e.prev1.Midpoint(e.prev2)
	currC := pos1.Midpoint(pos2)

	if e.pan {
		dx, dy := e.getTranslation(prevC, currC)
		e.view.Translate(dx, dy)
	}

	if scale && e.zoom {
		prevDist := e.prev1.Distance(e.prev2)
		currDist := pos1.Distance(pos2)
		if prevDist > 0 && currDist > 0 {
			e.zoomAboutAnchor(currC, math.Log2(currDist/prevDist))
		}
	}

	if rotate && e.rotate {
		prevAngle := math.Atan2(e.prev2.Y-e.prev1.Y, e.prev2.X-e.prev1.X)
		currAngle := math.Atan2(pos2.Y-pos1.Y, pos2.X-pos1.X)
		deltaTheta := currAngle - prevAngle
		if deltaTheta != 0 {
			e.rotateAboutAnchor(currC, deltaTheta)
		}
	}

	e.prev1, e.prev2 = pos1, pos2
}

// rotateAboutAnchor yaws the view by deltaTheta while keeping the
// ground-plane point under anchor fixed on screen: the ground-plane
// offset of the anchor is rotated by -deltaTheta and the view
// translated by the difference before applying the yaw, so the anchor
// stays put.
func (e *Engine) rotateAboutAnchor(anchor Point, deltaTheta float64) {
	elev := e.view.ScreenPositionToLngLat(anchor.X, anchor.Y)
	ax, ay := e.view.ScreenToGroundPlane(anchor.X, anchor.Y, elev)
	if isNonFinite(ax) || isNonFinite(ay) {
		return
	}
	sin, cos := math.Sincos(-deltaTheta)
	rx := ax*cos - ay*sin
	ry := ax*sin + ay*cos
	e.view.Translate(ax-rx, ay-ry)
	e.view.Yaw(deltaTheta)
}

// dualPointerTilt maps vertical motion of pointer 1 to a pitch change,
// clamping the resulting target pitch to [0, min(75deg,
// view.GetMaxPitch())] before handing the view only the clamped delta.
// The view itself is not trusted to clamp.
func (e *Engine) dualPointerTilt(pos1 Point) {
	h := e.view.Height()
	if h == 0 {
		e.prev1 = pos1
		return
	}
	angle := -math.Pi * (pos1.Y - e.prev1.Y) / h

	maxPitch := e.view.GetMaxPitch()
	if maxPitch > MaxPitchForPanLimiting {
		maxPitch = MaxPitchForPanLimiting
	}
	current := e.view.GetPitch()
	target := current + angle
	if target < 0 {
		target = 0
	}
	if target > maxPitch {
		target = maxPitch
	}
	if delta := target - current; delta != 0 {
		e.view.Pitch(delta)
	}
	e.prev1 = pos1
}

// calculateRotatingScalingFactor compares how much of a dual-pointer
// move is rotation versus scale, for Sticky re-classification while
// already in DualRotate/DualScale (StickyFinal does not re-classify).
// It returns +angleChange if rotation dominates scale by at least 2x,
// -scaleChange if scale dominates rotation by at least 2x, else 0.
func calculateRotatingScalingFactor(prev1, prev2, curr1, curr2 Point) float64 {
	prevAngle := math.Atan2(prev2.Y-prev1.Y, prev2.X-prev1.X)
	currAngle := math.Atan2(curr2.Y-curr1.Y, curr2.X-curr1.X)
	angleChange := math.Abs(normalizeAngle(currAngle - prevAngle))

	prevDist := prev1.Distance(prev2)
	currDist := curr1.Distance(curr2)
	scaleChange := 0.0
	if prevDist > 0 {
		scaleChange = math.Abs(currDist/prevDist - 1)
	}

	switch {
	case scaleChange == 0 && angleChange == 0:
		return 0
	case prevDist == 0:
		return angleChange
	case angleChange >= scaleChange*2:
		return angleChange
	case scaleChange >= angleChange*2:
		return -scaleChange
	default:
		return 0
	}
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
