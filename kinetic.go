// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mapgesture

import "math"

// Kinetic decay constants.
const (
	// DampingPan is the exponential decay rate for pan velocity, s^-1.
	DampingPan = 4.0
	// DampingZoom is the exponential decay rate for zoom velocity, s^-1.
	DampingZoom = 6.0

	// ThresholdStartPan is the minimum release pan speed, in pixels
	// per second, required to arm a fling.
	ThresholdStartPan = 350.0
	// ThresholdStopPan is the pan speed, in pixels per second, below
	// which a fling is considered finished.
	ThresholdStopPan = 24.0

	// ThresholdStartZoom is the minimum release zoom speed, in
	// zoom-levels per second, required to arm a fling.
	ThresholdStartZoom = 1.0
	// ThresholdStopZoom is the zoom speed, in zoom-levels per second,
	// below which a fling is considered finished.
	ThresholdStopZoom = 0.3
)

// armKineticPan arms the pan fling from an estimated release velocity
// (in screen pixels/second), converting to map-plane meters/second.
// Velocities below ThresholdStartPan are discarded rather than armed.
func (e *Engine) armKineticPan(velocityPxPerSec Point) {
	if velocityPxPerSec.Length() < ThresholdStartPan {
		e.velocityPan = Point{}
		return
	}
	ppm := e.view.PixelsPerMeter()
	scale := e.view.PixelScale()
	if ppm <= 0 {
		e.velocityPan = Point{}
		return
	}
	// velocityPanPixels = velocityPan * pixelsPerMeter / pixelScale, so
	// invert that to recover velocityPan from a pixel-space estimate.
	factor := scale / ppm
	e.velocityPan = Point{X: velocityPxPerSec.X * factor, Y: velocityPxPerSec.Y * factor}
}

// armKineticZoom arms the zoom fling from an estimated release
// velocity in zoom-levels/second. Velocities below ThresholdStartZoom
// are discarded.
func (e *Engine) armKineticZoom(velocityZoomPerSec float64) {
	if math.Abs(velocityZoomPerSec) < ThresholdStartZoom {
		e.velocityZoom = 0
		return
	}
	e.velocityZoom = velocityZoomPerSec
}

// Update advances the kinetic decay simulation by dt seconds and
// returns whether a fling is still in progress afterward. dt < 0 is
// clamped to 0.
func (e *Engine) Update(dt float64) bool {
	if dt < 0 {
		dt = 0
	}

	velocityPanPixels := e.velocityPanPixels()
	active := velocityPanPixels.Length() > ThresholdStopPan || math.Abs(e.velocityZoom) > ThresholdStopZoom
	if !active {
		e.velocityPan = Point{}
		e.velocityZoom = 0
		return false
	}

	e.velocityPan = e.velocityPan.Scale(1 - math.Min(dt*DampingPan, 1))
	e.view.Translate(dt*e.velocityPan.X, dt*e.velocityPan.Y)

	e.velocityZoom *= 1 - math.Min(dt*DampingZoom, 1)
	e.view.Zoom(dt * e.velocityZoom)

	velocityPanPixels = e.velocityPanPixels()
	return velocityPanPixels.Length() > ThresholdStopPan || math.Abs(e.velocityZoom) > ThresholdStopZoom
}

func (e *Engine) velocityPanPixels() Point {
	ppm := e.view.PixelsPerMeter()
	scale := e.view.PixelScale()
	if scale == 0 {
		scale = 1
	}
	return e.velocityPan.Scale(ppm / scale)
}
