// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mapgesture

import (
	"math"
	"time"
)

// Timing constants governing tap/long-press/double-tap recognition and
// the hold windows after a dual-pointer release.
const (
	DoubleTapTimeout        = 300 * time.Millisecond
	LongPressTimeout        = 500 * time.Millisecond
	DualStopHoldDuration    = 500 * time.Millisecond
	DualKineticHoldDuration = 200 * time.Millisecond

	TapMovementThresholdInches = 0.1

	// DefaultDPI is used whenever the host cannot report a true DPI;
	// at 160 DPI the effective tap threshold is 16px, matching legacy
	// pixel-based thresholds.
	DefaultDPI = 160.0

	// velocitySmoothingTau is the EMA time constant, in seconds, used
	// to estimate release velocity from Move deltas.
	velocitySmoothingTau = 0.06
)

// Engine is the gesture recognition state machine. The zero value is
// not usable; construct with NewEngine.
//
// All exported methods except the listener setters are expected to be
// called from a single thread (typically the UI thread), in strict
// serial order. Listener setters may be called from any thread;
// they are synchronized internally.
type Engine struct {
	listenerBroker

	view View
	clock func() time.Time

	mode             GestureMode
	pointersDown     int
	noDualPointerYet bool
	interactionConsumed bool

	prev1, prev2 Point

	firstTapPos  Point
	firstTapTime time.Time

	p1DownTime time.Time

	dualReleaseTime time.Time

	doubleTapStartPos   Point
	singleZoomStartZoom float64

	swipe1, swipe2 Point

	velocityPan  Point
	velocityZoom float64

	lastMoveTime         time.Time
	panVelocityEstimate  Point
	zoomVelocityEstimate float64

	dpi         float64
	panningMode PanningMode

	zoom, pan, doubleTap, doubleTapDrag, tilt, rotate bool
}

// NewEngine returns an Engine bound to view, with default DPI 160, all
// gesture families enabled, Free panning mode, and mode SingleClickGuess.
func NewEngine(view View) *Engine {
	e := &Engine{
		view:          view,
		clock:         time.Now,
		mode:          SingleClickGuess,
		dpi:           DefaultDPI,
		panningMode:   Free,
		zoom:          true,
		pan:           true,
		doubleTap:     true,
		doubleTapDrag: true,
		tilt:          true,
		rotate:        true,
	}
	return e
}

func (e *Engine) now() time.Time { return e.clock() }

// SetView replaces the view the engine mutates through.
func (e *Engine) SetView(v View) { e.view = v }

// SetClock overrides the monotonic clock used for timing decisions.
// Intended for tests; hosts should leave this at its default
// (time.Now).
func (e *Engine) SetClock(fn func() time.Time) { e.clock = fn }

// SetDPI sets the device DPI used to scale the tap/swipe thresholds.
// Values <= 0 fall back to DefaultDPI.
func (e *Engine) SetDPI(dpi float64) { e.dpi = dpi }

// SetPanningMode sets the dual-gesture rotate/scale locking policy.
func (e *Engine) SetPanningMode(m PanningMode) { e.panningMode = m }

// SetZoomEnabled enables or disables pinch/drag zoom gestures.
func (e *Engine) SetZoomEnabled(v bool) { e.zoom = v }

// SetPanEnabled enables or disables pan gestures.
func (e *Engine) SetPanEnabled(v bool) { e.pan = v }

// SetDoubleTapEnabled enables or disables the double-tap-to-zoom click.
func (e *Engine) SetDoubleTapEnabled(v bool) { e.doubleTap = v }

// SetDoubleTapDragEnabled enables or disables drag-to-zoom after a
// double tap.
func (e *Engine) SetDoubleTapDragEnabled(v bool) { e.doubleTapDrag = v }

// SetTiltEnabled enables or disables the two-finger tilt gesture.
func (e *Engine) SetTiltEnabled(v bool) { e.tilt = v }

// SetRotateEnabled enables or disables the two-finger rotate gesture.
func (e *Engine) SetRotateEnabled(v bool) { e.rotate = v }

// SetClickListener installs or clears the click listener.
func (e *Engine) SetClickListener(l ClickListener) { e.setClickListener(l) }

// SetInteractionListener installs or clears the interaction listener.
func (e *Engine) SetInteractionListener(l InteractionListener) { e.setInteractionListener(l) }

// Mode returns the current gesture mode, chiefly for tests and
// diagnostics.
func (e *Engine) Mode() GestureMode { return e.mode }

// PointersDown returns the current down-pointer count, always in
// {0, 1, 2}.
func (e *Engine) PointersDown() int { return e.pointersDown }

func (e *Engine) tapThreshold() float64 {
	return TapMovementThresholdInches * e.effectiveDPI()
}

// Cancel hard-resets the engine: zero velocities, mode SingleClickGuess,
// zero pointers down, interaction no longer consumed.
func (e *Engine) Cancel() {
	e.velocityPan = Point{}
	e.velocityZoom = 0
	e.mode = SingleClickGuess
	e.pointersDown = 0
	e.interactionConsumed = false
}

// OnTouch routes a single pointer action through the state machine and
// returns whether the interaction listener consumed it.
func (e *Engine) OnTouch(action PointerAction) bool {
	if e.view == nil {
		return false
	}

	if !e.validatePointerCount(action.Kind) {
		e.Cancel()
		if action.Kind == P1Up || action.Kind == P2Up {
			e.recomputePointersDown(action.Kind)
			return false
		}
	}

	consumed := e.dispatch(action)
	e.recomputePointersDown(action.Kind)
	return consumed
}

// validatePointerCount reports whether action is valid given the
// current pointersDown count; an invalid (malformed) sequence is
// treated as an implicit Cancel before the new action.
func (e *Engine) validatePointerCount(kind PointerActionKind) bool {
	switch kind {
	case P1Down:
		return e.pointersDown == 0
	case P2Down:
		return e.pointersDown == 1
	case P1Up, P2Up:
		return e.pointersDown >= 1
	default:
		return true
	}
}

// recomputePointersDown sets pointersDown from the action that was just
// dispatched. P2Down always carries both pointer positions, so it sets
// the count to 2 directly rather than incrementing by one: an implicit
// Cancel (see validatePointerCount) can deliver a standalone P2Down
// with pointersDown starting at 0, and incrementing would leave the
// count at 1 while mode has already advanced to a Dual* state.
func (e *Engine) recomputePointersDown(kind PointerActionKind) {
	switch kind {
	case P1Down:
		if e.pointersDown < 1 {
			e.pointersDown = 1
		}
	case P2Down:
		e.pointersDown = 2
	case P1Up, P2Up:
		if e.pointersDown > 0 {
			e.pointersDown--
		}
	case Cancel:
		e.pointersDown = 0
	}
}

func (e *Engine) dispatch(action PointerAction) bool {
	switch action.Kind {
	case P1Down:
		return e.onP1Down(action.Pos1)
	case P2Down:
		return e.onP2Down(action.Pos1, action.Pos2)
	case Move:
		return e.onMove(action.Pos1, action.Pos2)
	case Cancel:
		e.Cancel()
		return false
	case P1Up:
		return e.onP1Up(action.Pos1)
	case P2Up:
		return e.onP2Up(action.Pos1, action.Pos2)
	default:
		return false
	}
}

func (e *Engine) onP1Down(pos1 Point) bool {
	now := e.now()
	e.p1DownTime = now
	e.noDualPointerYet = true
	e.interactionConsumed = false
	e.velocityPan = Point{}
	e.velocityZoom = 0
	e.panVelocityEstimate = Point{}
	e.zoomVelocityEstimate = 0
	e.lastMoveTime = now
	e.prev1 = pos1

	isDoubleTapCandidate := e.mode == SingleClickGuess &&
		!e.firstTapTime.IsZero() &&
		now.Sub(e.firstTapTime) < DoubleTapTimeout &&
		pos1.Distance(e.firstTapPos) < e.tapThreshold()

	if !isDoubleTapCandidate {
		e.firstTapTime = now
		e.firstTapPos = pos1
		return false
	}

	if !e.doubleTapDrag {
		return false
	}

	consumed := e.dispatchInteraction(false, true, false, false)
	if !consumed {
		e.startSingleZoom(pos1)
		e.mode = SingleZoom
	} else {
		e.mode = SingleClickGuess
		e.firstTapTime = now
		e.firstTapPos = pos1
	}
	return consumed
}

func (e *Engine) onP2Down(pos1, pos2 Point) bool {
	e.noDualPointerYet = false
	switch e.mode {
	case SingleClickGuess:
		e.mode = DualClickGuess
		e.prev1, e.prev2 = pos1, pos2
	case SinglePan, SingleZoom:
		e.startDualPointer(pos1, pos2)
	}
	return false
}

func (e *Engine) startDualPointer(pos1, pos2 Point) {
	e.prev1, e.prev2 = pos1, pos2
	e.swipe1, e.swipe2 = Point{}, Point{}
	e.mode = DualGuess
}

func (e *Engine) onMove(pos1, pos2 Point) bool {
	if e.interactionConsumed {
		return true
	}
	now := e.now()

	switch e.mode {
	case SingleClickGuess:
		if e.pan && pos1.Distance(e.prev1) > e.tapThreshold() {
			consumed := e.dispatchInteraction(true, false, false, false)
			if consumed {
				e.interactionConsumed = true
				return true
			}
			e.mode = SinglePan
			e.prev1 = pos1
			e.lastMoveTime = now
		}
		return false

	case DualClickGuess:
		consumed := e.dispatchInteraction(true, true, true, true)
		if consumed {
			e.interactionConsumed = true
			return true
		}
		e.mode = DualGuess
		e.prev1, e.prev2 = pos1, pos2
		e.swipe1, e.swipe2 = Point{}, Point{}
		return false

	case SinglePan:
		if now.Sub(e.dualReleaseTime) >= DualStopHoldDuration {
			e.trackPanVelocity(pos1, now)
			e.singlePointerPan(pos1)
		}
		return false

	case SingleZoom:
		if e.zoom {
			e.trackZoomVelocity(pos1, now)
			e.singlePointerZoom(pos1)
		}
		return false

	case DualGuess:
		e.handleDualGuessMove(pos1, pos2)
		return false

	case DualTilt:
		e.dualPointerTilt(pos1)
		e.prev2 = pos2
		return false

	case DualRotate, DualScale:
		if e.panningMode == Sticky {
			factor := calculateRotatingScalingFactor(e.prev1, e.prev2, pos1, pos2)
			switch {
			case factor > RotationScalingThresholdSticky:
				e.mode = DualRotate
			case factor < -RotationScalingThresholdSticky:
				e.mode = DualScale
			}
		}
		e.dualPointerPan(pos1, pos2, e.mode == DualRotate, e.mode == DualScale)
		return false

	case DualFree:
		e.dualPointerPan(pos1, pos2, true, true)
		return false

	default:
		return false
	}
}

func (e *Engine) handleDualGuessMove(pos1, pos2 Point) {
	if mode, resolved := e.dualPointerGuessSingleFamily(); resolved {
		e.mode = mode
		e.applyResolvedDualMove(mode, pos1, pos2)
		return
	}

	mode := e.dualPointerGuess(pos1, pos2)
	if mode == DualGuess {
		e.prev1, e.prev2 = pos1, pos2
		e.mode = DualGuess
		return
	}
	e.mode = mode
	e.applyResolvedDualMove(mode, pos1, pos2)
}

// applyResolvedDualMove applies the transform for a mode just resolved
// out of DualGuess (whether via the single-family shortcut or the
// swipe-length heuristic), so the Move that triggered the resolution
// also takes effect instead of being dropped for one frame.
func (e *Engine) applyResolvedDualMove(mode GestureMode, pos1, pos2 Point) {
	switch mode {
	case DualFree:
		e.dualPointerPan(pos1, pos2, true, true)
	case DualRotate:
		e.dualPointerPan(pos1, pos2, true, false)
	case DualTilt:
		e.dualPointerTilt(pos1)
		e.prev2 = pos2
	case SingleClickGuess:
		e.prev1, e.prev2 = pos1, pos2
	}
}

func (e *Engine) onP1Up(pos1 Point) bool {
	now := e.now()
	tapDuration := now.Sub(e.p1DownTime)
	moveDist := pos1.Distance(e.prev1)

	switch e.mode {
	case SingleClickGuess:
		if moveDist < e.tapThreshold() && tapDuration >= LongPressTimeout {
			e.dispatchClick(ClickLong, pos1.X, pos1.Y)
		} else if tapDuration < DoubleTapTimeout {
			e.dispatchClick(ClickSingle, pos1.X, pos1.Y)
		}
		e.mode = SingleClickGuess

	case DualClickGuess:
		e.mode = SingleClickGuess

	case SinglePan:
		e.mode = SingleClickGuess
		if e.noDualPointerYet && now.Sub(e.dualReleaseTime) >= DualKineticHoldDuration {
			e.armKineticPan(e.panVelocityEstimate)
		}

	case SingleZoom:
		if tapDuration < DoubleTapTimeout && moveDist < e.tapThreshold() && e.doubleTap {
			consumed := e.dispatchClick(ClickDouble, pos1.X, pos1.Y)
			if !consumed && e.zoom {
				e.zoomAboutAnchor(pos1, 1)
			}
		}
		e.mode = SingleClickGuess
		if e.noDualPointerYet && e.zoom && now.Sub(e.dualReleaseTime) >= DualKineticHoldDuration {
			e.armKineticZoom(e.zoomVelocityEstimate)
		}

	default: // any Dual*
		e.dualReleaseTime = now
		e.prev1 = e.prev2
		e.mode = SinglePan
		e.lastMoveTime = now
		e.panVelocityEstimate = Point{}
	}
	return false
}

func (e *Engine) onP2Up(pos1, pos2 Point) bool {
	now := e.now()

	switch e.mode {
	case DualClickGuess:
		if now.Sub(e.p1DownTime) < DoubleTapTimeout {
			mid := pos1.Midpoint(pos2)
			consumed := e.dispatchClick(ClickDual, mid.X, mid.Y)
			if !consumed && e.zoom {
				e.zoomAboutAnchor(mid, -1)
			}
		}
		e.mode = SingleClickGuess

	default: // any Dual*
		e.dualReleaseTime = now
		e.prev1 = pos1
		e.mode = SinglePan
		e.lastMoveTime = now
		e.panVelocityEstimate = Point{}
	}
	return false
}

// trackPanVelocity updates the pan release-velocity EMA estimate from
// the Move about to be applied, using a time-based smoothing constant
// so the estimate stays consistent across frame-rate variance.
func (e *Engine) trackPanVelocity(pos1 Point, now time.Time) {
	dt := now.Sub(e.lastMoveTime).Seconds()
	e.lastMoveTime = now
	if dt <= 0 {
		return
	}
	delta := pos1.Sub(e.prev1)
	inst := delta.Scale(1 / dt)
	alpha := dt / (velocitySmoothingTau + dt)
	e.panVelocityEstimate = Point{
		X: e.panVelocityEstimate.X*(1-alpha) + inst.X*alpha,
		Y: e.panVelocityEstimate.Y*(1-alpha) + inst.Y*alpha,
	}
}

// trackZoomVelocity updates the zoom release-velocity EMA estimate
// from the vertical drag about to be applied by singlePointerZoom.
func (e *Engine) trackZoomVelocity(pos1 Point, now time.Time) {
	dt := now.Sub(e.lastMoveTime).Seconds()
	e.lastMoveTime = now
	if dt <= 0 {
		return
	}
	deltaZoom := (pos1.Y - e.prev1.Y) * SingleZoomSensitivity
	inst := deltaZoom / dt
	alpha := dt / (velocitySmoothingTau + dt)
	e.zoomVelocityEstimate = e.zoomVelocityEstimate*(1-alpha) + inst*alpha
}

// dispatchClick wraps listenerBroker.dispatchClick to keep call sites
// that don't care about the NaN-safety of an empty broker terse.
func (e *Engine) dispatchClick(kind ClickKind, x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	return e.listenerBroker.dispatchClick(kind, x, y)
}
