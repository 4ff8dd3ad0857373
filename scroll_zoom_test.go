// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mapgesture

import "testing"

func TestOnScroll_ZoomsInAndOut(t *testing.T) {
	view := NewNullView()
	e := NewEngine(view)
	startZoom := view.GetZoom()

	e.OnScroll(400, 300, -120, ScrollDeltaPixel)
	if view.GetZoom() <= startZoom {
		t.Errorf("negative deltaY should zoom in: zoom = %v, want > %v", view.GetZoom(), startZoom)
	}

	midZoom := view.GetZoom()
	e.OnScroll(400, 300, 120, ScrollDeltaPixel)
	if view.GetZoom() >= midZoom {
		t.Errorf("positive deltaY should zoom out: zoom = %v, want < %v", view.GetZoom(), midZoom)
	}
}

func TestOnScroll_LineModeScaled(t *testing.T) {
	view := NewNullView()
	e := NewEngine(view)

	e.OnScroll(400, 300, -1, ScrollDeltaLine)
	lineDelta := view.GetZoom() - 10

	view2 := NewNullView()
	e2 := NewEngine(view2)
	e2.OnScroll(400, 300, -1, ScrollDeltaPixel)
	pixelDelta := view2.GetZoom() - 10

	if lineDelta <= pixelDelta {
		t.Errorf("one line should zoom more than one pixel: line=%v pixel=%v", lineDelta, pixelDelta)
	}
}

func TestOnScroll_DisabledWhenZoomOff(t *testing.T) {
	view := NewNullView()
	e := NewEngine(view)
	e.SetZoomEnabled(false)

	e.OnScroll(400, 300, -120, ScrollDeltaPixel)
	if view.GetZoom() != 10 {
		t.Errorf("zoom changed while disabled: %v, want 10", view.GetZoom())
	}
}

func TestOnScroll_ZeroDeltaNoOp(t *testing.T) {
	view := NewNullView()
	e := NewEngine(view)

	e.OnScroll(400, 300, 0, ScrollDeltaPixel)
	if view.Calls["Zoom"] != 0 {
		t.Errorf("Zoom called %d times for a zero delta, want 0", view.Calls["Zoom"])
	}
}

func TestOnScroll_ConsumedByListener(t *testing.T) {
	view := NewNullView()
	e := NewEngine(view)
	e.SetInteractionListener(InteractionListenerFunc(func(panning, zooming, rotating, tilting bool) bool {
		return zooming
	}))

	consumed := e.OnScroll(400, 300, -120, ScrollDeltaPixel)
	if !consumed {
		t.Error("OnScroll did not report consumed")
	}
	if view.GetZoom() != 10 {
		t.Errorf("zoom changed despite consumption: %v, want 10", view.GetZoom())
	}
}
