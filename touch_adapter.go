// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mapgesture

import "sort"

// TouchPoint is one active contact reported by the host platform,
// identified by a stable ID for the lifetime of that contact.
type TouchPoint struct {
	ID  int
	Pos Point
}

// TouchAdapter tracks an arbitrary-ID touch surface and translates it
// into the two-slot six-action protocol Engine.OnTouch expects. Hosts
// that already report discrete down/move/up events per pointer can
// call Engine.OnTouch directly and do not need this type; TouchAdapter
// is for hosts (Android MotionEvent, most touch compositors) that
// instead report the full set of currently-active contacts on every
// frame.
//
// A third and later simultaneous contact is tracked for ID bookkeeping
// but never reported to the engine: the protocol is two-pointer only.
type TouchAdapter struct {
	engine *Engine
	slot   map[int]int // touch ID -> 1 or 2
	pos    map[int]Point
}

// NewTouchAdapter returns an adapter that drives e.
func NewTouchAdapter(e *Engine) *TouchAdapter {
	return &TouchAdapter{
		engine: e,
		slot:   make(map[int]int, 2),
		pos:    make(map[int]Point, 2),
	}
}

// Feed reports the full set of currently-active touches. IDs not seen
// in a previous call are treated as new contacts; IDs previously seen
// but absent from touches are treated as released.
func (a *TouchAdapter) Feed(touches []TouchPoint) {
	current := make(map[int]Point, len(touches))
	for _, t := range touches {
		current[t.ID] = t.Pos
	}

	// Released touches must be processed highest-slot-first: release's
	// slot-1 case renumbers the slot-2 touch down to slot 1, and map
	// iteration order over a.pos is unspecified. Releasing slot 2 before
	// slot 1 means that renumber always finds slot 2 already vacated
	// instead of racing it, regardless of iteration order.
	released := make([]int, 0, len(a.pos))
	for id := range a.pos {
		if _, ok := current[id]; !ok {
			released = append(released, id)
		}
	}
	sort.Slice(released, func(i, j int) bool { return a.slot[released[i]] > a.slot[released[j]] })
	for _, id := range released {
		a.release(id, a.pos[id])
	}

	for _, t := range touches {
		if _, ok := a.pos[t.ID]; !ok {
			a.press(t.ID, t.Pos, current)
		}
	}

	// A Move is reported only when a contact holding a slot changed
	// position; a Feed that only adds or removes contacts reports none.
	moved := false
	for id := range a.slot {
		if old, ok := a.pos[id]; ok && old != current[id] {
			moved = true
		}
	}

	a.pos = current
	if moved {
		a.engine.OnTouch(PointerAction{Kind: Move, Pos1: a.posForSlot(1), Pos2: a.posForSlot(2)})
	}
}

// Cancel propagates a Cancel action and clears all tracked contacts.
func (a *TouchAdapter) Cancel() {
	a.slot = make(map[int]int, 2)
	a.pos = make(map[int]Point, 2)
	a.engine.OnTouch(PointerAction{Kind: Cancel})
}

func (a *TouchAdapter) press(id int, pos Point, current map[int]Point) {
	switch len(a.slot) {
	case 0:
		a.slot[id] = 1
		a.engine.OnTouch(PointerAction{Kind: P1Down, Pos1: pos})
	case 1:
		a.slot[id] = 2
		a.engine.OnTouch(PointerAction{Kind: P2Down, Pos1: current[a.idForSlot(1)], Pos2: pos})
	default:
		// Third+ simultaneous contact: ignored, not assigned a slot.
	}
}

func (a *TouchAdapter) idForSlot(slot int) int {
	for id, s := range a.slot {
		if s == slot {
			return id
		}
	}
	return -1
}

func (a *TouchAdapter) release(id int, pos Point) {
	slot, ok := a.slot[id]
	if !ok {
		return
	}
	delete(a.slot, id)
	switch slot {
	case 1:
		a.engine.OnTouch(PointerAction{Kind: P1Up, Pos1: pos, Pos2: a.posForSlot(2)})
		a.renumber(2, 1)
	case 2:
		a.engine.OnTouch(PointerAction{Kind: P2Up, Pos1: a.posForSlot(1), Pos2: pos})
	}
}

// renumber reassigns whichever touch ID currently holds from to to,
// mirroring the engine's own internal slot collapse on a Dual* exit
// (see PointerAction's P1Up doc comment).
func (a *TouchAdapter) renumber(from, to int) {
	for id, s := range a.slot {
		if s == from {
			a.slot[id] = to
			return
		}
	}
}

func (a *TouchAdapter) posForSlot(slot int) Point {
	for id, s := range a.slot {
		if s == slot {
			if pos, ok := a.pos[id]; ok {
				return pos
			}
		}
	}
	return NoPosition
}
