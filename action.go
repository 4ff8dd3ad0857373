// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mapgesture

// PointerActionKind is the tagged variant of the six actions the host
// reports to Engine.OnTouch.
type PointerActionKind uint8

const (
	// P1Down indicates the first pointer made contact.
	P1Down PointerActionKind = iota

	// P2Down indicates a second pointer made contact while the first
	// is still down.
	P2Down

	// Move indicates one or both active pointers changed position.
	Move

	// Cancel indicates the system interrupted the gesture; the engine
	// resets to SingleClickGuess with zero pointers down.
	Cancel

	// P1Up indicates the first pointer's slot was lifted. Note that
	// after a P1Up that leaves the second pointer down, that surviving
	// pointer is reported through the P1 slot for subsequent events.
	P1Up

	// P2Up indicates the second pointer's slot was lifted.
	P2Up
)

// String returns the action kind name for debugging.
func (a PointerActionKind) String() string {
	switch a {
	case P1Down:
		return "P1Down"
	case P2Down:
		return "P2Down"
	case Move:
		return "Move"
	case Cancel:
		return "Cancel"
	case P1Up:
		return "P1Up"
	case P2Up:
		return "P2Up"
	default:
		return "Unknown"
	}
}

// PointerAction is a single reported event in the six-action protocol.
// Pos1 and Pos2 carry the current position of each pointer slot; a slot
// that does not apply to this action carries NoPosition and is ignored
// by transitions that don't read it.
type PointerAction struct {
	Kind PointerActionKind
	Pos1 Point
	Pos2 Point
}
