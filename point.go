// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mapgesture

import "math"

// Point represents a screen position in device pixels, origin at the
// view's top-left, y-down.
type Point struct {
	X, Y float64
}

// NoPosition is the sentinel passed for a pointer slot that does not
// apply to a given PointerAction. Transitions that don't read a given
// slot ignore it.
var NoPosition = Point{X: -1, Y: -1}

// IsSet reports whether p is a real screen position rather than the
// NoPosition sentinel.
func (p Point) IsSet() bool {
	return p != NoPosition
}

// Add returns the sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// Midpoint returns the point halfway between p and other.
func (p Point) Midpoint(other Point) Point {
	return Point{X: (p.X + other.X) / 2, Y: (p.Y + other.Y) / 2}
}

// Length returns the Euclidean length of p treated as a vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance between p and other.
func (p Point) Distance(other Point) float64 {
	return p.Sub(other).Length()
}
