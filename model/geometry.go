package model

import (
	"errors"
	"math"
)

// ErrUnitMismatch is returned when two points that must share a length unit
// do not, e.g. the corners of a selection rectangle.
var ErrUnitMismatch = errors.New("model: mismatched length units")

// Unit identifies the linear unit a coordinate is expressed in.
type Unit int

const (
	// UnitPixel measures coordinates in device pixels.
	UnitPixel Unit = iota
	// UnitPoint measures coordinates in typographic points (1/72 inch).
	UnitPoint
	// UnitNormalized measures coordinates as a fraction of the surface size (0-1).
	UnitNormalized
)

// String returns a human-readable representation of the unit.
func (u Unit) String() string {
	switch u {
	case UnitPixel:
		return "px"
	case UnitPoint:
		return "pt"
	case UnitNormalized:
		return "norm"
	default:
		return "unknown"
	}
}

// Point represents a 2D point on the rendering surface
type Point struct {
	X, Y float64
	Unit Unit
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents a bounding box (rectangle).
// The origin is bottom-left: Y grows upward.
type BBox struct {
	X      float64 // Left
	Y      float64 // Bottom
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from coordinates
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// RectFromCorners creates a bounding box from two opposite corners supplied
// in any order. It fails with ErrUnitMismatch when the corners do not share
// a length unit.
func RectFromCorners(a, b Point) (BBox, error) {
	if a.Unit != b.Unit {
		return BBox{}, ErrUnitMismatch
	}
	x := math.Min(a.X, b.X)
	y := math.Min(a.Y, b.Y)
	return BBox{
		X:      x,
		Y:      y,
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}, nil
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y + b.Height
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Contains checks if a point is inside the bounding box
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Bottom() && p.Y <= b.Top()
}

// Intersects checks if two bounding boxes intersect
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Top() < other.Bottom() ||
		b.Bottom() > other.Top())
}

// Intersection returns the intersection of two bounding boxes
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}

	x := math.Max(b.Left(), other.Left())
	y := math.Max(b.Bottom(), other.Bottom())
	right := math.Min(b.Right(), other.Right())
	top := math.Min(b.Top(), other.Top())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: top - y,
	}
}

// OverlapsX checks whether the X extents of two boxes overlap,
// ignoring the Y axis entirely.
func (b BBox) OverlapsX(other BBox) bool {
	return b.Right() >= other.Left() && b.Left() <= other.Right()
}

// OverlapsY checks whether the Y extents of two boxes overlap,
// ignoring the X axis entirely.
func (b BBox) OverlapsY(other BBox) bool {
	return b.Top() >= other.Bottom() && b.Bottom() <= other.Top()
}

// Area returns the area of the bounding box
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// IsValid returns true if the bounding box has positive dimensions
func (b BBox) IsValid() bool {
	return b.Width > 0 && b.Height > 0
}
