package model

import (
	"errors"
	"testing"
)

func TestRectFromCorners_AnyOrder(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want BBox
	}{
		{
			name: "bottom-left top-right",
			a:    Point{X: 1, Y: 2},
			b:    Point{X: 5, Y: 8},
			want: BBox{X: 1, Y: 2, Width: 4, Height: 6},
		},
		{
			name: "top-right bottom-left",
			a:    Point{X: 5, Y: 8},
			b:    Point{X: 1, Y: 2},
			want: BBox{X: 1, Y: 2, Width: 4, Height: 6},
		},
		{
			name: "top-left bottom-right",
			a:    Point{X: 1, Y: 8},
			b:    Point{X: 5, Y: 2},
			want: BBox{X: 1, Y: 2, Width: 4, Height: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RectFromCorners(tt.a, tt.b)
			if err != nil {
				t.Fatalf("RectFromCorners returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestRectFromCorners_UnitMismatch(t *testing.T) {
	a := Point{X: 1, Y: 2, Unit: UnitPixel}
	b := Point{X: 5, Y: 8, Unit: UnitPoint}
	_, err := RectFromCorners(a, b)
	if !errors.Is(err, ErrUnitMismatch) {
		t.Errorf("Expected ErrUnitMismatch, got %v", err)
	}
}

func TestBBox_Contains(t *testing.T) {
	box := NewBBox(0, 0, 10, 6)

	if !box.Contains(Point{X: 5, Y: 3}) {
		t.Error("Expected interior point to be contained")
	}
	if !box.Contains(Point{X: 0, Y: 0}) {
		t.Error("Expected corner point to be contained")
	}
	if box.Contains(Point{X: 10.1, Y: 3}) {
		t.Error("Expected point right of box to be outside")
	}
	if box.Contains(Point{X: 5, Y: -0.1}) {
		t.Error("Expected point below box to be outside")
	}
}

func TestBBox_AxisOverlaps(t *testing.T) {
	box := NewBBox(0, 0, 10, 6)
	above := NewBBox(2, 8, 4, 4) // overlaps in X only

	if !box.OverlapsX(above) {
		t.Error("Expected X extents to overlap")
	}
	if box.OverlapsY(above) {
		t.Error("Expected Y extents not to overlap")
	}
	if box.Intersects(above) {
		t.Error("Expected boxes not to intersect")
	}
}

func TestBBox_Degenerate(t *testing.T) {
	box := NewBBox(3, 3, 0, 5)
	if box.IsValid() {
		t.Error("Expected zero-width box to be invalid")
	}
	if !box.IsEmpty() {
		t.Error("Expected zero-width box to be empty")
	}
}
