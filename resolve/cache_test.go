package resolve

import (
	"errors"
	"testing"

	"github.com/vizlab/heatsel/model"
	"github.com/vizlab/heatsel/render"
)

// stubSurface is a Surface with canned geometry that counts queries.
type stubSurface struct {
	boxes   map[model.SliceID]model.BBox
	width   float64
	height  float64
	queries int
	closed  bool
}

func (s *stubSurface) SliceBBox(id model.SliceID) (model.BBox, error) {
	if s.closed {
		return model.BBox{}, render.ErrNoSurface
	}
	s.queries++
	box, ok := s.boxes[id]
	if !ok {
		return model.BBox{}, errors.New("stub: unknown slice")
	}
	return box, nil
}

func (s *stubSurface) Size() (float64, float64) { return s.width, s.height }
func (s *stubSurface) Unit() model.Unit         { return model.UnitPixel }

func newStubSurface() *stubSurface {
	return &stubSurface{
		boxes: map[model.SliceID]model.BBox{
			{Panel: "expr", Row: 1, Col: 1}: model.NewBBox(0, 0, 10, 6),
			{Panel: "ann"}:                  model.NewBBox(12, 0, 2, 6),
		},
		width:  14,
		height: 6,
	}
}

func TestGeometryCache_ReusesMatchingFingerprints(t *testing.T) {
	comp := annotatedComposite()
	surface := newStubSurface()
	cache := NewGeometryCache()

	geom1, err := cache.Geometry(comp, surface, false)
	if err != nil {
		t.Fatalf("Geometry failed: %v", err)
	}
	if surface.queries != 1 {
		t.Fatalf("Expected 1 surface query, got %d", surface.queries)
	}

	geom2, err := cache.Geometry(comp, surface, false)
	if err != nil {
		t.Fatalf("Geometry failed: %v", err)
	}
	if surface.queries != 1 {
		t.Errorf("Expected cached geometry, surface queried %d times", surface.queries)
	}
	if geom1 != geom2 {
		t.Error("Expected the identical cached record")
	}
}

func TestGeometryCache_AnnotationFlagInvalidates(t *testing.T) {
	comp := annotatedComposite()
	surface := newStubSurface()
	cache := NewGeometryCache()

	if _, err := cache.Geometry(comp, surface, false); err != nil {
		t.Fatalf("Geometry failed: %v", err)
	}
	geom, err := cache.Geometry(comp, surface, true)
	if err != nil {
		t.Fatalf("Geometry failed: %v", err)
	}
	// 1 slice for the first call, then slice + annotation for the second.
	if surface.queries != 3 {
		t.Errorf("Expected 3 surface queries, got %d", surface.queries)
	}
	if _, ok := geom.SliceBox(model.SliceID{Panel: "ann"}); !ok {
		t.Error("Expected annotation extent in refreshed geometry")
	}
}

func TestGeometryCache_SurfaceSizeInvalidates(t *testing.T) {
	comp := annotatedComposite()
	surface := newStubSurface()
	cache := NewGeometryCache()

	if _, err := cache.Geometry(comp, surface, false); err != nil {
		t.Fatalf("Geometry failed: %v", err)
	}
	surface.width = 28
	if _, err := cache.Geometry(comp, surface, false); err != nil {
		t.Fatalf("Geometry failed: %v", err)
	}
	if surface.queries != 2 {
		t.Errorf("Expected resize to force a fresh query, got %d queries", surface.queries)
	}
}

func TestGeometryCache_PermutationChangeInvalidates(t *testing.T) {
	comp := annotatedComposite()
	surface := newStubSurface()
	cache := NewGeometryCache()

	if _, err := cache.Geometry(comp, surface, false); err != nil {
		t.Fatalf("Geometry failed: %v", err)
	}

	// Reordering a display permutation changes the content fingerprint.
	dp := comp.DataPanel("expr")
	dp.RowOrder = [][]int{{1, 2, 3}}
	if _, err := cache.Geometry(comp, surface, false); err != nil {
		t.Fatalf("Geometry failed: %v", err)
	}
	if surface.queries != 2 {
		t.Errorf("Expected permutation change to force a fresh query, got %d queries", surface.queries)
	}
}

func TestGeometryCache_NoSurfaceError(t *testing.T) {
	comp := annotatedComposite()
	surface := newStubSurface()
	surface.closed = true
	cache := NewGeometryCache()

	_, err := cache.Geometry(comp, surface, false)
	if !errors.Is(err, render.ErrNoSurface) {
		t.Errorf("Expected ErrNoSurface, got %v", err)
	}
}

func TestGeometryCache_Invalidate(t *testing.T) {
	comp := annotatedComposite()
	surface := newStubSurface()
	cache := NewGeometryCache()

	if _, err := cache.Geometry(comp, surface, false); err != nil {
		t.Fatalf("Geometry failed: %v", err)
	}
	cache.Invalidate()
	if _, err := cache.Geometry(comp, surface, false); err != nil {
		t.Fatalf("Geometry failed: %v", err)
	}
	if surface.queries != 2 {
		t.Errorf("Expected explicit invalidation to force a fresh query, got %d queries", surface.queries)
	}
}
