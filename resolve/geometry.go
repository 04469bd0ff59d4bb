package resolve

import (
	"github.com/vizlab/heatsel/model"
)

// Geometry is the bounding-box table of one rendered composite: one box per
// data-panel slice, plus one per annotation panel when captured. All boxes
// share the surface unit and a bottom-left origin.
type Geometry struct {
	Boxes  map[model.SliceID]model.BBox
	Width  float64
	Height float64
	Unit   model.Unit

	// Annotations reports whether annotation extents were captured.
	Annotations bool
}

// SliceBox returns the recorded box for the given slice.
func (g *Geometry) SliceBox(id model.SliceID) (model.BBox, bool) {
	box, ok := g.Boxes[id]
	return box, ok
}
