package render

import (
	"errors"

	"github.com/vizlab/heatsel/model"
)

// ErrNoSurface is returned when geometry is queried while no rendering
// surface is active.
var ErrNoSurface = errors.New("render: no active rendering surface")

// Surface is the rendering collaborator the resolvers query for geometry.
// Implementations report the on-surface bounding box of each panel slice
// in their own linear unit.
type Surface interface {
	// SliceBBox returns the bounding box of the identified slice. A slice
	// id with zero splits addresses an annotation panel's extent. Fails
	// with ErrNoSurface when the surface is not the active rendering.
	SliceBBox(id model.SliceID) (model.BBox, error)

	// Size returns the total surface extent in the surface unit.
	Size() (width, height float64)

	// Unit returns the linear unit of all reported coordinates.
	Unit() model.Unit
}
