// Package resolve maps surface geometry and label queries to data selections.
//
// Three resolvers produce [model.SelectionRecord] values:
//
//   - [ResolvePoint] - one pixel coordinate to at most one panel cell
//   - [ResolveArea] - a pixel rectangle to the index ranges of every
//     overlapping panel slice
//   - [ResolveLabels] - row/column label keywords to matching indices,
//     with no geometry involved at all
//
// All three terminate in the same record shape, so selections made by pixel
// or by label are indistinguishable downstream.
//
// # Geometry
//
// Pixel resolvers operate on a [Geometry], the bounding-box table of every
// panel slice on the current surface. Obtain one through a [GeometryCache]:
//
//	cache := resolve.NewGeometryCache()
//	geom, err := cache.Geometry(comp, surface, true)
//
// The cache stores the last computed table keyed by two fingerprints, one
// over the composite's structural identity and one over the surface size.
// Any mismatch invalidates the table wholesale and re-queries the surface.
//
// # Index arithmetic
//
// A point inside a slice is converted to a 1-based display rank per axis:
// columns rank left to right by ceil(fx*n); rows rank top to bottom, so the
// rank is computed from the top of the box. Ranks map through the slice's
// display permutation to original indices. Rectangles apply the same rank
// formula to both corners and clamp partial overlap to the valid range; a
// slice contributes only when both axes overlap jointly.
//
// # Empty versus failure
//
// A point outside every panel, a rectangle overlapping nothing, and a label
// query matching nothing all return an empty record and a nil error. Errors
// are reserved for malformed input ([model.ErrUnitMismatch]), a missing
// surface ([render.ErrNoSurface]) and joint label queries without a unique
// target panel ([ErrAmbiguousPanel]).
package resolve
