// Package render provides the rendering-surface abstraction the resolvers
// query for geometry, plus a software reference renderer.
//
// # Surfaces
//
// Resolvers never compute panel geometry themselves; they ask a [Surface]
// for the bounding box of each panel slice:
//
//	box, err := surface.SliceBBox(model.SliceID{Panel: "expr", Row: 1, Col: 1})
//
// A slice id with zero splits addresses an annotation panel's extent.
// Querying a surface that is no longer active fails with [ErrNoSurface].
//
// # Raster
//
// [Raster] is a deterministic software implementation of [Surface]. It lays
// a composite out into a pixel surface (panel extents proportional to split
// sizes, fixed gaps between splits and panels) and can draw the result into
// an image:
//
//	r, err := render.NewRaster(comp, render.DefaultRasterConfig())
//	img := r.Render()
//
// Cell fill is a linear two-color scale over the value range of the whole
// composite; missing cells get their own color. Coordinates reported by the
// surface use a bottom-left origin, matching the model package.
//
// # SVG
//
// [WriteSVG] emits the same layout as a standalone SVG document, suitable
// for embedding in reports.
package render
