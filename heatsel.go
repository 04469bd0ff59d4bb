// Package heatsel provides a fluent API for resolving geometric interactions
// on clustered multi-panel heatmap visualizations into data selections.
//
// Basic usage:
//
//	surface, err := render.NewRaster(comp, render.DefaultRasterConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	record, err := heatsel.New(comp, surface).
//	    IncludeAnnotations().
//	    SelectArea(a, b)
//
// Selections can also be resolved from axis labels instead of coordinates:
//
//	record, err := heatsel.New(comp, surface).
//	    PropagateAll().
//	    SelectRows("TP53", "BRCA1")
//
// Each configuration method returns a new [Selector], so a configured chain
// can be stored and branched safely. Terminal operations (SelectPoint,
// SelectArea, SelectRows, SelectColumns, SelectCells) resolve the selection,
// normalize it, and apply any configured trims.
//
// Composites can be defined in YAML and opened directly:
//
//	record, err := heatsel.Open("composite.yaml").
//	    TrimEmptyRows().
//	    SelectRows("TP53")
//
// The package wraps the lower-level building blocks, which remain available
// for direct use: [model] for composites and selection records, [render] for
// surfaces, [resolve] for the geometry-to-index mapping, [reconcile] for
// normalization and trimming, and [export] for serializing records.
package heatsel

import (
	"fmt"

	"github.com/vizlab/heatsel/layout"
	"github.com/vizlab/heatsel/model"
	"github.com/vizlab/heatsel/reconcile"
	"github.com/vizlab/heatsel/render"
	"github.com/vizlab/heatsel/resolve"
)

// Edge names one display edge of a composite for trimming.
type Edge = reconcile.Edge

// Display edges, re-exported for trim configuration.
const (
	Top    = reconcile.Top
	Bottom = reconcile.Bottom
	Left   = reconcile.Left
	Right  = reconcile.Right
)

// New creates a Selector for the composite on the given surface.
// The composite is validated immediately; a validation failure is
// reported by the first terminal operation.
//
// Example:
//
//	record, err := heatsel.New(comp, surface).SelectPoint(p)
func New(comp *model.Composite, surface render.Surface) *Selector {
	s := &Selector{
		comp:    comp,
		surface: surface,
		cache:   resolve.NewGeometryCache(),
		options: defaultOptions(),
	}
	if comp == nil {
		s.err = fmt.Errorf("heatsel: nil composite")
		return s
	}
	if surface == nil {
		s.err = fmt.Errorf("heatsel: nil surface")
		return s
	}
	if err := comp.Validate(); err != nil {
		s.err = fmt.Errorf("heatsel: %w", err)
	}
	return s
}

// Open loads a YAML composite definition and creates a Selector backed by
// a default raster surface. Errors are deferred to the first terminal
// operation, so calls can be chained directly.
//
// Example:
//
//	record, err := heatsel.Open("composite.yaml").SelectRows("TP53")
func Open(path string) *Selector {
	comp, err := layout.ParseFile(path)
	if err != nil {
		return &Selector{
			cache:   resolve.NewGeometryCache(),
			options: defaultOptions(),
			err:     err,
		}
	}
	surface, err := render.NewRaster(comp, render.DefaultRasterConfig())
	if err != nil {
		return &Selector{
			comp:    comp,
			cache:   resolve.NewGeometryCache(),
			options: defaultOptions(),
			err:     err,
		}
	}
	return New(comp, surface)
}
