package heatsel

import (
	"github.com/vizlab/heatsel/model"
	"github.com/vizlab/heatsel/reconcile"
	"github.com/vizlab/heatsel/render"
	"github.com/vizlab/heatsel/resolve"
)

// Selector provides a fluent interface for resolving selections against one
// composite and surface. Each configuration method returns a new Selector
// instance, making chains safe to store and branch.
//
// A Selector and its descendants share one geometry cache. The cache is
// session-scoped: it must not be used from multiple goroutines at once.
type Selector struct {
	comp    *model.Composite
	surface render.Surface

	// Shared across the chain; fingerprints keep it correct.
	cache *resolve.GeometryCache

	// Configuration
	options selectOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Selector with a deep copy of options.
func (s *Selector) clone() *Selector {
	return &Selector{
		comp:    s.comp,
		surface: s.surface,
		cache:   s.cache,
		options: s.options.clone(),
		err:     s.err,
	}
}

// ============================================================================
// Configuration Methods (return new Selector instance)
// ============================================================================

// IncludeAnnotations appends a marker row per annotation panel to non-empty
// area and label selections. Markers carry the panel name only.
//
// Example:
//
//	record, err := heatsel.New(comp, surface).IncludeAnnotations().SelectArea(a, b)
func (s *Selector) IncludeAnnotations() *Selector {
	newSel := s.clone()
	newSel.options.includeAnnotations = true
	return newSel
}

// PropagateAll extends label matches on the linked axis to every data panel,
// selecting the matched indices against each panel's full extent on the
// other axis.
//
// Example:
//
//	record, err := heatsel.New(comp, surface).PropagateAll().SelectRows("TP53")
func (s *Selector) PropagateAll() *Selector {
	newSel := s.clone()
	newSel.options.propagateAll = true
	return newSel
}

// MatchPatterns treats label keywords as regular expressions instead of
// exact labels.
//
// Example:
//
//	record, err := heatsel.New(comp, surface).MatchPatterns().SelectRows("^TP\\d+$")
func (s *Selector) MatchPatterns() *Selector {
	newSel := s.clone()
	newSel.options.patterns = true
	return newSel
}

// Panel restricts label queries to the named data panel. Joint queries on
// composites with more than one data panel require it.
//
// Example:
//
//	record, err := heatsel.New(comp, surface).Panel("expr").SelectCells(rows, cols)
func (s *Selector) Panel(name string) *Selector {
	newSel := s.clone()
	newSel.options.panel = name
	return newSel
}

// Trim removes count selected indices from the given display edge of the
// result. Trims on the linked axis apply across all panels; trims on the
// other axis apply to the edge-most panel only. Multiple calls accumulate
// and apply in order.
//
// Example:
//
//	record, err := heatsel.New(comp, surface).Trim(heatsel.Top, 2).SelectArea(a, b)
func (s *Selector) Trim(edge Edge, count int) *Selector {
	newSel := s.clone()
	newSel.options.trims = append(newSel.options.trims, trimStep{edge: edge, count: count})
	return newSel
}

// TrimTop removes count indices from the top display edge.
func (s *Selector) TrimTop(count int) *Selector { return s.Trim(Top, count) }

// TrimBottom removes count indices from the bottom display edge.
func (s *Selector) TrimBottom(count int) *Selector { return s.Trim(Bottom, count) }

// TrimLeft removes count indices from the left display edge.
func (s *Selector) TrimLeft(count int) *Selector { return s.Trim(Left, count) }

// TrimRight removes count indices from the right display edge.
func (s *Selector) TrimRight(count int) *Selector { return s.Trim(Right, count) }

// TrimEmptyRows drops selected rows whose selected cells are all missing
// in every panel sharing the row axis.
//
// Example:
//
//	record, err := heatsel.New(comp, surface).TrimEmptyRows().SelectArea(a, b)
func (s *Selector) TrimEmptyRows() *Selector {
	return s.trimEmpty(model.Rows)
}

// TrimEmptyColumns drops selected columns whose selected cells are all
// missing in every panel sharing the column axis.
func (s *Selector) TrimEmptyColumns() *Selector {
	return s.trimEmpty(model.Columns)
}

// TrimEmpty drops all-missing rows and columns. This is a convenience
// method equivalent to calling TrimEmptyRows().TrimEmptyColumns().
func (s *Selector) TrimEmpty() *Selector {
	return s.trimEmpty(model.Rows, model.Columns)
}

func (s *Selector) trimEmpty(axes ...model.Axis) *Selector {
	newSel := s.clone()
	for _, axis := range axes {
		found := false
		for _, have := range newSel.options.trimEmptyAxes {
			if have == axis {
				found = true
				break
			}
		}
		if !found {
			newSel.options.trimEmptyAxes = append(newSel.options.trimEmptyAxes, axis)
		}
	}
	return newSel
}

// InvalidateGeometry drops the cached geometry table. The next terminal
// operation queries the surface afresh. Needed only when a surface mutates
// without changing its size.
func (s *Selector) InvalidateGeometry() *Selector {
	s.cache.Invalidate()
	return s
}

// ============================================================================
// Terminal Operations (resolve the selection and return a record)
// ============================================================================

// SelectPoint resolves one surface coordinate to the cell under it. A point
// outside every panel yields an empty record and no error.
//
// Example:
//
//	p := model.Point{X: 40, Y: 60, Unit: model.UnitPixel}
//	record, err := heatsel.New(comp, surface).SelectPoint(p)
func (s *Selector) SelectPoint(p model.Point) (model.SelectionRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	geom, err := s.geometry()
	if err != nil {
		return nil, err
	}
	rec, err := resolve.ResolvePoint(s.comp, p, geom)
	if err != nil {
		return nil, err
	}
	return s.finish(rec), nil
}

// SelectArea resolves the rectangle spanned by two corner points to every
// slice it overlaps. An area touching no data yields an empty record.
//
// Example:
//
//	record, err := heatsel.New(comp, surface).
//	    IncludeAnnotations().
//	    SelectArea(a, b)
func (s *Selector) SelectArea(a, b model.Point) (model.SelectionRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	geom, err := s.geometry()
	if err != nil {
		return nil, err
	}
	rec, err := resolve.ResolveArea(s.comp, a, b, geom, s.options.includeAnnotations)
	if err != nil {
		return nil, err
	}
	return s.finish(rec), nil
}

// SelectRows resolves row label keywords to a selection spanning each
// matched row's full column extent.
//
// Example:
//
//	record, err := heatsel.New(comp, surface).SelectRows("TP53", "BRCA1")
func (s *Selector) SelectRows(keywords ...string) (model.SelectionRecord, error) {
	return s.selectLabels(keywords, nil)
}

// SelectColumns resolves column label keywords to a selection spanning each
// matched column's full row extent.
//
// Example:
//
//	record, err := heatsel.New(comp, surface).SelectColumns("sample-07")
func (s *Selector) SelectColumns(keywords ...string) (model.SelectionRecord, error) {
	return s.selectLabels(nil, keywords)
}

// SelectCells resolves row and column keywords jointly against a single
// panel. Composites with more than one data panel need [Selector.Panel].
//
// Example:
//
//	record, err := heatsel.New(comp, surface).
//	    Panel("expr").
//	    SelectCells([]string{"TP53"}, []string{"sample-07"})
func (s *Selector) SelectCells(rowKeywords, columnKeywords []string) (model.SelectionRecord, error) {
	return s.selectLabels(rowKeywords, columnKeywords)
}

func (s *Selector) selectLabels(rowKeywords, columnKeywords []string) (model.SelectionRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	rec, err := resolve.ResolveLabels(s.comp, resolve.LabelQuery{
		RowKeywords:        rowKeywords,
		ColumnKeywords:     columnKeywords,
		Pattern:            s.options.patterns,
		Panel:              s.options.panel,
		IncludeAnnotations: s.options.includeAnnotations,
		PropagateAll:       s.options.propagateAll,
	})
	if err != nil {
		return nil, err
	}
	return s.finish(rec), nil
}

// geometry returns the cached or freshly queried geometry table.
func (s *Selector) geometry() (*resolve.Geometry, error) {
	return s.cache.Geometry(s.comp, s.surface, s.options.includeAnnotations)
}

// finish normalizes the record and applies configured trims.
func (s *Selector) finish(rec model.SelectionRecord) model.SelectionRecord {
	rec = reconcile.Normalize(s.comp, rec)
	for _, step := range s.options.trims {
		rec = reconcile.TrimN(s.comp, rec, step.edge, step.count)
	}
	if len(s.options.trimEmptyAxes) > 0 {
		rec = reconcile.TrimEmpty(s.comp, rec, s.options.trimEmptyAxes...)
	}
	return rec
}
