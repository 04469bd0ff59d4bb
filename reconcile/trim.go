package reconcile

import (
	"github.com/vizlab/heatsel/model"
)

// Edge names one display edge of a composite.
type Edge int

const (
	Top Edge = iota
	Bottom
	Left
	Right
)

// String returns a human-readable representation of the edge.
func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// axis returns the index axis the edge trims.
func (e Edge) axis() model.Axis {
	if e == Top || e == Bottom {
		return model.Rows
	}
	return model.Columns
}

// fromStart reports whether the edge trims the leading end of the display
// sequence (top rows, left columns).
func (e Edge) fromStart() bool {
	return e == Top || e == Left
}

// TrimN removes k indices from the given display edge of the selection.
//
// On the linked axis the trim is global: every panel's rows at the extreme
// split on that edge lose their k edge-most selected indices. On the other
// axis the trim is local to the edge-most panel (first declared panel for
// top/left, last for bottom/right) at its extreme split. Rows whose index
// set empties on either axis are dropped, and a data panel whose rows are
// all dropped disappears from the record entirely.
func TrimN(comp *model.Composite, rec model.SelectionRecord, edge Edge, k int) model.SelectionRecord {
	if k <= 0 || len(rec) == 0 {
		return rec
	}

	axis := edge.axis()
	global := comp.LinkedAxis() == axis

	var targetPanel string
	if !global {
		targetPanel = edgePanel(comp, rec, edge)
		if targetPanel == "" {
			return rec
		}
	}
	extreme, ok := extremeSplit(rec, axis, edge.fromStart(), targetPanel)
	if !ok {
		return rec
	}

	var out model.SelectionRecord
	for _, row := range rec {
		if row.IsAnnotation() {
			out = append(out, row)
			continue
		}
		split := row.RowSplit
		if axis == model.Columns {
			split = row.ColumnSplit
		}
		if (targetPanel != "" && row.Panel != targetPanel) || split != extreme {
			out = append(out, row)
			continue
		}

		dp := comp.DataPanel(row.Panel)
		if dp == nil {
			out = append(out, row)
			continue
		}
		trimmed := trimDisplayEdge(dp.SplitOrder(axis, split), selectedOn(row, axis), edge.fromStart(), k)
		if len(trimmed) == 0 {
			continue
		}
		if axis == model.Rows {
			row.RowIndices = trimmed
			row.RowLabels = labelsFor(dp, model.Rows, trimmed)
		} else {
			row.ColumnIndices = trimmed
			row.ColumnLabels = labelsFor(dp, model.Columns, trimmed)
		}
		out = append(out, row)
	}
	return dropEmptyPanels(out)
}

// selectedOn returns the row's index set on the given axis.
func selectedOn(row model.SelectionRow, axis model.Axis) []int {
	if axis == model.Rows {
		return row.RowIndices
	}
	return row.ColumnIndices
}

// edgePanel picks the panel a panel-local trim applies to: the first
// declared data panel present in the record for top/left, the last for
// bottom/right.
func edgePanel(comp *model.Composite, rec model.SelectionRecord, edge Edge) string {
	present := make(map[string]bool)
	for _, row := range rec {
		if !row.IsAnnotation() {
			present[row.Panel] = true
		}
	}
	name := ""
	for _, p := range comp.Panels {
		if !present[p.PanelName()] {
			continue
		}
		if edge.fromStart() {
			return p.PanelName()
		}
		name = p.PanelName()
	}
	return name
}

// extremeSplit finds the smallest (leading edge) or largest split number
// present in the record on the given axis, optionally restricted to one
// panel.
func extremeSplit(rec model.SelectionRecord, axis model.Axis, smallest bool, panel string) (int, bool) {
	found := false
	extreme := 0
	for _, row := range rec {
		if row.IsAnnotation() || (panel != "" && row.Panel != panel) {
			continue
		}
		split := row.RowSplit
		if axis == model.Columns {
			split = row.ColumnSplit
		}
		if !found || (smallest && split < extreme) || (!smallest && split > extreme) {
			extreme = split
			found = true
		}
	}
	return extreme, found
}

// trimDisplayEdge removes k selected indices from one end of the display
// sequence: the split permutation restricted to the selected set.
func trimDisplayEdge(order, selected []int, fromStart bool, k int) []int {
	in := make(map[int]bool, len(selected))
	for _, idx := range selected {
		in[idx] = true
	}
	var display []int
	for _, idx := range order {
		if in[idx] {
			display = append(display, idx)
		}
	}
	if k >= len(display) {
		return nil
	}
	if fromStart {
		display = display[k:]
	} else {
		display = display[:len(display)-k]
	}
	return model.SortIndexSet(display)
}

// dropEmptyPanels removes data rows of panels that no longer select
// anything. Annotation markers are unaffected.
func dropEmptyPanels(rec model.SelectionRecord) model.SelectionRecord {
	alive := make(map[string]bool)
	for _, row := range rec {
		if !row.IsAnnotation() && len(row.RowIndices) > 0 && len(row.ColumnIndices) > 0 {
			alive[row.Panel] = true
		}
	}
	var out model.SelectionRecord
	for _, row := range rec {
		if row.IsAnnotation() {
			out = append(out, row)
			continue
		}
		if alive[row.Panel] {
			out = append(out, row)
		}
	}
	return out
}
