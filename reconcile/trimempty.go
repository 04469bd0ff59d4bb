package reconcile

import (
	"github.com/vizlab/heatsel/model"
)

// TrimEmpty drops selected indices whose underlying values are entirely
// missing, one axis at a time in the order given. Collapsing rows keeps a
// row index only if at least one selected cell in that row is non-missing;
// when the composite links the row axis, the check ORs across every panel
// sharing the same row split, and the index is dropped from all of them
// together. Rows whose index set empties on the collapsed axis are removed.
//
// Panels without an injected value grid never lose indices. TrimEmpty is
// idempotent for a fixed axis order.
func TrimEmpty(comp *model.Composite, rec model.SelectionRecord, axes ...model.Axis) model.SelectionRecord {
	for _, axis := range axes {
		rec = collapseAxis(comp, rec, axis)
	}
	return rec
}

// splitGroup keys the rows collapsed together: panels share a group only
// along the linked axis.
type splitGroup struct {
	panel string // empty when the axis is linked across panels
	split int
}

func collapseAxis(comp *model.Composite, rec model.SelectionRecord, axis model.Axis) model.SelectionRecord {
	linked := comp.LinkedAxis() == axis

	groups := make(map[splitGroup][]int) // record positions per group
	for i, row := range rec {
		if row.IsAnnotation() {
			continue
		}
		g := groupOf(row, axis, linked)
		groups[g] = append(groups[g], i)
	}

	drop := make(map[splitGroup]map[int]bool)
	for g, positions := range groups {
		drop[g] = deadIndices(comp, rec, positions, axis)
	}

	var out model.SelectionRecord
	for _, row := range rec {
		if row.IsAnnotation() {
			out = append(out, row)
			continue
		}
		dead := drop[groupOf(row, axis, linked)]
		if len(dead) == 0 {
			out = append(out, row)
			continue
		}

		dp := comp.DataPanel(row.Panel)
		var kept []int
		for _, idx := range selectedOn(row, axis) {
			if !dead[idx] {
				kept = append(kept, idx)
			}
		}
		if len(kept) == 0 {
			continue
		}
		if axis == model.Rows {
			row.RowIndices = kept
			if dp != nil {
				row.RowLabels = labelsFor(dp, model.Rows, kept)
			}
		} else {
			row.ColumnIndices = kept
			if dp != nil {
				row.ColumnLabels = labelsFor(dp, model.Columns, kept)
			}
		}
		out = append(out, row)
	}
	return out
}

func groupOf(row model.SelectionRow, axis model.Axis, linked bool) splitGroup {
	split := row.RowSplit
	if axis == model.Columns {
		split = row.ColumnSplit
	}
	g := splitGroup{split: split}
	if !linked {
		g.panel = row.Panel
	}
	return g
}

// deadIndices finds the indices on the collapsed axis that have no
// non-missing selected cell in any row of the group.
func deadIndices(comp *model.Composite, rec model.SelectionRecord, positions []int, axis model.Axis) map[int]bool {
	// Union of selected indices on the collapsed axis.
	var all []int
	for _, pos := range positions {
		all = model.UnionIndexSets(all, selectedOn(rec[pos], axis))
	}

	dead := make(map[int]bool)
	for _, idx := range all {
		live := false
		for _, pos := range positions {
			row := rec[pos]
			dp := comp.DataPanel(row.Panel)
			if dp == nil {
				continue
			}
			if dp.Values == nil {
				// No values to inspect: cannot prove emptiness.
				live = true
				break
			}
			if containsIndex(selectedOn(row, axis), idx) && anyPresent(dp, axis, idx, selectedOn(row, opposite(axis))) {
				live = true
				break
			}
		}
		if !live {
			dead[idx] = true
		}
	}
	return dead
}

func opposite(axis model.Axis) model.Axis {
	if axis == model.Rows {
		return model.Columns
	}
	return model.Rows
}

func containsIndex(set []int, idx int) bool {
	for _, v := range set {
		if v == idx {
			return true
		}
	}
	return false
}

// anyPresent reports whether any selected cell along the opposite axis of
// the given index is non-missing.
func anyPresent(dp *model.DataPanel, axis model.Axis, idx int, opposite []int) bool {
	for _, other := range opposite {
		row, col := idx, other
		if axis == model.Columns {
			row, col = other, idx
		}
		if !dp.IsMissing(row, col) {
			return true
		}
	}
	return false
}
