package reconcile

import (
	"sort"

	"github.com/vizlab/heatsel/model"
)

// Normalize merges duplicate slice rows, clamps every index set to its
// panel's authoritative permutation, and orders the result by panel
// declaration order, then row split, then column split. Rows referencing
// unknown panels or splits are dropped. Annotation markers are deduplicated
// per panel and keep their empty sets.
//
// Normalize is idempotent.
func Normalize(comp *model.Composite, rec model.SelectionRecord) model.SelectionRecord {
	merged := make(map[model.SliceID]*model.SelectionRow)
	var order []model.SliceID

	for _, row := range rec {
		id := row.SliceID()
		if existing, ok := merged[id]; ok {
			existing.RowIndices = model.UnionIndexSets(existing.RowIndices, row.RowIndices)
			existing.ColumnIndices = model.UnionIndexSets(existing.ColumnIndices, row.ColumnIndices)
			continue
		}
		r := row
		r.RowIndices = model.SortIndexSet(r.RowIndices)
		r.ColumnIndices = model.SortIndexSet(r.ColumnIndices)
		merged[id] = &r
		order = append(order, id)
	}

	var out model.SelectionRecord
	for _, id := range order {
		row := merged[id]
		if row.IsAnnotation() {
			if comp.Panel(row.Panel) == nil {
				continue
			}
			out = append(out, model.SelectionRow{Panel: row.Panel})
			continue
		}

		dp := comp.DataPanel(row.Panel)
		if dp == nil {
			continue
		}
		rowOrder := dp.SplitOrder(model.Rows, row.RowSplit)
		colOrder := dp.SplitOrder(model.Columns, row.ColumnSplit)
		if rowOrder == nil || colOrder == nil {
			continue
		}

		// Guard against stale indices introduced by the merge.
		rowIdx := model.IntersectIndexSets(row.RowIndices, rowOrder)
		colIdx := model.IntersectIndexSets(row.ColumnIndices, colOrder)
		if len(rowIdx) == 0 || len(colIdx) == 0 {
			continue
		}
		out = append(out, model.SelectionRow{
			Panel:         row.Panel,
			RowSplit:      row.RowSplit,
			ColumnSplit:   row.ColumnSplit,
			RowIndices:    rowIdx,
			ColumnIndices: colIdx,
			RowLabels:     labelsFor(dp, model.Rows, rowIdx),
			ColumnLabels:  labelsFor(dp, model.Columns, colIdx),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := comp.PanelIndex(out[i].Panel), comp.PanelIndex(out[j].Panel)
		if pi != pj {
			return pi < pj
		}
		if out[i].RowSplit != out[j].RowSplit {
			return out[i].RowSplit < out[j].RowSplit
		}
		return out[i].ColumnSplit < out[j].ColumnSplit
	})
	return out
}

// labelsFor resolves an index set to labels, skipping unlabeled indices.
func labelsFor(dp *model.DataPanel, axis model.Axis, indices []int) []string {
	var out []string
	for _, idx := range indices {
		if label := dp.Label(axis, idx); label != "" {
			out = append(out, label)
		}
	}
	return out
}
