package resolve

import (
	"math"

	"github.com/vizlab/heatsel/model"
)

// ResolvePoint maps one surface coordinate to the panel cell under it.
// The result holds at most one row; a point outside every panel slice
// yields an empty record and no error. The point's unit must match the
// geometry's unit.
func ResolvePoint(comp *model.Composite, p model.Point, geom *Geometry) (model.SelectionRecord, error) {
	if p.Unit != geom.Unit {
		return nil, model.ErrUnitMismatch
	}

	// Slices never physically overlap, so the first hit in declaration
	// order is the only hit.
	for _, panel := range comp.Panels {
		dp, ok := panel.(*model.DataPanel)
		if !ok {
			continue
		}
		for s := 1; s <= dp.RowSplits(); s++ {
			for t := 1; t <= dp.ColumnSplits(); t++ {
				id := model.SliceID{Panel: dp.Name, Row: s, Col: t}
				box, ok := geom.SliceBox(id)
				if !ok || !box.IsValid() || !box.Contains(p) {
					continue
				}

				colOrder := dp.SplitOrder(model.Columns, t)
				rowOrder := dp.SplitOrder(model.Rows, s)
				colRank := columnRank((p.X-box.Left())/box.Width, len(colOrder))
				rowRank := rowRank((p.Y-box.Bottom())/box.Height, len(rowOrder))
				if colRank == 0 || rowRank == 0 {
					continue
				}

				row := rowOrder[rowRank-1]
				col := colOrder[colRank-1]
				return model.SelectionRecord{{
					Panel:         dp.Name,
					RowSplit:      s,
					ColumnSplit:   t,
					RowIndices:    []int{row},
					ColumnIndices: []int{col},
					RowLabels:     labelsFor(dp, model.Rows, []int{row}),
					ColumnLabels:  labelsFor(dp, model.Columns, []int{col}),
				}}, nil
			}
		}
	}
	return model.SelectionRecord{}, nil
}

// columnRank converts a fractional position across a slice to a 1-based
// display rank, left to right. Returns 0 for an empty slice.
func columnRank(f float64, n int) int {
	if n == 0 {
		return 0
	}
	return clampRank(int(math.Ceil(f*float64(n))), n)
}

// rowRank converts a fractional position up a slice to a 1-based display
// rank counted from the top, so rank 1 is the top display row.
func rowRank(f float64, n int) int {
	if n == 0 {
		return 0
	}
	return clampRank(1+n-int(math.Ceil(f*float64(n))), n)
}

func clampRank(rank, n int) int {
	if rank < 1 {
		return 1
	}
	if rank > n {
		return n
	}
	return rank
}

// labelsFor resolves index sets to their labels, skipping unlabeled indices.
func labelsFor(dp *model.DataPanel, axis model.Axis, indices []int) []string {
	var out []string
	for _, idx := range indices {
		if label := dp.Label(axis, idx); label != "" {
			out = append(out, label)
		}
	}
	return out
}
