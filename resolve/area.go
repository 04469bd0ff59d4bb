package resolve

import (
	"math"

	"github.com/vizlab/heatsel/model"
)

// ResolveArea maps a surface rectangle, given as two opposite corners in
// any order, to the index ranges of every panel slice it overlaps. A slice
// contributes only when the rectangle overlaps it on both axes jointly;
// partial overlap is clamped to the slice boundary. When includeAnnotations
// is set, annotation panels overlapped along the non-linked axis contribute
// "touched" marker rows.
//
// A rectangle that touches no data-panel slice yields an empty record and
// no error, regardless of annotations.
func ResolveArea(comp *model.Composite, a, b model.Point, geom *Geometry, includeAnnotations bool) (model.SelectionRecord, error) {
	rect, err := model.RectFromCorners(a, b)
	if err != nil {
		return nil, err
	}
	if a.Unit != geom.Unit {
		return nil, model.ErrUnitMismatch
	}

	var record model.SelectionRecord
	for _, panel := range comp.Panels {
		switch p := panel.(type) {
		case *model.DataPanel:
			record = append(record, areaDataRows(p, rect, geom)...)
		case *model.AnnotationPanel:
			if !includeAnnotations {
				continue
			}
			box, ok := geom.SliceBox(model.SliceID{Panel: p.Name})
			if !ok {
				continue
			}
			// Annotation extents are tested on the non-linked axis only.
			touched := rect.OverlapsX(box)
			if comp.Direction == model.Vertical {
				touched = rect.OverlapsY(box)
			}
			if touched {
				record = append(record, model.SelectionRow{Panel: p.Name})
			}
		}
	}

	if !record.HasData() {
		return model.SelectionRecord{}, nil
	}
	return record, nil
}

// areaDataRows computes the per-slice contributions of one data panel.
func areaDataRows(dp *model.DataPanel, rect model.BBox, geom *Geometry) []model.SelectionRow {
	var rows []model.SelectionRow
	for s := 1; s <= dp.RowSplits(); s++ {
		for t := 1; t <= dp.ColumnSplits(); t++ {
			box, ok := geom.SliceBox(model.SliceID{Panel: dp.Name, Row: s, Col: t})
			if !ok || !box.IsValid() {
				continue
			}

			colOrder := dp.SplitOrder(model.Columns, t)
			rowOrder := dp.SplitOrder(model.Rows, s)

			colLo, colHi, ok := rankInterval(
				(rect.Left()-box.Left())/box.Width,
				(rect.Right()-box.Left())/box.Width,
				len(colOrder), false)
			if !ok {
				continue
			}
			rowLo, rowHi, ok := rankInterval(
				(rect.Bottom()-box.Bottom())/box.Height,
				(rect.Top()-box.Bottom())/box.Height,
				len(rowOrder), true)
			if !ok {
				continue
			}

			rowIdx := model.SortIndexSet(rowOrder[rowLo-1 : rowHi])
			colIdx := model.SortIndexSet(colOrder[colLo-1 : colHi])
			rows = append(rows, model.SelectionRow{
				Panel:         dp.Name,
				RowSplit:      s,
				ColumnSplit:   t,
				RowIndices:    rowIdx,
				ColumnIndices: colIdx,
				RowLabels:     labelsFor(dp, model.Rows, rowIdx),
				ColumnLabels:  labelsFor(dp, model.Columns, colIdx),
			})
		}
	}
	return rows
}

// rankInterval converts the fractional positions of the two rectangle edges
// on one axis to an inclusive display-rank interval. The interval is sorted
// ascending and clamped to [1, n]; intervals entirely outside that range
// report no overlap.
func rankInterval(f1, f2 float64, n int, topDown bool) (lo, hi int, ok bool) {
	if n == 0 {
		return 0, 0, false
	}

	var r1, r2 int
	if topDown {
		r1 = 1 + n - int(math.Ceil(f1*float64(n)))
		r2 = 1 + n - int(math.Ceil(f2*float64(n)))
	} else {
		r1 = int(math.Ceil(f1 * float64(n)))
		r2 = int(math.Ceil(f2 * float64(n)))
	}
	lo, hi = r1, r2
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi < 1 || lo > n {
		return 0, 0, false
	}
	if lo < 1 {
		lo = 1
	}
	if hi > n {
		hi = n
	}
	return lo, hi, true
}
