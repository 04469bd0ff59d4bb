package resolve

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/vizlab/heatsel/model"
)

// ErrAmbiguousPanel is returned when a joint label query (row and column
// keywords together) cannot be pinned to a single target panel.
var ErrAmbiguousPanel = errors.New("resolve: ambiguous target panel for joint label query")

// LabelQuery selects rows and columns by their labels instead of geometry.
type LabelQuery struct {
	// RowKeywords and ColumnKeywords are the labels to match. Supplying
	// both restricts the query to a single target panel (joint mode).
	RowKeywords    []string
	ColumnKeywords []string

	// Pattern treats keywords as regular expressions instead of exact
	// labels. Exact matching folds case and normalizes Unicode forms.
	Pattern bool

	// Panel restricts the query to the named data panel. Required in
	// joint mode when the composite has more than one data panel.
	Panel string

	// IncludeAnnotations appends a "touched" marker row per annotation
	// panel to a non-empty result.
	IncludeAnnotations bool

	// PropagateAll extends a match on the linked axis to every other
	// data panel, selecting the matched indices against each panel's
	// full extent on the other axis.
	PropagateAll bool
}

// ResolveLabels maps label keywords to a selection record. A query that
// matches nothing yields an empty record and no error.
func ResolveLabels(comp *model.Composite, q LabelQuery) (model.SelectionRecord, error) {
	if len(q.RowKeywords) == 0 && len(q.ColumnKeywords) == 0 {
		return model.SelectionRecord{}, nil
	}

	matcher, err := newLabelMatcher(q)
	if err != nil {
		return nil, err
	}

	var record model.SelectionRecord
	joint := len(q.RowKeywords) > 0 && len(q.ColumnKeywords) > 0
	if joint {
		target, err := jointTarget(comp, q.Panel)
		if err != nil {
			return nil, err
		}
		record = jointRows(target, matcher)
	} else {
		for _, dp := range comp.DataPanels() {
			if q.Panel != "" && dp.Name != q.Panel {
				continue
			}
			record = append(record, singleAxisRows(dp, matcher)...)
		}
	}

	if q.PropagateAll {
		record = propagate(comp, record, q)
	}
	if record.HasData() && q.IncludeAnnotations {
		for _, p := range comp.Panels {
			if p.Type() == model.PanelTypeAnnotation {
				record = append(record, model.SelectionRow{Panel: p.PanelName()})
			}
		}
	}
	if !record.HasData() {
		return model.SelectionRecord{}, nil
	}
	return record, nil
}

// jointTarget picks the single data panel a joint query addresses.
func jointTarget(comp *model.Composite, name string) (*model.DataPanel, error) {
	if name != "" {
		dp := comp.DataPanel(name)
		if dp == nil {
			return nil, fmt.Errorf("resolve: no data panel named %q", name)
		}
		return dp, nil
	}
	panels := comp.DataPanels()
	if len(panels) != 1 {
		return nil, ErrAmbiguousPanel
	}
	return panels[0], nil
}

// jointRows emits one row per (row split, column split) pair that contains
// at least one match on each axis.
func jointRows(dp *model.DataPanel, m *labelMatcher) model.SelectionRecord {
	matchedRows := m.matchAxis(dp, model.Rows)
	matchedCols := m.matchAxis(dp, model.Columns)
	if len(matchedRows) == 0 || len(matchedCols) == 0 {
		return nil
	}

	var record model.SelectionRecord
	for s := 1; s <= dp.RowSplits(); s++ {
		rowIdx := model.IntersectIndexSets(matchedRows, dp.SplitOrder(model.Rows, s))
		if len(rowIdx) == 0 {
			continue
		}
		for t := 1; t <= dp.ColumnSplits(); t++ {
			colIdx := model.IntersectIndexSets(matchedCols, dp.SplitOrder(model.Columns, t))
			if len(colIdx) == 0 {
				continue
			}
			record = append(record, model.SelectionRow{
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
	return record
}

// singleAxisRows handles a query keyed on one axis only: the other axis
// defaults to each split's full index set.
func singleAxisRows(dp *model.DataPanel, m *labelMatcher) model.SelectionRecord {
	keyed := model.Rows
	if len(m.rowKeywords) == 0 {
		keyed = model.Columns
	}
	matched := m.matchAxis(dp, keyed)
	if len(matched) == 0 {
		return nil
	}

	var record model.SelectionRecord
	if keyed == model.Rows {
		for s := 1; s <= dp.RowSplits(); s++ {
			rowIdx := model.IntersectIndexSets(matched, dp.SplitOrder(model.Rows, s))
			if len(rowIdx) == 0 {
				continue
			}
			for t := 1; t <= dp.ColumnSplits(); t++ {
				colIdx := model.SortIndexSet(dp.SplitOrder(model.Columns, t))
				record = append(record, model.SelectionRow{
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
		return record
	}

	for t := 1; t <= dp.ColumnSplits(); t++ {
		colIdx := model.IntersectIndexSets(matched, dp.SplitOrder(model.Columns, t))
		if len(colIdx) == 0 {
			continue
		}
		for s := 1; s <= dp.RowSplits(); s++ {
			rowIdx := model.SortIndexSet(dp.SplitOrder(model.Rows, s))
			record = append(record, model.SelectionRow{
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
	return record
}

// propagate extends a match on the linked axis to every data panel absent
// from the record, selecting the matched indices against each panel's full
// extent on the other axis.
func propagate(comp *model.Composite, record model.SelectionRecord, q LabelQuery) model.SelectionRecord {
	linked := comp.LinkedAxis()
	keyedRows := len(q.RowKeywords) > 0 && len(q.ColumnKeywords) == 0
	keyedCols := len(q.ColumnKeywords) > 0 && len(q.RowKeywords) == 0
	if (linked == model.Rows && !keyedRows) || (linked == model.Columns && !keyedCols) {
		return record
	}

	// Union of matched indices on the linked axis across the record.
	var matched []int
	have := make(map[string]bool)
	for _, r := range record {
		if r.IsAnnotation() {
			continue
		}
		have[r.Panel] = true
		if linked == model.Rows {
			matched = model.UnionIndexSets(matched, r.RowIndices)
		} else {
			matched = model.UnionIndexSets(matched, r.ColumnIndices)
		}
	}
	if len(matched) == 0 {
		return record
	}

	for _, dp := range comp.DataPanels() {
		if have[dp.Name] {
			continue
		}
		if linked == model.Rows {
			for s := 1; s <= dp.RowSplits(); s++ {
				rowIdx := model.IntersectIndexSets(matched, dp.SplitOrder(model.Rows, s))
				if len(rowIdx) == 0 {
					continue
				}
				for t := 1; t <= dp.ColumnSplits(); t++ {
					colIdx := model.SortIndexSet(dp.SplitOrder(model.Columns, t))
					record = append(record, model.SelectionRow{
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
			continue
		}
		for t := 1; t <= dp.ColumnSplits(); t++ {
			colIdx := model.IntersectIndexSets(matched, dp.SplitOrder(model.Columns, t))
			if len(colIdx) == 0 {
				continue
			}
			for s := 1; s <= dp.RowSplits(); s++ {
				rowIdx := model.SortIndexSet(dp.SplitOrder(model.Rows, s))
				record = append(record, model.SelectionRow{
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
	}
	return record
}

// labelMatcher matches axis labels either exactly (case-folded, Unicode
// normalized) or by regular expression.
type labelMatcher struct {
	rowKeywords []string
	colKeywords []string
	rowExact    map[string]bool
	colExact    map[string]bool
	rowPatterns []*regexp.Regexp
	colPatterns []*regexp.Regexp
}

var labelFolder = cases.Fold()

// canonicalLabel normalizes a label for exact comparison.
func canonicalLabel(s string) string {
	return labelFolder.String(norm.NFC.String(s))
}

func newLabelMatcher(q LabelQuery) (*labelMatcher, error) {
	m := &labelMatcher{
		rowKeywords: q.RowKeywords,
		colKeywords: q.ColumnKeywords,
	}
	if !q.Pattern {
		m.rowExact = canonicalSet(q.RowKeywords)
		m.colExact = canonicalSet(q.ColumnKeywords)
		return m, nil
	}

	var err error
	if m.rowPatterns, err = compileAll(q.RowKeywords); err != nil {
		return nil, err
	}
	if m.colPatterns, err = compileAll(q.ColumnKeywords); err != nil {
		return nil, err
	}
	return m, nil
}

func canonicalSet(keywords []string) map[string]bool {
	set := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		set[canonicalLabel(kw)] = true
	}
	return set
}

func compileAll(keywords []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		re, err := regexp.Compile(kw)
		if err != nil {
			return nil, fmt.Errorf("resolve: bad label pattern %q: %w", kw, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// matchAxis returns the sorted original indices of the panel whose labels
// match any keyword on the given axis.
func (m *labelMatcher) matchAxis(dp *model.DataPanel, axis model.Axis) []int {
	labels := dp.RowLabels
	exact := m.rowExact
	patterns := m.rowPatterns
	if axis == model.Columns {
		labels = dp.ColumnLabels
		exact = m.colExact
		patterns = m.colPatterns
	}

	var matched []int
	for i, label := range labels {
		if m.matches(label, exact, patterns) {
			matched = append(matched, i+1)
		}
	}
	return matched
}

func (m *labelMatcher) matches(label string, exact map[string]bool, patterns []*regexp.Regexp) bool {
	if exact != nil {
		return exact[canonicalLabel(label)]
	}
	normalized := norm.NFC.String(label)
	for _, re := range patterns {
		if re.MatchString(normalized) {
			return true
		}
	}
	return false
}
