package model

import (
	"encoding/json"
	"sort"
)

// SelectionRow describes the selected region of one panel slice.
// Annotation markers (a rectangle that merely touched an annotation panel)
// carry the panel name only; their splits are zero and their sets empty.
type SelectionRow struct {
	Panel       string
	RowSplit    int // 1-based; 0 for annotation markers
	ColumnSplit int // 1-based; 0 for annotation markers

	// RowIndices and ColumnIndices are sorted ascending and duplicate-free.
	// They hold original (pre-permutation) 1-based indices.
	RowIndices    []int
	ColumnIndices []int

	RowLabels    []string
	ColumnLabels []string
}

// IsAnnotation reports whether the row is an annotation "touched" marker.
func (r SelectionRow) IsAnnotation() bool {
	return r.RowSplit == 0 && r.ColumnSplit == 0
}

// SliceID returns the slice identity of the row.
func (r SelectionRow) SliceID() SliceID {
	return SliceID{Panel: r.Panel, Row: r.RowSplit, Col: r.ColumnSplit}
}

// selectionRowJSON is the stable wire schema of a selection row.
type selectionRowJSON struct {
	Heatmap     string   `json:"heatmap"`
	Slice       *string  `json:"slice"`
	RowSlice    *int     `json:"row_slice"`
	ColumnSlice *int     `json:"column_slice"`
	RowIndex    []int    `json:"row_index"`
	ColumnIndex []int    `json:"column_index"`
	RowLabel    []string `json:"row_label"`
	ColumnLabel []string `json:"column_label"`
}

// MarshalJSON emits the documented record schema. Annotation markers
// marshal null slice identifiers.
func (r SelectionRow) MarshalJSON() ([]byte, error) {
	out := selectionRowJSON{
		Heatmap:     r.Panel,
		RowIndex:    emptyIfNil(r.RowIndices),
		ColumnIndex: emptyIfNil(r.ColumnIndices),
		RowLabel:    emptyStringsIfNil(r.RowLabels),
		ColumnLabel: emptyStringsIfNil(r.ColumnLabels),
	}
	if !r.IsAnnotation() {
		slice := r.SliceID().String()
		rs, cs := r.RowSplit, r.ColumnSplit
		out.Slice = &slice
		out.RowSlice = &rs
		out.ColumnSlice = &cs
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the documented record schema.
func (r *SelectionRow) UnmarshalJSON(data []byte) error {
	var in selectionRowJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.Panel = in.Heatmap
	r.RowSplit, r.ColumnSplit = 0, 0
	if in.RowSlice != nil {
		r.RowSplit = *in.RowSlice
	}
	if in.ColumnSlice != nil {
		r.ColumnSplit = *in.ColumnSlice
	}
	r.RowIndices = in.RowIndex
	r.ColumnIndices = in.ColumnIndex
	r.RowLabels = in.RowLabel
	r.ColumnLabels = in.ColumnLabel
	return nil
}

func emptyIfNil(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}

func emptyStringsIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// SelectionRecord is an ordered sequence of selection rows.
type SelectionRecord []SelectionRow

// IsEmpty reports whether the record contains no rows at all.
func (rec SelectionRecord) IsEmpty() bool { return len(rec) == 0 }

// HasData reports whether the record contains at least one non-annotation row.
func (rec SelectionRecord) HasData() bool {
	for _, r := range rec {
		if !r.IsAnnotation() {
			return true
		}
	}
	return false
}

// Panels returns the distinct panel names referenced by the record, in
// first-appearance order.
func (rec SelectionRecord) Panels() []string {
	var names []string
	seen := make(map[string]bool)
	for _, r := range rec {
		if !seen[r.Panel] {
			seen[r.Panel] = true
			names = append(names, r.Panel)
		}
	}
	return names
}

// SortIndexSet sorts a set of indices ascending and removes duplicates,
// returning the normalized set.
func SortIndexSet(indices []int) []int {
	if len(indices) == 0 {
		return indices
	}
	out := make([]int, len(indices))
	copy(out, indices)
	sort.Ints(out)
	w := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[w-1] {
			out[w] = out[i]
			w++
		}
	}
	return out[:w]
}

// UnionIndexSets merges two normalized index sets into a new normalized set.
func UnionIndexSets(a, b []int) []int {
	merged := make([]int, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return SortIndexSet(merged)
}

// IntersectIndexSets intersects a normalized index set with an arbitrary
// index collection, preserving the normalized order of the first argument.
func IntersectIndexSets(a, b []int) []int {
	in := make(map[int]bool, len(b))
	for _, idx := range b {
		in[idx] = true
	}
	var out []int
	for _, idx := range a {
		if in[idx] {
			out = append(out, idx)
		}
	}
	return out
}
