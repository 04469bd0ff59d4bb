package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestSelectionRow_MarshalJSON(t *testing.T) {
	row := SelectionRow{
		Panel:         "expr",
		RowSplit:      2,
		ColumnSplit:   1,
		RowIndices:    []int{1, 3},
		ColumnIndices: []int{2},
		RowLabels:     []string{"gene1", "gene3"},
		ColumnLabels:  []string{"s2"},
	}

	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	for _, field := range []string{
		"heatmap", "slice", "row_slice", "column_slice",
		"row_index", "column_index", "row_label", "column_label",
	} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("Expected field %q in output", field)
		}
	}
	if decoded["heatmap"] != "expr" {
		t.Errorf("Expected heatmap expr, got %v", decoded["heatmap"])
	}
	if decoded["slice"] != "expr[2,1]" {
		t.Errorf("Expected slice expr[2,1], got %v", decoded["slice"])
	}
}

func TestSelectionRow_AnnotationMarshalsNulls(t *testing.T) {
	row := SelectionRow{Panel: "ann"}
	if !row.IsAnnotation() {
		t.Fatal("Expected zero-split row to be an annotation marker")
	}

	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(data)

	for _, want := range []string{`"slice":null`, `"row_slice":null`, `"column_slice":null`, `"row_index":[]`} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected output to contain %s, got %s", want, s)
		}
	}
}

func TestSelectionRow_RoundTrip(t *testing.T) {
	row := SelectionRow{
		Panel:         "expr",
		RowSplit:      1,
		ColumnSplit:   2,
		RowIndices:    []int{4},
		ColumnIndices: []int{1, 2},
		RowLabels:     []string{"gene4"},
		ColumnLabels:  []string{"s1", "s2"},
	}

	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var back SelectionRow
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(row, back) {
		t.Errorf("Round trip mismatch:\n  in:  %+v\n  out: %+v", row, back)
	}
}

func TestSelectionRecord_HasData(t *testing.T) {
	rec := SelectionRecord{{Panel: "ann"}}
	if rec.HasData() {
		t.Error("Expected record with only markers to have no data")
	}
	rec = append(rec, SelectionRow{Panel: "expr", RowSplit: 1, ColumnSplit: 1})
	if !rec.HasData() {
		t.Error("Expected record with a data row to have data")
	}
	if got := rec.Panels(); !reflect.DeepEqual(got, []string{"ann", "expr"}) {
		t.Errorf("Expected panels [ann expr], got %v", got)
	}
}

func TestIndexSetHelpers(t *testing.T) {
	got := SortIndexSet([]int{5, 1, 3, 1, 5})
	if !reflect.DeepEqual(got, []int{1, 3, 5}) {
		t.Errorf("SortIndexSet: expected [1 3 5], got %v", got)
	}

	got = UnionIndexSets([]int{1, 3}, []int{2, 3, 7})
	if !reflect.DeepEqual(got, []int{1, 2, 3, 7}) {
		t.Errorf("UnionIndexSets: expected [1 2 3 7], got %v", got)
	}

	got = IntersectIndexSets([]int{1, 2, 3, 7}, []int{3, 1, 9})
	if !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("IntersectIndexSets: expected [1 3], got %v", got)
	}

	if got := IntersectIndexSets([]int{1, 2}, nil); got != nil {
		t.Errorf("Expected nil intersection, got %v", got)
	}
}
