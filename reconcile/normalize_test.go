package reconcile

import (
	"reflect"
	"testing"

	"github.com/vizlab/heatsel/model"
)

// linkedComposite builds a horizontal two-panel composite with an
// annotation strip. Both data panels share a four-row axis.
func linkedComposite() *model.Composite {
	return &model.Composite{
		Name:      "linked",
		Direction: model.Horizontal,
		Panels: []model.Panel{
			&model.DataPanel{
				Name:         "a",
				RowLabels:    []string{"g1", "g2", "g3", "g4"},
				ColumnLabels: []string{"a1", "a2"},
				RowOrder:     [][]int{{1, 2}, {3, 4}},
				ColumnOrder:  [][]int{{1, 2}},
			},
			&model.DataPanel{
				Name:         "b",
				RowLabels:    []string{"g1", "g2", "g3", "g4"},
				ColumnLabels: []string{"b1", "b2", "b3"},
				RowOrder:     [][]int{{2, 1}, {4, 3}},
				ColumnOrder:  [][]int{{1, 2, 3}},
			},
			&model.AnnotationPanel{Name: "ann"},
		},
	}
}

func TestNormalize_MergesDuplicateSlices(t *testing.T) {
	rec := model.SelectionRecord{
		{Panel: "a", RowSplit: 1, ColumnSplit: 1, RowIndices: []int{1}, ColumnIndices: []int{1}},
		{Panel: "a", RowSplit: 1, ColumnSplit: 1, RowIndices: []int{2}, ColumnIndices: []int{2}},
	}

	got := Normalize(linkedComposite(), rec)
	if len(got) != 1 {
		t.Fatalf("Expected 1 merged row, got %d: %v", len(got), got)
	}
	if !reflect.DeepEqual(got[0].RowIndices, []int{1, 2}) {
		t.Errorf("Expected rows [1 2], got %v", got[0].RowIndices)
	}
	if !reflect.DeepEqual(got[0].ColumnIndices, []int{1, 2}) {
		t.Errorf("Expected columns [1 2], got %v", got[0].ColumnIndices)
	}
	if !reflect.DeepEqual(got[0].RowLabels, []string{"g1", "g2"}) {
		t.Errorf("Expected labels rebuilt after merge, got %v", got[0].RowLabels)
	}
}

func TestNormalize_DropsStaleIndices(t *testing.T) {
	// Index 3 belongs to row split 2, index 99 to nothing; both must be
	// silently re-intersected away.
	rec := model.SelectionRecord{
		{Panel: "a", RowSplit: 1, ColumnSplit: 1, RowIndices: []int{1, 3, 99}, ColumnIndices: []int{2}},
	}

	got := Normalize(linkedComposite(), rec)
	if len(got) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(got))
	}
	if !reflect.DeepEqual(got[0].RowIndices, []int{1}) {
		t.Errorf("Expected rows [1], got %v", got[0].RowIndices)
	}
}

func TestNormalize_DropsUnknownSlices(t *testing.T) {
	rec := model.SelectionRecord{
		{Panel: "ghost", RowSplit: 1, ColumnSplit: 1, RowIndices: []int{1}, ColumnIndices: []int{1}},
		{Panel: "a", RowSplit: 7, ColumnSplit: 1, RowIndices: []int{1}, ColumnIndices: []int{1}},
	}
	if got := Normalize(linkedComposite(), rec); len(got) != 0 {
		t.Errorf("Expected empty record, got %v", got)
	}
}

func TestNormalize_CanonicalOrder(t *testing.T) {
	rec := model.SelectionRecord{
		{Panel: "b", RowSplit: 2, ColumnSplit: 1, RowIndices: []int{4}, ColumnIndices: []int{1}},
		{Panel: "a", RowSplit: 2, ColumnSplit: 1, RowIndices: []int{3}, ColumnIndices: []int{1}},
		{Panel: "a", RowSplit: 1, ColumnSplit: 1, RowIndices: []int{1}, ColumnIndices: []int{1}},
	}

	got := Normalize(linkedComposite(), rec)
	if len(got) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(got))
	}
	order := []struct {
		panel string
		split int
	}{{"a", 1}, {"a", 2}, {"b", 2}}
	for i, want := range order {
		if got[i].Panel != want.panel || got[i].RowSplit != want.split {
			t.Errorf("Row %d: expected %s split %d, got %s split %d",
				i, want.panel, want.split, got[i].Panel, got[i].RowSplit)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	rec := model.SelectionRecord{
		{Panel: "b", RowSplit: 1, ColumnSplit: 1, RowIndices: []int{2, 1}, ColumnIndices: []int{3, 1}},
		{Panel: "a", RowSplit: 1, ColumnSplit: 1, RowIndices: []int{1}, ColumnIndices: []int{1}},
		{Panel: "a", RowSplit: 1, ColumnSplit: 1, RowIndices: []int{2}, ColumnIndices: []int{2}},
		{Panel: "ann"},
		{Panel: "ann"},
	}

	comp := linkedComposite()
	once := Normalize(comp, rec)
	twice := Normalize(comp, once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Normalize is not idempotent:\n  once:  %v\n  twice: %v", once, twice)
	}
}

func TestNormalize_DeduplicatesMarkers(t *testing.T) {
	rec := model.SelectionRecord{
		{Panel: "ann"},
		{Panel: "a", RowSplit: 1, ColumnSplit: 1, RowIndices: []int{1}, ColumnIndices: []int{1}},
		{Panel: "ann"},
	}

	got := Normalize(linkedComposite(), rec)
	markers := 0
	for _, r := range got {
		if r.IsAnnotation() {
			markers++
		}
	}
	if markers != 1 {
		t.Errorf("Expected 1 annotation marker, got %d", markers)
	}
}
