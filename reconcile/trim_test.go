package reconcile

import (
	"reflect"
	"testing"

	"github.com/vizlab/heatsel/model"
)

func fullSelection() model.SelectionRecord {
	return model.SelectionRecord{
		{Panel: "a", RowSplit: 1, ColumnSplit: 1, RowIndices: []int{1, 2}, ColumnIndices: []int{1, 2}},
		{Panel: "a", RowSplit: 2, ColumnSplit: 1, RowIndices: []int{3, 4}, ColumnIndices: []int{1, 2}},
		{Panel: "b", RowSplit: 1, ColumnSplit: 1, RowIndices: []int{1, 2}, ColumnIndices: []int{1, 2, 3}},
	}
}

func TestTrimN_TopIsAxisGlobal(t *testing.T) {
	// Horizontal composite: rows are linked, so a top trim applies to
	// every panel at row split 1.
	got := TrimN(linkedComposite(), fullSelection(), Top, 1)
	if len(got) != 3 {
		t.Fatalf("Expected 3 rows, got %d: %v", len(got), got)
	}

	// Panel a displays split 1 as [1,2]; dropping the top entry keeps 2.
	if !reflect.DeepEqual(got[0].RowIndices, []int{2}) {
		t.Errorf("Expected panel a rows [2], got %v", got[0].RowIndices)
	}
	// Panel b displays split 1 as [2,1]; dropping the top entry keeps 1.
	if !reflect.DeepEqual(got[2].RowIndices, []int{1}) {
		t.Errorf("Expected panel b rows [1], got %v", got[2].RowIndices)
	}
	// The non-extreme split is untouched.
	if !reflect.DeepEqual(got[1].RowIndices, []int{3, 4}) {
		t.Errorf("Expected split 2 untouched, got %v", got[1].RowIndices)
	}
}

func TestTrimN_BottomTrimsExtremeSplit(t *testing.T) {
	got := TrimN(linkedComposite(), fullSelection(), Bottom, 1)

	// The extreme bottom split is 2; its display order [3,4] loses the
	// last entry.
	if !reflect.DeepEqual(got[1].RowIndices, []int{3}) {
		t.Errorf("Expected split 2 rows [3], got %v", got[1].RowIndices)
	}
	if !reflect.DeepEqual(got[0].RowIndices, []int{1, 2}) {
		t.Errorf("Expected split 1 untouched, got %v", got[0].RowIndices)
	}
}

func TestTrimN_LeftIsPanelLocal(t *testing.T) {
	// Horizontal composite: columns are not linked, so a left trim is
	// local to the first declared panel.
	got := TrimN(linkedComposite(), fullSelection(), Left, 1)

	if !reflect.DeepEqual(got[0].ColumnIndices, []int{2}) {
		t.Errorf("Expected panel a columns [2], got %v", got[0].ColumnIndices)
	}
	if !reflect.DeepEqual(got[1].ColumnIndices, []int{2}) {
		t.Errorf("Expected panel a split 2 columns [2], got %v", got[1].ColumnIndices)
	}
	if !reflect.DeepEqual(got[2].ColumnIndices, []int{1, 2, 3}) {
		t.Errorf("Expected panel b untouched, got %v", got[2].ColumnIndices)
	}
}

func TestTrimN_RightTrimsLastPanel(t *testing.T) {
	got := TrimN(linkedComposite(), fullSelection(), Right, 1)

	if !reflect.DeepEqual(got[2].ColumnIndices, []int{1, 2}) {
		t.Errorf("Expected panel b columns [1 2], got %v", got[2].ColumnIndices)
	}
	if !reflect.DeepEqual(got[0].ColumnIndices, []int{1, 2}) {
		t.Errorf("Expected panel a untouched, got %v", got[0].ColumnIndices)
	}
}

func TestTrimN_VerticalFlipsAsymmetry(t *testing.T) {
	// In a vertical composite columns are linked, so a top trim becomes
	// panel-local to the first panel.
	comp := linkedComposite()
	comp.Direction = model.Vertical

	got := TrimN(comp, fullSelection(), Top, 1)
	if !reflect.DeepEqual(got[0].RowIndices, []int{2}) {
		t.Errorf("Expected panel a trimmed, got %v", got[0].RowIndices)
	}
	if !reflect.DeepEqual(got[2].RowIndices, []int{1, 2}) {
		t.Errorf("Expected panel b untouched, got %v", got[2].RowIndices)
	}

	// And a left trim is axis-global: both panels lose their leftmost
	// selected column at column split 1.
	got = TrimN(comp, fullSelection(), Left, 1)
	if !reflect.DeepEqual(got[0].ColumnIndices, []int{2}) {
		t.Errorf("Expected panel a columns [2], got %v", got[0].ColumnIndices)
	}
	if !reflect.DeepEqual(got[2].ColumnIndices, []int{2, 3}) {
		t.Errorf("Expected panel b columns [2 3], got %v", got[2].ColumnIndices)
	}
}

func TestTrimN_DropsEmptiedRowsAndPanels(t *testing.T) {
	rec := model.SelectionRecord{
		{Panel: "a", RowSplit: 1, ColumnSplit: 1, RowIndices: []int{1, 2}, ColumnIndices: []int{1}},
		{Panel: "b", RowSplit: 1, ColumnSplit: 1, RowIndices: []int{1, 2}, ColumnIndices: []int{1}},
	}

	got := TrimN(linkedComposite(), rec, Top, 2)
	if len(got) != 0 {
		t.Errorf("Expected both panels dropped, got %v", got)
	}
}

func TestTrimN_ZeroCountIsNoop(t *testing.T) {
	rec := fullSelection()
	got := TrimN(linkedComposite(), rec, Top, 0)
	if !reflect.DeepEqual(got, rec) {
		t.Errorf("Expected unchanged record, got %v", got)
	}
}
