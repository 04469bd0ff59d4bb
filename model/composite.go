package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Direction determines how the panels of a composite are concatenated.
type Direction int

const (
	// Horizontal concatenates panels left to right; all panels share rows.
	Horizontal Direction = iota
	// Vertical stacks panels top to bottom; all panels share columns.
	Vertical
)

// String returns a human-readable representation of the direction.
func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Axis identifies one of the two index axes of a data panel.
type Axis int

const (
	// Rows is the row axis (vertical on the display).
	Rows Axis = iota
	// Columns is the column axis (horizontal on the display).
	Columns
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case Rows:
		return "rows"
	case Columns:
		return "columns"
	default:
		return "unknown"
	}
}

// PanelType distinguishes the two panel variants.
type PanelType int

const (
	// PanelTypeData is a panel with a two-dimensional value grid.
	PanelTypeData PanelType = iota
	// PanelTypeAnnotation is a one-dimensional strip without a grid.
	PanelTypeAnnotation
)

// Panel is one member of a composite: either a *DataPanel or an
// *AnnotationPanel.
type Panel interface {
	PanelName() string
	Type() PanelType
}

// DataPanel is a two-dimensional value grid with clustering-derived
// row and column split permutations.
type DataPanel struct {
	Name string

	// RowLabels[i] labels original row index i+1; may be nil.
	RowLabels    []string
	ColumnLabels []string

	// RowOrder[s] lists the original 1-based row indices of row split s+1
	// in display order, top to bottom.
	RowOrder [][]int

	// ColumnOrder[t] lists the original 1-based column indices of column
	// split t+1 in display order, left to right.
	ColumnOrder [][]int

	// Values holds the underlying grid, rows x columns, indexed by
	// original (not display) position. Missing cells are NaN. May be nil
	// when the caller has no values to inject.
	Values *mat.Dense
}

func (p *DataPanel) PanelName() string { return p.Name }
func (p *DataPanel) Type() PanelType   { return PanelTypeData }

// RowCount returns the total number of original rows.
func (p *DataPanel) RowCount() int {
	n := 0
	for _, order := range p.RowOrder {
		n += len(order)
	}
	return n
}

// ColumnCount returns the total number of original columns.
func (p *DataPanel) ColumnCount() int {
	n := 0
	for _, order := range p.ColumnOrder {
		n += len(order)
	}
	return n
}

// RowSplits returns the number of row splits.
func (p *DataPanel) RowSplits() int { return len(p.RowOrder) }

// ColumnSplits returns the number of column splits.
func (p *DataPanel) ColumnSplits() int { return len(p.ColumnOrder) }

// SplitOrder returns the display permutation for the given 1-based split
// on the given axis, or nil when the split does not exist.
func (p *DataPanel) SplitOrder(axis Axis, split int) []int {
	orders := p.RowOrder
	if axis == Columns {
		orders = p.ColumnOrder
	}
	if split < 1 || split > len(orders) {
		return nil
	}
	return orders[split-1]
}

// Label returns the label of the given 1-based original index on the given
// axis, or the empty string when no label is known.
func (p *DataPanel) Label(axis Axis, index int) string {
	labels := p.RowLabels
	if axis == Columns {
		labels = p.ColumnLabels
	}
	if index < 1 || index > len(labels) {
		return ""
	}
	return labels[index-1]
}

// IsMissing reports whether the cell at the given 1-based original row and
// column is missing. Cells outside the grid and NaN values are missing;
// a panel without injected values has no missing cells.
func (p *DataPanel) IsMissing(row, col int) bool {
	if p.Values == nil {
		return false
	}
	r, c := p.Values.Dims()
	if row < 1 || row > r || col < 1 || col > c {
		return true
	}
	return math.IsNaN(p.Values.At(row-1, col-1))
}

// Validate checks the partition invariant on both axes: the union of the
// split permutations must cover every original index exactly once.
func (p *DataPanel) Validate() error {
	if err := validatePartition(p.RowOrder); err != nil {
		return fmt.Errorf("panel %q rows: %w", p.Name, err)
	}
	if err := validatePartition(p.ColumnOrder); err != nil {
		return fmt.Errorf("panel %q columns: %w", p.Name, err)
	}
	return nil
}

// validatePartition checks that the orders partition {1..n} with n the
// total number of indices across all splits.
func validatePartition(orders [][]int) error {
	n := 0
	for _, order := range orders {
		n += len(order)
	}
	seen := make(map[int]bool, n)
	for s, order := range orders {
		for _, idx := range order {
			if idx < 1 || idx > n {
				return fmt.Errorf("split %d: index %d out of range [1,%d]", s+1, idx, n)
			}
			if seen[idx] {
				return fmt.Errorf("split %d: duplicate index %d", s+1, idx)
			}
			seen[idx] = true
		}
	}
	return nil
}

// AnnotationPanel is a one-dimensional strip alongside the data panels.
// It has no grid; its only geometry is an extent along the non-linked axis.
type AnnotationPanel struct {
	Name string

	// Size is the relative thickness used by layout, in arbitrary units.
	// Zero means a default thickness.
	Size float64
}

func (p *AnnotationPanel) PanelName() string { return p.Name }
func (p *AnnotationPanel) Type() PanelType   { return PanelTypeAnnotation }

// Composite is the full arrangement of one or more panels plus a layout
// direction.
type Composite struct {
	Name      string
	Direction Direction
	Panels    []Panel
}

// LinkedAxis returns the axis shared by all panels of the composite:
// rows for a horizontal layout, columns for a vertical one.
func (c *Composite) LinkedAxis() Axis {
	if c.Direction == Horizontal {
		return Rows
	}
	return Columns
}

// Panel returns the panel with the given name, or nil when absent.
func (c *Composite) Panel(name string) Panel {
	for _, p := range c.Panels {
		if p.PanelName() == name {
			return p
		}
	}
	return nil
}

// DataPanel returns the data panel with the given name, or nil when the
// name is absent or names an annotation panel.
func (c *Composite) DataPanel(name string) *DataPanel {
	if dp, ok := c.Panel(name).(*DataPanel); ok {
		return dp
	}
	return nil
}

// DataPanels returns the data panels in declaration order.
func (c *Composite) DataPanels() []*DataPanel {
	var out []*DataPanel
	for _, p := range c.Panels {
		if dp, ok := p.(*DataPanel); ok {
			out = append(out, dp)
		}
	}
	return out
}

// PanelIndex returns the declaration position of the named panel,
// or -1 when absent.
func (c *Composite) PanelIndex(name string) int {
	for i, p := range c.Panels {
		if p.PanelName() == name {
			return i
		}
	}
	return -1
}

// Validate checks panel name uniqueness and the partition invariant of
// every data panel.
func (c *Composite) Validate() error {
	seen := make(map[string]bool, len(c.Panels))
	for _, p := range c.Panels {
		name := p.PanelName()
		if name == "" {
			return fmt.Errorf("composite %q: panel with empty name", c.Name)
		}
		if seen[name] {
			return fmt.Errorf("composite %q: duplicate panel name %q", c.Name, name)
		}
		seen[name] = true
		if dp, ok := p.(*DataPanel); ok {
			if err := dp.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// SliceID identifies one rectangular slice of a panel by its 1-based row
// and column split. Annotation panels use the zero splits.
type SliceID struct {
	Panel string
	Row   int
	Col   int
}

// String formats the slice id for display and record output.
func (id SliceID) String() string {
	if id.Row == 0 && id.Col == 0 {
		return id.Panel
	}
	return fmt.Sprintf("%s[%d,%d]", id.Panel, id.Row, id.Col)
}
