package layout

import (
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/vizlab/heatsel/model"
)

// compositeSpec maps the YAML document root.
type compositeSpec struct {
	Name      string      `yaml:"name"`
	Direction string      `yaml:"direction"`
	Panels    []panelSpec `yaml:"panels"`
}

// panelSpec maps one panel entry.
type panelSpec struct {
	Name         string       `yaml:"name"`
	Kind         string       `yaml:"kind"` // "data" (default) or "annotation"
	Size         float64      `yaml:"size"` // annotation thickness, in cells
	RowLabels    []string     `yaml:"row_labels"`
	ColumnLabels []string     `yaml:"column_labels"`
	RowSplits    [][]int      `yaml:"row_splits"`
	ColumnSplits [][]int      `yaml:"column_splits"`
	Values       [][]*float64 `yaml:"values"` // null cells are missing
}

// Parse reads a composite definition from the reader and validates it.
func Parse(r io.Reader) (*model.Composite, error) {
	var spec compositeSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("layout: decoding composite: %w", err)
	}
	return build(&spec)
}

// ParseFile reads a composite definition from a file.
func ParseFile(path string) (*model.Composite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("layout: opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

func build(spec *compositeSpec) (*model.Composite, error) {
	comp := &model.Composite{Name: spec.Name}

	switch spec.Direction {
	case "", "horizontal":
		comp.Direction = model.Horizontal
	case "vertical":
		comp.Direction = model.Vertical
	default:
		return nil, fmt.Errorf("layout: unknown direction %q", spec.Direction)
	}

	for _, ps := range spec.Panels {
		switch ps.Kind {
		case "", "data":
			dp, err := buildDataPanel(&ps)
			if err != nil {
				return nil, err
			}
			comp.Panels = append(comp.Panels, dp)
		case "annotation":
			comp.Panels = append(comp.Panels, &model.AnnotationPanel{Name: ps.Name, Size: ps.Size})
		default:
			return nil, fmt.Errorf("layout: panel %q: unknown kind %q", ps.Name, ps.Kind)
		}
	}

	if err := comp.Validate(); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return comp, nil
}

func buildDataPanel(ps *panelSpec) (*model.DataPanel, error) {
	dp := &model.DataPanel{
		Name:         ps.Name,
		RowLabels:    ps.RowLabels,
		ColumnLabels: ps.ColumnLabels,
		RowOrder:     ps.RowSplits,
		ColumnOrder:  ps.ColumnSplits,
	}

	nRows := len(ps.RowLabels)
	nCols := len(ps.ColumnLabels)
	if len(ps.Values) > 0 {
		if nRows == 0 {
			nRows = len(ps.Values)
		}
		if nCols == 0 {
			nCols = len(ps.Values[0])
		}
	}
	if nRows == 0 || nCols == 0 {
		return nil, fmt.Errorf("layout: panel %q: cannot determine grid size", ps.Name)
	}

	if dp.RowOrder == nil {
		dp.RowOrder = [][]int{naturalOrder(nRows)}
	}
	if dp.ColumnOrder == nil {
		dp.ColumnOrder = [][]int{naturalOrder(nCols)}
	}

	if len(ps.Values) > 0 {
		if len(ps.Values) != nRows {
			return nil, fmt.Errorf("layout: panel %q: %d value rows for %d rows", ps.Name, len(ps.Values), nRows)
		}
		values := mat.NewDense(nRows, nCols, nil)
		for i, row := range ps.Values {
			if len(row) != nCols {
				return nil, fmt.Errorf("layout: panel %q: row %d has %d values for %d columns", ps.Name, i+1, len(row), nCols)
			}
			for j, cell := range row {
				if cell == nil {
					values.Set(i, j, math.NaN())
				} else {
					values.Set(i, j, *cell)
				}
			}
		}
		dp.Values = values
	}
	return dp, nil
}

func naturalOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i + 1
	}
	return order
}
