package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/vizlab/heatsel/model"
)

// WriteSVG emits the raster's layout as a standalone SVG document: one rect
// per grid cell, one rect per annotation strip, one text element per panel
// title. The SVG coordinate system is top-down, so Y coordinates are
// flipped relative to the surface.
func WriteSVG(w io.Writer, r *Raster) error {
	if !r.active {
		return ErrNoSurface
	}

	width, height := r.Size()
	if _, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		width, height, width, height); err != nil {
		return err
	}
	fmt.Fprintf(w, `  <rect width="%.0f" height="%.0f" fill="%s"/>`+"\n",
		width, height, hexColor(r.cfg.Background))

	lo, hi := r.valueRange()
	for _, p := range r.comp.Panels {
		switch p := p.(type) {
		case *model.DataPanel:
			if err := writeSVGPanel(w, r, p, lo, hi); err != nil {
				return err
			}
		case *model.AnnotationPanel:
			box := r.boxes[model.SliceID{Panel: p.Name}]
			fmt.Fprintf(w, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
				box.Left(), height-box.Top(), box.Width, box.Height, hexColor(r.cfg.MissingColor))
		}
		if box, ok := r.panelExtent(p.PanelName()); ok {
			fmt.Fprintf(w, `  <text x="%.1f" y="%.1f" font-size="11" fill="%s">%s</text>`+"\n",
				box.Left(), height-box.Top()-4, hexColor(r.cfg.TextColor), p.PanelName())
		}
	}

	_, err := fmt.Fprintln(w, `</svg>`)
	return err
}

func writeSVGPanel(w io.Writer, r *Raster, p *model.DataPanel, lo, hi float64) error {
	_, height := r.Size()
	cell := r.cfg.CellSize
	for s := 1; s <= p.RowSplits(); s++ {
		rowOrder := p.SplitOrder(model.Rows, s)
		for t := 1; t <= p.ColumnSplits(); t++ {
			colOrder := p.SplitOrder(model.Columns, t)
			box := r.boxes[model.SliceID{Panel: p.Name, Row: s, Col: t}]
			for i, row := range rowOrder {
				for j, col := range colOrder {
					c := r.cfg.MissingColor
					if p.Values != nil && !p.IsMissing(row, col) {
						v := p.Values.At(row-1, col-1)
						c = lerpColor(r.cfg.LowColor, r.cfg.HighColor, (v-lo)/(hi-lo))
					}
					x := box.Left() + float64(j)*cell
					y := height - box.Top() + float64(i)*cell
					if _, err := fmt.Fprintf(w,
						`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
						x, y, cell, cell, hexColor(c)); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
