package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/floats"

	"github.com/vizlab/heatsel/model"
)

// RasterConfig controls the layout and appearance of a Raster surface.
type RasterConfig struct {
	// CellSize is the edge length of one grid cell, in pixels.
	CellSize float64

	// PanelGap is the gap between adjacent panels, in pixels.
	PanelGap float64

	// SplitGap is the gap between adjacent splits of one panel, in pixels.
	SplitGap float64

	// Margin is the blank border around the whole composite, in pixels.
	Margin float64

	// TitleSpace is the vertical space reserved for panel titles, in pixels.
	TitleSpace float64

	// AnnotationSize is the default thickness of annotation strips, in pixels.
	AnnotationSize float64

	// Colors
	Background   color.RGBA
	MissingColor color.RGBA
	LowColor     color.RGBA
	HighColor    color.RGBA
	TextColor    color.RGBA
}

// DefaultRasterConfig returns sensible defaults for raster rendering.
func DefaultRasterConfig() RasterConfig {
	return RasterConfig{
		CellSize:       14,
		PanelGap:       10,
		SplitGap:       4,
		Margin:         24,
		TitleSpace:     18,
		AnnotationSize: 14,
		Background:     color.RGBA{255, 255, 255, 255},
		MissingColor:   color.RGBA{220, 220, 220, 255},
		LowColor:       color.RGBA{33, 102, 172, 255},
		HighColor:      color.RGBA{178, 24, 43, 255},
		TextColor:      color.RGBA{0, 0, 0, 255},
	}
}

// Raster is a deterministic software rendering surface. It lays a composite
// out into a pixel grid and answers slice geometry queries against that
// layout. One Raster corresponds to one rendered surface; Close deactivates
// it, after which geometry queries fail with ErrNoSurface.
type Raster struct {
	comp   *model.Composite
	cfg    RasterConfig
	boxes  map[model.SliceID]model.BBox
	width  float64
	height float64
	active bool
}

// NewRaster lays out the composite and returns an active surface.
func NewRaster(comp *model.Composite, cfg RasterConfig) (*Raster, error) {
	if err := comp.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if cfg.CellSize <= 0 {
		return nil, fmt.Errorf("render: non-positive cell size %v", cfg.CellSize)
	}

	r := &Raster{
		comp:   comp,
		cfg:    cfg,
		boxes:  make(map[model.SliceID]model.BBox),
		active: true,
	}
	if comp.Direction == model.Horizontal {
		r.layoutHorizontal()
	} else {
		r.layoutVertical()
	}
	return r, nil
}

// dataPanelHeight returns the stacked height of all row splits of a panel.
func (r *Raster) dataPanelHeight(p *model.DataPanel) float64 {
	h := float64(p.RowCount()) * r.cfg.CellSize
	if p.RowSplits() > 1 {
		h += float64(p.RowSplits()-1) * r.cfg.SplitGap
	}
	return h
}

// dataPanelWidth returns the side-by-side width of all column splits of a panel.
func (r *Raster) dataPanelWidth(p *model.DataPanel) float64 {
	w := float64(p.ColumnCount()) * r.cfg.CellSize
	if p.ColumnSplits() > 1 {
		w += float64(p.ColumnSplits()-1) * r.cfg.SplitGap
	}
	return w
}

func (r *Raster) annotationThickness(p *model.AnnotationPanel) float64 {
	if p.Size > 0 {
		return p.Size * r.cfg.CellSize
	}
	return r.cfg.AnnotationSize
}

// layoutHorizontal places panels left to right. All panels share the row
// axis; annotation strips span the full content height.
func (r *Raster) layoutHorizontal() {
	contentH := r.cfg.AnnotationSize
	for _, p := range r.comp.DataPanels() {
		if h := r.dataPanelHeight(p); h > contentH {
			contentH = h
		}
	}
	r.height = contentH + 2*r.cfg.Margin + r.cfg.TitleSpace
	top := r.cfg.Margin + contentH // y of the content top, bottom-left origin

	x := r.cfg.Margin
	for i, p := range r.comp.Panels {
		if i > 0 {
			x += r.cfg.PanelGap
		}
		switch p := p.(type) {
		case *model.DataPanel:
			r.placeDataPanel(p, x, top)
			x += r.dataPanelWidth(p)
		case *model.AnnotationPanel:
			w := r.annotationThickness(p)
			r.boxes[model.SliceID{Panel: p.Name}] = model.NewBBox(x, r.cfg.Margin, w, contentH)
			x += w
		}
	}
	r.width = x + r.cfg.Margin
}

// layoutVertical stacks panels top to bottom. All panels share the column
// axis; annotation strips span the full content width.
func (r *Raster) layoutVertical() {
	contentW := r.cfg.AnnotationSize
	totalH := 0.0
	for i, p := range r.comp.Panels {
		if i > 0 {
			totalH += r.cfg.PanelGap
		}
		switch p := p.(type) {
		case *model.DataPanel:
			if w := r.dataPanelWidth(p); w > contentW {
				contentW = w
			}
			totalH += r.dataPanelHeight(p)
		case *model.AnnotationPanel:
			totalH += r.annotationThickness(p)
		}
	}
	r.width = contentW + 2*r.cfg.Margin
	r.height = totalH + 2*r.cfg.Margin + r.cfg.TitleSpace

	top := r.cfg.Margin + totalH
	for i, p := range r.comp.Panels {
		if i > 0 {
			top -= r.cfg.PanelGap
		}
		switch p := p.(type) {
		case *model.DataPanel:
			r.placeDataPanel(p, r.cfg.Margin, top)
			top -= r.dataPanelHeight(p)
		case *model.AnnotationPanel:
			h := r.annotationThickness(p)
			r.boxes[model.SliceID{Panel: p.Name}] = model.NewBBox(r.cfg.Margin, top-h, contentW, h)
			top -= h
		}
	}
}

// placeDataPanel records one bounding box per (row split, column split)
// slice of the panel, anchored at the given left edge and content top.
func (r *Raster) placeDataPanel(p *model.DataPanel, left, top float64) {
	y := top
	for s := 1; s <= p.RowSplits(); s++ {
		if s > 1 {
			y -= r.cfg.SplitGap
		}
		sliceH := float64(len(p.SplitOrder(model.Rows, s))) * r.cfg.CellSize
		x := left
		for t := 1; t <= p.ColumnSplits(); t++ {
			if t > 1 {
				x += r.cfg.SplitGap
			}
			sliceW := float64(len(p.SplitOrder(model.Columns, t))) * r.cfg.CellSize
			r.boxes[model.SliceID{Panel: p.Name, Row: s, Col: t}] =
				model.NewBBox(x, y-sliceH, sliceW, sliceH)
			x += sliceW
		}
		y -= sliceH
	}
}

// SliceBBox implements Surface.
func (r *Raster) SliceBBox(id model.SliceID) (model.BBox, error) {
	if !r.active {
		return model.BBox{}, ErrNoSurface
	}
	box, ok := r.boxes[id]
	if !ok {
		return model.BBox{}, fmt.Errorf("render: unknown slice %s", id)
	}
	return box, nil
}

// Size implements Surface.
func (r *Raster) Size() (width, height float64) {
	return r.width, r.height
}

// Unit implements Surface.
func (r *Raster) Unit() model.Unit { return model.UnitPixel }

// Active reports whether the surface still answers geometry queries.
func (r *Raster) Active() bool { return r.active }

// Close deactivates the surface. Subsequent geometry queries fail with
// ErrNoSurface.
func (r *Raster) Close() error {
	r.active = false
	return nil
}

// valueRange scans every injected value grid for the global finite range.
func (r *Raster) valueRange() (lo, hi float64) {
	var vals []float64
	for _, p := range r.comp.DataPanels() {
		if p.Values == nil {
			continue
		}
		for _, v := range p.Values.RawMatrix().Data {
			if !math.IsNaN(v) {
				vals = append(vals, v)
			}
		}
	}
	if len(vals) == 0 {
		return 0, 1
	}
	lo, hi = floats.Min(vals), floats.Max(vals)
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	return color.RGBA{
		R: uint8(float64(a.R) + t*(float64(b.R)-float64(a.R))),
		G: uint8(float64(a.G) + t*(float64(b.G)-float64(a.G))),
		B: uint8(float64(a.B) + t*(float64(b.B)-float64(a.B))),
		A: 255,
	}
}

// imgY converts a bottom-left origin Y coordinate to image coordinates.
func (r *Raster) imgY(y float64) int {
	return int(math.Round(r.height - y))
}

// Render draws the composite into a new image. Cell fill follows a linear
// two-color scale over the global value range; annotation strips and
// missing cells use flat fills.
func (r *Raster) Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(r.width)), int(math.Ceil(r.height))))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.cfg.Background), image.Point{}, draw.Src)

	lo, hi := r.valueRange()
	for _, p := range r.comp.Panels {
		switch p := p.(type) {
		case *model.DataPanel:
			r.drawDataPanel(img, p, lo, hi)
		case *model.AnnotationPanel:
			box := r.boxes[model.SliceID{Panel: p.Name}]
			r.fillBox(img, box, r.cfg.MissingColor)
		}
		r.drawTitle(img, p.PanelName())
	}
	return img
}

// RenderScaled renders the composite and scales the result by the given
// factor using bilinear interpolation.
func (r *Raster) RenderScaled(scale float64) *image.RGBA {
	src := r.Render()
	w := int(math.Ceil(float64(src.Bounds().Dx()) * scale))
	h := int(math.Ceil(float64(src.Bounds().Dy()) * scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func (r *Raster) drawDataPanel(img *image.RGBA, p *model.DataPanel, lo, hi float64) {
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
					cellBox := model.NewBBox(
						box.X+float64(j)*cell,
						box.Top()-float64(i+1)*cell,
						cell, cell,
					)
					r.fillBox(img, cellBox, c)
				}
			}
		}
	}
}

func (r *Raster) fillBox(img *image.RGBA, box model.BBox, c color.RGBA) {
	rect := image.Rect(
		int(math.Round(box.Left())), r.imgY(box.Top()),
		int(math.Round(box.Right())), r.imgY(box.Bottom()),
	)
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawTitle draws the panel name above the panel's leftmost slice.
func (r *Raster) drawTitle(img *image.RGBA, name string) {
	box, ok := r.panelExtent(name)
	if !ok {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.cfg.TextColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(box.Left()), r.imgY(box.Top())-4),
	}
	d.DrawString(name)
}

// panelExtent returns the union of all slice boxes of the named panel.
func (r *Raster) panelExtent(name string) (model.BBox, bool) {
	var out model.BBox
	found := false
	for id, box := range r.boxes {
		if id.Panel != name {
			continue
		}
		if !found {
			out = box
			found = true
			continue
		}
		left := math.Min(out.Left(), box.Left())
		bottom := math.Min(out.Bottom(), box.Bottom())
		right := math.Max(out.Right(), box.Right())
		top := math.Max(out.Top(), box.Top())
		out = model.NewBBox(left, bottom, right-left, top-bottom)
	}
	return out, found
}
