package resolve

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
	"math"

	"github.com/vizlab/heatsel/model"
	"github.com/vizlab/heatsel/render"
)

// GeometryCache stores the last computed geometry table of one
// visualization session. It is keyed by two fingerprints: one over the
// composite's structural identity (panel set, permutations, split counts,
// annotation inclusion) and one over the surface size. Either fingerprint
// changing invalidates the table wholesale.
//
// A cache belongs to exactly one session and must not be shared across
// concurrently resolving sessions.
type GeometryCache struct {
	content uint64
	surface uint64
	geom    *Geometry
}

// NewGeometryCache returns an empty cache.
func NewGeometryCache() *GeometryCache {
	return &GeometryCache{}
}

// Geometry returns the bounding-box table for the composite on the given
// surface, reusing the cached table when both fingerprints match. A fresh
// query asks the surface for every data-panel slice, plus every annotation
// panel when includeAnnotations is set.
func (c *GeometryCache) Geometry(comp *model.Composite, surface render.Surface, includeAnnotations bool) (*Geometry, error) {
	content := contentFingerprint(comp, includeAnnotations)
	sfp := surfaceFingerprint(surface)

	if c.geom != nil && c.content == content && c.surface == sfp {
		return c.geom, nil
	}

	geom, err := queryGeometry(comp, surface, includeAnnotations)
	if err != nil {
		return nil, err
	}
	c.content = content
	c.surface = sfp
	c.geom = geom
	return geom, nil
}

// Invalidate drops the cached table unconditionally.
func (c *GeometryCache) Invalidate() {
	c.geom = nil
}

// queryGeometry performs the slice-by-slice surface query.
func queryGeometry(comp *model.Composite, surface render.Surface, includeAnnotations bool) (*Geometry, error) {
	width, height := surface.Size()
	geom := &Geometry{
		Boxes:       make(map[model.SliceID]model.BBox),
		Width:       width,
		Height:      height,
		Unit:        surface.Unit(),
		Annotations: includeAnnotations,
	}

	for _, p := range comp.Panels {
		switch p := p.(type) {
		case *model.DataPanel:
			for s := 1; s <= p.RowSplits(); s++ {
				for t := 1; t <= p.ColumnSplits(); t++ {
					id := model.SliceID{Panel: p.Name, Row: s, Col: t}
					box, err := surface.SliceBBox(id)
					if err != nil {
						return nil, fmt.Errorf("querying slice %s: %w", id, err)
					}
					geom.Boxes[id] = box
				}
			}
		case *model.AnnotationPanel:
			if !includeAnnotations {
				continue
			}
			id := model.SliceID{Panel: p.Name}
			box, err := surface.SliceBBox(id)
			if err != nil {
				return nil, fmt.Errorf("querying annotation %s: %w", id, err)
			}
			geom.Boxes[id] = box
		}
	}
	return geom, nil
}

// contentFingerprint hashes the structural identity of the composite: the
// panel sequence, every display permutation, and the annotation flag.
// Values are deliberately excluded; they do not affect geometry.
func contentFingerprint(comp *model.Composite, includeAnnotations bool) uint64 {
	h := fnv.New64a()
	hashString(h, comp.Name)
	hashInt(h, int(comp.Direction))
	hashBool(h, includeAnnotations)

	for _, p := range comp.Panels {
		hashString(h, p.PanelName())
		hashInt(h, int(p.Type()))
		dp, ok := p.(*model.DataPanel)
		if !ok {
			continue
		}
		hashInt(h, dp.RowSplits())
		for _, order := range dp.RowOrder {
			hashInt(h, len(order))
			for _, idx := range order {
				hashInt(h, idx)
			}
		}
		hashInt(h, dp.ColumnSplits())
		for _, order := range dp.ColumnOrder {
			hashInt(h, len(order))
			for _, idx := range order {
				hashInt(h, idx)
			}
		}
	}
	return h.Sum64()
}

// surfaceFingerprint hashes the surface size and unit.
func surfaceFingerprint(surface render.Surface) uint64 {
	h := fnv.New64a()
	width, height := surface.Size()
	hashUint64(h, math.Float64bits(width))
	hashUint64(h, math.Float64bits(height))
	hashInt(h, int(surface.Unit()))
	return h.Sum64()
}

func hashString(h hash.Hash64, s string) {
	h.Write([]byte(s))
	h.Write([]byte{0})
}

func hashInt(h hash.Hash64, v int) {
	hashUint64(h, uint64(int64(v)))
}

func hashUint64(h hash.Hash64, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

func hashBool(h hash.Hash64, v bool) {
	if v {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
}
