package vector

import (
	"iter"
	"maps"
	"math"
	"slices"
)

// Point is a position in the plane, in working units.
type Point struct {
	X, Y float64
}

// Line is an ordered polyline.
type Line []Point

// Metadata maps property names to values.
type Metadata map[string]any

// Clone returns a shallow copy of m. A nil map stays nil.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

// Layer is an ordered collection of lines with its own metadata.
type Layer struct {
	Lines    []Line
	Metadata Metadata
}

// Len returns the number of lines in the layer.
func (l *Layer) Len() int { return len(l.Lines) }

// Scale multiplies every coordinate by (sx, sy), relative to the origin.
func (l *Layer) Scale(sx, sy float64) {
	for _, line := range l.Lines {
		for i := range line {
			line[i].X *= sx
			line[i].Y *= sy
		}
	}
}

// Translate offsets every coordinate by (tx, ty).
func (l *Layer) Translate(tx, ty float64) {
	for _, line := range l.Lines {
		for i := range line {
			line[i].X += tx
			line[i].Y += ty
		}
	}
}

// Clone returns a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	out := &Layer{
		Lines:    make([]Line, len(l.Lines)),
		Metadata: l.Metadata.Clone(),
	}
	for i, line := range l.Lines {
		out.Lines[i] = slices.Clone(line)
	}
	return out
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Point {
	return Point{X: 0.5 * (b.MinX + b.MaxX), Y: 0.5 * (b.MinY + b.MaxY)}
}

// Document is an ordered mapping of layer IDs to layers, plus
// document-level metadata. The zero value is not usable; call NewDocument.
type Document struct {
	Metadata Metadata

	layers map[int]*Layer
	order  []int
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{},
		layers:   make(map[int]*Layer),
	}
}

// AddLayer stores layer under id. Replacing an existing id keeps its
// position in the iteration order.
func (d *Document) AddLayer(id int, layer *Layer) {
	if _, ok := d.layers[id]; !ok {
		d.order = append(d.order, id)
	}
	d.layers[id] = layer
}

// Layer returns the layer stored under id.
func (d *Document) Layer(id int) (*Layer, bool) {
	l, ok := d.layers[id]
	return l, ok
}

// LayerIDs returns layer IDs in iteration order.
func (d *Document) LayerIDs() []int {
	return slices.Clone(d.order)
}

// Len returns the number of layers.
func (d *Document) Len() int { return len(d.order) }

// Layers iterates over layers in insertion order.
func (d *Document) Layers() iter.Seq2[int, *Layer] {
	return func(yield func(int, *Layer) bool) {
		for _, id := range d.order {
			if !yield(id, d.layers[id]) {
				return
			}
		}
	}
}

// Bounds returns the bounding box of the given layers, or of all layers when
// ids is empty. ok is false when no point is found.
func (d *Document) Bounds(ids ...int) (b Bounds, ok bool) {
	if len(ids) == 0 {
		ids = d.order
	}
	b = Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, id := range ids {
		layer, found := d.layers[id]
		if !found {
			continue
		}
		for _, line := range layer.Lines {
			for _, p := range line {
				b.MinX = math.Min(b.MinX, p.X)
				b.MinY = math.Min(b.MinY, p.Y)
				b.MaxX = math.Max(b.MaxX, p.X)
				b.MaxY = math.Max(b.MaxY, p.Y)
				ok = true
			}
		}
	}
	if !ok {
		return Bounds{}, false
	}
	return b, true
}

// Scale scales every layer relative to the origin.
func (d *Document) Scale(sx, sy float64) {
	for _, l := range d.Layers() {
		l.Scale(sx, sy)
	}
}

// Translate offsets every layer.
func (d *Document) Translate(tx, ty float64) {
	for _, l := range d.Layers() {
		l.Translate(tx, ty)
	}
}

// Clone returns a deep copy sharing no geometry with d. Metadata maps are
// copied; their values are not.
func (d *Document) Clone() *Document {
	out := &Document{
		Metadata: d.Metadata.Clone(),
		layers:   make(map[int]*Layer, len(d.layers)),
		order:    slices.Clone(d.order),
	}
	for id, l := range d.layers {
		out.layers[id] = l.Clone()
	}
	return out
}
