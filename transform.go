package gwrite

import (
	"fmt"

	"github.com/bjaus/gwrite/vector"
)

// Transform returns a copy of doc mapped into output coordinates: scaled by
// ScaleX/unit and ScaleY/unit, translated by the offsets, then mirrored
// around the center of its bounds along each inverted axis. doc itself is
// left untouched.
func Transform(doc *vector.Document, pl Placement) (*vector.Document, error) {
	unitScale, err := vector.ConvertLength(pl.Unit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	out := doc.Clone()
	out.Scale(pl.ScaleX/unitScale, pl.ScaleY/unitScale)
	out.Translate(pl.OffsetX, pl.OffsetY)

	if !pl.InvertX && !pl.InvertY {
		return out, nil
	}
	b, ok := out.Bounds()
	if !ok {
		return nil, fmt.Errorf("%w: no geometry available, cannot compute origin", ErrGeometry)
	}
	c := b.Center()
	sx, sy := 1.0, 1.0
	if pl.InvertX {
		sx = -1
	}
	if pl.InvertY {
		sy = -1
	}
	for _, layer := range out.Layers() {
		layer.Translate(-c.X, -c.Y)
		layer.Scale(sx, sy)
		layer.Translate(c.X, c.Y)
	}
	return out, nil
}
