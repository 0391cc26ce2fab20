package gwrite

import (
	"math"

	"github.com/bjaus/gwrite/vector"
)

// Cursor tracks the traversal position in two frames: the real position of
// the last point, and an integer position that always equals that point
// rounded to the nearest integer, ties toward positive infinity. Integer
// steps are derived from the true position rather than from rounded deltas,
// so the integer cursor never drifts.
type Cursor struct {
	LastX, LastY float64
	IX, IY       int
}

// Step describes the movement to one point.
type Step struct {
	X, Y     float64
	DX, DY   float64
	IDX, IDY int
}

// Advance moves the cursor to p and returns the step taken.
func (c *Cursor) Advance(p vector.Point) Step {
	s := Step{
		X:  p.X,
		Y:  p.Y,
		DX: p.X - c.LastX,
		DY: p.Y - c.LastY,
	}
	ix, iy := roundHalfUp(p.X), roundHalfUp(p.Y)
	s.IDX, s.IDY = ix-c.IX, iy-c.IY
	c.IX, c.IY = ix, iy
	c.LastX, c.LastY = p.X, p.Y
	return s
}

// roundHalfUp rounds to the nearest integer, ties toward positive infinity.
// v-floor(v) is exact, unlike v+0.5.
func roundHalfUp(v float64) int {
	f := math.Floor(v)
	if v-f >= 0.5 {
		f++
	}
	return int(f)
}

// vars returns the placeholder values a segment hook exposes for s.
func (s Step) vars(c Cursor) Vars {
	return Vars{
		"x":   s.X,
		"y":   s.Y,
		"dx":  s.DX,
		"dy":  s.DY,
		"_x":  -s.X,
		"_y":  -s.Y,
		"_dx": -s.DX,
		"_dy": -s.DY,
		"ix":  c.IX,
		"iy":  c.IY,
		"idx": s.IDX,
		"idy": s.IDY,
	}
}
