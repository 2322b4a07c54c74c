package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// padFraction is the margin added on every side, as a fraction of the
// longest span.
const padFraction = 0.02

// boxLongest is the length, in echarts-gl units, of the longest box side.
const boxLongest = 200

// Extent is the axis range shown on all three axes. Every axis gets the same
// absolute padding so one millimetre has the same length on each.
type Extent struct {
	Min, Max r3.Vec
}

// NewExtent pads b by the same amount on every axis. A degenerate box gets a
// 1 mm margin so no axis collapses to zero length.
func NewExtent(b r3.Box) Extent {
	size := b.Size()
	longest := math.Max(size.X, math.Max(size.Y, size.Z))
	pad := longest * padFraction
	if pad <= 0 {
		pad = 1
	}
	margin := r3.Vec{X: pad, Y: pad, Z: pad}
	return Extent{Min: r3.Sub(b.Min, margin), Max: r3.Add(b.Max, margin)}
}

// Size is the span of each axis.
func (e Extent) Size() r3.Vec {
	return r3.Sub(e.Max, e.Min)
}

// Box returns the grid3D box dimensions. echarts-gl maps X to width, Z
// (vertical) to height and Y to depth; each is proportional to its span.
func (e Extent) Box() (width, height, depth float32) {
	s := e.Size()
	longest := math.Max(s.X, math.Max(s.Y, s.Z))
	scale := boxLongest / longest
	return float32(s.X * scale), float32(s.Z * scale), float32(s.Y * scale)
}

// Square returns the XY range of a square plan window centred on the extent.
func (e Extent) Square() (lo, hi r3.Vec) {
	s := e.Size()
	half := math.Max(s.X, s.Y) / 2
	c := r3.Scale(0.5, r3.Add(e.Min, e.Max))
	return r3.Vec{X: c.X - half, Y: c.Y - half, Z: e.Min.Z}, r3.Vec{X: c.X + half, Y: c.Y + half, Z: e.Max.Z}
}
