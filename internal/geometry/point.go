// Package geometry holds the raw coordinate model of a sprinkler installation
// and the sources that supply it. All coordinates are millimetres.
package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point3D is a position in millimetres.
type Point3D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Pt is shorthand for Point3D{x, y, z}.
func Pt(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// Vec converts p to a gonum vector.
func (p Point3D) Vec() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// FromVec converts a gonum vector to a Point3D.
func FromVec(v r3.Vec) Point3D {
	return Point3D{X: v.X, Y: v.Y, Z: v.Z}
}

// DistanceTo returns the euclidean distance between p and q.
func (p Point3D) DistanceTo(q Point3D) float64 {
	return r3.Norm(r3.Sub(p.Vec(), q.Vec()))
}

// ApproxEqual reports whether p and q are within tol millimetres of each other.
func (p Point3D) ApproxEqual(q Point3D, tol float64) bool {
	return p.DistanceTo(q) <= tol
}

// IsFinite reports whether no coordinate is NaN or infinite.
func (p Point3D) IsFinite() bool {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Point3D) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", p.X, p.Y, p.Z)
}

// Segment is a straight line between two points.
type Segment struct {
	Start Point3D
	End   Point3D
}

// Length returns the segment length in millimetres.
func (s Segment) Length() float64 {
	return s.Start.DistanceTo(s.End)
}

// ClosestPoint returns the point on s nearest to p. Degenerate segments
// collapse to their start point.
func (s Segment) ClosestPoint(p Point3D) Point3D {
	a := s.Start.Vec()
	ab := r3.Sub(s.End.Vec(), a)
	abSq := r3.Norm2(ab)
	if abSq < 1e-10 {
		return s.Start
	}
	t := r3.Dot(r3.Sub(p.Vec(), a), ab) / abSq
	t = math.Max(0, math.Min(1, t))
	return FromVec(r3.Add(a, r3.Scale(t, ab)))
}

// DistanceTo returns the shortest distance from p to the segment.
func (s Segment) DistanceTo(p Point3D) float64 {
	return p.DistanceTo(s.ClosestPoint(p))
}

func (s Segment) String() string {
	return fmt.Sprintf("%s -> %s", s.Start, s.End)
}

// Bounds returns the axis-aligned box enclosing pts. An empty input yields the
// zero box.
func Bounds(pts ...Point3D) r3.Box {
	if len(pts) == 0 {
		return r3.Box{}
	}
	b := r3.Box{Min: pts[0].Vec(), Max: pts[0].Vec()}
	for _, p := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Min.Z = math.Min(b.Min.Z, p.Z)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
		b.Max.Z = math.Max(b.Max.Z, p.Z)
	}
	return b
}
