package geometry

import (
	"fmt"
	"math"
)

// MinRoomPoints is the smallest closed polyline accepted as a room boundary:
// a triangle plus the repeated first point.
const MinRoomPoints = 4

// RoomBoundary is the room outline as a closed polyline. The first point is
// repeated as the last.
type RoomBoundary []Point3D

// Closed reports whether the first and last points coincide within tol.
func (r RoomBoundary) Closed(tol float64) bool {
	if len(r) < 2 {
		return false
	}
	return r[0].ApproxEqual(r[len(r)-1], tol)
}

// Corners returns the distinct corner points, dropping the closing repeat.
func (r RoomBoundary) Corners() []Point3D {
	if len(r) == 0 {
		return nil
	}
	n := len(r)
	if r.Closed(0) {
		n--
	}
	out := make([]Point3D, n)
	copy(out, r[:n])
	return out
}

// Edges returns the polyline segments in order.
func (r RoomBoundary) Edges() []Segment {
	if len(r) < 2 {
		return nil
	}
	edges := make([]Segment, 0, len(r)-1)
	for i := 0; i+1 < len(r); i++ {
		edges = append(edges, Segment{Start: r[i], End: r[i+1]})
	}
	return edges
}

// PlanArea is the area of the outline projected onto the XY plane, in mm².
func (r RoomBoundary) PlanArea() float64 {
	c := r.Corners()
	if len(c) < 3 {
		return 0
	}
	area := 0.0
	for i := range c {
		next := c[(i+1)%len(c)]
		area += c[i].X*next.Y - next.X*c[i].Y
	}
	return math.Abs(area) / 2
}

// MeanHeight is the average Z of the corners.
func (r RoomBoundary) MeanHeight() float64 {
	return r.Centroid().Z
}

// Centroid is the arithmetic mean of the corners.
func (r RoomBoundary) Centroid() Point3D {
	c := r.Corners()
	if len(c) == 0 {
		return Point3D{}
	}
	var sum Point3D
	for _, p := range c {
		sum.X += p.X
		sum.Y += p.Y
		sum.Z += p.Z
	}
	n := float64(len(c))
	return Pt(sum.X/n, sum.Y/n, sum.Z/n)
}

// ContainsXY reports whether p lies inside the outline when both are
// projected onto the XY plane (ray casting).
func (r RoomBoundary) ContainsXY(p Point3D) bool {
	c := r.Corners()
	if len(c) < 3 {
		return false
	}
	inside := false
	for i := range c {
		a, b := c[i], c[(i+1)%len(c)]
		if a.Y > b.Y {
			a, b = b, a
		}
		if p.Y <= a.Y || p.Y > b.Y {
			continue
		}
		x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
		if p.X < x {
			inside = !inside
		}
	}
	return inside
}

// Pipe is a straight supply pipe. Its ID doubles as the group id of the
// sprinklers and connectors it feeds.
type Pipe struct {
	ID    int     `json:"id" yaml:"id"`
	Start Point3D `json:"start" yaml:"start"`
	End   Point3D `json:"end" yaml:"end"`
}

// Segment returns the pipe centreline.
func (p Pipe) Segment() Segment {
	return Segment{Start: p.Start, End: p.End}
}

// Name is the display name used in legends and reports.
func (p Pipe) Name() string {
	return fmt.Sprintf("Pipe %d", p.ID+1)
}

// Sprinkler is a sprinkler head fed by the pipe whose ID equals GroupID.
type Sprinkler struct {
	Label    string  `json:"label" yaml:"label"`
	Position Point3D `json:"position" yaml:"position"`
	GroupID  int     `json:"group_id" yaml:"group_id"`
}

// Connector joins a sprinkler head to its feeding pipe.
type Connector struct {
	Start   Point3D `json:"start" yaml:"start"`
	End     Point3D `json:"end" yaml:"end"`
	GroupID int     `json:"group_id" yaml:"group_id"`
}

// Segment returns the connector as a segment.
func (c Connector) Segment() Segment {
	return Segment{Start: c.Start, End: c.End}
}

// Length is the connector length in millimetres.
func (c Connector) Length() float64 {
	return c.Start.DistanceTo(c.End)
}
