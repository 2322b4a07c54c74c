// Package scene turns raw sprinkler-layout geometry into a validated,
// render-ready Scene: entities carry their resolved group color, connectors
// are paired with the sprinkler they feed, and the legend policy is fixed.
package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/sprinkler-layout/internal/geometry"
)

// Pipe is a supply pipe with its group color.
type Pipe struct {
	geometry.Pipe
	Color Color
}

// Sprinkler is a sprinkler head with its group color.
type Sprinkler struct {
	geometry.Sprinkler
	Color Color
}

// Connector is a drop from a pipe to one sprinkler.
type Connector struct {
	geometry.Connector
	Color Color
	// Sprinkler indexes Scene.Sprinklers.
	Sprinkler int
	// SprinklerEnd is the endpoint that sits on the sprinkler; PipeEnd the
	// other one.
	SprinklerEnd geometry.Point3D
	PipeEnd      geometry.Point3D
	// ShowInLegend is set on the first connector only.
	ShowInLegend bool
}

// Group is one pipe together with the sprinklers and connectors it feeds.
// Sprinklers and Connectors are indices into the scene collections.
type Group struct {
	ID         int
	Pipe       int
	Color      Color
	Sprinklers []int
	Connectors []int
}

// Scene is the immutable result of BuildScene. Accessors return copies.
type Scene struct {
	name       string
	room       geometry.RoomBoundary
	pipes      []Pipe
	sprinklers []Sprinkler
	connectors []Connector
	groups     []Group
	palette    []Color
}

// Name is the name of the source dataset.
func (s Scene) Name() string { return s.name }

func (s Scene) Room() geometry.RoomBoundary { return append(geometry.RoomBoundary(nil), s.room...) }

func (s Scene) Pipes() []Pipe { return append([]Pipe(nil), s.pipes...) }

func (s Scene) Sprinklers() []Sprinkler { return append([]Sprinkler(nil), s.sprinklers...) }

func (s Scene) Connectors() []Connector { return append([]Connector(nil), s.connectors...) }

func (s Scene) Palette() []Color { return append([]Color(nil), s.palette...) }

// Groups returns one group per pipe, in pipe order.
func (s Scene) Groups() []Group {
	out := make([]Group, len(s.groups))
	for i, g := range s.groups {
		g.Sprinklers = append([]int(nil), g.Sprinklers...)
		g.Connectors = append([]int(nil), g.Connectors...)
		out[i] = g
	}
	return out
}

// Color resolves a group id to its palette entry, cycling when there are more
// groups than colors.
func (s Scene) Color(groupID int) Color {
	return paletteColor(s.palette, groupID)
}

// Group returns the group with the given id.
func (s Scene) Group(groupID int) (Group, bool) {
	for _, g := range s.Groups() {
		if g.ID == groupID {
			return g, true
		}
	}
	return Group{}, false
}

// Bounds is the axis-aligned box enclosing every point of the scene.
func (s Scene) Bounds() r3.Box {
	pts := append([]geometry.Point3D(nil), s.room...)
	for _, p := range s.pipes {
		pts = append(pts, p.Start, p.End)
	}
	for _, sp := range s.sprinklers {
		pts = append(pts, sp.Position)
	}
	for _, c := range s.connectors {
		pts = append(pts, c.Start, c.End)
	}
	return geometry.Bounds(pts...)
}

// Source returns the scene's raw entities as a Dataset. Building a scene from
// it yields an equal scene.
func (s Scene) Source() *geometry.Dataset {
	pipes := make([]geometry.Pipe, len(s.pipes))
	for i, p := range s.pipes {
		pipes[i] = p.Pipe
	}
	sprinklers := make([]geometry.Sprinkler, len(s.sprinklers))
	for i, sp := range s.sprinklers {
		sprinklers[i] = sp.Sprinkler
	}
	connectors := make([]geometry.Connector, len(s.connectors))
	for i, c := range s.connectors {
		connectors[i] = c.Connector
	}
	return geometry.NewDataset(s.name, s.room, pipes, sprinklers, connectors)
}

func paletteColor(palette []Color, groupID int) Color {
	n := len(palette)
	if n == 0 {
		return Color{}
	}
	return palette[((groupID%n)+n)%n]
}
