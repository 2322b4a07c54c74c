package scene

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/sprinkler-layout/internal/geometry"
)

// PipeSummary counts what one pipe feeds.
type PipeSummary struct {
	Name       string
	Color      Color
	Length     float64
	Sprinklers int
}

// ConnectionSummary describes one sprinkler drop.
type ConnectionSummary struct {
	Sprinkler string
	Pipe      string
	Position  geometry.Point3D
	PipeEnd   geometry.Point3D
	Length    float64
}

// Summary holds the figures printed alongside a rendered layout. Lengths are
// in millimetres, areas in square millimetres.
type Summary struct {
	Name                  string
	Corners               []geometry.Point3D
	RoomArea              float64
	CeilingHeight         float64
	Bounds                r3.Box
	Pipes                 []PipeSummary
	Connections           []ConnectionSummary
	TotalConnectionLength float64
}

// Summarize computes the Summary of s.
func (s Scene) Summarize() Summary {
	sum := Summary{
		Name:          s.name,
		Corners:       s.room.Corners(),
		RoomArea:      s.room.PlanArea(),
		CeilingHeight: s.room.MeanHeight(),
		Bounds:        s.Bounds(),
	}
	for _, g := range s.groups {
		p := s.pipes[g.Pipe]
		sum.Pipes = append(sum.Pipes, PipeSummary{
			Name:       p.Name(),
			Color:      g.Color,
			Length:     p.Segment().Length(),
			Sprinklers: len(g.Sprinklers),
		})
	}
	for _, c := range s.connectors {
		sp := s.sprinklers[c.Sprinkler]
		l := c.Length()
		sum.Connections = append(sum.Connections, ConnectionSummary{
			Sprinkler: sp.Label,
			Pipe:      s.pipes[s.groups[groupIndex(s.groups, c.GroupID)].Pipe].Name(),
			Position:  sp.Position,
			PipeEnd:   c.PipeEnd,
			Length:    l,
		})
		sum.TotalConnectionLength += l
	}
	return sum
}

func groupIndex(groups []Group, id int) int {
	for i, g := range groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// fingerprintNamespace scopes scene fingerprints.
var fingerprintNamespace = uuid.MustParse("6f1c3b9e-2d0a-4c55-9a43-8e2b7d1f5c60")

// Fingerprint is a name-based (SHA-1) UUID over the scene content. Equal
// scenes have equal fingerprints.
func (s Scene) Fingerprint() uuid.UUID {
	var b bytes.Buffer
	fmt.Fprintf(&b, "name=%q\n", s.name)
	for _, p := range s.room {
		fmt.Fprintf(&b, "room %g %g %g\n", p.X, p.Y, p.Z)
	}
	for _, p := range s.pipes {
		fmt.Fprintf(&b, "pipe %d %g %g %g %g %g %g %s\n", p.ID, p.Start.X, p.Start.Y, p.Start.Z, p.End.X, p.End.Y, p.End.Z, p.Color.Hex())
	}
	for _, sp := range s.sprinklers {
		fmt.Fprintf(&b, "sprinkler %q %g %g %g %d %s\n", sp.Label, sp.Position.X, sp.Position.Y, sp.Position.Z, sp.GroupID, sp.Color.Hex())
	}
	for _, c := range s.connectors {
		fmt.Fprintf(&b, "connector %g %g %g %g %g %g %d %s %t\n", c.Start.X, c.Start.Y, c.Start.Z, c.End.X, c.End.Y, c.End.Z, c.GroupID, c.Color.Hex(), c.ShowInLegend)
	}
	return uuid.NewSHA1(fingerprintNamespace, b.Bytes())
}
