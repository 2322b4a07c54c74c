package geometry

import (
	"fmt"
	"sort"
)

// Names of the datasets compiled into the binary.
const (
	LayoutA = "layout-a"
	LayoutB = "layout-b"
)

var builtins = map[string]func() *Dataset{
	LayoutA: layoutA,
	LayoutB: layoutB,
}

// Builtin returns a fresh copy of a compiled-in dataset.
func Builtin(name string) (*Dataset, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in dataset %q (have %v)", name, BuiltinNames())
	}
	return fn(), nil
}

// BuiltinNames lists the compiled-in datasets in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// layoutA is a skewed room with three parallel pipes at 3000 mm, each feeding
// five heads. Labels interleave across pipes (S1 on pipe 1, S2 on pipe 2, ...).
func layoutA() *Dataset {
	room := []Point3D{
		Pt(97500.01, 34000.00, 2500.00),
		Pt(85647.67, 43193.61, 2500.00),
		Pt(91776.75, 51095.16, 2530.00),
		Pt(103629.07, 41901.55, 2530.00),
		Pt(97500.01, 34000.00, 2500.00),
	}
	pipes := []Pipe{
		{ID: 0, Start: Pt(98242.11, 36588.29, 3000.00), End: Pt(87970.10, 44556.09, 3000.00)},
		{ID: 1, Start: Pt(99774.38, 38563.68, 3000.00), End: Pt(89502.37, 46531.47, 3000.00)},
		{ID: 2, Start: Pt(101306.65, 40539.07, 3000.00), End: Pt(91034.63, 48507.01, 3000.00)},
	}
	sprinklers := []Sprinkler{
		{Label: "S1", Position: Pt(89155.33, 43636.73, 2507.50), GroupID: 0},
		{Label: "S4", Position: Pt(91130.72, 42104.46, 2507.50), GroupID: 0},
		{Label: "S7", Position: Pt(93106.10, 40572.20, 2507.50), GroupID: 0},
		{Label: "S10", Position: Pt(95081.49, 39039.93, 2507.50), GroupID: 0},
		{Label: "S13", Position: Pt(97056.88, 37507.66, 2507.50), GroupID: 0},

		{Label: "S2", Position: Pt(90687.60, 45612.12, 2515.00), GroupID: 1},
		{Label: "S5", Position: Pt(92662.98, 44079.85, 2515.00), GroupID: 1},
		{Label: "S8", Position: Pt(94638.37, 42547.58, 2515.00), GroupID: 1},
		{Label: "S11", Position: Pt(96613.76, 41015.32, 2515.00), GroupID: 1},
		{Label: "S14", Position: Pt(98589.15, 39483.05, 2515.00), GroupID: 1},

		{Label: "S3", Position: Pt(92219.87, 47587.50, 2522.50), GroupID: 2},
		{Label: "S6", Position: Pt(94195.25, 46055.24, 2522.50), GroupID: 2},
		{Label: "S9", Position: Pt(96170.64, 44522.97, 2522.50), GroupID: 2},
		{Label: "S12", Position: Pt(98146.03, 42990.70, 2522.50), GroupID: 2},
		{Label: "S15", Position: Pt(100121.42, 41458.43, 2522.50), GroupID: 2},
	}
	connectors := []Connector{
		{Start: Pt(89155.33, 43636.73, 2507.50), End: Pt(89155.33, 43636.73, 3000.00), GroupID: 0},
		{Start: Pt(91130.72, 42104.46, 2507.50), End: Pt(91130.71, 42104.46, 3000.00), GroupID: 0},
		{Start: Pt(93106.10, 40572.20, 2507.50), End: Pt(93106.10, 40572.19, 3000.00), GroupID: 0},
		{Start: Pt(95081.49, 39039.93, 2507.50), End: Pt(95081.49, 39039.92, 3000.00), GroupID: 0},
		{Start: Pt(97056.88, 37507.66, 2507.50), End: Pt(97056.87, 37507.65, 3000.00), GroupID: 0},

		{Start: Pt(90687.60, 45612.12, 2515.00), End: Pt(90687.60, 45612.11, 3000.00), GroupID: 1},
		{Start: Pt(92662.98, 44079.85, 2515.00), End: Pt(92662.98, 44079.85, 3000.00), GroupID: 1},
		{Start: Pt(94638.37, 42547.58, 2515.00), End: Pt(94638.37, 42547.58, 3000.00), GroupID: 1},
		{Start: Pt(96613.76, 41015.32, 2515.00), End: Pt(96613.76, 41015.31, 3000.00), GroupID: 1},
		{Start: Pt(98589.15, 39483.05, 2515.00), End: Pt(98589.14, 39483.04, 3000.00), GroupID: 1},

		{Start: Pt(92219.87, 47587.50, 2522.50), End: Pt(92219.93, 47587.58, 3000.00), GroupID: 2},
		{Start: Pt(94195.25, 46055.24, 2522.50), End: Pt(94195.30, 46055.30, 3000.00), GroupID: 2},
		{Start: Pt(96170.64, 44522.97, 2522.50), End: Pt(96170.68, 44523.01, 3000.00), GroupID: 2},
		{Start: Pt(98146.03, 42990.70, 2522.50), End: Pt(98146.05, 42990.73, 3000.00), GroupID: 2},
		{Start: Pt(100121.42, 41458.43, 2522.50), End: Pt(100121.42, 41458.44, 3000.00), GroupID: 2},
	}
	return NewDataset(LayoutA, room, pipes, sprinklers, connectors)
}

// layoutB is a rectangular 8 m x 6 m room with two pipes and three heads per
// pipe.
func layoutB() *Dataset {
	room := []Point3D{
		Pt(0, 0, 2700),
		Pt(8000, 0, 2700),
		Pt(8000, 6000, 2700),
		Pt(0, 6000, 2700),
		Pt(0, 0, 2700),
	}
	pipes := []Pipe{
		{ID: 0, Start: Pt(1000, 1500, 3000), End: Pt(7000, 1500, 3000)},
		{ID: 1, Start: Pt(1000, 4500, 3000), End: Pt(7000, 4500, 3000)},
	}
	var sprinklers []Sprinkler
	var connectors []Connector
	label := 1
	for _, x := range []float64{2000, 4000, 6000} {
		for _, p := range pipes {
			pos := Pt(x, p.Start.Y, 2650)
			sprinklers = append(sprinklers, Sprinkler{
				Label:    fmt.Sprintf("S%d", label),
				Position: pos,
				GroupID:  p.ID,
			})
			connectors = append(connectors, Connector{Start: pos, End: Pt(x, p.Start.Y, p.Start.Z), GroupID: p.ID})
			label++
		}
	}
	return NewDataset(LayoutB, room, pipes, sprinklers, connectors)
}
