package scene

import (
	"fmt"
	"strconv"

	"github.com/banshee-data/sprinkler-layout/internal/geometry"
)

const (
	// DefaultPositionTolerance absorbs rounding noise between a connector end
	// and its sprinkler, in millimetres.
	DefaultPositionTolerance = 0.1
	// DefaultPipeTolerance is how far a connector's pipe end may sit from its
	// pipe segment, in millimetres.
	DefaultPipeTolerance = 1.0
)

// Options tunes BuildScene. Zero values select the defaults.
type Options struct {
	PositionTolerance float64
	PipeTolerance     float64
}

func (o Options) positionTolerance() float64 {
	if o.PositionTolerance > 0 {
		return o.PositionTolerance
	}
	return DefaultPositionTolerance
}

func (o Options) pipeTolerance() float64 {
	if o.PipeTolerance > 0 {
		return o.PipeTolerance
	}
	return DefaultPipeTolerance
}

// BuildScene validates the collections of src and resolves them into a Scene.
//
// Checks run in this order and stop at the first failure:
//   - raw geometry (geometry.Validate): *geometry.MalformedInputError
//   - sprinkler group ids name an existing pipe: *GroupReferenceError
//   - one connector per sprinkler: *CardinalityMismatchError
//   - connector group ids name an existing pipe: *GroupReferenceError
//   - each connector has one end on a distinct sprinkler (else malformed) and
//     shares that sprinkler's group (else *GroupReferenceError)
//   - each connector's other end lies on its pipe: *geometry.MalformedInputError
//
// BuildScene is deterministic and does not modify src.
func BuildScene(src geometry.Source, palette []Color, opts Options) (Scene, error) {
	if len(palette) == 0 {
		return Scene{}, ErrEmptyPalette
	}
	posTol := opts.positionTolerance()
	if err := geometry.Validate(src, posTol); err != nil {
		return Scene{}, err
	}

	room := src.Room()
	rawPipes := src.Pipes()
	rawSprinklers := src.Sprinklers()
	rawConnectors := src.Connectors()

	pipeIndex := make(map[int]int, len(rawPipes))
	for i, p := range rawPipes {
		pipeIndex[p.ID] = i
	}

	for _, sp := range rawSprinklers {
		if _, ok := pipeIndex[sp.GroupID]; !ok {
			return Scene{}, &GroupReferenceError{Kind: "sprinkler", Ref: sp.Label, GroupID: sp.GroupID, Detail: "no such pipe"}
		}
	}

	if len(rawConnectors) != len(rawSprinklers) {
		return Scene{}, &CardinalityMismatchError{Sprinklers: len(rawSprinklers), Connectors: len(rawConnectors)}
	}

	for i, c := range rawConnectors {
		if _, ok := pipeIndex[c.GroupID]; !ok {
			return Scene{}, &GroupReferenceError{Kind: "connector", Ref: strconv.Itoa(i), GroupID: c.GroupID, Detail: "no such pipe"}
		}
	}

	sprinklers := make([]Sprinkler, len(rawSprinklers))
	for i, sp := range rawSprinklers {
		sprinklers[i] = Sprinkler{Sprinkler: sp, Color: paletteColor(palette, sp.GroupID)}
	}

	owner := make([]int, len(rawSprinklers))
	for i := range owner {
		owner[i] = -1
	}
	connectors := make([]Connector, len(rawConnectors))
	for i, c := range rawConnectors {
		si, sprinklerEnd, pipeEnd, err := matchSprinkler(i, c, rawSprinklers, posTol)
		if err != nil {
			return Scene{}, err
		}
		if prev := owner[si]; prev >= 0 {
			return Scene{}, &geometry.MalformedInputError{
				Collection: geometry.CollectionConnectors,
				Index:      i,
				Reason:     fmt.Sprintf("sprinkler %s already has connector %d", rawSprinklers[si].Label, prev),
			}
		}
		owner[si] = i

		sp := rawSprinklers[si]
		if c.GroupID != sp.GroupID {
			return Scene{}, &GroupReferenceError{
				Kind:    "connector",
				Ref:     strconv.Itoa(i),
				GroupID: c.GroupID,
				Detail:  fmt.Sprintf("sprinkler %s belongs to group %d", sp.Label, sp.GroupID),
			}
		}

		pipe := rawPipes[pipeIndex[c.GroupID]]
		if d := pipe.Segment().DistanceTo(pipeEnd); d > opts.pipeTolerance() {
			return Scene{}, &geometry.MalformedInputError{
				Collection: geometry.CollectionConnectors,
				Index:      i,
				Reason:     fmt.Sprintf("pipe end %v is %.3f mm from %s", pipeEnd, d, pipe.Name()),
			}
		}

		connectors[i] = Connector{
			Connector:    c,
			Color:        paletteColor(palette, c.GroupID),
			Sprinkler:    si,
			SprinklerEnd: sprinklerEnd,
			PipeEnd:      pipeEnd,
			ShowInLegend: i == 0,
		}
	}

	pipes := make([]Pipe, len(rawPipes))
	groups := make([]Group, len(rawPipes))
	for i, p := range rawPipes {
		color := paletteColor(palette, p.ID)
		pipes[i] = Pipe{Pipe: p, Color: color}
		groups[i] = Group{ID: p.ID, Pipe: i, Color: color}
	}
	for i, sp := range sprinklers {
		g := &groups[pipeIndex[sp.GroupID]]
		g.Sprinklers = append(g.Sprinklers, i)
	}
	for i, c := range connectors {
		g := &groups[pipeIndex[c.GroupID]]
		g.Connectors = append(g.Connectors, i)
	}

	return Scene{
		name:       src.Name(),
		room:       room,
		pipes:      pipes,
		sprinklers: sprinklers,
		connectors: connectors,
		groups:     groups,
		palette:    append([]Color(nil), palette...),
	}, nil
}

// matchSprinkler finds the single sprinkler sitting on either end of c.
func matchSprinkler(index int, c geometry.Connector, sprinklers []geometry.Sprinkler, tol float64) (int, geometry.Point3D, geometry.Point3D, error) {
	match := -1
	var sprinklerEnd, pipeEnd geometry.Point3D
	for j, sp := range sprinklers {
		onStart := c.Start.ApproxEqual(sp.Position, tol)
		onEnd := c.End.ApproxEqual(sp.Position, tol)
		if !onStart && !onEnd {
			continue
		}
		if match >= 0 || (onStart && onEnd) {
			return 0, geometry.Point3D{}, geometry.Point3D{}, &geometry.MalformedInputError{
				Collection: geometry.CollectionConnectors,
				Index:      index,
				Reason:     fmt.Sprintf("connector %v is ambiguous between sprinklers", c.Segment()),
			}
		}
		match = j
		if onStart {
			sprinklerEnd, pipeEnd = c.Start, c.End
		} else {
			sprinklerEnd, pipeEnd = c.End, c.Start
		}
	}
	if match < 0 {
		return 0, geometry.Point3D{}, geometry.Point3D{}, &geometry.MalformedInputError{
			Collection: geometry.CollectionConnectors,
			Index:      index,
			Reason:     fmt.Sprintf("connector %v does not end at any sprinkler", c.Segment()),
		}
	}
	return match, sprinklerEnd, pipeEnd, nil
}
