package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDataset() *Dataset {
	return NewDataset("unit",
		square(),
		[]Pipe{{ID: 0, Start: Pt(500, 1500, 3000), End: Pt(3500, 1500, 3000)}},
		[]Sprinkler{{Label: "S1", Position: Pt(1000, 1500, 2600), GroupID: 0}},
		[]Connector{{Start: Pt(1000, 1500, 2600), End: Pt(1000, 1500, 3000), GroupID: 0}},
	)
}

func TestDataset_AccessorsReturnCopies(t *testing.T) {
	ds := validDataset()

	pipes := ds.Pipes()
	pipes[0].ID = 42
	room := ds.Room()
	room[0] = Pt(-1, -1, -1)
	sprinklers := ds.Sprinklers()
	sprinklers[0].Label = "mutated"

	assert.Equal(t, 0, ds.Pipes()[0].ID)
	assert.Equal(t, Pt(0, 0, 2500), ds.Room()[0])
	assert.Equal(t, "S1", ds.Sprinklers()[0].Label)
}

func TestNewDataset_CopiesInputs(t *testing.T) {
	pipes := []Pipe{{ID: 0, Start: Pt(0, 0, 0), End: Pt(1, 0, 0)}}
	ds := NewDataset("x", square(), pipes, nil, nil)
	pipes[0].ID = 9

	assert.Equal(t, 0, ds.Pipes()[0].ID)
}

func TestValidate_Valid(t *testing.T) {
	require.NoError(t, Validate(validDataset(), 0.1))
}

func TestValidate_Malformed(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(room *[]Point3D, pipes *[]Pipe, spr *[]Sprinkler, con *[]Connector)
		collection string
	}{
		{
			name:       "empty room",
			mutate:     func(room *[]Point3D, _ *[]Pipe, _ *[]Sprinkler, _ *[]Connector) { *room = nil },
			collection: CollectionRoom,
		},
		{
			name: "too few room points",
			mutate: func(room *[]Point3D, _ *[]Pipe, _ *[]Sprinkler, _ *[]Connector) {
				*room = []Point3D{Pt(0, 0, 0), Pt(1, 0, 0), Pt(0, 0, 0)}
			},
			collection: CollectionRoom,
		},
		{
			name:       "open room",
			mutate:     func(room *[]Point3D, _ *[]Pipe, _ *[]Sprinkler, _ *[]Connector) { *room = (*room)[:4] },
			collection: CollectionRoom,
		},
		{
			name:       "non-finite room",
			mutate:     func(room *[]Point3D, _ *[]Pipe, _ *[]Sprinkler, _ *[]Connector) { (*room)[1].X = math.NaN() },
			collection: CollectionRoom,
		},
		{
			name:       "no pipes",
			mutate:     func(_ *[]Point3D, pipes *[]Pipe, _ *[]Sprinkler, _ *[]Connector) { *pipes = nil },
			collection: CollectionPipes,
		},
		{
			name:       "pipe endpoints coincide",
			mutate:     func(_ *[]Point3D, pipes *[]Pipe, _ *[]Sprinkler, _ *[]Connector) { (*pipes)[0].End = (*pipes)[0].Start },
			collection: CollectionPipes,
		},
		{
			name: "pipe endpoints within tolerance",
			mutate: func(_ *[]Point3D, pipes *[]Pipe, _ *[]Sprinkler, _ *[]Connector) {
				(*pipes)[0].End = Pt((*pipes)[0].Start.X+0.05, (*pipes)[0].Start.Y, (*pipes)[0].Start.Z)
			},
			collection: CollectionPipes,
		},
		{
			name:       "negative pipe id",
			mutate:     func(_ *[]Point3D, pipes *[]Pipe, _ *[]Sprinkler, _ *[]Connector) { (*pipes)[0].ID = -1 },
			collection: CollectionPipes,
		},
		{
			name: "duplicate pipe id",
			mutate: func(_ *[]Point3D, pipes *[]Pipe, _ *[]Sprinkler, _ *[]Connector) {
				*pipes = append(*pipes, Pipe{ID: 0, Start: Pt(0, 0, 0), End: Pt(1, 1, 1)})
			},
			collection: CollectionPipes,
		},
		{
			name:       "infinite pipe",
			mutate:     func(_ *[]Point3D, pipes *[]Pipe, _ *[]Sprinkler, _ *[]Connector) { (*pipes)[0].End.Z = math.Inf(1) },
			collection: CollectionPipes,
		},
		{
			name:       "empty label",
			mutate:     func(_ *[]Point3D, _ *[]Pipe, spr *[]Sprinkler, _ *[]Connector) { (*spr)[0].Label = "" },
			collection: CollectionSprinklers,
		},
		{
			name: "duplicate label",
			mutate: func(_ *[]Point3D, _ *[]Pipe, spr *[]Sprinkler, _ *[]Connector) {
				*spr = append(*spr, Sprinkler{Label: "S1", Position: Pt(2000, 1500, 2600)})
			},
			collection: CollectionSprinklers,
		},
		{
			name:       "non-finite sprinkler",
			mutate:     func(_ *[]Point3D, _ *[]Pipe, spr *[]Sprinkler, _ *[]Connector) { (*spr)[0].Position.Y = math.NaN() },
			collection: CollectionSprinklers,
		},
		{
			name:       "non-finite connector",
			mutate:     func(_ *[]Point3D, _ *[]Pipe, _ *[]Sprinkler, con *[]Connector) { (*con)[0].End.X = math.Inf(-1) },
			collection: CollectionConnectors,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			base := validDataset()
			room := []Point3D(base.Room())
			pipes, spr, con := base.Pipes(), base.Sprinklers(), base.Connectors()
			tc.mutate(&room, &pipes, &spr, &con)

			err := Validate(NewDataset("unit", room, pipes, spr, con), 0.1)
			require.Error(t, err)

			var mErr *MalformedInputError
			require.True(t, errors.As(err, &mErr), "want MalformedInputError, got %T: %v", err, err)
			assert.Equal(t, tc.collection, mErr.Collection)
		})
	}
}

func TestMalformedInputError_Message(t *testing.T) {
	assert.Equal(t, "malformed input: room: boundary is empty",
		(&MalformedInputError{Collection: "room", Index: -1, Reason: "boundary is empty"}).Error())
	assert.Equal(t, "malformed input: pipes[2]: negative id -1",
		(&MalformedInputError{Collection: "pipes", Index: 2, Reason: "negative id -1"}).Error())
}

func TestBuiltin(t *testing.T) {
	assert.Equal(t, []string{LayoutA, LayoutB}, BuiltinNames())

	a, err := Builtin(LayoutA)
	require.NoError(t, err)
	assert.Equal(t, LayoutA, a.Name())
	assert.Len(t, a.Room(), 5)
	assert.Len(t, a.Pipes(), 3)
	assert.Len(t, a.Sprinklers(), 15)
	assert.Len(t, a.Connectors(), 15)
	require.NoError(t, Validate(a, 0.1))

	b, err := Builtin(LayoutB)
	require.NoError(t, err)
	assert.Len(t, b.Pipes(), 2)
	assert.Len(t, b.Sprinklers(), 6)
	assert.Len(t, b.Connectors(), 6)
	require.NoError(t, Validate(b, 0.1))

	_, err = Builtin("nope")
	assert.Error(t, err)
}
