package scene

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/sprinkler-layout/internal/geometry"
)

func layoutA(t *testing.T) *geometry.Dataset {
	t.Helper()
	ds, err := geometry.Builtin(geometry.LayoutA)
	require.NoError(t, err)
	return ds
}

func buildA(t *testing.T) Scene {
	t.Helper()
	s, err := BuildScene(layoutA(t), DefaultPalette(), Options{})
	require.NoError(t, err)
	return s
}

// rectRoom is a closed 4 m x 3 m room with n sprinklers on one pipe.
func rectRoom(n int) *geometry.Dataset {
	room := []geometry.Point3D{
		geometry.Pt(0, 0, 2500), geometry.Pt(4000, 0, 2500),
		geometry.Pt(4000, 3000, 2500), geometry.Pt(0, 3000, 2500),
		geometry.Pt(0, 0, 2500),
	}
	pipes := []geometry.Pipe{{ID: 0, Start: geometry.Pt(0, 1500, 3000), End: geometry.Pt(4000, 1500, 3000)}}
	var sprinklers []geometry.Sprinkler
	var connectors []geometry.Connector
	for i := 0; i < n; i++ {
		pos := geometry.Pt(float64(500*(i+1)), 1500, 2600)
		sprinklers = append(sprinklers, geometry.Sprinkler{Label: "S" + string(rune('A'+i)), Position: pos, GroupID: 0})
		connectors = append(connectors, geometry.Connector{Start: pos, End: geometry.Pt(pos.X, 1500, 3000), GroupID: 0})
	}
	return geometry.NewDataset("rect", room, pipes, sprinklers, connectors)
}

func TestBuildScene_ScenarioA_ThreeGroups(t *testing.T) {
	s := buildA(t)

	assert.Len(t, s.Room(), 5)
	assert.Len(t, s.Pipes(), 3)
	require.Len(t, s.Sprinklers(), 15)
	require.Len(t, s.Connectors(), 15)

	groups := s.Groups()
	require.Len(t, groups, 3)
	for _, g := range groups {
		assert.Len(t, g.Sprinklers, 5, "group %d sprinklers", g.ID)
		assert.Len(t, g.Connectors, 5, "group %d connectors", g.ID)
	}

	for i, c := range s.Connectors() {
		assert.Equal(t, i == 0, c.ShowInLegend, "connector %d legend flag", i)
	}
}

func TestBuildScene_ScenarioB_DanglingSprinklerGroup(t *testing.T) {
	ds := rectRoom(2)
	sprinklers := ds.Sprinklers()
	sprinklers[1].GroupID = 99
	bad := geometry.NewDataset("bad", ds.Room(), ds.Pipes(), sprinklers, ds.Connectors())

	_, err := BuildScene(bad, DefaultPalette(), Options{})
	var gre *GroupReferenceError
	require.True(t, errors.As(err, &gre), "got %v", err)
	assert.Equal(t, "sprinkler", gre.Kind)
	assert.Equal(t, "SB", gre.Ref)
	assert.Equal(t, 99, gre.GroupID)
}

func TestBuildScene_ScenarioC_CardinalityMismatch(t *testing.T) {
	ds := rectRoom(7)
	bad := geometry.NewDataset("bad", ds.Room(), ds.Pipes(), ds.Sprinklers(), ds.Connectors()[:6])

	_, err := BuildScene(bad, DefaultPalette(), Options{})
	var cme *CardinalityMismatchError
	require.True(t, errors.As(err, &cme), "got %v", err)
	assert.Equal(t, 7, cme.Sprinklers)
	assert.Equal(t, 6, cme.Connectors)
}

func TestBuildScene_ScenarioD_OpenRoom(t *testing.T) {
	ds := layoutA(t)
	room := ds.Room()
	room = room[:len(room)-1]
	bad := geometry.NewDataset("open", room, ds.Pipes(), ds.Sprinklers(), ds.Connectors())

	_, err := BuildScene(bad, DefaultPalette(), Options{})
	var mie *geometry.MalformedInputError
	require.True(t, errors.As(err, &mie), "got %v", err)
	assert.Equal(t, geometry.CollectionRoom, mie.Collection)
}

func TestBuildScene_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c []geometry.Connector, s []geometry.Sprinkler)
		check  func(t *testing.T, err error)
	}{
		{
			name:   "connector references missing pipe",
			mutate: func(c []geometry.Connector, _ []geometry.Sprinkler) { c[2].GroupID = 7 },
			check: func(t *testing.T, err error) {
				var gre *GroupReferenceError
				require.True(t, errors.As(err, &gre))
				assert.Equal(t, "connector", gre.Kind)
				assert.Equal(t, "2", gre.Ref)
				assert.Equal(t, 7, gre.GroupID)
			},
		},
		{
			name: "connector group differs from its sprinkler",
			mutate: func(c []geometry.Connector, _ []geometry.Sprinkler) {
				c[0].GroupID = 1
			},
			check: func(t *testing.T, err error) {
				var gre *GroupReferenceError
				require.True(t, errors.As(err, &gre))
				assert.Equal(t, "connector", gre.Kind)
				assert.Contains(t, gre.Detail, "S1")
			},
		},
		{
			name: "connector not at any sprinkler",
			mutate: func(c []geometry.Connector, _ []geometry.Sprinkler) {
				c[0].Start = geometry.Pt(1, 2, 3)
			},
			check: func(t *testing.T, err error) {
				var mie *geometry.MalformedInputError
				require.True(t, errors.As(err, &mie))
				assert.Equal(t, geometry.CollectionConnectors, mie.Collection)
				assert.Equal(t, 0, mie.Index)
			},
		},
		{
			name: "two connectors on one sprinkler",
			mutate: func(c []geometry.Connector, _ []geometry.Sprinkler) {
				c[1] = c[0]
			},
			check: func(t *testing.T, err error) {
				var mie *geometry.MalformedInputError
				require.True(t, errors.As(err, &mie))
				assert.Equal(t, 1, mie.Index)
				assert.Contains(t, mie.Reason, "already has connector 0")
			},
		},
		{
			name: "pipe end off the pipe",
			mutate: func(c []geometry.Connector, _ []geometry.Sprinkler) {
				c[3].End.Z = 2900
			},
			check: func(t *testing.T, err error) {
				var mie *geometry.MalformedInputError
				require.True(t, errors.As(err, &mie))
				assert.Equal(t, 3, mie.Index)
				assert.Contains(t, mie.Reason, "Pipe 1")
			},
		},
		{
			name: "duplicate label",
			mutate: func(_ []geometry.Connector, s []geometry.Sprinkler) {
				s[1].Label = s[0].Label
			},
			check: func(t *testing.T, err error) {
				var mie *geometry.MalformedInputError
				require.True(t, errors.As(err, &mie))
				assert.Equal(t, geometry.CollectionSprinklers, mie.Collection)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ds := layoutA(t)
			connectors := ds.Connectors()
			sprinklers := ds.Sprinklers()
			tt.mutate(connectors, sprinklers)
			bad := geometry.NewDataset("bad", ds.Room(), ds.Pipes(), sprinklers, connectors)

			_, err := BuildScene(bad, DefaultPalette(), Options{})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestBuildScene_EmptyPalette(t *testing.T) {
	_, err := BuildScene(layoutA(t), nil, Options{})
	assert.ErrorIs(t, err, ErrEmptyPalette)
}

func TestBuildScene_ReversedConnector(t *testing.T) {
	ds := rectRoom(2)
	connectors := ds.Connectors()
	connectors[1].Start, connectors[1].End = connectors[1].End, connectors[1].Start
	flipped := geometry.NewDataset("flipped", ds.Room(), ds.Pipes(), ds.Sprinklers(), connectors)

	s, err := BuildScene(flipped, DefaultPalette(), Options{})
	require.NoError(t, err)
	c := s.Connectors()[1]
	assert.Equal(t, 1, c.Sprinkler)
	assert.Equal(t, s.Sprinklers()[1].Position, c.SprinklerEnd)
	assert.Equal(t, 3000.0, c.PipeEnd.Z)
}

func TestBuildScene_Deterministic(t *testing.T) {
	first := buildA(t)
	second := buildA(t)

	if diff := cmp.Diff(first, second, cmp.AllowUnexported(Scene{})); diff != "" {
		t.Errorf("scene differs between builds (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
}

func TestBuildScene_DoesNotMutateInput(t *testing.T) {
	ds := layoutA(t)
	before := geometry.Snapshot(ds)

	_, err := BuildScene(ds, DefaultPalette(), Options{})
	require.NoError(t, err)

	assert.Equal(t, before, geometry.Snapshot(ds))
}

func TestBuildScene_EverySprinklerHasOneConnector(t *testing.T) {
	s := buildA(t)
	sprinklers := s.Sprinklers()
	connectors := s.Connectors()
	require.Equal(t, len(sprinklers), len(connectors))

	for i, sp := range sprinklers {
		matches := 0
		for _, c := range connectors {
			if c.GroupID != sp.GroupID {
				continue
			}
			if c.Start.ApproxEqual(sp.Position, DefaultPositionTolerance) || c.End.ApproxEqual(sp.Position, DefaultPositionTolerance) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "sprinkler %d (%s)", i, sp.Label)
	}
}

func TestBuildScene_GroupsReferenceScenePipes(t *testing.T) {
	s := buildA(t)
	ids := map[int]bool{}
	for _, p := range s.Pipes() {
		ids[p.ID] = true
	}
	for _, sp := range s.Sprinklers() {
		assert.True(t, ids[sp.GroupID], "sprinkler %s", sp.Label)
	}
	for i, c := range s.Connectors() {
		assert.True(t, ids[c.GroupID], "connector %d", i)
	}
}

func TestBuildScene_ColorConsistentWithinGroup(t *testing.T) {
	s := buildA(t)
	for _, g := range s.Groups() {
		want := s.Color(g.ID)
		assert.Equal(t, want, g.Color)
		assert.Equal(t, want, s.Pipes()[g.Pipe].Color)
		for _, i := range g.Sprinklers {
			assert.Equal(t, want, s.Sprinklers()[i].Color)
		}
		for _, i := range g.Connectors {
			assert.Equal(t, want, s.Connectors()[i].Color)
		}
	}
	assert.Equal(t, "royalblue", s.Color(0).Name)
	assert.Equal(t, "darkorange", s.Color(1).Name)
	assert.Equal(t, "green", s.Color(2).Name)
}

func TestBuildScene_PaletteCycles(t *testing.T) {
	palette, err := ParsePalette([]string{"red", "blue"})
	require.NoError(t, err)

	s, err := BuildScene(layoutA(t), palette, Options{})
	require.NoError(t, err)

	assert.Equal(t, "red", s.Pipes()[0].Color.Name)
	assert.Equal(t, "blue", s.Pipes()[1].Color.Name)
	assert.Equal(t, "red", s.Pipes()[2].Color.Name)
}

func TestBuildScene_LiteralLabels(t *testing.T) {
	s := buildA(t)
	var labels []string
	for _, sp := range s.Sprinklers() {
		labels = append(labels, sp.Label)
	}
	want := []string{"S1", "S4", "S7", "S10", "S13", "S2", "S5", "S8", "S11", "S14", "S3", "S6", "S9", "S12", "S15"}
	assert.Equal(t, want, labels)
}

func TestScene_SourceRoundTrip(t *testing.T) {
	ds := layoutA(t)
	s, err := BuildScene(ds, DefaultPalette(), Options{})
	require.NoError(t, err)

	back := s.Source()
	assert.Equal(t, ds.Name(), back.Name())
	if diff := cmp.Diff(ds.Room(), back.Room()); diff != "" {
		t.Errorf("room (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ds.Pipes(), back.Pipes()); diff != "" {
		t.Errorf("pipes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ds.Sprinklers(), back.Sprinklers()); diff != "" {
		t.Errorf("sprinklers (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ds.Connectors(), back.Connectors()); diff != "" {
		t.Errorf("connectors (-want +got):\n%s", diff)
	}

	rebuilt, err := BuildScene(back, DefaultPalette(), Options{})
	require.NoError(t, err)
	assert.Equal(t, s.Fingerprint(), rebuilt.Fingerprint())
}

func TestScene_AccessorsReturnCopies(t *testing.T) {
	s := buildA(t)
	s.Pipes()[0].ID = 42
	s.Groups()[0].Sprinklers[0] = 99
	s.Connectors()[0].ShowInLegend = false

	assert.Equal(t, 0, s.Pipes()[0].ID)
	assert.Equal(t, 0, s.Groups()[0].Sprinklers[0])
	assert.True(t, s.Connectors()[0].ShowInLegend)
}

func TestBuildScene_LayoutB(t *testing.T) {
	ds, err := geometry.Builtin(geometry.LayoutB)
	require.NoError(t, err)

	s, err := BuildScene(ds, DefaultPalette(), Options{})
	require.NoError(t, err)
	groups := s.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, []int{0, 2, 4}, groups[0].Sprinklers)
	assert.Equal(t, []int{1, 3, 5}, groups[1].Sprinklers)
	assert.NotEqual(t, buildA(t).Fingerprint(), s.Fingerprint())
}
