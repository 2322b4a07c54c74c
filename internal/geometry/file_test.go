package geometry

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/sprinkler-layout/internal/fsutil"
)

const sampleYAML = `
name: corridor
room:
  - {x: 0, y: 0, z: 2500}
  - {x: 6000, y: 0, z: 2500}
  - {x: 6000, y: 2000, z: 2500}
  - {x: 0, y: 2000, z: 2500}
  - {x: 0, y: 0, z: 2500}
pipes:
  - id: 0
    start: {x: 500, y: 1000, z: 3000}
    end: {x: 5500, y: 1000, z: 3000}
sprinklers:
  - label: S1
    position: {x: 1500, y: 1000, z: 2600}
    group_id: 0
connectors:
  - start: {x: 1500, y: 1000, z: 2600}
    end: {x: 1500, y: 1000, z: 3000}
    group_id: 0
`

const sampleJSON = `{
  "room": [
    {"x": 0, "y": 0, "z": 2500}, {"x": 10, "y": 0, "z": 2500},
    {"x": 10, "y": 10, "z": 2500}, {"x": 0, "y": 0, "z": 2500}
  ],
  "pipes": [{"id": 3, "start": {"x": 1, "y": 5, "z": 3000}, "end": {"x": 9, "y": 5, "z": 3000}}],
  "sprinklers": [],
  "connectors": []
}`

func TestLoadFile_YAML(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("data/corridor.yaml", []byte(sampleYAML), 0644))

	ds, err := LoadFile(mfs, "data/corridor.yaml")
	require.NoError(t, err)

	assert.Equal(t, "corridor", ds.Name())
	assert.Len(t, ds.Room(), 5)
	require.Len(t, ds.Pipes(), 1)
	assert.Equal(t, Pt(5500, 1000, 3000), ds.Pipes()[0].End)
	require.Len(t, ds.Sprinklers(), 1)
	assert.Equal(t, Sprinkler{Label: "S1", Position: Pt(1500, 1000, 2600), GroupID: 0}, ds.Sprinklers()[0])
	require.NoError(t, Validate(ds, 0.1))
}

func TestLoadFile_JSONNameFromFile(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("triangle.json", []byte(sampleJSON), 0644))

	ds, err := LoadFile(mfs, "triangle.json")
	require.NoError(t, err)

	assert.Equal(t, "triangle", ds.Name())
	assert.Equal(t, 3, ds.Pipes()[0].ID)
	assert.Empty(t, ds.Sprinklers())
}

func TestLoadFile_Errors(t *testing.T) {
	mfs := fsutil.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("bad.yaml", []byte("room: [1, 2"), 0644))
	require.NoError(t, mfs.WriteFile("unknown.yaml", []byte("rooms: []\n"), 0644))
	require.NoError(t, mfs.WriteFile("empty.yaml", nil, 0644))
	require.NoError(t, mfs.WriteFile("big.yaml", bytes.Repeat([]byte("#"), MaxFileSize+1), 0644))

	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{"wrong extension", "geometry.txt", "must be .yaml"},
		{"missing", "missing.yaml", "failed to stat"},
		{"syntax", "bad.yaml", "failed to parse"},
		{"unknown field", "unknown.yaml", "rooms"},
		{"too large", "big.yaml", "too large"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFile(mfs, tc.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}

	_, err := LoadFile(mfs, "empty.yaml")
	var mErr *MalformedInputError
	assert.True(t, errors.As(err, &mErr))
}

func TestEncodeDecode_PreservesLayoutA(t *testing.T) {
	orig, err := Builtin(LayoutA)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, orig))
	assert.True(t, strings.HasPrefix(buf.String(), "name: layout-a"))

	back, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, orig.Name(), back.Name())
	if diff := cmp.Diff(orig.Room(), back.Room()); diff != "" {
		t.Errorf("room mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(orig.Pipes(), back.Pipes()); diff != "" {
		t.Errorf("pipes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(orig.Sprinklers(), back.Sprinklers()); diff != "" {
		t.Errorf("sprinklers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(orig.Connectors(), back.Connectors()); diff != "" {
		t.Errorf("connectors mismatch (-want +got):\n%s", diff)
	}
}
