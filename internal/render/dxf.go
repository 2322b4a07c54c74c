package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"

	"github.com/banshee-data/sprinkler-layout/internal/fsutil"
	"github.com/banshee-data/sprinkler-layout/internal/monitoring"
)

// DXF layer names.
const (
	RoomLayer = "ROOM"
	// GroupLayer is formatted with the one-based pipe number.
	GroupLayer = "PIPE_%d"
)

// sprinklerTextHeight is the label height in drawing units (mm).
const sprinklerTextHeight = 150

// aciColors are the seven standard AutoCAD color indices.
var aciColors = []struct {
	number dxfcolor.ColorNumber
	rgb    colorful.Color
}{
	{dxfcolor.Red, colorful.Color{R: 1}},
	{dxfcolor.Yellow, colorful.Color{R: 1, G: 1}},
	{dxfcolor.Green, colorful.Color{G: 1}},
	{dxfcolor.Cyan, colorful.Color{G: 1, B: 1}},
	{dxfcolor.Blue, colorful.Color{B: 1}},
	{dxfcolor.Magenta, colorful.Color{R: 1, B: 1}},
	{dxfcolor.White, colorful.Color{R: 1, G: 1, B: 1}},
}

// nearestACI picks the standard color index closest to c in CIE Lab.
func nearestACI(c colorful.Color) dxfcolor.ColorNumber {
	best := aciColors[0]
	bestDist := c.DistanceLab(best.rgb)
	for _, a := range aciColors[1:] {
		if d := c.DistanceLab(a.rgb); d < bestDist {
			best, bestDist = a, d
		}
	}
	return best.number
}

// ExportDXF writes the scene to dest on fsys as a 3D DXF drawing: the room
// outline on ROOM and each pipe with its connectors and sprinkler labels on
// its own layer.
func ExportDXF(h *Handle, fsys fsutil.FileSystem, dest string) error {
	if filepath.Ext(dest) != ".dxf" {
		return &ExportIOError{Path: dest, Err: fmt.Errorf("DXF output must have a .dxf extension")}
	}
	s := h.scene
	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	if _, err := d.AddLayer(RoomLayer, dxfcolor.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", RoomLayer, err)
	}
	for _, e := range s.Room().Edges() {
		if _, err := d.Line(e.Start.X, e.Start.Y, e.Start.Z, e.End.X, e.End.Y, e.End.Z); err != nil {
			return fmt.Errorf("room edge: %w", err)
		}
	}

	pipes := s.Pipes()
	sprinklers := s.Sprinklers()
	connectors := s.Connectors()
	for _, g := range s.Groups() {
		pipe := pipes[g.Pipe]
		layer := groupLayerName(pipe.Pipe.ID)
		if _, err := d.AddLayer(layer, nearestACI(g.Color.RGB), dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("add layer %s: %w", layer, err)
		}
		if _, err := d.Line(pipe.Start.X, pipe.Start.Y, pipe.Start.Z, pipe.End.X, pipe.End.Y, pipe.End.Z); err != nil {
			return fmt.Errorf("%s: %w", pipe.Name(), err)
		}
		for _, i := range g.Connectors {
			c := connectors[i]
			if _, err := d.Line(c.SprinklerEnd.X, c.SprinklerEnd.Y, c.SprinklerEnd.Z, c.PipeEnd.X, c.PipeEnd.Y, c.PipeEnd.Z); err != nil {
				return fmt.Errorf("connector %d: %w", i, err)
			}
		}
		for _, i := range g.Sprinklers {
			sp := sprinklers[i]
			if _, err := d.Text(sp.Label, sp.Position.X, sp.Position.Y, sp.Position.Z, sprinklerTextHeight); err != nil {
				return fmt.Errorf("sprinkler %s: %w", sp.Label, err)
			}
		}
	}

	data, err := saveDrawing(d.SaveAs)
	if err != nil {
		return &ExportIOError{Path: dest, Err: err}
	}
	if err := fsutil.WriteTo(fsys, dest, bytes.NewReader(data)); err != nil {
		return &ExportIOError{Path: dest, Err: err}
	}
	monitoring.Logf("exported DXF drawing %s (%d bytes)", dest, len(data))
	return nil
}

// saveDrawing runs saveAs against a scratch file and returns its contents.
// The dxf package only writes to named files.
func saveDrawing(saveAs func(string) error) ([]byte, error) {
	dir, err := os.MkdirTemp("", "sprinkler-dxf-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "drawing.dxf")
	if err := saveAs(path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func groupLayerName(pipeID int) string {
	return fmt.Sprintf(GroupLayer, pipeID+1)
}
