// Package render projects a built scene into a go-echarts 3D chart and
// writes it out as a standalone HTML page, a plan-view image or a DXF
// drawing.
package render

import "github.com/banshee-data/sprinkler-layout/internal/units"

// DefaultTitle identifies the diagram in the page and chart title.
const DefaultTitle = "3D Fire Sprinkler Layout"

// DefaultAssetsHost serves echarts.min.js and echarts-gl.min.js. Exported
// pages load both scripts from the assets host, so viewing offline needs
// ViewOptions.AssetsHost set to a relative directory such as "assets/" holding
// copies of the two files next to the page.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// Series names shared by the chart legend and the plan view.
const (
	RoomSeriesName      = "Room Boundary"
	SprinklerSeriesName = "Sprinklers"
	ConnectorSeriesName = "Connection"
)

// AxisLabels names the three axes.
type AxisLabels struct {
	X, Y, Z string
}

// DefaultAxisLabels returns the millimetre axis names.
func DefaultAxisLabels() AxisLabels {
	return AxisLabels{
		X: units.AxisLabel("X", units.MM),
		Y: units.AxisLabel("Y", units.MM),
		Z: units.AxisLabel("Z", units.MM),
	}
}

func (a AxisLabels) withDefaults() AxisLabels {
	d := DefaultAxisLabels()
	if a.X == "" {
		a.X = d.X
	}
	if a.Y == "" {
		a.Y = d.Y
	}
	if a.Z == "" {
		a.Z = d.Z
	}
	return a
}

// ViewOptions controls presentation. Zero fields take the defaults from
// DefaultViewOptions.
type ViewOptions struct {
	Title      string
	Width      string // CSS size, e.g. "1200px"
	Height     string
	AssetsHost string
	AutoRotate bool

	RoomColor      string
	RoomWidth      float32
	PipeWidth      float32
	ConnectorWidth float32
	MarkerSize     float32
}

// DefaultViewOptions returns the standard presentation: a thick black room
// outline, pipes thicker than the dashed connectors and small labelled
// sprinkler markers.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		Title:          DefaultTitle,
		Width:          "1200px",
		Height:         "800px",
		AssetsHost:     DefaultAssetsHost,
		RoomColor:      "black",
		RoomWidth:      6,
		PipeWidth:      8,
		ConnectorWidth: 3,
		MarkerSize:     6,
	}
}

func (v ViewOptions) withDefaults() ViewOptions {
	d := DefaultViewOptions()
	if v.Title == "" {
		v.Title = d.Title
	}
	if v.Width == "" {
		v.Width = d.Width
	}
	if v.Height == "" {
		v.Height = d.Height
	}
	if v.AssetsHost == "" {
		v.AssetsHost = d.AssetsHost
	}
	if v.RoomColor == "" {
		v.RoomColor = d.RoomColor
	}
	if v.RoomWidth <= 0 {
		v.RoomWidth = d.RoomWidth
	}
	if v.PipeWidth <= 0 {
		v.PipeWidth = d.PipeWidth
	}
	if v.ConnectorWidth <= 0 {
		v.ConnectorWidth = d.ConnectorWidth
	}
	if v.MarkerSize <= 0 {
		v.MarkerSize = d.MarkerSize
	}
	return v
}
