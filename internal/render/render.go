package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/banshee-data/sprinkler-layout/internal/geometry"
	"github.com/banshee-data/sprinkler-layout/internal/scene"
)

// Handle is a scene projected into a chart, ready to be written out.
type Handle struct {
	scene  scene.Scene
	axes   AxisLabels
	view   ViewOptions
	extent Extent
	chart  *charts.Line3D
	html   []byte
}

// Render builds the chart for s: one thick polyline for the room, one line
// per pipe, a single labelled marker series for all sprinklers and one dashed
// line per connector. Only the first connector appears in the legend.
func Render(s scene.Scene, axes AxisLabels, view ViewOptions) (*Handle, error) {
	if len(s.Room()) == 0 || len(s.Pipes()) == 0 {
		return nil, errors.New("cannot render an empty scene")
	}
	axes = axes.withDefaults()
	view = view.withDefaults()

	extent := NewExtent(s.Bounds())
	boxW, boxH, boxD := extent.Box()

	chart := charts.NewLine3D()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  view.Title,
			Width:      view.Width,
			Height:     view.Height,
			ChartID:    ChartID(s),
			AssetsHost: view.AssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: view.Title, Subtitle: s.Name()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "40px", Data: legendData(s)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: axes.X, Type: "value", Min: extent.Min.X, Max: extent.Max.X}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: axes.Y, Type: "value", Min: extent.Min.Y, Max: extent.Max.Y}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: axes.Z, Type: "value", Min: extent.Min.Z, Max: extent.Max.Z}),
		charts.WithGrid3DOpts(opts.Grid3D{
			BoxWidth:    boxW,
			BoxHeight:   boxH,
			BoxDepth:    boxD,
			ViewControl: &opts.ViewControl{AutoRotate: opts.Bool(view.AutoRotate)},
		}),
	)

	chart.AddSeries(RoomSeriesName, points3D(s.Room()...),
		charts.WithLineStyleOpts(opts.LineStyle{Color: view.RoomColor, Width: view.RoomWidth}),
	)

	for _, p := range s.Pipes() {
		chart.AddSeries(p.Name(), points3D(p.Start, p.End),
			charts.WithLineStyleOpts(opts.LineStyle{Color: p.Color.CSS(), Width: view.PipeWidth}),
		)
	}

	chart.MultiSeries = append(chart.MultiSeries, sprinklerSeries(s.Sprinklers(), view))

	for _, c := range s.Connectors() {
		chart.AddSeries(ConnectorSeriesName, points3D(c.SprinklerEnd, c.PipeEnd),
			charts.WithLineStyleOpts(opts.LineStyle{Color: c.Color.CSS(), Width: view.ConnectorWidth, Type: "dashed"}),
		)
	}

	// Rendered once: go-echarts mutates the chart on its first render.
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return &Handle{scene: s, axes: axes, view: view, extent: extent, chart: chart, html: buf.Bytes()}, nil
}

// sprinklerSeries is a scatter3D series inside the line3D chart so every head
// shares one legend entry while keeping its group color and label.
func sprinklerSeries(sprinklers []scene.Sprinkler, view ViewOptions) charts.SingleSeries {
	data := make([]opts.Chart3DData, 0, len(sprinklers))
	for _, sp := range sprinklers {
		data = append(data, opts.Chart3DData{
			Name:      sp.Label,
			Value:     []interface{}{sp.Position.X, sp.Position.Y, sp.Position.Z},
			ItemStyle: &opts.ItemStyle{Color: sp.Color.CSS()},
		})
	}
	series := charts.SingleSeries{
		Name:        SprinklerSeriesName,
		Type:        types.ChartScatter3D,
		Data:        data,
		CoordSystem: types.ChartCartesian3D,
		Symbol:      "circle",
		SymbolSize:  view.MarkerSize,
	}
	series.ConfigureSeriesOpts(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top", Formatter: "{b}", Color: "black"}),
	)
	return series
}

// legendData lists each series name once. Connectors all share one name, so
// the legend carries a single entry for them, taken from the connector
// flagged ShowInLegend.
func legendData(s scene.Scene) []string {
	names := []string{RoomSeriesName}
	for _, p := range s.Pipes() {
		names = append(names, p.Name())
	}
	names = append(names, SprinklerSeriesName)
	for _, c := range s.Connectors() {
		if c.ShowInLegend {
			names = append(names, ConnectorSeriesName)
			break
		}
	}
	return names
}

func points3D(pts ...geometry.Point3D) []opts.Chart3DData {
	data := make([]opts.Chart3DData, len(pts))
	for i, p := range pts {
		data[i] = opts.Chart3DData{Value: []interface{}{p.X, p.Y, p.Z}}
	}
	return data
}

// ChartID derives the page element id from the scene fingerprint, so the
// same scene always renders to the same bytes.
func ChartID(s scene.Scene) string {
	return "layout_" + strings.ReplaceAll(s.Fingerprint().String(), "-", "")
}

// Scene returns the scene the handle was rendered from.
func (h *Handle) Scene() scene.Scene { return h.scene }

// Axes returns the axis labels in effect.
func (h *Handle) Axes() AxisLabels { return h.axes }

// View returns the view options in effect.
func (h *Handle) View() ViewOptions { return h.view }

// Extent returns the shared axis range.
func (h *Handle) Extent() Extent { return h.extent }

// Option returns the echarts option object the page is built from.
func (h *Handle) Option() map[string]interface{} {
	return h.chart.JSON()
}

// WriteHTML writes the standalone page.
func (h *Handle) WriteHTML(w io.Writer) error {
	_, err := w.Write(h.html)
	return err
}

// HTML returns a copy of the standalone page.
func (h *Handle) HTML() []byte {
	return bytes.Clone(h.html)
}
