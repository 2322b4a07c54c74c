package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/sprinkler-layout/internal/geometry"
	"github.com/banshee-data/sprinkler-layout/internal/scene"
)

// planSize is the side of the square plan-view canvas.
const planSize = 8 * vg.Inch

// WritePlan draws the top-down view of the scene (X right, Y up) on a square
// canvas with equal X and Y ranges, so plan distances keep their proportions.
func (h *Handle) WritePlan(w io.Writer, format string) error {
	p, err := planPlot(h.scene, h.axes, h.view, h.extent)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(planSize, planSize, format)
	if err != nil {
		return fmt.Errorf("failed to create %s plan writer: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plan view: %w", err)
	}
	return nil
}

func planPlot(s scene.Scene, axes AxisLabels, view ViewOptions, extent Extent) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = view.Title
	p.X.Label.Text = axes.X
	p.Y.Label.Text = axes.Y
	lo, hi := extent.Square()
	p.X.Min, p.X.Max = lo.X, hi.X
	p.Y.Min, p.Y.Max = lo.Y, hi.Y
	p.Add(plotter.NewGrid())

	roomColor := color.Color(color.Black)
	if c, err := scene.ParseColor(view.RoomColor); err == nil {
		roomColor = c.RGB
	}
	room, err := plotter.NewLine(xys(s.Room()...))
	if err != nil {
		return nil, fmt.Errorf("room outline: %w", err)
	}
	room.Color = roomColor
	room.Width = vg.Points(2)
	p.Add(room)
	p.Legend.Add(RoomSeriesName, room)

	for _, pipe := range s.Pipes() {
		l, err := plotter.NewLine(xys(pipe.Start, pipe.End))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pipe.Name(), err)
		}
		l.Color = pipe.Color.RGB
		l.Width = vg.Points(3)
		p.Add(l)
		p.Legend.Add(pipe.Name(), l)
	}

	for _, c := range s.Connectors() {
		l, err := plotter.NewLine(xys(c.SprinklerEnd, c.PipeEnd))
		if err != nil {
			return nil, fmt.Errorf("connector: %w", err)
		}
		l.Color = c.Color.RGB
		l.Width = vg.Points(1)
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)
		if c.ShowInLegend {
			p.Legend.Add(ConnectorSeriesName, l)
		}
	}

	sprinklers := s.Sprinklers()
	positions := make([]geometry.Point3D, len(sprinklers))
	labels := make([]string, len(sprinklers))
	for i, sp := range sprinklers {
		positions[i] = sp.Position
		labels[i] = sp.Label
	}
	if len(sprinklers) > 0 {
		sc, err := plotter.NewScatter(xys(positions...))
		if err != nil {
			return nil, fmt.Errorf("sprinklers: %w", err)
		}
		sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{Color: sprinklers[i].Color.RGB, Radius: vg.Points(3), Shape: draw.CircleGlyph{}}
		}
		p.Add(sc)

		lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys(positions...), Labels: labels})
		if err != nil {
			return nil, fmt.Errorf("sprinkler labels: %w", err)
		}
		lbl.Offset = vg.Point{Y: vg.Points(4)}
		p.Add(lbl)
	}

	return p, nil
}

func xys(pts ...geometry.Point3D) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		out[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return out
}
