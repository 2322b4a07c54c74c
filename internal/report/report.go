// Package report prints the terminal summary of a built layout.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/banshee-data/sprinkler-layout/internal/scene"
	"github.com/banshee-data/sprinkler-layout/internal/units"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Write renders sum as a set of tables: room corners, pipes with their
// sprinkler counts, and every connection with its length.
func Write(w io.Writer, sum scene.Summary) error {
	var b strings.Builder

	b.WriteString(headingStyle.Render("Sprinkler layout: "+sum.Name) + "\n")
	fmt.Fprintf(&b, "Room area: %.2f m²  Ceiling height: %.2f mm\n", units.ConvertArea(sum.RoomArea, units.M), sum.CeilingHeight)

	b.WriteString(headingStyle.Render("Room ceiling corners") + "\n")
	corners := newTable("Corner", "X", "Y", "Z")
	for i, c := range sum.Corners {
		corners.Row(strconv.Itoa(i+1), mm(c.X), mm(c.Y), mm(c.Z))
	}
	b.WriteString(corners.String() + "\n")

	b.WriteString(headingStyle.Render("Pipes") + "\n")
	colors := make([]lipgloss.Style, len(sum.Pipes))
	pipes := newTable("Pipe", "Color", "Length (mm)", "Sprinklers")
	for i, p := range sum.Pipes {
		colors[i] = cellStyle.Foreground(lipgloss.Color(p.Color.Hex()))
		pipes.Row(p.Name, p.Color.CSS(), mm(p.Length), strconv.Itoa(p.Sprinklers))
	}
	pipes.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 1 && row < len(colors):
			return colors[row]
		default:
			return cellStyle
		}
	})
	b.WriteString(pipes.String() + "\n")

	b.WriteString(headingStyle.Render("Connections") + "\n")
	conns := newTable("Sprinkler", "Pipe", "Position", "Connection point", "Length (mm)")
	for _, c := range sum.Connections {
		conns.Row(c.Sprinkler, c.Pipe, c.Position.String(), c.PipeEnd.String(), mm(c.Length))
	}
	b.WriteString(conns.String() + "\n")

	fmt.Fprintf(&b, "\nTotal sprinklers: %d\n", len(sum.Connections))
	fmt.Fprintf(&b, "Total connection length: %.2f mm (%.2f m)\n", sum.TotalConnectionLength, units.ConvertLength(sum.TotalConnectionLength, units.M))

	_, err := io.WriteString(w, b.String())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
