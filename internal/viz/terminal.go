package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/physim/internal/axis"
)

const (
	minWidth  = 20
	minHeight = 6
)

// Terminal renders a figure as text. Width and Height size the trajectory
// canvas in character cells; panels share the same width.
type Terminal struct {
	Width  int
	Height int
}

func NewTerminal(width, height int) *Terminal {
	return &Terminal{Width: max(width, minWidth), Height: max(height, minHeight)}
}

func (t *Terminal) Render(w io.Writer, fig Figure) error {
	if err := fig.validate(); err != nil {
		return err
	}
	b := fig.Bounds
	if !(b.Width() > 0) || !(b.Height() > 0) {
		return fmt.Errorf("viz: degenerate bounds %+v", b)
	}

	c := NewCanvas(t.Width, t.Height)
	c.Polyline(b, fig.X, fig.Y)
	if fig.Marker != nil {
		c.Mark(b, fig.Marker.X, fig.Marker.Y)
	}

	plotArea := FrameStyle.Render(TraceStyle.Render(strings.TrimRight(c.String(), "\n")))
	yTicks := yTickColumn(fig.Bounds, lipgloss.Height(plotArea))
	body := lipgloss.JoinHorizontal(lipgloss.Top, yTicks, plotArea)
	xTicks := xTickRow(fig.Bounds, lipgloss.Width(yTicks), lipgloss.Width(plotArea))

	var s strings.Builder
	s.WriteString(TitleStyle.Render(fig.Title) + "\n")
	s.WriteString(Subtle.Render(fmt.Sprintf("y: %s", fig.YLabel)) + "\n")
	s.WriteString(body + "\n")
	s.WriteString(xTicks + "\n")
	s.WriteString(Subtle.Render(fmt.Sprintf("x: %s", fig.XLabel)) + "\n")
	if fig.Marker != nil && fig.Marker.Label != "" {
		s.WriteString(KeyHint.Render(fmt.Sprintf("+ %s (%.3f, %.3f)", fig.Marker.Label, fig.Marker.X, fig.Marker.Y)) + "\n")
	}

	for _, p := range fig.Panels {
		if len(p.Values) == 0 {
			continue
		}
		graph := asciigraph.Plot(p.Values,
			asciigraph.Height(max(t.Height/2, 3)),
			asciigraph.Width(t.Width),
			asciigraph.Caption(p.Name),
		)
		s.WriteString("\n" + graph + "\n")
	}

	if len(fig.Notes) > 0 {
		s.WriteString("\n")
		for _, n := range fig.Notes {
			s.WriteString(MetricValue.Render(n) + "\n")
		}
	}

	_, err := io.WriteString(w, s.String())
	return err
}

func yTickColumn(b axis.Bounds, rows int) string {
	lines := make([]string, rows)
	lines[1] = fmt.Sprintf("%.2f ", b.YMax)
	lines[rows/2] = fmt.Sprintf("%.2f ", (b.YMax+b.YMin)/2)
	lines[rows-2] = fmt.Sprintf("%.2f ", b.YMin)
	return MetricLabel.Render(strings.Join(lines, "\n"))
}

func xTickRow(b axis.Bounds, indent, width int) string {
	left := fmt.Sprintf("%.2f", b.XMin)
	right := fmt.Sprintf("%.2f", b.XMax)
	gap := max(width-len(left)-len(right), 1)
	return strings.Repeat(" ", indent) + MetricLabel.Render(left+strings.Repeat(" ", gap)+right)
}
