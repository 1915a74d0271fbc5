package viz

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const imageDPI = 150

var (
	traceColor  = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	markerColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// Image renders a figure with gonum/plot. Format is "png" or "svg".
type Image struct {
	Format string
	Width  vg.Length
	Height vg.Length
}

func NewImage(format string) (*Image, error) {
	format = strings.ToLower(format)
	switch format {
	case "png", "svg":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &Image{Format: format, Width: 8 * vg.Inch, Height: 8 * vg.Inch}, nil
}

func (im *Image) Render(w io.Writer, fig Figure) error {
	if err := fig.validate(); err != nil {
		return err
	}

	p, err := buildPlot(fig)
	if err != nil {
		return err
	}

	switch im.Format {
	case "png":
		c := vgimg.NewWith(
			vgimg.UseWH(im.Width, im.Height),
			vgimg.UseDPI(imageDPI),
		)
		p.Draw(draw.New(c))

		bw := bufio.NewWriter(w)
		if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
			return fmt.Errorf("cannot write png: %w", err)
		}
		return bw.Flush()
	case "svg":
		wt, err := p.WriterTo(im.Width, im.Height, "svg")
		if err != nil {
			return err
		}
		_, err = wt.WriteTo(w)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, im.Format)
	}
}

func buildPlot(fig Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	stylePlot(p)

	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(fig.X))
	for i := range fig.X {
		pts[i].X = fig.X[i]
		pts[i].Y = fig.Y[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = traceColor
	p.Add(line)

	if fig.Marker != nil {
		sc, err := plotter.NewScatter(plotter.XYs{{X: fig.Marker.X, Y: fig.Marker.Y}})
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(4)
		sc.GlyphStyle.Color = markerColor
		p.Add(sc)
		if fig.Marker.Label != "" {
			p.Legend.Add(fig.Marker.Label, sc)
			p.Legend.Top = true
		}
	}

	if b := fig.Bounds; b.Width() > 0 && b.Height() > 0 {
		p.X.Min, p.X.Max = b.XMin, b.XMax
		p.Y.Min, p.Y.Max = b.YMin, b.YMax
	}
	return p, nil
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(10)

	p.X.Label.TextStyle.Font.Size = vg.Points(13)
	p.Y.Label.TextStyle.Font.Size = vg.Points(13)
	p.X.Padding = vg.Points(8)
	p.Y.Padding = vg.Points(8)

	p.X.Tick.Marker = limitedTicker(9, "%.2f")
	p.Y.Tick.Marker = limitedTicker(9, "%.2f")
}

// limitedTicker places n evenly spaced labelled ticks across the axis.
func limitedTicker(n int, labelFmt string) plot.Ticker {
	if n < 2 {
		n = 2
	}
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(n-1)
		ticks := make([]plot.Tick, 0, n)
		for i := 0; i < n; i++ {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(labelFmt, v)})
		}
		return ticks
	})
}

// NewRenderer picks a renderer for an output format.
func NewRenderer(format string, width, height int) (Renderer, error) {
	switch strings.ToLower(format) {
	case "ascii", "":
		return NewTerminal(width, height), nil
	}
	im, err := NewImage(format)
	if err != nil {
		return nil, err
	}
	return im, nil
}
