package viz

import (
	"errors"
	"io"

	"github.com/san-kum/physim/internal/axis"
)

var (
	ErrEmptyFigure   = errors.New("viz: figure has no points")
	ErrUnknownFormat = errors.New("viz: unknown output format")
)

type Point struct {
	X, Y  float64
	Label string
}

// Series is a quantity sampled over time, drawn as its own panel.
type Series struct {
	Name   string
	Values []float64
}

// Figure is everything a renderer needs to draw one run.
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	X, Y   []float64
	Bounds axis.Bounds
	Marker *Point
	Panels []Series
	// Notes are printed below the terminal plot, one per line.
	Notes []string
}

func (f Figure) validate() error {
	if len(f.X) == 0 || len(f.X) != len(f.Y) {
		return ErrEmptyFigure
	}
	return nil
}

type Renderer interface {
	Render(w io.Writer, fig Figure) error
}
