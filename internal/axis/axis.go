// Package axis picks plot limits for a trajectory.
package axis

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Margin is the padding factor applied to the largest extent.
const Margin = 1.05

type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (b Bounds) Width() float64  { return b.XMax - b.XMin }
func (b Bounds) Height() float64 { return b.YMax - b.YMin }

// Contains reports whether (x, y) lies inside the bounds, edges included.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.XMin && x <= b.XMax && y >= b.YMin && y <= b.YMax
}

// Direction is the side of the y axis the x axis extends to.
type Direction int

const (
	Positive Direction = iota
	Negative
)

func (d Direction) String() string {
	if d == Negative {
		return "negative"
	}
	return "positive"
}

// DirectionOf derives the x direction from the signed net horizontal
// displacement, i.e. the last x sample.
func DirectionOf(x []float64) Direction {
	if len(x) > 0 && x[len(x)-1] < 0 {
		return Negative
	}
	return Positive
}

// Symmetric returns equal-sized x and y ranges, both Margin times the larger
// of max|x| and max y. The x range sits on the side given by dir; y starts at 0.
func Symmetric(x, y []float64, dir Direction) Bounds {
	extent := math.Max(maxAbs(x), maxOf(y))
	if extent <= 0 || math.IsNaN(extent) || math.IsInf(extent, 0) {
		extent = 1
	}
	m := Margin * extent

	b := Bounds{XMin: 0, XMax: m, YMin: 0, YMax: m}
	if dir == Negative {
		b.XMin, b.XMax = -m, 0
	}
	return b
}

// Fit pads each axis independently around its extrema by frac of the span.
// Flat axes get a unit span.
func Fit(x, y []float64, frac float64) Bounds {
	xMin, xMax := span(x)
	yMin, yMax := span(y)
	xMin, xMax = pad(xMin, xMax, frac)
	yMin, yMax = pad(yMin, yMax, frac)
	return Bounds{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
}

func span(v []float64) (float64, float64) {
	if len(v) == 0 {
		return 0, 0
	}
	return floats.Min(v), floats.Max(v)
}

func pad(lo, hi, frac float64) (float64, float64) {
	r := hi - lo
	if r == 0 {
		return lo - 0.5, hi + 0.5
	}
	return lo - r*frac, hi + r*frac
}

func maxAbs(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		m = math.Max(m, math.Abs(x))
	}
	return m
}

func maxOf(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Max(v)
}
