package viz

import (
	"math"
	"strings"

	"github.com/san-kum/physim/internal/axis"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
	return c
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Project maps a data point inside b to sub-pixel coordinates, y up.
func (c *Canvas) Project(b axis.Bounds, x, y float64) (int, int) {
	w := float64(c.Width*2 - 1)
	h := float64(c.Height*4 - 1)
	px := (x - b.XMin) / b.Width() * w
	py := (y - b.YMin) / b.Height() * h
	return int(math.Round(px)), int(math.Round(h - py))
}

// Polyline connects consecutive points. Points outside b are clipped by Set.
func (c *Canvas) Polyline(b axis.Bounds, xs, ys []float64) {
	if len(xs) == 0 || b.Width() <= 0 || b.Height() <= 0 {
		return
	}
	px, py := c.Project(b, xs[0], ys[0])
	c.Set(px, py)
	for i := 1; i < len(xs) && i < len(ys); i++ {
		nx, ny := c.Project(b, xs[i], ys[i])
		c.DrawLine(px, py, nx, ny)
		px, py = nx, ny
	}
}

// Mark draws a small cross centred on the point.
func (c *Canvas) Mark(b axis.Bounds, x, y float64) {
	if b.Width() <= 0 || b.Height() <= 0 {
		return
	}
	px, py := c.Project(b, x, y)
	c.DrawLine(px-2, py, px+2, py)
	c.DrawLine(px, py-2, px, py+2)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
