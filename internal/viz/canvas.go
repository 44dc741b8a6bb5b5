package viz

import (
	"strings"

	"github.com/san-kum/projsim/internal/vec"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel grid of Width x Height cells, each cell holding
// 2x4 sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelSize is the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Set lights the sub-pixel at (x, y); out-of-range points are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
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

// Viewport maps world coordinates (meters, y-up) onto canvas sub-pixels.
type Viewport struct {
	MinX, MaxX, MinY, MaxY float64
}

// FitViewport returns a viewport covering every path and the ground line.
func FitViewport(paths ...[]vec.Vec2) Viewport {
	v := Viewport{MaxX: 1, MaxY: 1}
	for _, path := range paths {
		for _, p := range path {
			v.MinX = min(v.MinX, p.X)
			v.MaxX = max(v.MaxX, p.X)
			v.MinY = min(v.MinY, p.Y)
			v.MaxY = max(v.MaxY, p.Y)
		}
	}
	v.MaxY += (v.MaxY - v.MinY) * 0.1
	return v
}

func (v Viewport) toPixel(p vec.Vec2, w, h int) (int, int) {
	x := (p.X - v.MinX) / (v.MaxX - v.MinX) * float64(w-1)
	y := float64(h-1) - (p.Y-v.MinY)/(v.MaxY-v.MinY)*float64(h-1)
	return int(x + 0.5), int(y + 0.5)
}

// DrawPath draws a polyline through the world points. With stride > 1 only
// every stride-th point is plotted, unconnected, for a dotted look.
func (c *Canvas) DrawPath(path []vec.Vec2, v Viewport, stride int) {
	w, h := c.PixelSize()
	if stride > 1 {
		for i := 0; i < len(path); i += stride {
			c.Set(v.toPixel(path[i], w, h))
		}
		return
	}
	for i := 1; i < len(path); i++ {
		x0, y0 := v.toPixel(path[i-1], w, h)
		x1, y1 := v.toPixel(path[i], w, h)
		c.DrawLine(x0, y0, x1, y1)
	}
}

// DrawGround draws the y=0 line across the canvas.
func (c *Canvas) DrawGround(v Viewport) {
	w, h := c.PixelSize()
	_, y := v.toPixel(vec.Vec2{}, w, h)
	for x := 0; x < w; x += 2 {
		c.Set(x, y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
