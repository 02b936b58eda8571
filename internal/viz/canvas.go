package viz

import (
	"strings"

	"github.com/san-kum/rdsim/internal/turing"
)

// Braille patterns hold 2x4 dots per character:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Canvas is a Braille dot canvas; each character cell holds 2x4 pixels.
// It suits binary fields such as Game of Life generations.
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
		c.Grid[i] = []rune(strings.Repeat(string(rune(brailleBase)), w))
	}
	return c
}

// FieldCanvas plots every cell of f whose value exceeds threshold as one dot.
func FieldCanvas(f turing.Field, threshold float64) *Canvas {
	n := f.Size
	c := NewCanvas((n+1)/2, (n+3)/4)
	for r := 0; r < n; r++ {
		for col := 0; col < n; col++ {
			if f.At(r, col) > threshold {
				c.Set(col, r)
			}
		}
	}
	return c
}

// Set turns on the pixel at (x, y) in sub-pixel coordinates; the canvas is
// Width*2 by Height*4 pixels.
func (c *Canvas) Set(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	}
}

// IsSet reports whether the pixel at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) cell(x, y int) (int, int, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
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
