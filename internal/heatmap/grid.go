package heatmap

import (
	"math"
	"strconv"

	"github.com/gaulthiergain/syscalls-heatmap/internal/sheet"
)

// DefaultWidth is the number of cells per heatmap row.
const DefaultWidth = 15

// Chunk splits values into rows of width; the last row may be shorter.
func Chunk[T any](values []T, width int) [][]T {
	if width <= 0 {
		width = DefaultWidth
	}
	var out [][]T
	for len(values) > 0 {
		n := min(width, len(values))
		out = append(out, values[:n:n])
		values = values[n:]
	}
	return out
}

// Grid is a rectangular view over row-chunked values. Row 0 is the top row
// of the rendered image; cells past the end of the data are NaN.
type Grid struct {
	rows [][]float64
	cols int
}

// NewGrid chunks values into rows of width.
func NewGrid(values []float64, width int) *Grid {
	rows := Chunk(values, width)
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	return &Grid{rows: rows, cols: cols}
}

// At returns the value at column c of row r counted from the top.
func (g *Grid) At(c, r int) float64 {
	if r < 0 || r >= len(g.rows) || c < 0 || c >= len(g.rows[r]) {
		return math.NaN()
	}
	return g.rows[r][c]
}

// Dims implements plotter.GridXYZ.
func (g *Grid) Dims() (c, r int) { return g.cols, len(g.rows) }

// Z implements plotter.GridXYZ. Plot rows grow upwards, so r is flipped.
func (g *Grid) Z(c, r int) float64 { return g.At(c, len(g.rows)-1-r) }

// X implements plotter.GridXYZ.
func (g *Grid) X(c int) float64 { return float64(c) }

// Y implements plotter.GridXYZ.
func (g *Grid) Y(r int) float64 { return float64(r) }

// Labels returns one annotation per syscall: the syscall number when the
// syscall is implemented, nothing otherwise. With names, every cell also
// shows the syscall name and its status.
func Labels(sh *sheet.Sheet, names bool) []string {
	out := make([]string, sh.Len())
	for i, sc := range sh.Syscalls {
		var l string
		if sc.Status == sheet.StatusOkay {
			l = strconv.Itoa(sc.Number)
		}
		if names {
			l += "\n" + sc.Name + "\n[" + string(sc.Status) + "]"
		}
		out[i] = l
	}
	return out
}
