package heatmap

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/gaulthiergain/syscalls-heatmap/internal/utils"
)

// DefaultOutput is the file written when no output path is given.
const DefaultOutput = "syscall-heatmap.pdf"

// Options controls rendering.
type Options struct {
	Width      int     // cells per row
	FontSize   float64 // annotation size in points
	Palette    string  // brewer sequential palette name
	Title      string
	CellWidth  vg.Length
	CellHeight vg.Length
}

// DefaultOptions matches the layout of the published syscall heatmaps.
func DefaultOptions() Options {
	return Options{
		Width:      DefaultWidth,
		FontSize:   8,
		Palette:    "YlOrRd",
		CellWidth:  0.5 * vg.Inch,
		CellHeight: 0.25 * vg.Inch,
	}
}

var formats = map[string]bool{
	"eps": true, "jpg": true, "jpeg": true, "pdf": true,
	"png": true, "svg": true, "tif": true, "tiff": true,
}

// FormatFromPath returns the image format implied by the file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !formats[ext] {
		return "", fmt.Errorf("unsupported image format %q (use pdf, png, svg, eps, jpg or tiff)", ext)
	}
	return ext, nil
}

// New builds the heatmap plot for usage percentages in [0, 100] and the
// matching per-cell labels. It also returns the canvas size.
func New(values []float64, labels []string, opt Options) (*plot.Plot, vg.Length, vg.Length, error) {
	if len(values) == 0 {
		return nil, 0, 0, fmt.Errorf("no values to plot")
	}
	if len(labels) != 0 && len(labels) != len(values) {
		return nil, 0, 0, fmt.Errorf("got %d labels for %d values", len(labels), len(values))
	}
	if opt.Width <= 0 {
		opt.Width = DefaultWidth
	}
	if opt.FontSize <= 0 {
		opt.FontSize = 8
	}
	if opt.Palette == "" {
		opt.Palette = "YlOrRd"
	}
	if opt.CellWidth <= 0 {
		opt.CellWidth = 0.5 * vg.Inch
	}
	if opt.CellHeight <= 0 {
		opt.CellHeight = 0.25 * vg.Inch
	}

	pal, err := brewer.GetPalette(brewer.TypeSequential, opt.Palette, 9)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("palette %s: %w", opt.Palette, err)
	}
	grid := NewGrid(values, opt.Width)

	p := plot.New()
	p.Title.Text = opt.Title
	p.HideAxes()

	hm := plotter.NewHeatMap(grid, pal)
	hm.Min = 0
	hm.Max = 100
	hm.NaN = color.Transparent
	hm.Underflow = pal.Colors()[0]
	hm.Overflow = pal.Colors()[len(pal.Colors())-1]
	p.Add(hm)

	if l, err := cellLabels(grid, labels, opt.FontSize); err != nil {
		return nil, 0, 0, err
	} else if l != nil {
		p.Add(l)
	}

	cols, rows := grid.Dims()
	w := vg.Length(cols)*opt.CellWidth + vg.Inch
	h := vg.Length(rows)*opt.CellHeight + vg.Inch
	return p, w, h, nil
}

// cellLabels places every non-empty label at the centre of its cell. Text
// on dark cells is drawn in white.
func cellLabels(g *Grid, labels []string, size float64) (*plotter.Labels, error) {
	var xyl plotter.XYLabels
	var values []float64
	_, rows := g.Dims()
	for i, l := range labels {
		if l == "" {
			continue
		}
		c, r := i%g.cols, i/g.cols
		xyl.XYs = append(xyl.XYs, plotter.XY{X: g.X(c), Y: g.Y(rows - 1 - r)})
		xyl.Labels = append(xyl.Labels, l)
		values = append(values, g.At(c, r))
	}
	if len(xyl.Labels) == 0 {
		return nil, nil
	}
	l, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	for i := range l.TextStyle {
		l.TextStyle[i].Font.Size = vg.Points(size)
		l.TextStyle[i].XAlign = text.XCenter
		l.TextStyle[i].YAlign = text.YCenter
		l.TextStyle[i].Color = color.Black
		if !math.IsNaN(values[i]) && values[i] > 60 {
			l.TextStyle[i].Color = color.White
		}
	}
	return l, nil
}

// Render writes the heatmap to w in the given format.
func Render(w io.Writer, format string, values []float64, labels []string, opt Options) error {
	p, width, height, err := New(values, labels, opt)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	return nil
}

// Save renders the heatmap to path; the format follows the extension.
func Save(path string, values []float64, labels []string, opt Options) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := utils.EnsureParentDir(path); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Render(f, format, values, labels, opt); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
