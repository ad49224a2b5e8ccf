package report

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/okian/laglens/internal/domain/aggregate"
	"github.com/okian/laglens/internal/domain/types"
)

const (
	pngWidth  = 6 * vg.Inch
	pngHeight = 4 * vg.Inch
	barWidth  = 24
)

// WritePNG writes one pair's histogram as a PNG bar chart.
func WritePNG(w io.Writer, p types.Pair, h aggregate.Histogram) error {
	pl := plot.New()
	pl.Title.Text = p.Title()
	pl.X.Label.Text = xAxisName
	pl.Y.Label.Text = yAxisName

	values := make(plotter.Values, len(h))
	copy(values, h[:])
	bars, err := plotter.NewBarChart(values, vg.Points(barWidth))
	if err != nil {
		return fmt.Errorf("bar chart %s: %w", p, err)
	}
	bars.Color = color.RGBA{R: 0x54, G: 0x70, B: 0xc6, A: 0xff}
	bars.LineStyle.Width = 0
	pl.Add(bars)
	pl.NominalX(lagLabels()...)

	wt, err := pl.WriterTo(pngWidth, pngHeight, "png")
	if err != nil {
		return fmt.Errorf("png canvas %s: %w", p, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png %s: %w", p, err)
	}
	return nil
}

// WritePNGDir writes <pair>.png for every pair into dir.
func WritePNGDir(dir string, r Report) ([]string, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	paths := make([]string, 0, len(r.Pairs))
	for _, p := range r.Pairs {
		h := r.Population.Histogram(p)
		written, err := writeFile(filepath.Join(dir, p.String()+".png"), func(w io.Writer) error {
			return WritePNG(w, p, h)
		})
		if err != nil {
			return paths, err
		}
		paths = append(paths, written...)
	}
	return paths, nil
}
