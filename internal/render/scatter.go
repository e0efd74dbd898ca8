package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ScatterConfig styles a scatter plot.
type ScatterConfig struct {
	Title  string
	XLabel string
	YLabel string
}

// Scatter renders paired xs/ys as red filled circles, PNG at path.
func Scatter(xs, ys []float64, cfg ScatterConfig, path string) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("x and y lengths differ: %d vs %d", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return fmt.Errorf("no points to plot")
	}

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("building scatter: %w", err)
	}
	sc.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(3)

	plt := plot.New()
	plt.Title.Text = cfg.Title
	plt.X.Label.Text = cfg.XLabel
	plt.Y.Label.Text = cfg.YLabel
	plt.Add(sc)

	if err := plt.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving scatter: %w", err)
	}
	return nil
}
