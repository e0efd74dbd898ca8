package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// darkGoldenrod matches the cumulative seeing figure's traditional fill.
var darkGoldenrod = color.RGBA{R: 184, G: 134, B: 11, A: 255}

// HistogramConfig styles a histogram plot.
type HistogramConfig struct {
	Title       string
	XLabel      string
	YLabel      string
	Bins        int
	Annotations []string // drawn top-right inside the plot area
}

// Histogram renders values as a histogram PNG at path.
func Histogram(values []float64, cfg HistogramConfig, path string) error {
	if len(values) == 0 {
		return fmt.Errorf("no values to plot")
	}
	bins := cfg.Bins
	if bins <= 0 {
		bins = 50
	}

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return fmt.Errorf("building histogram: %w", err)
	}
	h.FillColor = darkGoldenrod

	plt := plot.New()
	plt.Title.Text = cfg.Title
	plt.X.Label.Text = cfg.XLabel
	plt.Y.Label.Text = cfg.YLabel
	plt.Add(h)

	if len(cfg.Annotations) > 0 {
		labels, err := annotationLabels(h, cfg.Annotations)
		if err != nil {
			return err
		}
		plt.Add(labels)
	}

	if err := plt.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving histogram: %w", err)
	}
	return nil
}

// annotationLabels stacks annotation strings down the top-right corner of the
// histogram's data range.
func annotationLabels(h *plotter.Histogram, lines []string) (*plotter.Labels, error) {
	xmin, xmax, _, ymax := h.DataRange()

	xys := make(plotter.XYs, len(lines))
	for i := range lines {
		xys[i].X = xmin + 0.60*(xmax-xmin)
		xys[i].Y = ymax * (0.92 - 0.06*float64(i))
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: lines})
	if err != nil {
		return nil, fmt.Errorf("building annotations: %w", err)
	}
	return labels, nil
}
