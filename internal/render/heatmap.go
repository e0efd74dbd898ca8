package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// HeatMapConfig styles a sky-brightness map. Min/Max clamp the color scale in
// data units (magnitudes); out-of-range and non-finite pixels saturate at Max.
type HeatMapConfig struct {
	Title  string
	Min    float64
	Max    float64
	Marker *[2]float64 // optional overlay point, image pixel coordinates
}

// magGrid adapts a row-major magnitude image to plotter.GridXYZ.
// Non-finite pixels (masked or non-positive flux) saturate at max.
type magGrid struct {
	width  int
	height int
	data   []float64
	max    float64
}

func (g magGrid) Dims() (int, int) { return g.width, g.height }
func (g magGrid) X(c int) float64  { return float64(c) }
func (g magGrid) Y(r int) float64  { return float64(r) }

func (g magGrid) Z(c, r int) float64 {
	v := g.data[r*g.width+c]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return g.max
	}
	return v
}

// reversedPalette inverts the color order of the wrapped palette;
// palette.Reverse only accepts a ColorMap, not the Palette that Heat returns.
type reversedPalette struct {
	palette.Palette
}

func (p reversedPalette) Colors() []color.Color {
	src := p.Palette.Colors()
	out := make([]color.Color, len(src))
	for i, c := range src {
		out[len(src)-1-i] = c
	}
	return out
}

// HeatMap renders a row-major image as a heat map PNG at path, with the image
// center and an optional marker overlaid. The palette is inverted so that
// brighter sky (lower magnitude) renders darker.
func HeatMap(data []float64, width, height int, cfg HeatMapConfig, path string) error {
	if width <= 0 || height <= 0 || len(data) < width*height {
		return fmt.Errorf("invalid image dimensions %dx%d for %d pixels", width, height, len(data))
	}

	grid := magGrid{width: width, height: height, data: data, max: cfg.Max}
	hm := plotter.NewHeatMap(grid, reversedPalette{palette.Heat(255, 1)})
	hm.Min = cfg.Min
	hm.Max = cfg.Max

	plt := plot.New()
	plt.Title.Text = cfg.Title
	plt.X.Label.Text = "x (pixel)"
	plt.Y.Label.Text = "y (pixel)"
	plt.Add(hm)

	center := [2]float64{float64(width) / 2, float64(height) / 2}
	if err := addOverlay(plt, center, cfg.Marker); err != nil {
		return err
	}

	if err := plt.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving heat map: %w", err)
	}
	return nil
}

// addOverlay marks the image center and, when present, the reference marker,
// joined by a line.
func addOverlay(plt *plot.Plot, center [2]float64, marker *[2]float64) error {
	pts := plotter.XYs{{X: center[0], Y: center[1]}}
	if marker != nil {
		pts = append(pts, plotter.XY{X: marker[0], Y: marker[1]})
	}

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("building overlay: %w", err)
	}
	plt.Add(sc)

	if marker != nil {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("building overlay line: %w", err)
		}
		plt.Add(line)
	}
	return nil
}
