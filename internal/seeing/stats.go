package seeing

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// Mode search grid: seeing beyond 30 arcsec is noise, 1000 points gives
// 0.03 arcsec resolution.
const (
	modeGridMax  = 30.0
	distGridSize = 1000
)

// Summary holds the basic FWHM distribution statistics.
type Summary struct {
	Mean        float64
	Median      float64
	Mode        float64 // KDE peak on [0, 30] arcsec
	Std         float64
	ClippedMean float64 // mean after 3-sigma clipping
}

// Summarize computes basic statistics of a vetted FWHM sample.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("no values to summarize")
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return Summary{}, fmt.Errorf("mean: %w", err)
	}
	median, err := stats.Median(values)
	if err != nil {
		return Summary{}, fmt.Errorf("median: %w", err)
	}
	std, err := stats.StandardDeviation(values)
	if err != nil {
		return Summary{}, fmt.Errorf("stddev: %w", err)
	}

	clipped := SigmaClip(values, 3, 3)
	clippedMean, err := stats.Mean(clipped)
	if err != nil {
		clippedMean = mean
	}

	mode, err := kdeMode(values)
	if err != nil {
		// Degenerate sample (e.g. zero variance); fall back to the median.
		mode = median
	}

	return Summary{
		Mean:        mean,
		Median:      median,
		Mode:        mode,
		Std:         std,
		ClippedMean: clippedMean,
	}, nil
}

// kdeMode locates the peak of the sample's density estimate on [0, 30].
func kdeMode(values []float64) (float64, error) {
	kde, err := NewKDE(values)
	if err != nil {
		return 0, err
	}

	grid := make([]float64, distGridSize)
	floats.Span(grid, 0, modeGridMax)
	pdf := kde.Grid(grid)

	best := 0
	for i, p := range pdf {
		if p > pdf[best] {
			best = i
		}
	}
	return grid[best], nil
}

// SigmaClip iteratively trims values outside [mean - lo*std, mean + hi*std]
// until the sample is stable.
func SigmaClip(values []float64, lo, hi float64) []float64 {
	clipped := append([]float64(nil), values...)
	for {
		mean, err := stats.Mean(clipped)
		if err != nil {
			return clipped
		}
		std, err := stats.StandardDeviation(clipped)
		if err != nil || std == 0 {
			return clipped
		}

		lower := mean - lo*std
		upper := mean + hi*std

		kept := clipped[:0]
		for _, v := range clipped {
			if v >= lower && v <= upper {
				kept = append(kept, v)
			}
		}
		if len(kept) == len(clipped) {
			return kept
		}
		clipped = kept
	}
}

// DistParams is a robust distribution summary derived from the density
// estimate: the median, mode, central 1-sigma bounds (equal-tail), and the
// shortest interval containing 68.27% of the distribution.
type DistParams struct {
	Median   float64
	Mode     float64
	Interval float64 // width of the shortest 68.27% interval
	Lo       float64 // 15.87th percentile
	Hi       float64 // 84.13th percentile
}

// EstimateDistParams computes robust statistics of a distribution of values
// by inverting the cumulative density estimate with piecewise-linear
// interpolation.
func EstimateDistParams(values []float64) (DistParams, error) {
	kde, err := NewKDE(values)
	if err != nil {
		return DistParams{}, err
	}

	lo := floats.Min(values) * 0.5
	hi := floats.Max(values) * 1.5
	grid := make([]float64, distGridSize)
	floats.Span(grid, lo, hi)

	pdf := kde.Grid(grid)
	total := floats.Sum(pdf)
	if total <= 0 {
		return DistParams{}, fmt.Errorf("degenerate density estimate")
	}

	// Cumulative distribution over the grid.
	cum := make([]float64, len(pdf))
	run := 0.0
	for i, p := range pdf {
		run += p
		cum[i] = run / total
	}

	best := 0
	for i, p := range pdf {
		if p > pdf[best] {
			best = i
		}
	}

	quantile, err := inverseCDF(cum, grid)
	if err != nil {
		return DistParams{}, err
	}

	dp := DistParams{
		Median: quantile(0.5),
		Mode:   grid[best],
		Lo:     quantile(math.Erfc(1 / math.Sqrt2)),
		Hi:     quantile(math.Erf(1 / math.Sqrt2)),
	}

	// Scan candidate 68.27% intervals for the narrowest one.
	const conf = 0.6827
	uppers := make([]float64, 100)
	floats.Span(uppers, 0.684, 0.999)

	dp.Interval = math.Inf(1)
	for _, u := range uppers {
		w := quantile(u) - quantile(u-conf)
		if w < dp.Interval {
			dp.Interval = w
		}
	}

	return dp, nil
}

// inverseCDF fits a piecewise-linear interpolant mapping cumulative
// probability back to data values. Duplicate cumulative points at the tails
// are collapsed so the abscissae stay strictly increasing; queries are
// clamped to the fitted range.
func inverseCDF(cum, vals []float64) (func(p float64) float64, error) {
	xs := make([]float64, 0, len(cum))
	ys := make([]float64, 0, len(cum))
	for i := range cum {
		if len(xs) > 0 && cum[i] <= xs[len(xs)-1] {
			continue
		}
		xs = append(xs, cum[i])
		ys = append(ys, vals[i])
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("cumulative distribution has no spread")
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fitting inverse cdf: %w", err)
	}

	min, max := xs[0], xs[len(xs)-1]
	return func(p float64) float64 {
		if p < min {
			p = min
		}
		if p > max {
			p = max
		}
		return pl.Predict(p)
	}, nil
}
