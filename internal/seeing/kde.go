package seeing

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// KDE is a one-dimensional Gaussian kernel density estimate.
type KDE struct {
	samples   []float64
	bandwidth float64
}

// NewKDE builds a Gaussian KDE over the samples using Scott's rule for the
// bandwidth (sigma * n^(-1/5)). The samples must have nonzero variance.
func NewKDE(samples []float64) (*KDE, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("kde needs at least 2 samples, got %d", len(samples))
	}
	sigma, err := stats.StandardDeviation(samples)
	if err != nil {
		return nil, fmt.Errorf("kde bandwidth: %w", err)
	}
	if sigma == 0 {
		return nil, fmt.Errorf("kde needs samples with nonzero variance")
	}

	bw := sigma * math.Pow(float64(len(samples)), -1.0/5.0)
	return &KDE{samples: samples, bandwidth: bw}, nil
}

// Bandwidth returns the kernel bandwidth in data units.
func (k *KDE) Bandwidth() float64 { return k.bandwidth }

// PDF evaluates the density estimate at x.
func (k *KDE) PDF(x float64) float64 {
	const invSqrt2Pi = 1.0 / 2.5066282746310002

	sum := 0.0
	for _, s := range k.samples {
		u := (x - s) / k.bandwidth
		sum += invSqrt2Pi * math.Exp(-0.5*u*u)
	}
	return sum / (float64(len(k.samples)) * k.bandwidth)
}

// Grid evaluates the density estimate at every point in xs.
func (k *KDE) Grid(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = k.PDF(x)
	}
	return out
}
