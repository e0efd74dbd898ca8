package skymap

import (
	"fmt"
	"math"
)

// Params describes how a calibration frame is reduced to a sky-brightness map.
type Params struct {
	M0        float64 // photometer zero point, mag/sq-arcsec
	FWHMDeg   float64 // weighting kernel FWHM in degrees of sky
	ArcPerPix float64 // plate scale, square arcseconds per pixel
	CenterX   int     // kernel center; negative means image center
	CenterY   int
}

// Map is the reduced sky-brightness image in magnitudes per square arcsecond.
type Map struct {
	Width        int
	Height       int
	Mag          []float64 // row-major, same layout as Image.Data
	WeightedMean float64   // Gaussian-weighted mean flux of the input frame
}

// Kernel builds a 2D Gaussian weight image of the given dimensions. The FWHM
// is specified in degrees of sky and converted to pixels through the plate
// scale; cx/cy place the kernel center, with negative values defaulting to
// the image center.
func Kernel(width, height int, fwhmDeg, arcPerPix float64, cx, cy int) ([]float64, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid kernel dimensions %dx%d", width, height)
	}
	if fwhmDeg <= 0 || arcPerPix <= 0 {
		return nil, fmt.Errorf("fwhm and plate scale must be positive")
	}

	fwhmPix := fwhmDeg * 3600.0 / arcPerPix
	sigma := fwhmPix / (2 * math.Sqrt(2*math.Ln2))
	amp := 1.0 / (math.Sqrt(2*math.Pi) * sigma)

	if cx < 0 {
		cx = width / 2
	}
	if cy < 0 {
		cy = height / 2
	}

	z := make([]float64, width*height)
	for y := 0; y < height; y++ {
		dy := float64(y - cy)
		for x := 0; x < width; x++ {
			dx := float64(x - cx)
			r2 := dx*dx + dy*dy
			z[y*width+x] = amp * math.Exp(-4*math.Ln2*r2/(2*sigma*sigma))
		}
	}
	return z, nil
}

// WeightedMean computes the kernel-weighted mean flux, sum(N*Z)/sum(Z).
func WeightedMean(pixels, kernel []float64) (float64, error) {
	if len(pixels) != len(kernel) {
		return 0, fmt.Errorf("pixel and kernel lengths differ: %d vs %d", len(pixels), len(kernel))
	}

	var num, den float64
	for i, z := range kernel {
		num += pixels[i] * z
		den += z
	}
	if den == 0 {
		return 0, fmt.Errorf("kernel sums to zero")
	}
	return num / den, nil
}

// MagnitudeMap converts pixel fluxes to magnitudes per square arcsecond
// relative to the weighted mean: m = m0 - 2.5*log10(N/wmean). Zero flux comes
// out as +Inf and negative flux as NaN; both are clamped at render time.
func MagnitudeMap(pixels []float64, m0, wmean float64) []float64 {
	out := make([]float64, len(pixels))
	for i, v := range pixels {
		out[i] = m0 - 2.5*math.Log10(v/wmean)
	}
	return out
}

// MaskCircle zeroes all pixels within radius r of (cx, cy), marking a
// reference point (the photometer aim spot) in the rendered map.
func MaskCircle(pixels []float64, width int, cx, cy, r int) {
	if width <= 0 || len(pixels) == 0 {
		return
	}
	height := len(pixels) / width
	r2 := r * r
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r2 {
				pixels[y*width+x] = 0
			}
		}
	}
}

// Build reduces a calibration frame to a sky-brightness map.
func Build(img *Image, p Params) (*Map, error) {
	kernel, err := Kernel(img.Width, img.Height, p.FWHMDeg, p.ArcPerPix, p.CenterX, p.CenterY)
	if err != nil {
		return nil, err
	}

	wmean, err := WeightedMean(img.Data, kernel)
	if err != nil {
		return nil, err
	}

	return &Map{
		Width:        img.Width,
		Height:       img.Height,
		Mag:          MagnitudeMap(img.Data, p.M0, wmean),
		WeightedMean: wmean,
	}, nil
}
