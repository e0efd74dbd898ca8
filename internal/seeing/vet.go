package seeing

import (
	"fmt"
	"math"
)

// Vetting thresholds. Bulk vetting only needs to catch the absurd readings
// that appear around sunrise and sunset; per-day series use a tighter cut.
const (
	DayVetMax  = 10.0
	BulkVetMax = 50.0
)

// VetSeries filters a timestamped FWHM series. Values are rounded to two
// decimals, then zeros, the 0.08 saturation artifact, and values at or above
// max are dropped together with their timestamps. The two vectors must have
// equal lengths.
func VetSeries(times, values []float64, max float64) ([]float64, []float64, error) {
	if len(times) != len(values) {
		return nil, nil, fmt.Errorf("time and data vectors not equal lengths: %d vs %d", len(times), len(values))
	}

	keptT := make([]float64, 0, len(values))
	keptV := make([]float64, 0, len(values))
	for i, v := range values {
		v = math.Round(v*100) / 100
		if dropFWHM(v, max) {
			continue
		}
		keptT = append(keptT, times[i])
		keptV = append(keptV, v)
	}
	return keptT, keptV, nil
}

// Vet filters a bare FWHM sample with no timestamps: values are rounded to
// two decimals, then zeros, the 0.08 saturation artifact, and values at or
// above max are dropped.
func Vet(values []float64, max float64) []float64 {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		v = math.Round(v*100) / 100
		if dropFWHM(v, max) {
			continue
		}
		kept = append(kept, v)
	}
	return kept
}

func dropFWHM(v, max float64) bool {
	return v == 0 || v == saturationFWHM || v >= max
}
