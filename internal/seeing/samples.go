package seeing

import (
	"math"

	"github.com/montanaflynn/stats"
)

// AllSamples flattens every raw FWHM measurement in the dataset, dropping
// zeros (the unparseable-field sentinel) and the 0.08 saturation artifact.
func AllSamples(ds *Dataset) []float64 {
	var out []float64
	for _, rec := range ds.Records {
		for _, v := range rec.Raw {
			if v == 0 || v == saturationFWHM {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}

// RecordMeans computes the per-record mean and standard deviation of the raw
// FWHM samples. Records with no usable samples, or with a parse failure
// anywhere in the raw section, collapse to zero so the series vetting drops
// them. clipSigma > 0 sigma-clips each record's samples before averaging.
func RecordMeans(ds *Dataset, clipSigma float64) (means, sigmas []float64) {
	means = make([]float64, len(ds.Records))
	sigmas = make([]float64, len(ds.Records))

	for i, rec := range ds.Records {
		if rec.BadRaw || len(rec.Raw) == 0 {
			continue
		}

		vals := rec.Raw
		if clipSigma > 0 {
			vals = SigmaClip(vals, clipSigma, clipSigma)
		}
		if len(vals) == 0 {
			continue
		}

		m, err := stats.Mean(vals)
		if err != nil || math.IsNaN(m) {
			continue
		}
		s, err := stats.StandardDeviation(vals)
		if err != nil || math.IsNaN(s) {
			s = 0
		}
		means[i] = m
		sigmas[i] = s
	}
	return means, sigmas
}
