package seeing

import "time"

// saturationFWHM is an instrument artifact: the monitor reports exactly 0.08
// arcsec when the detector saturates. Vetting drops it alongside zeros.
const saturationFWHM = 0.08

// Record is a single line of a seeing monitor log.
type Record struct {
	Timestamp time.Time
	DayOfYear float64 // fractional day of year
	TimeOfDay float64 // decimal hours since midnight
	Fmin      int
	Fmax      int
	FWHMAve   float64 // monitor-reported average, arcsec
	NPts      int
	Raw       []float64 // raw FWHM samples, arcsec; unparseable fields become 0
	BadRaw    bool      // true if any raw field failed to parse
}

// Dataset holds all records parsed from one log file.
type Dataset struct {
	File    string
	Records []Record
}

// Times returns the decimal-hour timestamp of every record.
func (ds *Dataset) Times() []float64 {
	out := make([]float64, len(ds.Records))
	for i, r := range ds.Records {
		out[i] = r.TimeOfDay
	}
	return out
}

// Decimate keeps every n-th record. The early seeing monitor logged once a
// minute; thinning by 10 brings those files in line with later ten-minute logs.
func (ds *Dataset) Decimate(n int) {
	if n <= 1 || len(ds.Records) == 0 {
		return
	}
	kept := ds.Records[:0]
	for i := 0; i < len(ds.Records); i += n {
		kept = append(kept, ds.Records[i])
	}
	ds.Records = kept
}
