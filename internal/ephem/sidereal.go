package ephem

import (
	"math"
	"time"
)

// j2000 is the Julian Date of the J2000.0 epoch.
const j2000 = 2451545.0

const secondsPerDay = 86400.0

// JulianDate converts t (interpreted in UTC) to a Julian Date using the
// standard astronomical algorithm for Gregorian calendar dates.
func JulianDate(t time.Time) float64 {
	t = t.UTC()
	y, m := float64(t.Year()), float64(t.Month())
	// January and February count as months 13 and 14 of the prior year.
	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)
	day := float64(t.Day()) + b - 1524.5

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + day

	frac := float64(t.Hour())*3600 + float64(t.Minute())*60 +
		float64(t.Second()) + float64(t.Nanosecond())/1e9
	return jd + frac/secondsPerDay
}

// GMST returns Greenwich Mean Sidereal Time in radians, IAU-82 model
// (Vallado Eq 3-47), evaluated in seconds of time and normalized to one
// rotation.
func GMST(t time.Time) float64 {
	tc := (JulianDate(t) - j2000) / 36525.0

	sec := 67310.54841 +
		(876600*3600.0+8640184.812866)*tc +
		0.093104*tc*tc -
		6.2e-6*tc*tc*tc

	sec = math.Mod(sec, secondsPerDay)
	if sec < 0 {
		sec += secondsPerDay
	}
	return sec / secondsPerDay * 2 * math.Pi
}

// LocalSiderealTime returns the local mean sidereal time in radians for an
// observer at the given east longitude in degrees.
func LocalSiderealTime(t time.Time, lonDeg float64) float64 {
	lst := math.Mod(GMST(t)+lonDeg*deg2rad, 2*math.Pi)
	if lst < 0 {
		lst += 2 * math.Pi
	}
	return lst
}
