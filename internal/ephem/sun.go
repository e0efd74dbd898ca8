package ephem

import (
	"fmt"
	"math"
	"time"
)

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)

// Observer is a ground site in geodetic coordinates. Longitude is positive
// east, elevation in meters above sea level.
type Observer struct {
	LatDeg float64
	LonDeg float64
	ElevM  float64
}

// SunPosition holds the Sun's topocentric horizontal coordinates and its
// equatorial coordinates at one instant. All angles are in degrees; azimuth
// is measured from north, clockwise.
type SunPosition struct {
	AltDeg float64
	AzDeg  float64
	RADeg  float64
	DecDeg float64
}

// Sample is a timestamped Sun position along a track.
type Sample struct {
	Time time.Time
	SunPosition
}

// Sun computes the Sun's position for an observer at time t using the
// low-accuracy solar ephemeris from Meeus "Astronomical Algorithms" Ch. 25.
// Good to a few arcminutes, which is ample for planning plots.
func Sun(t time.Time, obs Observer) SunPosition {
	jd := JulianDate(t.UTC())
	T := (jd - j2000) / 36525.0

	// Geometric mean longitude and mean anomaly of the Sun (degrees).
	L0 := 280.46646 + 36000.76983*T + 0.0003032*T*T
	M := 357.52911 + 35999.05029*T - 0.0001537*T*T
	Mrad := M * deg2rad

	// Equation of center.
	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(Mrad) +
		(0.019993-0.000101*T)*math.Sin(2*Mrad) +
		0.000289*math.Sin(3*Mrad)

	trueLon := L0 + C

	// Apparent longitude, corrected for nutation and aberration.
	omega := (125.04 - 1934.136*T) * deg2rad
	lambda := (trueLon - 0.00569 - 0.00478*math.Sin(omega)) * deg2rad

	// Obliquity of the ecliptic, with the nutation correction matching the
	// apparent-longitude correction above.
	eps0 := 23.43929111 - 0.01300417*T - 1.638889e-7*T*T
	eps := (eps0 + 0.00256*math.Cos(omega)) * deg2rad

	sinLambda := math.Sin(lambda)
	ra := math.Atan2(math.Cos(eps)*sinLambda, math.Cos(lambda))
	dec := math.Asin(math.Sin(eps) * sinLambda)

	// Hour angle from local sidereal time.
	H := LocalSiderealTime(t, obs.LonDeg) - ra

	lat := obs.LatDeg * deg2rad
	sinAlt := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(H)
	alt := math.Asin(sinAlt)

	// Azimuth from north, clockwise.
	az := math.Atan2(math.Sin(H), math.Cos(H)*math.Sin(lat)-math.Tan(dec)*math.Cos(lat)) + math.Pi
	az = math.Mod(az, 2*math.Pi)
	if az < 0 {
		az += 2 * math.Pi
	}

	raDeg := ra * rad2deg
	if raDeg < 0 {
		raDeg += 360
	}

	return SunPosition{
		AltDeg: alt * rad2deg,
		AzDeg:  az * rad2deg,
		RADeg:  raDeg,
		DecDeg: dec * rad2deg,
	}
}

// Track samples the Sun's position over [start, end) at the given step.
func Track(obs Observer, start, end time.Time, step time.Duration) ([]Sample, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %v", step)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("start %v is not before end %v", start, end)
	}

	var samples []Sample
	for t := start; t.Before(end); t = t.Add(step) {
		samples = append(samples, Sample{Time: t, SunPosition: Sun(t, obs)})
	}
	return samples, nil
}
