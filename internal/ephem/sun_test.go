package ephem

import (
	"math"
	"testing"
	"time"
)

// Observatory site used throughout the tests.
var testSite = Observer{LatDeg: 34.467028, LonDeg: -119.1773417, ElevM: 504.4}

func TestJulianDate_J2000(t *testing.T) {
	jd := JulianDate(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(jd-2451545.0) > 1e-6 {
		t.Errorf("JD(J2000) = %v, want 2451545.0", jd)
	}
}

func TestJulianDate_KnownEpoch(t *testing.T) {
	jd := JulianDate(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))
	if math.Abs(jd-2451179.5) > 1e-6 {
		t.Errorf("JD(1999-01-01) = %v, want 2451179.5", jd)
	}
}

func TestGMST_Range(t *testing.T) {
	for hour := 0; hour < 24; hour += 3 {
		g := GMST(time.Date(2024, 6, 1, hour, 0, 0, 0, time.UTC))
		if g < 0 || g >= 2*math.Pi {
			t.Errorf("GMST at hour %d = %v, want [0, 2pi)", hour, g)
		}
	}
}

func TestLocalSiderealTime_LongitudeOffset(t *testing.T) {
	ts := time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC)
	gmst := GMST(ts)
	lst := LocalSiderealTime(ts, 90)

	diff := math.Mod(lst-gmst+2*math.Pi, 2*math.Pi)
	if math.Abs(diff-math.Pi/2) > 1e-9 {
		t.Errorf("LST - GMST = %v rad, want pi/2 for 90 deg east", diff)
	}
}

func TestSun_EquinoxDeclination(t *testing.T) {
	// March equinox 2024: 2024-03-20 03:06 UTC.
	sun := Sun(time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC), testSite)
	if math.Abs(sun.DecDeg) > 0.5 {
		t.Errorf("equinox declination = %v deg, want ~0", sun.DecDeg)
	}
}

func TestSun_SolsticeDeclination(t *testing.T) {
	// June solstice 2024: 2024-06-20 20:51 UTC.
	sun := Sun(time.Date(2024, 6, 20, 20, 51, 0, 0, time.UTC), testSite)
	if math.Abs(sun.DecDeg-23.44) > 0.1 {
		t.Errorf("solstice declination = %v deg, want ~23.44", sun.DecDeg)
	}
}

func TestSun_TransitAltitude(t *testing.T) {
	// Local solar noon at the site is near 19:57 UTC in June. At transit the
	// altitude is 90 - lat + dec.
	sun := Sun(time.Date(2024, 6, 20, 19, 57, 0, 0, time.UTC), testSite)

	want := 90 - testSite.LatDeg + 23.44
	if math.Abs(sun.AltDeg-want) > 1.0 {
		t.Errorf("transit altitude = %v deg, want ~%v", sun.AltDeg, want)
	}
}

func TestSun_BelowHorizonAtLocalMidnight(t *testing.T) {
	sun := Sun(time.Date(2024, 6, 21, 8, 0, 0, 0, time.UTC), testSite)
	if sun.AltDeg > -10 {
		t.Errorf("midnight altitude = %v deg, want well below horizon", sun.AltDeg)
	}
}

func TestSun_MorningInTheEast(t *testing.T) {
	// 16:00 UTC is 08:00 local standard time; the risen sun stands east.
	sun := Sun(time.Date(2024, 3, 20, 16, 0, 0, 0, time.UTC), testSite)
	if sun.AltDeg <= 0 {
		t.Errorf("morning altitude = %v deg, want above horizon", sun.AltDeg)
	}
	if sun.AzDeg < 45 || sun.AzDeg > 170 {
		t.Errorf("morning azimuth = %v deg, want eastern sky", sun.AzDeg)
	}
}

func TestSun_RADecRanges(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		sun := Sun(time.Date(2024, month, 15, 12, 0, 0, 0, time.UTC), testSite)
		if sun.RADeg < 0 || sun.RADeg >= 360 {
			t.Errorf("month %v: RA = %v, want [0, 360)", month, sun.RADeg)
		}
		if math.Abs(sun.DecDeg) > 23.5 {
			t.Errorf("month %v: declination = %v, want within +/-23.5", month, sun.DecDeg)
		}
		if sun.AzDeg < 0 || sun.AzDeg >= 360 {
			t.Errorf("month %v: azimuth = %v, want [0, 360)", month, sun.AzDeg)
		}
	}
}

func TestTrack_SampleCount(t *testing.T) {
	start := time.Date(2016, 3, 29, 1, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	samples, err := Track(testSite, start, end, time.Hour)
	if err != nil {
		t.Fatalf("Track returned error: %v", err)
	}
	if len(samples) != 24 {
		t.Fatalf("got %d samples, want 24", len(samples))
	}
	if !samples[0].Time.Equal(start) {
		t.Errorf("first sample at %v, want %v", samples[0].Time, start)
	}
	if !samples[23].Time.Equal(end.Add(-time.Hour)) {
		t.Errorf("last sample at %v, want %v (end exclusive)", samples[23].Time, end.Add(-time.Hour))
	}
}

func TestTrack_InvalidArgs(t *testing.T) {
	start := time.Date(2016, 3, 29, 1, 0, 0, 0, time.UTC)

	if _, err := Track(testSite, start, start.Add(time.Hour), 0); err == nil {
		t.Error("expected error for zero step")
	}
	if _, err := Track(testSite, start, start, time.Hour); err == nil {
		t.Error("expected error for empty range")
	}
}
