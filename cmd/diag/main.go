package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/thacher/skymon/internal/config"
	"github.com/thacher/skymon/internal/ephem"
	"github.com/thacher/skymon/internal/render"
	"github.com/thacher/skymon/internal/seeing"
)

// Quick site sanity check: confirms the clock/coordinate math and that the
// newest seeing log in the data dir parses.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	cfg := config.Load(logger)

	now := time.Now().UTC()
	fmt.Printf("site: lat=%.6f lon=%.6f elev=%.1fm\n",
		cfg.Observer.LatDeg, cfg.Observer.LonDeg, cfg.Observer.ElevM)
	fmt.Printf("now:  %v\n", now)
	fmt.Printf("JD:   %.5f\n", ephem.JulianDate(now))
	fmt.Printf("LST:  %.5f rad\n", ephem.LocalSiderealTime(now, cfg.Observer.LonDeg))

	sun := ephem.Sun(now, cfg.Observer)
	fmt.Printf("sun:  alt=%.2f az=%.2f ra=%.2f dec=%.2f\n",
		sun.AltDeg, sun.AzDeg, sun.RADeg, sun.DecDeg)

	outputs := render.NewOutputs(cfg.OutDir, cfg.MaxPlots)
	for _, kind := range []string{"seeing_day", "seeing_cumulative", "sky_brightness", "sun_path"} {
		path, ts, err := outputs.Latest(kind)
		if err != nil {
			continue
		}
		fmt.Printf("plot: %s (%s)\n", path, ts.UTC().Format(time.RFC3339))
	}

	paths, err := seeing.LogFilesInDir(cfg.DataDir)
	if err != nil || len(paths) == 0 {
		fmt.Println("no seeing logs found in", cfg.DataDir)
		return
	}

	latest := paths[len(paths)-1]
	f, err := os.Open(latest)
	if err != nil {
		fmt.Println("ERROR opening seeing log:", err)
		os.Exit(1)
	}
	defer f.Close()

	ds, err := seeing.Parse(f, logger)
	if err != nil {
		fmt.Println("ERROR parsing seeing log:", err)
		os.Exit(1)
	}
	fmt.Printf("log:  %s, %d records\n", latest, len(ds.Records))

	if values := seeing.AllSamples(ds); len(values) > 0 {
		if summary, err := seeing.Summarize(values); err == nil {
			fmt.Printf("FWHM: mean=%.2f\" median=%.2f\" mode=%.2f\"\n",
				summary.Mean, summary.Median, summary.Mode)
		}
	}
}
