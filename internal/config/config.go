package config

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/thacher/skymon/internal/ephem"
	"github.com/thacher/skymon/internal/seeing"
)

// Observatory site defaults.
const (
	siteLatDeg = 34.467028
	siteLonDeg = -119.1773417
	siteElevM  = 504.4
)

// Config holds all runtime configuration, loaded from the environment with
// optional .env support.
type Config struct {
	DataDir  string // seeing log directory
	OutDir   string // rendered plot directory
	MaxPlots int    // kept PNGs per plot kind

	Workers int // seeing range loader pool size

	Observer ephem.Observer

	DayVetMax  float64 // per-day series vetting threshold, arcsec
	BulkVetMax float64 // bulk vetting threshold, arcsec
	Bins       int     // cumulative histogram bins
}

// Load reads configuration from the environment. Invalid values log a warning
// and fall back to defaults.
func Load(logger *slog.Logger) Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}

	cfg := Config{
		DataDir:    ".",
		OutDir:     ".",
		MaxPlots:   20,
		Workers:    runtime.NumCPU(),
		DayVetMax:  seeing.DayVetMax,
		BulkVetMax: seeing.BulkVetMax,
		Bins:       35,
		Observer: ephem.Observer{
			LatDeg: siteLatDeg,
			LonDeg: siteLonDeg,
			ElevM:  siteElevM,
		},
	}

	if v := os.Getenv("SKYMON_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("SKYMON_OUT_DIR"); v != "" {
		cfg.OutDir = v
	}

	if v := os.Getenv("SKYMON_MAX_PLOTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid SKYMON_MAX_PLOTS value, using default", "value", v, "default", cfg.MaxPlots)
		} else {
			cfg.MaxPlots = n
		}
	}

	if v := os.Getenv("SKYMON_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid SKYMON_WORKERS value, using default", "value", v, "default", cfg.Workers)
		} else {
			cfg.Workers = n
		}
	}

	if v := os.Getenv("SKYMON_BINS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid SKYMON_BINS value, using default", "value", v, "default", cfg.Bins)
		} else {
			cfg.Bins = n
		}
	}

	cfg.DayVetMax = loadFloat(logger, "SKYMON_DAY_VET_MAX", cfg.DayVetMax)
	cfg.BulkVetMax = loadFloat(logger, "SKYMON_BULK_VET_MAX", cfg.BulkVetMax)

	cfg.Observer.LatDeg = loadFloat(logger, "SKYMON_SITE_LAT", cfg.Observer.LatDeg)
	cfg.Observer.LonDeg = loadFloat(logger, "SKYMON_SITE_LON", cfg.Observer.LonDeg)
	cfg.Observer.ElevM = loadFloat(logger, "SKYMON_SITE_ELEV", cfg.Observer.ElevM)

	logger.Info("config",
		"data_dir", cfg.DataDir,
		"out_dir", cfg.OutDir,
		"max_plots", cfg.MaxPlots,
		"workers", cfg.Workers,
		"site_lat", cfg.Observer.LatDeg,
		"site_lon", cfg.Observer.LonDeg,
	)

	return cfg
}

func loadFloat(logger *slog.Logger, key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logger.Warn("invalid value, using default", "key", key, "value", v, "default", def)
		return def
	}
	return f
}
