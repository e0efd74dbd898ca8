package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/thacher/skymon/internal/render"
	"github.com/thacher/skymon/internal/seeing"
)

func seeingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seeing",
		Short: "FWHM seeing log statistics",
	}
	cmd.AddCommand(seeingStatsCmd(), seeingDayCmd(), seeingRangeCmd())
	return cmd
}

func seeingStatsCmd() *cobra.Command {
	var (
		file      string
		date      string
		useMeans  bool
		clipSigma float64
		tenmin    bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print FWHM statistics for one seeing log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadSeeingLog(file, date, tenmin)
			if err != nil {
				return err
			}

			var values []float64
			if useMeans {
				values, _ = seeing.RecordMeans(ds, clipSigma)
			} else {
				values = seeing.AllSamples(ds)
			}
			values = seeing.Vet(values, cfg.BulkVetMax)

			summary, err := seeing.Summarize(values)
			if err != nil {
				return err
			}

			fmt.Printf("samples:      %d\n", len(values))
			fmt.Printf("mean:         %.2f\"\n", summary.Mean)
			fmt.Printf("median:       %.2f\"\n", summary.Median)
			fmt.Printf("mode:         %.2f\"\n", summary.Mode)
			fmt.Printf("std:          %.2f\"\n", summary.Std)
			fmt.Printf("clipped mean: %.2f\"\n", summary.ClippedMean)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "seeing log path (overrides --date)")
	cmd.Flags().StringVar(&date, "date", "", "log date, YYYY-M-D, resolved in the data dir")
	cmd.Flags().BoolVar(&useMeans, "means", false, "use per-record means instead of all raw samples")
	cmd.Flags().Float64Var(&clipSigma, "clip", 0, "sigma-clip per-record samples (with --means)")
	cmd.Flags().BoolVar(&tenmin, "tenmin", false, "thin one-minute logs to ten-minute sampling")
	return cmd
}

func seeingDayCmd() *cobra.Command {
	var (
		date   string
		tenmin bool
		bins   int
	)

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Render a vetted FWHM histogram for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadSeeingLog("", date, tenmin)
			if err != nil {
				return err
			}

			means, _ := seeing.RecordMeans(ds, 0)
			_, vetted, err := seeing.VetSeries(ds.Times(), means, cfg.DayVetMax)
			if err != nil {
				return err
			}
			if len(vetted) == 0 {
				fmt.Printf("no usable FWHM data for %s\n", date)
				return nil
			}

			path, err := outputs.Path("seeing_day", time.Now())
			if err != nil {
				return err
			}
			err = render.Histogram(trimOutliers(vetted), render.HistogramConfig{
				Title:  "Seeing " + date,
				XLabel: "FWHM (arcsec)",
				YLabel: "Frequency",
				Bins:   bins,
			}, path)
			if err != nil {
				return err
			}
			if err := outputs.Prune("seeing_day"); err != nil {
				logger.Warn("pruning day plots", "error", err)
			}

			fmt.Printf("wrote %s (%d measurements)\n", path, len(vetted))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "log date, YYYY-M-D (required)")
	cmd.Flags().BoolVar(&tenmin, "tenmin", false, "thin one-minute logs to ten-minute sampling")
	cmd.Flags().IntVar(&bins, "bins", 50, "histogram bins")
	cobra.CheckErr(cmd.MarkFlagRequired("date"))
	return cmd
}

func seeingRangeCmd() *cobra.Command {
	var (
		startStr string
		endStr   string
		tenmin   bool
	)

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Render a cumulative FWHM histogram over a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate(startStr)
			if err != nil {
				return err
			}
			end, err := parseDate(endStr)
			if err != nil {
				return err
			}

			decimate := 1
			if tenmin {
				decimate = 10
			}
			fwhm, err := seeing.LoadRange(cmd.Context(), cfg.DataDir, start, end, seeing.RangeOptions{
				Workers:  cfg.Workers,
				Decimate: decimate,
				VetMax:   cfg.DayVetMax,
			}, logger)
			if err != nil {
				return err
			}

			summary, err := seeing.Summarize(fwhm)
			if err != nil {
				return err
			}
			dist, err := seeing.EstimateDistParams(fwhm)
			if err != nil {
				return err
			}

			path, err := outputs.Path("seeing_cumulative", time.Now())
			if err != nil {
				return err
			}
			err = render.Histogram(fwhm, render.HistogramConfig{
				Title:  fmt.Sprintf("Seeing %s to %s", startStr, endStr),
				XLabel: "FWHM (arcsec)",
				YLabel: "Frequency",
				Bins:   cfg.Bins,
				Annotations: []string{
					fmt.Sprintf("mode = %.2f\"", summary.Mode),
					fmt.Sprintf("median = %.2f\"", summary.Median),
					fmt.Sprintf("mean = %.2f\"", summary.Mean),
					fmt.Sprintf("1 sigma int. = %.2f\"", dist.Interval),
				},
			}, path)
			if err != nil {
				return err
			}
			if err := outputs.Prune("seeing_cumulative"); err != nil {
				logger.Warn("pruning cumulative plots", "error", err)
			}

			fmt.Printf("wrote %s\n", path)
			fmt.Printf("samples: %d  mean: %.2f\"  median: %.2f\"  mode: %.2f\"  1 sigma int.: %.2f\"\n",
				len(fwhm), summary.Mean, summary.Median, summary.Mode, dist.Interval)
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "start date, YYYY-M-D (required)")
	cmd.Flags().StringVar(&endStr, "end", "", "end date, YYYY-M-D (required)")
	cmd.Flags().BoolVar(&tenmin, "tenmin", true, "thin one-minute logs to ten-minute sampling")
	cobra.CheckErr(cmd.MarkFlagRequired("start"))
	cobra.CheckErr(cmd.MarkFlagRequired("end"))
	return cmd
}

// loadSeeingLog resolves a seeing log by explicit path or by date within the
// configured data directory.
func loadSeeingLog(file, date string, tenmin bool) (*seeing.Dataset, error) {
	path := file
	if path == "" {
		if date == "" {
			return nil, fmt.Errorf("either --file or --date is required")
		}
		d, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		path = filepath.Join(cfg.DataDir, seeing.LogFileName(d))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seeing log: %w", err)
	}
	defer f.Close()

	ds, err := seeing.Parse(f, logger)
	if err != nil {
		return nil, err
	}
	ds.File = path
	if tenmin {
		ds.Decimate(10)
	}
	return ds, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-1-2", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-M-D: %w", s, err)
	}
	return d, nil
}

// trimOutliers drops values beyond the median plus five standard deviations
// before plotting, keeping a stray reading from stretching the axis.
func trimOutliers(values []float64) []float64 {
	summary, err := seeing.Summarize(values)
	if err != nil {
		return values
	}
	limit := summary.Median + 5*summary.Std

	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if v < limit {
			kept = append(kept, v)
		}
	}
	return kept
}
