package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thacher/skymon/internal/ephem"
	"github.com/thacher/skymon/internal/render"
)

func sunpathCmd() *cobra.Command {
	var (
		startStr string
		endStr   string
		step     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sunpath",
		Short: "Plot solar altitude and azimuth over a time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now().UTC().Truncate(time.Hour)
			end := start.Add(24 * time.Hour)

			var err error
			if startStr != "" {
				if start, err = parseDateTime(startStr); err != nil {
					return err
				}
				end = start.Add(24 * time.Hour)
			}
			if endStr != "" {
				if end, err = parseDateTime(endStr); err != nil {
					return err
				}
			}

			samples, err := ephem.Track(cfg.Observer, start, end, step)
			if err != nil {
				return err
			}

			alts := make([]float64, len(samples))
			azs := make([]float64, len(samples))
			for i, s := range samples {
				alts[i] = s.AltDeg
				azs[i] = s.AzDeg
			}

			path, err := outputs.Path("sun_path", time.Now())
			if err != nil {
				return err
			}
			err = render.Scatter(alts, azs, render.ScatterConfig{
				Title:  "Sun path",
				XLabel: "altitude (deg)",
				YLabel: "azimuth (deg)",
			}, path)
			if err != nil {
				return err
			}
			if err := outputs.Prune("sun_path"); err != nil {
				logger.Warn("pruning sun path plots", "error", err)
			}

			last := samples[len(samples)-1]
			fmt.Printf("%s alt=%.4f az=%.4f ra=%.4f dec=%.4f\n",
				last.Time.Format(time.RFC3339), last.AltDeg, last.AzDeg, last.RADeg, last.DecDeg)
			fmt.Printf("wrote %s (%d samples)\n", path, len(samples))
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "start time, RFC3339 or YYYY-M-D (default: now)")
	cmd.Flags().StringVar(&endStr, "end", "", "end time, RFC3339 or YYYY-M-D (default: start + 24h)")
	cmd.Flags().DurationVar(&step, "step", time.Hour, "sampling step")
	return cmd
}

func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := parseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, want RFC3339 or YYYY-M-D", s)
	}
	return t, nil
}
