package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thacher/skymon/internal/render"
	"github.com/thacher/skymon/internal/skymap"
)

func skymapCmd() *cobra.Command {
	var (
		fitsPath  string
		m0        float64
		fwhmDeg   float64
		arcPerPix float64
		centerStr string
		markerStr string
		markerR   int
		vmin      float64
		vmax      float64
	)

	cmd := &cobra.Command{
		Use:   "skymap",
		Short: "Reduce a calibration frame to a sky-brightness map",
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := skymap.ReadFITS(fitsPath)
			if err != nil {
				return err
			}
			logger.Info("loaded calibration frame", "file", fitsPath, "width", img.Width, "height", img.Height)

			params := skymap.Params{
				M0:        m0,
				FWHMDeg:   fwhmDeg,
				ArcPerPix: arcPerPix,
				CenterX:   -1,
				CenterY:   -1,
			}
			if centerStr != "" {
				cx, cy, err := parsePoint(centerStr)
				if err != nil {
					return fmt.Errorf("invalid --center: %w", err)
				}
				params.CenterX, params.CenterY = cx, cy
			}

			m, err := skymap.Build(img, params)
			if err != nil {
				return err
			}

			hmCfg := render.HeatMapConfig{
				Title: "Sky brightness",
				Min:   vmin,
				Max:   vmax,
			}
			if markerStr != "" {
				mx, my, err := parsePoint(markerStr)
				if err != nil {
					return fmt.Errorf("invalid --marker: %w", err)
				}
				skymap.MaskCircle(m.Mag, m.Width, mx, my, markerR)
				hmCfg.Marker = &[2]float64{float64(mx), float64(my)}
			}

			path, err := outputs.Path("sky_brightness", time.Now())
			if err != nil {
				return err
			}
			if err := render.HeatMap(m.Mag, m.Width, m.Height, hmCfg, path); err != nil {
				return err
			}
			if err := outputs.Prune("sky_brightness"); err != nil {
				logger.Warn("pruning sky maps", "error", err)
			}

			fmt.Printf("weighted mean flux: %.2f\n", m.WeightedMean)
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&fitsPath, "fits", "", "calibration FITS file (required)")
	cmd.Flags().Float64Var(&m0, "m0", 20.78, "photometer zero point, mag/sq-arcsec")
	cmd.Flags().Float64Var(&fwhmDeg, "fwhm", 20, "weighting kernel FWHM, degrees of sky")
	cmd.Flags().Float64Var(&arcPerPix, "arcppx", 383.65, "plate scale, sq-arcsec per pixel")
	cmd.Flags().StringVar(&centerStr, "center", "", "kernel center as x,y (default: image center)")
	cmd.Flags().StringVar(&markerStr, "marker", "", "photometer aim point as x,y (masked and overlaid)")
	cmd.Flags().IntVar(&markerR, "marker-radius", 50, "mask radius around the aim point, pixels")
	cmd.Flags().Float64Var(&vmin, "vmin", 19.2, "color scale minimum, mag/sq-arcsec")
	cmd.Flags().Float64Var(&vmax, "vmax", 21.6, "color scale maximum, mag/sq-arcsec")
	cobra.CheckErr(cmd.MarkFlagRequired("fits"))
	return cmd
}

func parsePoint(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
