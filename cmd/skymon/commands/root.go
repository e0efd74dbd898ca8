package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thacher/skymon/internal/config"
	"github.com/thacher/skymon/internal/render"
)

var (
	logLevel string

	logger  *slog.Logger
	cfg     config.Config
	outputs *render.Outputs
)

func Execute() error {
	root := &cobra.Command{
		Use:           "skymon",
		Short:         "Observatory sky monitoring toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			switch logLevel {
			case "debug":
				level = slog.LevelDebug
			case "warn":
				level = slog.LevelWarn
			case "error":
				level = slog.LevelError
			}
			logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))

			cfg = config.Load(logger)
			outputs = render.NewOutputs(cfg.OutDir, cfg.MaxPlots)
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(seeingCmd(), skymapCmd(), sunpathCmd())

	if err := root.Execute(); err != nil {
		if logger != nil {
			logger.Error("command failed", "error", err)
		}
		return err
	}
	return nil
}
