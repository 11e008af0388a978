package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// rootFlags holds the persistent flag values; loadRunConfig folds them
// over the config file.
type rootFlags struct {
	configPath string
	curves     int
	workers    int
	trailLimit int
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "vennsearch",
		Short:         "Enumerate simple monotone Venn diagrams",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to YAML config file")
	pf.IntVarP(&flags.curves, "curves", "n", 0, "number of curves (3..6)")
	pf.IntVar(&flags.workers, "workers", 0, "parallel workers for sweep (0 = all cores)")
	pf.IntVar(&flags.trailLimit, "trail-limit", 0, "undo log capacity (0 = default)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newSearchCmd(flags),
		newSweepCmd(flags),
		newSignaturesCmd(flags),
	)
	return cmd
}

// loadRunConfig merges the config file with any flags the user set.
func loadRunConfig(cmd *cobra.Command, flags *rootFlags) (config, error) {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("curves") {
		cfg.Curves = flags.curves
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flags.workers
	}
	if cmd.Flags().Changed("trail-limit") {
		cfg.TrailLimit = flags.trailLimit
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = flags.verbose
	}
	return cfg, cfg.validate()
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
