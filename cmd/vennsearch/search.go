package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vennsearch/vennsearch/pkg/venn"
)

func newSearchCmd(flags *rootFlags) *cobra.Command {
	var showSolutions bool
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run the full enumeration on a single core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(cmd, flags)
			if err != nil {
				return err
			}
			log := newLogger(cfg.Verbose)
			runID := uuid.NewString()
			log = log.With("run", runID, "curves", cfg.Curves)

			g, err := venn.NewGeometry(cfg.Curves)
			if err != nil {
				return err
			}

			var onSolution func(*venn.Search)
			if showSolutions {
				onSolution = func(s *venn.Search) {
					printSolution(cmd, s)
				}
			}

			log.Info("search starting")
			start := time.Now()
			stats, err := venn.Enumerate(cmd.Context(), g, venn.SearchConfig{
				TrailLimit: cfg.TrailLimit,
				Logger:     log,
			}, onSolution)
			if err != nil {
				return err
			}
			log.Info("search finished",
				"elapsed", time.Since(start),
				"solutions", stats.Counts[venn.CountSolutions],
				"signatures", stats.Counts[venn.CountSignatures],
				"backtracks", stats.Backtracks,
			)
			printStats(cmd, stats)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showSolutions, "solutions", false, "print each solution's face assignments")
	return cmd
}

func printStats(cmd *cobra.Command, stats *venn.Stats) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "solutions:  %d\n", stats.Counts[venn.CountSolutions])
	if n := stats.Counts[venn.CountSignatures]; n > 0 {
		fmt.Fprintf(out, "signatures: %d\n", n)
	}
	if n := stats.Counts[venn.CountEquivocal]; n > 0 {
		fmt.Fprintf(out, "equivocal:  %d\n", n)
	}
	fmt.Fprintf(out, "tries: %d  retries: %d  backtracks: %d  propagations: %d\n",
		stats.Tries, stats.Retries, stats.Backtracks, stats.Propagations)
}

func printSolution(cmd *cobra.Command, s *venn.Search) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "solution (signature %v):\n", s.Signature())
	for _, fa := range s.Assignments() {
		if fa.Cycle == nil {
			continue
		}
		fmt.Fprintf(out, "  %-8s %s\n", fa.Face, fa.Cycle)
	}
}
