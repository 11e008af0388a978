package main

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vennsearch/vennsearch/pkg/venn"
)

func newSweepCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Split the enumeration across degree signatures and run them in parallel",
		Long: `Sweep enumerates the canonical degree signatures for the curve count,
then searches each signature independently on a pool of workers. Totals
match a single-core search; only the work distribution differs.

Only five curves and up have a signature stage; smaller curve counts
fall back to a single search.`,
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
			if g.N < 5 {
				log.Info("no signature stage for this curve count, running single search")
				stats, err := venn.Enumerate(cmd.Context(), g, venn.SearchConfig{
					TrailLimit: cfg.TrailLimit,
					Logger:     log,
				}, nil)
				if err != nil {
					return err
				}
				printStats(cmd, stats)
				return nil
			}

			sigs := g.CanonicalSignatures()
			log.Info("sweep starting", "signatures", len(sigs), "workers", cfg.Workers)
			start := time.Now()

			total := venn.NewStats()
			var mu sync.Mutex

			workers := cfg.Workers
			if workers <= 0 {
				workers = runtime.NumCPU()
			}
			grp, ctx := errgroup.WithContext(cmd.Context())
			grp.SetLimit(workers)
			for _, sig := range sigs {
				sig := sig
				grp.Go(func() error {
					stats, err := venn.EnumerateSignature(ctx, g, sig, venn.SearchConfig{
						TrailLimit: cfg.TrailLimit,
						Logger:     log,
					}, nil)
					if err != nil {
						return err
					}
					if n := stats.Counts[venn.CountSolutions]; n > 0 {
						log.Debug("signature searched", "signature", fmt.Sprint(sig), "solutions", n)
					}
					mu.Lock()
					total.Add(stats)
					mu.Unlock()
					return nil
				})
			}
			if err := grp.Wait(); err != nil {
				return err
			}
			log.Info("sweep finished",
				"elapsed", time.Since(start),
				"solutions", total.Counts[venn.CountSolutions],
				"signatures", total.Counts[venn.CountSignatures],
			)
			printStats(cmd, total)
			return nil
		},
	}
	return cmd
}

func newSignaturesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "signatures",
		Short: "List the canonical degree signatures for a curve count",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(cmd, flags)
			if err != nil {
				return err
			}
			g, err := venn.NewGeometry(cfg.Curves)
			if err != nil {
				return err
			}
			if g.N < 5 {
				return fmt.Errorf("curve count %d has no signature stage", g.N)
			}
			sigs := g.CanonicalSignatures()
			for _, sig := range sigs {
				kind := g.CheckSignature(sig)
				fmt.Fprintf(cmd.OutOrStdout(), "%v  %s\n", sig, kind)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d signatures, total degree %d\n", len(sigs), g.TotalCentralDegree())
			return nil
		},
	}
}
