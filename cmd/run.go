package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/saisearch/internal/opt"
	"github.com/cwbudde/saisearch/internal/search"
	"github.com/cwbudde/saisearch/internal/store"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the deployment search",
	Long: `Runs the range-narrowing search, prints every valid solution and the best one,
and optionally exports the run to a data directory.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	f := runCmd.Flags()
	f.Float64("target-cooling", 0.5, "Desired cooling in °C")
	f.Float64("max-ozone", 50, "Maximum acceptable ozone depletion in %")
	f.Float64("injection-limit", 10, "Total injection limit in Tg/year")
	f.Float64("years", 2, "Number of simulation years (search levels)")
	f.Int("workers", 1, "Goroutines per level sweep (1 = sequential)")
	f.Bool("refine", false, "Polish the result with the mayfly optimizer")
	f.Int("refine-iters", 200, "Mayfly iterations")
	f.Int("refine-pop", 30, "Mayfly population size (>= 20)")
	f.Int64("seed", 42, "Mayfly random seed")
	f.String("out", "", "Export the run to this data directory")
	f.Int("max-print", 0, "Print at most N solutions (0 = all)")

	mustBind(v, "search.target_cooling", f.Lookup("target-cooling"))
	mustBind(v, "search.max_ozone_depletion", f.Lookup("max-ozone"))
	mustBind(v, "search.total_injection_limit", f.Lookup("injection-limit"))
	mustBind(v, "search.simulation_years", f.Lookup("years"))
	mustBind(v, "search.workers", f.Lookup("workers"))
	mustBind(v, "refine.enabled", f.Lookup("refine"))
	mustBind(v, "refine.iterations", f.Lookup("refine-iters"))
	mustBind(v, "refine.population", f.Lookup("refine-pop"))
	mustBind(v, "refine.seed", f.Lookup("seed"))
	mustBind(v, "output.dir", f.Lookup("out"))
	mustBind(v, "output.max_print", f.Lookup("max-print"))

	rootCmd.AddCommand(runCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	p := cfg.Search.Params()
	bounds := search.DefaultBounds(p.TotalInjectionLimit)

	slog.Info("Starting search",
		"target_cooling", p.TargetCooling,
		"max_ozone_depletion", p.MaxOzoneDepletion,
		"total_injection_limit", p.TotalInjectionLimit,
		"simulation_years", p.SimulationYears,
		"workers", cfg.Search.Workers,
	)

	start := time.Now()
	result := search.Optimize(p,
		search.WithBounds(bounds),
		search.WithWorkers(cfg.Search.Workers),
		search.WithLogger(logger),
	)

	var refined *search.Candidate
	if cfg.Refine.Enabled {
		optimizer := opt.NewMayfly(cfg.Refine.Iterations, cfg.Refine.Population, cfg.Refine.Seed)
		refined = search.Refine(optimizer, p, bounds)
	}
	elapsed := time.Since(start)

	if err := writeReport(cmd.OutOrStdout(), result, refined, cfg.Refine.Enabled, cfg.Output.MaxPrint); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	slog.Info("Search finished",
		"elapsed", elapsed,
		"evaluations", result.Evaluations,
		"solutions", len(result.Solutions),
		"evaluations_per_second", fmt.Sprintf("%.0f", float64(result.Evaluations)/elapsed.Seconds()),
	)

	if cfg.Output.Dir == "" {
		return nil
	}

	fsStore, err := store.NewFSStore(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("failed to create run store: %w", err)
	}

	record := store.NewRunRecord(p, bounds, result)
	record.Refined = refined
	if err := fsStore.SaveRun(record, result.Solutions); err != nil {
		return fmt.Errorf("failed to export run: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWrote run %s to %s\n", record.ID, fsStore.RunDir(record.ID))
	return nil
}
