package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/saisearch/internal/search"
	"github.com/cwbudde/saisearch/internal/store"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var summarizeDir string

var summarizeCmd = &cobra.Command{
	Use:   "summarize [run-id]",
	Short: "Summarize an exported run",
	Long:  `Loads an exported run and prints its parameters, per-level counts and statistics over the valid solutions.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeDir, "data-dir", "", "Data directory the run was exported to (defaults to output.dir)")
	rootCmd.AddCommand(summarizeCmd)
}

// columnStats summarizes one numeric column of a solution set.
type columnStats struct {
	Name   string
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func summarizeSolutions(solutions []search.Candidate) []columnStats {
	if len(solutions) == 0 {
		return nil
	}

	columns := []struct {
		name string
		get  func(search.Candidate) float64
	}{
		{"injection_rate", func(c search.Candidate) float64 { return c.InjectionRate }},
		{"cooling", func(c search.Candidate) float64 { return c.CumulativeCooling }},
		{"ozone_impact", func(c search.Candidate) float64 { return c.CumulativeOzoneImpact }},
	}

	out := make([]columnStats, 0, len(columns))
	for _, col := range columns {
		values := make([]float64, len(solutions))
		for i, c := range solutions {
			values[i] = col.get(c)
		}

		mean, std := stat.MeanStdDev(values, nil)
		if len(values) < 2 {
			std = 0
		}

		out = append(out, columnStats{
			Name:   col.name,
			Mean:   mean,
			StdDev: std,
			Min:    floats.Min(values),
			Max:    floats.Max(values),
		})
	}
	return out
}

func runSummarize(cmd *cobra.Command, args []string) error {
	dir := summarizeDir
	if dir == "" {
		dir = cfg.Output.Dir
	}
	if dir == "" {
		return fmt.Errorf("no data directory: pass --data-dir or set output.dir")
	}

	fsStore, err := store.NewFSStore(dir)
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}

	record, err := fsStore.LoadRun(args[0])
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	solutions, err := fsStore.LoadSolutions(record.ID)
	if err != nil {
		return fmt.Errorf("failed to load solutions: %w", err)
	}

	return writeSummary(cmd.OutOrStdout(), record, solutions)
}

func writeSummary(out io.Writer, record *store.RunRecord, solutions []search.Candidate) error {
	p := record.Params
	fmt.Fprintf(out, "Run: %s\n", record.ID)
	fmt.Fprintf(out, "Created: %s\n", record.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Target cooling: %.2f°C, max ozone depletion: %.2f%%, injection limit: %.2f Tg/year, years: %g\n\n",
		p.TargetCooling, p.MaxOzoneDepletion, p.TotalInjectionLimit, p.SimulationYears)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tLATITUDE\tLONGITUDE\tALTITUDE\tINJECTION\tEVALUATIONS\tACCEPTED")
	for _, lvl := range record.Levels {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%d\n",
			lvl.Index,
			lvl.Bounds.Latitude,
			lvl.Bounds.Longitude,
			lvl.Bounds.Altitude,
			lvl.Bounds.Injection,
			lvl.Evaluations,
			lvl.Accepted,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stats := summarizeSolutions(solutions)
	if len(stats) == 0 {
		fmt.Fprintln(out, "\nNo valid solution found.")
		return nil
	}

	fmt.Fprintf(out, "\nSolutions: %d of %d evaluations\n\n", len(solutions), record.Evaluations)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tMEAN\tSTDDEV\tMIN\tMAX")
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\n", s.Name, s.Mean, s.StdDev, s.Min, s.Max)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if record.Best != nil {
		fmt.Fprint(out, "\nBest: ")
		fmt.Fprint(out, formatCandidate(*record.Best))
	}
	if record.Refined != nil {
		fmt.Fprint(out, "Refined: ")
		fmt.Fprint(out, formatCandidate(*record.Refined))
	}
	return nil
}
