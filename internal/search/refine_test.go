package search

import (
	"testing"

	"github.com/cwbudde/saisearch/internal/opt"
)

// scanOptimizer evaluates the objective along the last dimension with every
// other dimension pinned to its lower bound.
type scanOptimizer struct {
	steps int
}

func (s scanOptimizer) Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64) {
	var best []float64
	bestCost := 0.0
	for i := 0; i <= s.steps; i++ {
		x := append([]float64(nil), lower...)
		x[dim-1] = lower[dim-1] + float64(i)*(upper[dim-1]-lower[dim-1])/float64(s.steps)
		cost := eval(x)
		if best == nil || cost < bestCost {
			best, bestCost = x, cost
		}
	}
	return best, bestCost
}

func TestRefine_FindsFeasibleMinimum(t *testing.T) {
	p := Params{TargetCooling: 0.5, MaxOzoneDepletion: 50, TotalInjectionLimit: 10, SimulationYears: 2}

	got := Refine(scanOptimizer{steps: 10000}, p, DefaultBounds(10))
	if got == nil {
		t.Fatal("expected a refined candidate")
	}

	if !p.Accepts(got.CumulativeCooling, got.CumulativeOzoneImpact) {
		t.Errorf("refined candidate not acceptable: %+v", got)
	}

	// Finer than the 0.05 grid, so it beats the grid best (2.1 Tg/year).
	if got.InjectionRate >= 2.1 {
		t.Errorf("injection rate %v should undercut the grid best", got.InjectionRate)
	}
	if got.Latitude != -60 || got.Longitude != -180 || got.Altitude != 15 {
		t.Errorf("unexpected location %+v", got)
	}
}

func TestRefine_Infeasible(t *testing.T) {
	p := Params{TargetCooling: 1000, MaxOzoneDepletion: 50, TotalInjectionLimit: 10, SimulationYears: 1}

	if got := Refine(scanOptimizer{steps: 100}, p, DefaultBounds(10)); got != nil {
		t.Errorf("expected nil for unreachable target, got %+v", got)
	}
}

func TestRefine_EmptyInjectionRange(t *testing.T) {
	p := Params{TargetCooling: 0.5, MaxOzoneDepletion: 50}

	if got := Refine(scanOptimizer{steps: 10}, p, DefaultBounds(0)); got != nil {
		t.Errorf("expected nil for empty injection range, got %+v", got)
	}
}

func TestRefine_Mayfly(t *testing.T) {
	p := Params{TargetCooling: 0.5, MaxOzoneDepletion: 50, TotalInjectionLimit: 10, SimulationYears: 1}
	b := DefaultBounds(10)

	got := Refine(opt.NewMayfly(60, opt.MinPopulation, 42), p, b)
	if got == nil {
		t.Fatal("expected mayfly to find a feasible point")
	}
	if got.Latitude < b.Latitude.Low || got.Latitude > b.Latitude.High ||
		got.Longitude < b.Longitude.Low || got.Longitude > b.Longitude.High ||
		got.Altitude < b.Altitude.Low || got.Altitude > b.Altitude.High ||
		got.InjectionRate < b.Injection.Low || got.InjectionRate > b.Injection.High {
		t.Errorf("refined candidate outside bounds: %+v", got)
	}
}
