// Package search implements the range-narrowing search over latitude,
// longitude, altitude and injection rate.
package search

import (
	"log/slog"
	"math"

	"github.com/cwbudde/saisearch/internal/atmos"
	"golang.org/x/sync/errgroup"
)

// Option configures an Optimize call.
type Option func(*options)

type options struct {
	bounds    *Bounds
	workers   int
	logger    *slog.Logger
	evaluator Evaluator
}

// Evaluator maps a deployment point to cumulative cooling and ozone impact.
type Evaluator func(latitude, longitude, altitude int, injectionRate float64) (cooling, ozoneImpact float64)

// WithBounds overrides the top-level search ranges.
func WithBounds(b Bounds) Option {
	return func(o *options) {
		o.bounds = &b
	}
}

// WithWorkers evaluates the spatial cells of each level on n goroutines.
// Output is identical to the sequential sweep.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the logger used for level and completion messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithEvaluator replaces the atmospheric model.
func WithEvaluator(e Evaluator) Option {
	return func(o *options) {
		o.evaluator = e
	}
}

// Optimize runs the narrowing search for p.
//
// Each level sweeps a 3x3x3 spatial grid crossed with the injection-rate
// sequence, collects accepted candidates, then halves every range toward its
// lower bound. The search stops when the years run out or the injection
// range no longer has a positive upper bound.
//
// Best is replaced by the lowest-ozone candidate of every level that accepts
// at least one point; levels without acceptances keep the carried best.
func Optimize(p Params, opts ...Option) *Result {
	o := options{
		workers:   1,
		logger:    slog.Default(),
		evaluator: atmos.Evaluate,
	}
	for _, opt := range opts {
		opt(&o)
	}

	bounds := DefaultBounds(p.TotalInjectionLimit)
	if o.bounds != nil {
		bounds = *o.bounds
	}

	result := &Result{
		Solutions: []Candidate{},
		Levels:    []Level{},
	}

	var best *Candidate
	yearsLeft := p.SimulationYears

	for index := 0; yearsLeft > 0 && bounds.Injection.High > 0; index++ {
		accepted, evaluations := sweep(bounds, p, o.evaluator, o.workers)

		level := Level{
			Index:       index,
			YearsLeft:   yearsLeft,
			Bounds:      bounds,
			Evaluations: evaluations,
			Accepted:    len(accepted),
		}

		minOzone := math.Inf(1)
		for _, c := range accepted {
			if c.CumulativeOzoneImpact < minOzone {
				minOzone = c.CumulativeOzoneImpact
				levelBest := c
				level.Best = &levelBest
			}
		}
		if level.Best != nil {
			best = level.Best
		}

		result.Solutions = append(result.Solutions, accepted...)
		result.Evaluations += evaluations
		result.Levels = append(result.Levels, level)

		o.logger.Debug("Search level complete",
			"level", index,
			"years_left", yearsLeft,
			"latitude", bounds.Latitude.String(),
			"longitude", bounds.Longitude.String(),
			"altitude", bounds.Altitude.String(),
			"injection", bounds.Injection.String(),
			"evaluations", evaluations,
			"accepted", len(accepted),
		)

		bounds = bounds.Narrow()
		yearsLeft--
	}

	if best != nil {
		b := *best
		result.Best = &b
	}

	o.logger.Info("Search complete",
		"levels", len(result.Levels),
		"evaluations", result.Evaluations,
		"solutions", len(result.Solutions),
		"found", result.Best != nil,
	)

	return result
}

// spatialAxis returns {Low, Mid, High}; duplicates are kept.
func spatialAxis(r Range[int]) [3]int {
	return [3]int{r.Low, midInt(r), r.High}
}

// injectionSteps returns Low, Low+step, ... while the accumulated value
// stays <= High. The accumulation is not snapped, so High itself may be missed.
func injectionSteps(r Range[float64]) []float64 {
	var steps []float64
	for rate := r.Low; rate <= r.High; rate += InjectionStep {
		steps = append(steps, rate)
	}
	return steps
}

type cell struct {
	latitude, longitude, altitude int
}

// cells lists the spatial grid in latitude, longitude, altitude order.
func cells(b Bounds) []cell {
	out := make([]cell, 0, 27)
	for _, lat := range spatialAxis(b.Latitude) {
		for _, lon := range spatialAxis(b.Longitude) {
			for _, alt := range spatialAxis(b.Altitude) {
				out = append(out, cell{lat, lon, alt})
			}
		}
	}
	return out
}

// sweep evaluates one level and returns accepted candidates in evaluation
// order plus the number of model evaluations.
func sweep(b Bounds, p Params, eval Evaluator, workers int) ([]Candidate, int) {
	grid := cells(b)
	steps := injectionSteps(b.Injection)
	perCell := make([][]Candidate, len(grid))

	if workers <= 1 {
		for i, c := range grid {
			perCell[i] = sweepCell(c, steps, p, eval)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(workers)
		for i, c := range grid {
			g.Go(func() error {
				perCell[i] = sweepCell(c, steps, p, eval)
				return nil
			})
		}
		_ = g.Wait() // workers never fail
	}

	var accepted []Candidate
	for _, cs := range perCell {
		accepted = append(accepted, cs...)
	}
	return accepted, len(grid) * len(steps)
}

func sweepCell(c cell, steps []float64, p Params, eval Evaluator) []Candidate {
	var accepted []Candidate
	for _, rate := range steps {
		cooling, ozone := eval(c.latitude, c.longitude, c.altitude, rate)
		if !p.Accepts(cooling, ozone) {
			continue
		}
		accepted = append(accepted, Candidate{
			Latitude:              c.latitude,
			Longitude:             c.longitude,
			Altitude:              c.altitude,
			InjectionRate:         rate,
			CumulativeCooling:     cooling,
			CumulativeOzoneImpact: ozone,
		})
	}
	return accepted
}
