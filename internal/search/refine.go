package search

import (
	"log/slog"
	"math"

	"github.com/cwbudde/saisearch/internal/atmos"
	"github.com/cwbudde/saisearch/internal/opt"
)

// refinePenalty is charged per violated constraint plus per unit of violation.
const refinePenalty = 1e3

// Refine polishes a deployment inside b with a continuous optimizer.
//
// The objective is the cumulative ozone impact plus a penalty for cooling
// below target and ozone above the cap. Spatial coordinates are rounded to
// whole degrees and kilometres. Refine returns nil if the polished point does
// not satisfy p.Accepts or the injection range is empty.
func Refine(optimizer opt.Optimizer, p Params, b Bounds) *Candidate {
	if b.Injection.High <= 0 {
		return nil
	}

	lower := []float64{
		float64(b.Latitude.Low),
		float64(b.Longitude.Low),
		float64(b.Altitude.Low),
		b.Injection.Low,
	}
	upper := []float64{
		float64(b.Latitude.High),
		float64(b.Longitude.High),
		float64(b.Altitude.High),
		b.Injection.High,
	}

	objective := func(x []float64) float64 {
		c := candidateAt(x)
		cost := c.CumulativeOzoneImpact
		if shortfall := p.TargetCooling - c.CumulativeCooling; shortfall > 0 {
			cost += refinePenalty * (1 + shortfall)
		}
		if excess := c.CumulativeOzoneImpact - p.MaxOzoneDepletion; excess > 0 {
			cost += refinePenalty * (1 + excess)
		}
		return cost
	}

	x, cost := optimizer.Run(objective, lower, upper, len(lower))
	c := candidateAt(x)

	if !p.Accepts(c.CumulativeCooling, c.CumulativeOzoneImpact) {
		slog.Debug("Refined point rejected", "cost", cost, "cooling", c.CumulativeCooling, "ozone", c.CumulativeOzoneImpact)
		return nil
	}

	slog.Debug("Refined point accepted", "cost", cost, "injection_rate", c.InjectionRate)
	return &c
}

func candidateAt(x []float64) Candidate {
	lat := int(math.Round(x[0]))
	lon := int(math.Round(x[1]))
	alt := int(math.Round(x[2]))
	rate := x[3]

	cooling, ozone := atmos.Evaluate(lat, lon, alt, rate)
	return Candidate{
		Latitude:              lat,
		Longitude:             lon,
		Altitude:              alt,
		InjectionRate:         rate,
		CumulativeCooling:     cooling,
		CumulativeOzoneImpact: ozone,
	}
}
