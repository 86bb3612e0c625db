package search

import "fmt"

// InjectionStep is the injection-rate increment (Tg/year) of the grid sweep.
const InjectionStep = 0.05

// Range is a closed interval [Low, High] along one search dimension.
type Range[T int | float64] struct {
	Low  T `json:"low"`
	High T `json:"high"`
}

// Contains reports whether o lies entirely within r.
func (r Range[T]) Contains(o Range[T]) bool {
	return o.Low >= r.Low && o.High <= r.High
}

func (r Range[T]) String() string {
	return fmt.Sprintf("[%v, %v]", r.Low, r.High)
}

// Bounds holds the four live search ranges.
type Bounds struct {
	Latitude  Range[int]     `json:"latitude"`
	Longitude Range[int]     `json:"longitude"`
	Altitude  Range[int]     `json:"altitude"`
	Injection Range[float64] `json:"injection"`
}

// DefaultBounds returns the top-level ranges: latitude [-60, 60],
// longitude [-180, 180], altitude [15, 25] km and injection
// [0, totalInjectionLimit] Tg/year.
func DefaultBounds(totalInjectionLimit float64) Bounds {
	return Bounds{
		Latitude:  Range[int]{Low: -60, High: 60},
		Longitude: Range[int]{Low: -180, High: 180},
		Altitude:  Range[int]{Low: 15, High: 25},
		Injection: Range[float64]{Low: 0, High: totalInjectionLimit},
	}
}

// Narrow keeps the lower half [Low, Mid] of every range.
func (b Bounds) Narrow() Bounds {
	return Bounds{
		Latitude:  Range[int]{Low: b.Latitude.Low, High: midInt(b.Latitude)},
		Longitude: Range[int]{Low: b.Longitude.Low, High: midInt(b.Longitude)},
		Altitude:  Range[int]{Low: b.Altitude.Low, High: midInt(b.Altitude)},
		Injection: Range[float64]{Low: b.Injection.Low, High: (b.Injection.Low + b.Injection.High) / 2},
	}
}

// Contains reports whether every range of o lies within the matching range of b.
func (b Bounds) Contains(o Bounds) bool {
	return b.Latitude.Contains(o.Latitude) &&
		b.Longitude.Contains(o.Longitude) &&
		b.Altitude.Contains(o.Altitude) &&
		b.Injection.Contains(o.Injection)
}

// midInt truncates toward zero, like the reference integer midpoint.
func midInt(r Range[int]) int {
	return (r.Low + r.High) / 2
}

// Params are the four scalars supplied by the driver.
type Params struct {
	TargetCooling       float64 `json:"targetCooling"`       // °C
	MaxOzoneDepletion   float64 `json:"maxOzoneDepletion"`   // %
	TotalInjectionLimit float64 `json:"totalInjectionLimit"` // Tg/year
	SimulationYears     float64 `json:"simulationYears"`     // recursion levels
}

// Accepts reports whether a cooling/ozone pair meets the acceptance criteria.
func (p Params) Accepts(cooling, ozoneImpact float64) bool {
	return cooling >= p.TargetCooling && ozoneImpact <= p.MaxOzoneDepletion
}

// Candidate is one evaluated deployment configuration.
type Candidate struct {
	Latitude              int     `json:"latitude"`
	Longitude             int     `json:"longitude"`
	Altitude              int     `json:"altitude"`
	InjectionRate         float64 `json:"injectionRate"`
	CumulativeCooling     float64 `json:"cumulativeCooling"`
	CumulativeOzoneImpact float64 `json:"cumulativeOzoneImpact"`
}

// Level describes one iteration of the narrowing search.
type Level struct {
	Index       int        `json:"index"`
	YearsLeft   float64    `json:"yearsLeft"`
	Bounds      Bounds     `json:"bounds"`
	Evaluations int        `json:"evaluations"`
	Accepted    int        `json:"accepted"`
	Best        *Candidate `json:"best,omitempty"` // lowest ozone impact accepted at this level
}

// Result is the output of one Optimize call.
type Result struct {
	// Solutions holds every accepted candidate in evaluation order.
	Solutions []Candidate
	// Best is nil when no candidate was ever accepted.
	Best        *Candidate
	Levels      []Level
	Evaluations int
}
