package store

import (
	"time"

	"github.com/cwbudde/saisearch/internal/search"
	"github.com/google/uuid"
)

// RunRecord describes one finished search. The solutions themselves live in
// solutions.jsonl next to the record.
type RunRecord struct {
	// ID is the unique identifier of this run
	ID string `json:"id"`

	CreatedAt time.Time     `json:"createdAt"`
	Params    search.Params `json:"params"`
	Bounds    search.Bounds `json:"bounds"`

	// Evaluations is the number of model evaluations across all levels
	Evaluations int `json:"evaluations"`

	// SolutionCount is the number of lines in solutions.jsonl
	SolutionCount int `json:"solutionCount"`

	// Best is nil when no valid solution was found
	Best *search.Candidate `json:"best,omitempty"`

	// Refined is the optional continuous polish of the search
	Refined *search.Candidate `json:"refined,omitempty"`

	Levels []search.Level `json:"levels"`
}

// NewRunRecord creates a record with a fresh run ID from a search result.
func NewRunRecord(p search.Params, b search.Bounds, res *search.Result) *RunRecord {
	return &RunRecord{
		ID:            uuid.New().String(),
		CreatedAt:     time.Now(),
		Params:        p,
		Bounds:        b,
		Evaluations:   res.Evaluations,
		SolutionCount: len(res.Solutions),
		Best:          res.Best,
		Levels:        res.Levels,
	}
}

// Validate checks if the record is internally consistent.
func (r *RunRecord) Validate() error {
	if r.ID == "" {
		return &ValidationError{Field: "ID", Reason: "cannot be empty"}
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		return &ValidationError{Field: "ID", Reason: "must be a UUID"}
	}
	if r.CreatedAt.IsZero() {
		return &ValidationError{Field: "CreatedAt", Reason: "cannot be zero"}
	}
	if r.SolutionCount < 0 {
		return &ValidationError{Field: "SolutionCount", Reason: "cannot be negative"}
	}
	if r.Evaluations < r.SolutionCount {
		return &ValidationError{Field: "Evaluations", Reason: "cannot be less than SolutionCount"}
	}
	if (r.Best == nil) != (r.SolutionCount == 0) {
		return &ValidationError{Field: "Best", Reason: "must be set exactly when solutions exist"}
	}

	accepted := 0
	for _, lvl := range r.Levels {
		accepted += lvl.Accepted
	}
	if accepted != r.SolutionCount {
		return &ValidationError{Field: "Levels", Reason: "accepted counts do not sum to SolutionCount"}
	}
	return nil
}

// ValidationError represents a run record validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
