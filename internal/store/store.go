// Package store exports finished search runs: a run.json record and a
// solutions.jsonl file holding every accepted candidate.
package store

import "github.com/cwbudde/saisearch/internal/search"

// Store defines the interface for exporting and reading back search runs.
//
// Error handling conventions:
//   - Return ErrNotFound if the run doesn't exist (for Load*)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveRun writes the run record and its solutions. The record is written
	// with a temp file + rename so readers never see a partial run.json.
	SaveRun(record *RunRecord, solutions []search.Candidate) error

	// LoadRun reads the record of a previously saved run.
	LoadRun(runID string) (*RunRecord, error)

	// LoadSolutions reads every solution of a run in evaluation order.
	LoadSolutions(runID string) ([]search.Candidate, error)
}

// ErrNotFound is returned when a requested run does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing run.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "run not found: " + e.RunID
	}
	return "run not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
