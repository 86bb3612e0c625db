package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cwbudde/saisearch/internal/search"
)

// FSStore implements Store on the filesystem. Runs are laid out as
// <baseDir>/runs/<runID>/{run.json,solutions.jsonl}.
type FSStore struct {
	baseDir string
}

// NewFSStore creates a new filesystem-based store.
// The baseDir will be created if it doesn't exist.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FSStore{baseDir: baseDir}, nil
}

func (fs *FSStore) runDir(runID string) string {
	return filepath.Join(fs.baseDir, "runs", runID)
}

func (fs *FSStore) recordPath(runID string) string {
	return filepath.Join(fs.runDir(runID), "run.json")
}

func (fs *FSStore) solutionsPath(runID string) string {
	return filepath.Join(fs.runDir(runID), "solutions.jsonl")
}

// RunDir returns the directory holding a run's files.
func (fs *FSStore) RunDir(runID string) string {
	return fs.runDir(runID)
}

// SaveRun writes solutions.jsonl, then atomically writes run.json.
func (fs *FSStore) SaveRun(record *RunRecord, solutions []search.Candidate) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid run record: %w", err)
	}
	if len(solutions) != record.SolutionCount {
		return fmt.Errorf("record declares %d solutions, got %d", record.SolutionCount, len(solutions))
	}

	dir := fs.runDir(record.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	sw, err := NewSolutionWriter(fs.solutionsPath(record.ID))
	if err != nil {
		return err
	}
	for _, c := range solutions {
		if err := sw.Write(c); err != nil {
			sw.Close()
			return err
		}
	}
	if err := sw.Close(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize run record: %w", err)
	}

	tempPath := fs.recordPath(record.ID) + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp run record: %w", err)
	}

	finalPath := fs.recordPath(record.ID)
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename run record: %w", err)
	}

	slog.Debug("Run saved", "run_id", record.ID, "path", dir, "solutions", len(solutions))
	return nil
}

// LoadRun reads run.json for the given run.
func (fs *FSStore) LoadRun(runID string) (*RunRecord, error) {
	if runID == "" {
		return nil, fmt.Errorf("runID cannot be empty")
	}

	path := fs.recordPath(runID)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &NotFoundError{RunID: runID}
	} else if err != nil {
		return nil, fmt.Errorf("failed to read run record: %w", err)
	}

	var record RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to deserialize run record: %w", err)
	}

	slog.Debug("Run loaded", "run_id", runID, "path", path)
	return &record, nil
}

// LoadSolutions reads solutions.jsonl for the given run.
func (fs *FSStore) LoadSolutions(runID string) ([]search.Candidate, error) {
	if runID == "" {
		return nil, fmt.Errorf("runID cannot be empty")
	}

	path := fs.solutionsPath(runID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &NotFoundError{RunID: runID}
	}

	sr, err := NewSolutionReader(path)
	if err != nil {
		return nil, err
	}
	defer sr.Close()

	return sr.ReadAll()
}
