package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/saisearch/internal/search"
	"github.com/google/go-cmp/cmp"
)

// setupTestStore creates a temporary directory and returns an FSStore for testing.
func setupTestStore(t *testing.T) (*FSStore, string) {
	t.Helper()

	tempDir := t.TempDir()
	store, err := NewFSStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}

	return store, tempDir
}

func testSolutions() []search.Candidate {
	return []search.Candidate{
		{Latitude: -60, Longitude: -180, Altitude: 15, InjectionRate: 2.1000000000000005, CumulativeCooling: 0.5095383228245391, CumulativeOzoneImpact: 0.2547691614122696},
		{Latitude: -60, Longitude: -180, Altitude: 15, InjectionRate: 2.1500000000000004, CumulativeCooling: 0.5341, CumulativeOzoneImpact: 0.26705},
		{Latitude: 0, Longitude: 0, Altitude: 20, InjectionRate: 5.000000000000001, CumulativeCooling: 2.8885, CumulativeOzoneImpact: 1.4443},
	}
}

// createTestRecord builds a consistent record for the given solutions.
func createTestRecord(solutions []search.Candidate) *RunRecord {
	p := search.Params{TargetCooling: 0.5, MaxOzoneDepletion: 50, TotalInjectionLimit: 10, SimulationYears: 1}
	res := &search.Result{
		Solutions:   solutions,
		Evaluations: 5400,
		Levels: []search.Level{
			{Index: 0, YearsLeft: 1, Bounds: search.DefaultBounds(10), Evaluations: 5400, Accepted: len(solutions)},
		},
	}
	if len(solutions) > 0 {
		best := solutions[0]
		res.Best = &best
	}
	return NewRunRecord(p, search.DefaultBounds(10), res)
}

func TestNewFSStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewFSStore(dir)
	if err != nil {
		t.Fatalf("NewFSStore failed: %v", err)
	}
	if store == nil {
		t.Fatal("Expected non-nil store")
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Fatal("Base directory was not created")
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	store, tempDir := setupTestStore(t)

	solutions := testSolutions()
	record := createTestRecord(solutions)

	if err := store.SaveRun(record, solutions); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	recordPath := filepath.Join(tempDir, "runs", record.ID, "run.json")
	if _, err := os.Stat(recordPath); err != nil {
		t.Fatalf("run.json not created: %v", err)
	}
	if _, err := os.Stat(recordPath + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temp file should not exist after save")
	}

	loaded, err := store.LoadRun(record.ID)
	if err != nil {
		t.Fatalf("LoadRun failed: %v", err)
	}
	if !loaded.CreatedAt.Equal(record.CreatedAt) {
		t.Errorf("CreatedAt mismatch: %v vs %v", loaded.CreatedAt, record.CreatedAt)
	}
	loaded.CreatedAt = record.CreatedAt
	if diff := cmp.Diff(record, loaded); diff != "" {
		t.Errorf("record mismatch (-saved +loaded):\n%s", diff)
	}

	got, err := store.LoadSolutions(record.ID)
	if err != nil {
		t.Fatalf("LoadSolutions failed: %v", err)
	}
	if diff := cmp.Diff(solutions, got); diff != "" {
		t.Errorf("solutions mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestSaveRun_NoSolutions(t *testing.T) {
	store, _ := setupTestStore(t)

	record := createTestRecord(nil)
	if err := store.SaveRun(record, nil); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := store.LoadSolutions(record.ID)
	if err != nil {
		t.Fatalf("LoadSolutions failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no solutions, got %d", len(got))
	}

	loaded, err := store.LoadRun(record.ID)
	if err != nil {
		t.Fatalf("LoadRun failed: %v", err)
	}
	if loaded.Best != nil {
		t.Errorf("expected nil best, got %+v", loaded.Best)
	}
}

func TestSaveRun_Rejects(t *testing.T) {
	store, _ := setupTestStore(t)

	if err := store.SaveRun(nil, nil); err == nil {
		t.Error("Expected error for nil record")
	}

	solutions := testSolutions()
	record := createTestRecord(solutions)
	if err := store.SaveRun(record, solutions[:1]); err == nil {
		t.Error("Expected error for solution count mismatch")
	}

	record.ID = ""
	err := store.SaveRun(record, solutions)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if vErr.Field != "ID" {
		t.Errorf("Expected ID field error, got %s", vErr.Field)
	}
}

func TestLoadRun_NotFound(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.LoadRun("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	_, err = store.LoadSolutions("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound from LoadSolutions, got %v", err)
	}

	if _, err := store.LoadRun(""); err == nil {
		t.Error("Expected error for empty runID")
	}
}

func TestLoadRun_Corrupted(t *testing.T) {
	store, _ := setupTestStore(t)

	dir := store.RunDir("broken")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "run.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := store.LoadRun("broken")
	if err == nil {
		t.Fatal("Expected error for corrupted run.json")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("Corrupted record should not be reported as not found")
	}
}

func TestNotFoundError(t *testing.T) {
	if got := (&NotFoundError{RunID: "abc"}).Error(); got != "run not found: abc" {
		t.Errorf("unexpected message %q", got)
	}
	if got := ErrNotFound.Error(); got != "run not found" {
		t.Errorf("unexpected message %q", got)
	}
}

var _ Store = (*FSStore)(nil)
