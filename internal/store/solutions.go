package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cwbudde/saisearch/internal/search"
)

// SolutionWriter writes candidates to a JSONL file, one per line.
// It uses buffered I/O and is safe for concurrent use.
type SolutionWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
	path   string
}

// NewSolutionWriter creates (or truncates) the file at path.
func NewSolutionWriter(path string) (*SolutionWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open solutions file: %w", err)
	}

	return &SolutionWriter{
		file:   file,
		writer: bufio.NewWriterSize(file, 64*1024),
		path:   path,
	}, nil
}

// Write appends a candidate. The line is buffered until Flush or Close.
func (sw *SolutionWriter) Write(c search.Candidate) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal solution: %w", err)
	}

	if _, err := sw.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write solution: %w", err)
	}
	if err := sw.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

// Flush writes buffered data and syncs the file.
func (sw *SolutionWriter) Flush() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if err := sw.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush solution writer: %w", err)
	}
	if err := sw.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync solutions file: %w", err)
	}

	return nil
}

// Close flushes buffered data and closes the file.
func (sw *SolutionWriter) Close() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if err := sw.writer.Flush(); err != nil {
		sw.file.Close()
		return fmt.Errorf("failed to flush on close: %w", err)
	}
	if err := sw.file.Close(); err != nil {
		return fmt.Errorf("failed to close solutions file: %w", err)
	}

	return nil
}

// Path returns the filesystem path of the solutions file.
func (sw *SolutionWriter) Path() string {
	return sw.path
}

// SolutionReader reads candidates from a JSONL file.
type SolutionReader struct {
	file    *os.File
	scanner *bufio.Scanner
}

// NewSolutionReader opens the file at path.
func NewSolutionReader(path string) (*SolutionReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open solutions file: %w", err)
	}

	return &SolutionReader{
		file:    file,
		scanner: bufio.NewScanner(file),
	}, nil
}

// Read returns the next candidate, or io.EOF when none remain.
func (sr *SolutionReader) Read() (*search.Candidate, error) {
	if !sr.scanner.Scan() {
		if err := sr.scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to scan solution line: %w", err)
		}
		return nil, io.EOF
	}

	var c search.Candidate
	if err := json.Unmarshal(sr.scanner.Bytes(), &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal solution: %w", err)
	}

	return &c, nil
}

// ReadAll reads every remaining candidate.
func (sr *SolutionReader) ReadAll() ([]search.Candidate, error) {
	solutions := []search.Candidate{}

	for {
		c, err := sr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		solutions = append(solutions, *c)
	}

	return solutions, nil
}

// Close closes the underlying file.
func (sr *SolutionReader) Close() error {
	if err := sr.file.Close(); err != nil {
		return fmt.Errorf("failed to close solutions file: %w", err)
	}
	return nil
}
