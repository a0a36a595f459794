// Package record keeps an informational TOML sidecar next to each job.
// The queue protocol never depends on it: a missing or unreadable record
// only means less detail in status output.
package record

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
)

// Version is the current record schema version.
const Version = 1

// Record describes one submission.
type Record struct {
	Version     int        `toml:"version"`
	RunID       string     `toml:"run_id"`
	Queue       string     `toml:"queue"`
	Job         int        `toml:"job"`
	Solver      string     `toml:"solver"`
	Method      string     `toml:"method"`
	SubmittedAt time.Time  `toml:"submitted_at"`
	WorkerPID   int        `toml:"worker_pid,omitempty"`
	StartedAt   time.Time  `toml:"started_at"` // zero until the worker starts the solver
	FinishedAt  time.Time  `toml:"finished_at"`
	ExitCode    *int       `toml:"exit_code,omitempty"`
	SolverError string     `toml:"solver_error,omitempty"`
}

// New returns a record for a fresh submission with a unique run id.
func New(queue string, job int, solver, method string) *Record {
	return &Record{
		Version:     Version,
		RunID:       uuid.NewString(),
		Queue:       queue,
		Job:         job,
		Solver:      solver,
		Method:      method,
		SubmittedAt: time.Now().UTC(),
	}
}

// Load reads the record at path. Returns nil and no error if the file does
// not exist.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading job record: %w", err)
	}

	var r Record
	if err := toml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing job record %s: %w", path, err)
	}
	return &r, nil
}

// Save writes the record atomically (write temp + rename).
func Save(path string, r *Record) error {
	data, err := toml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling job record: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp job record: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming job record: %w", err)
	}
	return nil
}

// MarkStarted stamps the solver start time.
func (r *Record) MarkStarted(now time.Time) {
	r.StartedAt = now.UTC()
}

// MarkFinished stamps the solver exit. startErr is set when the solver
// could not be started at all.
func (r *Record) MarkFinished(now time.Time, exitCode int, startErr error) {
	r.FinishedAt = now.UTC()
	r.ExitCode = &exitCode
	if startErr != nil {
		r.SolverError = startErr.Error()
	}
}

// Started reports whether the worker has started the solver.
func (r *Record) Started() bool {
	return r != nil && !r.StartedAt.IsZero()
}

// Succeeded reports whether the solver is known to have exited with status 0.
func (r *Record) Succeeded() bool {
	return r != nil && r.ExitCode != nil && *r.ExitCode == 0 && r.SolverError == ""
}
