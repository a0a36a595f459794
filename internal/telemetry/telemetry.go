// Package telemetry provides a JSONL event stream for recording job state
// transitions. Submit, the background worker and retrieve all append to the
// same file, so a single stream shows the full life of every job across
// processes.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event kinds identify the type of telemetry event.
const (
	KindJobSubmitted  = "job_submitted"
	KindWorkerSpawned = "worker_spawned"
	KindSolverStart   = "solver_start"
	KindSolverDone    = "solver_done"
	KindMarkerWritten = "marker_written"
	KindWaitStart     = "wait_start"
	KindJobRetrieved  = "job_retrieved"
	KindJobFailed     = "job_failed"
)

// Event is one line of the stream. PID tells the submitting, worker and
// retrieving processes apart; RunID ties the lines of one submission
// together.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	Queue     string    `json:"queue,omitempty"`
	Job       int       `json:"job,omitempty"`
	RunID     string    `json:"run_id,omitempty"`
	PID       int       `json:"pid,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// NewEvent returns an event of kind for job, stamped with the current time
// and the calling process.
func NewEvent(kind, queue string, job int) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		Kind:      kind,
		Queue:     queue,
		Job:       job,
		PID:       os.Getpid(),
	}
}

// WithRunID returns a copy of e tagged with the submission's run id.
func (e Event) WithRunID(id string) Event {
	e.RunID = id
	return e
}

// WithData returns a copy of e carrying data.
func (e Event) WithData(data any) Event {
	e.Data = data
	return e
}

// Emitter appends events to a JSONL file shared by several processes. Each
// event goes out in a single write on an O_APPEND descriptor so lines from
// different processes do not interleave. A nil *Emitter discards events.
type Emitter struct {
	mu   sync.Mutex
	file *os.File
}

// Open returns an Emitter appending to path, creating the file if needed.
func Open(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening events file %s: %w", path, err)
	}
	return &Emitter{file: f}, nil
}

// Emit writes evt as one line.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	line, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", evt.Kind, err)
	}
	line = append(line, '\n')

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.file.Write(line); err != nil {
		return fmt.Errorf("writing %s event: %w", evt.Kind, err)
	}
	return nil
}

// Close closes the events file.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.file.Close()
}
