package queue

import (
	"errors"
	"os"

	"github.com/papapumpkin/parampl/internal/handoff"
	"github.com/papapumpkin/parampl/internal/ledger"
	"github.com/papapumpkin/parampl/internal/notify"
	"github.com/papapumpkin/parampl/internal/record"
)

// State is the observable protocol state of an outstanding job.
type State string

const (
	// StateSubmitted: accepted, solver not yet started.
	StateSubmitted State = "submitted"
	// StateRunning: solver started, no marker yet.
	StateRunning State = "running"
	// StateNotified: marker written, ready for retrieve.
	StateNotified State = "notified"
	// StateMissing: neither job file nor marker exists.
	StateMissing State = "missing"
)

// JobStatus describes one outstanding job.
type JobStatus struct {
	Job    int
	State  State
	Record *record.Record // nil when no readable record exists
}

// Status lists the outstanding jobs of queueID in retrieval order. A queue
// without a ledger has no outstanding jobs.
func (q *Queue) Status(queueID string) ([]JobStatus, error) {
	if queueID == "" {
		return nil, newError(KindMisconfiguration, OpStatus, "", 0, ErrNoQueueID)
	}
	l, err := ledger.Read(q.layout.LedgerFile(queueID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, newError(KindInternal, OpStatus, queueID, 0, err)
	}

	var out []JobStatus
	for _, job := range l.Jobs() {
		rec, err := record.Load(q.layout.RecordFile(queueID, job))
		if err != nil {
			q.log.WithError(err).WithField("job", job).Debug("ignoring unreadable job record")
			rec = nil
		}
		out = append(out, JobStatus{Job: job, State: q.stateOf(queueID, job, rec), Record: rec})
	}
	return out, nil
}

func (q *Queue) stateOf(queueID string, job int, rec *record.Record) State {
	switch {
	case notify.Done(q.layout.MarkerFile(queueID, job)):
		return StateNotified
	case !handoff.Exists(q.layout.JobFile(queueID, job)):
		return StateMissing
	case rec.Started():
		return StateRunning
	case rec != nil:
		return StateSubmitted
	default:
		return StateRunning
	}
}
