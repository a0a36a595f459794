package queue

import (
	"errors"
	"fmt"
)

// Sentinel errors for queue operations.
var (
	// ErrNoQueueID indicates the queue identifier was not provided.
	ErrNoQueueID = errors.New("queue identifier not set")
	// ErrNoSolver indicates no solver name was configured.
	ErrNoSolver = errors.New("no solver name selected")
	// ErrNoLedger indicates retrieve found no ledger for the queue.
	ErrNoLedger = errors.New("could not open the job file")
	// ErrJobNotSubmitted indicates no job number could be determined.
	ErrJobNotSubmitted = errors.New("job not submitted")
)

// Kind classifies a queue failure for reporting.
type Kind string

const (
	// KindMissingInput: a file the protocol expects is absent.
	KindMissingInput Kind = "missing_input"
	// KindMisconfiguration: required configuration is empty or unset.
	KindMisconfiguration Kind = "misconfiguration"
	// KindUnsupportedPlatform: the OS can neither spawn nor run the solver.
	KindUnsupportedPlatform Kind = "unsupported_platform"
	// KindCorruptState: the ledger exists but cannot be parsed.
	KindCorruptState Kind = "corrupt_state"
	// KindTimeout: the configured maximum wait elapsed.
	KindTimeout Kind = "timeout"
	// KindInternal: any other I/O or process failure.
	KindInternal Kind = "internal"
)

// Error records a failed queue operation with its job context.
type Error struct {
	Kind  Kind
	Op    string // submit, retrieve, runsolverwithnotify, status
	Queue string
	Job   int // 0 when no job number was assigned yet
	Err   error
}

// Error returns a human-readable string including queue and job context.
func (e *Error) Error() string {
	switch {
	case e.Job > 0:
		return fmt.Sprintf("%s %s/%d: %v", e.Op, e.Queue, e.Job, e.Err)
	case e.Queue != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Queue, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or KindInternal when err is not a queue
// error.
func KindOf(err error) Kind {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return KindInternal
}

// Hint returns guidance for the caller to fix err, or "" when there is none.
func Hint(err error) string {
	switch {
	case errors.Is(err, ErrNoSolver):
		return `To choose: option parampl_options "solver=xxx";`
	case errors.Is(err, ErrNoQueueID):
		return `To choose: option parampl_queue_id "name";`
	case KindOf(err) == KindCorruptState, errors.Is(err, ErrNoLedger):
		return "Did you use paramplsub?"
	}
	return ""
}

func newError(kind Kind, op, queue string, job int, err error) *Error {
	return &Error{Kind: kind, Op: op, Queue: queue, Job: job, Err: err}
}
