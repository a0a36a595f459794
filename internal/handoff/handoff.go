package handoff

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/avast/retry-go"
	"github.com/hashicorp/go-multierror"
)

// Sentinel errors for missing files at a handoff step.
var (
	// ErrNoProblem indicates the caller has not written the problem file.
	ErrNoProblem = errors.New("problem file not found")
	// ErrNoResult indicates the solver exited without writing a solution.
	ErrNoResult = errors.New("solver result not found")
)

// FinalizePolicy bounds how long Finalize waits for the solver result to
// become visible after the marker has been observed.
type FinalizePolicy struct {
	Attempts uint
	Delay    time.Duration
}

// Accept moves the problem file of queue into the job slot for job.
// Ownership of the file passes from the caller to the queue.
func (l Layout) Accept(queue string, job int) error {
	src := l.ProblemFile(queue)
	if err := os.Rename(src, l.JobFile(queue, job)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNoProblem, src)
		}
		return fmt.Errorf("accepting %s: %w", src, err)
	}
	return nil
}

// HasProblem reports whether the caller has written the problem file.
func (l Layout) HasProblem(queue string) bool {
	return Exists(l.ProblemFile(queue))
}

// Finalize renames the solver output of job into the caller-facing result
// file. A missing output is retried according to p, since on shared file
// systems it may appear after the marker.
func (l Layout) Finalize(ctx context.Context, queue string, job int, p FinalizePolicy) error {
	src := l.JobResult(queue, job)
	dst := l.ResultFile(queue)

	attempts := p.Attempts
	if attempts == 0 {
		attempts = 1
	}

	err := retry.Do(
		func() error { return os.Rename(src, dst) },
		retry.Attempts(attempts),
		retry.Delay(p.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return errors.Is(err, os.ErrNotExist) }),
		retry.Context(ctx),
	)
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNoResult, src)
	}
	return fmt.Errorf("finalizing %s: %w", src, err)
}

// Cleanup removes the job file, marker and record of job. Files that are
// already gone are not an error.
func (l Layout) Cleanup(queue string, job int) error {
	var result *multierror.Error
	for _, path := range []string{
		l.JobFile(queue, job),
		l.MarkerFile(queue, job),
		l.RecordFile(queue, job),
	} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			result = multierror.Append(result, fmt.Errorf("removing %s: %w", path, err))
		}
	}
	return result.ErrorOrNil()
}

// Exists reports whether path names a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
