// Package queue implements the parampl operations on top of the file
// handoff, ledger, launcher and completion marker packages.
//
// Every job of a queue moves through Submitted → Running → Notified →
// Retrieved. Each operation is meant to run in its own short-lived process;
// the only coordination between them is the file system. No locking is
// done: two submits or two retrieves racing on one queue identifier are
// not supported.
package queue

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/parampl/internal/config"
	"github.com/papapumpkin/parampl/internal/handoff"
	"github.com/papapumpkin/parampl/internal/launcher"
	"github.com/papapumpkin/parampl/internal/ledger"
	"github.com/papapumpkin/parampl/internal/notify"
	"github.com/papapumpkin/parampl/internal/record"
	"github.com/papapumpkin/parampl/internal/telemetry"
)

// Operation names used in errors and logs.
const (
	OpSubmit   = "submit"
	OpRetrieve = "retrieve"
	OpWorker   = launcher.WorkerSubcommand
	OpStatus   = "status"
)

// Settings wires a Queue to its collaborators.
type Settings struct {
	Layout   handoff.Layout
	Launcher launcher.Launcher
	Options  config.Options
	Wait     notify.Policy
	Finalize handoff.FinalizePolicy
	Events   *telemetry.Emitter // nil disables events
	Log      *logrus.Entry

	// Executable is the program the background worker runs, normally the
	// running parampl binary.
	Executable string
}

// Queue runs submit, retrieve and the background worker body.
type Queue struct {
	layout   handoff.Layout
	launcher launcher.Launcher
	opts     config.Options
	wait     notify.Policy
	finalize handoff.FinalizePolicy
	events   *telemetry.Emitter
	log      *logrus.Entry
	self     string
	now      func() time.Time
}

// New creates a Queue from s.
func New(s Settings) *Queue {
	if s.Log == nil {
		s.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	if s.Wait.Interval <= 0 {
		s.Wait.Interval = notify.DefaultInterval
	}
	return &Queue{
		layout:   s.Layout,
		launcher: s.Launcher,
		opts:     s.Options,
		wait:     s.Wait,
		finalize: s.Finalize,
		events:   s.Events,
		log:      s.Log,
		self:     s.Executable,
		now:      time.Now,
	}
}

// Layout returns the file layout the queue operates on.
func (q *Queue) Layout() handoff.Layout {
	return q.layout
}

// Submit accepts the problem file of queueID as a new job and starts a
// background worker for it. It returns the job number.
//
// Configuration and input are checked before anything is renamed or
// appended, so a rejected submit leaves no trace.
func (q *Queue) Submit(ctx context.Context, queueID string) (int, error) {
	if queueID == "" {
		return 0, newError(KindMisconfiguration, OpSubmit, "", 0, ErrNoQueueID)
	}
	if q.opts.Solver == "" {
		return 0, newError(KindMisconfiguration, OpSubmit, queueID, 0, ErrNoSolver)
	}
	if !q.layout.HasProblem(queueID) {
		return 0, newError(KindMissingInput, OpSubmit, queueID, 0,
			fmt.Errorf("%w: %s", handoff.ErrNoProblem, q.layout.ProblemFile(queueID)))
	}

	ledgerPath := q.layout.LedgerFile(queueID)
	job, err := ledger.NextJobNumber(ledgerPath)
	if err != nil {
		return 0, newError(KindInternal, OpSubmit, queueID, 0, fmt.Errorf("%w: %w", ErrJobNotSubmitted, err))
	}
	if job <= 0 {
		return 0, newError(KindInternal, OpSubmit, queueID, 0, ErrJobNotSubmitted)
	}
	log := q.log.WithFields(logrus.Fields{"queue": queueID, "job": job})

	if err := q.layout.Accept(queueID, job); err != nil {
		kind := KindInternal
		if errors.Is(err, handoff.ErrNoProblem) {
			kind = KindMissingInput
		}
		return 0, newError(kind, OpSubmit, queueID, job, err)
	}
	log.Debug("problem file accepted")

	rec := record.New(queueID, job, q.opts.Solver, string(q.opts.Method))
	q.saveRecord(log, queueID, job, rec)

	worker := launcher.WorkerCommand(q.self, q.opts.Solver, queueID, job, "")
	pid, err := q.launcher.SpawnDetached(ctx, worker, q.opts.Method)
	if err != nil {
		kind := KindInternal
		if errors.Is(err, launcher.ErrUnsupportedPlatform) {
			kind = KindUnsupportedPlatform
		}
		q.emit(telemetry.NewEvent(telemetry.KindJobFailed, queueID, job).WithRunID(rec.RunID).
			WithData(map[string]string{"error": err.Error()}))
		return 0, newError(kind, OpSubmit, queueID, job, err)
	}
	q.emit(telemetry.NewEvent(telemetry.KindWorkerSpawned, queueID, job).WithRunID(rec.RunID).
		WithData(map[string]any{"worker_pid": pid, "method": q.opts.Method}))

	if err := ledger.Append(ledgerPath, job); err != nil {
		return 0, newError(KindInternal, OpSubmit, queueID, job, err)
	}

	q.emit(telemetry.NewEvent(telemetry.KindJobSubmitted, queueID, job).WithRunID(rec.RunID).
		WithData(map[string]string{"solver": q.opts.Solver}))
	log.WithField("method", q.opts.Method).Info("job submitted")
	return job, nil
}

// RunSolverWithNotify is the body of the background worker. It runs solver
// against the job in the foreground and then writes the completion marker.
//
// The marker is written whatever the solver's outcome, including when the
// solver could not be started; the exit status is kept only in the job
// record. The one exception is an unsupported platform, which writes
// nothing.
func (q *Queue) RunSolverWithNotify(ctx context.Context, solver, queueID string, job int) error {
	log := q.log.WithFields(logrus.Fields{"queue": queueID, "job": job, "solver": solver})

	if !handoff.Exists(q.layout.JobFile(queueID, job)) {
		log.Warnf("job file %s not found; running solver anyway", q.layout.JobFile(queueID, job))
	}

	rec := q.loadRecord(log, queueID, job)
	runID := ""
	if rec != nil {
		runID = rec.RunID
		rec.WorkerPID = os.Getpid()
		rec.MarkStarted(q.now())
		q.saveRecord(log, queueID, job, rec)
	}

	q.emit(telemetry.NewEvent(telemetry.KindSolverStart, queueID, job).WithRunID(runID))
	cmd := launcher.SolverCommand(solver, q.layout.JobStem(queueID, job), "")
	exitCode, runErr := q.launcher.SpawnAndWait(ctx, cmd)
	if errors.Is(runErr, launcher.ErrUnsupportedPlatform) {
		return newError(KindUnsupportedPlatform, OpWorker, queueID, job, runErr)
	}

	fields := logrus.Fields{"exit_code": exitCode}
	if runErr != nil {
		log.WithFields(fields).WithError(runErr).Warn("solver could not be run")
	} else {
		log.WithFields(fields).Info("solver exited")
	}

	if rec != nil {
		rec.MarkFinished(q.now(), exitCode, runErr)
		q.saveRecord(log, queueID, job, rec)
	}
	data := map[string]any{"exit_code": exitCode}
	if runErr != nil {
		data["error"] = runErr.Error()
	}
	q.emit(telemetry.NewEvent(telemetry.KindSolverDone, queueID, job).WithRunID(runID).WithData(data))

	if err := notify.Notify(q.layout.MarkerFile(queueID, job)); err != nil {
		return newError(KindInternal, OpWorker, queueID, job, err)
	}
	q.emit(telemetry.NewEvent(telemetry.KindMarkerWritten, queueID, job).WithRunID(runID))
	return nil
}

// Retrieve waits for the oldest outstanding job of queueID, moves its
// solution into the result file, removes the job's intermediate files and
// drops it from the ledger. It returns the retrieved job number.
//
// With the default policy Retrieve waits for the marker indefinitely;
// cancel ctx to give up.
func (q *Queue) Retrieve(ctx context.Context, queueID string) (int, error) {
	if queueID == "" {
		return 0, newError(KindMisconfiguration, OpRetrieve, "", 0, ErrNoQueueID)
	}

	ledgerPath := q.layout.LedgerFile(queueID)
	job, err := ledger.Oldest(ledgerPath)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return 0, newError(KindMissingInput, OpRetrieve, queueID, 0, fmt.Errorf("%w: %s", ErrNoLedger, ledgerPath))
		case errors.Is(err, ledger.ErrCorrupt):
			return 0, newError(KindCorruptState, OpRetrieve, queueID, 0, err)
		default:
			return 0, newError(KindInternal, OpRetrieve, queueID, 0, err)
		}
	}
	log := q.log.WithFields(logrus.Fields{"queue": queueID, "job": job})

	q.emit(telemetry.NewEvent(telemetry.KindWaitStart, queueID, job))
	log.WithField("interval", q.wait.Interval).Debug("waiting for completion marker")
	if err := notify.Wait(ctx, q.layout.MarkerFile(queueID, job), q.wait); err != nil {
		kind := KindInternal
		if errors.Is(err, notify.ErrTimeout) {
			kind = KindTimeout
		}
		return 0, newError(kind, OpRetrieve, queueID, job, err)
	}

	rec := q.loadRecord(log, queueID, job)
	if err := q.layout.Finalize(ctx, queueID, job, q.finalize); err != nil {
		if errors.Is(err, handoff.ErrNoResult) {
			if rec != nil && !rec.Succeeded() && rec.ExitCode != nil {
				err = fmt.Errorf("%w (solver exited with status %d)", err, *rec.ExitCode)
			}
			return 0, newError(KindMissingInput, OpRetrieve, queueID, job, err)
		}
		return 0, newError(KindInternal, OpRetrieve, queueID, job, err)
	}
	if err := q.layout.Cleanup(queueID, job); err != nil {
		return 0, newError(KindInternal, OpRetrieve, queueID, job, err)
	}
	if err := ledger.RemoveOldest(ledgerPath); err != nil {
		return 0, newError(KindInternal, OpRetrieve, queueID, job, err)
	}

	runID := ""
	if rec != nil {
		runID = rec.RunID
	}
	q.emit(telemetry.NewEvent(telemetry.KindJobRetrieved, queueID, job).WithRunID(runID))
	log.Info("job retrieved")
	return job, nil
}

func (q *Queue) loadRecord(log *logrus.Entry, queueID string, job int) *record.Record {
	rec, err := record.Load(q.layout.RecordFile(queueID, job))
	if err != nil {
		log.WithError(err).Warn("ignoring unreadable job record")
		return nil
	}
	return rec
}

func (q *Queue) saveRecord(log *logrus.Entry, queueID string, job int, rec *record.Record) {
	if err := record.Save(q.layout.RecordFile(queueID, job), rec); err != nil {
		log.WithError(err).Warn("could not write job record")
	}
}

func (q *Queue) emit(evt telemetry.Event) {
	if err := q.events.Emit(evt); err != nil {
		q.log.WithError(err).Warn("dropping telemetry event")
	}
}
