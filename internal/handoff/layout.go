// Package handoff names and moves the files that carry a problem from the
// submitting caller, through the solver, back to the retrieving caller.
//
// The file names are a wire contract shared with external AMPL scripts:
//
//	parampl_problem_<queue>.nl        problem written by the caller
//	parampl_job_<queue>_<job>.nl      problem accepted as a job
//	parampl_job_<queue>_<job>.sol     solver output
//	parampl_job_<queue>_<job>.not     completion marker
//	parampl_problem_<queue>.sol       result handed back to the caller
//	parampl_jobfile_<queue>           ledger of outstanding jobs
package handoff

import (
	"path/filepath"
	"strconv"
)

const (
	// ProblemPrefix and ExtSolution are also spelled out by the AMPL helper
	// scripts.
	ProblemPrefix = "parampl_problem"
	ledgerPrefix  = "parampl_jobfile"
	jobPrefix     = "parampl_job"

	extProblem  = ".nl"
	ExtSolution = ".sol"
	extNotify   = ".not"
	extRecord   = ".toml"
)

// Layout resolves wire names relative to a working directory.
type Layout struct {
	Dir string
}

// NewLayout returns a Layout rooted at dir. An empty dir means the current
// working directory.
func NewLayout(dir string) Layout {
	if dir == "" {
		dir = "."
	}
	return Layout{Dir: dir}
}

func (l Layout) path(name string) string {
	return filepath.Join(l.Dir, name)
}

// ProblemFile is the caller-written input for queue.
func (l Layout) ProblemFile(queue string) string {
	return l.path(ProblemPrefix + "_" + queue + extProblem)
}

// ResultFile is where the solution for queue lands after retrieval.
func (l Layout) ResultFile(queue string) string {
	return l.path(ProblemPrefix + "_" + queue + ExtSolution)
}

// LedgerFile lists the outstanding job numbers of queue.
func (l Layout) LedgerFile(queue string) string {
	return l.path(ledgerPrefix + "_" + queue)
}

// JobStem is the extension-less job name handed to the solver. The solver
// reads <stem>.nl and writes <stem>.sol.
func (l Layout) JobStem(queue string, job int) string {
	return l.path(jobPrefix + "_" + queue + "_" + strconv.Itoa(job))
}

// JobFile is the accepted problem of job.
func (l Layout) JobFile(queue string, job int) string {
	return l.JobStem(queue, job) + extProblem
}

// JobResult is the raw solver output of job.
func (l Layout) JobResult(queue string, job int) string {
	return l.JobStem(queue, job) + ExtSolution
}

// MarkerFile signals that the solver for job has exited.
func (l Layout) MarkerFile(queue string, job int) string {
	return l.JobStem(queue, job) + extNotify
}

// RecordFile holds the informational TOML record of job.
func (l Layout) RecordFile(queue string, job int) string {
	return l.JobStem(queue, job) + extRecord
}
