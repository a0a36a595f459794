package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/papapumpkin/parampl/internal/queue"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	green  = "\033[32m"
	red    = "\033[31m"
	yellow = "\033[33m"
)

// Printer writes protocol messages to stdout, where AMPL's shell command
// shows them, and human-oriented extras to stderr.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

func New() *Printer {
	return &Printer{out: os.Stdout, errOut: os.Stderr}
}

// NewWithWriters returns a Printer writing to the given streams.
func NewWithWriters(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

func (p *Printer) JobSubmitted(job int) {
	fmt.Fprintf(p.out, "Job %d submitted\n", job)
}

func (p *Printer) JobRetrieved(job int) {
	fmt.Fprintf(p.out, "Job %d retrieved\n", job)
}

var kindLabels = map[queue.Kind]string{
	queue.KindMissingInput:        "missing input",
	queue.KindMisconfiguration:    "misconfiguration",
	queue.KindUnsupportedPlatform: "unsupported platform",
	queue.KindCorruptState:        "corrupt state",
	queue.KindTimeout:             "timeout",
	queue.KindInternal:            "internal error",
}

// Fail reports err on stdout, followed by guidance when there is any.
func (p *Printer) Fail(err error) {
	fmt.Fprintf(p.out, "Error (%s): %v\n", kindLabels[queue.KindOf(err)], err)
	if hint := queue.Hint(err); hint != "" {
		fmt.Fprintln(p.out, hint)
	}
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.errOut, dim+"%s"+reset+"\n", msg)
}

// Check prints one line of a dependency check.
func (p *Printer) Check(ok bool, name, detail string) {
	if ok {
		fmt.Fprintf(p.errOut, green+"✓ %s"+reset+" %s\n", name, detail)
		return
	}
	fmt.Fprintf(p.errOut, red+"✗ %s"+reset+": %s\n", name, detail)
}

func (p *Printer) Installed(paths []string) {
	for _, path := range paths {
		fmt.Fprintf(p.out, "wrote %s\n", path)
	}
}

// Status prints the outstanding jobs of a queue as a table on stdout.
func (p *Printer) Status(queueID string, jobs []queue.JobStatus) {
	if len(jobs) == 0 {
		fmt.Fprintf(p.out, "queue %s: no outstanding jobs\n", queueID)
		return
	}
	fmt.Fprintf(p.out, "queue %s: %d outstanding job(s)\n", queueID, len(jobs))

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB\tSTATE\tSOLVER\tSUBMITTED\tEXIT")
	for _, js := range jobs {
		solver, submitted, exit := "-", "-", "-"
		if r := js.Record; r != nil {
			solver = r.Solver
			submitted = r.SubmittedAt.Local().Format(time.DateTime)
			if r.ExitCode != nil {
				exit = fmt.Sprint(*r.ExitCode)
			}
			if r.SolverError != "" {
				exit += " (" + strings.TrimSpace(r.SolverError) + ")"
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", js.Job, js.State, solver, submitted, exit)
	}
	tw.Flush()
}

// Warn prints a non-fatal problem on stderr.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.errOut, yellow+bold+"⚠ "+reset+"%s\n", msg)
}
