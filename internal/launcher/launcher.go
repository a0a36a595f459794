// Package launcher starts the background worker and the solver process.
// The platform-specific implementation is chosen at build time; callers
// only see the Launcher interface.
package launcher

import (
	"context"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/parampl/internal/config"
)

// ErrUnsupportedPlatform is returned on operating systems that are neither
// Unix-like nor Windows.
var ErrUnsupportedPlatform = errors.New("parampl should be executed under Unix or Windows operating system")

const (
	// WorkerSubcommand is the CLI entry point the background worker runs.
	WorkerSubcommand = "runsolverwithnotify"
	// SolverFlag tells an AMPL solver to write a .sol file next to its stub.
	SolverFlag = "-AMPL"
	// ExitNotStarted is reported when the solver executable could not be
	// started, following the shell convention for "command not found".
	ExitNotStarted = 127
)

// Command is a program invocation.
type Command struct {
	Path string
	Args []string
	Dir  string
}

// Launcher spawns processes on behalf of the queue.
type Launcher interface {
	// SpawnDetached starts cmd in the background using method and returns
	// without waiting. The returned pid is 0 when it is not known (screen).
	SpawnDetached(ctx context.Context, cmd Command, method config.Method) (pid int, err error)
	// SpawnAndWait runs cmd to completion and returns its exit code. A
	// non-zero exit is not an error; err is set only when cmd could not be
	// run, in which case the exit code is ExitNotStarted.
	SpawnAndWait(ctx context.Context, cmd Command) (exitCode int, err error)
}

// Options configures the platform launcher.
type Options struct {
	ScreenPath string
	Log        *logrus.Entry
}

// New returns the launcher for the platform the binary was built for.
func New(opts Options) Launcher {
	if opts.ScreenPath == "" {
		opts.ScreenPath = "screen"
	}
	if opts.Log == nil {
		opts.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	return newPlatform(opts)
}

// WorkerCommand builds the fixed worker command line:
//
//	<self> runsolverwithnotify <solver> <queue> <job>
func WorkerCommand(self, solver, queue string, job int, dir string) Command {
	return Command{
		Path: self,
		Args: []string{WorkerSubcommand, solver, queue, strconv.Itoa(job)},
		Dir:  dir,
	}
}

// SolverCommand builds the solver invocation for a job stem.
func SolverCommand(solver, stem, dir string) Command {
	return Command{
		Path: solver,
		Args: []string{stem, SolverFlag},
		Dir:  dir,
	}
}
