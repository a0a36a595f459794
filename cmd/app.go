package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/papapumpkin/parampl/internal/config"
	"github.com/papapumpkin/parampl/internal/handoff"
	"github.com/papapumpkin/parampl/internal/launcher"
	"github.com/papapumpkin/parampl/internal/notify"
	"github.com/papapumpkin/parampl/internal/queue"
	"github.com/papapumpkin/parampl/internal/telemetry"
	"github.com/papapumpkin/parampl/internal/ui"
)

// app bundles what one command invocation needs.
type app struct {
	cfg     config.Config
	queue   *queue.Queue
	printer *ui.Printer
	log     *logrus.Entry
	closers []io.Closer
}

// newApp loads the configuration and wires the queue for the named
// command. Callers must Close the result.
func newApp(command string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	a := &app{cfg: cfg, printer: ui.New()}

	logger, closer, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	a.log = logger.WithFields(logrus.Fields{"cmd": command, "pid": os.Getpid()})

	events, err := newEmitter(cfg.EventsFile)
	if err != nil {
		a.Close()
		return nil, err
	}
	if events != nil {
		a.closers = append(a.closers, events)
	}

	self, err := os.Executable()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("locating parampl executable: %w", err)
	}

	exportForWorker(cfg)

	a.queue = queue.New(queue.Settings{
		Layout:   handoff.NewLayout(cfg.WorkDir),
		Launcher: launcher.New(launcher.Options{ScreenPath: cfg.ScreenPath, Log: a.log}),
		Options:  cfg.SolverOptions(),
		Wait:     notify.Policy{Interval: cfg.PollInterval, MaxWait: cfg.MaxWait},
		Finalize: handoff.FinalizePolicy{Attempts: cfg.FinalizeAttempts, Delay: cfg.FinalizeDelay},
		Events:   events,
		Log:      a.log,

		Executable: self,
	})
	return a, nil
}

// Close releases the log and events files.
func (a *app) Close() error {
	var result *multierror.Error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// newLogger builds the diagnostics logger: stderr, or log_file when set.
// Warnings and errors only, unless verbose.
func newLogger(cfg config.Config) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	// stderr reaches the AMPL console next to the protocol line, so routine
	// progress is only shown with --verbose.
	logger.SetLevel(logrus.WarnLevel)
	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if cfg.LogFile == "" {
		logger.SetOutput(os.Stderr)
		return logger, nil, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", cfg.LogFile, err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}

func newEmitter(path string) (*telemetry.Emitter, error) {
	if path == "" {
		return nil, nil
	}
	return telemetry.Open(path)
}

// exportForWorker passes flag-only settings to the background worker
// through its inherited environment. The worker also inherits the working
// directory, so a relative work dir stays valid.
func exportForWorker(cfg config.Config) {
	if cfg.WorkDir != "" && cfg.WorkDir != "." {
		_ = os.Setenv("PARAMPL_WORK_DIR", cfg.WorkDir)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		if abs, err := filepath.Abs(used); err == nil {
			_ = os.Setenv(configEnv, abs)
		}
	}
	if cfg.Verbose {
		_ = os.Setenv("PARAMPL_VERBOSE", "true")
	}
}
