package cmd

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/parampl/internal/config"
	"github.com/papapumpkin/parampl/internal/queue"
	"github.com/papapumpkin/parampl/internal/ui"
)

// errValidation is returned when at least one check failed.
var errValidation = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the configured solver and background method are usable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return validate(cfg, ui.New(), exec.LookPath)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validate checks the settings a submit would depend on. lookPath resolves
// executables.
func validate(cfg config.Config, printer *ui.Printer, lookPath func(string) (string, error)) error {
	ok := true
	check := func(name, file string) {
		path, err := lookPath(file)
		if err != nil {
			printer.Check(false, name, err.Error())
			ok = false
			return
		}
		printer.Check(true, name, path)
	}

	if cfg.QueueID == "" {
		printer.Check(false, "queue", queue.Hint(queue.ErrNoQueueID))
		ok = false
	} else {
		printer.Check(true, "queue", cfg.QueueID)
	}

	opts := cfg.SolverOptions()
	if opts.Solver == "" {
		printer.Check(false, "solver", queue.Hint(queue.ErrNoSolver))
		ok = false
	} else {
		check("solver", opts.Solver)
	}

	if opts.Method == config.MethodScreen {
		check("screen", cfg.ScreenPath)
	}

	if !ok {
		return errValidation
	}
	return nil
}
