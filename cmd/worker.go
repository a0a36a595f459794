package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/parampl/internal/launcher"
)

// workerCmd is started by submit in the background; it is not meant to be
// run by hand.
var workerCmd = &cobra.Command{
	Use:     launcher.WorkerSubcommand + " <solver> <queue> <job>",
	Aliases: []string{"run-with-notify"},
	Short:   "Run the solver on a job and write its completion marker",
	Args:    cobra.ExactArgs(3),
	Hidden:  true,
	RunE:    runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	solver, queueID := args[0], args[1]
	job, err := strconv.Atoi(args[2])
	if err != nil || job <= 0 {
		return fmt.Errorf("invalid job number %q", args[2])
	}

	a, err := newApp(launcher.WorkerSubcommand)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.queue.RunSolverWithNotify(cmd.Context(), solver, queueID, job)
}
