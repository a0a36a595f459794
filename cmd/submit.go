package cmd

import (
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit the queue's problem file as a background job",
	Long: `Renames parampl_problem_<queue>.nl to the next job file of the queue,
starts the solver for it in the background and records the job in the
queue's job file. The queue comes from parampl_queue_id and the solver from
parampl_options.`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Name())
	if err != nil {
		return err
	}
	defer a.Close()

	job, err := a.queue.Submit(cmd.Context(), a.cfg.QueueID)
	if err != nil {
		return err
	}
	a.printer.JobSubmitted(job)
	return nil
}
