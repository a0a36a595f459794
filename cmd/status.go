package cmd

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List the outstanding jobs of the queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Name())
		if err != nil {
			return err
		}
		defer a.Close()

		jobs, err := a.queue.Status(a.cfg.QueueID)
		if err != nil {
			return err
		}
		a.printer.Status(a.cfg.QueueID, jobs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
