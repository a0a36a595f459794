package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/parampl/internal/ui"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Wait for the oldest job of the queue and hand back its solution",
	Long: `Blocks until the oldest outstanding job of the queue has finished, then
moves its solution to parampl_problem_<queue>.sol and removes the job's
files. Interrupt to stop waiting; the job stays queued.`,
	Args: cobra.NoArgs,
	RunE: runRetrieve,
}

func init() {
	retrieveCmd.Flags().Duration("max-wait", 0, "give up after this long (default: wait forever)")
	_ = viper.BindPFlag("max_wait", retrieveCmd.Flags().Lookup("max-wait"))
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Name())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := setupSignalContext(cmd.Context(), a.printer)
	defer cancel()

	job, err := a.queue.Retrieve(ctx, a.cfg.QueueID)
	if err != nil {
		return err
	}
	a.printer.JobRetrieved(job)
	return nil
}

// setupSignalContext returns a context cancelled on SIGINT or SIGTERM.
func setupSignalContext(parent context.Context, printer *ui.Printer) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			printer.Info("\nstopped waiting; the job is still queued")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
