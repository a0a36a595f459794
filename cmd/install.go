package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/parampl/internal/scripts"
	"github.com/papapumpkin/parampl/internal/ui"
)

// defaultCommand is how the installed scripts call parampl when it is on
// PATH.
const defaultCommand = "parampl"

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Write the paramplsub and paramplret AMPL scripts",
	Long: `Writes paramplsub and paramplret into the working directory. The scripts
call "parampl", which must be on PATH when AMPL runs them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInstall(defaultCommand)
	},
}

var installCompiledCmd = &cobra.Command{
	Use:     "installc",
	Aliases: []string{"install-compiled"},
	Short:   "Write the AMPL scripts pointing at this executable",
	Long: `Like install, but the scripts call this parampl binary by its absolute
path, so they work without parampl on PATH.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		self, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating parampl executable: %w", err)
		}
		return runInstall(self)
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(installCompiledCmd)
}

func runInstall(command string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	paths, err := scripts.Install(dir, command)
	if err != nil {
		return err
	}
	ui.New().Installed(paths)
	return nil
}
