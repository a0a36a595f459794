package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/parampl/internal/ui"
)

// configEnv names the config file for processes that cannot take --config,
// such as the background worker.
const configEnv = "PARAMPL_CONFIG"

var rootCmd = &cobra.Command{
	Use:   "parampl",
	Short: "Run AMPL solver jobs in the background",
	Long: `Parampl lets an AMPL session submit problems to a solver running in the
background and retrieve the solutions later, in submission order.

The queue is a set of files in the working directory; the queue is chosen
with the parampl_queue_id environment variable and the solver with
parampl_options ("solver=ipopt unix_bkg_method=screen").`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.New().Fail(err)
		os.Exit(1)
	}
}

func init() {
	cobra.EnableCaseInsensitive = true
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .parampl.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("work-dir", "", "directory holding the queue files (default .)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("work_dir", rootCmd.PersistentFlags().Lookup("work-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.Flags().GetString("config")
	if cfgFile == "" {
		cfgFile = os.Getenv(configEnv)
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".parampl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("PARAMPL")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}
