package cmd

import (
	"deployer/internal/config"
	"deployer/internal/logger"
	"os"

	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "deployer",
	Short: "Deploy a script to the server and redeploy it on every change",
	Example: `  deployer -u my-script -f file.js
  deployer -u my-script -f file.js -s https://engine.example.com --watch=false`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		logger.Init(cfg.Debug)
		return nil
	},
	RunE: runDeploy,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd.Flags())
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
}
