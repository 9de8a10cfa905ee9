package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/molview/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize molview configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the simulation backend and viewer defaults, and writes a .molview.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
