package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "datebook",
	Short: "A monthly time-tracking datebook",
}

func init() {
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
