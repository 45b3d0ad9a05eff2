package cmd

import (
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project <household-file>",
	Short: "Project a household year by year under one scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runProject,
}

func init() {
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, args []string) error {
	name, h, err := loadHousehold(args[0])
	if err != nil {
		return err
	}
	report, err := newEngine().Report(cmd.Context(), name, h, scenarioName())
	if err != nil {
		return err
	}
	return emit(cmd, report, outputFormat("console"))
}
