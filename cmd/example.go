package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/household-planner/internal/config"
)

var exampleCmd = &cobra.Command{
	Use:   "example [path]",
	Short: "Write an example household file (YAML, or JSON for a .json path)",
	Long:  "Write an example two-earner household with a child and a financed purchase.\nWith no path the YAML is printed to stdout.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExample,
}

func init() {
	rootCmd.AddCommand(exampleCmd)
}

func runExample(cmd *cobra.Command, args []string) error {
	parser := newParser()
	h := parser.CreateExampleHousehold()
	if len(args) == 0 {
		data, err := parser.Marshal(h, config.FormatYAML)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := parser.SaveToFile(args[0], h); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Example household written to %s\n", args[0])
	return nil
}
