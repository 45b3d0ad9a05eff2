package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/household-planner/internal/domain"
	"github.com/rpgo/household-planner/internal/output"
)

// emit renders the report to stdout, or to a timestamped file when --output-dir is set.
func emit(cmd *cobra.Command, report *domain.ProjectionReport, format string) error {
	if flagOutDir != "" {
		files, err := output.GenerateReport(report, format, flagOutDir)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(cmd.ErrOrStderr(), "  Wrote %s\n", f)
		}
		return nil
	}
	return output.Render(cmd.OutOrStdout(), report, format)
}
