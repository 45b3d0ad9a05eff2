package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/household-planner/internal/domain"
)

var flagSaved []string

var compareCmd = &cobra.Command{
	Use:   "compare [household-file...]",
	Short: "Compare households under the same scenario",
	Long: "Compare household files and saved households side by side.\n" +
		"With no files and no --saved names, every saved household is compared.",
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringSliceVar(&flagSaved, "saved", nil, "Saved household names to include")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	households := map[string]*domain.Household{}
	var names []string
	for _, path := range args {
		name, h, err := loadHousehold(path)
		if err != nil {
			return err
		}
		if _, dup := households[name]; dup {
			return fmt.Errorf("%w: two households named %q", domain.ErrInvalidInput, name)
		}
		households[name] = h
		names = append(names, name)
	}

	if len(flagSaved) > 0 || len(args) == 0 {
		lib, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		if len(flagSaved) == 0 {
			saved, err := lib.LoadAll()
			if err != nil {
				return err
			}
			for name, h := range saved {
				households[name] = h
			}
			names = nil
		}
		for _, name := range flagSaved {
			h, err := lib.Load(name)
			if err != nil {
				return err
			}
			households[name] = h
			names = append(names, name)
		}
	}
	if len(households) == 0 {
		return fmt.Errorf("nothing to compare: pass household files or save some with `scenarios save`")
	}

	scenario := scenarioName()
	comparison, err := newEngine().CompareHouseholds(cmd.Context(), households, names, scenario)
	if err != nil {
		return err
	}
	report := &domain.ProjectionReport{
		Household:  "comparison",
		Scenario:   scenario,
		Comparison: comparison,
	}
	if len(comparison) > 0 {
		if params, err := households[comparison[0].Name].Scenarios.Lookup(scenario); err == nil {
			report.Parameters = params
		}
	}
	return emit(cmd, report, outputFormat("console"))
}
