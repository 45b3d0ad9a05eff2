package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/household-planner/internal/calculation"
	"github.com/rpgo/household-planner/internal/output"
)

var (
	flagSimulations int
	flagSeed        int64
	flagWorkers     int
	flagExportDir   string
)

var monteCarloCmd = &cobra.Command{
	Use:     "montecarlo <household-file>",
	Aliases: []string{"mc"},
	Short:   "Run Monte Carlo simulations with randomized annual returns",
	Args:    cobra.ExactArgs(1),
	RunE:    runMonteCarlo,
}

func init() {
	monteCarloCmd.Flags().IntVarP(&flagSimulations, "simulations", "n", 0, fmt.Sprintf("Number of simulations (max %d)", calculation.MaxSimulations))
	monteCarloCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Random seed for reproducible runs")
	monteCarloCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent simulations (default GOMAXPROCS)")
	monteCarloCmd.Flags().StringVar(&flagExportDir, "export-dir", "", "Also write summary, simulation, percentile and depletion CSVs here")
	rootCmd.AddCommand(monteCarloCmd)
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	name, h, err := loadHousehold(args[0])
	if err != nil {
		return err
	}
	engine := newEngine()
	scenario := scenarioName()
	report, err := engine.Report(cmd.Context(), name, h, scenario)
	if err != nil {
		return err
	}

	mc := calculation.MonteCarloConfig{
		NumSimulations:   settings.MonteCarlo.Simulations,
		Seed:             settings.MonteCarlo.Seed,
		Workers:          settings.MonteCarlo.Workers,
		KeepTrajectories: flagExportDir != "",
	}
	if cmd.Flags().Changed("seed") {
		mc.Seed = flagSeed
	}
	if cmd.Flags().Changed("workers") {
		mc.Workers = flagWorkers
	}
	result, err := calculation.NewMonteCarloSimulator(engine, mc).Run(cmd.Context(), h, scenario, flagSimulations)
	if err != nil {
		var simErr *calculation.SimulationError
		if errors.As(err, &simErr) {
			return fmt.Errorf("simulation %d failed: %w", simErr.Index, err)
		}
		return err
	}
	report.MonteCarlo = result

	if flagExportDir != "" {
		csv := &output.MonteCarloCSVReport{Result: result}
		if err := csv.GenerateAllCSVReports(flagExportDir); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "  Wrote Monte Carlo CSVs to %s\n", flagExportDir)
	}
	return emit(cmd, report, outputFormat("console"))
}
