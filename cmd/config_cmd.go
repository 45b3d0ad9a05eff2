package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpgo/household-planner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current settings to the settings file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func settingsPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.SettingsPath()
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	path := settingsPath()
	fmt.Fprintf(out, "  Config file: %s\n", path)
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Default scenario: %s\n", settings.General.DefaultScenario)
	fmt.Fprintf(out, "    Output format:    %s\n", settings.General.OutputFormat)
	fmt.Fprintf(out, "    Verbose:          %v\n", settings.General.Verbose)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Monte Carlo]")
	fmt.Fprintf(out, "    Simulations: %d\n", settings.MonteCarlo.Simulations)
	if settings.MonteCarlo.Seed != 0 {
		fmt.Fprintf(out, "    Seed:        %d\n", settings.MonteCarlo.Seed)
	} else {
		fmt.Fprintln(out, "    Seed:        random")
	}
	if settings.MonteCarlo.Workers > 0 {
		fmt.Fprintf(out, "    Workers:     %d\n", settings.MonteCarlo.Workers)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Store]")
	fmt.Fprintf(out, "    Library: %s\n", settings.LibraryPath())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Server]")
	fmt.Fprintf(out, "    Address: %s\n", settings.Server.Addr)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Environment overrides use the PLANNER_ prefix, e.g. PLANNER_MC_SIMULATIONS=250.")
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := settingsPath()
	if err := config.SaveSettings(path, settings); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Settings written to %s\n", path)
	return nil
}
