// Package cmd implements the household-planner CLI commands.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rpgo/household-planner/internal/calculation"
	"github.com/rpgo/household-planner/internal/config"
	"github.com/rpgo/household-planner/internal/domain"
	"github.com/rpgo/household-planner/internal/store"
)

var (
	flagConfig   string
	flagVerbose  bool
	flagFormat   string
	flagScenario string
	flagDBPath   string
	flagOutDir   string
)

// settings is loaded once per invocation by the root pre-run hook.
var settings = config.DefaultSettings()

var rootCmd = &cobra.Command{
	Use:   "household-planner",
	Short: "Household net worth projections",
	Long: "Project a household's income, taxes, expenses and net worth year by year,\n" +
		"run Monte Carlo simulations and compare saved scenarios.",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Settings file (default "+config.SettingsPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Output format (console, console-lite, csv, detailed-csv, montecarlo-csv, html, json)")
	rootCmd.PersistentFlags().StringVarP(&flagScenario, "scenario", "s", "", "Scenario preset (Conservative, Moderate, Aggressive)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Scenario library database path")
	rootCmd.PersistentFlags().StringVarP(&flagOutDir, "output-dir", "o", "", "Write the report to a timestamped file in this directory")
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadSettings(flagConfig)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.General.Verbose = flagVerbose
	}
	if flags.Changed("format") {
		cfg.General.OutputFormat = flagFormat
	}
	if flags.Changed("scenario") {
		cfg.General.DefaultScenario = flagScenario
	}
	if flags.Changed("db") {
		cfg.Store.DBPath = flagDBPath
	}
	settings = cfg
	return nil
}

func newLogger() calculation.Logger {
	return calculation.NewStdLogger(log.New(os.Stderr, "", log.LstdFlags), settings.General.Verbose)
}

func newEngine() *calculation.ProjectionEngine {
	engine := calculation.NewProjectionEngine()
	engine.Debug = settings.General.Verbose
	engine.SetLogger(newLogger())
	return engine
}

func newParser() *config.InputParser {
	return config.NewInputParser()
}

func openLibrary() (*store.Library, error) {
	lib, err := store.Open(settings.LibraryPath())
	if err != nil {
		return nil, fmt.Errorf("opening scenario library: %w", err)
	}
	return lib, nil
}

// loadHousehold reads a household file and names it after the file.
func loadHousehold(path string) (string, *domain.Household, error) {
	h, err := newParser().LoadFromFile(path)
	if err != nil {
		return "", nil, err
	}
	return householdName(path), h, nil
}

func householdName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func scenarioName() string {
	if settings.General.DefaultScenario == "" {
		return domain.ScenarioModerate
	}
	return settings.General.DefaultScenario
}

func outputFormat(fallback string) string {
	if settings.General.OutputFormat == "" {
		return fallback
	}
	return settings.General.OutputFormat
}
