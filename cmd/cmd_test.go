package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/household-planner/internal/domain"
)

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// isolate points settings and the library at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeExample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	_, err := run(t, "example", path)
	require.NoError(t, err)
	return path
}

func TestExample_Stdout(t *testing.T) {
	isolate(t)
	out, err := run(t, "example")
	require.NoError(t, err)
	assert.Contains(t, out, "persons:")
	assert.Contains(t, out, "Partner 1")
	assert.Contains(t, out, "major_purchases:")
}

func TestProject_CSV(t *testing.T) {
	dir := isolate(t)
	path := writeExample(t, dir, "smith.yaml")

	out, err := run(t, "project", path, "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Year,TotalIncome,TotalExpenses,InvestmentReturn,NetChange,NetWorth", lines[0])
	assert.Greater(t, len(lines), 50)
}

func TestProject_ConsoleDefaultsToModerate(t *testing.T) {
	dir := isolate(t)
	path := writeExample(t, dir, "smith.json")

	out, err := run(t, "project", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Household: smith")
	assert.Contains(t, out, "Scenario:  Moderate")
}

func TestProject_UnknownScenario(t *testing.T) {
	dir := isolate(t)
	path := writeExample(t, dir, "smith.yaml")

	_, err := run(t, "project", path, "--scenario", "Reckless")
	assert.ErrorIs(t, err, domain.ErrUnknownScenario)
}

func TestProject_OutputDir(t *testing.T) {
	dir := isolate(t)
	path := writeExample(t, dir, "smith.yaml")
	outDir := filepath.Join(dir, "reports")
	require.NoError(t, os.MkdirAll(outDir, 0o755))

	out, err := run(t, "project", path, "-f", "json", "-o", outDir)
	require.NoError(t, err)
	assert.Empty(t, out)
	files, err := filepath.Glob(filepath.Join(outDir, "household_report_*.json"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestMonteCarlo_Export(t *testing.T) {
	dir := isolate(t)
	path := writeExample(t, dir, "smith.yaml")
	exportDir := filepath.Join(dir, "mc")

	out, err := run(t, "montecarlo", path, "-n", "5", "--seed", "7", "--export-dir", exportDir, "-f", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "MonteCarlo: Runs=5")
	for _, f := range []string{"monte_carlo_summary.csv", "monte_carlo_simulations.csv", "monte_carlo_percentiles.csv", "monte_carlo_depletions.csv"} {
		_, err := os.Stat(filepath.Join(exportDir, f))
		assert.NoError(t, err, f)
	}
}

func TestScenariosLifecycle(t *testing.T) {
	dir := isolate(t)
	path := writeExample(t, dir, "smith.yaml")

	out, err := run(t, "scenarios", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved households")

	out, err = run(t, "scenarios", "save", "Smith", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved Smith")
	_, err = run(t, "scenarios", "save", "Jones", path)
	require.NoError(t, err)

	out, err = run(t, "scenarios", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Smith")
	assert.Contains(t, out, "Jones")

	out, err = run(t, "scenarios", "show", "Smith")
	require.NoError(t, err)
	assert.Contains(t, out, "Partner 2")

	out, err = run(t, "compare", "-f", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "Jones: Ending=")
	assert.Contains(t, out, "Smith: Ending=")

	_, err = run(t, "scenarios", "delete", "Jones")
	require.NoError(t, err)
	_, err = run(t, "scenarios", "delete", "Jones")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompare_Files(t *testing.T) {
	dir := isolate(t)
	a := writeExample(t, dir, "alpha.yaml")
	b := writeExample(t, dir, "beta.json")

	out, err := run(t, "compare", a, b, "-f", "json", "-s", "Conservative")
	require.NoError(t, err)
	var report domain.ProjectionReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, domain.ScenarioConservative, report.Scenario)
	require.Len(t, report.Comparison, 2)
	assert.Equal(t, "alpha", report.Comparison[0].Name)

	out, err = run(t, "compare", a, b, "-f", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha: Ending=")
	assert.Contains(t, out, "beta: Ending=")
}

func TestPurchases(t *testing.T) {
	dir := isolate(t)
	path := writeExample(t, dir, "smith.yaml")

	out, err := run(t, "purchases", path, "Home Addition")
	require.NoError(t, err)
	assert.Contains(t, out, "Home Addition")
	assert.Contains(t, out, "10 years at 5.00%")
	assert.NotContains(t, out, "Car")

	_, err = run(t, "purchases", path, "Boat")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWithdraw(t *testing.T) {
	isolate(t)
	out, err := run(t, "withdraw", "40000", "--filing-status", "mfj")
	require.NoError(t, err)
	assert.Contains(t, out, "(married)")
	assert.Contains(t, out, "$29,200.00")
	assert.Contains(t, out, "$5,400.00")
}

func TestConfig_InitAndShow(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "settings.toml")
	t.Setenv("PLANNER_MC_SIMULATIONS", "250")

	out, err := run(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	out, err = run(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Status: loaded")
	assert.Contains(t, out, "Simulations: 250")
	assert.Contains(t, out, "Default scenario: Moderate")
}
