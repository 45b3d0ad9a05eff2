package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/rpgo/household-planner/internal/domain"
)

// ErrNoMonteCarlo is returned when a Monte Carlo export is requested for a report without a run.
var ErrNoMonteCarlo = errors.New("report has no monte carlo result")

// MonteCarloCSVReport generates CSV exports for a Monte Carlo result.
type MonteCarloCSVReport struct {
	Result *domain.MonteCarloResult
}

func writeRows(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSummary writes aggregate statistics as Metric,Value,Description rows.
func (m *MonteCarloCSVReport) WriteSummary(w io.Writer) error {
	r := m.Result
	rows := [][]string{
		{"Success Rate", FormatPercentage(r.SuccessRate), "Percentage of simulations whose net worth stayed positive every year"},
		{"Median Ending Net Worth", "$" + r.MedianEndingNetWorth.StringFixed(0), "Median final-year net worth"},
		{"10th Percentile", "$" + r.Percentiles.P10.StringFixed(0), "10th percentile of ending net worth"},
		{"25th Percentile", "$" + r.Percentiles.P25.StringFixed(0), "25th percentile of ending net worth"},
		{"75th Percentile", "$" + r.Percentiles.P75.StringFixed(0), "75th percentile of ending net worth"},
		{"90th Percentile", "$" + r.Percentiles.P90.StringFixed(0), "90th percentile of ending net worth"},
		{"Number of Simulations", intToString(r.NumSimulations), "Total number of simulations run"},
		{"Requested Simulations", intToString(r.RequestedSimulations), "Simulation count before clamping"},
		{"Horizon Years", intToString(r.HorizonYears), "Years projected per simulation"},
		{"Completed", boolToString(r.Completed), "Whether every simulation finished"},
	}
	return writeRows(w, []string{"Metric", "Value", "Description"}, rows)
}

// WriteSimulations writes one row per simulation.
func (m *MonteCarloCSVReport) WriteSimulations(w io.Writer) error {
	rows := make([][]string, 0, len(m.Result.Simulations))
	for _, sim := range m.Result.Simulations {
		depletion := ""
		if sim.DepletionYear != 0 {
			depletion = intToString(sim.DepletionYear)
		}
		rows = append(rows, []string{
			intToString(sim.Index),
			boolToString(sim.Success),
			sim.EndingNetWorth.StringFixed(2),
			sim.MinNetWorth.StringFixed(2),
			depletion,
		})
	}
	return writeRows(w, []string{"SimulationID", "Success", "EndingNetWorth", "MinNetWorth", "DepletionYear"}, rows)
}

// WritePercentiles writes the percentile table with interpretations.
func (m *MonteCarloCSVReport) WritePercentiles(w io.Writer) error {
	p := m.Result.Percentiles
	rows := [][]string{
		{"10th", "$" + p.P10.StringFixed(0), "Worst 10% of scenarios"},
		{"25th", "$" + p.P25.StringFixed(0), "Below average scenarios"},
		{"50th (Median)", "$" + p.P50.StringFixed(0), "Typical scenario"},
		{"75th", "$" + p.P75.StringFixed(0), "Above average scenarios"},
		{"90th", "$" + p.P90.StringFixed(0), "Best 10% of scenarios"},
	}
	return writeRows(w, []string{"Percentile", "EndingNetWorth", "Interpretation"}, rows)
}

// WriteDepletions writes how many simulations first depleted in each year.
func (m *MonteCarloCSVReport) WriteDepletions(w io.Writer) error {
	years := make([]int, 0, len(m.Result.DepletionByYear))
	for y := range m.Result.DepletionByYear {
		years = append(years, y)
	}
	sort.Ints(years)
	rows := make([][]string, 0, len(years))
	for _, y := range years {
		rows = append(rows, []string{intToString(y), intToString(m.Result.DepletionByYear[y])})
	}
	return writeRows(w, []string{"Year", "Depletions"}, rows)
}

// GenerateAllCSVReports creates all CSV reports in a single directory.
func (m *MonteCarloCSVReport) GenerateAllCSVReports(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	reports := []struct {
		file  string
		write func(io.Writer) error
	}{
		{"monte_carlo_summary.csv", m.WriteSummary},
		{"monte_carlo_simulations.csv", m.WriteSimulations},
		{"monte_carlo_percentiles.csv", m.WritePercentiles},
		{"monte_carlo_depletions.csv", m.WriteDepletions},
	}
	for _, r := range reports {
		if err := writeFile(filepath.Join(outputDir, r.file), r.write); err != nil {
			return fmt.Errorf("failed to generate %s: %w", r.file, err)
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// MonteCarloCSVFormatter renders the summary of a report's Monte Carlo result.
type MonteCarloCSVFormatter struct{}

func (m MonteCarloCSVFormatter) Name() string      { return "montecarlo-csv" }
func (m MonteCarloCSVFormatter) Extension() string { return "csv" }

func (m MonteCarloCSVFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	if report.MonteCarlo == nil {
		return nil, ErrNoMonteCarlo
	}
	var buf bytes.Buffer
	r := &MonteCarloCSVReport{Result: report.MonteCarlo}
	if err := r.WriteSummary(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
