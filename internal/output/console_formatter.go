package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/household-planner/internal/domain"
)

// ConsoleFormatter renders the detailed console report with styled tables.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, RenderTitle("HOUSEHOLD FINANCIAL PROJECTION"))
	fmt.Fprintf(&buf, "Household: %s\n", report.Household)
	fmt.Fprintf(&buf, "Scenario:  %s\n\n", report.Scenario)

	params := Table{Title: "SCENARIO PARAMETERS"}
	for _, l := range scenarioLines(report.Parameters) {
		params.Rows = append(params.Rows, []string{l[0], l[1]})
	}
	buf.WriteString(RenderTable(params))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, headerStyle.Render("KEY ASSUMPTIONS:"))
	for _, a := range reportAssumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if len(report.Projection) > 0 {
		writeProjectionTable(&buf, report.Projection)
		writeHighlights(&buf, AnalyzeProjection(report.Projection))
	}
	if report.MonteCarlo != nil {
		writeMonteCarlo(&buf, report.MonteCarlo)
	}
	if len(report.Comparison) > 0 {
		writeComparison(&buf, report.Comparison)
	}
	return buf.Bytes(), nil
}

func writeProjectionTable(buf *bytes.Buffer, p domain.Projection) {
	t := Table{
		Title:   "YEAR-BY-YEAR PROJECTION",
		Headers: []string{"Year", "Income", "Expenses", "Return", "Net Change", "Net Worth"},
	}
	for _, r := range p {
		netWorth := FormatWhole(r.NetWorth)
		if !r.NetWorth.IsPositive() {
			netWorth += " !"
		}
		t.Rows = append(t.Rows, []string{
			intToString(r.Year),
			FormatWhole(r.TotalIncome),
			FormatWhole(r.TotalExpenses),
			FormatWhole(r.InvestmentReturn),
			FormatWhole(r.NetChange),
			netWorth,
		})
	}
	buf.WriteString(RenderTable(t))
	fmt.Fprintln(buf)
}

func writeHighlights(buf *bytes.Buffer, hl Highlights) {
	fmt.Fprintln(buf, headerStyle.Render("HIGHLIGHTS"))
	fmt.Fprintf(buf, "Ending net worth (%d):  %s\n", hl.EndYear, FormatCurrency(hl.EndingNetWorth))
	fmt.Fprintf(buf, "Lowest net worth (%d):  %s\n", hl.MinNetWorthYear, FormatCurrency(hl.MinNetWorth))
	fmt.Fprintf(buf, "Peak expenses (%d):     %s\n", hl.PeakExpenseYear, FormatCurrency(hl.PeakExpenses))
	if hl.Depleted {
		fmt.Fprintln(buf, badStyle.Render(fmt.Sprintf("Net worth depleted in %d", hl.DepletionYear)))
	} else {
		fmt.Fprintln(buf, goodStyle.Render("Net worth stays positive through the horizon"))
	}
	fmt.Fprintln(buf)
}

func writeMonteCarlo(buf *bytes.Buffer, mc *domain.MonteCarloResult) {
	t := Table{
		Title:   "MONTE CARLO SUMMARY",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Simulations", intToString(mc.NumSimulations)},
			{"Horizon (years)", intToString(mc.HorizonYears)},
			{"Success rate", FormatPercentage(mc.SuccessRate)},
			{"Median ending net worth", FormatWhole(mc.MedianEndingNetWorth)},
			{"10th percentile", FormatWhole(mc.Percentiles.P10)},
			{"25th percentile", FormatWhole(mc.Percentiles.P25)},
			{"75th percentile", FormatWhole(mc.Percentiles.P75)},
			{"90th percentile", FormatWhole(mc.Percentiles.P90)},
		},
	}
	buf.WriteString(RenderTable(t))
	if !mc.Completed {
		fmt.Fprintln(buf, badStyle.Render("Run did not complete; figures are partial"))
	}
	fmt.Fprintln(buf)
}

func writeComparison(buf *bytes.Buffer, comparison []domain.HouseholdComparison) {
	t := Table{
		Title:   "HOUSEHOLD COMPARISON",
		Headers: []string{"Household", "Ending Net Worth", "Lowest Net Worth", "Peak Expense", "Post-Retirement Income", "Years"},
	}
	for _, c := range comparison {
		t.Rows = append(t.Rows, []string{
			c.Name,
			FormatCompact(c.EndingNetWorth),
			FormatCompact(c.MinNetWorth),
			FormatCompact(c.MaxAnnualExpense),
			FormatCompact(c.PostRetirementIncome),
			intToString(c.ProjectionYears),
		})
	}
	buf.WriteString(RenderTable(t))
	if rec := AnalyzeComparison(comparison); rec.Household != "" {
		fmt.Fprintf(buf, "Recommended: %s (Δ %s / %s)\n", rec.Household, FormatCurrency(rec.NetWorthChange), FormatPercentage(rec.PercentageChange))
	}
	fmt.Fprintln(buf)
}
