package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/household-planner/internal/domain"
)

// ConsoleLiteFormatter provides a concise plain-text summary via the formatter interface.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string      { return "console-lite" }
func (c ConsoleLiteFormatter) Extension() string { return "txt" }

func (c ConsoleLiteFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "HOUSEHOLD PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "%s / %s\n", report.Household, report.Scenario)
	if len(report.Projection) > 0 {
		hl := AnalyzeProjection(report.Projection)
		fmt.Fprintf(&buf, "Years=%d-%d Ending=%s Lowest=%s PeakExpenses=%s\n",
			hl.StartYear, hl.EndYear,
			FormatCompact(hl.EndingNetWorth),
			FormatCompact(hl.MinNetWorth),
			FormatCompact(hl.PeakExpenses),
		)
		if hl.Depleted {
			fmt.Fprintf(&buf, "Depleted=%d\n", hl.DepletionYear)
		}
	}
	if mc := report.MonteCarlo; mc != nil {
		fmt.Fprintf(&buf, "MonteCarlo: Runs=%d Success=%s Median=%s P10=%s P90=%s\n",
			mc.NumSimulations,
			FormatPercentage(mc.SuccessRate),
			FormatCompact(mc.MedianEndingNetWorth),
			FormatCompact(mc.Percentiles.P10),
			FormatCompact(mc.Percentiles.P90),
		)
	}
	for _, c := range report.Comparison {
		fmt.Fprintf(&buf, "%s: Ending=%s Lowest=%s PeakExpense=%s Years=%d\n",
			c.Name,
			FormatCompact(c.EndingNetWorth),
			FormatCompact(c.MinNetWorth),
			FormatCompact(c.MaxAnnualExpense),
			c.ProjectionYears,
		)
	}
	if rec := AnalyzeComparison(report.Comparison); rec.Household != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (Δ %s / %s)\n", rec.Household, FormatCurrency(rec.NetWorthChange), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}
