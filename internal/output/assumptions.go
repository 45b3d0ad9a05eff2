package output

import "github.com/rpgo/household-planner/internal/domain"

// DefaultAssumptions lists key modeling assumptions rendered when a report carries none.
var DefaultAssumptions = []string{
	"Federal tax uses 2024 brackets and standard deductions, not indexed for inflation",
	"State tax is a flat rate applied to gross income",
	"Income growth and general inflation compound from the household's current year",
	"Healthcare costs inflate separately from base expenses",
}

func reportAssumptions(report *domain.ProjectionReport) []string {
	if len(report.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return report.Assumptions
}

// scenarioLines renders the scenario parameters as label/value pairs.
func scenarioLines(params domain.ScenarioParameters) [][2]string {
	return [][2]string{
		{"Investment return", FormatRate(params.InvestmentReturn)},
		{"Inflation", FormatRate(params.InflationRate)},
		{"Expense growth", FormatRate(params.ExpenseGrowthRate)},
		{"Healthcare inflation", FormatRate(params.HealthcareInflationRate)},
	}
}
