package output

import (
	"github.com/rpgo/household-planner/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func record(year int, income, expenses, ret, netWorth string) domain.YearRecord {
	in, ex, rt := dec(income), dec(expenses), dec(ret)
	return domain.YearRecord{
		Year:             year,
		TotalIncome:      in,
		TotalExpenses:    ex,
		InvestmentReturn: rt,
		NetChange:        in.Sub(ex).Add(rt),
		NetWorth:         dec(netWorth),
		ReturnRate:       dec("0.06"),
		IncomeDetails: map[string]domain.IncomeDetail{
			"Bea": {Gross: in, Tax: decimal.Zero, Net: in},
		},
		Expenses: domain.ExpenseBreakdown{Base: ex},
	}
}

func buildTestReport() *domain.ProjectionReport {
	return &domain.ProjectionReport{
		Household:  "Smith",
		Scenario:   domain.ScenarioModerate,
		Parameters: domain.DefaultScenarioSet().Presets[domain.ScenarioModerate],
		Projection: domain.Projection{
			record(2024, "66659", "50000", "6000", "122659"),
			record(2025, "68000", "90000", "7359.54", "108018.54"),
			record(2026, "69000", "52000", "6481.11", "131499.65"),
		},
		Assumptions: []string{"State tax is a flat rate applied to gross income"},
	}
}

func buildMonteCarloReport() *domain.ProjectionReport {
	r := buildTestReport()
	r.MonteCarlo = &domain.MonteCarloResult{
		Scenario:             domain.ScenarioModerate,
		NumSimulations:       4,
		RequestedSimulations: 4,
		HorizonYears:         3,
		Successes:            3,
		SuccessRate:          dec("75"),
		MedianEndingNetWorth: dec("130000"),
		Percentiles: domain.PercentileRanges{
			P10: dec("-5000"), P25: dec("90000"), P50: dec("130000"), P75: dec("150000"), P90: dec("170000"),
		},
		DepletionByYear: map[int]int{2026: 1},
		Simulations: []domain.SimulationOutcome{
			{Index: 0, EndingNetWorth: dec("130000"), MinNetWorth: dec("100000"), Success: true},
			{Index: 1, EndingNetWorth: dec("-5000"), MinNetWorth: dec("-5000"), DepletionYear: 2026},
			{Index: 2, EndingNetWorth: dec("150000"), MinNetWorth: dec("110000"), Success: true},
			{Index: 3, EndingNetWorth: dec("170000"), MinNetWorth: dec("120000"), Success: true},
		},
		Completed: true,
	}
	return r
}

func buildComparison() []domain.HouseholdComparison {
	return []domain.HouseholdComparison{
		{Name: "Baseline", EndingNetWorth: dec("500000"), MinNetWorth: dec("100000"), MaxAnnualExpense: dec("60000"), ProjectionYears: 30},
		{Name: "Early Retirement", EndingNetWorth: dec("900000"), MinNetWorth: dec("-1000"), MaxAnnualExpense: dec("65000"), ProjectionYears: 30},
		{Name: "Downsize", EndingNetWorth: dec("750000"), MinNetWorth: dec("150000"), MaxAnnualExpense: dec("55000"), ProjectionYears: 30},
	}
}
