package domain

import (
	"github.com/shopspring/decimal"
)

// IncomeDetail is one person's income for a year.
type IncomeDetail struct {
	Gross decimal.Decimal `json:"gross"`
	Tax   decimal.Decimal `json:"tax"`
	Net   decimal.Decimal `json:"net"`
}

// ExpenseBreakdown splits a year's household expenses by source.
type ExpenseBreakdown struct {
	Base       decimal.Decimal `json:"base"`
	Healthcare decimal.Decimal `json:"healthcare"`
	Dependents decimal.Decimal `json:"dependents"`
	Purchases  decimal.Decimal `json:"purchases"`
}

// Total sums every component.
func (eb ExpenseBreakdown) Total() decimal.Decimal {
	return eb.Base.Add(eb.Healthcare).Add(eb.Dependents).Add(eb.Purchases)
}

// YearRecord is a single year of a projection.
type YearRecord struct {
	Year             int                     `json:"year"`
	TotalIncome      decimal.Decimal         `json:"total_income"`
	TotalExpenses    decimal.Decimal         `json:"total_expenses"`
	InvestmentReturn decimal.Decimal         `json:"investment_return"`
	NetChange        decimal.Decimal         `json:"net_change"`
	NetWorth         decimal.Decimal         `json:"net_worth"`
	ReturnRate       decimal.Decimal         `json:"return_rate"`
	IncomeDetails    map[string]IncomeDetail `json:"income_details,omitempty"`
	Expenses         ExpenseBreakdown        `json:"expenses"`
}

// Projection is the ordered sequence of yearly records for one run.
type Projection []YearRecord

// Final returns the last record, or a zero record when empty.
func (p Projection) Final() YearRecord {
	if len(p) == 0 {
		return YearRecord{}
	}
	return p[len(p)-1]
}

// MinNetWorth returns the lowest net worth across the projection.
func (p Projection) MinNetWorth() decimal.Decimal {
	if len(p) == 0 {
		return decimal.Zero
	}
	lowest := p[0].NetWorth
	for _, r := range p[1:] {
		if r.NetWorth.LessThan(lowest) {
			lowest = r.NetWorth
		}
	}
	return lowest
}

// PeakExpenses returns the largest annual expense total.
func (p Projection) PeakExpenses() decimal.Decimal {
	peak := decimal.Zero
	for _, r := range p {
		if r.TotalExpenses.GreaterThan(peak) {
			peak = r.TotalExpenses
		}
	}
	return peak
}

// NeverDepleted reports whether net worth stayed strictly positive every year.
func (p Projection) NeverDepleted() bool {
	for _, r := range p {
		if !r.NetWorth.IsPositive() {
			return false
		}
	}
	return true
}

// FirstDepletionYear returns the first year net worth was not positive.
func (p Projection) FirstDepletionYear() (int, bool) {
	for _, r := range p {
		if !r.NetWorth.IsPositive() {
			return r.Year, true
		}
	}
	return 0, false
}

// IncomeFrom sums total income for years at or after the given year.
func (p Projection) IncomeFrom(year int) decimal.Decimal {
	total := decimal.Zero
	for _, r := range p {
		if r.Year >= year {
			total = total.Add(r.TotalIncome)
		}
	}
	return total
}

// PercentileRanges holds ending net worth percentiles across an ensemble.
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// SimulationOutcome is one Monte Carlo trajectory and its verdict.
type SimulationOutcome struct {
	Index          int               `json:"index"`
	Returns        []decimal.Decimal `json:"returns,omitempty"`
	Trajectory     Projection        `json:"trajectory,omitempty"`
	EndingNetWorth decimal.Decimal   `json:"ending_net_worth"`
	MinNetWorth    decimal.Decimal   `json:"min_net_worth"`
	DepletionYear  int               `json:"depletion_year,omitempty"`
	Success        bool              `json:"success"`
}

// MonteCarloResult aggregates a batch of simulations.
// Completed is the only completion signal: it is false when the batch was aborted,
// and such a result is not a 0% success verdict. Simulations is opt-in and stays
// empty on a completed run unless trajectories were requested, so an empty
// ensemble says nothing about completion.
type MonteCarloResult struct {
	Scenario             string              `json:"scenario"`
	NumSimulations       int                 `json:"num_simulations"`
	RequestedSimulations int                 `json:"requested_simulations"`
	HorizonYears         int                 `json:"horizon_years"`
	Successes            int                 `json:"successes"`
	SuccessRate          decimal.Decimal     `json:"success_rate"` // percent, 0-100
	MedianEndingNetWorth decimal.Decimal     `json:"median_ending_net_worth"`
	Percentiles          PercentileRanges    `json:"percentiles"`
	DepletionByYear      map[int]int         `json:"depletion_by_year,omitempty"`
	Simulations          []SimulationOutcome `json:"simulations,omitempty"`
	Completed            bool                `json:"completed"`
}

// HouseholdComparison is the per-household summary produced by scenario comparison.
type HouseholdComparison struct {
	Name                   string          `json:"name"`
	EndingNetWorth         decimal.Decimal `json:"ending_net_worth"`
	MinNetWorth            decimal.Decimal `json:"min_net_worth"`
	MaxAnnualExpense       decimal.Decimal `json:"max_annual_expense"`
	PostRetirementIncome   decimal.Decimal `json:"post_retirement_income"`
	ProjectionYears        int             `json:"projection_years"`
	EarliestRetirementYear int             `json:"earliest_retirement_year,omitempty"`
}

// ProjectionReport bundles everything an output formatter can render.
type ProjectionReport struct {
	Household   string                `json:"household"`
	Scenario    string                `json:"scenario"`
	Parameters  ScenarioParameters    `json:"parameters"`
	Projection  Projection            `json:"projection,omitempty"`
	MonteCarlo  *MonteCarloResult     `json:"monte_carlo,omitempty"`
	Comparison  []HouseholdComparison `json:"comparison,omitempty"`
	Assumptions []string              `json:"assumptions,omitempty"`
}
