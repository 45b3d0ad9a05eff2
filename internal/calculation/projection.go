package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpgo/household-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInsufficientReturns is returned when an explicit return sequence does not cover the horizon.
var ErrInsufficientReturns = errors.New("insufficient return sequence")

// ProjectionEngine drives the year-by-year net worth loop.
type ProjectionEngine struct {
	TaxCalc *TaxCalculator
	Debug   bool // Enable per-year debug output
	Logger  Logger
}

// NewProjectionEngine creates an engine with the 2024 tax tables and a no-op logger.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{
		TaxCalc: NewTaxCalculator2024(),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// Project runs the household through the named scenario at its constant investment return.
func (pe *ProjectionEngine) Project(ctx context.Context, h *domain.Household, scenarioName string) (domain.Projection, error) {
	params, err := h.Scenarios.Lookup(scenarioName)
	if err != nil {
		return nil, err
	}
	returns := make([]decimal.Decimal, h.HorizonLength())
	for i := range returns {
		returns[i] = params.InvestmentReturn
	}
	return pe.run(ctx, h, params, returns)
}

// ProjectWithReturns runs the named scenario but takes the investment return for
// each year from returns. The sequence must cover the whole horizon.
func (pe *ProjectionEngine) ProjectWithReturns(ctx context.Context, h *domain.Household, scenarioName string, returns []decimal.Decimal) (domain.Projection, error) {
	params, err := h.Scenarios.Lookup(scenarioName)
	if err != nil {
		return nil, err
	}
	if need := h.HorizonLength(); len(returns) < need {
		return nil, fmt.Errorf("%w: got %d returns for %d projection years (%d-%d)",
			ErrInsufficientReturns, len(returns), need, h.CurrentYear, h.HorizonYear())
	}
	return pe.run(ctx, h, params, returns)
}

// run is the shared loop. Each year depends only on the previous net worth and that year's flows.
func (pe *ProjectionEngine) run(ctx context.Context, h *domain.Household, params domain.ScenarioParameters, returns []decimal.Decimal) (domain.Projection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(h.Persons) == 0 {
		pe.Logger.Warnf("household has no persons; projecting %d only", h.CurrentYear)
	}

	start, end := h.CurrentYear, h.HorizonYear()
	records := make(domain.Projection, 0, end-start+1)
	netWorth := h.CurrentNetWorth

	for year := start; year <= end; year++ {
		rate := returns[year-start]

		income, details := pe.HouseholdIncome(h, year, params.InflationRate)
		expenses := TotalExpensesForYear(h, year, params)
		totalExpenses := expenses.Total()
		investmentReturn := netWorth.Mul(rate).Round(moneyPlaces)

		netChange := income.Sub(totalExpenses).Add(investmentReturn)
		netWorth = netWorth.Add(netChange)

		if pe.Debug {
			pe.Logger.Debugf("%d: income=%s expenses=%s return=%s (%s) net_worth=%s",
				year, income.StringFixed(2), totalExpenses.StringFixed(2),
				investmentReturn.StringFixed(2), rate.String(), netWorth.StringFixed(2))
		}

		records = append(records, domain.YearRecord{
			Year:             year,
			TotalIncome:      income,
			TotalExpenses:    totalExpenses,
			InvestmentReturn: investmentReturn,
			NetChange:        netChange,
			NetWorth:         netWorth,
			ReturnRate:       rate,
			IncomeDetails:    details,
			Expenses:         expenses,
		})
	}
	return records, nil
}

// Report bundles a deterministic projection for the output formatters.
func (pe *ProjectionEngine) Report(ctx context.Context, name string, h *domain.Household, scenarioName string) (*domain.ProjectionReport, error) {
	params, err := h.Scenarios.Lookup(scenarioName)
	if err != nil {
		return nil, err
	}
	projection, err := pe.Project(ctx, h, scenarioName)
	if err != nil {
		return nil, err
	}
	return &domain.ProjectionReport{
		Household:   name,
		Scenario:    scenarioName,
		Parameters:  params,
		Projection:  projection,
		Assumptions: Assumptions(h),
	}, nil
}

// Assumptions lists the modeling assumptions behind every projection of h.
func Assumptions(h *domain.Household) []string {
	out := []string{
		"Federal tax uses 2024 brackets and standard deductions, not indexed for inflation",
		"State tax is a flat rate applied to gross income",
		"Working income stops entirely at retirement age; retirement benefits start at the claim age",
		"Income growth and general inflation compound from the household's current year",
		"Healthcare costs inflate separately from base expenses",
		"Financed purchases are paid as twelve level monthly installments per year",
	}
	if sf := h.Scenarios.Shortfall; sf.Enabled {
		out = append(out, fmt.Sprintf("Retirement benefits are reduced by %s%% from %d",
			sf.Rate.Mul(hundred).StringFixed(0), sf.Year))
	}
	return out
}
