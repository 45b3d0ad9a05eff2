package calculation

import (
	"github.com/rpgo/household-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// TotalExpensesForYear resolves every household expense component for year.
// Growth and inflation compound from the household's current year.
func TotalExpensesForYear(h *domain.Household, year int, params domain.ScenarioParameters) domain.ExpenseBreakdown {
	elapsed := year - h.CurrentYear
	healthcare := h.HealthcareExpenses()

	base := h.YearlyExpenses.Sub(healthcare)
	if base.IsNegative() {
		base = decimal.Zero
	}

	return domain.ExpenseBreakdown{
		Base:       base.Mul(compound(params.ExpenseGrowthRate, elapsed)).Round(moneyPlaces),
		Healthcare: healthcare.Mul(compound(params.HealthcareInflationRate, elapsed)).Round(moneyPlaces),
		Dependents: DependentExpensesForYear(h, year, params.InflationRate).Round(moneyPlaces),
		Purchases:  PurchaseExpensesForYear(h, year).Round(moneyPlaces),
	}
}

// DependentExpensesForYear sums template costs for every dependent, inflated from the current year.
// Dependents referencing a missing template contribute nothing.
func DependentExpensesForYear(h *domain.Household, year int, inflation decimal.Decimal) decimal.Decimal {
	factor := compound(inflation, year-h.CurrentYear)
	total := decimal.Zero
	for i := range h.Dependents {
		d := &h.Dependents[i]
		t, err := h.Template(d.TemplateName)
		if err != nil {
			continue
		}
		total = total.Add(templateCost(t, d.Age(year)).Mul(factor))
	}
	return total
}

// templateCost returns the uninflated annual cost of a template at age.
func templateCost(t *domain.DependentExpenseTemplate, age int) decimal.Decimal {
	cost := decimal.Zero
	if t.CoversAge(age) {
		cost = t.AgeTotal(age)
	}
	if !t.Legacy {
		return cost
	}

	if t.DaycareMonthlyCost.IsPositive() && age >= t.DaycareStartAge && age < t.DaycareEndAge {
		cost = cost.Add(t.DaycareMonthlyCost.Mul(twelve))
	}
	if t.EducationDuration > 0 && age >= t.EducationStartAge && age < t.EducationStartAge+t.EducationDuration {
		cost = cost.Add(t.EducationFundTarget.DivRound(decimal.NewFromInt(int64(t.EducationDuration)), factorPrecision))
	}
	return cost
}

// PurchaseExpensesForYear sums cash and financed purchase payments due in year.
func PurchaseExpensesForYear(h *domain.Household, year int) decimal.Decimal {
	total := decimal.Zero
	for _, mp := range h.Purchases {
		total = total.Add(PurchaseExpenseForYear(mp, year))
	}
	return total
}
