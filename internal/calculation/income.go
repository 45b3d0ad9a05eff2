package calculation

import (
	"github.com/rpgo/household-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// GrossIncomeForYear resolves a person's pre-tax income for a calendar year.
//
// Deceased persons earn nothing. Retired persons receive only the age-gated
// benefit. Working persons earn the latest step change (or the base income
// from the household's current year) compounded at their growth rate, with
// general inflation stacked on top from the current year.
func GrossIncomeForYear(h *domain.Household, p *domain.Person, year int, inflation decimal.Decimal) decimal.Decimal {
	if p.IsDeceased(year) {
		return decimal.Zero
	}
	if p.IsRetired(year) {
		return BenefitForYear(h, p, year)
	}

	var income decimal.Decimal
	if changeYear, amount, ok := p.LatestIncomeChange(year); ok {
		income = amount.Mul(compound(p.IncomeGrowthRate, year-changeYear))
	} else {
		income = p.BaseIncome.Mul(compound(p.IncomeGrowthRate, year-h.CurrentYear))
	}
	return income.Mul(compound(inflation, year-h.CurrentYear))
}

// BenefitForYear returns the retirement benefit payable in year: zero before the
// claim age, otherwise the estimate less any active shortfall.
func BenefitForYear(h *domain.Household, p *domain.Person, year int) decimal.Decimal {
	if p.IsDeceased(year) || p.Age(year) < p.BenefitClaimAge {
		return decimal.Zero
	}
	benefit := p.EstimatedBenefit
	if h.Scenarios.Shortfall.AppliesIn(year) {
		benefit = benefit.Mul(one.Sub(h.Scenarios.Shortfall.Rate))
	}
	return benefit
}

// NetIncome returns the person's gross, tax and net income for the year.
func (pe *ProjectionEngine) NetIncome(h *domain.Household, p *domain.Person, year int, inflation decimal.Decimal) domain.IncomeDetail {
	gross := GrossIncomeForYear(h, p, year, inflation)
	tax := pe.TaxCalc.TotalTax(gross, p.FilingStatus, p.StateTaxRate)
	return domain.IncomeDetail{
		Gross: gross.Round(moneyPlaces),
		Tax:   tax.Round(moneyPlaces),
		Net:   gross.Sub(tax).Round(moneyPlaces),
	}
}

// HouseholdIncome sums every person's net income and returns the per-person breakdown.
func (pe *ProjectionEngine) HouseholdIncome(h *domain.Household, year int, inflation decimal.Decimal) (decimal.Decimal, map[string]domain.IncomeDetail) {
	total := decimal.Zero
	details := make(map[string]domain.IncomeDetail, len(h.Persons))
	for i := range h.Persons {
		p := &h.Persons[i]
		detail := pe.NetIncome(h, p, year, inflation)
		details[p.Name] = detail
		total = total.Add(detail.Net)
	}
	return total, details
}
