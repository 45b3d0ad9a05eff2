package calculation

import (
	"github.com/rpgo/household-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal brackets and standard deductions are 2024 values held constant
//    for every projection year (no inflation indexing).
// 2. Federal tax applies to gross income less the filing-status standard
//    deduction, floored at zero.
// 3. State tax is a flat rate applied to gross income, not taxable income.
// 4. An unrecognized filing status is taxed as single.

// TaxBracket represents a marginal federal bracket. Max is nil for the top bracket.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  *decimal.Decimal
	Rate decimal.Decimal
}

// TaxTable holds the brackets and standard deduction for one filing status.
type TaxTable struct {
	StandardDeduction decimal.Decimal
	Brackets          []TaxBracket
}

// TaxCalculator computes federal plus flat state income tax. It holds no mutable state.
type TaxCalculator struct {
	Year   int
	Tables map[domain.FilingStatus]TaxTable
}

func bracket(min, max int64, rate float64) TaxBracket {
	upper := decimal.NewFromInt(max)
	return TaxBracket{Min: decimal.NewFromInt(min), Max: &upper, Rate: decimal.NewFromFloat(rate)}
}

func topBracket(min int64, rate float64) TaxBracket {
	return TaxBracket{Min: decimal.NewFromInt(min), Rate: decimal.NewFromFloat(rate)}
}

// NewTaxCalculator2024 creates a calculator with the 2024 federal tables.
func NewTaxCalculator2024() *TaxCalculator {
	return &TaxCalculator{
		Year: 2024,
		Tables: map[domain.FilingStatus]TaxTable{
			domain.FilingSingle: {
				StandardDeduction: decimal.NewFromInt(14600),
				Brackets: []TaxBracket{
					bracket(0, 11600, 0.10),
					bracket(11600, 47150, 0.12),
					bracket(47150, 100525, 0.22),
					bracket(100525, 191950, 0.24),
					bracket(191950, 243725, 0.32),
					bracket(243725, 609350, 0.35),
					topBracket(609350, 0.37),
				},
			},
			domain.FilingMarried: {
				StandardDeduction: decimal.NewFromInt(29200),
				Brackets: []TaxBracket{
					bracket(0, 23200, 0.10),
					bracket(23200, 94300, 0.12),
					bracket(94300, 201050, 0.22),
					bracket(201050, 383900, 0.24),
					bracket(383900, 487450, 0.32),
					bracket(487450, 731200, 0.35),
					topBracket(731200, 0.37),
				},
			},
			domain.FilingHeadOfHousehold: {
				StandardDeduction: decimal.NewFromInt(21900),
				Brackets: []TaxBracket{
					bracket(0, 16550, 0.10),
					bracket(16550, 63100, 0.12),
					bracket(63100, 100500, 0.22),
					bracket(100500, 191950, 0.24),
					bracket(191950, 243700, 0.32),
					bracket(243700, 609350, 0.35),
					topBracket(609350, 0.37),
				},
			},
		},
	}
}

// NewTaxCalculatorWithTables creates a calculator with caller-supplied tables.
// A missing single table is filled from the 2024 defaults so the fallback path always resolves.
func NewTaxCalculatorWithTables(year int, tables map[domain.FilingStatus]TaxTable) *TaxCalculator {
	defaults := NewTaxCalculator2024()
	merged := make(map[domain.FilingStatus]TaxTable, len(defaults.Tables))
	for status, table := range defaults.Tables {
		merged[status] = table
	}
	for status, table := range tables {
		merged[status.Normalized()] = table
	}
	return &TaxCalculator{Year: year, Tables: merged}
}

// table resolves the table for a status. Unknown statuses use the single table.
func (tc *TaxCalculator) table(status domain.FilingStatus) TaxTable {
	switch status {
	case domain.FilingSingle, domain.FilingMarried, domain.FilingHeadOfHousehold:
		if t, ok := tc.Tables[status]; ok {
			return t
		}
		return tc.Tables[domain.FilingSingle]
	default:
		return tc.Tables[domain.FilingSingle]
	}
}

// StandardDeduction returns the standard deduction for the filing status.
func (tc *TaxCalculator) StandardDeduction(status domain.FilingStatus) decimal.Decimal {
	return tc.table(status).StandardDeduction
}

// TaxableIncome returns gross income less the standard deduction, floored at zero.
func (tc *TaxCalculator) TaxableIncome(grossIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	taxable := grossIncome.Sub(tc.StandardDeduction(status))
	if taxable.IsNegative() {
		return decimal.Zero
	}
	return taxable
}

// FederalTax calculates federal income tax by filling brackets in order.
func (tc *TaxCalculator) FederalTax(grossIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	taxableIncome := tc.TaxableIncome(grossIncome, status)
	if taxableIncome.IsZero() {
		return decimal.Zero
	}

	var totalTax decimal.Decimal
	for _, b := range tc.table(status).Brackets {
		if taxableIncome.LessThanOrEqual(b.Min) {
			break
		}
		upper := taxableIncome
		if b.Max != nil {
			upper = decimal.Min(taxableIncome, *b.Max)
		}
		totalTax = totalTax.Add(upper.Sub(b.Min).Mul(b.Rate))
	}
	return totalTax
}

// StateTax applies the flat state rate to gross income.
func (tc *TaxCalculator) StateTax(grossIncome, stateRate decimal.Decimal) decimal.Decimal {
	if grossIncome.IsNegative() || stateRate.IsNegative() {
		return decimal.Zero
	}
	return grossIncome.Mul(stateRate)
}

// TotalTax returns federal plus state tax.
func (tc *TaxCalculator) TotalTax(grossIncome decimal.Decimal, status domain.FilingStatus, stateRate decimal.Decimal) decimal.Decimal {
	return tc.FederalTax(grossIncome, status).Add(tc.StateTax(grossIncome, stateRate))
}

// MarginalRate returns the federal bracket rate applying to the last dollar of gross income.
func (tc *TaxCalculator) MarginalRate(grossIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	taxable := tc.TaxableIncome(grossIncome, status)
	rate := decimal.Zero
	for _, b := range tc.table(status).Brackets {
		if taxable.GreaterThan(b.Min) {
			rate = b.Rate
		}
	}
	return rate
}

// TopRate returns the top bracket rate for the filing status.
func (tc *TaxCalculator) TopRate(status domain.FilingStatus) decimal.Decimal {
	brackets := tc.table(status).Brackets
	if len(brackets) == 0 {
		return decimal.Zero
	}
	return brackets[len(brackets)-1].Rate
}
