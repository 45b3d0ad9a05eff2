package calculation

import (
	"testing"

	"github.com/rpgo/household-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestFederalTaxCalculation tests federal income tax using the 2024 brackets
func TestFederalTaxCalculation(t *testing.T) {
	calculator := NewTaxCalculator2024()

	tests := []struct {
		name        string
		grossIncome decimal.Decimal
		status      domain.FilingStatus
		expectedTax decimal.Decimal
	}{
		{"No income", decimal.Zero, domain.FilingSingle, decimal.Zero},
		{"Exactly the standard deduction", decimal.NewFromInt(14600), domain.FilingSingle, decimal.Zero},
		{"Top of the 10% bracket", decimal.NewFromInt(26200), domain.FilingSingle, decimal.NewFromInt(1160)},
		{"Single into the 22% bracket", decimal.NewFromInt(75000), domain.FilingSingle, decimal.NewFromInt(8341)},
		{"Married into the 12% bracket", decimal.NewFromInt(100000), domain.FilingMarried, decimal.NewFromInt(8032)},
		{"Head of household", decimal.NewFromInt(50000), domain.FilingHeadOfHousehold, decimal.NewFromInt(3041)},
		{"Top bracket is unbounded", decimal.NewFromInt(700000), domain.FilingSingle, decimal.NewFromFloat(211785.75)},
		{"Unknown status taxed as single", decimal.NewFromInt(75000), domain.FilingStatus("widow"), decimal.NewFromInt(8341)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax := calculator.FederalTax(tt.grossIncome, tt.status)
			assert.True(t, tax.Equal(tt.expectedTax), "expected %s, got %s",
				tt.expectedTax.StringFixed(2), tax.StringFixed(2))
		})
	}
}

func TestTotalTaxAddsFlatStateRate(t *testing.T) {
	calculator := NewTaxCalculator2024()
	gross := decimal.NewFromInt(75000)

	state := calculator.StateTax(gross, decimal.NewFromFloat(0.05))
	assert.True(t, state.Equal(decimal.NewFromInt(3750)), "state tax: %s", state)

	total := calculator.TotalTax(gross, domain.FilingSingle, decimal.NewFromFloat(0.05))
	assert.True(t, total.Equal(decimal.NewFromInt(12091)), "total tax: %s", total)

	assert.True(t, calculator.TotalTax(gross, domain.FilingSingle, decimal.Zero).Equal(decimal.NewFromInt(8341)))
}

func TestTaxIsMonotonicInGrossIncome(t *testing.T) {
	calculator := NewTaxCalculator2024()
	step := decimal.NewFromInt(2500)
	limit := decimal.NewFromInt(900000)

	for _, status := range []domain.FilingStatus{domain.FilingSingle, domain.FilingMarried, domain.FilingHeadOfHousehold} {
		previous := decimal.Zero
		for gross := decimal.Zero; gross.LessThanOrEqual(limit); gross = gross.Add(step) {
			tax := calculator.TotalTax(gross, status, decimal.NewFromFloat(0.03))
			assert.True(t, tax.GreaterThanOrEqual(previous), "%s: tax fell at %s", status, gross)
			assert.False(t, tax.IsNegative())
			previous = tax
		}
	}
}

func TestMarginalRate(t *testing.T) {
	calculator := NewTaxCalculator2024()

	assert.True(t, calculator.MarginalRate(decimal.NewFromInt(10000), domain.FilingSingle).IsZero())
	assert.True(t, calculator.MarginalRate(decimal.NewFromInt(75000), domain.FilingSingle).Equal(decimal.NewFromFloat(0.22)))
	assert.True(t, calculator.MarginalRate(decimal.NewFromInt(75000), domain.FilingMarried).Equal(decimal.NewFromFloat(0.12)))
	assert.True(t, calculator.TopRate(domain.FilingHeadOfHousehold).Equal(decimal.NewFromFloat(0.37)))
}

func TestNewTaxCalculatorWithTables(t *testing.T) {
	flat := TaxTable{
		StandardDeduction: decimal.NewFromInt(10000),
		Brackets:          []TaxBracket{topBracket(0, 0.20)},
	}
	calculator := NewTaxCalculatorWithTables(2030, map[domain.FilingStatus]TaxTable{domain.FilingMarried: flat})

	tax := calculator.FederalTax(decimal.NewFromInt(60000), domain.FilingMarried)
	assert.True(t, tax.Equal(decimal.NewFromInt(10000)), "got %s", tax)

	// other statuses keep the 2024 tables
	assert.True(t, calculator.FederalTax(decimal.NewFromInt(26200), domain.FilingSingle).Equal(decimal.NewFromInt(1160)))
}

func TestSplitWithdrawal(t *testing.T) {
	calculator := NewTaxCalculator2024()

	split := calculator.SplitWithdrawal(domain.FilingSingle, decimal.NewFromInt(50000))
	assert.True(t, split.Taxable.Equal(decimal.NewFromInt(14600)))
	assert.True(t, split.TaxFree.Equal(decimal.NewFromInt(17700)))
	assert.True(t, split.TaxDeferred.Equal(decimal.NewFromInt(17700)))
	assert.True(t, split.Total().Equal(decimal.NewFromInt(50000)))

	small := calculator.SplitWithdrawal(domain.FilingMarried, decimal.NewFromInt(5000))
	assert.True(t, small.Taxable.Equal(decimal.NewFromInt(5000)))
	assert.True(t, small.TaxFree.IsZero())

	assert.Equal(t, WithdrawalSplit{}, calculator.SplitWithdrawal(domain.FilingSingle, decimal.NewFromInt(-1)))
}
