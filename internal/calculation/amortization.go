package calculation

import (
	"github.com/rpgo/household-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// MonthlyPayment returns the level monthly installment for a financed purchase
// using the annuity formula P*r*(1+r)^n / ((1+r)^n - 1) with r = rate/12 and
// n = years*12. Zero interest falls back to P/n. Cash purchases return zero.
func MonthlyPayment(mp domain.MajorPurchase) decimal.Decimal {
	if !mp.IsFinanced() {
		return decimal.Zero
	}
	payments := decimal.NewFromInt(int64(mp.FinancingYears * 12))
	r := mp.InterestRate.DivRound(twelve, factorPrecision)
	factor := compound(r, mp.FinancingYears*12)
	if factor.Equal(one) {
		// rates too small to register at factorPrecision amortize like zero interest
		return mp.Amount.DivRound(payments, factorPrecision)
	}
	return mp.Amount.Mul(r).Mul(factor).DivRound(factor.Sub(one), factorPrecision)
}

// AnnualPayment returns twelve monthly installments.
func AnnualPayment(mp domain.MajorPurchase) decimal.Decimal {
	return MonthlyPayment(mp).Mul(twelve)
}

// PurchaseExpenseForYear returns what the purchase costs in year: the cash amount
// in the trigger year when unfinanced, otherwise one annual payment for every
// year of the financing window.
func PurchaseExpenseForYear(mp domain.MajorPurchase, year int) decimal.Decimal {
	if !mp.IsFinanced() {
		if year == mp.Year {
			return mp.Amount
		}
		return decimal.Zero
	}
	if year < mp.Year || year > mp.LastPaymentYear() {
		return decimal.Zero
	}
	return AnnualPayment(mp)
}

// AmortizationRow summarizes one calendar year of a loan.
type AmortizationRow struct {
	Year      int             `json:"year"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
}

// AmortizationSchedule walks the loan month by month and aggregates per year.
// A cash purchase yields a single row paying the full amount.
func AmortizationSchedule(mp domain.MajorPurchase) []AmortizationRow {
	if !mp.IsFinanced() {
		return []AmortizationRow{{
			Year:      mp.Year,
			Payment:   mp.Amount,
			Interest:  decimal.Zero,
			Principal: mp.Amount,
			Balance:   decimal.Zero,
		}}
	}

	monthly := MonthlyPayment(mp)
	r := mp.InterestRate.DivRound(twelve, factorPrecision)
	balance := mp.Amount
	rows := make([]AmortizationRow, 0, mp.FinancingYears)
	for y := 0; y < mp.FinancingYears; y++ {
		row := AmortizationRow{Year: mp.Year + y}
		for m := 0; m < 12; m++ {
			interest := balance.Mul(r).Round(factorPrecision)
			principal := monthly.Sub(interest)
			balance = balance.Sub(principal)
			row.Payment = row.Payment.Add(monthly)
			row.Interest = row.Interest.Add(interest)
			row.Principal = row.Principal.Add(principal)
		}
		row.Payment = row.Payment.Round(moneyPlaces)
		row.Interest = row.Interest.Round(moneyPlaces)
		row.Principal = row.Principal.Round(moneyPlaces)
		row.Balance = balance.Round(moneyPlaces)
		rows = append(rows, row)
	}
	return rows
}
