package calculation

import (
	"github.com/rpgo/household-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// WithdrawalSplit is a simplified source allocation for a retirement withdrawal.
type WithdrawalSplit struct {
	Taxable     decimal.Decimal `json:"taxable"`
	TaxDeferred decimal.Decimal `json:"tax_deferred"`
	TaxFree     decimal.Decimal `json:"tax_free"`
}

// Total sums the three sources.
func (ws WithdrawalSplit) Total() decimal.Decimal {
	return ws.Taxable.Add(ws.TaxDeferred).Add(ws.TaxFree)
}

var half = decimal.NewFromFloat(0.5)

// SplitWithdrawal fills the standard deduction from taxable accounts, takes half
// of the remainder tax-free and the rest from tax-deferred accounts.
// Required minimum distributions are not modeled.
func (tc *TaxCalculator) SplitWithdrawal(status domain.FilingStatus, amountNeeded decimal.Decimal) WithdrawalSplit {
	if !amountNeeded.IsPositive() {
		return WithdrawalSplit{}
	}
	taxable := decimal.Min(tc.StandardDeduction(status), amountNeeded)
	remaining := amountNeeded.Sub(taxable)
	taxFree := remaining.Mul(half)
	return WithdrawalSplit{
		Taxable:     taxable,
		TaxFree:     taxFree,
		TaxDeferred: remaining.Sub(taxFree),
	}
}
