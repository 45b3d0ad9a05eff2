package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MajorPurchase is a one-time or financed expense triggered in a given year.
// With FinancingYears == 0 the full amount is paid in Year; otherwise it is
// amortized over [Year, Year+FinancingYears-1].
type MajorPurchase struct {
	Name           string          `yaml:"name" json:"name"`
	Year           int             `yaml:"year" json:"year"`
	Amount         decimal.Decimal `yaml:"amount" json:"amount"`
	FinancingYears int             `yaml:"financing_years" json:"financing_years"`
	InterestRate   decimal.Decimal `yaml:"interest_rate" json:"interest_rate"`
}

// IsFinanced reports whether the purchase is paid in installments.
func (mp *MajorPurchase) IsFinanced() bool {
	return mp.FinancingYears > 0
}

// LastPaymentYear returns the final year in which a payment is due.
func (mp *MajorPurchase) LastPaymentYear() int {
	if !mp.IsFinanced() {
		return mp.Year
	}
	return mp.Year + mp.FinancingYears - 1
}

// Validate checks purchase invariants.
func (mp *MajorPurchase) Validate() error {
	if strings.TrimSpace(mp.Name) == "" {
		return fmt.Errorf("%w: purchase name is required", ErrInvalidInput)
	}
	if mp.Amount.IsNegative() {
		return fmt.Errorf("%w: purchase %s: amount cannot be negative", ErrInvalidInput, mp.Name)
	}
	if mp.FinancingYears < 0 {
		return fmt.Errorf("%w: purchase %s: financing years cannot be negative", ErrInvalidInput, mp.Name)
	}
	if mp.InterestRate.IsNegative() {
		return fmt.Errorf("%w: purchase %s: interest rate cannot be negative", ErrInvalidInput, mp.Name)
	}
	return nil
}
