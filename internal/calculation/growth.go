package calculation

import "github.com/shopspring/decimal"

// factorPrecision bounds the digits kept in compounded growth factors.
const factorPrecision int32 = 20

// moneyPlaces is the rounding applied to amounts stored in year records.
const moneyPlaces int32 = 2

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// compound returns (1+rate)^periods. Negative periods discount.
func compound(rate decimal.Decimal, periods int) decimal.Decimal {
	if periods < 0 {
		return one.DivRound(compound(rate, -periods), factorPrecision)
	}
	base := one.Add(rate)
	result := one
	for periods > 0 {
		if periods&1 == 1 {
			result = result.Mul(base).Round(factorPrecision)
		}
		base = base.Mul(base).Round(factorPrecision)
		periods >>= 1
	}
	return result
}
