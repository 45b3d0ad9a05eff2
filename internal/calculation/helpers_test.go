package calculation

import (
	"testing"

	"github.com/rpgo/household-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// singleEarnerHousehold is one 44-year-old earning 75k with 100k saved and 50k of yearly spend.
func singleEarnerHousehold(t *testing.T) *domain.Household {
	t.Helper()
	h := domain.NewHousehold(2024, decimal.NewFromInt(100000), decimal.NewFromInt(50000))
	p := domain.NewPerson("Alex", 1980, decimal.NewFromInt(75000), decimal.NewFromFloat(0.03), 65)
	require.NoError(t, h.AddPerson(p))
	return h
}

// shortHorizonHousehold ends in 2030 so Monte Carlo tests stay fast.
func shortHorizonHousehold(t *testing.T) *domain.Household {
	t.Helper()
	h := domain.NewHousehold(2024, decimal.NewFromInt(250000), decimal.NewFromInt(40000))
	p := domain.NewPerson("Pat", 1950, decimal.Zero, decimal.Zero, 65)
	p.DeathAge = 80
	p.EstimatedBenefit = decimal.NewFromInt(30000)
	require.NoError(t, h.AddPerson(p))
	return h
}

func assertClose(t *testing.T, expected, actual decimal.Decimal, tolerance float64, msgAndArgs ...any) {
	t.Helper()
	diff := expected.Sub(actual).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(tolerance)) {
		require.Failf(t, "values differ", "expected %s, got %s (difference %s) %v",
			expected.String(), actual.String(), diff.String(), msgAndArgs)
	}
}
