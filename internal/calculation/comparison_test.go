package calculation

import (
	"context"
	"errors"
	"testing"

	"github.com/rpgo/household-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareHouseholds(t *testing.T) {
	base := singleEarnerHousehold(t)
	frugal := singleEarnerHousehold(t)
	frugal.YearlyExpenses = decimal.NewFromInt(40000)

	engine := NewProjectionEngine()
	households := map[string]*domain.Household{"base": base, "frugal": frugal}

	results, err := engine.CompareHouseholds(context.Background(), households, []string{"frugal", "base"}, domain.ScenarioModerate)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "frugal", results[0].Name)
	assert.Equal(t, "base", results[1].Name)
	assert.True(t, results[0].EndingNetWorth.GreaterThan(results[1].EndingNetWorth))
	assert.True(t, results[0].MaxAnnualExpense.LessThan(results[1].MaxAnnualExpense))

	projection, err := engine.Project(context.Background(), base, domain.ScenarioModerate)
	require.NoError(t, err)
	assert.Equal(t, 2045, results[1].EarliestRetirementYear)
	assert.True(t, results[1].PostRetirementIncome.Equal(projection.IncomeFrom(2045)))
	assert.True(t, results[1].MinNetWorth.Equal(projection.MinNetWorth()))
	assert.Equal(t, 57, results[1].ProjectionYears)

	all, err := engine.CompareHouseholds(context.Background(), households, nil, domain.ScenarioModerate)
	require.NoError(t, err)
	assert.Equal(t, "base", all[0].Name)
}

func TestCompareHouseholdsMissing(t *testing.T) {
	engine := NewProjectionEngine()
	households := map[string]*domain.Household{"base": singleEarnerHousehold(t)}

	_, err := engine.CompareHouseholds(context.Background(), households, []string{"base", "ghost", "phantom"}, domain.ScenarioModerate)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "[ghost phantom]")
}

func TestSummarizeWithoutPersons(t *testing.T) {
	h := domain.NewHousehold(2024, decimal.NewFromInt(10), decimal.Zero)
	c := Summarize("empty", h, domain.Projection{{Year: 2024, NetWorth: decimal.NewFromInt(10)}})
	assert.True(t, c.PostRetirementIncome.IsZero())
	assert.Zero(t, c.EarliestRetirementYear)
	assert.Equal(t, 1, c.ProjectionYears)
}
