package calculation

import (
	"context"
	"fmt"
	"sort"

	"github.com/rpgo/household-planner/internal/domain"
)

// CompareHouseholds projects each named household under the same scenario and
// summarizes the outcomes in the order of names. An empty names slice compares
// every household in alphabetical order.
func (pe *ProjectionEngine) CompareHouseholds(ctx context.Context, households map[string]*domain.Household, names []string, scenarioName string) ([]domain.HouseholdComparison, error) {
	if len(names) == 0 {
		for name := range households {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	var missing []string
	for _, name := range names {
		if _, ok := households[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("households not found %v: %w", missing, domain.ErrNotFound)
	}

	out := make([]domain.HouseholdComparison, 0, len(names))
	for _, name := range names {
		h := households[name]
		projection, err := pe.Project(ctx, h, scenarioName)
		if err != nil {
			return nil, fmt.Errorf("projecting %s: %w", name, err)
		}
		out = append(out, Summarize(name, h, projection))
	}
	return out, nil
}

// Summarize reduces a projection to its comparison metrics. Post-retirement
// income counts years from the earliest retirement of any person.
func Summarize(name string, h *domain.Household, projection domain.Projection) domain.HouseholdComparison {
	c := domain.HouseholdComparison{
		Name:             name,
		EndingNetWorth:   projection.Final().NetWorth,
		MinNetWorth:      projection.MinNetWorth(),
		MaxAnnualExpense: projection.PeakExpenses(),
		ProjectionYears:  len(projection),
	}
	if year, ok := h.EarliestRetirementYear(); ok {
		c.EarliestRetirementYear = year
		c.PostRetirementIncome = projection.IncomeFrom(year)
	}
	return c
}
