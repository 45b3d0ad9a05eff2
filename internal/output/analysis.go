package output

import (
	"github.com/rpgo/household-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best compared household.
type Recommendation struct {
	Household        string
	EndingNetWorth   decimal.Decimal
	NetWorthChange   decimal.Decimal
	PercentageChange decimal.Decimal
}

// AnalyzeComparison picks the household with the highest ending net worth among
// those that never deplete, falling back to all households when every one does.
// The change is measured against the first compared household.
func AnalyzeComparison(comparison []domain.HouseholdComparison) Recommendation {
	if len(comparison) == 0 {
		return Recommendation{}
	}
	best := -1
	for i, c := range comparison {
		if !c.MinNetWorth.IsPositive() {
			continue
		}
		if best < 0 || c.EndingNetWorth.GreaterThan(comparison[best].EndingNetWorth) {
			best = i
		}
	}
	if best < 0 {
		best = 0
		for i, c := range comparison {
			if c.EndingNetWorth.GreaterThan(comparison[best].EndingNetWorth) {
				best = i
			}
		}
	}
	baseline := comparison[0].EndingNetWorth
	delta := comparison[best].EndingNetWorth.Sub(baseline)
	pct := decimal.Zero
	if !baseline.IsZero() {
		pct = delta.Div(baseline.Abs()).Mul(decimal.NewFromInt(100))
	}
	return Recommendation{
		Household:        comparison[best].Name,
		EndingNetWorth:   comparison[best].EndingNetWorth,
		NetWorthChange:   delta,
		PercentageChange: pct,
	}
}

// Highlights are the headline numbers of a single projection.
type Highlights struct {
	StartYear       int
	EndYear         int
	EndingNetWorth  decimal.Decimal
	MinNetWorth     decimal.Decimal
	MinNetWorthYear int
	PeakExpenses    decimal.Decimal
	PeakExpenseYear int
	DepletionYear   int
	Depleted        bool
}

// AnalyzeProjection extracts headline numbers from a projection.
func AnalyzeProjection(p domain.Projection) Highlights {
	if len(p) == 0 {
		return Highlights{}
	}
	hl := Highlights{
		StartYear:       p[0].Year,
		EndYear:         p.Final().Year,
		EndingNetWorth:  p.Final().NetWorth,
		MinNetWorth:     p[0].NetWorth,
		MinNetWorthYear: p[0].Year,
	}
	for _, r := range p {
		if r.NetWorth.LessThan(hl.MinNetWorth) {
			hl.MinNetWorth = r.NetWorth
			hl.MinNetWorthYear = r.Year
		}
		if r.TotalExpenses.GreaterThan(hl.PeakExpenses) {
			hl.PeakExpenses = r.TotalExpenses
			hl.PeakExpenseYear = r.Year
		}
	}
	hl.DepletionYear, hl.Depleted = p.FirstDepletionYear()
	return hl
}
