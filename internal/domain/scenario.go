package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Built-in scenario preset names.
const (
	ScenarioConservative = "Conservative"
	ScenarioModerate     = "Moderate"
	ScenarioAggressive   = "Aggressive"
)

// ScenarioParameters are the macro assumptions applied for one projection.
type ScenarioParameters struct {
	InvestmentReturn        decimal.Decimal `yaml:"investment_return" json:"investment_return"`
	InflationRate           decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	ExpenseGrowthRate       decimal.Decimal `yaml:"expense_growth_rate" json:"expense_growth_rate"`
	HealthcareInflationRate decimal.Decimal `yaml:"healthcare_inflation_rate" json:"healthcare_inflation_rate"`
}

// BenefitShortfall reduces retirement-benefit payouts by Rate from Year onward when Enabled.
type BenefitShortfall struct {
	Enabled bool            `yaml:"enabled" json:"enabled"`
	Year    int             `yaml:"year" json:"year"`
	Rate    decimal.Decimal `yaml:"rate" json:"rate"`
}

// AppliesIn reports whether the shortfall reduces benefits in the given year.
func (bs BenefitShortfall) AppliesIn(year int) bool {
	return bs.Enabled && year >= bs.Year
}

// ScenarioSet holds named presets plus the global benefit shortfall toggle.
type ScenarioSet struct {
	Presets   map[string]ScenarioParameters `yaml:"presets" json:"presets"`
	Shortfall BenefitShortfall              `yaml:"benefit_shortfall" json:"benefit_shortfall"`
}

// DefaultScenarioSet returns the Conservative/Moderate/Aggressive presets with the shortfall enabled from 2034 at 30%.
func DefaultScenarioSet() ScenarioSet {
	return ScenarioSet{
		Presets: map[string]ScenarioParameters{
			ScenarioConservative: {
				InvestmentReturn:        decimal.NewFromFloat(0.04),
				InflationRate:           decimal.NewFromFloat(0.03),
				ExpenseGrowthRate:       decimal.NewFromFloat(0.02),
				HealthcareInflationRate: decimal.NewFromFloat(0.05),
			},
			ScenarioModerate: {
				InvestmentReturn:        decimal.NewFromFloat(0.06),
				InflationRate:           decimal.NewFromFloat(0.025),
				ExpenseGrowthRate:       decimal.NewFromFloat(0.02),
				HealthcareInflationRate: decimal.NewFromFloat(0.045),
			},
			ScenarioAggressive: {
				InvestmentReturn:        decimal.NewFromFloat(0.08),
				InflationRate:           decimal.NewFromFloat(0.02),
				ExpenseGrowthRate:       decimal.NewFromFloat(0.02),
				HealthcareInflationRate: decimal.NewFromFloat(0.04),
			},
		},
		Shortfall: BenefitShortfall{
			Enabled: true,
			Year:    2034,
			Rate:    decimal.NewFromFloat(0.30),
		},
	}
}

// Lookup returns the named preset.
func (ss ScenarioSet) Lookup(name string) (ScenarioParameters, error) {
	params, ok := ss.Presets[name]
	if !ok {
		return ScenarioParameters{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScenario, name, ss.Names())
	}
	return params, nil
}

// Names returns the preset names sorted alphabetically.
func (ss ScenarioSet) Names() []string {
	names := make([]string, 0, len(ss.Presets))
	for n := range ss.Presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy with its own preset map.
func (ss ScenarioSet) Clone() ScenarioSet {
	out := ss
	if ss.Presets != nil {
		out.Presets = make(map[string]ScenarioParameters, len(ss.Presets))
		for n, p := range ss.Presets {
			out.Presets[n] = p
		}
	}
	return out
}

// Set adds or replaces a preset.
func (ss *ScenarioSet) Set(name string, params ScenarioParameters) {
	if ss.Presets == nil {
		ss.Presets = map[string]ScenarioParameters{}
	}
	ss.Presets[name] = params
}

// Validate checks that rates are within sane bounds.
func (sp ScenarioParameters) Validate() error {
	minusOne := decimal.NewFromInt(-1)
	if sp.InvestmentReturn.LessThanOrEqual(minusOne) {
		return fmt.Errorf("%w: investment return must exceed -100%%", ErrInvalidInput)
	}
	if sp.InflationRate.LessThan(decimal.NewFromFloat(-0.10)) {
		return fmt.Errorf("%w: inflation rate cannot be less than -10%%", ErrInvalidInput)
	}
	if sp.ExpenseGrowthRate.LessThanOrEqual(minusOne) || sp.HealthcareInflationRate.LessThanOrEqual(minusOne) {
		return fmt.Errorf("%w: growth rates must exceed -100%%", ErrInvalidInput)
	}
	return nil
}
