package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// FilingStatus is the federal filing status used to select brackets and the standard deduction.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarried         FilingStatus = "married"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
)

// ParseFilingStatus maps free-form input to a FilingStatus.
// Unrecognized values fall back to single.
func ParseFilingStatus(s string) FilingStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "married", "married_filing_jointly", "mfj":
		return FilingMarried
	case "head_of_household", "hoh":
		return FilingHeadOfHousehold
	case "single":
		return FilingSingle
	default:
		return FilingSingle
	}
}

// Normalized returns the canonical form of the status (see ParseFilingStatus).
func (fs FilingStatus) Normalized() FilingStatus {
	return ParseFilingStatus(string(fs))
}

const (
	// DefaultDeathAge is the maximum modeled age when none is supplied.
	DefaultDeathAge = 100
	// DefaultBenefitClaimAge is the retirement benefit claim age when none is supplied.
	DefaultBenefitClaimAge = 67
)

// Person is an income-earning adult of the household.
type Person struct {
	Name             string          `yaml:"name" json:"name"`
	BirthYear        int             `yaml:"birth_year" json:"birth_year"`
	BaseIncome       decimal.Decimal `yaml:"base_income" json:"base_income"`
	IncomeGrowthRate decimal.Decimal `yaml:"income_growth_rate" json:"income_growth_rate"`
	RetirementAge    int             `yaml:"retirement_age" json:"retirement_age"`
	DeathAge         int             `yaml:"death_age" json:"death_age"`
	FilingStatus     FilingStatus    `yaml:"filing_status" json:"filing_status"`
	StateTaxRate     decimal.Decimal `yaml:"state_tax_rate" json:"state_tax_rate"`

	// IncomeChanges maps an effective year to a new base income (step change).
	IncomeChanges map[int]decimal.Decimal `yaml:"income_changes,omitempty" json:"income_changes,omitempty"`

	BenefitClaimAge  int             `yaml:"benefit_claim_age" json:"benefit_claim_age"`
	EstimatedBenefit decimal.Decimal `yaml:"estimated_benefit" json:"estimated_benefit"` // annual

	// PartnerTag optionally identifies the person's role in the household (e.g. "partner1").
	PartnerTag string `yaml:"partner_tag,omitempty" json:"partner_tag,omitempty"`
}

// NewPerson creates a person with the default death age, claim age and filing status.
func NewPerson(name string, birthYear int, baseIncome, growth decimal.Decimal, retirementAge int) Person {
	return Person{
		Name:             name,
		BirthYear:        birthYear,
		BaseIncome:       baseIncome,
		IncomeGrowthRate: growth,
		RetirementAge:    retirementAge,
		DeathAge:         DefaultDeathAge,
		FilingStatus:     FilingSingle,
		BenefitClaimAge:  DefaultBenefitClaimAge,
		IncomeChanges:    map[int]decimal.Decimal{},
	}
}

// Clone returns a copy of the person with its own step-change map.
func (p Person) Clone() Person {
	out := p
	if p.IncomeChanges != nil {
		out.IncomeChanges = make(map[int]decimal.Decimal, len(p.IncomeChanges))
		for y, v := range p.IncomeChanges {
			out.IncomeChanges[y] = v
		}
	}
	return out
}

// applyDefaults fills zero-valued optional fields.
func (p *Person) applyDefaults() {
	if p.DeathAge == 0 {
		p.DeathAge = DefaultDeathAge
	}
	if p.BenefitClaimAge == 0 {
		p.BenefitClaimAge = DefaultBenefitClaimAge
	}
	p.FilingStatus = p.FilingStatus.Normalized()
	if p.IncomeChanges == nil {
		p.IncomeChanges = map[int]decimal.Decimal{}
	}
}

// Age returns the person's age during the given calendar year.
func (p *Person) Age(year int) int {
	return year - p.BirthYear
}

// HorizonYear is the last year this person is modeled.
func (p *Person) HorizonYear() int {
	return p.BirthYear + p.DeathAge
}

// RetirementYear is the first calendar year without working income.
func (p *Person) RetirementYear() int {
	return p.BirthYear + p.RetirementAge
}

// IsDeceased reports whether the given year is past the person's modeled death age.
func (p *Person) IsDeceased(year int) bool {
	return p.Age(year) > p.DeathAge
}

// IsRetired reports whether the person has reached retirement age in the given year.
func (p *Person) IsRetired(year int) bool {
	return p.Age(year) >= p.RetirementAge
}

// LatestIncomeChange returns the most recent step change effective at or before year.
func (p *Person) LatestIncomeChange(year int) (int, decimal.Decimal, bool) {
	found := false
	var changeYear int
	var income decimal.Decimal
	for y, amount := range p.IncomeChanges {
		if y <= year && (!found || y > changeYear) {
			changeYear, income, found = y, amount, true
		}
	}
	return changeYear, income, found
}

// IncomeChangeYears returns the step-change years in ascending order.
func (p *Person) IncomeChangeYears() []int {
	years := make([]int, 0, len(p.IncomeChanges))
	for y := range p.IncomeChanges {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Validate checks the person's invariants. creationYear bounds the earliest allowed step change.
func (p *Person) Validate(creationYear int) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: person name is required", ErrInvalidInput)
	}
	if p.RetirementAge < 0 {
		return fmt.Errorf("%w: %s: retirement age cannot be negative", ErrInvalidInput, p.Name)
	}
	if p.DeathAge < p.RetirementAge {
		return fmt.Errorf("%w: %s: death age %d is below retirement age %d", ErrInvalidInput, p.Name, p.DeathAge, p.RetirementAge)
	}
	if p.BaseIncome.IsNegative() {
		return fmt.Errorf("%w: %s: base income cannot be negative", ErrInvalidInput, p.Name)
	}
	if p.StateTaxRate.IsNegative() || p.StateTaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: %s: state tax rate must be between 0 and 1", ErrInvalidInput, p.Name)
	}
	for _, y := range p.IncomeChangeYears() {
		if y < creationYear {
			return fmt.Errorf("%w: %s: income change year %d precedes %d", ErrInvalidInput, p.Name, y, creationYear)
		}
	}
	return nil
}
