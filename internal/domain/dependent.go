package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is one of the fixed per-age dependent expense categories.
type ExpenseCategory string

const (
	CategoryFood           ExpenseCategory = "Food"
	CategoryClothing       ExpenseCategory = "Clothing"
	CategoryHealthcare     ExpenseCategory = "Healthcare"
	CategoryActivities     ExpenseCategory = "Activities/Sports"
	CategoryEntertainment  ExpenseCategory = "Entertainment"
	CategoryTransportation ExpenseCategory = "Transportation"
	CategorySchoolSupplies ExpenseCategory = "School Supplies"
	CategoryGifts          ExpenseCategory = "Gifts/Celebrations"
	CategoryMiscellaneous  ExpenseCategory = "Miscellaneous"
	CategoryDaycare        ExpenseCategory = "Daycare/Childcare"
	CategoryEducation      ExpenseCategory = "Education"
)

// ExpenseCategories lists every category in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryFood,
	CategoryClothing,
	CategoryHealthcare,
	CategoryActivities,
	CategoryEntertainment,
	CategoryTransportation,
	CategorySchoolSupplies,
	CategoryGifts,
	CategoryMiscellaneous,
	CategoryDaycare,
	CategoryEducation,
}

const (
	// TemplateMaxAge is the last age covered by a current template.
	TemplateMaxAge = 25
	// LegacyTemplateMaxAge is the last age covered by a legacy template.
	LegacyTemplateMaxAge = 18
)

// DependentExpenseTemplate is a reusable per-age expense table shared by reference between dependents.
type DependentExpenseTemplate struct {
	Name           string                                      `yaml:"name" json:"name"`
	MaxAge         int                                         `yaml:"max_age" json:"max_age"`
	YearlyExpenses map[int]map[ExpenseCategory]decimal.Decimal `yaml:"yearly_expenses" json:"yearly_expenses"`

	EducationFundTarget decimal.Decimal `yaml:"education_fund_target" json:"education_fund_target"`
	EducationStartAge   int             `yaml:"education_start_age" json:"education_start_age"`
	EducationDuration   int             `yaml:"education_duration" json:"education_duration"`

	// Legacy selects the older accrual rule: daycare and education are computed
	// from the fields below instead of the per-age table.
	Legacy             bool            `yaml:"legacy,omitempty" json:"legacy,omitempty"`
	DaycareStartAge    int             `yaml:"daycare_start_age,omitempty" json:"daycare_start_age,omitempty"`
	DaycareEndAge      int             `yaml:"daycare_end_age,omitempty" json:"daycare_end_age,omitempty"`
	DaycareMonthlyCost decimal.Decimal `yaml:"daycare_monthly_cost,omitempty" json:"daycare_monthly_cost,omitempty"`
}

// NewTemplate returns an empty zero-filled template.
func NewTemplate(name string) DependentExpenseTemplate {
	t := DependentExpenseTemplate{
		Name:              name,
		MaxAge:            TemplateMaxAge,
		EducationStartAge: 18,
		EducationDuration: 4,
	}
	t.Normalize()
	return t
}

// NewLegacyTemplate returns an empty legacy template covering ages 0-18.
func NewLegacyTemplate(name string) DependentExpenseTemplate {
	t := DependentExpenseTemplate{
		Name:              name,
		MaxAge:            LegacyTemplateMaxAge,
		EducationStartAge: 18,
		EducationDuration: 4,
		Legacy:            true,
		DaycareEndAge:     5,
	}
	t.Normalize()
	return t
}

// Normalize zero-fills every age in [0, MaxAge] and every category.
func (t *DependentExpenseTemplate) Normalize() {
	if t.MaxAge <= 0 {
		if t.Legacy {
			t.MaxAge = LegacyTemplateMaxAge
		} else {
			t.MaxAge = TemplateMaxAge
		}
	}
	if t.YearlyExpenses == nil {
		t.YearlyExpenses = make(map[int]map[ExpenseCategory]decimal.Decimal, t.MaxAge+1)
	}
	for age := 0; age <= t.MaxAge; age++ {
		row, ok := t.YearlyExpenses[age]
		if !ok || row == nil {
			row = make(map[ExpenseCategory]decimal.Decimal, len(ExpenseCategories))
			t.YearlyExpenses[age] = row
		}
		for _, c := range ExpenseCategories {
			if _, ok := row[c]; !ok {
				row[c] = decimal.Zero
			}
		}
	}
}

// CoversAge reports whether the per-age table applies at the given age.
func (t *DependentExpenseTemplate) CoversAge(age int) bool {
	return age >= 0 && age <= t.MaxAge
}

// AmountFor returns the annual amount for a category at an age; missing entries are zero.
func (t *DependentExpenseTemplate) AmountFor(age int, category ExpenseCategory) decimal.Decimal {
	row, ok := t.YearlyExpenses[age]
	if !ok {
		return decimal.Zero
	}
	amount, ok := row[category]
	if !ok {
		return decimal.Zero
	}
	return amount
}

// SetAmount sets the annual amount for a category at an age.
func (t *DependentExpenseTemplate) SetAmount(age int, category ExpenseCategory, amount decimal.Decimal) {
	if t.YearlyExpenses == nil {
		t.YearlyExpenses = map[int]map[ExpenseCategory]decimal.Decimal{}
	}
	row, ok := t.YearlyExpenses[age]
	if !ok {
		row = map[ExpenseCategory]decimal.Decimal{}
		t.YearlyExpenses[age] = row
	}
	row[category] = amount
}

// AgeTotal sums every category at an age.
func (t *DependentExpenseTemplate) AgeTotal(age int) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range t.YearlyExpenses[age] {
		total = total.Add(amount)
	}
	return total
}

// Validate checks template invariants.
func (t *DependentExpenseTemplate) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: template name is required", ErrInvalidInput)
	}
	if t.EducationDuration < 0 || t.EducationStartAge < 0 {
		return fmt.Errorf("%w: template %s: education window cannot be negative", ErrInvalidInput, t.Name)
	}
	if t.EducationFundTarget.IsPositive() && t.EducationDuration == 0 {
		return fmt.Errorf("%w: template %s: education fund target needs a duration", ErrInvalidInput, t.Name)
	}
	if t.Legacy && t.DaycareEndAge < t.DaycareStartAge {
		return fmt.Errorf("%w: template %s: daycare end age precedes start age", ErrInvalidInput, t.Name)
	}
	for age, row := range t.YearlyExpenses {
		for c, amount := range row {
			if amount.IsNegative() {
				return fmt.Errorf("%w: template %s: negative %s amount at age %d", ErrInvalidInput, t.Name, c, age)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the template.
func (t DependentExpenseTemplate) Clone() DependentExpenseTemplate {
	out := t
	out.YearlyExpenses = make(map[int]map[ExpenseCategory]decimal.Decimal, len(t.YearlyExpenses))
	for age, row := range t.YearlyExpenses {
		cp := make(map[ExpenseCategory]decimal.Decimal, len(row))
		for c, v := range row {
			cp[c] = v
		}
		out.YearlyExpenses[age] = cp
	}
	return out
}

// ageBand assigns amount to every age in [from, to).
type ageBand struct {
	from, to int
	amount   int64
}

// defaultBands holds Washington-state default costs per category.
var defaultBands = map[ExpenseCategory][]ageBand{
	CategoryFood:           {{0, 2, 1500}, {2, 5, 1800}, {5, 12, 2400}, {12, 19, 3000}, {19, 26, 3500}},
	CategoryClothing:       {{0, 2, 600}, {2, 5, 500}, {5, 12, 600}, {12, 19, 900}, {19, 26, 1000}},
	CategoryHealthcare:     {{0, 1, 800}, {1, 5, 500}, {5, 19, 400}, {19, 26, 800}},
	CategoryActivities:     {{0, 3, 100}, {3, 6, 300}, {6, 12, 800}, {12, 19, 1500}, {19, 26, 800}},
	CategoryEntertainment:  {{0, 3, 200}, {3, 12, 300}, {12, 19, 500}, {19, 26, 400}},
	CategoryTransportation: {{0, 13, 200}, {13, 16, 300}, {16, 21, 1000}, {21, 26, 500}},
	CategorySchoolSupplies: {{0, 5, 50}, {5, 13, 200}, {13, 19, 300}, {19, 26, 400}},
	CategoryGifts:          {{0, 19, 300}, {19, 26, 200}},
	CategoryMiscellaneous:  {{0, 19, 200}, {19, 26, 300}},
	CategoryDaycare:        {{0, 1, 20376}, {1, 5, 15720}},
	CategoryEducation:      {{18, 22, 75000}},
}

// DefaultTemplate builds a template pre-filled with default per-age costs.
func DefaultTemplate(name string) DependentExpenseTemplate {
	t := NewTemplate(name)
	for category, bands := range defaultBands {
		for _, b := range bands {
			for age := b.from; age < b.to && age <= t.MaxAge; age++ {
				t.SetAmount(age, category, decimal.NewFromInt(b.amount))
			}
		}
	}
	return t
}

// Dependent is a child or other dependent whose costs come from a shared template.
type Dependent struct {
	Name         string `yaml:"name" json:"name"`
	BirthYear    int    `yaml:"birth_year" json:"birth_year"`
	TemplateName string `yaml:"template" json:"template"`
}

// Age returns the dependent's age during the given year.
func (d *Dependent) Age(year int) int {
	return year - d.BirthYear
}
