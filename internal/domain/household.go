package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultHealthcareShare is the fraction of yearly expenses assumed to be healthcare when no override is set.
var DefaultHealthcareShare = decimal.NewFromFloat(0.12)

// Household is the aggregate root consumed by the projection engine.
// It is mutated only through its methods; projections always re-derive from current state.
type Household struct {
	Persons    []Person
	Dependents []Dependent
	Purchases  []MajorPurchase
	Templates  []DependentExpenseTemplate

	CurrentYear     int
	CurrentNetWorth decimal.Decimal
	// YearlyExpenses is the base household spend including the healthcare share.
	YearlyExpenses decimal.Decimal

	healthcareOverride *decimal.Decimal

	Scenarios ScenarioSet
}

// NewHousehold creates an empty household using the default scenario presets.
func NewHousehold(currentYear int, netWorth, yearlyExpenses decimal.Decimal) *Household {
	return &Household{
		CurrentYear:     currentYear,
		CurrentNetWorth: netWorth,
		YearlyExpenses:  yearlyExpenses,
		Scenarios:       DefaultScenarioSet(),
	}
}

// HealthcareExpenses returns the healthcare baseline: the override when set, else 12% of yearly expenses.
func (h *Household) HealthcareExpenses() decimal.Decimal {
	if h.healthcareOverride != nil {
		return *h.healthcareOverride
	}
	return h.YearlyExpenses.Mul(DefaultHealthcareShare)
}

// SetHealthcareExpenses overrides the derived healthcare baseline.
func (h *Household) SetHealthcareExpenses(amount decimal.Decimal) {
	v := amount
	h.healthcareOverride = &v
}

// ClearHealthcareOverride reverts to the derived baseline.
func (h *Household) ClearHealthcareOverride() {
	h.healthcareOverride = nil
}

// HasHealthcareOverride reports whether the baseline was explicitly set.
func (h *Household) HasHealthcareOverride() bool {
	return h.healthcareOverride != nil
}

// HorizonYear returns the last projected year: the latest birth year plus death age across all persons.
// With no persons the horizon collapses to the current year.
func (h *Household) HorizonYear() int {
	if len(h.Persons) == 0 {
		return h.CurrentYear
	}
	end := h.Persons[0].HorizonYear()
	for i := 1; i < len(h.Persons); i++ {
		if y := h.Persons[i].HorizonYear(); y > end {
			end = y
		}
	}
	if end < h.CurrentYear {
		return h.CurrentYear
	}
	return end
}

// HorizonLength is the number of years from the current year through the horizon, inclusive.
func (h *Household) HorizonLength() int {
	return h.HorizonYear() - h.CurrentYear + 1
}

// EarliestRetirementYear returns the first year in which any person is retired, and false with no persons.
func (h *Household) EarliestRetirementYear() (int, bool) {
	if len(h.Persons) == 0 {
		return 0, false
	}
	earliest := h.Persons[0].RetirementYear()
	for _, p := range h.Persons[1:] {
		if y := p.RetirementYear(); y < earliest {
			earliest = y
		}
	}
	return earliest, true
}

// Person returns a pointer to the named person.
func (h *Household) Person(name string) (*Person, error) {
	for i := range h.Persons {
		if h.Persons[i].Name == name {
			return &h.Persons[i], nil
		}
	}
	return nil, fmt.Errorf("person %q: %w", name, ErrNotFound)
}

// AddPerson appends a person after validation; names must be unique.
func (h *Household) AddPerson(p Person) error {
	p = p.Clone()
	p.applyDefaults()
	if err := p.Validate(h.CurrentYear); err != nil {
		return err
	}
	if _, err := h.Person(p.Name); err == nil {
		return fmt.Errorf("%w: %q", ErrDuplicatePerson, p.Name)
	}
	h.Persons = append(h.Persons, p)
	return nil
}

// RemovePerson deletes the named person.
func (h *Household) RemovePerson(name string) error {
	for i := range h.Persons {
		if h.Persons[i].Name == name {
			h.Persons = append(h.Persons[:i], h.Persons[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("person %q: %w", name, ErrNotFound)
}

// AddIncomeChange records a step change for the named person.
func (h *Household) AddIncomeChange(name string, year int, income decimal.Decimal) error {
	p, err := h.Person(name)
	if err != nil {
		return err
	}
	if year < h.CurrentYear {
		return fmt.Errorf("%w: income change year %d precedes current year %d", ErrInvalidInput, year, h.CurrentYear)
	}
	if income.IsNegative() {
		return fmt.Errorf("%w: income change cannot be negative", ErrInvalidInput)
	}
	if p.IncomeChanges == nil {
		p.IncomeChanges = map[int]decimal.Decimal{}
	}
	p.IncomeChanges[year] = income
	return nil
}

// RemoveIncomeChange deletes a step change for the named person.
func (h *Household) RemoveIncomeChange(name string, year int) error {
	p, err := h.Person(name)
	if err != nil {
		return err
	}
	if _, ok := p.IncomeChanges[year]; !ok {
		return fmt.Errorf("income change %d for %q: %w", year, name, ErrNotFound)
	}
	delete(p.IncomeChanges, year)
	return nil
}

// Template returns a pointer to the named template.
func (h *Household) Template(name string) (*DependentExpenseTemplate, error) {
	for i := range h.Templates {
		if h.Templates[i].Name == name {
			return &h.Templates[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
}

// AddTemplate normalizes and appends a template; names must be unique.
func (h *Household) AddTemplate(t DependentExpenseTemplate) error {
	t = t.Clone()
	t.Normalize()
	if err := t.Validate(); err != nil {
		return err
	}
	if _, err := h.Template(t.Name); err == nil {
		return fmt.Errorf("%w: %q", ErrDuplicateTemplate, t.Name)
	}
	h.Templates = append(h.Templates, t)
	return nil
}

// UpdateTemplate replaces an existing template in place. Dependents pick up the change on the next projection.
func (h *Household) UpdateTemplate(t DependentExpenseTemplate) error {
	existing, err := h.Template(t.Name)
	if err != nil {
		return err
	}
	t = t.Clone()
	t.Normalize()
	if err := t.Validate(); err != nil {
		return err
	}
	*existing = t
	return nil
}

// TemplateReferences returns the names of dependents using the template.
func (h *Household) TemplateReferences(name string) []string {
	var refs []string
	for _, d := range h.Dependents {
		if d.TemplateName == name {
			refs = append(refs, d.Name)
		}
	}
	return refs
}

// RemoveTemplate deletes a template unless a dependent references it.
func (h *Household) RemoveTemplate(name string) error {
	if refs := h.TemplateReferences(name); len(refs) > 0 {
		return fmt.Errorf("%w: %q used by %v", ErrTemplateInUse, name, refs)
	}
	for i := range h.Templates {
		if h.Templates[i].Name == name {
			h.Templates = append(h.Templates[:i], h.Templates[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
}

// AddDependent appends a dependent; its template must already exist.
func (h *Household) AddDependent(d Dependent) error {
	if d.Name == "" {
		return fmt.Errorf("%w: dependent name is required", ErrInvalidInput)
	}
	if _, err := h.Template(d.TemplateName); err != nil {
		return err
	}
	h.Dependents = append(h.Dependents, d)
	return nil
}

// RemoveDependent deletes the named dependent.
func (h *Household) RemoveDependent(name string) error {
	for i := range h.Dependents {
		if h.Dependents[i].Name == name {
			h.Dependents = append(h.Dependents[:i], h.Dependents[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("dependent %q: %w", name, ErrNotFound)
}

// AddPurchase appends a major purchase after validation.
func (h *Household) AddPurchase(mp MajorPurchase) error {
	if err := mp.Validate(); err != nil {
		return err
	}
	h.Purchases = append(h.Purchases, mp)
	return nil
}

// RemovePurchase deletes the first purchase with the given name.
func (h *Household) RemovePurchase(name string) error {
	for i := range h.Purchases {
		if h.Purchases[i].Name == name {
			h.Purchases = append(h.Purchases[:i], h.Purchases[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("purchase %q: %w", name, ErrNotFound)
}

// Validate checks every entity and cross-reference in the household.
func (h *Household) Validate() error {
	if h.YearlyExpenses.IsNegative() {
		return fmt.Errorf("%w: yearly expenses cannot be negative", ErrInvalidInput)
	}
	if h.HealthcareExpenses().IsNegative() {
		return fmt.Errorf("%w: healthcare expenses cannot be negative", ErrInvalidInput)
	}
	seen := map[string]bool{}
	for i := range h.Persons {
		p := &h.Persons[i]
		if err := p.Validate(h.CurrentYear); err != nil {
			return err
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicatePerson, p.Name)
		}
		seen[p.Name] = true
	}
	for i := range h.Templates {
		if err := h.Templates[i].Validate(); err != nil {
			return err
		}
	}
	for _, d := range h.Dependents {
		if _, err := h.Template(d.TemplateName); err != nil {
			return fmt.Errorf("dependent %q: %w", d.Name, err)
		}
	}
	for i := range h.Purchases {
		if err := h.Purchases[i].Validate(); err != nil {
			return err
		}
	}
	for _, name := range h.Scenarios.Names() {
		if err := h.Scenarios.Presets[name].Validate(); err != nil {
			return fmt.Errorf("scenario %s: %w", name, err)
		}
	}
	return nil
}
