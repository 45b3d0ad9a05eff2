package domain

import (
	"github.com/shopspring/decimal"
)

// HouseholdRecord is the flat, serializable form of a Household.
// It is the persistence contract shared by config files, the scenario library and the HTTP API.
type HouseholdRecord struct {
	Persons            []Person                   `yaml:"persons" json:"persons"`
	Dependents         []Dependent                `yaml:"dependents,omitempty" json:"dependents,omitempty"`
	MajorPurchases     []MajorPurchase            `yaml:"major_purchases,omitempty" json:"major_purchases,omitempty"`
	Templates          []DependentExpenseTemplate `yaml:"dependent_templates,omitempty" json:"dependent_templates,omitempty"`
	CurrentYear        int                        `yaml:"current_year" json:"current_year"`
	CurrentNetWorth    decimal.Decimal            `yaml:"current_net_worth" json:"current_net_worth"`
	YearlyExpenses     decimal.Decimal            `yaml:"yearly_expenses" json:"yearly_expenses"`
	HealthcareExpenses *decimal.Decimal           `yaml:"healthcare_expenses,omitempty" json:"healthcare_expenses,omitempty"`
	Scenarios          *ScenarioSet               `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
}

// ToRecord flattens the household. The healthcare baseline is written only when overridden.
func (h *Household) ToRecord() HouseholdRecord {
	rec := HouseholdRecord{
		Dependents:      append([]Dependent(nil), h.Dependents...),
		MajorPurchases:  append([]MajorPurchase(nil), h.Purchases...),
		CurrentYear:     h.CurrentYear,
		CurrentNetWorth: h.CurrentNetWorth,
		YearlyExpenses:  h.YearlyExpenses,
	}
	for _, p := range h.Persons {
		rec.Persons = append(rec.Persons, p.Clone())
	}
	for _, t := range h.Templates {
		rec.Templates = append(rec.Templates, t.Clone())
	}
	if h.healthcareOverride != nil {
		v := *h.healthcareOverride
		rec.HealthcareExpenses = &v
	}
	scenarios := h.Scenarios.Clone()
	rec.Scenarios = &scenarios
	return rec
}

// FromRecord rebuilds a Household, applying defaults and validating the result.
func FromRecord(rec HouseholdRecord) (*Household, error) {
	h := NewHousehold(rec.CurrentYear, rec.CurrentNetWorth, rec.YearlyExpenses)
	if rec.Scenarios != nil && len(rec.Scenarios.Presets) > 0 {
		h.Scenarios = rec.Scenarios.Clone()
	}
	if rec.HealthcareExpenses != nil {
		h.SetHealthcareExpenses(*rec.HealthcareExpenses)
	}
	for _, t := range rec.Templates {
		if err := h.AddTemplate(t); err != nil {
			return nil, err
		}
	}
	for _, p := range rec.Persons {
		if err := h.AddPerson(p); err != nil {
			return nil, err
		}
	}
	for _, d := range rec.Dependents {
		if err := h.AddDependent(d); err != nil {
			return nil, err
		}
	}
	for _, mp := range rec.MajorPurchases {
		if err := h.AddPurchase(mp); err != nil {
			return nil, err
		}
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}
