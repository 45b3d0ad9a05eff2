package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHousehold(t *testing.T) *Household {
	t.Helper()
	h := NewHousehold(2024, decimal.NewFromInt(100000), decimal.NewFromInt(50000))
	require.NoError(t, h.AddPerson(NewPerson("Alex", 1980, decimal.NewFromInt(75000), decimal.NewFromFloat(0.03), 65)))
	return h
}

func TestHealthcareBaseline(t *testing.T) {
	h := NewHousehold(2024, decimal.Zero, decimal.NewFromInt(50000))
	assert.True(t, h.HealthcareExpenses().Equal(decimal.NewFromInt(6000)))
	assert.False(t, h.HasHealthcareOverride())

	h.SetHealthcareExpenses(decimal.NewFromInt(9000))
	assert.True(t, h.HealthcareExpenses().Equal(decimal.NewFromInt(9000)))

	h.YearlyExpenses = decimal.NewFromInt(80000)
	assert.True(t, h.HealthcareExpenses().Equal(decimal.NewFromInt(9000)), "override survives expense edits")

	h.ClearHealthcareOverride()
	assert.True(t, h.HealthcareExpenses().Equal(decimal.NewFromInt(9600)))
}

func TestHorizon(t *testing.T) {
	h := NewHousehold(2024, decimal.Zero, decimal.Zero)
	assert.Equal(t, 2024, h.HorizonYear(), "no persons collapses to the current year")
	assert.Equal(t, 1, h.HorizonLength())

	require.NoError(t, h.AddPerson(NewPerson("Alex", 1980, decimal.Zero, decimal.Zero, 65)))
	older := NewPerson("Sam", 1950, decimal.Zero, decimal.Zero, 60)
	older.DeathAge = 90
	require.NoError(t, h.AddPerson(older))

	assert.Equal(t, 2080, h.HorizonYear())
	assert.Equal(t, 57, h.HorizonLength())

	year, ok := h.EarliestRetirementYear()
	require.True(t, ok)
	assert.Equal(t, 2010, year)
}

func TestPersonManagement(t *testing.T) {
	h := newTestHousehold(t)

	err := h.AddPerson(NewPerson("Alex", 1985, decimal.Zero, decimal.Zero, 60))
	assert.True(t, errors.Is(err, ErrDuplicatePerson))

	bad := NewPerson("Young", 1990, decimal.Zero, decimal.Zero, 70)
	bad.DeathAge = 60
	assert.True(t, errors.Is(h.AddPerson(bad), ErrInvalidInput))

	defaults := Person{Name: "Defaults", BirthYear: 1990, RetirementAge: 67, FilingStatus: "MFJ"}
	require.NoError(t, h.AddPerson(defaults))
	p, err := h.Person("Defaults")
	require.NoError(t, err)
	assert.Equal(t, DefaultDeathAge, p.DeathAge)
	assert.Equal(t, DefaultBenefitClaimAge, p.BenefitClaimAge)
	assert.Equal(t, FilingMarried, p.FilingStatus)

	require.NoError(t, h.RemovePerson("Defaults"))
	assert.True(t, errors.Is(h.RemovePerson("Defaults"), ErrNotFound))
}

func TestIncomeChanges(t *testing.T) {
	h := newTestHousehold(t)

	assert.True(t, errors.Is(h.AddIncomeChange("Alex", 2020, decimal.NewFromInt(1)), ErrInvalidInput))
	assert.True(t, errors.Is(h.AddIncomeChange("Nobody", 2030, decimal.NewFromInt(1)), ErrNotFound))

	require.NoError(t, h.AddIncomeChange("Alex", 2030, decimal.NewFromInt(90000)))
	require.NoError(t, h.AddIncomeChange("Alex", 2027, decimal.NewFromInt(80000)))
	p, _ := h.Person("Alex")
	assert.Equal(t, []int{2027, 2030}, p.IncomeChangeYears())

	year, amount, ok := p.LatestIncomeChange(2029)
	require.True(t, ok)
	assert.Equal(t, 2027, year)
	assert.True(t, amount.Equal(decimal.NewFromInt(80000)))

	_, _, ok = p.LatestIncomeChange(2026)
	assert.False(t, ok)

	require.NoError(t, h.RemoveIncomeChange("Alex", 2027))
	assert.True(t, errors.Is(h.RemoveIncomeChange("Alex", 2027), ErrNotFound))
}

func TestTemplateLifecycle(t *testing.T) {
	h := newTestHousehold(t)
	require.NoError(t, h.AddTemplate(NewTemplate("Standard")))
	assert.True(t, errors.Is(h.AddTemplate(NewTemplate("Standard")), ErrDuplicateTemplate))

	assert.True(t, errors.Is(h.AddDependent(Dependent{Name: "Kid", BirthYear: 2020, TemplateName: "Missing"}), ErrUnknownTemplate))
	require.NoError(t, h.AddDependent(Dependent{Name: "Kid", BirthYear: 2020, TemplateName: "Standard"}))

	err := h.RemoveTemplate("Standard")
	assert.True(t, errors.Is(err, ErrTemplateInUse))
	assert.Equal(t, []string{"Kid"}, h.TemplateReferences("Standard"))

	require.NoError(t, h.RemoveDependent("Kid"))
	require.NoError(t, h.RemoveTemplate("Standard"))
	assert.True(t, errors.Is(h.RemoveTemplate("Standard"), ErrUnknownTemplate))
}

func TestPurchases(t *testing.T) {
	h := newTestHousehold(t)
	assert.True(t, errors.Is(h.AddPurchase(MajorPurchase{Name: "Bad", Year: 2025, Amount: decimal.NewFromInt(-1)}), ErrInvalidInput))

	car := MajorPurchase{Name: "Car", Year: 2025, Amount: decimal.NewFromInt(30000), FinancingYears: 5}
	require.NoError(t, h.AddPurchase(car))
	assert.True(t, h.Purchases[0].IsFinanced())
	assert.Equal(t, 2029, h.Purchases[0].LastPaymentYear())

	require.NoError(t, h.RemovePurchase("Car"))
	assert.True(t, errors.Is(h.RemovePurchase("Car"), ErrNotFound))
}

func TestScenarioSet(t *testing.T) {
	ss := DefaultScenarioSet()
	assert.Equal(t, []string{ScenarioAggressive, ScenarioConservative, ScenarioModerate}, ss.Names())

	moderate, err := ss.Lookup(ScenarioModerate)
	require.NoError(t, err)
	assert.True(t, moderate.InvestmentReturn.Equal(decimal.NewFromFloat(0.06)))

	_, err = ss.Lookup("Optimistic")
	assert.True(t, errors.Is(err, ErrUnknownScenario))

	ss.Set("Optimistic", ScenarioParameters{InvestmentReturn: decimal.NewFromFloat(0.1)})
	_, err = ss.Lookup("Optimistic")
	assert.NoError(t, err)

	assert.True(t, ss.Shortfall.AppliesIn(2034))
	assert.False(t, ss.Shortfall.AppliesIn(2033))

	bad := ScenarioParameters{InvestmentReturn: decimal.NewFromInt(-2)}
	assert.True(t, errors.Is(bad.Validate(), ErrInvalidInput))
}
