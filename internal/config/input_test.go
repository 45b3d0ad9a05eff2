package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpgo/household-planner/internal/calculation"
	"github.com/rpgo/household-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedParser() *InputParser {
	return &InputParser{CurrentYear: func() int { return 2024 }}
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
	assert.NotNil(t, parser.CurrentYear)
}

func TestLoadFromFile_YAML(t *testing.T) {
	testConfig := "current_year: 2024\n" +
		"current_net_worth: 100000\n" +
		"yearly_expenses: 50000\n" +
		"persons:\n" +
		"  - name: Alex\n" +
		"    birth_year: 1980\n" +
		"    base_income: 75000\n" +
		"    income_growth_rate: 0.03\n" +
		"    retirement_age: 65\n" +
		"    filing_status: MFJ\n" +
		"    state_tax_rate: 0.05\n" +
		"    income_changes:\n" +
		"      2030: 90000\n" +
		"dependent_templates:\n" +
		"  - name: Basic\n" +
		"    yearly_expenses:\n" +
		"      0:\n" +
		"        Food: 1500\n" +
		"dependents:\n" +
		"  - name: Kid\n" +
		"    birth_year: 2023\n" +
		"    template: Basic\n" +
		"major_purchases:\n" +
		"  - name: Car\n" +
		"    year: 2026\n" +
		"    amount: 30000\n"

	path := filepath.Join(t.TempDir(), "household.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))

	h, err := fixedParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2024, h.CurrentYear)
	assert.True(t, h.CurrentNetWorth.Equal(decimal.NewFromInt(100000)))
	require.Len(t, h.Persons, 1)
	p := h.Persons[0]
	assert.Equal(t, domain.FilingMarried, p.FilingStatus)
	assert.Equal(t, domain.DefaultDeathAge, p.DeathAge)
	assert.True(t, p.IncomeChanges[2030].Equal(decimal.NewFromInt(90000)))

	tmpl, err := h.Template("Basic")
	require.NoError(t, err)
	assert.Equal(t, domain.TemplateMaxAge, tmpl.MaxAge, "templates are zero-filled on load")
	assert.True(t, tmpl.AmountFor(0, domain.CategoryFood).Equal(decimal.NewFromInt(1500)))
	assert.True(t, tmpl.AmountFor(10, domain.CategoryGifts).IsZero())

	require.Len(t, h.Purchases, 1)
	assert.False(t, h.Purchases[0].IsFinanced())
	assert.Len(t, h.Scenarios.Presets, 3)
}

func TestLoadFromFile_JSON(t *testing.T) {
	testConfig := `{
  "current_year": 2024,
  "current_net_worth": "250000",
  "yearly_expenses": 60000,
  "healthcare_expenses": 9000,
  "persons": [
    {"name": "Sam", "birth_year": 1970, "base_income": 120000, "retirement_age": 62, "estimated_benefit": 30000}
  ]
}`
	path := filepath.Join(t.TempDir(), "household.json")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))

	h, err := fixedParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, h.HasHealthcareOverride())
	assert.True(t, h.HealthcareExpenses().Equal(decimal.NewFromInt(9000)))
	assert.True(t, h.Persons[0].EstimatedBenefit.Equal(decimal.NewFromInt(30000)))
	assert.Equal(t, domain.FilingSingle, h.Persons[0].FilingStatus)
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := fixedParser()
	dir := t.TempDir()

	_, err := parser.LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("persons: [\n"), 0o644))
	_, err = parser.LoadFromFile(bad)
	assert.ErrorContains(t, err, "failed to parse YAML")

	dangling := filepath.Join(dir, "dangling.yaml")
	require.NoError(t, os.WriteFile(dangling, []byte("current_year: 2024\ndependents:\n  - name: Kid\n    birth_year: 2020\n    template: Nope\n"), 0o644))
	_, err = parser.LoadFromFile(dangling)
	assert.True(t, errors.Is(err, domain.ErrUnknownTemplate))

	dupes := filepath.Join(dir, "dupes.yaml")
	require.NoError(t, os.WriteFile(dupes, []byte("current_year: 2024\npersons:\n  - {name: A, birth_year: 1980, retirement_age: 65}\n  - {name: A, birth_year: 1981, retirement_age: 65}\n"), 0o644))
	_, err = parser.LoadFromFile(dupes)
	assert.True(t, errors.Is(err, domain.ErrDuplicatePerson))

	_, err = parser.ParseRecord([]byte("{}"), Format("xml"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestDefaultCurrentYear(t *testing.T) {
	h, err := fixedParser().Parse([]byte("yearly_expenses: 1000\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 2024, h.CurrentYear)
	assert.Equal(t, 1, h.HorizonLength())
}

func TestDefaultCurrentYearFollowsEngineClock(t *testing.T) {
	calculation.SetNowFunc(func() time.Time { return time.Date(2031, time.March, 1, 0, 0, 0, 0, time.UTC) })
	t.Cleanup(func() { calculation.SetNowFunc(time.Now) })

	h, err := NewInputParser().Parse([]byte("yearly_expenses: 1000\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 2031, h.CurrentYear)
}

func TestValidateHousehold(t *testing.T) {
	parser := fixedParser()

	unborn := domain.NewHousehold(2024, decimal.Zero, decimal.Zero)
	unborn.Persons = append(unborn.Persons, domain.NewPerson("Future", 2030, decimal.Zero, decimal.Zero, 65))
	assert.True(t, errors.Is(parser.ValidateHousehold(unborn), domain.ErrInvalidInput))

	ancient := domain.NewHousehold(2024, decimal.Zero, decimal.Zero)
	ancient.Persons = append(ancient.Persons, domain.NewPerson("Old", 1900, decimal.Zero, decimal.Zero, 65))
	assert.True(t, errors.Is(parser.ValidateHousehold(ancient), domain.ErrInvalidInput))

	assert.NoError(t, parser.ValidateHousehold(parser.CreateExampleHousehold()))
}

func TestSaveAndReload(t *testing.T) {
	parser := fixedParser()
	example := parser.CreateExampleHousehold()

	for _, name := range []string{"example.yaml", "example.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, parser.SaveToFile(path, example))

			loaded, err := parser.LoadFromFile(path)
			require.NoError(t, err)
			require.Len(t, loaded.Persons, 2)
			assert.Equal(t, example.Persons[0].Name, loaded.Persons[0].Name)
			assert.True(t, example.Persons[0].IncomeChanges[2027].Equal(loaded.Persons[0].IncomeChanges[2027]))
			assert.Equal(t, example.Dependents, loaded.Dependents)
			require.Len(t, loaded.Purchases, 2)
			assert.True(t, loaded.Purchases[0].InterestRate.Equal(decimal.NewFromFloat(0.05)))
			tmpl, err := loaded.Template("Standard")
			require.NoError(t, err)
			assert.True(t, tmpl.AgeTotal(3).Equal(example.Templates[0].AgeTotal(3)))
		})
	}
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("a/b/house.JSON"))
	assert.Equal(t, FormatYAML, FormatForPath("house.yml"))
	assert.Equal(t, FormatYAML, FormatForPath("house"))
}
