package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/rpgo/household-planner/internal/domain"
)

// CSVDetailedExporter provides the expense breakdown and per-person income for each year.
// Person columns are emitted in name order; a person without income in a year gets zeros.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "detailed-csv" }
func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(report *domain.ProjectionReport) ([]byte, error) {
	persons := personNames(report.Projection)

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Year", "ReturnRate", "TotalIncome",
		"BaseExpenses", "Healthcare", "Dependents", "Purchases", "TotalExpenses",
		"InvestmentReturn", "NetChange", "NetWorth", "Depleted",
	}
	for _, p := range persons {
		header = append(header, p+" Gross", p+" Tax", p+" Net")
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range report.Projection {
		row := []string{
			intToString(r.Year),
			r.ReturnRate.String(),
			r.TotalIncome.StringFixed(2),
			r.Expenses.Base.StringFixed(2),
			r.Expenses.Healthcare.StringFixed(2),
			r.Expenses.Dependents.StringFixed(2),
			r.Expenses.Purchases.StringFixed(2),
			r.TotalExpenses.StringFixed(2),
			r.InvestmentReturn.StringFixed(2),
			r.NetChange.StringFixed(2),
			r.NetWorth.StringFixed(2),
			boolToString(!r.NetWorth.IsPositive()),
		}
		for _, p := range persons {
			d := r.IncomeDetails[p]
			row = append(row, d.Gross.StringFixed(2), d.Tax.StringFixed(2), d.Net.StringFixed(2))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func personNames(p domain.Projection) []string {
	seen := map[string]bool{}
	var names []string
	for _, r := range p {
		for name := range r.IncomeDetails {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
