package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/household-planner/internal/domain"
)

// CSVSummarizer implements the simple projection CSV output (one row per year).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "TotalIncome", "TotalExpenses", "InvestmentReturn", "NetChange", "NetWorth"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range report.Projection {
		row := []string{
			intToString(r.Year),
			r.TotalIncome.StringFixed(2),
			r.TotalExpenses.StringFixed(2),
			r.InvestmentReturn.StringFixed(2),
			r.NetChange.StringFixed(2),
			r.NetWorth.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
