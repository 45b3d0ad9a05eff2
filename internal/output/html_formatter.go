package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/goccy/go-json"

	"github.com/rpgo/household-planner/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with a net worth chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"whole":   FormatWhole,
	"compact": FormatCompact,
	"pct":     FormatPercentage,
	"rate":    FormatRate,
	"json": func(v any) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

type chartPoint struct {
	Year     int     `json:"year"`
	NetWorth float64 `json:"net_worth"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	points := make([]chartPoint, 0, len(report.Projection))
	for _, r := range report.Projection {
		points = append(points, chartPoint{
			Year:     r.Year,
			NetWorth: r.NetWorth.InexactFloat64(),
			Income:   r.TotalIncome.InexactFloat64(),
			Expenses: r.TotalExpenses.InexactFloat64(),
		})
	}
	data := struct {
		*domain.ProjectionReport
		Highlights     Highlights
		Recommendation Recommendation
		Assumptions    []string
		Parameters     [][2]string
		Chart          []chartPoint
	}{
		ProjectionReport: report,
		Highlights:       AnalyzeProjection(report.Projection),
		Recommendation:   AnalyzeComparison(report.Comparison),
		Assumptions:      reportAssumptions(report),
		Parameters:       scenarioLines(report.Parameters),
		Chart:            points,
	}
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
