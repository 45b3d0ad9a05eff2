package output

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// FormatCurrency formats a decimal as USD with thousands separators and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	abs := rounded.Abs()
	_, cents, _ := strings.Cut(abs.StringFixed(2), ".")
	s := printer.Sprintf("$%d.%s", abs.IntPart(), cents)
	if rounded.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatWhole formats a decimal as USD rounded to whole dollars.
func FormatWhole(amount decimal.Decimal) string {
	v := amount.Round(0).IntPart()
	if v < 0 {
		return printer.Sprintf("-$%d", -v)
	}
	return printer.Sprintf("$%d", v)
}

// FormatCompact abbreviates large amounts, e.g. $1.25M or $450K.
func FormatCompact(amount decimal.Decimal) string {
	sign := ""
	abs := amount.Abs()
	if amount.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(million):
		return sign + "$" + abs.Div(million).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return sign + "$" + abs.Div(thousand).StringFixed(0) + "K"
	default:
		return sign + "$" + abs.StringFixed(0)
	}
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate renders a fractional rate (0.06) as a percentage (6.00%).
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
