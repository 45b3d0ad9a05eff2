package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123.45", "$123.45"},
		{"1234567.891", "$1,234,567.89"},
		{"0", "$0.00"},
		{"-1234.5", "-$1,234.50"},
		{"-0.004", "$0.00"},
		{"123456789012345.67", "$123,456,789,012,345.67"},
		{"9007199254740993.01", "$9,007,199,254,740,993.01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(dec(tt.in)), tt.in)
	}
}

func TestFormatWhole(t *testing.T) {
	assert.Equal(t, "$1,235", FormatWhole(dec("1234.5")))
	assert.Equal(t, "-$42", FormatWhole(dec("-42.2")))
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1250000", "$1.25M"},
		{"450000", "$450K"},
		{"999", "$999"},
		{"-2500000", "-$2.50M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCompact(dec(tt.in)), tt.in)
	}
}

func TestFormatPercentageAndRate(t *testing.T) {
	assert.Equal(t, "12.34%", FormatPercentage(dec("12.34")))
	assert.Equal(t, "6.00%", FormatRate(dec("0.06")))
	assert.Equal(t, "2.50%", FormatRate(dec("0.025")))
}
