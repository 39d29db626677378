package format

import (
	"math"
	"testing"

	"github.com/iwvelando/cost-of-living/pkg/constants"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Cents", 0.5, "$0.50"},
		{"Thousands", 1000, "$1,000.00"},
		{"Rounding", 1234.567, "$1,234.57"},
		{"Millions", 1234567.891, "$1,234,567.89"},
		{"Negative", -1234.56, "-$1,234.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.input); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestHoverText(t *testing.T) {
	if got := HoverText(math.NaN()); got != constants.NoDataText {
		t.Errorf("HoverText(NaN) = %q, expected %q", got, constants.NoDataText)
	}
	if got := HoverText(50000); got != "$50,000.00" {
		t.Errorf("HoverText(50000) = %q, expected $50,000.00", got)
	}
}
