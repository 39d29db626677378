// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/cost-of-living/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ParseSalary parses a user-supplied annual salary. The value must be a
// finite, non-negative number; thousands separators and a leading $ are
// accepted.
func ParseSalary(value string) (float64, error) {
	cleaned := strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(value), ",", ""), "$")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid salary %q", value)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, fmt.Errorf("salary must be a non-negative amount, got %q", value)
	}
	return amount, nil
}

// ParseYear parses a four-digit calendar year.
func ParseYear(value string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || year < 1000 || year > 9999 {
		return 0, fmt.Errorf("invalid year %q", value)
	}
	return year, nil
}
