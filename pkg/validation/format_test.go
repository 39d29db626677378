package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		format    string
		expectErr bool
	}{
		{"pretty", false},
		{"csv", false},
		{"json", false},
		{"", true},
		{"PRETTY", true},
		{" pretty ", true},
		{"xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateOutputFormat(%q) expected error but got none", tt.format)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateOutputFormat(%q) unexpected error = %v", tt.format, err)
			}
		})
	}
}

func TestParseSalary(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		want      float64
		expectErr bool
	}{
		{"Plain", "95000", 95000, false},
		{"Decimal", "95000.50", 95000.50, false},
		{"Grouped", "$1,250,000", 1250000, false},
		{"Padded", " 40000 ", 40000, false},
		{"Zero", "0", 0, false},
		{"Negative", "-1", 0, true},
		{"Text", "lots", 0, true},
		{"Empty", "", 0, true},
		{"NaN", "NaN", 0, true},
		{"Infinity", "Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSalary(tt.value)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ParseSalary(%q) expected error but got %v", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSalary(%q) unexpected error = %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ParseSalary(%q) = %v, expected %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		value     string
		want      int
		expectErr bool
	}{
		{"2022", 2022, false},
		{" 2023", 2023, false},
		{"22", 0, true},
		{"20222", 0, true},
		{"year", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseYear(tt.value)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ParseYear(%q) expected error but got %d", tt.value, got)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseYear(%q) = %d, %v; expected %d", tt.value, got, err, tt.want)
			}
		})
	}
}
