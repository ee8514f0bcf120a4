package services

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "$0.00"},
		{"small", 37.5, "$37.50"},
		{"hundreds", 216, "$216.00"},
		{"thousands", 1234.5, "$1,234.50"},
		{"millions", 1234567.89, "$1,234,567.89"},
		{"negative", -1500, "-$1,500.00"},
		{"cents_only", 0.5, "$0.50"},
		{"exact_thousand", 1000, "$1,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMoney(tt.amount); got != tt.want {
				t.Errorf("FormatMoney(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
