package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "0.00"},
		{"100", "100.00"},
		{"999.999", "1,000.00"},
		{"1000", "1,000.00"},
		{"12345", "12,345.00"},
		{"123456", "123,456.00"},
		{"1234567", "1,234,567.00"},
		{"2500000", "2,500,000.00"},
		{"2847.5", "2,847.50"},
		{"0.125", "0.13"},
		{"-1234.56", "-1,234.56"},
		{"-0.001", "0.00"},
		{"1000000000000", "1,000,000,000,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatAmount(decimal.RequireFromString(tt.input))
			if result != tt.expected {
				t.Errorf("FormatAmount(%s) = %s, want %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{25000, "25,000.00"},
		{25430.5, "25,430.50"},
		{26001.004, "26,001.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatFloat(tt.input)
			if result != tt.expected {
				t.Errorf("FormatFloat(%f) = %s, want %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGroupThousands(t *testing.T) {
	tests := map[string]string{
		"":        "",
		"1":       "1",
		"123":     "123",
		"1234":    "1,234",
		"123456":  "123,456",
		"1234567": "1,234,567",
	}
	for in, want := range tests {
		if got := groupThousands(in); got != want {
			t.Errorf("groupThousands(%q) = %q, want %q", in, got, want)
		}
	}
}
