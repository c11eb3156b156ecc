package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"950", "950"},
		{"2500000", "2,500,000"},
		{"-15000", "-15,000"},
		{"1234.5", "1,234.50"},
	}
	for _, tt := range tests {
		got := Format(decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Errorf("Format(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKES(t *testing.T) {
	if got := KES(decimal.NewFromInt(50000)); got != "KES 50,000" {
		t.Errorf("KES = %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(decimal.RequireFromString("12.345")); got != "12.3%" {
		t.Errorf("Percent = %q", got)
	}
	if got := Percent(decimal.NewFromInt(70)); got != "70.0%" {
		t.Errorf("Percent = %q", got)
	}
}

func TestNumber(t *testing.T) {
	if got := Number(35); got != "35" {
		t.Errorf("Number(35) = %q", got)
	}
	if got := Number(12.5); got != "12.5" {
		t.Errorf("Number(12.5) = %q", got)
	}
}
