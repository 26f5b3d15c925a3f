package pdf

import (
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"18", "$18.00"},
		{"10.205", "$10.21"},
		{"12345.6", "$12345.60"},
	}
	for _, c := range cases {
		d, _ := decimal.NewFromString(c.in)
		if got := formatCurrency(d); got != c.want {
			t.Fatalf("formatCurrency(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{600, "600.00"},
		{10000, "10,000.00"},
		{1234567.891, "1,234,567.89"},
	}
	for _, c := range cases {
		if got := formatQuantity(c.in); got != c.want {
			t.Fatalf("formatQuantity(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	rate, _ := decimal.NewFromString("0.2")
	if got := formatRate(rate); got != "$0.200" {
		t.Fatalf("formatRate(0.2) = %q, want $0.200", got)
	}
	rate, _ = decimal.NewFromString("0.175")
	if got := formatRate(rate); got != "$0.175" {
		t.Fatalf("formatRate(0.175) = %q, want $0.175", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Albuquerque Truck Stop #42", maxLocationLen); got != "Albuquerque Tru..." {
		t.Fatalf("truncate long = %q", got)
	}
	if got := truncate("El Paso", maxLocationLen); got != "El Paso" {
		t.Fatalf("truncate short = %q, want unchanged", got)
	}
	if got := truncate("exactly15chars!", maxLocationLen); got != "exactly15chars!" {
		t.Fatalf("truncate boundary = %q, want unchanged", got)
	}
}

func TestTruncate_MultiByte(t *testing.T) {
	got := truncate("Québec Pétroles Ltée", maxLocationLen)
	if got != "Québec Pétroles..." {
		t.Fatalf("truncate multi-byte = %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
}
