package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeSalariedScenario(t *testing.T) {
	gross := MonthlySalary(d("42000"))
	if !gross.Equal(d("3500")) {
		t.Fatalf("expected gross 3500, got %s", gross)
	}
	b := Compute(gross).Rounded()
	checks := map[string][2]decimal.Decimal{
		"tax":   {b.IncomeTax, d("700")},
		"prsi":  {b.PRSI, d("143.5")},
		"usc":   {b.USC, d("17.5")},
		"union": {b.UnionFee, d("280")},
		"net":   {b.Net, d("2359")},
	}
	for name, pair := range checks {
		if !pair[0].Equal(pair[1]) {
			t.Fatalf("expected %s %s, got %s", name, pair[1], pair[0])
		}
	}
}

func TestIncomeTax(t *testing.T) {
	cases := []struct{ gross, want string }{
		{"0", "0"},
		{"1000", "200"},
		{"42000", "8400"},
		{"42001", "8400.4"},
		{"50000", "11600"},
	}
	for _, tc := range cases {
		if got := IncomeTax(d(tc.gross)); !got.Equal(d(tc.want)) {
			t.Fatalf("tax(%s): expected %s, got %s", tc.gross, tc.want, got)
		}
	}
}

// uscByBands re-derives USC by charging each slice of gross at its band rate.
func uscByBands(g decimal.Decimal) decimal.Decimal {
	bands := []struct {
		upper decimal.Decimal
		rate  decimal.Decimal
	}{
		{d("12012"), d("0.005")},
		{d("25760"), d("0.02")},
		{d("70044"), d("0.04")},
	}
	total := decimal.Zero
	lower := decimal.Zero
	for _, b := range bands {
		if g.LessThanOrEqual(lower) {
			return total
		}
		slice := decimal.Min(g, b.upper).Sub(lower)
		total = total.Add(slice.Mul(b.rate))
		lower = b.upper
	}
	if g.GreaterThan(lower) {
		total = total.Add(g.Sub(lower).Mul(d("0.08")))
	}
	return total
}

func TestUSCMatchesBandDerivation(t *testing.T) {
	for _, g := range []string{"0", "3500", "12012", "25759.99", "25760", "70044", "100000"} {
		got := USC(d(g)).Round(2)
		want := uscByBands(d(g)).Round(2)
		if !got.Equal(want) {
			t.Fatalf("usc(%s): expected %s, got %s", g, want, got)
		}
	}
	if got := USC(d("70044")); !got.Equal(d("2106.38")) {
		t.Fatalf("expected cumulative usc 2106.38 at 70044, got %s", got)
	}
}

func TestUSCContinuousAtBoundaries(t *testing.T) {
	eps := d("0.0001")
	for _, boundary := range []string{"12012", "25760", "70044"} {
		b := d(boundary)
		below := USC(b.Sub(eps))
		above := USC(b.Add(eps))
		if above.Sub(below).Abs().GreaterThan(d("0.01")) {
			t.Fatalf("usc jumps at %s: %s vs %s", boundary, below, above)
		}
	}
}

func TestNetIsGrossLessDeductions(t *testing.T) {
	b := Compute(d("6250.75"))
	if !b.Net.Add(b.TotalDeductions()).Equal(b.Gross) {
		t.Fatalf("expected net + deductions == gross, got %s + %s", b.Net, b.TotalDeductions())
	}
}
