package domain

import "testing"

func TestComputeLine(t *testing.T) {
	tests := []struct {
		name           string
		quantity       int64
		unitPriceCents int64
		taxRateBps     int64
		want           LineAmounts
	}{
		{
			name:           "standard rate",
			quantity:       20,
			unitPriceCents: 15000,
			taxRateBps:     1900,
			want:           LineAmounts{SubtotalCents: 300000, TaxCents: 57000, TotalCents: 357000},
		},
		{
			name:           "zero tax",
			quantity:       3,
			unitPriceCents: 999,
			taxRateBps:     0,
			want:           LineAmounts{SubtotalCents: 2997, TaxCents: 0, TotalCents: 2997},
		},
		{
			name:           "rounds half up",
			quantity:       1,
			unitPriceCents: 105,
			taxRateBps:     1000,
			want:           LineAmounts{SubtotalCents: 105, TaxCents: 11, TotalCents: 116},
		},
		{
			name:           "rounds down below half",
			quantity:       1,
			unitPriceCents: 104,
			taxRateBps:     1000,
			want:           LineAmounts{SubtotalCents: 104, TaxCents: 10, TotalCents: 114},
		},
		{
			name:           "full rate",
			quantity:       2,
			unitPriceCents: 50,
			taxRateBps:     10000,
			want:           LineAmounts{SubtotalCents: 100, TaxCents: 100, TotalCents: 200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLine(tt.quantity, tt.unitPriceCents, tt.taxRateBps)
			if got != tt.want {
				t.Fatalf("ComputeLine(%d, %d, %d) = %+v, want %+v",
					tt.quantity, tt.unitPriceCents, tt.taxRateBps, got, tt.want)
			}
		})
	}
}

func TestComputeTotalsSumsLineTaxes(t *testing.T) {
	items := []ItemInput{
		{Description: "consulting", Quantity: 1, UnitPriceCents: 105, TaxRateBps: 1000},
		{Description: "hosting", Quantity: 1, UnitPriceCents: 105, TaxRateBps: 1000},
	}

	totals := ComputeTotals(items)

	// Each line rounds half up on its own, so the invoice tax is 22,
	// not the 21 a single rounding over the summed subtotal would give.
	if totals.SubtotalCents != 210 {
		t.Fatalf("subtotal = %d, want 210", totals.SubtotalCents)
	}
	if totals.TaxCents != 22 {
		t.Fatalf("tax = %d, want 22", totals.TaxCents)
	}
	if totals.TotalCents != 232 {
		t.Fatalf("total = %d, want 232", totals.TotalCents)
	}
	if len(totals.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(totals.Lines))
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)
	if totals.SubtotalCents != 0 || totals.TaxCents != 0 || totals.TotalCents != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}
