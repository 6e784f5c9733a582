package domain

// ItemInput is the caller-supplied shape of an invoice line before amounts
// are computed.
type ItemInput struct {
	Description    string
	Quantity       int64
	UnitPriceCents int64
	TaxRateBps     int64
	SortOrder      *int
}

// LineAmounts holds the computed money fields for one line.
type LineAmounts struct {
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
}

// Totals holds the computed money fields for a whole invoice.
type Totals struct {
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
	Lines         []LineAmounts
}

// ComputeLine derives the amounts for a single line. Tax is rounded half up
// at the line level, so the invoice tax is the exact sum of its line taxes.
func ComputeLine(quantity, unitPriceCents, taxRateBps int64) LineAmounts {
	subtotal := quantity * unitPriceCents
	tax := (subtotal*taxRateBps + 5000) / 10000
	return LineAmounts{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		TotalCents:    subtotal + tax,
	}
}

// ComputeTotals derives per-line amounts and the invoice totals.
func ComputeTotals(items []ItemInput) Totals {
	totals := Totals{Lines: make([]LineAmounts, 0, len(items))}
	for _, item := range items {
		line := ComputeLine(item.Quantity, item.UnitPriceCents, item.TaxRateBps)
		totals.Lines = append(totals.Lines, line)
		totals.SubtotalCents += line.SubtotalCents
		totals.TaxCents += line.TaxCents
		totals.TotalCents += line.TotalCents
	}
	return totals
}
