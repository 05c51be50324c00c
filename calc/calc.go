// Package calc implements the pure invoice arithmetic: per-line discount
// application, the invoice total, and the amount-in-words conversion.
// Nothing here performs I/O or returns an error; malformed numeric input
// degrades to zero so the live form always gets a result.
package calc

import (
	"strconv"
	"strings"

	"invoicegen/models"
)

// Currency is the symbol used in normalized discount labels and printed
// amounts. PDF core fonts carry no rupee glyph, so the ASCII form is
// used throughout the document.
const Currency = "Rs."

// ComputeItem derives the billable line value from raw form fields.
func ComputeItem(in models.ItemInput) models.InvoiceItem {
	qty := models.ParseNumber(in.Qty)
	rate := models.ParseNumber(in.Rate)
	gross := qty * rate
	return models.InvoiceItem{
		Name:     in.Name,
		Qty:      qty,
		Unit:     in.Unit,
		Rate:     rate,
		Discount: DiscountLabel(in.Discount),
		Amount:   gross - DiscountAmount(gross, in.Discount),
	}
}

// DiscountAmount resolves the dual-format discount field against a gross
// amount: a trailing "%" applies a percentage of the gross, anything
// else is an absolute currency amount. The result is not clamped, so a
// discount larger than the gross yields a negative net line.
func DiscountAmount(gross float64, discount string) float64 {
	d := strings.TrimSpace(discount)
	if d == "" {
		return 0
	}
	if strings.HasSuffix(d, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(d, "%")), 64)
		if err != nil {
			return 0
		}
		return gross * pct / 100
	}
	v, err := strconv.ParseFloat(d, 64)
	if err != nil {
		return 0
	}
	return v
}

// DiscountLabel normalizes the discount field for storage and print:
// "0" when empty or zero, percentages unchanged, absolute amounts with
// a currency prefix.
func DiscountLabel(discount string) string {
	d := strings.TrimSpace(discount)
	if d == "" || d == "0" {
		return "0"
	}
	if strings.HasSuffix(d, "%") {
		return d
	}
	return Currency + d
}

// ComputeTotal sums the net line amounts.
func ComputeTotal(items []models.InvoiceItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Amount
	}
	return total
}
