package invoices

import "github.com/akinmiday/marketing-calc/internal/calc"

// ComputeTotals derives the invoice totals from the document. Item
// quantities and unit prices, the discount and tax percentages and the
// shipping amount are all clamped to finite non-negative values at this
// boundary; the function never fails.
func ComputeTotals(data InvoiceData) Totals {
	var subtotal float64
	for _, it := range data.Items {
		subtotal += calc.Clamp(it.Quantity) * calc.Clamp(it.UnitPrice)
	}

	discountPct := calc.Clamp(data.DiscountPct)
	taxPct := calc.Clamp(data.TaxPct)
	shipping := calc.Clamp(data.Shipping)

	discount := subtotal * discountPct / 100
	taxable := subtotal - discount
	if taxable < 0 {
		taxable = 0
	}
	tax := taxable * taxPct / 100

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Taxable:  taxable,
		Tax:      tax,
		Shipping: shipping,
		Total:    taxable + tax + shipping,
	}
}
