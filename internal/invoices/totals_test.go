package invoices

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(InvoiceData{
		DiscountPct: 10,
		TaxPct:      5,
		Shipping:    20,
		Items:       []Item{{Quantity: 3, UnitPrice: 200}},
	})

	require.InDelta(t, 600, totals.Subtotal, 1e-9)
	require.InDelta(t, 60, totals.Discount, 1e-9)
	require.InDelta(t, 540, totals.Taxable, 1e-9)
	require.InDelta(t, 27, totals.Tax, 1e-9)
	require.InDelta(t, 20, totals.Shipping, 1e-9)
	require.InDelta(t, 587, totals.Total, 1e-9)
}

func TestComputeTotalsEmptyInvoice(t *testing.T) {
	totals := ComputeTotals(InvoiceData{})
	require.Zero(t, totals.Subtotal)
	require.Zero(t, totals.Total)
}

func TestComputeTotalsClampsHostileInput(t *testing.T) {
	totals := ComputeTotals(InvoiceData{
		DiscountPct: -10,
		TaxPct:      math.NaN(),
		Shipping:    math.Inf(1),
		Items: []Item{
			{Quantity: -2, UnitPrice: 100},
			{Quantity: 3, UnitPrice: math.NaN()},
			{Quantity: 2, UnitPrice: 50},
		},
	})

	require.InDelta(t, 100, totals.Subtotal, 1e-9)
	require.Zero(t, totals.Discount)
	require.Zero(t, totals.Tax)
	require.Zero(t, totals.Shipping)
	require.InDelta(t, 100, totals.Total, 1e-9)
}

func TestComputeTotalsFullDiscount(t *testing.T) {
	totals := ComputeTotals(InvoiceData{
		DiscountPct: 150,
		Items:       []Item{{Quantity: 1, UnitPrice: 100}},
	})

	// A discount beyond the subtotal cannot push taxable below zero.
	require.Zero(t, totals.Taxable)
	require.Zero(t, totals.Tax)
	require.Zero(t, totals.Total)
	require.InDelta(t, 150, totals.Discount, 1e-9)
}
