// Package summary aggregates an owner's receipts and invoices into
// dashboard figures.
package summary

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/akinmiday/marketing-calc/internal/calc"
	"github.com/akinmiday/marketing-calc/internal/invoices"
	"github.com/akinmiday/marketing-calc/internal/receipts"
	"github.com/akinmiday/marketing-calc/internal/shared"
)

// ReceiptSource lists a user's saved calculations.
type ReceiptSource interface {
	List(ctx context.Context, userID int64) ([]receipts.Receipt, error)
}

// InvoiceSource lists a user's invoices.
type InvoiceSource interface {
	List(ctx context.Context, userID int64) ([]invoices.Invoice, error)
}

// Overview is the aggregate view over everything a user has saved. Sums are
// taken from the stored snapshots, not recomputed, and are expressed in the
// records' shared base currency. When the records span more than one base
// currency the sums mix units: Currency then reports "mixed" and the
// display strings are left empty.
type Overview struct {
	ReceiptCount        int     `json:"receipt_count"`
	InvoiceCount        int     `json:"invoice_count"`
	Currency            string  `json:"currency"`
	TotalRevenue        float64 `json:"total_revenue"`
	TotalNetRevenue     float64 `json:"total_net_revenue"`
	TotalGrossProfit    float64 `json:"total_gross_profit"`
	TotalInvoiced       float64 `json:"total_invoiced"`
	DisplayRevenue      string  `json:"display_revenue,omitempty"`
	DisplayGrossProfit  string  `json:"display_gross_profit,omitempty"`
	DisplayInvoiced     string  `json:"display_invoiced,omitempty"`
	LatestReceiptNumber int64   `json:"latest_receipt_number"`
	LatestInvoiceNumber int64   `json:"latest_invoice_number"`
}

// Service builds overviews from the two record stores.
type Service struct {
	receipts ReceiptSource
	invoices InvoiceSource
}

// NewService builds a Service instance.
func NewService(r ReceiptSource, i InvoiceSource) *Service {
	return &Service{receipts: r, invoices: i}
}

// Overview fetches both record sets concurrently and folds them into the
// aggregate figures. Amounts are displayed in the base currency.
func (s *Service) Overview(ctx context.Context, userID int64) (*Overview, error) {
	var (
		recs []receipts.Receipt
		invs []invoices.Invoice
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recs, err = s.receipts.List(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		invs, err = s.invoices.List(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load summary records: %w", err)
	}

	out := Overview{
		ReceiptCount: len(recs),
		InvoiceCount: len(invs),
	}
	seen := make(map[calc.Currency]struct{})
	for _, rec := range recs {
		out.TotalRevenue += rec.Payload.Results.Revenue
		out.TotalNetRevenue += rec.Payload.Results.NetRevenue
		out.TotalGrossProfit += rec.Payload.Results.GrossProfit
		if rec.ReceiptNumber > out.LatestReceiptNumber {
			out.LatestReceiptNumber = rec.ReceiptNumber
		}
		if c := rec.Payload.Input.BaseCurrency; c != "" {
			seen[c] = struct{}{}
		}
	}
	for _, inv := range invs {
		out.TotalInvoiced += inv.Totals.Total
		if inv.InvoiceNumber > out.LatestInvoiceNumber {
			out.LatestInvoiceNumber = inv.InvoiceNumber
		}
		if c := inv.Payload.Currency; c != "" {
			seen[c] = struct{}{}
		}
	}

	if len(seen) > 1 {
		out.Currency = "mixed"
		return &out, nil
	}
	currency := calc.NGN
	for c := range seen {
		currency = c
	}
	out.Currency = string(currency)
	out.DisplayRevenue = shared.FormatMoney(out.Currency, out.TotalRevenue)
	out.DisplayGrossProfit = shared.FormatMoney(out.Currency, out.TotalGrossProfit)
	out.DisplayInvoiced = shared.FormatMoney(out.Currency, out.TotalInvoiced)
	return &out, nil
}
