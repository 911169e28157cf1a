// Package invoices persists customer invoices with per-user sequential
// numbering and derives their totals.
package invoices

import (
	"time"

	"github.com/google/uuid"

	"github.com/akinmiday/marketing-calc/internal/calc"
)

// NumberPrefix tags the display form of invoice numbers, e.g. INV-0007.
const NumberPrefix = "INV"

// Party identifies one side of an invoice.
type Party struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Item is one billable line on an invoice.
type Item struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// InvoiceData is the full invoice document as entered by the user.
type InvoiceData struct {
	InvoiceNumber string        `json:"invoice_number"`
	IssueDate     string        `json:"issue_date"`
	DueDate       string        `json:"due_date"`
	Currency      calc.Currency `json:"currency"`
	From          Party         `json:"from"`
	To            Party         `json:"to"`
	Notes         string        `json:"notes,omitempty"`
	Terms         string        `json:"terms,omitempty"`
	DiscountPct   float64       `json:"discount_pct,omitempty"`
	TaxPct        float64       `json:"tax_pct,omitempty"`
	Shipping      float64       `json:"shipping,omitempty"`
	Items         []Item        `json:"items"`
}

// Totals is the derived money summary of an invoice, fully determined by
// its InvoiceData.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Taxable  float64 `json:"taxable"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Invoice is a persisted invoice owned by exactly one user. InvoiceNumber
// is unique per (user, number), assigned at creation and immutable.
type Invoice struct {
	ID      uuid.UUID
	UserID  int64
	Label   string
	USDRate float64
	Payload InvoiceData
	Totals  Totals
	// RawPayload carries the stored payload text verbatim when it could
	// not be decoded; empty otherwise.
	RawPayload    string
	InvoiceNumber int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
