package invoices

import (
	"time"

	"github.com/akinmiday/marketing-calc/internal/sequence"
	"github.com/akinmiday/marketing-calc/internal/shared"
)

// CreateInvoiceRequest is the body for POST /api/invoices.
type CreateInvoiceRequest struct {
	Label   string      `json:"label" validate:"omitempty,max=120"`
	USDRate float64     `json:"usd_rate" validate:"omitempty,gt=0"`
	Data    InvoiceData `json:"data"`
}

// UpdateInvoiceRequest is the body for PUT /api/invoices/{id}. Nil fields
// are left untouched.
type UpdateInvoiceRequest struct {
	Label   *string      `json:"label,omitempty" validate:"omitempty,max=120"`
	USDRate *float64     `json:"usd_rate,omitempty" validate:"omitempty,gt=0"`
	Data    *InvoiceData `json:"data,omitempty"`
}

// TotalsRequest is the body for the compute-only totals endpoint.
type TotalsRequest struct {
	Data InvoiceData `json:"data"`
}

// InvoiceResponse is the wire form of an invoice.
type InvoiceResponse struct {
	ID            string       `json:"id"`
	Label         string       `json:"label,omitempty"`
	Number        int64        `json:"invoice_number"`
	DisplayNumber string       `json:"display_number"`
	USDRate       float64      `json:"usd_rate"`
	Data          *InvoiceData `json:"data,omitempty"`
	Totals        *Totals      `json:"totals,omitempty"`
	DisplayTotal  string       `json:"display_total,omitempty"`
	RawPayload    string       `json:"raw_payload,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func toResponse(inv *Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:            inv.ID.String(),
		Label:         inv.Label,
		Number:        inv.InvoiceNumber,
		DisplayNumber: sequence.Format(NumberPrefix, inv.InvoiceNumber),
		USDRate:       inv.USDRate,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	if inv.RawPayload != "" {
		resp.RawPayload = inv.RawPayload
		return resp
	}
	data := inv.Payload
	totals := inv.Totals
	resp.Data = &data
	resp.Totals = &totals
	resp.DisplayTotal = shared.FormatMoney(string(data.Currency), totals.Total)
	return resp
}
