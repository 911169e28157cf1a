package receipts

import (
	"time"

	"github.com/akinmiday/marketing-calc/internal/calc"
	"github.com/akinmiday/marketing-calc/internal/sequence"
)

// CreateReceiptRequest is the body for POST /api/receipts.
type CreateReceiptRequest struct {
	Label string         `json:"label" validate:"omitempty,max=120"`
	Input calc.CalcInput `json:"input"`
}

// UpdateReceiptRequest is the body for PUT /api/receipts/{id}. Nil fields
// are left untouched.
type UpdateReceiptRequest struct {
	Label *string         `json:"label,omitempty" validate:"omitempty,max=120"`
	Input *calc.CalcInput `json:"input,omitempty"`
}

// ReceiptResponse is the wire form of a receipt.
type ReceiptResponse struct {
	ID            string          `json:"id"`
	Label         string          `json:"label,omitempty"`
	Number        int64           `json:"receipt_number"`
	DisplayNumber string          `json:"display_number"`
	Input         *calc.CalcInput `json:"input,omitempty"`
	Results       *calc.Results   `json:"results,omitempty"`
	RawPayload    string          `json:"raw_payload,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toResponse(rec *Receipt) ReceiptResponse {
	resp := ReceiptResponse{
		ID:            rec.ID.String(),
		Label:         rec.Label,
		Number:        rec.ReceiptNumber,
		DisplayNumber: sequence.Format(NumberPrefix, rec.ReceiptNumber),
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
	if rec.RawPayload != "" {
		resp.RawPayload = rec.RawPayload
		return resp
	}
	input := rec.Payload.Input
	results := rec.Payload.Results
	resp.Input = &input
	resp.Results = &results
	return resp
}
