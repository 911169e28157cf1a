// Package receipts persists saved margin calculations with per-user
// sequential numbering.
package receipts

import (
	"time"

	"github.com/google/uuid"

	"github.com/akinmiday/marketing-calc/internal/calc"
)

// NumberPrefix tags the display form of receipt numbers, e.g. RCT-0007.
const NumberPrefix = "RCT"

// Payload is the persisted body of a receipt: the calculator input together
// with the snapshot of its computed results. The snapshot is recomputed on
// every write, never edited directly.
type Payload struct {
	Input   calc.CalcInput `json:"input"`
	Results calc.Results   `json:"results"`
}

// Receipt is a saved margin calculation owned by exactly one user.
// ReceiptNumber is unique per (user, number), assigned at creation and
// immutable thereafter.
type Receipt struct {
	ID      uuid.UUID
	UserID  int64
	Label   string
	Payload Payload
	// RawPayload carries the stored payload text verbatim when it could
	// not be decoded; empty otherwise.
	RawPayload    string
	ReceiptNumber int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
