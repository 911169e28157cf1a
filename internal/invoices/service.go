package invoices

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/akinmiday/marketing-calc/internal/calc"
)

// Service handles invoice business logic. Totals are recomputed from the
// document on every write; the stored snapshot is never edited directly.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create computes the totals snapshot and persists a new invoice with the
// owner's next sequential number.
func (s *Service) Create(ctx context.Context, userID int64, label string, usdRate float64, data InvoiceData) (*Invoice, error) {
	if r := calc.Sanitize(usdRate); r <= 0 {
		usdRate = 1
	}
	inv := Invoice{
		ID:      uuid.New(),
		UserID:  userID,
		Label:   label,
		USDRate: usdRate,
		Payload: data,
		Totals:  ComputeTotals(data),
	}
	created, err := s.repo.Create(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return created, nil
}

// Get returns one invoice scoped to its owner.
func (s *Service) Get(ctx context.Context, userID int64, id uuid.UUID) (*Invoice, error) {
	return s.repo.Get(ctx, id, userID)
}

// List returns the owner's invoices, newest number first.
func (s *Service) List(ctx context.Context, userID int64) ([]Invoice, error) {
	return s.repo.List(ctx, userID)
}

// Update patches label, rate and/or document. When the document changes the
// totals snapshot is recomputed; the invoice number is carried through
// untouched.
func (s *Service) Update(ctx context.Context, userID int64, id uuid.UUID, label *string, usdRate *float64, data *InvoiceData) (*Invoice, error) {
	existing, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if label != nil {
		existing.Label = *label
	}
	if usdRate != nil {
		rate := *usdRate
		if r := calc.Sanitize(rate); r <= 0 {
			rate = 1
		}
		existing.USDRate = rate
	}
	if data != nil {
		existing.Payload = *data
		existing.Totals = ComputeTotals(*data)
		existing.RawPayload = ""
	}

	updated, err := s.repo.Update(ctx, *existing)
	if err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	return updated, nil
}

// Delete removes one invoice scoped to its owner.
func (s *Service) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	return s.repo.Delete(ctx, id, userID)
}
