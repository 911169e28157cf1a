package receipts

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/akinmiday/marketing-calc/internal/calc"
)

// Service handles receipt business logic. Calculator input is normalised
// once on the way in and the results snapshot is recomputed on every write.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create computes the results snapshot for input and persists a new receipt
// with the owner's next sequential number.
func (s *Service) Create(ctx context.Context, userID int64, label string, input calc.CalcInput) (*Receipt, error) {
	input = calc.NormalizeInput(input)
	rec := Receipt{
		ID:     uuid.New(),
		UserID: userID,
		Label:  label,
		Payload: Payload{
			Input:   input,
			Results: calc.Compute(input),
		},
	}
	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("create receipt: %w", err)
	}
	return created, nil
}

// Get returns one receipt scoped to its owner.
func (s *Service) Get(ctx context.Context, userID int64, id uuid.UUID) (*Receipt, error) {
	return s.repo.Get(ctx, id, userID)
}

// List returns the owner's receipts, newest number first.
func (s *Service) List(ctx context.Context, userID int64) ([]Receipt, error) {
	return s.repo.List(ctx, userID)
}

// Update patches label and/or input. When the input changes the results
// snapshot is recomputed; the receipt number is carried through untouched.
func (s *Service) Update(ctx context.Context, userID int64, id uuid.UUID, label *string, input *calc.CalcInput) (*Receipt, error) {
	existing, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if label != nil {
		existing.Label = *label
	}
	if input != nil {
		normalized := calc.NormalizeInput(*input)
		existing.Payload = Payload{
			Input:   normalized,
			Results: calc.Compute(normalized),
		}
		existing.RawPayload = ""
	}

	updated, err := s.repo.Update(ctx, *existing)
	if err != nil {
		return nil, fmt.Errorf("update receipt: %w", err)
	}
	return updated, nil
}

// Delete removes one receipt scoped to its owner.
func (s *Service) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	return s.repo.Delete(ctx, id, userID)
}
