package receipts

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/akinmiday/marketing-calc/internal/calc"
	"github.com/akinmiday/marketing-calc/internal/sequence"
	"github.com/akinmiday/marketing-calc/internal/shared"
)

// memoryRepo mirrors the Postgres repository semantics: per-user max+1
// numbering under a lock and owner-scoped reads.
type memoryRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*Receipt
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[uuid.UUID]*Receipt)}
}

func (r *memoryRepo) Create(ctx context.Context, rec Receipt) (*Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var max int64
	for _, existing := range r.records {
		if existing.UserID == rec.UserID && existing.ReceiptNumber > max {
			max = existing.ReceiptNumber
		}
	}
	rec.ReceiptNumber = sequence.Next(max)
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	stored := rec
	r.records[rec.ID] = &stored
	return &rec, nil
}

func (r *memoryRepo) Get(ctx context.Context, id uuid.UUID, userID int64) (*Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return nil, shared.ErrNotFound
	}
	copy := *rec
	return &copy, nil
}

func (r *memoryRepo) List(ctx context.Context, userID int64) ([]Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Receipt
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *memoryRepo) Update(ctx context.Context, rec Receipt) (*Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.records[rec.ID]
	if !ok || existing.UserID != rec.UserID {
		return nil, shared.ErrNotFound
	}
	rec.ReceiptNumber = existing.ReceiptNumber
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = time.Now()

	// Round-trip through the stored text form, as the real store does.
	text, err := payloadText(rec)
	if err != nil {
		return nil, err
	}
	rec.Payload, rec.RawPayload = decodePayload(text)

	stored := rec
	r.records[rec.ID] = &stored
	return &stored, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return shared.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func sampleInput() calc.CalcInput {
	return calc.CalcInput{
		BaseCurrency: calc.NGN,
		USDRate:      1500,
		Products: []calc.ProductInput{{
			ID:                     "p1",
			Quantity:               10,
			UnitSellPrice:          100,
			UnitSupplierCost:       40,
			UnitProductionOverhead: 10,
		}},
	}
}

func TestCreateComputesSnapshot(t *testing.T) {
	svc := NewService(newMemoryRepo())

	rec, err := svc.Create(context.Background(), 1, "first batch", sampleInput())
	require.NoError(t, err)
	require.Equal(t, int64(1), rec.ReceiptNumber)
	require.InDelta(t, 1000, rec.Payload.Results.Revenue, 1e-9)
	require.InDelta(t, 980, rec.Payload.Results.NetRevenue, 1e-9)
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	svc := NewService(newMemoryRepo())

	for i := 1; i <= 4; i++ {
		rec, err := svc.Create(context.Background(), 1, "", sampleInput())
		require.NoError(t, err)
		require.Equal(t, int64(i), rec.ReceiptNumber)
	}

	// A second user starts from 1 again.
	rec, err := svc.Create(context.Background(), 2, "", sampleInput())
	require.NoError(t, err)
	require.Equal(t, int64(1), rec.ReceiptNumber)
}

func TestUpdatePreservesNumber(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "", sampleInput())
	require.NoError(t, err)
	rec, err := svc.Create(ctx, 1, "", sampleInput())
	require.NoError(t, err)
	require.Equal(t, int64(2), rec.ReceiptNumber)

	newLabel := "renamed"
	newInput := sampleInput()
	newInput.Products[0].Quantity = 20

	updated, err := svc.Update(ctx, 1, rec.ID, &newLabel, &newInput)
	require.NoError(t, err)
	require.Equal(t, int64(2), updated.ReceiptNumber)
	require.Equal(t, "renamed", updated.Label)
	require.InDelta(t, 2000, updated.Payload.Results.Revenue, 1e-9)
}

func TestUpdateLabelOnlyKeepsResults(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	rec, err := svc.Create(ctx, 1, "old", sampleInput())
	require.NoError(t, err)

	newLabel := "new"
	updated, err := svc.Update(ctx, 1, rec.ID, &newLabel, nil)
	require.NoError(t, err)
	require.Equal(t, rec.Payload.Results, updated.Payload.Results)
}

func TestUpdateLabelKeepsUndecodablePayload(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	const garbled = `{"input": not-json`
	id := uuid.New()
	repo.records[id] = &Receipt{ID: id, UserID: 1, Label: "old", RawPayload: garbled, ReceiptNumber: 1}

	newLabel := "renamed"
	updated, err := svc.Update(ctx, 1, id, &newLabel, nil)
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Label)
	require.Equal(t, garbled, updated.RawPayload)
	require.Zero(t, updated.Payload)

	// Supplying fresh input replaces the broken payload for good.
	newInput := sampleInput()
	updated, err = svc.Update(ctx, 1, id, nil, &newInput)
	require.NoError(t, err)
	require.Empty(t, updated.RawPayload)
	require.InDelta(t, 1000, updated.Payload.Results.Revenue, 1e-9)
}

func TestForeignOwnerLooksAbsent(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	rec, err := svc.Create(ctx, 1, "", sampleInput())
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, rec.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
	_, err = svc.Update(ctx, 2, rec.ID, nil, nil)
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, 2, rec.ID), shared.ErrNotFound)

	// Still visible to its owner.
	_, err = svc.Get(ctx, 1, rec.ID)
	require.NoError(t, err)
}

func TestCreateNormalizesInput(t *testing.T) {
	svc := NewService(newMemoryRepo())
	input := sampleInput()
	input.Extras = []calc.ExtraCost{{Kind: calc.CostAmount, Amount: 50}}

	rec, err := svc.Create(context.Background(), 1, "", input)
	require.NoError(t, err)
	require.Equal(t, calc.NGN, rec.Payload.Input.Extras[0].Currency)
	require.Equal(t, calc.PerOrder, rec.Payload.Input.Extras[0].Allocation)
}
