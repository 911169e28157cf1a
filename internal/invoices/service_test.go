package invoices

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

type memoryRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*Invoice
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[uuid.UUID]*Invoice)}
}

func (r *memoryRepo) Create(ctx context.Context, inv Invoice) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var max int64
	for _, existing := range r.records {
		if existing.UserID == inv.UserID && existing.InvoiceNumber > max {
			max = existing.InvoiceNumber
		}
	}
	inv.InvoiceNumber = sequence.Next(max)
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	stored := inv
	r.records[inv.ID] = &stored
	return &inv, nil
}

func (r *memoryRepo) Get(ctx context.Context, id uuid.UUID, userID int64) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.records[id]
	if !ok || inv.UserID != userID {
		return nil, shared.ErrNotFound
	}
	copy := *inv
	return &copy, nil
}

func (r *memoryRepo) List(ctx context.Context, userID int64) ([]Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Invoice
	for _, inv := range r.records {
		if inv.UserID == userID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *memoryRepo) Update(ctx context.Context, inv Invoice) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.records[inv.ID]
	if !ok || existing.UserID != inv.UserID {
		return nil, shared.ErrNotFound
	}
	inv.InvoiceNumber = existing.InvoiceNumber
	inv.CreatedAt = existing.CreatedAt
	inv.UpdatedAt = time.Now()

	// Round-trip through the stored text form, as the real store does.
	text, err := payloadText(inv)
	if err != nil {
		return nil, err
	}
	inv.Payload, inv.Totals, inv.RawPayload = decodePayload(text)

	stored := inv
	r.records[inv.ID] = &stored
	return &stored, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.records[id]
	if !ok || inv.UserID != userID {
		return shared.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func sampleInvoice() InvoiceData {
	return InvoiceData{
		Currency:    calc.NGN,
		IssueDate:   "2025-11-01",
		DueDate:     "2025-11-15",
		From:        Party{Name: "Acme Ltd"},
		To:          Party{Name: "Customer"},
		DiscountPct: 10,
		TaxPct:      5,
		Shipping:    20,
		Items:       []Item{{ID: "l1", Description: "Consulting", Quantity: 3, UnitPrice: 200}},
	}
}

func TestCreateComputesTotalsSnapshot(t *testing.T) {
	svc := NewService(newMemoryRepo())

	inv, err := svc.Create(context.Background(), 1, "november", 1500, sampleInvoice())
	require.NoError(t, err)
	require.Equal(t, int64(1), inv.InvoiceNumber)
	require.InDelta(t, 600, inv.Totals.Subtotal, 1e-9)
	require.InDelta(t, 587, inv.Totals.Total, 1e-9)
}

func TestCreateAssignsSequentialNumbersPerUser(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		inv, err := svc.Create(ctx, 1, "", 1, sampleInvoice())
		require.NoError(t, err)
		require.Equal(t, int64(i), inv.InvoiceNumber)
	}
	inv, err := svc.Create(ctx, 9, "", 1, sampleInvoice())
	require.NoError(t, err)
	require.Equal(t, int64(1), inv.InvoiceNumber)
}

func TestCreateDefaultsBadRate(t *testing.T) {
	svc := NewService(newMemoryRepo())
	inv, err := svc.Create(context.Background(), 1, "", -5, sampleInvoice())
	require.NoError(t, err)
	require.Equal(t, 1.0, inv.USDRate)
}

func TestUpdateRecomputesTotalsKeepsNumber(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	inv, err := svc.Create(ctx, 1, "", 1500, sampleInvoice())
	require.NoError(t, err)

	data := sampleInvoice()
	data.Items = append(data.Items, Item{ID: "l2", Quantity: 1, UnitPrice: 400})
	updated, err := svc.Update(ctx, 1, inv.ID, nil, nil, &data)
	require.NoError(t, err)
	require.Equal(t, inv.InvoiceNumber, updated.InvoiceNumber)
	require.InDelta(t, 1000, updated.Totals.Subtotal, 1e-9)
}

func TestUpdateLabelKeepsUndecodablePayload(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	const garbled = `{"data": not-json`
	id := uuid.New()
	repo.records[id] = &Invoice{ID: id, UserID: 1, Label: "old", USDRate: 1, RawPayload: garbled, InvoiceNumber: 1}

	newLabel := "renamed"
	updated, err := svc.Update(ctx, 1, id, &newLabel, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Label)
	require.Equal(t, garbled, updated.RawPayload)
	require.Zero(t, updated.Totals)

	// Supplying a fresh document replaces the broken payload for good.
	data := sampleInvoice()
	updated, err = svc.Update(ctx, 1, id, nil, nil, &data)
	require.NoError(t, err)
	require.Empty(t, updated.RawPayload)
	require.InDelta(t, 587, updated.Totals.Total, 1e-9)
}

func TestForeignOwnerLooksAbsent(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	inv, err := svc.Create(ctx, 1, "", 1, sampleInvoice())
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, inv.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, 2, inv.ID), shared.ErrNotFound)
}

func TestStoredPayloadRoundTrip(t *testing.T) {
	data := sampleInvoice()
	totals := ComputeTotals(data)

	text, err := encodePayload(data, totals)
	require.NoError(t, err)

	gotData, gotTotals, raw := decodePayload(text)
	require.Empty(t, raw)
	require.Equal(t, data, gotData)
	require.Equal(t, totals, gotTotals)
}

func TestDecodeFailureKeepsRawText(t *testing.T) {
	const garbled = `{"data": {`
	_, _, raw := decodePayload(garbled)
	require.Equal(t, garbled, raw)
}
