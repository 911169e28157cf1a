package receipts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akinmiday/marketing-calc/internal/calc"
)

// ReconcileSnapshots recomputes the results snapshot of every stored
// receipt from its input and rewrites rows whose snapshot drifted, e.g.
// after a calculation fix. Rows whose payload cannot be decoded are left
// untouched. Returns the number of repaired rows.
func ReconcileSnapshots(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	rows, err := pool.Query(ctx, "SELECT id, payload FROM receipts")
	if err != nil {
		return 0, fmt.Errorf("scan receipts: %w", err)
	}

	type repair struct {
		id      uuid.UUID
		payload string
	}
	var repairs []repair
	for rows.Next() {
		var (
			id   uuid.UUID
			text string
		)
		if err := rows.Scan(&id, &text); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan receipt row: %w", err)
		}
		payload, raw := decodePayload(text)
		if raw != "" {
			continue
		}
		payload.Input = calc.NormalizeInput(payload.Input)
		fresh := calc.Compute(payload.Input)
		if fresh.Revenue == payload.Results.Revenue &&
			fresh.GrossProfit == payload.Results.GrossProfit &&
			fresh.NetRevenue == payload.Results.NetRevenue &&
			fresh.MarginPct == payload.Results.MarginPct {
			continue
		}
		payload.Results = fresh
		encoded, err := encodePayload(payload)
		if err != nil {
			rows.Close()
			return 0, fmt.Errorf("encode receipt %s: %w", id, err)
		}
		repairs = append(repairs, repair{id: id, payload: encoded})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("scan receipts: %w", err)
	}

	for _, rep := range repairs {
		if _, err := pool.Exec(ctx,
			"UPDATE receipts SET payload = $2, updated_at = $3 WHERE id = $1",
			rep.id, rep.payload, time.Now().UTC()); err != nil {
			return 0, fmt.Errorf("repair receipt %s: %w", rep.id, err)
		}
	}
	return len(repairs), nil
}
