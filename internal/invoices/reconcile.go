package invoices

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReconcileSnapshots recomputes the totals snapshot of every stored invoice
// from its document and rewrites rows whose snapshot drifted. Rows whose
// payload cannot be decoded are left untouched. Returns the number of
// repaired rows.
func ReconcileSnapshots(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	rows, err := pool.Query(ctx, "SELECT id, payload FROM invoices")
	if err != nil {
		return 0, fmt.Errorf("scan invoices: %w", err)
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
			return 0, fmt.Errorf("scan invoice row: %w", err)
		}
		data, totals, raw := decodePayload(text)
		if raw != "" {
			continue
		}
		fresh := ComputeTotals(data)
		if fresh == totals {
			continue
		}
		encoded, err := encodePayload(data, fresh)
		if err != nil {
			rows.Close()
			return 0, fmt.Errorf("encode invoice %s: %w", id, err)
		}
		repairs = append(repairs, repair{id: id, payload: encoded})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("scan invoices: %w", err)
	}

	for _, rep := range repairs {
		if _, err := pool.Exec(ctx,
			"UPDATE invoices SET payload = $2, updated_at = $3 WHERE id = $1",
			rep.id, rep.payload, time.Now().UTC()); err != nil {
			return 0, fmt.Errorf("repair invoice %s: %w", rep.id, err)
		}
	}
	return len(repairs), nil
}
