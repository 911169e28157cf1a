package receipts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akinmiday/marketing-calc/internal/platform/db"
	"github.com/akinmiday/marketing-calc/internal/sequence"
	"github.com/akinmiday/marketing-calc/internal/shared"
)

// Repository defines persistence operations for receipts. Every operation
// is scoped to the owning user; a foreign owner's record behaves as absent.
type Repository interface {
	Create(ctx context.Context, rec Receipt) (*Receipt, error)
	Get(ctx context.Context, id uuid.UUID, userID int64) (*Receipt, error)
	List(ctx context.Context, userID int64) ([]Receipt, error)
	Update(ctx context.Context, rec Receipt) (*Receipt, error)
	Delete(ctx context.Context, id uuid.UUID, userID int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const receiptColumns = "id, user_id, label, payload, receipt_number, created_at, updated_at"

// Create assigns the next sequential number for the owner and inserts the
// record, all inside one RepeatableRead transaction. The unique index on
// (user_id, receipt_number) backstops the read-then-insert race; a losing
// insert is retried from scratch with a fresh transaction.
func (r *repository) Create(ctx context.Context, rec Receipt) (*Receipt, error) {
	payload, err := encodePayload(rec.Payload)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	number, err := sequence.WithRetry(ctx, sequence.DefaultAttempts, func(ctx context.Context) (int64, error) {
		var next int64
		err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
			var max int64
			if err := tx.QueryRow(ctx,
				"SELECT COALESCE(MAX(receipt_number), 0) FROM receipts WHERE user_id = $1",
				rec.UserID).Scan(&max); err != nil {
				return fmt.Errorf("max receipt number: %w", err)
			}
			next = sequence.Next(max)

			_, err := tx.Exec(ctx,
				`INSERT INTO receipts (id, user_id, label, payload, receipt_number, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
				rec.ID, rec.UserID, rec.Label, payload, next, now)
			if db.IsUniqueViolation(err, "") {
				return sequence.ErrConflict
			}
			if err != nil {
				return fmt.Errorf("insert receipt: %w", err)
			}
			return nil
		})
		return next, err
	})
	if err != nil {
		return nil, err
	}

	rec.ReceiptNumber = number
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return &rec, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID, userID int64) (*Receipt, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+receiptColumns+" FROM receipts WHERE id = $1 AND user_id = $2",
		id, userID)
	return scanReceipt(row)
}

func (r *repository) List(ctx context.Context, userID int64) ([]Receipt, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+receiptColumns+" FROM receipts WHERE user_id = $1 ORDER BY receipt_number DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var out []Receipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Update rewrites label and payload. The receipt number is deliberately
// absent from the statement: it is assigned once and never changes.
func (r *repository) Update(ctx context.Context, rec Receipt) (*Receipt, error) {
	payload, err := payloadText(rec)
	if err != nil {
		return nil, err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE receipts SET label = $3, payload = $4, updated_at = $5
		 WHERE id = $1 AND user_id = $2`,
		rec.ID, rec.UserID, rec.Label, payload, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, shared.ErrNotFound
	}
	return r.Get(ctx, rec.ID, rec.UserID)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM receipts WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanReceipt(row pgx.Row) (*Receipt, error) {
	var rec Receipt
	var payload string
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Label, &payload,
		&rec.ReceiptNumber, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	rec.Payload, rec.RawPayload = decodePayload(payload)
	return &rec, nil
}
