package invoices

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

// Repository defines persistence operations for invoices. Every operation
// is scoped to the owning user; a foreign owner's record behaves as absent.
type Repository interface {
	Create(ctx context.Context, inv Invoice) (*Invoice, error)
	Get(ctx context.Context, id uuid.UUID, userID int64) (*Invoice, error)
	List(ctx context.Context, userID int64) ([]Invoice, error)
	Update(ctx context.Context, inv Invoice) (*Invoice, error)
	Delete(ctx context.Context, id uuid.UUID, userID int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const invoiceColumns = "id, user_id, label, usd_rate, payload, invoice_number, created_at, updated_at"

// Create assigns the next sequential number for the owner and inserts the
// record inside one RepeatableRead transaction, retrying on the
// (user_id, invoice_number) uniqueness backstop.
func (r *repository) Create(ctx context.Context, inv Invoice) (*Invoice, error) {
	payload, err := encodePayload(inv.Payload, inv.Totals)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	number, err := sequence.WithRetry(ctx, sequence.DefaultAttempts, func(ctx context.Context) (int64, error) {
		var next int64
		err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
			var max int64
			if err := tx.QueryRow(ctx,
				"SELECT COALESCE(MAX(invoice_number), 0) FROM invoices WHERE user_id = $1",
				inv.UserID).Scan(&max); err != nil {
				return fmt.Errorf("max invoice number: %w", err)
			}
			next = sequence.Next(max)

			_, err := tx.Exec(ctx,
				`INSERT INTO invoices (id, user_id, label, usd_rate, payload, invoice_number, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
				inv.ID, inv.UserID, inv.Label, inv.USDRate, payload, next, now)
			if db.IsUniqueViolation(err, "") {
				return sequence.ErrConflict
			}
			if err != nil {
				return fmt.Errorf("insert invoice: %w", err)
			}
			return nil
		})
		return next, err
	})
	if err != nil {
		return nil, err
	}

	inv.InvoiceNumber = number
	inv.CreatedAt = now
	inv.UpdatedAt = now
	return &inv, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID, userID int64) (*Invoice, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+invoiceColumns+" FROM invoices WHERE id = $1 AND user_id = $2",
		id, userID)
	return scanInvoice(row)
}

func (r *repository) List(ctx context.Context, userID int64) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+invoiceColumns+" FROM invoices WHERE user_id = $1 ORDER BY invoice_number DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

// Update rewrites label, rate and payload. The invoice number is
// deliberately absent from the statement: assigned once, never changed.
func (r *repository) Update(ctx context.Context, inv Invoice) (*Invoice, error) {
	payload, err := payloadText(inv)
	if err != nil {
		return nil, err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE invoices SET label = $3, usd_rate = $4, payload = $5, updated_at = $6
		 WHERE id = $1 AND user_id = $2`,
		inv.ID, inv.UserID, inv.Label, inv.USDRate, payload, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, shared.ErrNotFound
	}
	return r.Get(ctx, inv.ID, inv.UserID)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM invoices WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	var payload string
	err := row.Scan(&inv.ID, &inv.UserID, &inv.Label, &inv.USDRate, &payload,
		&inv.InvoiceNumber, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	inv.Payload, inv.Totals, inv.RawPayload = decodePayload(payload)
	return &inv, nil
}
