// Package sequence implements per-user gapless document numbering.
//
// Numbering is fully partitioned by user: a record's number is
// 1 + max(existing numbers for that user), assigned inside a single
// transaction against the record store. The store's uniqueness constraint
// on (user, number) is the backstop when two transactions race; the losing
// insert surfaces as ErrConflict and the create is retried from scratch.
package sequence

import (
	"context"
	"errors"
	"fmt"
)

// ErrConflict reports a (user, number) collision detected by the storage
// uniqueness constraint. It is transient: retrying the whole
// read-max-then-insert step is safe.
var ErrConflict = errors.New("sequence: number conflict")

// DefaultAttempts bounds how many times a create is retried after a
// conflict before the conflict surfaces to the caller.
const DefaultAttempts = 3

// Next returns the successor of the highest assigned number for a user.
// Numbering starts at 1 when no records exist.
func Next(max int64) int64 {
	if max < 0 {
		max = 0
	}
	return max + 1
}

// WithRetry runs fn, which must perform one complete read-max-then-insert
// transaction and return the number it assigned. fn is retried while it
// reports ErrConflict, up to attempts times; any other error aborts
// immediately. Exhausted retries return the last ErrConflict.
func WithRetry(ctx context.Context, attempts int, fn func(context.Context) (int64, error)) (int64, error) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n, err := fn(ctx)
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, ErrConflict) {
			return 0, err
		}
		lastErr = err
	}
	return 0, lastErr
}

// Format renders a number in its display form, e.g. INV-0007. The formatted
// string is cosmetic and derived; the integer remains the canonical number
// and is never persisted in this form.
func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s-%04d", prefix, n)
}
