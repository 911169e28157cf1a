package auth

import "time"

// User represents an authenticated user account. Receipts and invoices are
// owned by exactly one user and cascade-deleted with it.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
