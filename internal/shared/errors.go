package shared

import "errors"

var (
	// ErrNotFound indicates the record does not exist or belongs to
	// another user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized indicates a request without an authenticated user.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDuplicate indicates a uniqueness violation outside sequence
	// numbering, e.g. registering an email twice.
	ErrDuplicate = errors.New("duplicate entry")
)
