package httpx

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/akinmiday/marketing-calc/internal/sequence"
	"github.com/akinmiday/marketing-calc/internal/shared"
)

// RespondError maps domain errors to RFC7807 responses. Not-found covers
// both absent records and records owned by another user; sequence conflicts
// surface as 409 only after the repository's retries are exhausted.
func RespondError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, sequence.ErrConflict):
		Problem(w, http.StatusConflict, "Conflict", "numbering conflict, retry the request")
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials), errors.Is(err, shared.ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.As(err, &verrs):
		Problem(w, http.StatusBadRequest, "Validation Failed", verrs.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
