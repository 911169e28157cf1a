// Package calchttp exposes the margin calculator as a stateless JSON
// endpoint. Nothing here touches storage; saving a calculation goes
// through the receipts API.
package calchttp

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akinmiday/marketing-calc/internal/calc"
	"github.com/akinmiday/marketing-calc/internal/platform/httpx"
)

// Handler wires the calculator endpoint.
type Handler struct {
	logger *slog.Logger
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// MountRoutes registers calculator routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/calc", h.compute)
}

type calcResponse struct {
	Input   calc.CalcInput `json:"input"`
	Results calc.Results   `json:"results"`
}

func (h *Handler) compute(w http.ResponseWriter, r *http.Request) {
	var input calc.CalcInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	input = calc.NormalizeInput(input)
	httpx.JSON(w, http.StatusOK, calcResponse{
		Input:   input,
		Results: calc.Compute(input),
	})
}
