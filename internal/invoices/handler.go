package invoices

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/akinmiday/marketing-calc/internal/platform/httpx"
	"github.com/akinmiday/marketing-calc/internal/shared"
)

// Handler wires the invoice JSON endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountComputeRoutes registers the stateless totals endpoint, which needs
// no session.
func (h *Handler) MountComputeRoutes(r chi.Router) {
	r.Post("/invoice-totals", h.computeTotals)
}

// MountRoutes registers invoice record routes; callers wrap them with the
// auth middleware.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/invoices", h.list)
	r.Post("/invoices", h.create)
	r.Get("/invoices/{id}", h.get)
	r.Put("/invoices/{id}", h.update)
	r.Delete("/invoices/{id}", h.remove)
}

// computeTotals is the stateless compute endpoint: nothing is persisted.
func (h *Handler) computeTotals(w http.ResponseWriter, r *http.Request) {
	var req TotalsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	httpx.JSON(w, http.StatusOK, ComputeTotals(req.Data))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	userID := shared.UserIDFromContext(r.Context())
	inv, err := h.service.Create(r.Context(), userID, req.Label, req.USDRate, req.Data)
	if err != nil {
		h.logger.Error("create invoice", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(inv))
}

type listResponse struct {
	Items      []InvoiceResponse `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	invs, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	pagination := shared.NewPagination(page, perPage, len(invs))

	start := pagination.Offset()
	if start > len(invs) {
		start = len(invs)
	}
	end := start + pagination.PerPage
	if end > len(invs) {
		end = len(invs)
	}

	out := make([]InvoiceResponse, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, toResponse(&invs[i]))
	}
	httpx.JSON(w, http.StatusOK, listResponse{Items: out, Pagination: pagination})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	userID := shared.UserIDFromContext(r.Context())
	inv, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	var req UpdateInvoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	userID := shared.UserIDFromContext(r.Context())
	inv, err := h.service.Update(r.Context(), userID, id, req.Label, req.USDRate, req.Data)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	userID := shared.UserIDFromContext(r.Context())
	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
