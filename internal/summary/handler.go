package summary

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akinmiday/marketing-calc/internal/platform/httpx"
	"github.com/akinmiday/marketing-calc/internal/shared"
)

// Handler wires the summary endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers summary routes; callers wrap them with the auth
// middleware.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.overview)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	out, err := h.service.Overview(r.Context(), userID)
	if err != nil {
		h.logger.Error("build summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
