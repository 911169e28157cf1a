package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/akinmiday/marketing-calc/internal/auth"
	calchttp "github.com/akinmiday/marketing-calc/internal/calc/http"
	"github.com/akinmiday/marketing-calc/internal/invoices"
	"github.com/akinmiday/marketing-calc/internal/receipts"
	"github.com/akinmiday/marketing-calc/internal/shared"
	"github.com/akinmiday/marketing-calc/internal/summary"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	SessionManager  *shared.SessionManager
	AuthHandler     *auth.Handler
	CalcHandler     *calchttp.Handler
	ReceiptsHandler *receipts.Handler
	InvoicesHandler *invoices.Handler
	SummaryHandler  *summary.Handler
}

// NewRouter constructs the chi.Router with the application defaults. The
// compute endpoints are open; everything touching stored records sits
// behind the session guard.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/api", func(api chi.Router) {
		params.CalcHandler.MountRoutes(api)
		params.InvoicesHandler.MountComputeRoutes(api)

		api.Group(func(guarded chi.Router) {
			guarded.Use(auth.RequireUser)
			params.ReceiptsHandler.MountRoutes(guarded)
			params.InvoicesHandler.MountRoutes(guarded)
			params.SummaryHandler.MountRoutes(guarded)
		})
	})

	return r
}
