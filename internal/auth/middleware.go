package auth

import (
	"net/http"
	"strconv"

	"github.com/akinmiday/marketing-calc/internal/platform/httpx"
	"github.com/akinmiday/marketing-calc/internal/shared"
)

// RequireUser rejects requests without an authenticated session and puts
// the user id into the request context for downstream handlers.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil || sess.User() == "" {
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		userID, err := strconv.ParseInt(sess.User(), 10, 64)
		if err != nil || userID <= 0 {
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		ctx := shared.ContextWithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
