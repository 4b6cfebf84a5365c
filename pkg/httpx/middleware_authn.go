package httpx

import (
	"net/http"
	"strings"

	"github.com/SGK112/CRM-sub005/pkg/jwtx"
	"github.com/SGK112/CRM-sub005/pkg/slogx"
)

// AuthnMiddleware verifies the bearer token and binds the caller's user,
// workspace and role to the request context and logger.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			raw = strings.TrimSpace(raw)
			if !ok || raw == "" {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				slogx.FromContext(r.Context()).Warn("bearer token rejected", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx := ContextWithClaims(r.Context(), claims)
			ctx = slogx.With(ctx, "user_id", claims.Subject, "workspace_id", claims.WorkspaceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeBearerError answers 401 with an RFC 6750 challenge.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized", desc)
}
