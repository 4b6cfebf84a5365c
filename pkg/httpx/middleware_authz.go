package httpx

import (
	"net/http"
	"slices"
	"strings"
)

// RequireAnyScope lets the request through when the token carries at least
// one of required. Scopes are the role permissions embedded at login.
func RequireAnyScope(required ...string) Middleware {
	challenge := strings.Join(required, " ")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			granted := scopesFromCtx(r.Context())
			if slices.ContainsFunc(required, func(s string) bool { return slices.Contains(granted, s) }) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+challenge+`"`)
			WriteError(w, http.StatusForbidden, "insufficient_scope", "missing permission: "+challenge)
		})
	}
}
