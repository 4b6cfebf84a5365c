package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SGK112/CRM-sub005/pkg/httpx"
	"github.com/SGK112/CRM-sub005/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	claims jwtx.Claims
	err    error
}

func (s stubVerifier) Verify(string) (jwtx.Claims, error) { return s.claims, s.err }

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("a"), mw("b"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	claims := jwtx.Claims{WorkspaceID: "ws-1", Role: "admin", Scopes: []string{"invitations.read"}}
	claims.Subject = "user-1"

	var seenWS, seenUser, seenRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenWS = httpx.WorkspaceIDFromCtx(r.Context())
		seenUser = httpx.UserIDFromCtx(r.Context())
		seenRole = httpx.RoleFromCtx(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(stubVerifier{claims: claims})(next).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")

		var body httpx.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "unauthorized", body.Error)
	})

	t.Run("verification failure", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(stubVerifier{err: errors.New("nope")})(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("binds claims to context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(stubVerifier{claims: claims})(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "ws-1", seenWS)
		require.Equal(t, "user-1", seenUser)
		require.Equal(t, "admin", seenRole)
	})
}

func TestRequireAnyScope(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guarded := httpx.RequireAnyScope("invitations.create")(next)

	call := func(scopes ...string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/invitations", nil)
		req = req.WithContext(httpx.ContextWithClaims(req.Context(), jwtx.Claims{Scopes: scopes}))
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, call("invitations.read", "invitations.create").Code)

	rec := call("invitations.read")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "insufficient_scope")
	require.Contains(t, rec.Body.String(), "insufficient_scope")
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	decode := func(body string) (payload, error) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := httpx.DecodeJSON(httptest.NewRecorder(), req, &p)
		return p, err
	}

	p, err := decode(`{"email":"a@b.co"}`)
	require.NoError(t, err)
	require.Equal(t, "a@b.co", p.Email)

	_, err = decode(``)
	require.ErrorContains(t, err, "empty")

	_, err = decode(`{"email":"a@b.co","admin":true}`)
	require.Error(t, err)

	_, err = decode(`{"email":"a"}{"email":"b"}`)
	require.ErrorContains(t, err, "single JSON object")
}

func TestWriteValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteValidationError(rec, "invalid request", map[string]string{"email": "must be a valid address"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body httpx.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "validation_error", body.Code)
	require.Equal(t, "must be a valid address", body.Details["email"])
}
