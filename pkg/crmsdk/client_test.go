package crmsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestAuthenticateAndCreateInvitation(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var req LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "owner@acme.com", req.Email)
			writeJSON(w, http.StatusOK, LoginResponse{
				AccessToken: "tok",
				TokenType:   "Bearer",
				ExpiresIn:   3600,
				Scope:       "invitations.create invitations.read",
				WorkspaceID: "ws-1",
				UserID:      "u-1",
				Role:        "admin",
			})
		case "/invitations":
			require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var req CreateInvitationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, http.StatusCreated, Invitation{ID: "inv-1", Email: req.Email, Role: req.Role, WorkspaceID: "ws-1"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	ctx := context.Background()
	session, err := client.Authenticate(ctx, LoginRequest{Email: "owner@acme.com", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "ws-1", session.WorkspaceID())
	require.Equal(t, "admin", session.Role())
	require.False(t, session.Expired())
	require.True(t, session.HasScope(ScopeInvitationsCreate))

	inv, err := session.CreateInvitation(ctx, CreateInvitationRequest{Email: "new@acme.com", Role: "team_member"})
	require.NoError(t, err)
	require.Equal(t, "inv-1", inv.ID)
	require.Equal(t, "team_member", inv.Role)

	err = session.RevokeInvitation(ctx, "inv-1")
	require.ErrorContains(t, err, "missing required scope(s): invitations.delete")
}

func TestAPIErrorParsing(t *testing.T) {
	t.Parallel()

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/invitations/accept":
			writeJSON(w, http.StatusForbidden, ErrorResponse{Error: ErrorCodeForbidden, ErrorDescription: "seat limit reached"})
		case "/workspaces":
			require.Equal(t, "secret", r.Header.Get(ProvisioningTokenHeader))
			writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Code:    ErrorCodeValidation,
				Message: "validation failed",
				Details: map[string]string{"plan": "bad plan"},
			})
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	})
	ctx := context.Background()

	err := client.AcceptInvitation(ctx, AcceptInvitationRequest{Token: "t"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Equal(t, ErrorCodeForbidden, apiErr.Code)
	require.Equal(t, "seat limit reached", apiErr.Description)
	require.True(t, IsStatus(err, http.StatusForbidden))

	_, err = client.Provision(ctx, "secret", ProvisionRequest{Name: "x", Plan: "gold"})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, ErrorCodeValidation, apiErr.Code)
	require.Equal(t, map[string]string{"plan": "bad plan"}, apiErr.Details)

	_, err = client.GetLiveness(ctx)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, ErrorCodeServerError, apiErr.Code)
}

func TestSessionFromToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/workspace/usage", r.URL.Path)
		writeJSON(w, http.StatusOK, UsageResponse{WorkspaceID: "ws-9", Plan: "free", SeatLimit: 2, ActiveSeats: 1})
	})

	session := client.NewSessionFromToken("raw-token", "ws-9")
	require.False(t, session.Expired())

	usage, err := session.Usage(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer raw-token", gotAuth)
	require.Equal(t, 2, usage.SeatLimit)
	require.Equal(t, 1, usage.ActiveSeats)
}

func TestParseScopes(t *testing.T) {
	t.Parallel()

	scopes := parseScopes(" invitations.read  invitations.create ")
	require.Equal(t, map[string]bool{"invitations.read": true, "invitations.create": true}, scopes)
	require.Empty(t, parseScopes(""))
}
