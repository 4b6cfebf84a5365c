package crmsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the CRM service. It calls the public endpoints and
// creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// CheckScopes makes Sessions refuse calls their token has no scope for
	// before sending them. Disable it in tests that exercise server-side
	// permission checks.
	// Default: true
	CheckScopes bool
}

// NewClient creates a new CRM client with scope checking enabled.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		CheckScopes: true,
	}
}

// Authenticate logs in and returns a Session bound to the selected
// workspace membership.
func (c *Client) Authenticate(ctx context.Context, req LoginRequest) (*Session, error) {
	loginResp, err := c.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return newSession(c, loginResp), nil
}

// NewSessionFromToken wraps an access token obtained elsewhere. Scope
// checking is skipped for such sessions since the grant is unknown.
func (c *Client) NewSessionFromToken(accessToken, workspaceID string) *Session {
	return &Session{
		client:      c,
		accessToken: accessToken,
		workspaceID: workspaceID,
	}
}
