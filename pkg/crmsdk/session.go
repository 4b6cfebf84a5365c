package crmsdk

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Session is an authenticated session for one workspace membership. There
// is no refresh token; once ExpiresAt passes, log in again.
type Session struct {
	client *Client

	mu          sync.RWMutex
	accessToken string
	workspaceID string
	userID      string
	role        string
	expiresAt   time.Time
	scopes      map[string]bool // nil means unknown
}

func newSession(client *Client, resp *LoginResponse) *Session {
	return &Session{
		client:      client,
		accessToken: resp.AccessToken,
		workspaceID: resp.WorkspaceID,
		userID:      resp.UserID,
		role:        resp.Role,
		expiresAt:   time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
		scopes:      parseScopes(resp.Scope),
	}
}

// parseScopes parses a space-delimited scope string into a map for fast lookup.
func parseScopes(scopeStr string) map[string]bool {
	parts := strings.Fields(scopeStr)
	scopes := make(map[string]bool, len(parts))
	for _, scope := range parts {
		scopes[scope] = true
	}
	return scopes
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) WorkspaceID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workspaceID
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// Expired reports whether the access token lifetime has passed. Sessions
// built from a bare token never report expiry.
func (s *Session) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.expiresAt.IsZero() && !time.Now().Before(s.expiresAt)
}

// HasScope returns true if the session has the specified scope.
func (s *Session) HasScope(scope string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scopes[scope]
}

// checkScopes checks if the session has all required scopes.
func (s *Session) checkScopes(required ...string) error {
	if !s.client.CheckScopes || len(required) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.scopes == nil {
		return nil
	}

	var missing []string
	for _, scope := range required {
		if !s.scopes[scope] {
			missing = append(missing, scope)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required scope(s): %s", strings.Join(missing, ", "))
	}

	return nil
}
