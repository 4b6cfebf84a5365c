package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens issued by login.
const DefaultAccessTokenTTL = time.Hour

// Claims are the access-token claims. Every token is scoped to exactly one
// workspace membership, so the workspace and the role travel with it.
type Claims struct {
	jwt.RegisteredClaims

	// WorkspaceID is the tenant every request made with this token acts on.
	WorkspaceID string `json:"workspace_id"`

	// Role of the member inside WorkspaceID ("owner", "admin", ...).
	Role string `json:"role"`

	// Permission scopes derived from Role, e.g. "invitations.read".
	Scopes []string `json:"scopes,omitempty"`

	// Email of the member, informational only.
	Email string `json:"email,omitempty"`
}

// AccessClaims describes the member a token is issued for.
type AccessClaims struct {
	Subject     string
	WorkspaceID string
	Role        string
	Email       string
	Scopes      []string
}

// NewAccessClaims builds minimally-correct claims.
func NewAccessClaims(
	m AccessClaims,
	ttl time.Duration,
	issuer string,
	audience []string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   m.Subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		WorkspaceID: m.WorkspaceID,
		Role:        m.Role,
		Scopes:      m.Scopes,
		Email:       m.Email,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasScope reports whether the token grants scope.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// Expectations is what a verifier requires of otherwise well-signed claims.
// Empty Issuer or Audience are not checked.
type Expectations struct {
	Issuer   string
	Audience []string
	Now      time.Time
	Leeway   time.Duration
}

// Validate checks the registered claims against want and then the
// workspace binding. Errors are the package sentinels.
func (c *Claims) Validate(want Expectations) error {
	if want.Issuer != "" && c.Issuer != want.Issuer {
		return ErrIssuer
	}
	if len(want.Audience) > 0 && !slices.ContainsFunc(want.Audience, func(a string) bool {
		return slices.Contains(c.Audience, a)
	}) {
		return ErrAudience
	}

	now := want.Now
	if now.IsZero() {
		now = time.Now()
	}
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(want.Leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-want.Leeway)) {
		return ErrNotYetValid
	}

	if c.WorkspaceID == "" || c.Subject == "" {
		return ErrInvalidClaim
	}
	return nil
}
