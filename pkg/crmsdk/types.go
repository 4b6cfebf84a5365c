package crmsdk

import (
	"time"

	"github.com/SGK112/CRM-sub005/pkg/jwtx"
)

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every failed request except field validation.
type ErrorResponse struct {
	// Error is the kind code (e.g., "not_found", "forbidden")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned when request fields fail validation.
type ValidationErrorResponse struct {
	// Code is always "validation_error"
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains field-specific validation errors (field name: error message)
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse acknowledges an operation without a resource body.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ============================================================================
// Invitation Types
// ============================================================================

// Invitation is an invitation for an email to join a workspace.
type Invitation struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Role        string     `json:"role" example:"team_member"`
	WorkspaceID string     `json:"workspaceId"`
	Token       string     `json:"token" example:"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	AcceptedAt  *time.Time `json:"acceptedAt,omitempty"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CreateInvitationRequest invites an email into the caller's workspace.
type CreateInvitationRequest struct {
	Email string `json:"email" example:"new@example.com"`

	// Role is one of owner, admin, sales_associate, project_manager, team_member, client
	Role string `json:"role" example:"team_member"`

	// TTLHours defaults to 168 (7 days) when omitted
	TTLHours *int `json:"ttlHours,omitempty" example:"168"`
}

// AcceptInvitationRequest redeems an invitation token. Password and names
// only apply when the email has no account in any workspace yet.
type AcceptInvitationRequest struct {
	Token     string `json:"token"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Password  string `json:"password,omitempty"`
}

// ============================================================================
// Auth Types
// ============================================================================

// LoginRequest authenticates one workspace membership of an email.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// WorkspaceID is required when the email belongs to several workspaces
	WorkspaceID string `json:"workspaceId,omitempty"`
}

// LoginResponse carries a workspace-scoped access token.
type LoginResponse struct {
	// AccessToken is the EdDSA-signed JWT used as the bearer token
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// Scope is the space-delimited list of permissions granted to this token
	Scope string `json:"scope,omitempty"`

	WorkspaceID string `json:"workspace_id"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
}

// ============================================================================
// Workspace Types
// ============================================================================

// ProvisionRequest creates a workspace and its owner.
type ProvisionRequest struct {
	Name string `json:"name" example:"Acme Remodeling"`

	// Plan is one of free, starter, growth, enterprise
	Plan string `json:"plan" example:"starter"`

	// SeatLimit overrides the plan seat limit when greater than zero
	SeatLimit int `json:"seatLimit,omitempty"`

	Owner ProvisionOwner `json:"owner"`
}

// ProvisionOwner describes the owner membership created with the workspace.
type ProvisionOwner struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// ProvisionResponse contains the IDs of the created workspace and owner.
type ProvisionResponse struct {
	WorkspaceID string `json:"workspace_id"`
	OwnerUserID string `json:"owner_user_id"`
}

// UsageResponse reports seat usage of the caller's workspace.
type UsageResponse struct {
	WorkspaceID string `json:"workspace_id"`
	Plan        string `json:"plan"`

	// SeatLimit is 0 when the workspace is unlimited
	SeatLimit          int `json:"seat_limit"`
	ActiveSeats        int `json:"active_seats"`
	PendingInvitations int `json:"pending_invitations"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Signer indicates the JWT signing capability status
	Signer string `json:"signer"`

	// Lock indicates the distributed lock backend status, omitted when locks are in-process
	Lock string `json:"lock,omitempty"`
}

// JWKSResponse contains the public keys that verify access tokens.
type JWKSResponse jwtx.JWKS
