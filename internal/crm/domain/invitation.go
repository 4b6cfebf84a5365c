package domain

import "time"

// DefaultInvitationTTL applies when the caller does not give ttlHours.
const DefaultInvitationTTL = 168 * time.Hour

// MaxInvitationTTLHours caps ttlHours at one year.
const MaxInvitationTTLHours = 8760

type Invitation struct {
	ID          string
	Email       string
	Role        Role
	WorkspaceID string
	Token       string // 64 lowercase hex characters
	ExpiresAt   time.Time
	AcceptedAt  *time.Time
	CreatedBy   string
	CreatedAt   time.Time
}

func (i Invitation) IsAccepted() bool { return i.AcceptedAt != nil }

// IsExpiredAt reports whether the invitation is expired at now. An
// invitation expiring exactly at now is expired.
func (i Invitation) IsExpiredAt(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// IsActiveAt reports whether the invitation can still be accepted.
func (i Invitation) IsActiveAt(now time.Time) bool {
	return !i.IsAccepted() && !i.IsExpiredAt(now)
}
