package domain

import (
	"strings"
	"time"
)

// User is one membership of an email in one workspace. The same email may
// have several User rows; the row with the earliest creation acts as the
// global identity when another workspace invites that email.
type User struct {
	ID              string
	Email           string
	PasswordHash    string // bcrypt
	FirstName       string
	LastName        string
	Role            Role
	WorkspaceID     string
	IsEmailVerified bool
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NormalizeEmail trims and lowercases an address before lookup or insert.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
