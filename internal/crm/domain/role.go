package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

type Role string

const (
	RoleOwner          Role = "owner"
	RoleAdmin          Role = "admin"
	RoleSalesAssociate Role = "sales_associate"
	RoleProjectManager Role = "project_manager"
	RoleTeamMember     Role = "team_member"
	RoleClient         Role = "client"
)

// Roles lists every role in descending privilege.
var Roles = []Role{
	RoleOwner,
	RoleAdmin,
	RoleSalesAssociate,
	RoleProjectManager,
	RoleTeamMember,
	RoleClient,
}

var ErrInvalidRole = errors.New("invalid role")

func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrInvalidRole, s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

type Permission string

const (
	PermInvitationsCreate Permission = "invitations.create"
	PermInvitationsRead   Permission = "invitations.read"
	PermInvitationsDelete Permission = "invitations.delete"
)

var rolePermissions = map[Role][]Permission{
	RoleOwner:          {PermInvitationsCreate, PermInvitationsRead, PermInvitationsDelete},
	RoleAdmin:          {PermInvitationsCreate, PermInvitationsRead, PermInvitationsDelete},
	RoleProjectManager: {PermInvitationsRead},
	RoleSalesAssociate: {PermInvitationsRead},
}

// Permissions returns the permissions granted to the role. team_member and
// client have none.
func (r Role) Permissions() []Permission {
	perms := rolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

func (r Role) Can(p Permission) bool {
	for _, have := range rolePermissions[r] {
		if have == p {
			return true
		}
	}
	return false
}

// Scopes renders the permissions as JWT scope strings.
func (r Role) Scopes() []string {
	perms := rolePermissions[r]
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}
