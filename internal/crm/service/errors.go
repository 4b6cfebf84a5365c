package service

import (
	"errors"
	"maps"
)

// Kind classifies a service error. The HTTP layer maps kinds to status codes.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindValidation
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation_error"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "server_error"
	}
}

// Error is a business rule violation surfaced to the caller.
type Error struct {
	Kind Kind
	Msg  string

	// Fields carries per-field messages for KindValidation errors.
	Fields map[string]string
}

func (e *Error) Error() string { return e.Msg }

// Is matches validation errors by kind so callers can test for
// ErrValidation without holding the exact value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t == ErrValidation {
		return e.Kind == KindValidation
	}
	return e == t
}

var (
	ErrSeatLimitReached  = &Error{Kind: KindForbidden, Msg: "seat limit reached"}
	ErrAlreadyMember     = &Error{Kind: KindConflict, Msg: "user is already a member"}
	ErrInvalidToken      = &Error{Kind: KindNotFound, Msg: "invalid invitation token"}
	ErrAlreadyAccepted   = &Error{Kind: KindConflict, Msg: "invitation already accepted"}
	ErrInvitationExpired = &Error{Kind: KindConflict, Msg: "invitation expired"}
	ErrAlreadyJoined     = &Error{Kind: KindConflict, Msg: "already joined this workspace"}
	ErrPasswordRequired  = &Error{Kind: KindValidation, Msg: "password is required"}
	ErrInvitationMissing = &Error{Kind: KindNotFound, Msg: "invitation not found"}

	ErrWorkspaceNotFound = &Error{Kind: KindNotFound, Msg: "workspace not found"}

	ErrInvalidCredentials         = &Error{Kind: KindUnauthorized, Msg: "invalid email or password"}
	ErrWorkspaceSelectionRequired = &Error{Kind: KindConflict, Msg: "workspace selection required"}

	ErrProvisioningDisabled     = &Error{Kind: KindNotFound, Msg: "provisioning is disabled"}
	ErrProvisioningUnauthorized = &Error{Kind: KindUnauthorized, Msg: "invalid provisioning token"}

	// ErrValidation matches every KindValidation error through errors.Is.
	ErrValidation = &Error{Kind: KindValidation, Msg: "validation failed"}
)

// ValidationError collects field messages into one KindValidation error.
type ValidationError map[string]string

func (v ValidationError) Add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

// Err returns nil when no field failed.
func (v ValidationError) Err() error {
	if len(v) == 0 {
		return nil
	}
	return &Error{Kind: KindValidation, Msg: "validation failed", Fields: maps.Clone(map[string]string(v))}
}

// KindOf reports the kind of err, KindInternal when err is not a service error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// FieldsOf returns the per-field messages of a validation error, if any.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
