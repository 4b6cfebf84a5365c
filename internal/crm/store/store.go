package store

import (
	"context"
	"errors"
	"time"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories hang off the Store so a transaction-scoped
// Store hands out repositories bound to the same transaction.
type Store interface {
	Workspaces() Workspaces
	Users() Users
	Invitations() Invitations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Workspaces interface {
	CreateWorkspace(ctx context.Context, w domain.Workspace) error

	GetWorkspaceByID(ctx context.Context, id string) (domain.Workspace, error)

	// LockWorkspace reads the workspace and holds a row lock on it until the
	// surrounding transaction ends. Drivers without row locks read only.
	LockWorkspace(ctx context.Context, id string) (domain.Workspace, error)
}

type Users interface {
	// CreateUser inserts a membership. A duplicate (email, workspace_id)
	// returns ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmailInWorkspace finds the membership of email in one workspace.
	GetUserByEmailInWorkspace(ctx context.Context, email, workspaceID string) (domain.User, error)

	// GetIdentityByEmail returns the oldest user row for the email across
	// all workspaces.
	GetIdentityByEmail(ctx context.Context, email string) (domain.User, error)

	// ListActiveUsersByEmail returns every active membership of email,
	// oldest first.
	ListActiveUsersByEmail(ctx context.Context, email string) ([]domain.User, error)

	CountActiveUsers(ctx context.Context, workspaceID string) (int, error)
}

type Invitations interface {
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	GetInvitationByToken(ctx context.Context, token string) (domain.Invitation, error)

	// GetActiveInvitation returns the newest unaccepted invitation for email
	// in the workspace that has not expired at now.
	GetActiveInvitation(ctx context.Context, email, workspaceID string, now time.Time) (domain.Invitation, error)

	// ListInvitations returns the workspace invitations, newest first.
	ListInvitations(ctx context.Context, workspaceID string) ([]domain.Invitation, error)

	CountPendingInvitations(ctx context.Context, workspaceID string, now time.Time) (int, error)

	// MarkInvitationAccepted sets accepted_at only while it is still null.
	// Returns ErrNotFound when no row changed.
	MarkInvitationAccepted(ctx context.Context, id string, at time.Time) error

	// DeleteInvitation removes the invitation when it belongs to the
	// workspace. Returns ErrNotFound otherwise.
	DeleteInvitation(ctx context.Context, workspaceID, id string) error

	// DeleteStaleInvitations removes unaccepted invitations that expired
	// before the cutoff and reports how many were removed.
	DeleteStaleInvitations(ctx context.Context, cutoff time.Time) (int64, error)
}
