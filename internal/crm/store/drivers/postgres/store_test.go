package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/SGK112/CRM-sub005/internal/crm/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewStoreFromDB(db), mock
}

var (
	userCols = []string{"id", "email", "password_hash", "first_name", "last_name", "role", "workspace_id",
		"is_email_verified", "is_active", "created_at", "updated_at"}
	workspaceCols = []string{"id", "name", "plan", "seat_limit", "employee_limit", "branding_color", "logo_url",
		"personalization_enabled", "created_at", "updated_at"}
	invitationCols = []string{"id", "email", "role", "workspace_id", "token", "expires_at", "accepted_at",
		"created_by", "created_at"}
)

func TestCreateUser_MapsUniqueViolation(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+users\s*\(.*\)\s*VALUES\s*\(\$1,.*\$11\)\s*$`).
		WithArgs("u1", "a@example.com", "hash", "Ada", "L", "admin", "ws1", true, true, now, now).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_workspace_uq"})

	err := st.Users().CreateUser(context.Background(), domain.User{
		ID: "u1", Email: "a@example.com", PasswordHash: "hash", FirstName: "Ada", LastName: "L",
		Role: domain.RoleAdmin, WorkspaceID: "ws1", IsEmailVerified: true, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetIdentityByEmail_NotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`(?s)FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+ASC,\s*id\s+ASC\s+LIMIT\s+1`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := st.Users().GetIdentityByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCountActiveUsers(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`(?s)^SELECT\s+COUNT\(\*\)\s+FROM\s+users\s+WHERE\s+workspace_id\s*=\s*\$1\s+AND\s+is_active$`).
		WithArgs("ws1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := st.Users().CountActiveUsers(context.Background(), "ws1")
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestLockWorkspace_UsesRowLock(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)FROM\s+workspaces\s+WHERE\s+id\s*=\s*\$1\s+FOR\s+UPDATE$`).
		WithArgs("ws1").
		WillReturnRows(sqlmock.NewRows(workspaceCols).
			AddRow("ws1", "Acme", "growth", 0, 0, "", "", false, now, now))
	mock.ExpectQuery(`(?s)^SELECT\s+COUNT\(\*\)\s+FROM\s+users`).
		WithArgs("ws1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectCommit()

	err := st.WithTx(context.Background(), func(tx store.Tx) error {
		ws, err := tx.Workspaces().LockWorkspace(context.Background(), "ws1")
		require.NoError(t, err)
		require.Equal(t, domain.PlanGrowth, ws.Plan)

		n, err := tx.Users().CountActiveUsers(context.Background(), "ws1")
		require.NoError(t, err)
		require.Equal(t, 2, n)
		return nil
	})
	require.NoError(t, err)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	st, mock := newMockStore(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := st.WithTx(context.Background(), func(tx store.Tx) error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestMarkInvitationAccepted_Conditional(t *testing.T) {
	st, mock := newMockStore(t)
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	q := `(?s)^UPDATE\s+invitations\s+SET\s+accepted_at\s*=\s*\$1\s+WHERE\s+id\s*=\s*\$2\s+AND\s+accepted_at\s+IS\s+NULL$`
	mock.ExpectExec(q).WithArgs(at, "inv1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(at, "inv1").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, st.Invitations().MarkInvitationAccepted(context.Background(), "inv1", at))
	require.ErrorIs(t, st.Invitations().MarkInvitationAccepted(context.Background(), "inv1", at), store.ErrNotFound)
}

func TestDeleteInvitation_WorkspaceScoped(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+invitations\s+WHERE\s+id\s*=\s*\$1\s+AND\s+workspace_id\s*=\s*\$2$`).
		WithArgs("inv1", "ws-other").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := st.Invitations().DeleteInvitation(context.Background(), "ws-other", "inv1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListInvitations_NewestFirst(t *testing.T) {
	st, mock := newMockStore(t)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	accepted := t0.Add(time.Hour)

	mock.ExpectQuery(`(?s)FROM\s+invitations\s+WHERE\s+workspace_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC$`).
		WithArgs("ws1").
		WillReturnRows(sqlmock.NewRows(invitationCols).
			AddRow("i2", "b@example.com", "client", "ws1", "tok2", t0.Add(48*time.Hour), nil, "u1", t0.Add(time.Minute)).
			AddRow("i1", "a@example.com", "admin", "ws1", "tok1", t0.Add(48*time.Hour), accepted, "u1", t0))

	list, err := st.Invitations().ListInvitations(context.Background(), "ws1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "i2", list[0].ID)
	require.Nil(t, list[0].AcceptedAt)
	require.Equal(t, domain.RoleClient, list[0].Role)
	require.NotNil(t, list[1].AcceptedAt)
	require.True(t, accepted.Equal(*list[1].AcceptedAt))
}

func TestGetUserByEmailInWorkspace(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s+AND\s+workspace_id\s*=\s*\$2$`).
		WithArgs("a@example.com", "ws1").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u1", "a@example.com", "hash", "Ada", "L", "owner", "ws1", true, true, now, now))

	u, err := st.Users().GetUserByEmailInWorkspace(context.Background(), "a@example.com", "ws1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleOwner, u.Role)
	require.True(t, u.IsEmailVerified)
}
