package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/SGK112/CRM-sub005/internal/crm/store"
)

type invitationsRepo struct {
	db store.DBTX
}

const invitationColumns = `id, email, role, workspace_id, token, expires_at, accepted_at, created_by, created_at`

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invitations (`+invitationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Email, string(inv.Role), inv.WorkspaceID, inv.Token,
		toMillis(inv.ExpiresAt), mapOptionalMillis(inv.AcceptedAt), inv.CreatedBy, toMillis(inv.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByToken(ctx context.Context, token string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+invitationColumns+` FROM invitations WHERE token = ?`, token)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) GetActiveInvitation(
	ctx context.Context,
	email, workspaceID string,
	now time.Time,
) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE email = ? AND workspace_id = ? AND accepted_at IS NULL AND expires_at > ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		email, workspaceID, toMillis(now),
	)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) ListInvitations(ctx context.Context, workspaceID string) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE workspace_id = ?
		ORDER BY created_at DESC, id DESC`,
		workspaceID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Invitation{}
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) CountPendingInvitations(ctx context.Context, workspaceID string, now time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM invitations
		WHERE workspace_id = ? AND accepted_at IS NULL AND expires_at > ?`,
		workspaceID, toMillis(now),
	).Scan(&n)
	return n, err
}

func (r *invitationsRepo) MarkInvitationAccepted(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET accepted_at = ? WHERE id = ? AND accepted_at IS NULL`,
		toMillis(at), id,
	)
	return requireOneRow(res, err)
}

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, workspaceID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM invitations WHERE id = ? AND workspace_id = ?`,
		id, workspaceID,
	)
	return requireOneRow(res, err)
}

func (r *invitationsRepo) DeleteStaleInvitations(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM invitations WHERE accepted_at IS NULL AND expires_at < ?`,
		toMillis(cutoff),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func requireOneRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanInvitation(s scanner) (domain.Invitation, error) {
	var (
		inv              domain.Invitation
		role             string
		expires, created int64
		accepted         sql.NullInt64
	)
	err := s.Scan(&inv.ID, &inv.Email, &role, &inv.WorkspaceID, &inv.Token,
		&expires, &accepted, &inv.CreatedBy, &created)
	if err != nil {
		return domain.Invitation{}, err
	}
	inv.Role = domain.Role(role)
	inv.ExpiresAt = fromMillis(expires)
	inv.AcceptedAt = mapNullMillis(accepted)
	inv.CreatedAt = fromMillis(created)
	return inv, nil
}
