package postgres

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
	var accepted sql.NullTime
	if inv.AcceptedAt != nil {
		accepted = sql.NullTime{Time: inv.AcceptedAt.UTC(), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invitations (`+invitationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		inv.ID, inv.Email, string(inv.Role), inv.WorkspaceID, inv.Token,
		inv.ExpiresAt.UTC(), accepted, inv.CreatedBy, inv.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByToken(ctx context.Context, token string) (domain.Invitation, error) {
	return r.getOne(ctx, `SELECT `+invitationColumns+` FROM invitations WHERE token = $1`, token)
}

func (r *invitationsRepo) GetActiveInvitation(
	ctx context.Context,
	email, workspaceID string,
	now time.Time,
) (domain.Invitation, error) {
	return r.getOne(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE email = $1 AND workspace_id = $2 AND accepted_at IS NULL AND expires_at > $3
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		email, workspaceID, now.UTC(),
	)
}

func (r *invitationsRepo) ListInvitations(ctx context.Context, workspaceID string) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE workspace_id = $1
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
		WHERE workspace_id = $1 AND accepted_at IS NULL AND expires_at > $2`,
		workspaceID, now.UTC(),
	).Scan(&n)
	return n, err
}

func (r *invitationsRepo) MarkInvitationAccepted(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invitations SET accepted_at = $1 WHERE id = $2 AND accepted_at IS NULL`,
		at.UTC(), id,
	)
	return requireOneRow(res, err)
}

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, workspaceID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM invitations WHERE id = $1 AND workspace_id = $2`,
		id, workspaceID,
	)
	return requireOneRow(res, err)
}

func (r *invitationsRepo) DeleteStaleInvitations(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM invitations WHERE accepted_at IS NULL AND expires_at < $1`,
		cutoff.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *invitationsRepo) getOne(ctx context.Context, query string, args ...any) (domain.Invitation, error) {
	inv, err := scanInvitation(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func scanInvitation(s scanner) (domain.Invitation, error) {
	var (
		inv      domain.Invitation
		role     string
		accepted sql.NullTime
	)
	err := s.Scan(&inv.ID, &inv.Email, &role, &inv.WorkspaceID, &inv.Token,
		&inv.ExpiresAt, &accepted, &inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		return domain.Invitation{}, err
	}
	inv.Role = domain.Role(role)
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	inv.CreatedAt = inv.CreatedAt.UTC()
	if accepted.Valid {
		t := accepted.Time.UTC()
		inv.AcceptedAt = &t
	}
	return inv, nil
}
