package sqlite

import (
	"context"
	"database/sql"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/SGK112/CRM-sub005/internal/crm/store"
)

type usersRepo struct {
	db store.DBTX
}

const userColumns = `id, email, password_hash, first_name, last_name, role, workspace_id,
	is_email_verified, is_active, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, string(u.Role), u.WorkspaceID,
		boolToInt(u.IsEmailVerified), boolToInt(u.IsActive), toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByEmailInWorkspace(ctx context.Context, email, workspaceID string) (domain.User, error) {
	return r.getOne(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? AND workspace_id = ?`,
		email, workspaceID,
	)
}

func (r *usersRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? ORDER BY created_at ASC, id ASC LIMIT 1`,
		email,
	)
}

func (r *usersRepo) ListActiveUsersByEmail(ctx context.Context, email string) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? AND is_active = 1 ORDER BY created_at ASC, id ASC`,
		email,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) CountActiveUsers(ctx context.Context, workspaceID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE workspace_id = ? AND is_active = 1`,
		workspaceID,
	).Scan(&n)
	return n, err
}

func (r *usersRepo) getOne(ctx context.Context, query string, args ...any) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u                domain.User
		role             string
		verified, active sql.NullBool
		created, updated int64
	)
	err := s.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &u.WorkspaceID,
		&verified, &active, &created, &updated)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	u.IsEmailVerified = verified.Bool
	u.IsActive = active.Bool
	u.CreatedAt = fromMillis(created)
	u.UpdatedAt = fromMillis(updated)
	return u, nil
}
