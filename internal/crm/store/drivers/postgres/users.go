package postgres

import (
	"context"

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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, string(u.Role), u.WorkspaceID,
		u.IsEmailVerified, u.IsActive, u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *usersRepo) GetUserByEmailInWorkspace(ctx context.Context, email, workspaceID string) (domain.User, error) {
	return r.getOne(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND workspace_id = $2`,
		email, workspaceID,
	)
}

func (r *usersRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 ORDER BY created_at ASC, id ASC LIMIT 1`,
		email,
	)
}

func (r *usersRepo) ListActiveUsersByEmail(ctx context.Context, email string) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND is_active ORDER BY created_at ASC, id ASC`,
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
		`SELECT COUNT(*) FROM users WHERE workspace_id = $1 AND is_active`,
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
		u    domain.User
		role string
	)
	err := s.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &u.WorkspaceID,
		&u.IsEmailVerified, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}
