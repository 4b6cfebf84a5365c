package sqlite

import (
	"context"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/SGK112/CRM-sub005/internal/crm/store"
)

type workspacesRepo struct {
	db store.DBTX
}

const workspaceColumns = `id, name, plan, seat_limit, employee_limit, branding_color, logo_url,
	personalization_enabled, created_at, updated_at`

func (r *workspacesRepo) CreateWorkspace(ctx context.Context, w domain.Workspace) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workspaces (`+workspaceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Name, string(w.Plan), w.SeatLimit, w.EmployeeLimit, w.BrandingColor, w.LogoURL,
		boolToInt(w.PersonalizationEnabled), toMillis(w.CreatedAt), toMillis(w.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *workspacesRepo) GetWorkspaceByID(ctx context.Context, id string) (domain.Workspace, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE id = ?`, id)
	w, err := scanWorkspace(row)
	if err != nil {
		return domain.Workspace{}, mapNotFound(err)
	}
	return w, nil
}

// LockWorkspace is a plain read: transactions begin IMMEDIATE, so the
// writer lock is already held.
func (r *workspacesRepo) LockWorkspace(ctx context.Context, id string) (domain.Workspace, error) {
	return r.GetWorkspaceByID(ctx, id)
}

func scanWorkspace(s scanner) (domain.Workspace, error) {
	var (
		w                domain.Workspace
		plan             string
		personalization  int
		created, updated int64
	)
	err := s.Scan(&w.ID, &w.Name, &plan, &w.SeatLimit, &w.EmployeeLimit, &w.BrandingColor, &w.LogoURL,
		&personalization, &created, &updated)
	if err != nil {
		return domain.Workspace{}, err
	}
	w.Plan = domain.Plan(plan)
	w.PersonalizationEnabled = personalization != 0
	w.CreatedAt = fromMillis(created)
	w.UpdatedAt = fromMillis(updated)
	return w, nil
}
