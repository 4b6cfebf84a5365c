package postgres

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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		w.ID, w.Name, string(w.Plan), w.SeatLimit, w.EmployeeLimit, w.BrandingColor, w.LogoURL,
		w.PersonalizationEnabled, w.CreatedAt.UTC(), w.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *workspacesRepo) GetWorkspaceByID(ctx context.Context, id string) (domain.Workspace, error) {
	return r.getOne(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE id = $1`, id)
}

// LockWorkspace holds the row lock until the transaction ends, so two
// acceptances into the same workspace count seats one after the other.
func (r *workspacesRepo) LockWorkspace(ctx context.Context, id string) (domain.Workspace, error) {
	return r.getOne(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE id = $1 FOR UPDATE`, id)
}

func (r *workspacesRepo) getOne(ctx context.Context, query string, id string) (domain.Workspace, error) {
	var (
		w    domain.Workspace
		plan string
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.Name, &plan, &w.SeatLimit, &w.EmployeeLimit, &w.BrandingColor, &w.LogoURL,
		&w.PersonalizationEnabled, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return domain.Workspace{}, mapNotFound(err)
	}
	w.Plan = domain.Plan(plan)
	w.CreatedAt = w.CreatedAt.UTC()
	w.UpdatedAt = w.UpdatedAt.UTC()
	return w, nil
}
