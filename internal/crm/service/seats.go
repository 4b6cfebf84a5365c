package service

import (
	"context"
	"fmt"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/SGK112/CRM-sub005/internal/crm/store"
)

// SeatPolicy decides how many active members a workspace may hold.
type SeatPolicy struct {
	Plans domain.PlanTable
}

// EffectiveLimit returns the seat limit of ws, 0 meaning unlimited. An
// explicit workspace limit wins over the plan table.
func (p SeatPolicy) EffectiveLimit(ws domain.Workspace) int {
	if ws.SeatLimit > 0 {
		return ws.SeatLimit
	}
	if n := p.Plans[ws.Plan]; n > 0 {
		return n
	}
	return 0
}

// Check counts the active members of ws and fails with ErrSeatLimitReached
// when no seat is left.
func (p SeatPolicy) Check(ctx context.Context, users store.Users, ws domain.Workspace) error {
	limit := p.EffectiveLimit(ws)
	if limit == 0 {
		return nil
	}

	count, err := users.CountActiveUsers(ctx, ws.ID)
	if err != nil {
		return fmt.Errorf("count active users: %w", err)
	}
	if count >= limit {
		return ErrSeatLimitReached
	}
	return nil
}
