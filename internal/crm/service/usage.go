package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/SGK112/CRM-sub005/internal/crm/store"
	"github.com/SGK112/CRM-sub005/pkg/slogx"
)

type UsageService struct {
	Store store.Store
	Seats SeatPolicy
	Clock Clock
}

// Usage is the seat picture of one workspace. SeatLimit 0 means unlimited.
type Usage struct {
	WorkspaceID        string
	Plan               domain.Plan
	SeatLimit          int
	ActiveSeats        int
	PendingInvitations int
}

func (s *UsageService) Usage(ctx context.Context, workspaceID string) (Usage, error) {
	log := slogx.FromContext(ctx)

	ws, err := s.Store.Workspaces().GetWorkspaceByID(ctx, workspaceID)
	if errors.Is(err, store.ErrNotFound) {
		return Usage{}, ErrWorkspaceNotFound
	}
	if err != nil {
		log.Error("failed to fetch workspace", slog.Any("error", err))
		return Usage{}, err
	}

	active, err := s.Store.Users().CountActiveUsers(ctx, workspaceID)
	if err != nil {
		log.Error("failed to count active users", slog.Any("error", err))
		return Usage{}, err
	}

	pending, err := s.Store.Invitations().CountPendingInvitations(ctx, workspaceID, s.Clock.now())
	if err != nil {
		log.Error("failed to count pending invitations", slog.Any("error", err))
		return Usage{}, err
	}

	return Usage{
		WorkspaceID:        ws.ID,
		Plan:               ws.Plan,
		SeatLimit:          s.Seats.EffectiveLimit(ws),
		ActiveSeats:        active,
		PendingInvitations: pending,
	}, nil
}
