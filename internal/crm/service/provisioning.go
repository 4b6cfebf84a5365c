package service

import (
	"context"
	"log/slog"
	"net/mail"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/SGK112/CRM-sub005/internal/crm/store"
	"github.com/SGK112/CRM-sub005/pkg/cryptox"
	"github.com/SGK112/CRM-sub005/pkg/idx"
	"github.com/SGK112/CRM-sub005/pkg/slogx"
)

// MinPasswordLength applies to owner passwords set at provisioning.
const MinPasswordLength = 8

type ProvisioningService struct {
	Store store.Store
	Token string // Pre-configured provisioning token, empty disables the endpoint
	Clock Clock
}

type ProvisionInput struct {
	Name      string
	Plan      domain.Plan
	SeatLimit int

	OwnerEmail     string
	OwnerPassword  string
	OwnerFirstName string
	OwnerLastName  string
}

type ProvisionResult struct {
	WorkspaceID string
	OwnerUserID string
}

func (s *ProvisioningService) Enabled() bool { return s.Token != "" }

// Provision creates a workspace together with its owner membership.
func (s *ProvisioningService) Provision(ctx context.Context, token string, in ProvisionInput) (ProvisionResult, error) {
	l := slogx.FromContext(ctx)

	// 1. Check the endpoint is enabled and the caller holds the token
	if !s.Enabled() {
		return ProvisionResult{}, ErrProvisioningDisabled
	}
	if !cryptox.ConstantTimeEqual(token, s.Token) {
		l.Warn("unauthorized provisioning attempt")
		return ProvisionResult{}, ErrProvisioningUnauthorized
	}

	// 2. Validate
	email := domain.NormalizeEmail(in.OwnerEmail)
	v := ValidationError{}
	if in.Name == "" {
		v.Add("name", "name is required")
	}
	if _, err := domain.ParsePlan(string(in.Plan)); err != nil {
		v.Add("plan", "plan must be one of free, starter, growth, enterprise")
	}
	if in.SeatLimit < 0 {
		v.Add("seatLimit", "seatLimit must not be negative")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		v.Add("owner.email", "email must be a valid address")
	}
	if len(in.OwnerPassword) < MinPasswordLength {
		v.Add("owner.password", "password must be at least 8 characters")
	}
	if err := v.Err(); err != nil {
		l.Warn("rejected provisioning request", slog.Any("fields", FieldsOf(err)))
		return ProvisionResult{}, err
	}

	// 3. Hash the owner password
	passHash, err := cryptox.HashPassword(in.OwnerPassword)
	if err != nil {
		l.Error("failed to hash owner password", slog.Any("error", err))
		return ProvisionResult{}, err
	}

	// 4. Create workspace and owner in one transaction
	now := s.Clock.now()
	res := ProvisionResult{
		WorkspaceID: idx.NewAt(now).String(),
		OwnerUserID: idx.NewAt(now).String(),
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		err := tx.Workspaces().CreateWorkspace(ctx, domain.Workspace{
			ID:        res.WorkspaceID,
			Name:      in.Name,
			Plan:      in.Plan,
			SeatLimit: in.SeatLimit,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			l.Error("failed to create workspace",
				slog.String("workspace_id", res.WorkspaceID),
				slog.Any("error", err),
			)
			return err
		}

		err = tx.Users().CreateUser(ctx, domain.User{
			ID:              res.OwnerUserID,
			Email:           email,
			PasswordHash:    passHash,
			FirstName:       orDefault(in.OwnerFirstName, DefaultFirstName),
			LastName:        orDefault(in.OwnerLastName, DefaultLastName),
			Role:            domain.RoleOwner,
			WorkspaceID:     res.WorkspaceID,
			IsEmailVerified: true,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			l.Error("failed to create owner",
				slog.String("owner_user_id", res.OwnerUserID),
				slog.Any("error", err),
			)
			return err
		}
		return nil
	})
	if err != nil {
		return ProvisionResult{}, err
	}

	l.Info("workspace provisioned",
		slog.String("workspace_id", res.WorkspaceID),
		slog.String("owner_user_id", res.OwnerUserID),
		slog.String("plan", string(in.Plan)),
	)
	return res, nil
}
