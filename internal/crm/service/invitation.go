package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/SGK112/CRM-sub005/internal/crm/lock"
	"github.com/SGK112/CRM-sub005/internal/crm/metrics"
	"github.com/SGK112/CRM-sub005/internal/crm/store"
	"github.com/SGK112/CRM-sub005/pkg/cryptox"
	"github.com/SGK112/CRM-sub005/pkg/idx"
	"github.com/SGK112/CRM-sub005/pkg/slogx"
)

// Default names given to a brand-new identity created by acceptance.
const (
	DefaultFirstName = "New"
	DefaultLastName  = "User"
)

type InvitationService struct {
	Store   store.Store
	Seats   SeatPolicy
	Locker  lock.Locker // nil disables the workspace lock
	Metrics *metrics.Metrics
	Clock   Clock

	// DefaultTTL applies when the caller gives no ttlHours.
	DefaultTTL time.Duration
}

type CreateInvitationInput struct {
	Email       string
	Role        domain.Role
	TTLHours    *int
	WorkspaceID string
	CreatedBy   string
}

type AcceptInvitationInput struct {
	Token     string
	FirstName string
	LastName  string
	Password  string
}

// Create issues an invitation for email to join the workspace. An active
// invitation for the same email is returned unchanged instead of a new one.
func (s *InvitationService) Create(ctx context.Context, in CreateInvitationInput) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the request
	email, err := validateCreate(in)
	if err != nil {
		log.Warn("rejected invitation request", slog.Any("fields", FieldsOf(err)))
		s.Metrics.ObserveInvitation(metrics.ResultRejected)
		return domain.Invitation{}, err
	}

	unlock, err := s.lock(ctx, in.WorkspaceID)
	if err != nil {
		log.Error("failed to lock workspace", slog.String("workspace_id", in.WorkspaceID), slog.Any("error", err))
		return domain.Invitation{}, err
	}
	defer unlock()

	now := s.Clock.now()

	// 2. Seat check, skipped for unknown workspaces
	ws, err := s.Store.Workspaces().GetWorkspaceByID(ctx, in.WorkspaceID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Debug("workspace record missing, skipping seat check", slog.String("workspace_id", in.WorkspaceID))
	case err != nil:
		log.Error("failed to fetch workspace", slog.Any("error", err))
		return domain.Invitation{}, err
	default:
		if err := s.Seats.Check(ctx, s.Store.Users(), ws); err != nil {
			if errors.Is(err, ErrSeatLimitReached) {
				log.Warn("invitation refused, seat limit reached",
					slog.String("workspace_id", ws.ID),
					slog.Int("seat_limit", s.Seats.EffectiveLimit(ws)),
				)
				s.Metrics.ObserveSeatLimit(metrics.StageCreate)
				s.Metrics.ObserveInvitation(metrics.ResultRejected)
				return domain.Invitation{}, err
			}
			log.Error("failed to check seat limit", slog.Any("error", err))
			return domain.Invitation{}, err
		}
	}

	// 3. The email must not already be a member
	_, err = s.Store.Users().GetUserByEmailInWorkspace(ctx, email, in.WorkspaceID)
	if err == nil {
		log.Warn("invitation refused, already a member",
			slog.String("workspace_id", in.WorkspaceID),
			slog.String("email", email),
		)
		s.Metrics.ObserveInvitation(metrics.ResultRejected)
		return domain.Invitation{}, ErrAlreadyMember
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to fetch member", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	// 4. Reuse an active invitation
	active, err := s.Store.Invitations().GetActiveInvitation(ctx, email, in.WorkspaceID, now)
	if err == nil {
		log.Info("returning active invitation",
			slog.String("invitation_id", active.ID),
			slog.String("workspace_id", in.WorkspaceID),
		)
		s.Metrics.ObserveInvitation(metrics.ResultReused)
		return active, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to fetch active invitation", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	// 5. Generate the token and store the invitation
	token, err := cryptox.GenerateHexToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	ttl := s.DefaultTTL
	if ttl <= 0 {
		ttl = domain.DefaultInvitationTTL
	}
	if in.TTLHours != nil {
		ttl = time.Duration(*in.TTLHours) * time.Hour
	}

	inv := domain.Invitation{
		ID:          idx.NewAt(now).String(),
		Email:       email,
		Role:        in.Role,
		WorkspaceID: in.WorkspaceID,
		Token:       token,
		ExpiresAt:   now.Add(ttl),
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
	}
	if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		log.Error("failed to create invitation",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return domain.Invitation{}, err
	}

	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("workspace_id", inv.WorkspaceID),
		slog.String("role", string(inv.Role)),
		slog.String("token_fingerprint", cryptox.FingerprintToken(token)),
		slog.Time("expires_at", inv.ExpiresAt),
	)
	s.Metrics.ObserveInvitation(metrics.ResultCreated)
	return inv, nil
}

func validateCreate(in CreateInvitationInput) (string, error) {
	v := ValidationError{}

	email := domain.NormalizeEmail(in.Email)
	if email == "" {
		v.Add("email", "email is required")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		v.Add("email", "email must be a valid address")
	}
	if !in.Role.Valid() {
		v.Add("role", "role must be one of owner, admin, sales_associate, project_manager, team_member, client")
	}
	if in.TTLHours != nil {
		switch {
		case *in.TTLHours < 1:
			v.Add("ttlHours", "ttlHours must be at least 1")
		case *in.TTLHours > domain.MaxInvitationTTLHours:
			v.Add("ttlHours", fmt.Sprintf("ttlHours must be at most %d", domain.MaxInvitationTTLHours))
		}
	}
	if in.WorkspaceID == "" {
		v.Add("workspaceId", "workspace is required")
	}

	return email, v.Err()
}

// List returns every invitation of the workspace, newest first.
func (s *InvitationService) List(ctx context.Context, workspaceID string) ([]domain.Invitation, error) {
	invs, err := s.Store.Invitations().ListInvitations(ctx, workspaceID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list invitations",
			slog.String("workspace_id", workspaceID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return invs, nil
}

// Revoke deletes the invitation when it belongs to the workspace.
func (s *InvitationService) Revoke(ctx context.Context, workspaceID, id string) error {
	log := slogx.FromContext(ctx)

	if _, err := idx.Parse(id); err != nil {
		return ErrInvitationMissing
	}

	err := s.Store.Invitations().DeleteInvitation(ctx, workspaceID, id)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn("attempted to revoke unknown invitation",
			slog.String("workspace_id", workspaceID),
			slog.String("invitation_id", id),
		)
		return ErrInvitationMissing
	}
	if err != nil {
		log.Error("failed to revoke invitation", slog.Any("error", err))
		return err
	}

	log.Info("invitation revoked",
		slog.String("workspace_id", workspaceID),
		slog.String("invitation_id", id),
	)
	return nil
}

// Accept turns an invitation into a workspace membership. When the email
// already has an identity in another workspace its credentials are copied,
// otherwise a password is required and a new identity is created.
func (s *InvitationService) Accept(ctx context.Context, in AcceptInvitationInput) error {
	log := slogx.FromContext(ctx).With(slog.String("token_fingerprint", cryptox.FingerprintToken(in.Token)))

	// 1. Resolve the invitation
	inv, err := s.Store.Invitations().GetInvitationByToken(ctx, in.Token)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn("attempted to accept unknown invitation")
		s.Metrics.ObserveAcceptance(metrics.ResultRejected)
		return ErrInvalidToken
	}
	if err != nil {
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return err
	}

	unlock, err := s.lock(ctx, inv.WorkspaceID)
	if err != nil {
		log.Error("failed to lock workspace", slog.String("workspace_id", inv.WorkspaceID), slog.Any("error", err))
		return err
	}
	defer unlock()

	var user domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		now := s.Clock.now()

		// 2. Re-read inside the transaction so a concurrent accept is seen
		inv, err := tx.Invitations().GetInvitationByToken(ctx, in.Token)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidToken
		}
		if err != nil {
			log.Error("failed to fetch invitation", slog.Any("error", err))
			return err
		}

		// 3. Lifecycle checks
		if inv.IsAccepted() {
			log.Warn("invitation already accepted", slog.String("invitation_id", inv.ID))
			return ErrAlreadyAccepted
		}
		if inv.IsExpiredAt(now) {
			log.Warn("invitation expired",
				slog.String("invitation_id", inv.ID),
				slog.Time("expires_at", inv.ExpiresAt),
			)
			return ErrInvitationExpired
		}

		// 4. Hold the workspace row for the rest of the transaction
		ws, err := tx.Workspaces().LockWorkspace(ctx, inv.WorkspaceID)
		wsFound := err == nil
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to lock workspace row", slog.Any("error", err))
			return err
		}

		// 5. The email must not already be a member
		_, err = tx.Users().GetUserByEmailInWorkspace(ctx, inv.Email, inv.WorkspaceID)
		if err == nil {
			log.Warn("invitation email already joined", slog.String("workspace_id", inv.WorkspaceID))
			return ErrAlreadyJoined
		}
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to fetch member", slog.Any("error", err))
			return err
		}

		// 6. Global identity lookup
		identity, err := tx.Users().GetIdentityByEmail(ctx, inv.Email)
		hasIdentity := err == nil
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to fetch identity", slog.Any("error", err))
			return err
		}

		// 7. Seat re-check
		if wsFound {
			if err := s.Seats.Check(ctx, tx.Users(), ws); err != nil {
				if errors.Is(err, ErrSeatLimitReached) {
					log.Warn("acceptance refused, seat limit reached",
						slog.String("workspace_id", ws.ID),
						slog.Int("seat_limit", s.Seats.EffectiveLimit(ws)),
					)
					s.Metrics.ObserveSeatLimit(metrics.StageAccept)
					return err
				}
				log.Error("failed to check seat limit", slog.Any("error", err))
				return err
			}
		}

		// 8. Build the membership
		user = domain.User{
			ID:          idx.NewAt(now).String(),
			Email:       inv.Email,
			Role:        inv.Role,
			WorkspaceID: inv.WorkspaceID,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if hasIdentity {
			user.PasswordHash = identity.PasswordHash
			user.FirstName = identity.FirstName
			user.LastName = identity.LastName
			user.IsEmailVerified = identity.IsEmailVerified
		} else {
			if in.Password == "" {
				log.Warn("new identity without password", slog.String("invitation_id", inv.ID))
				return ErrPasswordRequired
			}
			hash, err := cryptox.HashPassword(in.Password)
			if err != nil {
				log.Error("failed to hash password", slog.Any("error", err))
				return err
			}
			user.PasswordHash = hash
			user.FirstName = orDefault(in.FirstName, DefaultFirstName)
			user.LastName = orDefault(in.LastName, DefaultLastName)
			user.IsEmailVerified = true
		}

		// 9. Insert the member and close the invitation
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAlreadyJoined
			}
			log.Error("failed to create member", slog.String("user_id", user.ID), slog.Any("error", err))
			return err
		}
		if err := tx.Invitations().MarkInvitationAccepted(ctx, inv.ID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAlreadyAccepted
			}
			log.Error("failed to mark invitation accepted", slog.String("invitation_id", inv.ID), slog.Any("error", err))
			return err
		}
		return nil
	})
	if err != nil {
		s.Metrics.ObserveAcceptance(metrics.ResultRejected)
		return err
	}

	log.Info("invitation accepted",
		slog.String("invitation_id", inv.ID),
		slog.String("workspace_id", user.WorkspaceID),
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)
	s.Metrics.ObserveAcceptance(metrics.ResultAccepted)
	return nil
}

func (s *InvitationService) lock(ctx context.Context, workspaceID string) (func(), error) {
	if s.Locker == nil {
		return func() {}, nil
	}
	return s.Locker.Lock(ctx, lock.WorkspaceKey(workspaceID))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
