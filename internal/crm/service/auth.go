package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/SGK112/CRM-sub005/internal/crm/metrics"
	"github.com/SGK112/CRM-sub005/internal/crm/store"
	"github.com/SGK112/CRM-sub005/pkg/cryptox"
	"github.com/SGK112/CRM-sub005/pkg/jwtx"
	"github.com/SGK112/CRM-sub005/pkg/slogx"
)

// dummyHash is compared against when the email is unknown so a miss costs
// the same bcrypt work as a wrong password.
var dummyHash = sync.OnceValue(func() string {
	h, _ := cryptox.HashPassword("crm-dummy-password")
	return h
})

type AuthService struct {
	Store    store.Store
	Keys     *jwtx.KeyManager
	Issuer   string
	Audience []string
	TTL      time.Duration
	Metrics  *metrics.Metrics
	Clock    Clock
}

type LoginInput struct {
	Email       string
	Password    string
	WorkspaceID string // optional when the email has a single membership
}

type LoginResult struct {
	AccessToken string
	ExpiresIn   int
	WorkspaceID string
	UserID      string
	Role        domain.Role
}

// Login checks the password of one membership of email and issues an
// access token scoped to that membership's workspace.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the request
	v := ValidationError{}
	email := domain.NormalizeEmail(in.Email)
	if email == "" {
		v.Add("email", "email is required")
	}
	if in.Password == "" {
		v.Add("password", "password is required")
	}
	if err := v.Err(); err != nil {
		s.Metrics.ObserveLogin(metrics.ResultFailure)
		return LoginResult{}, err
	}

	// 2. Pick the membership
	members, err := s.Store.Users().ListActiveUsersByEmail(ctx, email)
	if err != nil {
		log.Error("failed to list memberships", slog.Any("error", err))
		return LoginResult{}, err
	}

	user, err := selectMembership(members, in.WorkspaceID)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			_ = cryptox.VerifyPassword(in.Password, dummyHash())
		}
		log.Warn("login refused",
			slog.String("email", email),
			slog.Int("memberships", len(members)),
			slog.String("reason", err.Error()),
		)
		s.Metrics.ObserveLogin(metrics.ResultFailure)
		return LoginResult{}, err
	}

	// 3. Verify the password
	if err := cryptox.VerifyPassword(in.Password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Error("failed to verify password hash", slog.String("user_id", user.ID), slog.Any("error", err))
		} else {
			log.Warn("login refused, wrong password", slog.String("user_id", user.ID))
		}
		s.Metrics.ObserveLogin(metrics.ResultFailure)
		return LoginResult{}, ErrInvalidCredentials
	}

	// 4. Issue the token
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	claims := jwtx.NewAccessClaims(jwtx.AccessClaims{
		Subject:     user.ID,
		WorkspaceID: user.WorkspaceID,
		Role:        string(user.Role),
		Email:       user.Email,
		Scopes:      user.Role.Scopes(),
	}, ttl, s.Issuer, s.Audience, s.Clock.now())

	token, err := s.Keys.Sign(claims)
	if err != nil {
		log.Error("failed to sign access token", slog.Any("error", err))
		return LoginResult{}, err
	}

	log.Info("login succeeded",
		slog.String("user_id", user.ID),
		slog.String("workspace_id", user.WorkspaceID),
	)
	s.Metrics.ObserveLogin(metrics.ResultSuccess)
	return LoginResult{
		AccessToken: token,
		ExpiresIn:   int(ttl.Seconds()),
		WorkspaceID: user.WorkspaceID,
		UserID:      user.ID,
		Role:        user.Role,
	}, nil
}

func selectMembership(members []domain.User, workspaceID string) (domain.User, error) {
	if workspaceID != "" {
		for _, m := range members {
			if m.WorkspaceID == workspaceID {
				return m, nil
			}
		}
		return domain.User{}, ErrInvalidCredentials
	}

	switch len(members) {
	case 0:
		return domain.User{}, ErrInvalidCredentials
	case 1:
		return members[0], nil
	default:
		return domain.User{}, ErrWorkspaceSelectionRequired
	}
}
