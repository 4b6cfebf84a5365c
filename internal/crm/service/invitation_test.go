package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/SGK112/CRM-sub005/internal/crm/service"
	"github.com/SGK112/CRM-sub005/internal/crm/store"
	"github.com/SGK112/CRM-sub005/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestCreateInvitation_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.workspace(t, "ws-1", 5)

	first := f.invite(t, "new@example.com", "ws-1", domain.RoleTeamMember)
	require.Regexp(t, "^[0-9a-f]{64}$", first.Token)
	require.Equal(t, t0.Add(domain.DefaultInvitationTTL), first.ExpiresAt)

	f.clock.Advance(time.Minute)
	second := f.invite(t, "NEW@example.com ", "ws-1", domain.RoleAdmin)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.Token, second.Token)
	require.Equal(t, domain.RoleTeamMember, second.Role)

	list, err := f.inv.List(context.Background(), "ws-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestCreateInvitation_NewTokenAfterExpiry(t *testing.T) {
	f := newFixture(t)
	f.workspace(t, "ws-1", 5)

	first, err := f.inv.Create(context.Background(), service.CreateInvitationInput{
		Email:       "new@example.com",
		Role:        domain.RoleTeamMember,
		TTLHours:    ptr(1),
		WorkspaceID: "ws-1",
	})
	require.NoError(t, err)
	require.Equal(t, t0.Add(time.Hour), first.ExpiresAt)

	f.clock.Advance(time.Hour)
	second := f.invite(t, "new@example.com", "ws-1", domain.RoleTeamMember)
	require.NotEqual(t, first.Token, second.Token)
}

func TestCreateInvitation_MaxTTL(t *testing.T) {
	f := newFixture(t)
	f.workspace(t, "ws-1", 5)

	inv, err := f.inv.Create(context.Background(), service.CreateInvitationInput{
		Email:       "year@example.com",
		Role:        domain.RoleTeamMember,
		TTLHours:    ptr(domain.MaxInvitationTTLHours),
		WorkspaceID: "ws-1",
		CreatedBy:   "owner-1",
	})
	require.NoError(t, err)
	require.Equal(t, t0.Add(domain.MaxInvitationTTLHours*time.Hour), inv.ExpiresAt)
	require.True(t, inv.IsActiveAt(t0))
}

func TestCreateInvitation_SeatLimit(t *testing.T) {
	tests := []struct {
		name    string
		members int
		wantErr error
	}{
		{"two of three seats used", 2, nil},
		{"three of three seats used", 3, service.ErrSeatLimitReached},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.workspace(t, "ws-1", 3)
			for i := range tt.members {
				f.member(t, string(rune('a'+i))+"@example.com", "ws-1", domain.RoleTeamMember)
			}

			_, err := f.inv.Create(context.Background(), service.CreateInvitationInput{
				Email:       "new@example.com",
				Role:        domain.RoleTeamMember,
				WorkspaceID: "ws-1",
			})
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			require.Equal(t, service.KindForbidden, service.KindOf(err))
		})
	}
}

func TestCreateInvitation_PlanLimitApplies(t *testing.T) {
	f := newFixture(t)
	ws := domain.Workspace{ID: "ws-free", Name: "Free", Plan: domain.PlanFree, CreatedAt: t0, UpdatedAt: t0}
	require.NoError(t, f.store.Workspaces().CreateWorkspace(context.Background(), ws))
	f.member(t, "a@example.com", "ws-free", domain.RoleOwner)
	f.member(t, "b@example.com", "ws-free", domain.RoleTeamMember)

	_, err := f.inv.Create(context.Background(), service.CreateInvitationInput{
		Email:       "c@example.com",
		Role:        domain.RoleTeamMember,
		WorkspaceID: "ws-free",
	})
	require.ErrorIs(t, err, service.ErrSeatLimitReached)
}

func TestCreateInvitation_MissingWorkspaceSkipsSeatCheck(t *testing.T) {
	f := newFixture(t)
	inv := f.invite(t, "new@example.com", "ws-unknown", domain.RoleClient)
	require.Equal(t, "ws-unknown", inv.WorkspaceID)
}

func TestCreateInvitation_AlreadyMember(t *testing.T) {
	f := newFixture(t)
	f.workspace(t, "ws-1", 5)
	f.member(t, "jo@example.com", "ws-1", domain.RoleTeamMember)

	_, err := f.inv.Create(context.Background(), service.CreateInvitationInput{
		Email:       "Jo@Example.com",
		Role:        domain.RoleAdmin,
		WorkspaceID: "ws-1",
	})
	require.ErrorIs(t, err, service.ErrAlreadyMember)
	require.Equal(t, service.KindConflict, service.KindOf(err))
}

func TestCreateInvitation_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		in    service.CreateInvitationInput
		field string
	}{
		{"missing email", service.CreateInvitationInput{Role: domain.RoleAdmin, WorkspaceID: "ws-1"}, "email"},
		{"bad email", service.CreateInvitationInput{Email: "not-an-email", Role: domain.RoleAdmin, WorkspaceID: "ws-1"}, "email"},
		{"display name", service.CreateInvitationInput{Email: "Jo <jo@example.com>", Role: domain.RoleAdmin, WorkspaceID: "ws-1"}, "email"},
		{"bad role", service.CreateInvitationInput{Email: "jo@example.com", Role: "root", WorkspaceID: "ws-1"}, "role"},
		{"zero ttl", service.CreateInvitationInput{Email: "jo@example.com", Role: domain.RoleAdmin, TTLHours: ptr(0), WorkspaceID: "ws-1"}, "ttlHours"},
		{"ttl past a year", service.CreateInvitationInput{Email: "jo@example.com", Role: domain.RoleAdmin, TTLHours: ptr(domain.MaxInvitationTTLHours + 1), WorkspaceID: "ws-1"}, "ttlHours"},
		{"ttl overflowing duration", service.CreateInvitationInput{Email: "jo@example.com", Role: domain.RoleAdmin, TTLHours: ptr(3_000_000), WorkspaceID: "ws-1"}, "ttlHours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.inv.Create(context.Background(), tt.in)
			require.ErrorIs(t, err, service.ErrValidation)
			require.Equal(t, service.KindValidation, service.KindOf(err))
			require.Contains(t, service.FieldsOf(err), tt.field)
		})
	}
}

func TestListAndRevoke(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.workspace(t, "ws-1", 10)

	a := f.invite(t, "a@example.com", "ws-1", domain.RoleTeamMember)
	f.clock.Advance(time.Second)
	b := f.invite(t, "b@example.com", "ws-1", domain.RoleTeamMember)
	f.clock.Advance(time.Second)
	c := f.invite(t, "c@example.com", "ws-1", domain.RoleTeamMember)

	list, err := f.inv.List(ctx, "ws-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, []string{c.ID, b.ID, a.ID}, []string{list[0].ID, list[1].ID, list[2].ID})

	require.ErrorIs(t, f.inv.Revoke(ctx, "ws-other", b.ID), service.ErrInvitationMissing)
	require.NoError(t, f.inv.Revoke(ctx, "ws-1", b.ID))
	require.ErrorIs(t, f.inv.Revoke(ctx, "ws-1", b.ID), service.ErrInvitationMissing)
	require.ErrorIs(t, f.inv.Revoke(ctx, "ws-1", "not-an-id"), service.ErrInvitationMissing)

	list, err = f.inv.List(ctx, "ws-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestAcceptInvitation_UnknownToken(t *testing.T) {
	f := newFixture(t)
	err := f.inv.Accept(context.Background(), service.AcceptInvitationInput{Token: "nope", Password: "abc12345"})
	require.ErrorIs(t, err, service.ErrInvalidToken)
	require.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestAcceptInvitation_ExpiryBoundary(t *testing.T) {
	f := newFixture(t)
	f.workspace(t, "ws-1", 5)
	inv := f.invite(t, "new@example.com", "ws-1", domain.RoleTeamMember)

	f.clock.Set(inv.ExpiresAt)
	err := f.inv.Accept(context.Background(), service.AcceptInvitationInput{Token: inv.Token, Password: "abc12345"})
	require.ErrorIs(t, err, service.ErrInvitationExpired)

	f.clock.Set(inv.ExpiresAt.Add(-time.Millisecond))
	require.NoError(t, f.inv.Accept(context.Background(), service.AcceptInvitationInput{Token: inv.Token, Password: "abc12345"}))
}

func TestAcceptInvitation_IsSingleUse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.workspace(t, "ws-1", 5)
	inv := f.invite(t, "new@example.com", "ws-1", domain.RoleTeamMember)

	require.NoError(t, f.inv.Accept(ctx, service.AcceptInvitationInput{Token: inv.Token, Password: "abc12345"}))
	err := f.inv.Accept(ctx, service.AcceptInvitationInput{Token: inv.Token, Password: "abc12345"})
	require.ErrorIs(t, err, service.ErrAlreadyAccepted)
	require.Equal(t, service.KindConflict, service.KindOf(err))

	got, err := f.store.Invitations().GetInvitationByToken(ctx, inv.Token)
	require.NoError(t, err)
	require.NotNil(t, got.AcceptedAt)
	require.True(t, t0.Equal(*got.AcceptedAt))
}

func TestAcceptInvitation_ClonesGlobalIdentity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.workspace(t, "ws-a", 5)
	f.workspace(t, "ws-b", 5)
	existing := f.member(t, "grace@example.com", "ws-a", domain.RoleTeamMember)

	inv := f.invite(t, "grace@example.com", "ws-b", domain.RoleAdmin)
	f.clock.Advance(time.Minute)
	require.NoError(t, f.inv.Accept(ctx, service.AcceptInvitationInput{
		Token:     inv.Token,
		FirstName: "Ignored",
		Password:  "ignored-password",
	}))

	joined, err := f.store.Users().GetUserByEmailInWorkspace(ctx, "grace@example.com", "ws-b")
	require.NoError(t, err)
	require.NotEqual(t, existing.ID, joined.ID)
	require.Equal(t, existing.PasswordHash, joined.PasswordHash)
	require.Equal(t, existing.FirstName, joined.FirstName)
	require.Equal(t, existing.LastName, joined.LastName)
	require.Equal(t, existing.IsEmailVerified, joined.IsEmailVerified)
	require.Equal(t, domain.RoleAdmin, joined.Role, "the invitation role wins over the identity role")
	require.True(t, joined.IsActive)
}

func TestAcceptInvitation_NewIdentity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.workspace(t, "ws-1", 5)
	inv := f.invite(t, "fresh@example.com", "ws-1", domain.RoleSalesAssociate)

	err := f.inv.Accept(ctx, service.AcceptInvitationInput{Token: inv.Token})
	require.ErrorIs(t, err, service.ErrPasswordRequired)
	require.ErrorIs(t, err, service.ErrValidation)

	_, err = f.store.Users().GetUserByEmailInWorkspace(ctx, "fresh@example.com", "ws-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, f.inv.Accept(ctx, service.AcceptInvitationInput{Token: inv.Token, Password: "abc12345"}))

	u, err := f.store.Users().GetUserByEmailInWorkspace(ctx, "fresh@example.com", "ws-1")
	require.NoError(t, err)
	require.NotEqual(t, "abc12345", u.PasswordHash)
	cost, err := cryptox.HashCost(u.PasswordHash)
	require.NoError(t, err)
	require.Equal(t, 12, cost)
	require.NoError(t, cryptox.VerifyPassword("abc12345", u.PasswordHash))
	require.Equal(t, service.DefaultFirstName, u.FirstName)
	require.Equal(t, service.DefaultLastName, u.LastName)
	require.True(t, u.IsEmailVerified)
	require.Equal(t, domain.RoleSalesAssociate, u.Role)
}

func TestAcceptInvitation_AlreadyJoined(t *testing.T) {
	f := newFixture(t)
	f.workspace(t, "ws-1", 5)
	inv := f.invite(t, "jo@example.com", "ws-1", domain.RoleTeamMember)
	f.member(t, "jo@example.com", "ws-1", domain.RoleTeamMember)

	err := f.inv.Accept(context.Background(), service.AcceptInvitationInput{Token: inv.Token, Password: "abc12345"})
	require.ErrorIs(t, err, service.ErrAlreadyJoined)
}

func TestAcceptInvitation_RechecksSeats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.workspace(t, "ws-1", 2)
	f.member(t, "owner@example.com", "ws-1", domain.RoleOwner)
	inv := f.invite(t, "late@example.com", "ws-1", domain.RoleTeamMember)

	f.member(t, "other@example.com", "ws-1", domain.RoleTeamMember)

	err := f.inv.Accept(ctx, service.AcceptInvitationInput{Token: inv.Token, Password: "abc12345"})
	require.ErrorIs(t, err, service.ErrSeatLimitReached)

	got, err := f.store.Invitations().GetInvitationByToken(ctx, inv.Token)
	require.NoError(t, err)
	require.Nil(t, got.AcceptedAt)
}

func TestAcceptInvitation_ConcurrentLastSeat(t *testing.T) {
	for _, tc := range []struct {
		name   string
		locked bool
	}{
		{"with workspace lock", true},
		{"store transaction only", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			if !tc.locked {
				f.inv.Locker = nil
			}
			f.workspace(t, "ws-1", 2)
			f.member(t, "owner@example.com", "ws-1", domain.RoleOwner)
			a := f.invite(t, "a@example.com", "ws-1", domain.RoleTeamMember)
			b := f.invite(t, "b@example.com", "ws-1", domain.RoleTeamMember)

			var wg sync.WaitGroup
			errs := make([]error, 2)
			for i, tok := range []string{a.Token, b.Token} {
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs[i] = f.inv.Accept(ctx, service.AcceptInvitationInput{Token: tok, Password: "abc12345"})
				}()
			}
			wg.Wait()

			var ok, full int
			for _, err := range errs {
				switch {
				case err == nil:
					ok++
				case errors.Is(err, service.ErrSeatLimitReached):
					full++
				default:
					t.Fatalf("unexpected error: %v", err)
				}
			}
			require.Equal(t, 1, ok)
			require.Equal(t, 1, full)

			n, err := f.store.Users().CountActiveUsers(ctx, "ws-1")
			require.NoError(t, err)
			require.Equal(t, 2, n)
		})
	}
}

func TestInvitationWorkflow_EndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.workspace(t, "W1", 2)
	f.member(t, "owner@x.com", "W1", domain.RoleOwner)

	inv, err := f.inv.Create(ctx, service.CreateInvitationInput{
		Email:       "new@x.com",
		Role:        domain.RoleTeamMember,
		TTLHours:    ptr(1),
		WorkspaceID: "W1",
		CreatedBy:   "owner",
	})
	require.NoError(t, err)

	require.NoError(t, f.inv.Accept(ctx, service.AcceptInvitationInput{Token: inv.Token, Password: "abc12345"}))

	n, err := f.store.Users().CountActiveUsers(ctx, "W1")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = f.inv.Create(ctx, service.CreateInvitationInput{
		Email:       "second@x.com",
		Role:        domain.RoleTeamMember,
		WorkspaceID: "W1",
	})
	require.ErrorIs(t, err, service.ErrSeatLimitReached)
}
