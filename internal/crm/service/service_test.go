package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SGK112/CRM-sub005/internal/crm/domain"
	"github.com/SGK112/CRM-sub005/internal/crm/lock"
	"github.com/SGK112/CRM-sub005/internal/crm/service"
	"github.com/SGK112/CRM-sub005/internal/crm/store/drivers/sqlite"
	"github.com/SGK112/CRM-sub005/pkg/idx"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *fakeClock { return &fakeClock{now: t0} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *fakeClock) Advance(d time.Duration) { c.Set(c.Now().Add(d)) }

type fixture struct {
	store *sqlite.Store
	clock *fakeClock
	inv   *service.InvitationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := sqlite.NewStore(sqlite.MemoryPath)
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	clock := newClock()
	return &fixture{
		store: st,
		clock: clock,
		inv: &service.InvitationService{
			Store:  st,
			Seats:  service.SeatPolicy{Plans: domain.DefaultPlanTable()},
			Locker: lock.NewLocal(),
			Clock:  clock.Now,
		},
	}
}

func (f *fixture) workspace(t *testing.T, id string, seatLimit int) domain.Workspace {
	t.Helper()
	ws := domain.Workspace{
		ID:        id,
		Name:      "Workspace " + id,
		Plan:      domain.PlanGrowth,
		SeatLimit: seatLimit,
		CreatedAt: t0,
		UpdatedAt: t0,
	}
	require.NoError(t, f.store.Workspaces().CreateWorkspace(context.Background(), ws))
	return ws
}

// member inserts an active user directly, bypassing the invitation flow.
func (f *fixture) member(t *testing.T, email, workspaceID string, role domain.Role) domain.User {
	t.Helper()
	now := f.clock.Now()
	u := domain.User{
		ID:              idx.NewAt(now).String(),
		Email:           email,
		PasswordHash:    "$2a$12$existinghashexistinghashexistinghashexistinghashexi",
		FirstName:       "Grace",
		LastName:        "Hopper",
		Role:            role,
		WorkspaceID:     workspaceID,
		IsEmailVerified: false,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, f.store.Users().CreateUser(context.Background(), u))
	return u
}

func (f *fixture) invite(t *testing.T, email, workspaceID string, role domain.Role) domain.Invitation {
	t.Helper()
	inv, err := f.inv.Create(context.Background(), service.CreateInvitationInput{
		Email:       email,
		Role:        role,
		WorkspaceID: workspaceID,
		CreatedBy:   "owner-1",
	})
	require.NoError(t, err)
	return inv
}

func ptr[T any](v T) *T { return &v }
