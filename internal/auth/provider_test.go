package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gestion-ws/internal/model"
	"go-gestion-ws/internal/store"
	"go-gestion-ws/internal/ws"
)

func newTestProvider() (*Provider, *store.MemStore, *ws.Recorder) {
	snapshots := store.NewMemStore()
	rec := &ws.Recorder{}
	return NewProvider(NewLocalDirectory(), snapshots, rec), snapshots, rec
}

func TestProviderStartsLoadingThenUnauthenticated(t *testing.T) {
	p, _, _ := newTestProvider()

	assert.True(t, p.Loading())
	assert.False(t, p.IsAuthorized())

	p.Restore(context.Background())
	assert.False(t, p.Loading())
	assert.False(t, p.IsAuthorized())
}

func TestLoginSuccessResolvesRoleAndPersists(t *testing.T) {
	p, snapshots, rec := newTestProvider()
	ctx := context.Background()
	p.Restore(ctx)

	resp, ok := p.Login(ctx, "admin@example.com", "admin123")
	require.True(t, ok)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleAdmin, resp.Role)
	assert.True(t, p.IsAuthorized())

	session := p.Current()
	require.NotNil(t, session)
	assert.Equal(t, "admin", session.User.Username)
	assert.Equal(t, model.RoleAdmin, session.Role)
	assert.Empty(t, session.User.Password)

	events := rec.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, "Inicio de sesión exitoso", events[len(events)-1].Title)

	// A fresh provider against the same snapshots restores the session.
	p2 := NewProvider(NewLocalDirectory(), snapshots, &ws.Recorder{})
	p2.Restore(ctx)
	assert.True(t, p2.IsAuthorized())
	assert.Equal(t, model.RoleAdmin, p2.Current().Role)
}

func TestLoginBadCredentialsReturnsFalse(t *testing.T) {
	p, _, rec := newTestProvider()
	ctx := context.Background()
	p.Restore(ctx)

	resp, ok := p.Login(ctx, "admin@example.com", "wrong")
	assert.False(t, ok)
	assert.Nil(t, resp)
	assert.False(t, p.IsAuthorized())
	assert.False(t, p.Loading())

	events := rec.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, "Error de autenticación", events[len(events)-1].Title)
	assert.Equal(t, "destructive", events[len(events)-1].Variant)
}

func TestFailedLoginKeepsActiveSession(t *testing.T) {
	p, snapshots, rec := newTestProvider()
	ctx := context.Background()
	p.Restore(ctx)

	_, ok := p.Login(ctx, "admin@example.com", "admin123")
	require.True(t, ok)

	// A bad attempt from the public login endpoint must not knock out the
	// session that is already established.
	resp, ok := p.Login(ctx, "admin@example.com", "wrong-password")
	assert.False(t, ok)
	assert.Nil(t, resp)

	assert.True(t, p.IsAuthorized())
	assert.False(t, p.Loading())
	session := p.Current()
	require.NotNil(t, session)
	assert.Equal(t, "admin", session.User.Username)

	// Memory and the persisted snapshot agree: a restart comes up with the
	// same session still active.
	p2 := NewProvider(NewLocalDirectory(), snapshots, &ws.Recorder{})
	p2.Restore(ctx)
	assert.True(t, p2.IsAuthorized())

	events := rec.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, "Error de autenticación", events[len(events)-1].Title)
}

func TestLogoutClearsSessionDurably(t *testing.T) {
	p, snapshots, _ := newTestProvider()
	ctx := context.Background()
	p.Restore(ctx)

	_, ok := p.Login(ctx, "cajero@example.com", "cajero123")
	require.True(t, ok)
	require.True(t, p.IsAuthorized())

	p.Logout(ctx)
	assert.False(t, p.IsAuthorized())
	assert.Nil(t, p.Current())

	p2 := NewProvider(NewLocalDirectory(), snapshots, &ws.Recorder{})
	p2.Restore(ctx)
	assert.False(t, p2.IsAuthorized())
}

func TestRestoreIgnoresCorruptSessionSnapshot(t *testing.T) {
	p, snapshots, _ := newTestProvider()
	snapshots.Corrupt(store.KeyCurrentUser)

	p.Restore(context.Background())
	assert.False(t, p.Loading())
	assert.False(t, p.IsAuthorized())
}

func TestLocalDirectoryRoles(t *testing.T) {
	d := NewLocalDirectory()
	ctx := context.Background()

	for _, tc := range []struct {
		email string
		role  model.Role
	}{
		{"admin@example.com", model.RoleAdmin},
		{"supervisor@example.com", model.RoleSupervisor},
		{"cajero@example.com", model.RoleCajero},
	} {
		u, err := d.Authenticate(ctx, tc.email, map[model.Role]string{
			model.RoleAdmin:      "admin123",
			model.RoleSupervisor: "super123",
			model.RoleCajero:     "cajero123",
		}[tc.role])
		require.NoError(t, err, tc.email)
		role, err := d.LookupRole(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.role, role)
	}

	_, err := d.Authenticate(ctx, "nadie@example.com", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
