package presence

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tradeforce/internal/common"
	"tradeforce/internal/config"
	"tradeforce/internal/models"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
	err   error
}

func newMemUsers(ids ...string) *memUsers {
	m := &memUsers{users: make(map[string]*models.User)}
	for _, id := range ids {
		m.users[id] = &models.User{ID: id, UserName: id}
	}
	return m
}

func (m *memUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, common.NotFoundf("user %s not found", id)
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) SetPresence(_ context.Context, id, socketID string, online bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	u, ok := m.users[id]
	if !ok {
		return common.NotFoundf("user %s not found", id)
	}
	u.SocketID = socketID
	u.IsOnline = online
	return nil
}

func (m *memUsers) ClearPresenceIf(_ context.Context, id, socketID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	u, ok := m.users[id]
	if !ok || u.SocketID != socketID {
		return false, nil
	}
	u.SocketID = ""
	u.IsOnline = false
	return true, nil
}

func newTestRegistry(users *memUsers) *Registry {
	cfg := &config.Config{Chat: config.ChatConfig{LookupTimeout: 1}}
	return NewRegistry(users, cfg, zap.NewNop())
}

func TestRegistry_BindThenHandleOf(t *testing.T) {
	users := newMemUsers("alice")
	reg := newTestRegistry(users)
	ctx := context.Background()

	require.NoError(t, reg.Bind(ctx, "alice", "h1"))

	handle, ok, err := reg.HandleOf(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "h1", handle)
	assert.True(t, reg.IsLive(ctx, "alice"))
}

func TestRegistry_LastConnectWins(t *testing.T) {
	users := newMemUsers("alice")
	reg := newTestRegistry(users)
	ctx := context.Background()

	require.NoError(t, reg.Bind(ctx, "alice", "h1"))
	require.NoError(t, reg.Bind(ctx, "alice", "h2"))

	handle, ok, err := reg.HandleOf(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "h2", handle)
}

func TestRegistry_Unbind(t *testing.T) {
	users := newMemUsers("alice")
	reg := newTestRegistry(users)
	ctx := context.Background()

	require.NoError(t, reg.Bind(ctx, "alice", "h1"))
	require.NoError(t, reg.Unbind(ctx, "alice"))

	handle, ok, err := reg.HandleOf(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, handle)
	assert.False(t, reg.IsLive(ctx, "alice"))

	u, err := reg.UserInfo(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, u.IsOnline)
	assert.Empty(t, u.SocketID)
}

func TestRegistry_Release(t *testing.T) {
	tests := []struct {
		name       string
		bound      string
		release    string
		wantLive   bool
		wantHandle string
	}{
		{name: "current handle goes offline", bound: "h1", release: "h1", wantLive: false},
		{name: "superseded handle is ignored", bound: "h2", release: "h1", wantLive: true, wantHandle: "h2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newMemUsers("alice")
			reg := newTestRegistry(users)
			ctx := context.Background()

			require.NoError(t, reg.Bind(ctx, "alice", tt.bound))
			require.NoError(t, reg.Release(ctx, "alice", tt.release))

			handle, ok, err := reg.HandleOf(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, tt.wantLive, ok)
			assert.Equal(t, tt.wantHandle, handle)
		})
	}
}

func TestRegistry_BindErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		reg := newTestRegistry(newMemUsers())
		err := reg.Bind(ctx, "ghost", "h1")
		assert.True(t, errors.Is(err, common.ErrNotFound))
	})

	t.Run("empty user id", func(t *testing.T) {
		reg := newTestRegistry(newMemUsers())
		err := reg.Bind(ctx, "", "h1")
		assert.True(t, errors.Is(err, common.ErrValidation))
	})

	t.Run("store failure", func(t *testing.T) {
		users := newMemUsers("alice")
		users.err = common.PersistenceError("write failed", errors.New("connection reset"))
		reg := newTestRegistry(users)
		err := reg.Bind(ctx, "alice", "h1")
		assert.True(t, errors.Is(err, common.ErrPersistence))
		assert.False(t, reg.IsLive(ctx, "alice"))
	})
}

func TestRegistry_HandleOfUnknownUser(t *testing.T) {
	reg := newTestRegistry(newMemUsers())
	_, ok, err := reg.HandleOf(context.Background(), "ghost")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
