package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cluster-dashboard-backend/internal/model"
	"cluster-dashboard-backend/internal/pkg/logger"
	"cluster-dashboard-backend/internal/pkg/password"
	"cluster-dashboard-backend/internal/pkg/token"
	"cluster-dashboard-backend/internal/repository"
	"cluster-dashboard-backend/pkg/utils"
)

func newAuthService(t *testing.T) (*AuthService, *repository.MemoryUserRepository, *token.Manager) {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	tokens, err := token.NewManager("test-secret", 24*time.Hour)
	require.NoError(t, err)
	return NewAuthService(users, password.SHA256Hasher{}, tokens, logger.NewNop()), users, tokens
}

func userCount(t *testing.T, users repository.UserRepository) int {
	t.Helper()
	all, err := users.List(context.Background())
	require.NoError(t, err)
	return len(all)
}

func TestRegisterAndLogin(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	reg, err := s.Register(ctx, "alice", "alice@x.com", "password1")
	require.NoError(t, err)
	require.NotEmpty(t, reg.Token)
	assert.Equal(t, "alice", reg.User.Username)
	assert.Equal(t, model.RoleUser, reg.User.Role)

	login, err := s.Login(ctx, "alice", "password1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	id := s.ResolveIdentity(ctx, login.Token)
	require.NotNil(t, id)
	assert.Equal(t, model.Identity{ID: reg.User.ID, Username: "alice", Role: model.RoleUser}, *id)
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	s, users, _ := newAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "alice@x.com", "password1")
	require.NoError(t, err)

	u, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", u.Password)
	assert.True(t, s.Verify("password1", u.Password))
	assert.Equal(t, s.Hash("password1"), u.Password)
}

func TestRegisterRejections(t *testing.T) {
	s, users, _ := newAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "alice@x.com", "password1")
	require.NoError(t, err)

	cases := []struct {
		name                      string
		username, email, password string
		kind                      utils.ErrorKind
	}{
		{"duplicate username", "alice", "other@x.com", "password1", utils.KindConflict},
		{"duplicate email", "bob", "alice@x.com", "password1", utils.KindConflict},
		{"short password", "bob", "bob@x.com", "short", utils.KindValidation},
		{"malformed email", "bob", "bob-at-x", "password1", utils.KindValidation},
		{"missing username", "", "bob@x.com", "password1", utils.KindValidation},
		{"missing email", "bob", "", "password1", utils.KindValidation},
		{"missing password", "bob", "bob@x.com", "", utils.KindValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(ctx, tc.username, tc.email, tc.password)
			require.Error(t, err)
			assert.Equal(t, tc.kind, utils.KindOf(err))
			assert.Equal(t, 1, userCount(t, users))
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "alice", "alice@x.com", "password1")
	require.NoError(t, err)

	_, wrongPassword := s.Login(ctx, "alice", "wrongpass")
	_, unknownUser := s.Login(ctx, "mallory", "wrongpass")
	_, wrongCase := s.Login(ctx, "Alice", "password1")

	for _, err := range []error{wrongPassword, unknownUser, wrongCase} {
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrInvalidCredentials))
		assert.Equal(t, wrongPassword.Error(), err.Error())
	}

	_, err = s.Login(ctx, "", "")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestResolveIdentityDegradesToNil(t *testing.T) {
	s, _, tokens := newAuthService(t)
	ctx := context.Background()

	reg, err := s.Register(ctx, "alice", "alice@x.com", "password1")
	require.NoError(t, err)

	assert.Nil(t, s.ResolveIdentity(ctx, ""))
	assert.Nil(t, s.ResolveIdentity(ctx, "not-a-token"))
	assert.Nil(t, s.ResolveIdentity(ctx, reg.Token+"tampered"))

	expired, err := tokens.WithClock(func() time.Time { return time.Now().Add(-48 * time.Hour) }).
		Issue(&model.User{ID: reg.User.ID, Username: "alice", Role: model.RoleUser})
	require.NoError(t, err)
	assert.Nil(t, s.ResolveIdentity(ctx, expired))

	ghost, err := tokens.Issue(&model.User{ID: "deleted", Username: "ghost", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Nil(t, s.ResolveIdentity(ctx, ghost))
}

func TestIdentityUsesStoredRole(t *testing.T) {
	s, _, tokens := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, s.SeedAccount(ctx, repository.DemoAccount{
		ID: "v1", Username: "viewer", Email: "viewer@example.com", Password: "viewer123", Role: model.RoleViewer,
	}))

	// A token claiming admin for a viewer account still resolves as viewer.
	forged, err := tokens.Issue(&model.User{ID: "v1", Username: "viewer", Role: model.RoleAdmin})
	require.NoError(t, err)

	id := s.ResolveIdentity(ctx, forged)
	require.NotNil(t, id)
	assert.Equal(t, model.RoleViewer, id.Role)
}

func TestSeedAccountIsIdempotent(t *testing.T) {
	s, users, _ := newAuthService(t)
	ctx := context.Background()

	for _, acct := range repository.DemoAccounts() {
		require.NoError(t, s.SeedAccount(ctx, acct))
	}
	for _, acct := range repository.DemoAccounts() {
		require.NoError(t, s.SeedAccount(ctx, acct))
	}
	assert.Equal(t, 3, userCount(t, users))

	payload, err := s.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, payload.User.Role)
	assert.Equal(t, "2025-01-01T00:00:00.000Z", payload.User.CreatedAt)
}

func TestMeAndListUsers(t *testing.T) {
	s, _, _ := newAuthService(t)
	ctx := context.Background()

	me, err := s.Me(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, me)

	reg, err := s.Register(ctx, "alice", "alice@x.com", "password1")
	require.NoError(t, err)

	me, err = s.Me(ctx, &model.Identity{ID: reg.User.ID})
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", me.Email)

	all, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "alice", all[0].Username)

	assert.True(t, s.Logout(ctx))
}
