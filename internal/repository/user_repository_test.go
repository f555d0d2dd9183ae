package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cluster-dashboard-backend/internal/model"
)

func TestUserCreateAndFind(t *testing.T) {
	r := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &model.User{ID: "u1", Username: "alice", Email: "alice@x.com", Role: model.RoleUser}))

	u, err := r.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	u, err = r.FindByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = r.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.NotNil(t, u)

	u, err = r.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, u)
}

func TestUserCreateRejectsDuplicates(t *testing.T) {
	r := NewMemoryUserRepository()
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, &model.User{ID: "u1", Username: "alice", Email: "alice@x.com"}))

	err := r.Create(ctx, &model.User{ID: "u2", Username: "alice", Email: "other@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	err = r.Create(ctx, &model.User{ID: "u3", Username: "bob", Email: "alice@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	users, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
