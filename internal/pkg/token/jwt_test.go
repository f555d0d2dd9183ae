package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cluster-dashboard-backend/internal/model"
)

var alice = &model.User{ID: "u-1", Username: "alice", Role: model.RoleUser}

func newManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager("test-secret", 24*time.Hour)
	require.NoError(t, err)
	return m
}

func TestRoundTrip(t *testing.T) {
	m := newManager(t)

	signed, err := m.Issue(alice)
	require.NoError(t, err)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, &model.Identity{ID: "u-1", Username: "alice", Role: model.RoleUser}, claims.Identity())

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestExpiredToken(t *testing.T) {
	m := newManager(t)

	past := m.WithClock(func() time.Time { return time.Now().Add(-25 * time.Hour) })
	signed, err := past.Issue(alice)
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedToken(t *testing.T) {
	m := newManager(t)
	signed, err := m.Issue(alice)
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)

	// Swap in a payload claiming admin while keeping the old signature.
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "u-1", Username: "alice", Role: model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = m.Parse(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse(signed + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretAndGarbage(t *testing.T) {
	other, err := NewManager("other-secret", time.Hour)
	require.NoError(t, err)
	signed, err := other.Issue(alice)
	require.NoError(t, err)

	m := newManager(t)
	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	for _, s := range []string{"", "garbage", "a.b.c"} {
		_, err = m.Parse(s)
		assert.ErrorIs(t, err, ErrInvalidToken, s)
	}
}

func TestUnsignedTokenRejected(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "u-1", Username: "alice", Role: model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newManager(t).Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManagerValidation(t *testing.T) {
	_, err := NewManager("", time.Hour)
	assert.Error(t, err)
	_, err = NewManager("secret", 0)
	assert.Error(t, err)
}
