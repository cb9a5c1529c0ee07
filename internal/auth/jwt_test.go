package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garamsoft/groupware/internal/domain/entity"
)

func testUser() *entity.User {
	return &entity.User{
		ID:      42,
		LoginID: "jkim",
		Name:    "J Kim",
		Team:    "dev",
		Role:    entity.RoleManager,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewTokenManager(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})

	token, err := m.IssueAccess(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jkim", claims.LoginID)
	assert.Equal(t, entity.RoleManager, claims.Role)
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	m := NewTokenManager(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})

	refresh, expiresAt, err := m.IssueRefresh(testUser())
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	_, err = m.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := m.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewTokenManager(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     -time.Minute,
		RefreshTTL:    time.Hour,
	})

	token, err := m.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = m.ParseAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedTokenRejected(t *testing.T) {
	m := NewTokenManager(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})

	token, err := m.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = m.ParseAccess(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, CheckPassword(hash, "secret123"))
	assert.Error(t, CheckPassword(hash, "wrong"))
}

func TestHashTokenDeterministic(t *testing.T) {
	a := HashToken("token-a")
	b := HashToken("token-a")
	c := HashToken("token-b")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
