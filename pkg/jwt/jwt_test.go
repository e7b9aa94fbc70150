package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateAccessToken("user-123", "alice", "alice@example.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestValidateToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		other := NewManager("other-secret", time.Hour)
		token, err := other.GenerateAccessToken("user-123", "alice", "alice@example.com", "user")
		require.NoError(t, err)

		_, err = m.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewManager("test-secret", -time.Minute)
		token, err := expired.GenerateAccessToken("user-123", "alice", "alice@example.com", "user")
		require.NoError(t, err)

		_, err = m.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := m.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestTokenTypeChecks(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	refresh, err := m.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err, "refresh token must not pass as access token")

	claims, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}
