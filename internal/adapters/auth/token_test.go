package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokens_RoundTrip(t *testing.T) {
	tokens := NewJWTTokens("test-secret")

	token, err := tokens.Issue("identity-uuid-1", "emma@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identityID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "identity-uuid-1", identityID)
}

func TestJWTTokens_Verify(t *testing.T) {
	tokens := NewJWTTokens("test-secret")

	t.Run("expired token", func(t *testing.T) {
		token, err := tokens.Issue("identity-uuid-1", "emma@example.com", -time.Minute)
		require.NoError(t, err)

		_, err = tokens.Verify(token)
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTTokens("other-secret")
		token, err := other.Issue("identity-uuid-1", "emma@example.com", time.Hour)
		require.NoError(t, err)

		_, err = tokens.Verify(token)
		require.Error(t, err)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := tokens.Verify("not.a.jwt")
		require.Error(t, err)
	})
}
