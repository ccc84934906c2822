package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTManager() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	mgr := testJWTManager()

	tok, exp, err := mgr.GenerateAccessToken("user-1", "sess-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := mgr.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	mgr := testJWTManager()

	access, _, err := mgr.GenerateAccessToken("user-1", "sess-1")
	require.NoError(t, err)
	refresh, _, err := mgr.GenerateRefreshToken("user-1", "sess-1")
	require.NoError(t, err)

	_, err = mgr.ParseRefreshToken(access)
	assert.Error(t, err)
	_, err = mgr.ParseAccessToken(refresh)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	mgr := NewJWTManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	tok, _, err := mgr.GenerateAccessToken("user-1", "sess-1")
	require.NoError(t, err)

	_, err = mgr.ParseAccessToken(tok)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	mgr := testJWTManager()

	tok, _, err := mgr.GenerateAccessToken("user-1", "sess-1")
	require.NoError(t, err)

	_, err = mgr.ParseAccessToken(tok[:len(tok)-2])
	assert.Error(t, err)
}
