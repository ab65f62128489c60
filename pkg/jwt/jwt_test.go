package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, expiresAt, err := m.GenerateAccessToken("acc-1", "reader", true)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, "reader", claims.Username)
	assert.True(t, claims.IsAuthor)
}

func TestManager_RejectsForeignSecret(t *testing.T) {
	token, _, err := NewManager("one", time.Hour).GenerateAccessToken("acc-1", "reader", false)
	require.NoError(t, err)

	_, err = NewManager("two", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := NewManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := m.GenerateAccessToken("acc-1", "reader", false)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestNewManager_DefaultTTL(t *testing.T) {
	assert.Equal(t, 24*time.Hour, NewManager("s", 0).TTL())
}
