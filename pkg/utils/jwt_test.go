package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	id := uuid.New()

	token, err := m.GenerateAccessToken(id, "manager@demo.com", "Morgan")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "manager@demo.com", claims.Email)

	ident := claims.Identity()
	assert.True(t, ident.IsAuthenticated())
	assert.Equal(t, "Morgan", ident.Name)
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTManager("one", time.Hour).GenerateAccessToken(uuid.New(), "a@b.c", "")
	require.NoError(t, err)

	_, err = NewJWTManager("two", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	m := NewJWTManager("s", -time.Minute)
	token, err := m.GenerateAccessToken(uuid.New(), "a@b.c", "")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("demo1234")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("demo1234", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
