package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("s3cret", time.Hour)

	token, err := issuer.Generate("u-1", "dentist")
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "dentist", claims.Role)
}

func TestTokenIssuer_RejectsOtherSecretAndExpired(t *testing.T) {
	token, err := NewTokenIssuer("s3cret", time.Hour).Generate("u-1", "dentist")
	require.NoError(t, err)
	_, err = NewTokenIssuer("other", time.Hour).Validate(token)
	assert.Error(t, err)

	old := NewTokenIssuer("s3cret", time.Minute)
	old.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := old.Generate("u-1", "dentist")
	require.NoError(t, err)
	_, err = old.Validate(expired)
	assert.Error(t, err)
}

func TestTokenIssuer_NoSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour).Generate("u", "dentist")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestPasswordHash(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
