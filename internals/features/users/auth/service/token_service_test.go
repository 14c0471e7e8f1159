package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTypedTokenRoundTrip(t *testing.T) {
	userID := uuid.New()
	tok, err := CreateTypedToken(userID, TokenTypeAccess, testSecret, 60)
	require.NoError(t, err)

	got, err := ParseTypedToken(tok, TokenTypeAccess, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTypedTokenWrongType(t *testing.T) {
	// A verification token must never be accepted as an access or
	// reset token.
	tok, err := CreateTypedToken(uuid.New(), TokenTypeVerify, testSecret, 60)
	require.NoError(t, err)

	_, err = ParseTypedToken(tok, TokenTypeAccess, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = ParseTypedToken(tok, TokenTypeReset, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTypedTokenExpired(t *testing.T) {
	tok, err := CreateTypedToken(uuid.New(), TokenTypeReset, testSecret, -1)
	require.NoError(t, err)

	_, err = ParseTypedToken(tok, TokenTypeReset, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTypedTokenWrongSecret(t *testing.T) {
	tok, err := CreateTypedToken(uuid.New(), TokenTypeAccess, testSecret, 60)
	require.NoError(t, err)

	_, err = ParseTypedToken(tok, TokenTypeAccess, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTypedTokenGarbage(t *testing.T) {
	_, err := ParseTypedToken("not.a.jwt", TokenTypeAccess, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-passw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-passw0rd", hash)

	assert.True(t, VerifyPassword("s3cret-passw0rd", hash))
	assert.False(t, VerifyPassword("wrong", hash))
	assert.False(t, VerifyPassword("s3cret-passw0rd", "not-a-hash"))
}
