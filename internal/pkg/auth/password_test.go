package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("123456")
	require.NoError(t, err)
	require.NotEqual(t, "123456", hash)

	assert.True(t, CheckPassword(hash, "123456"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", "123456"))
}

func TestGenerateResetToken(t *testing.T) {
	plaintext, digest, err := GenerateResetToken()
	require.NoError(t, err)

	// 20 random bytes hex encoded.
	assert.Len(t, plaintext, 40)
	assert.Equal(t, HashResetToken(plaintext), digest)
	assert.NotEqual(t, plaintext, digest)

	other, _, err := GenerateResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, other)
}

func TestHashResetTokenDeterministic(t *testing.T) {
	assert.Equal(t, HashResetToken("abc"), HashResetToken("abc"))
	assert.NotEqual(t, HashResetToken("abc"), HashResetToken("abd"))
}
