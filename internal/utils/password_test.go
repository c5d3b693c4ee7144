package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("tr0mb0ne!")
	require.NoError(t, err)
	assert.True(t, IsArgon2Hash(hash))

	ok, err := VerifyPassword("tr0mb0ne!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("autre-mot-de-passe", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	h1, err := HashPassword("pareil")
	require.NoError(t, err)
	h2, err := HashPassword("pareil")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "deux hashs du même mot de passe doivent différer (salt aléatoire)")
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("x", "$2a$10$pasunargon2")
	assert.Error(t, err)
}
