package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher_HashVerifyRoundTrip(t *testing.T) {
	h := NewHasher()

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, h.Verify("correct horse battery staple", hash))
	assert.False(t, h.Verify("wrong password", hash))
}

func TestHasher_SaltIsRandomizedPerCall(t *testing.T) {
	h := NewHasher()

	first, err := h.Hash("same plaintext")
	require.NoError(t, err)
	second, err := h.Hash("same plaintext")
	require.NoError(t, err)

	// Different salts produce different strings, both still verifying.
	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same plaintext", first))
	assert.True(t, h.Verify("same plaintext", second))
}

func TestHasher_EmptyPlaintextRejected(t *testing.T) {
	h := NewHasher()

	_, err := h.Hash("")
	require.Error(t, err)
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Violations, "password is required")
}

func TestHasher_OverlongPlaintextRejected(t *testing.T) {
	h := NewHasher()

	// bcrypt silently truncates beyond 72 bytes at best and errors at
	// worst; either way an overlong password is a validation failure, not
	// an internal error.
	_, err := h.Hash(strings.Repeat("x", 73))
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Violations, "password must be at most 72 bytes")

	hash, err := h.Hash(strings.Repeat("x", 72))
	require.NoError(t, err)
	assert.True(t, h.Verify(strings.Repeat("x", 72), hash))
}

func TestHasher_VerifyNeverErrors(t *testing.T) {
	h := NewHasher()

	assert.False(t, h.Verify("", "$2a$12$abcdefghijklmnopqrstuv"))
	assert.False(t, h.Verify("password", ""))
	assert.False(t, h.Verify("password", "not a bcrypt hash"))
}
