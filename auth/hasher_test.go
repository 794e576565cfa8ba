package auth

import (
	"strings"
	"testing"

	"location-service/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher_RejectsBadCost(t *testing.T) {
	_, err := NewPasswordHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)
	_, err = NewPasswordHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}

func TestHashAndVerify(t *testing.T) {
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash1, err := h.Hash("pw")
	require.NoError(t, err)
	hash2, err := h.Hash("pw")
	require.NoError(t, err)

	assert.NotEqual(t, "pw", hash1)
	assert.NotEqual(t, hash1, hash2, "hashes must be salted")

	cost, err := bcrypt.Cost([]byte(hash1))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	ok, err := h.Verify("pw", hash1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_MalformedHashIsInternal(t *testing.T) {
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := h.Verify("pw", "not-a-bcrypt-hash")
	assert.False(t, ok)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestHash_TooLong(t *testing.T) {
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	_, err = h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
