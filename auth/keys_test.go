package auth

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestIssue_Is256BitHex(t *testing.T) {
	issuer := NewKeyIssuer()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		key, err := issuer.Issue()
		require.NoError(t, err)
		require.Len(t, key, 2*APIKeyBytes)
		_, err = hex.DecodeString(key)
		require.NoError(t, err)
		assert.False(t, seen[key])
		seen[key] = true
	}
}

func TestIssue_Deterministic(t *testing.T) {
	issuer := &KeyIssuer{rand: bytes.NewReader(bytes.Repeat([]byte{0xab}, APIKeyBytes))}
	key, err := issuer.Issue()
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(bytes.Repeat([]byte{0xab}, APIKeyBytes)), key)
}

func TestIssue_SourceFailure(t *testing.T) {
	issuer := &KeyIssuer{rand: failingReader{}}
	_, err := issuer.Issue()
	assert.Error(t, err)
}
