package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// APIKeyBytes is the entropy of an issued key; keys are hex encoded (64 chars).
const APIKeyBytes = 32

// KeyIssuer generates API keys from a cryptographically secure source.
// Uniqueness is enforced by the credential store, not here.
type KeyIssuer struct {
	rand io.Reader
}

func NewKeyIssuer() *KeyIssuer {
	return &KeyIssuer{rand: rand.Reader}
}

func (i *KeyIssuer) Issue() (string, error) {
	b := make([]byte, APIKeyBytes)
	if _, err := io.ReadFull(i.rand, b); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return hex.EncodeToString(b), nil
}
