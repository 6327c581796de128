// Package secret encrypts small strings at rest using fernet tokens.
// Market-data provider API keys are stored in the settings table through
// this box rather than in plain text.
package secret

import (
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"
)

// ErrNoKey indicates the encryption key was not configured.
var ErrNoKey = errors.New("encryption key not configured")

// ErrDecryptFailed indicates a token could not be verified or decrypted.
var ErrDecryptFailed = errors.New("failed to decrypt value")

// Box encrypts and decrypts strings with a single fernet key.
type Box struct {
	key *fernet.Key
}

// NewBox creates a Box from a base64-encoded fernet key, as produced by
// fernet key generators. An empty key yields a usable Box whose operations
// fail with ErrNoKey, so a deployment without secrets still starts.
func NewBox(encodedKey string) (*Box, error) {
	if encodedKey == "" {
		return &Box{}, nil
	}

	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid fernet key: %w", err)
	}
	return &Box{key: key}, nil
}

// Encrypt returns the fernet token for a plaintext value.
func (b *Box) Encrypt(plaintext string) (string, error) {
	if b.key == nil {
		return "", ErrNoKey
	}

	token, err := fernet.EncryptAndSign([]byte(plaintext), b.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt value: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a fernet token. Tokens do not expire; the
// settings table is the single writer and rotation replaces the row.
func (b *Box) Decrypt(token string) (string, error) {
	if b.key == nil {
		return "", ErrNoKey
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{b.key})
	if plaintext == nil {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}
