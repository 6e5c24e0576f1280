package services

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var ErrCipherKeySize = errors.New("token encryption key must be 32 bytes (64 hex chars)")

// TokenCipher encrypts cached provider tokens before they hit the users table.
type TokenCipher struct {
	key []byte
}

func NewTokenCipher(hexKey string) (*TokenCipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid token encryption key: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrCipherKeySize
	}
	return &TokenCipher{key: key}, nil
}

// NewEphemeralTokenCipher generates a random key. Used in development when no
// key is configured; tokens do not survive a restart.
func NewEphemeralTokenCipher() (*TokenCipher, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate ephemeral key: %w", err)
	}
	return &TokenCipher{key: key}, nil
}

func (t *TokenCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	aead, err := chacha20poly1305.NewX(t.key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (t *TokenCipher) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("invalid ciphertext encoding: %w", err)
	}
	aead, err := chacha20poly1305.NewX(t.key)
	if err != nil {
		return "", err
	}
	if len(sealed) < aead.NonceSize() {
		return "", errors.New("ciphertext too short")
	}
	nonce, ct := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt token: %w", err)
	}
	return string(plain), nil
}
