// Package aes encrypts credentials at rest with AES-GCM under a per-user
// random key file. It stands in for the platform secret primitive; the rest
// of the engine only sees opaque blobs.
package aes

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/riot-accounts-cli/internal/ports"
)

const (
	keyFileMode = 0o600
	keyDirMode  = 0o700
	keySize     = 32
)

var ErrMalformedBlob = errors.New("malformed credential blob")

type Codec struct {
	keyPath string
	mu      sync.Mutex
	key     []byte
}

var _ ports.SecretCodec = (*Codec)(nil)

func NewCodec(keyPath string) *Codec {
	return &Codec{keyPath: filepath.Clean(keyPath)}
}

func (c *Codec) Encrypt(ctx context.Context, plaintext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if plaintext == "" {
		return "", nil
	}

	gcm, err := c.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *Codec) Decrypt(ctx context.Context, blob string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if blob == "" {
		return "", nil
	}

	sealed, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedBlob, err)
	}

	gcm, err := c.aead()
	if err != nil {
		return "", err
	}

	if len(sealed) < gcm.NonceSize() {
		return "", ErrMalformedBlob
	}

	plaintext, err := gcm.Open(nil, sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():], nil)
	if err != nil {
		return "", fmt.Errorf("decrypt credential: %w", err)
	}

	return string(plaintext), nil
}

func (c *Codec) aead() (cipher.AEAD, error) {
	key, err := c.loadOrCreateKey()
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}

	return cipher.NewGCM(block)
}

func (c *Codec) loadOrCreateKey() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key != nil {
		return c.key, nil
	}

	key, err := os.ReadFile(c.keyPath)
	if err == nil {
		if len(key) != keySize {
			return nil, fmt.Errorf("key file %s has unexpected size %d", c.keyPath, len(key))
		}
		c.key = key
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	key = make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.keyPath), keyDirMode); err != nil {
		return nil, fmt.Errorf("create key directory: %w", err)
	}
	if err := os.WriteFile(c.keyPath, key, keyFileMode); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}

	c.key = key
	return key, nil
}
