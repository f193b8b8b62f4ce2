// Package chain composes secret codecs: the primary handles current blobs,
// the fallback covers legacy snapshots written before at-rest encryption.
package chain

import (
	"context"
	"errors"
	"fmt"

	aescodec "github.com/bnema/riot-accounts-cli/internal/adapters/secrets/aes"
	plaincodec "github.com/bnema/riot-accounts-cli/internal/adapters/secrets/plain"
	"github.com/bnema/riot-accounts-cli/internal/ports"
)

type Codec struct {
	primary  ports.SecretCodec
	fallback ports.SecretCodec
}

var _ ports.SecretCodec = (*Codec)(nil)

var (
	errNilPrimaryCodec  = errors.New("primary secret codec is nil")
	errNilFallbackCodec = errors.New("fallback secret codec is nil")
)

func NewCodec(primary, fallback ports.SecretCodec) (*Codec, error) {
	if primary == nil {
		return nil, errNilPrimaryCodec
	}
	if fallback == nil {
		return nil, errNilFallbackCodec
	}

	return &Codec{primary: primary, fallback: fallback}, nil
}

// NewAESFirstWithPlainFallback builds the default chain: AES-GCM blobs with
// plaintext passthrough for snapshots predating encryption.
func NewAESFirstWithPlainFallback(keyPath string) (*Codec, error) {
	return NewCodec(aescodec.NewCodec(keyPath), plaincodec.Codec{})
}

// Encrypt always uses the primary codec; new blobs are never written in the
// legacy form.
func (c *Codec) Encrypt(ctx context.Context, plaintext string) (string, error) {
	return c.primary.Encrypt(ctx, plaintext)
}

func (c *Codec) Decrypt(ctx context.Context, blob string) (string, error) {
	value, err := c.primary.Decrypt(ctx, blob)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := c.fallback.Decrypt(ctx, blob)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	return "", fmt.Errorf("primary codec decrypt failed: %w; fallback codec decrypt failed: %w", err, fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
