// Package plain is a passthrough codec for snapshots created before
// credentials were encrypted at rest. It only ever appears as a chain
// fallback for decryption.
package plain

import (
	"context"

	"github.com/bnema/riot-accounts-cli/internal/ports"
)

type Codec struct{}

var _ ports.SecretCodec = Codec{}

func (Codec) Encrypt(ctx context.Context, plaintext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return plaintext, nil
}

func (Codec) Decrypt(ctx context.Context, blob string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return blob, nil
}
