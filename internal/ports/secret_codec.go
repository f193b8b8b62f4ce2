package ports

import "context"

// SecretCodec turns a plaintext credential into an opaque at-rest blob and
// back. The engine never inspects plaintext beyond handing it to the client
// launcher; decode failures degrade to an empty string at the caller.
type SecretCodec interface {
	Encrypt(ctx context.Context, plaintext string) (string, error)
	Decrypt(ctx context.Context, blob string) (string, error)
}
