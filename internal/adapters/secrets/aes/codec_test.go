package aes

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec(filepath.Join(t.TempDir(), "secret.key"))

	blob, err := codec.Encrypt(context.Background(), "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, blob)
	assert.NotContains(t, blob, "hunter2")

	plaintext, err := codec.Decrypt(context.Background(), blob)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plaintext)
}

func TestCodecEmptyStringPassesThrough(t *testing.T) {
	t.Parallel()

	codec := NewCodec(filepath.Join(t.TempDir(), "secret.key"))

	blob, err := codec.Encrypt(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, blob)

	plaintext, err := codec.Decrypt(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, plaintext)
}

func TestCodecKeyPersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	keyPath := filepath.Join(t.TempDir(), "secret.key")

	blob, err := NewCodec(keyPath).Encrypt(context.Background(), "hunter2")
	require.NoError(t, err)

	plaintext, err := NewCodec(keyPath).Decrypt(context.Background(), blob)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plaintext)
}

func TestCodecRejectsMalformedBlob(t *testing.T) {
	t.Parallel()

	codec := NewCodec(filepath.Join(t.TempDir(), "secret.key"))

	_, err := codec.Decrypt(context.Background(), "not-base64!!")
	require.ErrorIs(t, err, ErrMalformedBlob)

	_, err = codec.Decrypt(context.Background(), "dG9vc2hvcnQ=")
	require.Error(t, err)
}

func TestCodecCanceledContext(t *testing.T) {
	t.Parallel()

	codec := NewCodec(filepath.Join(t.TempDir(), "secret.key"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := codec.Encrypt(ctx, "hunter2")
	require.ErrorIs(t, err, context.Canceled)
}
