package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, path string) *Store {
	t.Helper()

	config := viper.New()
	config.Set("snapshot.path", path)

	store, err := NewStore(config, nil, nil)
	require.NoError(t, err)
	return store
}

func sampleSnapshot() domain.Snapshot {
	lpq := 15
	lockout := time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC)

	return domain.Snapshot{
		Paths: domain.PathSettings{
			ClientLogsDir:   "/games/league/Logs/LeagueClient Logs",
			LauncherLogsDir: "/games/riot-client/Logs/Riot Client Logs",
		},
		Accounts: []domain.Account{
			{
				ID:                 "acc-1",
				Username:           "smurf1",
				EncryptedPassword:  "b64blob==",
				RiotAccountID:      "2345678901",
				GameName:           "Faker",
				TagLine:            "KR1",
				LowPriorityMinutes: &lpq,
				LockoutUntil:       &lockout,
				DisplayOrder:       0,
				Tag:                domain.TagStar,
			},
			{
				ID:           "acc-2",
				Username:     "smurf2",
				DisplayOrder: 1,
			},
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, filepath.Join(t.TempDir(), "accounts.toml"))
	want := sampleSnapshot()

	require.NoError(t, store.Save(context.Background(), want))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStoreLoadMissingFileReturnsEmptySnapshot(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, filepath.Join(t.TempDir(), "missing", "accounts.toml"))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Accounts)
}

func TestStoreSaveWritesBackupOfPreviousPrimary(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accounts.toml")
	store := newTestStore(t, path)

	first := sampleSnapshot()
	require.NoError(t, store.Save(context.Background(), first))
	second := first
	second.Accounts = first.Accounts[:1]
	require.NoError(t, store.Save(context.Background(), second))

	backup, err := readSnapshotFile(path + backupSuffix)
	require.NoError(t, err)
	assert.Equal(t, first, backup)

	primary, err := readSnapshotFile(path)
	require.NoError(t, err)
	assert.Equal(t, second, primary)
}

func TestStoreLoadRecoversFromBackupAndHealsPrimary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "accounts.toml")
	store := newTestStore(t, path)

	want := sampleSnapshot()
	require.NoError(t, store.Save(context.Background(), want))
	require.NoError(t, store.Save(context.Background(), want)) // ensures backup exists

	require.NoError(t, os.WriteFile(path, []byte("version = [broken"), 0o600))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// The corrupt primary was quarantined, not deleted.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	quarantined := 0
	for _, entry := range entries {
		if len(entry.Name()) > len("accounts.toml.corrupted_") &&
			entry.Name()[:len("accounts.toml.corrupted_")] == "accounts.toml.corrupted_" {
			quarantined++
		}
	}
	assert.Equal(t, 1, quarantined)

	// Self-healed: a second load reads the restored primary directly.
	healed, err := readSnapshotFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, healed)

	again, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, again)
}

func TestStoreLoadBothCorruptReturnsEmptySnapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accounts.toml")
	store := newTestStore(t, path)

	require.NoError(t, os.WriteFile(path, []byte("not toml ["), 0o600))
	require.NoError(t, os.WriteFile(path+backupSuffix, []byte("also broken ["), 0o600))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Accounts)
}

func TestStoreInterruptedSaveLeavesPrimaryLoadable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "accounts.toml")
	store := newTestStore(t, path)

	want := sampleSnapshot()
	require.NoError(t, store.Save(context.Background(), want))

	// Simulate a crash between temp write and rename: a stray temp file
	// sits next to an untouched primary.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".accounts-1234.toml.tmp"), []byte("partial"), 0o600))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStoreFutureSchemaVersionTreatedAsCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "accounts.toml")
	store := newTestStore(t, path)

	require.NoError(t, os.WriteFile(path, []byte("version = 999\n"), 0o600))

	_, err := readSnapshotFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSnapshotCorrupted))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Accounts)
}

func TestStoreCanceledContext(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, filepath.Join(t.TempDir(), "accounts.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)

	err = store.Save(ctx, domain.Snapshot{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestStoreDefaultPathAndPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	store, err := NewStore(viper.New(), nil, nil)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), sampleSnapshot()))

	path := filepath.Join(homeDir, ".riotaccounts", "accounts.toml")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
