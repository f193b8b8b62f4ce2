// Package toml persists the account snapshot as a TOML document with
// backup-on-write, atomic replace and quarantine-and-recover on corruption.
package toml

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName       = "config"
	configType       = "toml"
	snapshotPathKey  = "snapshot.path"
	snapshotFileMode = 0o600
	snapshotDirMode  = 0o700
	configDirName    = ".riotaccounts"
	snapshotFileName = "accounts.toml"
	tempFilePattern  = ".accounts-*.toml.tmp"
	backupSuffix     = ".backup"
	quarantineStamp  = "20060102150405"
)

// Store owns the snapshot file triple (primary, backup, temp) exclusively.
// Nothing else should write these paths; that is a convention, not a lock.
type Store struct {
	primaryPath string
	logger      *slog.Logger
	clock       ports.Clock
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SnapshotStore = (*Store)(nil)

func NewStore(cfg *viper.Viper, logger *slog.Logger, clock ports.Clock) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, configDirName, snapshotFileName)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	cfg.SetDefault(snapshotPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	primaryPath := cfg.GetString(snapshotPathKey)
	if primaryPath == "" {
		return nil, errors.New("snapshot path is empty")
	}
	primaryPath, err = normalizePath(primaryPath)
	if err != nil {
		return nil, err
	}

	return &Store{
		primaryPath: primaryPath,
		logger:      logger,
		clock:       clock,
		mu:          lockForPath(primaryPath),
	}, nil
}

func (s *Store) backupPath() string {
	return s.primaryPath + backupSuffix
}

// Load reads the primary snapshot, falling back to the backup when the
// primary is absent or corrupt. A recoverable backup heals the primary in
// place; the corrupt primary is quarantined, never deleted. When nothing is
// recoverable Load returns an empty default snapshot, not an error.
func (s *Store) Load(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := readSnapshotFile(s.primaryPath)
	if err == nil {
		return snapshot, nil
	}
	primaryErr := err

	snapshot, backupErr := readSnapshotFile(s.backupPath())
	if backupErr != nil {
		if !errors.Is(primaryErr, os.ErrNotExist) {
			s.logger.Warn("snapshot unrecoverable, starting empty",
				"primary_error", primaryErr, "backup_error", backupErr)
		}
		return domain.Snapshot{}, nil
	}

	s.logger.Warn("primary snapshot unreadable, recovered from backup",
		"error", primaryErr)

	if !errors.Is(primaryErr, os.ErrNotExist) {
		s.quarantinePrimary()
	}

	// Self-heal: persist the recovered content back as the new primary so
	// the next load does not depend on the backup again.
	if err := s.writeSnapshot(snapshot); err != nil {
		s.logger.Warn("failed to restore primary from backup", "error", err)
	}

	return snapshot, nil
}

// Save copies the current primary aside as a backup (best effort), then
// writes the snapshot to a temp file and renames it over the primary so a
// reader never observes a half-written file.
func (s *Store) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := copyFile(s.primaryPath, s.backupPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("snapshot backup copy failed", "error", err)
	}

	return s.writeSnapshot(snapshot)
}

func (s *Store) quarantinePrimary() {
	quarantined := s.primaryPath + ".corrupted_" + s.clock.Now().Format(quarantineStamp)
	if err := os.Rename(s.primaryPath, quarantined); err != nil {
		s.logger.Warn("failed to quarantine corrupt snapshot", "error", err)
		return
	}
	s.logger.Info("quarantined corrupt snapshot", "path", quarantined)
}

func (s *Store) writeSnapshot(snapshot domain.Snapshot) error {
	file := toSchema(snapshot)
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(s.primaryPath), snapshotDirMode); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.primaryPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp snapshot file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp snapshot file: %w", err)
	}

	if err := tempFile.Chmod(snapshotFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp snapshot file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp snapshot file: %w", err)
	}

	if err := os.Rename(tempName, s.primaryPath); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(s.primaryPath, snapshotFileMode); err != nil {
		return fmt.Errorf("chmod snapshot file: %w", err)
	}

	return nil
}

func readSnapshotFile(path string) (domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Snapshot{}, err
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %w", domain.ErrSnapshotCorrupted, err)
	}
	if err := file.validateVersion(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %w", domain.ErrSnapshotCorrupted, err)
	}
	file.applyDefaults()

	return fromSchema(file), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, snapshotFileMode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve snapshot path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
