package application

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/crypto/pbkdf2"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/ports"
)

// ErrBadExportPassword covers both a wrong password and a tampered file; the
// AEAD cannot tell them apart.
var ErrBadExportPassword = errors.New("export password does not match or file is damaged")

const (
	exportVersion     = 1
	exportKDFIters    = 10_000
	exportKeyLen      = 32
	exportSaltLen     = 16
	exportPasswordLen = 16
)

// exportFile is the portable on-disk shape. Only credentials are sealed; the
// rest stays readable so the recipient can see what the file carries.
type exportFile struct {
	Version    int             `toml:"version"`
	ExportedAt string          `toml:"exported_at"`
	Accounts   []exportAccount `toml:"accounts"`
}

type exportAccount struct {
	Username      string `toml:"username"`
	Password      string `toml:"password"`
	RiotAccountID string `toml:"riot_account_id,omitempty"`
	GameName      string `toml:"game_name,omitempty"`
	TagLine       string `toml:"tag_line,omitempty"`
	Tag           string `toml:"tag,omitempty"`
}

// ImportResult distinguishes merged accounts from ones skipped because the
// username already exists locally.
type ImportResult struct {
	Added   int
	Skipped int
}

// TransferService moves accounts between machines through a password-sealed
// export file.
type TransferService struct {
	store  ports.SnapshotStore
	codec  ports.SecretCodec
	clock  ports.Clock
	logger *slog.Logger
}

func NewTransferService(store ports.SnapshotStore, codec ports.SecretCodec, clock ports.Clock, logger *slog.Logger) *TransferService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TransferService{store: store, codec: codec, clock: clock, logger: logger}
}

// GenerateExportPassword returns a random alphanumeric password suitable for
// handing to the receiving side out of band.
func GenerateExportPassword() (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

	raw := make([]byte, exportPasswordLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate export password: %w", err)
	}
	for i, b := range raw {
		raw[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(raw), nil
}

// Export writes every account to path, sealing each credential with a key
// derived from password. Returns the number of accounts written.
func (t *TransferService) Export(ctx context.Context, path, password string) (int, error) {
	if password == "" {
		return 0, fmt.Errorf("export password must not be empty")
	}

	snapshot, err := t.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load snapshot: %w", err)
	}

	file := exportFile{
		Version:    exportVersion,
		ExportedAt: t.clock.Now().UTC().Format(time.RFC3339),
	}
	for _, account := range snapshot.SortedByDisplayOrder() {
		plaintext, err := t.codec.Decrypt(ctx, account.EncryptedPassword)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			t.logger.Warn("credential decrypt failed, exporting without password",
				"username", account.Username, "error", err)
			plaintext = ""
		}

		sealed, err := sealWithPassword(plaintext, password)
		if err != nil {
			return 0, fmt.Errorf("seal credential for %s: %w", account.Username, err)
		}

		file.Accounts = append(file.Accounts, exportAccount{
			Username:      account.Username,
			Password:      sealed,
			RiotAccountID: account.RiotAccountID,
			GameName:      account.GameName,
			TagLine:       account.TagLine,
			Tag:           string(account.Tag),
		})
	}

	encoded, err := toml.Marshal(file)
	if err != nil {
		return 0, fmt.Errorf("encode export file: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o600); err != nil {
		return 0, fmt.Errorf("write export file: %w", err)
	}

	t.logger.Info("accounts exported", "path", path, "count", len(file.Accounts))
	return len(file.Accounts), nil
}

// Import merges accounts from an export file into the local snapshot.
// Accounts whose username already exists locally are skipped, never
// overwritten.
func (t *TransferService) Import(ctx context.Context, path, password string) (ImportResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read export file: %w", err)
	}

	var file exportFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return ImportResult{}, fmt.Errorf("decode export file: %w", err)
	}
	if file.Version != exportVersion {
		return ImportResult{}, fmt.Errorf("unsupported export version %d", file.Version)
	}

	snapshot, err := t.store.Load(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("load snapshot: %w", err)
	}

	result := ImportResult{}
	for _, entry := range file.Accounts {
		if entry.Username == "" {
			continue
		}
		if snapshot.FindByUsername(entry.Username) >= 0 {
			result.Skipped++
			continue
		}

		plaintext, err := openWithPassword(entry.Password, password)
		if err != nil {
			return ImportResult{}, fmt.Errorf("unseal credential for %s: %w", entry.Username, err)
		}
		blob, err := t.codec.Encrypt(ctx, plaintext)
		if err != nil {
			return ImportResult{}, fmt.Errorf("encrypt credential for %s: %w", entry.Username, err)
		}

		tag := domain.AccountTag(entry.Tag)
		if !tag.Valid() {
			tag = domain.TagNone
		}
		snapshot.Append(domain.Account{
			ID:                domain.AccountID(uuid.NewString()),
			Username:          entry.Username,
			EncryptedPassword: blob,
			RiotAccountID:     entry.RiotAccountID,
			GameName:          entry.GameName,
			TagLine:           entry.TagLine,
			Tag:               tag,
		})
		result.Added++
	}

	if result.Added > 0 {
		if err := t.store.Save(ctx, snapshot); err != nil {
			return ImportResult{}, fmt.Errorf("save snapshot: %w", err)
		}
	}

	t.logger.Info("accounts imported", "path", path, "added", result.Added, "skipped", result.Skipped)
	return result, nil
}

// sealWithPassword derives an AES-256 key from the password with PBKDF2 and
// seals the plaintext with AES-GCM. Blob layout: base64(salt || nonce || ct).
func sealWithPassword(plaintext, password string) (string, error) {
	salt := make([]byte, exportSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	aead, err := passwordAEAD(password, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)

	blob := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, sealed...)
	return base64.StdEncoding.EncodeToString(blob), nil
}

func openWithPassword(blob, password string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", ErrBadExportPassword
	}
	if len(raw) < exportSaltLen {
		return "", ErrBadExportPassword
	}

	salt, rest := raw[:exportSaltLen], raw[exportSaltLen:]
	aead, err := passwordAEAD(password, salt)
	if err != nil {
		return "", err
	}
	if len(rest) < aead.NonceSize() {
		return "", ErrBadExportPassword
	}

	nonce, sealed := rest[:aead.NonceSize()], rest[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrBadExportPassword
	}
	return string(plaintext), nil
}

func passwordAEAD(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, exportKDFIters, exportKeyLen, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
