package toml

import (
	"fmt"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Paths    pathsSchema     `toml:"paths"`
	Accounts []accountSchema `toml:"accounts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported snapshot schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type pathsSchema struct {
	ClientLogsDir    string `toml:"client_logs_dir,omitempty"`
	LauncherLogsDir  string `toml:"launcher_logs_dir,omitempty"`
	ClientExecutable string `toml:"client_executable,omitempty"`
}

type accountSchema struct {
	ID                 string `toml:"id"`
	Username           string `toml:"username"`
	EncryptedPassword  string `toml:"encrypted_password"`
	RiotAccountID      string `toml:"riot_account_id,omitempty"`
	GameName           string `toml:"game_name,omitempty"`
	TagLine            string `toml:"tag_line,omitempty"`
	LowPriorityMinutes *int   `toml:"low_priority_minutes,omitempty"`
	LockoutUntil       string `toml:"lockout_until,omitempty"`
	DisplayOrder       int    `toml:"display_order"`
	Tag                string `toml:"tag,omitempty"`
}

func toSchema(snapshot domain.Snapshot) fileSchema {
	file := fileSchema{
		Version: currentSchemaVersion,
		Paths: pathsSchema{
			ClientLogsDir:    snapshot.Paths.ClientLogsDir,
			LauncherLogsDir:  snapshot.Paths.LauncherLogsDir,
			ClientExecutable: snapshot.Paths.ClientExecutable,
		},
		Accounts: make([]accountSchema, 0, len(snapshot.Accounts)),
	}

	for _, account := range snapshot.Accounts {
		file.Accounts = append(file.Accounts, accountSchema{
			ID:                 string(account.ID),
			Username:           account.Username,
			EncryptedPassword:  account.EncryptedPassword,
			RiotAccountID:      account.RiotAccountID,
			GameName:           account.GameName,
			TagLine:            account.TagLine,
			LowPriorityMinutes: copyIntPtr(account.LowPriorityMinutes),
			LockoutUntil:       formatTime(account.LockoutUntil),
			DisplayOrder:       account.DisplayOrder,
			Tag:                string(account.Tag),
		})
	}

	return file
}

func fromSchema(file fileSchema) domain.Snapshot {
	snapshot := domain.Snapshot{
		Paths: domain.PathSettings{
			ClientLogsDir:    file.Paths.ClientLogsDir,
			LauncherLogsDir:  file.Paths.LauncherLogsDir,
			ClientExecutable: file.Paths.ClientExecutable,
		},
		Accounts: make([]domain.Account, 0, len(file.Accounts)),
	}

	for _, entry := range file.Accounts {
		tag := domain.AccountTag(entry.Tag)
		if !tag.Valid() {
			tag = domain.TagNone
		}

		snapshot.Accounts = append(snapshot.Accounts, domain.Account{
			ID:                 domain.AccountID(entry.ID),
			Username:           entry.Username,
			EncryptedPassword:  entry.EncryptedPassword,
			RiotAccountID:      entry.RiotAccountID,
			GameName:           entry.GameName,
			TagLine:            entry.TagLine,
			LowPriorityMinutes: copyIntPtr(entry.LowPriorityMinutes),
			LockoutUntil:       parseTime(entry.LockoutUntil),
			DisplayOrder:       entry.DisplayOrder,
			Tag:                tag,
		})
	}

	return snapshot
}

func copyIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}

func parseTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}

	return &parsed
}

func formatTime(value *time.Time) string {
	if value == nil {
		return ""
	}

	return value.Format(time.RFC3339)
}
