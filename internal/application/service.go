// Package application wires the domain to its ports: snapshot persistence,
// credential encryption, client launching and log scanning. Commands talk to
// these services and never touch adapters directly.
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/ports"
)

// Status is one row of account state as presented to the user, with the
// time-dependent fields already resolved against the current clock.
type Status struct {
	Account            domain.Account
	RiotID             string
	LowPriorityMinutes int
	LockoutRemaining   string
}

// Service covers account book-keeping: the roster, path settings and the
// presentation-ready status rows.
type Service struct {
	store  ports.SnapshotStore
	codec  ports.SecretCodec
	clock  ports.Clock
	logger *slog.Logger
}

func NewService(store ports.SnapshotStore, codec ports.SecretCodec, clock ports.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, codec: codec, clock: clock, logger: logger}
}

// AddAccount stores a new account with an encrypted credential at the end of
// the display order. Usernames are unique within the snapshot.
func (s *Service) AddAccount(ctx context.Context, username, password string) (domain.Account, error) {
	if username == "" {
		return domain.Account{}, fmt.Errorf("username must not be empty")
	}

	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return domain.Account{}, fmt.Errorf("load snapshot: %w", err)
	}
	if snapshot.FindByUsername(username) >= 0 {
		return domain.Account{}, fmt.Errorf("account %q: %w", username, domain.ErrAccountExists)
	}

	blob, err := s.codec.Encrypt(ctx, password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("encrypt credential: %w", err)
	}

	account := domain.Account{
		ID:                domain.AccountID(uuid.NewString()),
		Username:          username,
		EncryptedPassword: blob,
	}
	snapshot.Append(account)

	if err := s.store.Save(ctx, snapshot); err != nil {
		return domain.Account{}, fmt.Errorf("save snapshot: %w", err)
	}

	s.logger.Info("account added", "username", username, "id", account.ID)
	return snapshot.Accounts[len(snapshot.Accounts)-1], nil
}

// RemoveAccount deletes the referenced account and compacts display orders.
func (s *Service) RemoveAccount(ctx context.Context, ref string) error {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	idx := resolve(&snapshot, ref)
	if idx < 0 {
		return fmt.Errorf("account %q: %w", ref, domain.ErrAccountNotFound)
	}

	id := snapshot.Accounts[idx].ID
	snapshot.Remove(id)

	if err := s.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	s.logger.Info("account removed", "ref", ref, "id", id)
	return nil
}

// RenameAccount changes the login username. The detected Riot identity is
// untouched; it belongs to the account, not to the credential.
func (s *Service) RenameAccount(ctx context.Context, ref, newUsername string) error {
	if newUsername == "" {
		return fmt.Errorf("new username must not be empty")
	}

	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	idx := resolve(&snapshot, ref)
	if idx < 0 {
		return fmt.Errorf("account %q: %w", ref, domain.ErrAccountNotFound)
	}
	if other := snapshot.FindByUsername(newUsername); other >= 0 && other != idx {
		return fmt.Errorf("account %q: %w", newUsername, domain.ErrAccountExists)
	}

	snapshot.Accounts[idx].Username = newUsername

	return s.store.Save(ctx, snapshot)
}

// SetPassword replaces the stored credential for the referenced account.
func (s *Service) SetPassword(ctx context.Context, ref, password string) error {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	idx := resolve(&snapshot, ref)
	if idx < 0 {
		return fmt.Errorf("account %q: %w", ref, domain.ErrAccountNotFound)
	}

	blob, err := s.codec.Encrypt(ctx, password)
	if err != nil {
		return fmt.Errorf("encrypt credential: %w", err)
	}
	snapshot.Accounts[idx].EncryptedPassword = blob

	return s.store.Save(ctx, snapshot)
}

// SetTag assigns or clears the visual marker on an account.
func (s *Service) SetTag(ctx context.Context, ref string, tag domain.AccountTag) error {
	if !tag.Valid() {
		return fmt.Errorf("unknown tag %q", tag)
	}

	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	idx := resolve(&snapshot, ref)
	if idx < 0 {
		return fmt.Errorf("account %q: %w", ref, domain.ErrAccountNotFound)
	}
	snapshot.Accounts[idx].Tag = tag

	return s.store.Save(ctx, snapshot)
}

// MoveAccount repositions the referenced account in the display order. Out of
// range positions clamp to the ends.
func (s *Service) MoveAccount(ctx context.Context, ref string, position int) error {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	idx := resolve(&snapshot, ref)
	if idx < 0 {
		return fmt.Errorf("account %q: %w", ref, domain.ErrAccountNotFound)
	}
	snapshot.Move(snapshot.Accounts[idx].ID, position)

	return s.store.Save(ctx, snapshot)
}

// ListStatuses returns one presentation-ready row per account in display
// order, with lockout countdowns resolved against the current time.
func (s *Service) ListStatuses(ctx context.Context) ([]Status, error) {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	now := s.clock.Now()
	accounts := snapshot.SortedByDisplayOrder()
	statuses := make([]Status, 0, len(accounts))
	for _, account := range accounts {
		status := Status{
			Account:          account,
			RiotID:           account.FullRiotID(),
			LockoutRemaining: account.LockoutRemaining(now),
		}
		if account.LowPriorityMinutes != nil {
			status.LowPriorityMinutes = *account.LowPriorityMinutes
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Paths returns the configured log and executable locations.
func (s *Service) Paths(ctx context.Context) (domain.PathSettings, error) {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return domain.PathSettings{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snapshot.Paths, nil
}

// SetPaths updates the stored path settings. Empty arguments leave the
// corresponding setting unchanged.
func (s *Service) SetPaths(ctx context.Context, clientLogsDir, launcherLogsDir, clientExecutable string) (domain.PathSettings, error) {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return domain.PathSettings{}, fmt.Errorf("load snapshot: %w", err)
	}

	if clientLogsDir != "" {
		snapshot.Paths.ClientLogsDir = clientLogsDir
	}
	if launcherLogsDir != "" {
		snapshot.Paths.LauncherLogsDir = launcherLogsDir
	}
	if clientExecutable != "" {
		snapshot.Paths.ClientExecutable = clientExecutable
	}

	if err := s.store.Save(ctx, snapshot); err != nil {
		return domain.PathSettings{}, fmt.Errorf("save snapshot: %w", err)
	}
	return snapshot.Paths, nil
}

// resolve finds an account by id first, then by username.
func resolve(snapshot *domain.Snapshot, ref string) int {
	if idx := snapshot.FindByID(domain.AccountID(ref)); idx >= 0 {
		return idx
	}
	return snapshot.FindByUsername(ref)
}
