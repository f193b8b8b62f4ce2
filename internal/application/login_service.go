package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/ports"
)

// identityDetector matches the log scanner's identity detection surface.
type identityDetector interface {
	Detect(ctx context.Context, account *domain.Account, clientLogsDir string, window domain.SessionWindow) (bool, string)
}

// penaltyReconciler matches the log scanner's penalty reconciliation surface.
type penaltyReconciler interface {
	Reconcile(ctx context.Context, accounts []*domain.Account, launcherLogsDir string)
}

// sessionTracker captures a session window before the client launches.
type sessionTracker interface {
	Capture(clientLogsDir string) domain.SessionWindow
}

// DetectionPolicy bounds the identity polling loop that runs after a login
// launch. The client needs a moment to write its tracing file, so detection
// retries on a fixed delay instead of failing on the first empty scan.
type DetectionPolicy struct {
	Attempts int
	Delay    time.Duration
}

const (
	defaultDetectAttempts = 5
	defaultDetectDelay    = 4 * time.Second
)

func (p DetectionPolicy) withDefaults() DetectionPolicy {
	if p.Attempts <= 0 {
		p.Attempts = defaultDetectAttempts
	}
	if p.Delay <= 0 {
		p.Delay = defaultDetectDelay
	}
	return p
}

// LoginResult reports what a login attempt accomplished beyond starting the
// client. Detected is false both when the account was already identified and
// when every polling attempt came up empty; Trace carries the scanner's
// explanation either way.
type LoginResult struct {
	Account  domain.Account
	Detected bool
	Trace    string
}

// LoginService runs the login flow: decrypt the credential, capture the
// session window, start the client, then poll the logs to identify the
// account and reconcile penalties.
type LoginService struct {
	store      ports.SnapshotStore
	codec      ports.SecretCodec
	launcher   ports.ClientLauncher
	detector   identityDetector
	reconciler penaltyReconciler
	tracker    sessionTracker
	clock      ports.Clock
	policy     DetectionPolicy
	logger     *slog.Logger
}

func NewLoginService(
	store ports.SnapshotStore,
	codec ports.SecretCodec,
	launcher ports.ClientLauncher,
	detector identityDetector,
	reconciler penaltyReconciler,
	tracker sessionTracker,
	clock ports.Clock,
	policy DetectionPolicy,
	logger *slog.Logger,
) *LoginService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoginService{
		store:      store,
		codec:      codec,
		launcher:   launcher,
		detector:   detector,
		reconciler: reconciler,
		tracker:    tracker,
		clock:      clock,
		policy:     policy.withDefaults(),
		logger:     logger,
	}
}

// Login starts the client for the referenced account and scrapes the logs it
// produces. A credential that no longer decrypts degrades to an empty
// password rather than blocking the launch; scan or save failures are logged
// and do not undo a successful launch.
func (s *LoginService) Login(ctx context.Context, ref string) (LoginResult, error) {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return LoginResult{}, fmt.Errorf("load snapshot: %w", err)
	}

	idx := resolve(&snapshot, ref)
	if idx < 0 {
		return LoginResult{}, fmt.Errorf("account %q: %w", ref, domain.ErrAccountNotFound)
	}
	account := &snapshot.Accounts[idx]

	password, err := s.codec.Decrypt(ctx, account.EncryptedPassword)
	if err != nil {
		if ctx.Err() != nil {
			return LoginResult{}, ctx.Err()
		}
		s.logger.Warn("credential decrypt failed, launching without password",
			"username", account.Username, "error", err)
		password = ""
	}

	window := s.tracker.Capture(snapshot.Paths.ClientLogsDir)

	if err := s.launcher.Launch(ctx, snapshot.Paths.ClientExecutable, account.Username, password); err != nil {
		return LoginResult{}, fmt.Errorf("launch client: %w", err)
	}

	result := LoginResult{}
	result.Detected, result.Trace = s.pollIdentity(ctx, account, snapshot.Paths.ClientLogsDir, window)

	s.reconcileAll(ctx, &snapshot)

	if err := s.store.Save(ctx, snapshot); err != nil {
		s.logger.Error("snapshot save after login failed", "error", err)
	}

	result.Account = snapshot.Accounts[idx]
	return result, nil
}

// LaunchClient starts the client without touching any stored account.
func (s *LoginService) LaunchClient(ctx context.Context) error {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	return s.launcher.Launch(ctx, snapshot.Paths.ClientExecutable, "", "")
}

// Sync reconciles every account against the launcher logs without starting
// the client, then persists whatever changed. Startup runs this before the
// first status render.
func (s *LoginService) Sync(ctx context.Context) ([]domain.Account, error) {
	snapshot, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	s.reconcileAll(ctx, &snapshot)

	if err := s.store.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return snapshot.SortedByDisplayOrder(), nil
}

// pollIdentity retries detection on a fixed delay while the client warms up.
// An already identified account is left alone.
func (s *LoginService) pollIdentity(ctx context.Context, account *domain.Account, clientLogsDir string, window domain.SessionWindow) (bool, string) {
	if account.RiotAccountID != "" && account.GameName != "" {
		return false, "identity already known"
	}

	trace := ""
	for attempt := 1; attempt <= s.policy.Attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return false, trace
			case <-time.After(s.policy.Delay):
			}
		}

		var detected bool
		detected, trace = s.detector.Detect(ctx, account, clientLogsDir, window)
		if detected {
			s.logger.Info("identity detected",
				"username", account.Username, "riot_id", account.FullRiotID(), "attempt", attempt)
			return true, trace
		}
		if ctx.Err() != nil {
			return false, trace
		}
	}

	s.logger.Info("identity not detected", "username", account.Username, "attempts", s.policy.Attempts)
	return false, trace
}

func (s *LoginService) reconcileAll(ctx context.Context, snapshot *domain.Snapshot) {
	refs := make([]*domain.Account, len(snapshot.Accounts))
	for i := range snapshot.Accounts {
		refs[i] = &snapshot.Accounts[i]
	}
	s.reconciler.Reconcile(ctx, refs, snapshot.Paths.LauncherLogsDir)

	now := s.clock.Now()
	for i := range snapshot.Accounts {
		if snapshot.Accounts[i].ClearExpiredLockout(now) {
			s.logger.Debug("expired lockout cleared", "username", snapshot.Accounts[i].Username)
		}
	}
}
