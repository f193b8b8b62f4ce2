package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
)

type fakeStore struct {
	snapshot  domain.Snapshot
	loadErr   error
	saveErr   error
	saveCalls int
}

func (f *fakeStore) Load(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	if f.loadErr != nil {
		return domain.Snapshot{}, f.loadErr
	}

	accounts := make([]domain.Account, len(f.snapshot.Accounts))
	copy(accounts, f.snapshot.Accounts)
	return domain.Snapshot{Accounts: accounts, Paths: f.snapshot.Paths}, nil
}

func (f *fakeStore) Save(_ context.Context, snapshot domain.Snapshot) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saveCalls++
	f.snapshot = snapshot
	return nil
}

// fakeCodec prefixes plaintext with "enc:". Blobs without the prefix fail to
// decrypt, mimicking a lost key.
type fakeCodec struct{}

func (fakeCodec) Encrypt(ctx context.Context, plaintext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if plaintext == "" {
		return "", nil
	}
	return "enc:" + plaintext, nil
}

func (fakeCodec) Decrypt(ctx context.Context, blob string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if blob == "" {
		return "", nil
	}
	if !strings.HasPrefix(blob, "enc:") {
		return "", errors.New("unknown blob format")
	}
	return strings.TrimPrefix(blob, "enc:"), nil
}

type launchCall struct {
	Executable string
	Username   string
	Password   string
}

type fakeLauncher struct {
	calls []launchCall
	err   error
}

func (f *fakeLauncher) Launch(_ context.Context, executable, username, password string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, launchCall{Executable: executable, Username: username, Password: password})
	return nil
}

// fakeDetector succeeds on the configured attempt, stamping the identity the
// way the real detector does.
type fakeDetector struct {
	succeedOn     int
	calls         int
	riotAccountID string
	gameName      string
	tagLine       string
}

func (f *fakeDetector) Detect(_ context.Context, account *domain.Account, _ string, _ domain.SessionWindow) (bool, string) {
	f.calls++
	if f.succeedOn == 0 || f.calls < f.succeedOn {
		return false, "no identity found"
	}
	account.RiotAccountID = f.riotAccountID
	account.GameName = f.gameName
	account.TagLine = f.tagLine
	return true, "identity detected"
}

// fakeReconciler applies a fixed set of penalties keyed by Riot account id.
type fakeReconciler struct {
	calls       int
	lowPriority map[string]int
	lockouts    map[string]time.Time
}

func (f *fakeReconciler) Reconcile(_ context.Context, accounts []*domain.Account, _ string) {
	f.calls++
	for _, account := range accounts {
		if minutes, ok := f.lowPriority[account.RiotAccountID]; ok {
			account.ApplyLowPriority(minutes)
		}
		if until, ok := f.lockouts[account.RiotAccountID]; ok {
			account.ApplyLockout(until)
		}
	}
}

type fakeTracker struct {
	window domain.SessionWindow
}

func (f *fakeTracker) Capture(string) domain.SessionWindow {
	return f.window
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
