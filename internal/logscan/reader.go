package logscan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
)

const (
	defaultReadAttempts = 5
	defaultReadBackoff  = 500 * time.Millisecond
)

// Reader reads log files that another process may hold open for writing.
// Opens are shared-access; transient lock contention is retried with a fixed
// backoff before giving up with domain.ErrFileLocked.
type Reader struct {
	attempts int
	backoff  time.Duration
	logger   *slog.Logger
}

func NewReader(attempts int, backoff time.Duration, logger *slog.Logger) Reader {
	if attempts <= 0 {
		attempts = defaultReadAttempts
	}
	if backoff <= 0 {
		backoff = defaultReadBackoff
	}
	if logger == nil {
		logger = slog.Default()
	}

	return Reader{attempts: attempts, backoff: backoff, logger: logger}
}

// ReadShared returns the full file content as text. The producer appends
// while we read; a snapshot that misses the final partial line is fine
// because callers re-poll.
func (r Reader) ReadShared(ctx context.Context, path string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= r.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
		if os.IsNotExist(err) {
			return "", err
		}

		lastErr = err
		if attempt < r.attempts {
			r.logger.Warn("log file busy, retrying",
				"path", path,
				"attempt", attempt,
				"max_attempts", r.attempts,
				"error", err)

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(r.backoff):
			}
		}
	}

	return "", fmt.Errorf("read %s after %d attempts: %w: %w", path, r.attempts, domain.ErrFileLocked, lastErr)
}
