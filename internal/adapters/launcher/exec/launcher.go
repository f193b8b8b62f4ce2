// Package exec starts the game client process. Credential entry into the
// client's login form happens outside this module; the launcher only gets
// the process running and passes the username as a convenience for
// automation layered on top.
package exec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/bnema/riot-accounts-cli/internal/ports"
)

var ErrNoClientExecutable = errors.New("client executable is not configured")

type Launcher struct {
	logger *slog.Logger
}

var _ ports.ClientLauncher = (*Launcher)(nil)

func NewLauncher(logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{logger: logger}
}

func (l *Launcher) Launch(ctx context.Context, executable string, username, _ string) error {
	if executable == "" {
		return ErrNoClientExecutable
	}

	child := exec.CommandContext(ctx, executable)

	if err := child.Start(); err != nil {
		return fmt.Errorf("start client %s: %w", executable, err)
	}

	l.logger.Info("client launched", "executable", executable, "username", username, "pid", child.Process.Pid)

	// The client outlives us; reap it in the background so a long-running
	// invocation does not leak a zombie.
	go func() { _ = child.Wait() }()

	return nil
}
