package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	launcheradapter "github.com/bnema/riot-accounts-cli/internal/adapters/launcher/exec"
	statusadapter "github.com/bnema/riot-accounts-cli/internal/adapters/render/status"
	chaincodec "github.com/bnema/riot-accounts-cli/internal/adapters/secrets/chain"
	tomlstore "github.com/bnema/riot-accounts-cli/internal/adapters/store/toml"
	"github.com/bnema/riot-accounts-cli/internal/application"
	"github.com/bnema/riot-accounts-cli/internal/logscan"
	"github.com/bnema/riot-accounts-cli/internal/ports"
)

const (
	secretKeyFileName = "secret.key"
	configDirName     = ".riotaccounts"

	readAttemptsKey   = "scan.read_attempts"
	readBackoffKey    = "scan.read_backoff"
	detectAttemptsKey = "detect.attempts"
	detectDelayKey    = "detect.delay"
)

type app struct {
	accounts       *application.Service
	login          *application.LoginService
	transfer       *application.TransferService
	statusRenderer func([]application.Status, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
	logger         *slog.Logger
}

func wireApp() (*app, error) {
	logger := newLogger()
	clock := ports.SystemClock{}

	cfg := viper.New()
	cfg.SetDefault(readAttemptsKey, 0)
	cfg.SetDefault(readBackoffKey, time.Duration(0))
	cfg.SetDefault(detectAttemptsKey, 0)
	cfg.SetDefault(detectDelayKey, time.Duration(0))

	store, err := tomlstore.NewStore(cfg, logger, clock)
	if err != nil {
		return nil, fmt.Errorf("wire snapshot store: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	codec, err := chaincodec.NewAESFirstWithPlainFallback(filepath.Join(homeDir, configDirName, secretKeyFileName))
	if err != nil {
		return nil, fmt.Errorf("wire secret codec chain: %w", err)
	}

	reader := logscan.NewReader(cfg.GetInt(readAttemptsKey), cfg.GetDuration(readBackoffKey), logger)
	extractor := logscan.RegexExtractor{}
	detector := logscan.NewIdentityDetector(extractor, reader, logger)
	reconciler := logscan.NewPenaltyReconciler(extractor, reader, clock, logger)
	tracker := logscan.NewSessionTracker(clock)
	launcher := launcheradapter.NewLauncher(logger)

	policy := application.DetectionPolicy{
		Attempts: cfg.GetInt(detectAttemptsKey),
		Delay:    cfg.GetDuration(detectDelayKey),
	}

	return &app{
		accounts:       application.NewService(store, codec, clock, logger),
		login:          application.NewLoginService(store, codec, launcher, detector, reconciler, tracker, clock, policy, logger),
		transfer:       application.NewTransferService(store, codec, clock, logger),
		statusRenderer: statusadapter.Render,
		now:            time.Now,
		logger:         logger,
	}, nil
}

// newLogger writes to stderr so command output on stdout stays scriptable.
// RA_DEBUG turns on debug-level records.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("RA_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
