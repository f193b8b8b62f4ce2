package logscan

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/ports"
)

const (
	// LauncherLogHint is the substring identifying the launcher's plain-text
	// log files that carry penalty events.
	LauncherLogHint = "Riot Client.log"

	defaultPenaltyMaxFiles = 5

	// penaltyContextRadius bounds the text window searched around an
	// accountId mention for penalty markers.
	penaltyContextRadius = 500
)

// PenaltyReconciler scans recent launcher logs for penalty events and merges
// them into every tracked account whose accountId appears. Unlike identity
// detection it is not session-scoped: penalties must be discoverable outside
// an active login flow.
type PenaltyReconciler struct {
	extractor FieldExtractor
	reader    Reader
	clock     ports.Clock
	logger    *slog.Logger
	maxFiles  int
	fileHint  string
}

func NewPenaltyReconciler(extractor FieldExtractor, reader Reader, clock ports.Clock, logger *slog.Logger) *PenaltyReconciler {
	if extractor == nil {
		extractor = RegexExtractor{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PenaltyReconciler{
		extractor: extractor,
		reader:    reader,
		clock:     clock,
		logger:    logger,
		maxFiles:  defaultPenaltyMaxFiles,
		fileHint:  LauncherLogHint,
	}
}

// Reconcile updates the accounts in place. Individual file failures are
// logged and skipped; an absent directory is a no-op.
func (r *PenaltyReconciler) Reconcile(ctx context.Context, accounts []*domain.Account, launcherLogsDir string) {
	byID := make(map[string]*domain.Account, len(accounts))
	for _, account := range accounts {
		// Penalties cannot be attributed without a detected accountId.
		if account.RiotAccountID != "" {
			byID[account.RiotAccountID] = account
		}
	}
	if len(byID) == 0 {
		r.logger.Debug("no accounts with a detected accountId, skipping penalty scan")
		return
	}

	candidates := ListCandidates(CandidateQuery{
		Dirs:         []string{launcherLogsDir},
		NameContains: r.fileHint,
		Limit:        r.maxFiles,
	})

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			return
		}

		content, err := r.reader.ReadShared(ctx, candidate.Path)
		if err != nil {
			r.logger.Warn("skipping unreadable launcher log",
				"file", candidate.Name, "error", err)
			continue
		}

		r.scanFile(content, byID)
	}
}

// scanFile processes each distinct account id at most once per file; a busy
// log mentions the same id many times and re-merging is redundant.
func (r *PenaltyReconciler) scanFile(content string, byID map[string]*domain.Account) {
	processed := make(map[string]struct{})

	for _, mention := range r.extractor.AccountIDs(content) {
		account, ok := byID[mention.AccountID]
		if !ok {
			continue
		}
		if _, done := processed[mention.AccountID]; done {
			continue
		}
		processed[mention.AccountID] = struct{}{}

		r.mergeMentions(content, mention.AccountID, account)
	}
}

// mergeMentions inspects the context window around every mention of the
// account's id and applies whichever penalty markers appear there.
func (r *PenaltyReconciler) mergeMentions(content, accountID string, account *domain.Account) {
	for _, mention := range r.extractor.AccountIDs(content) {
		if mention.AccountID != accountID {
			continue
		}

		window := windowAround(content, mention.Offset, penaltyContextRadius)

		if millis, ok := r.extractor.LowPriorityMillis(window); ok {
			minutes := int(math.Ceil(float64(millis) / 60_000))
			before := account.LowPriorityMinutes
			account.ApplyLowPriority(minutes)
			if before == nil || account.LowPriorityMinutes == nil || *before != minutes {
				r.logger.Info("low-priority queue updated",
					"riot_account_id", accountID,
					"minutes", minutes)
			}
		}

		if millis, ok := r.extractor.LockoutMillis(window); ok {
			until := r.clock.Now().Add(time.Duration(millis) * time.Millisecond)
			if account.ApplyLockout(until) {
				r.logger.Info("queue lockout extended",
					"riot_account_id", accountID,
					"until", until)
			}
		}
	}
}
