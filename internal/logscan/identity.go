package logscan

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bnema/riot-accounts-cli/internal/domain"
)

const (
	// TracingFileHint is the substring identifying the client's identity
	// tracing files.
	TracingFileHint = "LeagueClient-tracing.json"

	defaultIdentityMaxFiles = 3
)

// IdentityDetector resolves an account's external identity (accountId,
// gameName, tagLine) from the client's tracing logs, scoped to the current
// login session window.
type IdentityDetector struct {
	extractor FieldExtractor
	reader    Reader
	logger    *slog.Logger
	maxFiles  int
	fileHint  string
}

func NewIdentityDetector(extractor FieldExtractor, reader Reader, logger *slog.Logger) *IdentityDetector {
	if extractor == nil {
		extractor = RegexExtractor{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &IdentityDetector{
		extractor: extractor,
		reader:    reader,
		logger:    logger,
		maxFiles:  defaultIdentityMaxFiles,
		fileHint:  TracingFileHint,
	}
}

// Detect scans the newest tracing files for the account's identity and
// writes it into the account on success. The returned trace describes every
// file checked and why it was rejected; it is diagnostic text, not a
// machine-readable result. The account is only mutated on a match.
func (d *IdentityDetector) Detect(ctx context.Context, account *domain.Account, clientLogsDir string, window domain.SessionWindow) (bool, string) {
	var trace strings.Builder

	query := CandidateQuery{
		Dirs:         []string{clientLogsDir},
		NameContains: d.fileHint,
		Limit:        d.maxFiles,
	}
	if window.Active() {
		query.ModifiedAfter = window.StartedAt
	}

	candidates := ListCandidates(query)
	if len(candidates) == 0 && window.Active() {
		// Log flushing can lag the session start; fall back to the full
		// listing rather than failing outright.
		trace.WriteString("no tracing files newer than session start, falling back to full listing\n")
		query.ModifiedAfter = time.Time{}
		candidates = ListCandidates(query)
	}
	if len(candidates) == 0 {
		trace.WriteString(fmt.Sprintf("no %s files in %s\n", d.fileHint, clientLogsDir))
		return false, trace.String()
	}

	fmt.Fprintf(&trace, "checking %d tracing file(s)\n", len(candidates))

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(&trace, "canceled: %v\n", err)
			return false, trace.String()
		}

		fmt.Fprintf(&trace, "reading %s (modified %s, %d bytes)\n",
			candidate.Name, candidate.ModTime.Format("15:04:05"), candidate.Size)

		if window.IsStaleReference(candidate.Path, candidate.Size) {
			trace.WriteString("  skipped: previous session's log, no new data appended\n")
			continue
		}

		content, err := d.reader.ReadShared(ctx, candidate.Path)
		if err != nil {
			fmt.Fprintf(&trace, "  skipped: %v\n", err)
			continue
		}

		if d.scanContent(content, account, &trace) {
			d.logger.Info("account identity detected",
				"username", account.Username,
				"riot_account_id", account.RiotAccountID,
				"riot_id", account.FullRiotID(),
				"file", candidate.Name)
			return true, trace.String()
		}
	}

	trace.WriteString("no identity match in any candidate file\n")
	return false, trace.String()
}

// scanContent walks the file's identity matches backward from the most
// recent position, so a freshly logged-in identity wins over stale ones
// still present earlier in the same file.
func (d *IdentityDetector) scanContent(content string, account *domain.Account, trace *strings.Builder) bool {
	matches := d.extractor.Identities(content)
	if len(matches) == 0 {
		trace.WriteString("  accountId not found\n")
		return false
	}

	for i := len(matches) - 1; i >= 0; i-- {
		match := matches[i]

		if match.GameName == "" {
			trace.WriteString("  gameName not found near accountId\n")
			continue
		}
		if !domain.ValidRiotAccountID(match.AccountID) {
			fmt.Fprintf(trace, "  invalid accountId %q\n", match.AccountID)
			continue
		}
		if !domain.ValidGameName(match.GameName) {
			fmt.Fprintf(trace, "  invalid gameName %q\n", match.GameName)
			continue
		}

		if account.RiotAccountID != "" && account.RiotAccountID != match.AccountID {
			// A different id in this file means it belongs to another
			// login; abandon the file rather than risk cross-account data.
			fmt.Fprintf(trace, "  conflict: stored accountId %s, found %s\n",
				account.RiotAccountID, match.AccountID)
			return false
		}

		account.RiotAccountID = match.AccountID
		account.GameName = match.GameName
		if match.TagLine != "" {
			account.TagLine = match.TagLine
		}

		fmt.Fprintf(trace, "  matched accountId %s, gameName %s", match.AccountID, match.GameName)
		if match.TagLine != "" {
			fmt.Fprintf(trace, ", tagLine %s", match.TagLine)
		}
		trace.WriteString("\n")
		return true
	}

	return false
}
