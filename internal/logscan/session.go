package logscan

import (
	"github.com/bnema/riot-accounts-cli/internal/domain"
	"github.com/bnema/riot-accounts-cli/internal/ports"
)

// SessionTracker captures a session window immediately before a login
// attempt launches the client. The window is a plain value the caller hands
// to detection; concurrent login flows each get their own.
type SessionTracker struct {
	clock ports.Clock
}

func NewSessionTracker(clock ports.Clock) SessionTracker {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return SessionTracker{clock: clock}
}

// Capture records the session start time and, when a tracing file already
// exists, its path and current length. A previous session's client may
// still be writing that file; detection uses the reference to tell "same
// file, no new data" apart from genuinely new output.
func (t SessionTracker) Capture(clientLogsDir string) domain.SessionWindow {
	window := domain.SessionWindow{StartedAt: t.clock.Now()}

	newest := ListCandidates(CandidateQuery{
		Dirs:         []string{clientLogsDir},
		NameContains: TracingFileHint,
		Limit:        1,
	})
	if len(newest) > 0 {
		window.ReferenceFile = newest[0].Path
		window.ReferenceLength = newest[0].Size
	}

	return window
}
