package domain

import "time"

// SessionWindow scopes identity detection to files produced by the current
// login attempt. It is an explicit value handed to the detector; there is no
// process-global login state.
type SessionWindow struct {
	// StartedAt is when the login attempt began. Candidate files modified
	// before this instant belong to a previous session.
	StartedAt time.Time

	// ReferenceFile and ReferenceLength record the newest tracing file and
	// its size just before the client was launched. A candidate matching the
	// reference path whose length has not grown is the previous session's
	// still-open log, not new data.
	ReferenceFile   string
	ReferenceLength int64
}

// Active reports whether the window constrains detection at all.
func (w SessionWindow) Active() bool {
	return !w.StartedAt.IsZero()
}

// IsStaleReference reports whether the candidate path is the pre-login
// reference file with no new bytes appended since the window was captured.
func (w SessionWindow) IsStaleReference(path string, length int64) bool {
	return w.ReferenceFile != "" && path == w.ReferenceFile && length <= w.ReferenceLength
}
