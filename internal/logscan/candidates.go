// Package logscan reconciles the game client's transient diagnostic logs
// into durable account state: session-scoped identity detection and penalty
// extraction with conflict-resolution rules that tolerate rotation, file
// locks and stale data.
package logscan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Candidate is a log file eligible for scanning.
type Candidate struct {
	Path    string
	Name    string
	ModTime time.Time
	Size    int64
}

// CandidateQuery narrows a directory listing to the files worth reading.
type CandidateQuery struct {
	// Dirs are searched non-recursively, in order. Absent directories are
	// skipped; they are a normal "nothing to search yet" condition.
	Dirs []string
	// ModifiedAfter excludes files last written before this instant when set.
	ModifiedAfter time.Time
	// NameContains filters by filename substring when non-empty.
	NameContains string
	// Limit caps the result after sorting newest-first. Zero means no cap.
	Limit int
}

// ListCandidates returns matching files sorted descending by modification
// time and truncated to the query limit. It never returns an error: an
// unreadable or missing directory contributes nothing.
func ListCandidates(query CandidateQuery) []Candidate {
	var candidates []Candidate

	for _, dir := range query.Dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if query.NameContains != "" && !strings.Contains(entry.Name(), query.NameContains) {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				continue
			}
			if !query.ModifiedAfter.IsZero() && info.ModTime().Before(query.ModifiedAfter) {
				continue
			}

			candidates = append(candidates, Candidate{
				Path:    filepath.Join(dir, entry.Name()),
				Name:    entry.Name(),
				ModTime: info.ModTime(),
				Size:    info.Size(),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ModTime.After(candidates[j].ModTime)
	})

	if query.Limit > 0 && len(candidates) > query.Limit {
		candidates = candidates[:query.Limit]
	}

	return candidates
}
