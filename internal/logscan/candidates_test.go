package logscan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFileAt(t *testing.T, dir, name, content string, mtime time.Time) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestListCandidatesSortsNewestFirstAndCaps(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	writeFileAt(t, dir, "a.log", "a", base)
	writeFileAt(t, dir, "b.log", "b", base.Add(2*time.Minute))
	writeFileAt(t, dir, "c.log", "c", base.Add(1*time.Minute))

	got := ListCandidates(CandidateQuery{Dirs: []string{dir}, Limit: 2})

	require.Len(t, got, 2)
	assert.Equal(t, "b.log", got[0].Name)
	assert.Equal(t, "c.log", got[1].Name)
}

func TestListCandidatesFiltersBySubstringAndMtime(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	writeFileAt(t, dir, "LeagueClient-tracing.json", "x", base.Add(time.Minute))
	writeFileAt(t, dir, "old-LeagueClient-tracing.json", "x", base.Add(-time.Hour))
	writeFileAt(t, dir, "renderer.log", "x", base.Add(time.Minute))

	got := ListCandidates(CandidateQuery{
		Dirs:          []string{dir},
		NameContains:  "LeagueClient-tracing.json",
		ModifiedAfter: base,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "LeagueClient-tracing.json", got[0].Name)
}

func TestListCandidatesAbsentDirectoryIsEmptyNotError(t *testing.T) {
	t.Parallel()

	got := ListCandidates(CandidateQuery{
		Dirs: []string{filepath.Join(t.TempDir(), "does", "not", "exist")},
	})

	assert.Empty(t, got)
}

func TestListCandidatesMergesMultipleDirectories(t *testing.T) {
	t.Parallel()

	dirA := t.TempDir()
	dirB := t.TempDir()
	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	writeFileAt(t, dirA, "one.log", "x", base)
	writeFileAt(t, dirB, "two.log", "x", base.Add(time.Minute))

	got := ListCandidates(CandidateQuery{Dirs: []string{dirA, dirB}})

	require.Len(t, got, 2)
	assert.Equal(t, "two.log", got[0].Name)
}
