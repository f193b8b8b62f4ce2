package logscan

import (
	"regexp"
	"strconv"
)

// IdentityMatch is one accountId occurrence with whatever display identity
// could be paired with it from the surrounding text.
type IdentityMatch struct {
	Offset    int
	AccountID string
	GameName  string
	TagLine   string
}

// IDMention is a bare accountId occurrence, used for penalty attribution.
type IDMention struct {
	Offset    int
	AccountID string
}

// FieldExtractor pulls identity and penalty fields out of semi-structured
// log text. The producer's format is not a contract; implementations must
// tolerate both raw and backslash-escaped JSON quoting. Keeping this behind
// an interface lets a structured parser replace the regex one without
// touching reconciliation logic.
type FieldExtractor interface {
	// Identities returns every accountId occurrence in document order,
	// paired with the gameName (and optional tagLine) found within the
	// pairing radius. Occurrences with no nearby gameName are returned with
	// an empty GameName so callers can report why they were rejected.
	Identities(content string) []IdentityMatch

	// AccountIDs returns every accountId occurrence in document order.
	AccountIDs(content string) []IDMention

	// LowPriorityMillis extracts the remaining low-priority-queue duration
	// from a penalty event window, in milliseconds.
	LowPriorityMillis(window string) (int64, bool)

	// LockoutMillis extracts the remaining queue-lockout duration from a
	// penalty event window, in milliseconds.
	LockoutMillis(window string) (int64, bool)
}

// Pattern vocabulary. These must match the producer's output bit-for-bit;
// the \\? prefixes tolerate JSON that was embedded and escaped inside an
// outer JSON string.
var (
	accountIDPattern   = regexp.MustCompile(`(?i)\\?"accountId\\?"\s*:\s*(\d+)`)
	gameNamePattern    = regexp.MustCompile(`(?i)\\?"gameName\\?"\s*:\s*\\?"([^\\"]+)\\?"`)
	tagLinePattern     = regexp.MustCompile(`(?i)\\?"tagLine\\?"\s*:\s*\\?"([^\\"]+)\\?"`)
	lowPriorityPattern = regexp.MustCompile(`LEAVER_BUSTED\\?"[,\s]*\\?"remainingMillis\\?"[:\s]*(\d+)`)
	lockoutPattern     = regexp.MustCompile(`LEAVER_BUSTER_QUEUE_LOCKOUT\\?"[,\s]*\\?"remainingMillis\\?"[:\s]*(\d+)`)
)

// identityPairRadius bounds how far an accountId and its display name may
// sit apart in the same logged payload.
const identityPairRadius = 2000

type RegexExtractor struct{}

var _ FieldExtractor = RegexExtractor{}

func (RegexExtractor) Identities(content string) []IdentityMatch {
	idMatches := accountIDPattern.FindAllStringSubmatchIndex(content, -1)
	if len(idMatches) == 0 {
		return nil
	}

	matches := make([]IdentityMatch, 0, len(idMatches))
	for _, loc := range idMatches {
		match := IdentityMatch{
			Offset:    loc[0],
			AccountID: content[loc[2]:loc[3]],
		}

		window := windowAround(content, loc[0], identityPairRadius)
		if name := gameNamePattern.FindStringSubmatch(window); name != nil {
			match.GameName = name[1]
		}
		if tag := tagLinePattern.FindStringSubmatch(window); tag != nil {
			match.TagLine = tag[1]
		}

		matches = append(matches, match)
	}

	return matches
}

func (RegexExtractor) AccountIDs(content string) []IDMention {
	locs := accountIDPattern.FindAllStringSubmatchIndex(content, -1)
	mentions := make([]IDMention, 0, len(locs))
	for _, loc := range locs {
		mentions = append(mentions, IDMention{
			Offset:    loc[0],
			AccountID: content[loc[2]:loc[3]],
		})
	}
	return mentions
}

func (RegexExtractor) LowPriorityMillis(window string) (int64, bool) {
	return extractMillis(lowPriorityPattern, window)
}

func (RegexExtractor) LockoutMillis(window string) (int64, bool) {
	return extractMillis(lockoutPattern, window)
}

func extractMillis(pattern *regexp.Regexp, window string) (int64, bool) {
	match := pattern.FindStringSubmatch(window)
	if match == nil {
		return 0, false
	}

	millis, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, false
	}

	return millis, true
}

// windowAround slices a bounded context window centered on offset.
func windowAround(content string, offset, radius int) string {
	start := offset - radius
	if start < 0 {
		start = 0
	}
	end := offset + radius
	if end > len(content) {
		end = len(content)
	}
	return content[start:end]
}
