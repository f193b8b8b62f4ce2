package domain

import (
	"fmt"
	"time"
)

type AccountID string

type AccountTag string

const (
	TagNone AccountTag = ""
	TagStar AccountTag = "star"
	TagWarn AccountTag = "warn"
	TagOK   AccountTag = "ok"
)

func (t AccountTag) Valid() bool {
	switch t {
	case TagNone, TagStar, TagWarn, TagOK:
		return true
	default:
		return false
	}
}

type Account struct {
	ID                AccountID
	Username          string
	EncryptedPassword string

	// RiotAccountID is the durable key used to attribute log events to this
	// account. Once set it never changes; a detection that disagrees is a
	// conflict, not an overwrite.
	RiotAccountID string
	GameName      string
	TagLine       string

	// LowPriorityMinutes is a flat per-infraction credit. The latest parsed
	// value replaces it entirely, including clearing it on zero.
	LowPriorityMinutes *int

	// LockoutUntil is a wall-clock expiry. It only moves forward or expires.
	LockoutUntil *time.Time

	DisplayOrder int
	Tag          AccountTag
}

// FullRiotID renders "GameName#TagLine", degrading to just the name when no
// tag line was detected.
func (a Account) FullRiotID() string {
	if a.GameName == "" {
		return ""
	}
	if a.TagLine == "" {
		return a.GameName
	}
	return a.GameName + "#" + a.TagLine
}

func (a Account) HasLockout(now time.Time) bool {
	return a.LockoutUntil != nil && a.LockoutUntil.After(now)
}

// LockoutRemaining formats the time left on an active lockout, or "" when
// none is active.
func (a Account) LockoutRemaining(now time.Time) string {
	if !a.HasLockout(now) {
		return ""
	}

	remaining := a.LockoutUntil.Sub(now)
	switch {
	case remaining >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(remaining.Hours()), int(remaining.Minutes())%60)
	case remaining >= time.Minute:
		return fmt.Sprintf("%dm", int(remaining.Minutes()))
	default:
		return "<1m"
	}
}

// ClearExpiredLockout drops a lockout whose expiry has passed and reports
// whether anything changed. Low-priority minutes are never cleared by time;
// they only change when the logs report a new value.
func (a *Account) ClearExpiredLockout(now time.Time) bool {
	if a.LockoutUntil == nil || a.LockoutUntil.After(now) {
		return false
	}
	a.LockoutUntil = nil
	return true
}

// ApplyLowPriority replaces the stored credit with the latest authoritative
// minute count, clearing it when the source reports zero or less.
func (a *Account) ApplyLowPriority(minutes int) {
	if minutes <= 0 {
		a.LowPriorityMinutes = nil
		return
	}
	a.LowPriorityMinutes = &minutes
}

// ApplyLockout installs a new expiry only when it extends the stored one.
// Rotated logs can report an already-elapsed portion of the same lockout;
// that must never pull the expiry backward.
func (a *Account) ApplyLockout(until time.Time) bool {
	if a.LockoutUntil != nil && !until.After(*a.LockoutUntil) {
		return false
	}
	a.LockoutUntil = &until
	return true
}

const (
	minRiotAccountIDDigits = 5
	maxRiotAccountIDDigits = 20
	minGameNameLen         = 3
	maxGameNameLen         = 16
)

// ValidRiotAccountID reports whether raw looks like a Riot account id: a
// numeric string of 5-20 digits.
func ValidRiotAccountID(raw string) bool {
	if len(raw) < minRiotAccountIDDigits || len(raw) > maxRiotAccountIDDigits {
		return false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidGameName reports whether raw satisfies Riot's 3-16 character rule.
func ValidGameName(raw string) bool {
	n := len([]rune(raw))
	return n >= minGameNameLen && n <= maxGameNameLen
}
