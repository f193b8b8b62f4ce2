package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidRiotAccountID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "typical id", raw: "2345678901", want: true},
		{name: "minimum length", raw: "12345", want: true},
		{name: "maximum length", raw: "12345678901234567890", want: true},
		{name: "too short", raw: "1234", want: false},
		{name: "too long", raw: "123456789012345678901", want: false},
		{name: "non numeric", raw: "12345a", want: false},
		{name: "empty", raw: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidRiotAccountID(tt.raw))
		})
	}
}

func TestValidGameName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "short valid", raw: "Bob", want: true},
		{name: "sixteen chars", raw: "SixteenCharsName", want: true},
		{name: "too short", raw: "ab", want: false},
		{name: "too long", raw: "ThisNameIsTooLongX", want: false},
		{name: "multibyte counts runes", raw: "ケヤキの木", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidGameName(tt.raw))
		})
	}
}

func TestFullRiotID(t *testing.T) {
	assert.Equal(t, "", Account{}.FullRiotID())
	assert.Equal(t, "Faker", Account{GameName: "Faker"}.FullRiotID())
	assert.Equal(t, "Faker#KR1", Account{GameName: "Faker", TagLine: "KR1"}.FullRiotID())
}

func TestApplyLowPriorityReplacesAlways(t *testing.T) {
	var a Account

	a.ApplyLowPriority(15)
	require.NotNil(t, a.LowPriorityMinutes)
	assert.Equal(t, 15, *a.LowPriorityMinutes)

	// Downward correction is trusted: the source value is authoritative.
	a.ApplyLowPriority(5)
	require.NotNil(t, a.LowPriorityMinutes)
	assert.Equal(t, 5, *a.LowPriorityMinutes)

	a.ApplyLowPriority(0)
	assert.Nil(t, a.LowPriorityMinutes)
}

func TestApplyLockoutOnlyExtends(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	var a Account

	require.True(t, a.ApplyLockout(now.Add(2*time.Hour)))
	require.NotNil(t, a.LockoutUntil)

	// A smaller remaining value from an older, rotated log must not pull the
	// expiry backward.
	assert.False(t, a.ApplyLockout(now.Add(30*time.Minute)))
	assert.Equal(t, now.Add(2*time.Hour), *a.LockoutUntil)

	assert.True(t, a.ApplyLockout(now.Add(3*time.Hour)))
	assert.Equal(t, now.Add(3*time.Hour), *a.LockoutUntil)
}

func TestClearExpiredLockout(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Minute)
	active := now.Add(time.Minute)

	a := Account{LockoutUntil: &expired}
	assert.True(t, a.ClearExpiredLockout(now))
	assert.Nil(t, a.LockoutUntil)
	assert.False(t, a.ClearExpiredLockout(now))

	b := Account{LockoutUntil: &active}
	assert.False(t, b.ClearExpiredLockout(now))
	require.NotNil(t, b.LockoutUntil)
}

func TestLockoutRemainingFormatting(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		remaining time.Duration
		want      string
	}{
		{name: "hours and minutes", remaining: 2*time.Hour + 5*time.Minute, want: "2h05m"},
		{name: "minutes only", remaining: 42 * time.Minute, want: "42m"},
		{name: "under a minute", remaining: 30 * time.Second, want: "<1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			until := now.Add(tt.remaining)
			a := Account{LockoutUntil: &until}
			assert.Equal(t, tt.want, a.LockoutRemaining(now))
		})
	}

	assert.Equal(t, "", Account{}.LockoutRemaining(now))
}

func TestSessionWindowStaleReference(t *testing.T) {
	w := SessionWindow{
		StartedAt:       time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
		ReferenceFile:   "/logs/LeagueClient-tracing.json",
		ReferenceLength: 4096,
	}

	assert.True(t, w.Active())
	assert.True(t, w.IsStaleReference("/logs/LeagueClient-tracing.json", 4096))
	assert.False(t, w.IsStaleReference("/logs/LeagueClient-tracing.json", 8192))
	assert.False(t, w.IsStaleReference("/logs/other.json", 10))
	assert.False(t, SessionWindow{}.Active())
}
