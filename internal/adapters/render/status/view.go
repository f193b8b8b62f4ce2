package status

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/riot-accounts-cli/internal/application"
	"github.com/bnema/riot-accounts-cli/internal/domain"
)

type RenderOptions struct {
	Now time.Time
}

func renderView(statuses []application.Status, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Riot Accounts"),
		s.header.Render(fmt.Sprintf("accounts: %d", len(statuses))),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No accounts stored. Add one with `ra account add`."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderAccount(status, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(status application.Status, opts RenderOptions, s styles) string {
	parts := []string{titleLine(status, s)}
	parts = append(parts, penaltyLines(status, opts, s)...)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func titleLine(status application.Status, s styles) string {
	segments := make([]string, 0, 3)
	if marker := tagMarker(status.Account.Tag, s); marker != "" {
		segments = append(segments, marker)
	}
	segments = append(segments, s.account.Render(status.Account.Username))

	if status.RiotID != "" {
		segments = append(segments, s.riotID.Render(status.RiotID))
	} else {
		segments = append(segments, s.detail.Render("(not yet identified)"))
	}

	line := segments[0]
	for _, segment := range segments[1:] {
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, "  ", segment)
	}
	return line
}

func tagMarker(tag domain.AccountTag, s styles) string {
	switch tag {
	case domain.TagStar:
		return s.tagStar.Render("*")
	case domain.TagWarn:
		return s.tagWarn.Render("!")
	case domain.TagOK:
		return s.tagOK.Render("+")
	default:
		return ""
	}
}

func penaltyLines(status application.Status, opts RenderOptions, s styles) []string {
	lines := make([]string, 0, 2)

	if status.LowPriorityMinutes > 0 {
		lines = append(lines, s.warning.Render(
			fmt.Sprintf("  low priority queue: %dm per game", status.LowPriorityMinutes)))
	}
	if status.LockoutRemaining != "" {
		lines = append(lines, s.lockout.Render(
			"  queue lockout: "+lockoutLabel(status, opts.Now)))
	}

	if len(lines) == 0 {
		return []string{s.detail.Render("  no penalties")}
	}
	return lines
}

func lockoutLabel(status application.Status, now time.Time) string {
	label := status.LockoutRemaining + " remaining"
	if now.IsZero() || status.Account.LockoutUntil == nil {
		return label
	}
	return fmt.Sprintf("%s (until %s)", label, formatUntil(*status.Account.LockoutUntil, now))
}

// formatUntil keeps same-day expiries short and adds the date otherwise.
func formatUntil(until, now time.Time) string {
	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := until.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return until.Format("15:04")
	}
	return until.Format("15:04 on 02 Jan")
}
