package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	account lipgloss.Style
	riotID  lipgloss.Style
	detail  lipgloss.Style
	warning lipgloss.Style
	lockout lipgloss.Style
	section lipgloss.Style
	empty   lipgloss.Style
	tagStar lipgloss.Style
	tagWarn lipgloss.Style
	tagOK   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		account: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		riotID:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		detail:  lipgloss.NewStyle().Faint(true),
		warning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		lockout: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section: lipgloss.NewStyle().MarginTop(1),
		empty:   lipgloss.NewStyle().Faint(true),
		tagStar: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		tagWarn: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		tagOK:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
	}
}
