package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text            lipgloss.Style
	ActiveLine      lipgloss.Style
	Selection       lipgloss.Style
	Cursor          lipgloss.Style
	MatchingBracket lipgloss.Style
	SearchMatch     lipgloss.Style

	Footer             lipgloss.Style
	Completion         lipgloss.Style
	CompletionSelected lipgloss.Style
	Diagnostic         lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:             gutter,
		LineNum:            gutter,
		LineNumActive:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:               lipgloss.NewStyle(),
		ActiveLine:         lipgloss.NewStyle().Background(lipgloss.Color("235")),
		Selection:          lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:             lipgloss.NewStyle().Reverse(true),
		MatchingBracket:    lipgloss.NewStyle().Underline(true).Bold(true),
		SearchMatch:        lipgloss.NewStyle().Background(lipgloss.Color("58")),
		Footer:             lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Completion:         lipgloss.NewStyle().Background(lipgloss.Color("236")),
		CompletionSelected: lipgloss.NewStyle().Reverse(true),
		Diagnostic:         lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
