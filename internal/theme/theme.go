package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Text          *lipgloss.Style
	Muted         *lipgloss.Style
	Title         *lipgloss.Style
	Error         *lipgloss.Style
	Info          *lipgloss.Style
	Border        *lipgloss.Style
	BorderActive  *lipgloss.Style
	BorderTitle   *lipgloss.Style
	Subject       *lipgloss.Style
	From          *lipgloss.Style
	Date          *lipgloss.Style
	SubjectUnseen *lipgloss.Style
	FromUnseen    *lipgloss.Style
	DateUnseen    *lipgloss.Style
}

var defaultStyles = Styles{
	Text: ptr(
		lipgloss.NewStyle(),
	),
	Muted: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Border: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	BorderActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	BorderTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Subject: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	),
	From: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	),
	Date: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	),
	SubjectUnseen: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	),
	FromUnseen: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	),
	DateUnseen: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
