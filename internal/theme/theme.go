// Package theme holds the Lip Gloss styles shared by the interactive
// screens.
package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes the reusable style set for the launcher UI.
type Styles struct {
	Header       *lipgloss.Style
	Stats        *lipgloss.Style
	Item         *lipgloss.Style
	ItemNumber   *lipgloss.Style
	SelectedItem *lipgloss.Style
	CommandText  *lipgloss.Style
	Description  *lipgloss.Style
	FilterPrompt *lipgloss.Style
	FilterActive *lipgloss.Style
	InputPrompt  *lipgloss.Style
	Help         *lipgloss.Style
	Warning      *lipgloss.Style
	Error        *lipgloss.Style
	Success      *lipgloss.Style
	PreviewTitle *lipgloss.Style
	PreviewBody  *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true),
	),
	Stats: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemNumber: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	CommandText: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Description: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	),
	InputPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	),
	Help: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Warning: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Success: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	),
	PreviewTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PreviewBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
