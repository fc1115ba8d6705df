// Package ui holds the terminal styles shared by the cobra help template and
// the install wizard. Colours are ANSI palette indices so they follow the
// user's terminal theme.
package ui

import "github.com/charmbracelet/lipgloss"

const (
	accent = lipgloss.Color("5")
	ok     = lipgloss.Color("2")
	warn   = lipgloss.Color("3")
	bad    = lipgloss.Color("1")
	muted  = lipgloss.Color("8")
)

// Help template.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(accent).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(ok)
	DescStyle  = lipgloss.NewStyle().Foreground(muted)
	FlagStyle  = lipgloss.NewStyle().Foreground(warn)
)

// Wizard.
var (
	HeadingStyle  = lipgloss.NewStyle().Foreground(ok).Bold(true)
	HintStyle     = lipgloss.NewStyle().Faint(true)
	ItemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	SelectedStyle = ItemStyle.Foreground(accent)
	ErrorStyle    = lipgloss.NewStyle().Foreground(bad).Bold(true)
)
