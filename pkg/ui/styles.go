package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true).MarginLeft(2)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	focusedRow  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	scoreCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			Margin(0, 1)

	citizensStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	enemiesStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	leaderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)

	chipStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Margin(0, 1)

	chipOnStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("27")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1).
			Margin(0, 1)

	warningBanner = lipgloss.NewStyle().
			Background(lipgloss.Color("88")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 2).
			Margin(1, 0).
			Bold(true)
)
