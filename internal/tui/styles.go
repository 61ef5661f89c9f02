package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorNavy   = lipgloss.Color("#1B2A4A")
	ColorWhite  = lipgloss.Color("#FFFFFF")
	ColorGray   = lipgloss.Color("#8A8F98")
	ColorBlue   = lipgloss.Color("#4AA3FF")
	ColorGreen  = lipgloss.Color("#44CC66")
	ColorYellow = lipgloss.Color("#FFAA00")
	ColorRed    = lipgloss.Color("#FF5555")
	ColorPurple = lipgloss.Color("#B48EFF")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorWhite).Background(ColorNavy).Padding(0, 1)

	sidebarStyle       = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(ColorGray).PaddingRight(1)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
	menuItemStyle      = lipgloss.NewStyle().Foreground(ColorWhite)
	activeItemStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	cursorStyle        = lipgloss.NewStyle().Reverse(true)

	tabStyle       = lipgloss.NewStyle().Foreground(ColorGray).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorWhite).Background(ColorBlue).Padding(0, 1)

	cardStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorGray).Padding(0, 1)
	selectedCardStyle = cardStyle.BorderForeground(ColorBlue)
	mutedStyle        = lipgloss.NewStyle().Foreground(ColorGray)
	helpStyle         = lipgloss.NewStyle().Foreground(ColorGray).Italic(true)

	toastStyles = map[string]lipgloss.Style{
		"info":    lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorBlue).Padding(0, 1),
		"success": lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorGreen).Padding(0, 1),
		"error":   lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorRed).Padding(0, 1),
	}

	validStyle   = lipgloss.NewStyle().Foreground(ColorGreen)
	invalidStyle = lipgloss.NewStyle().Foreground(ColorRed)
	counterStyles = map[string]lipgloss.Style{
		"normal":  mutedStyle,
		"warning": lipgloss.NewStyle().Foreground(ColorYellow),
		"danger":  lipgloss.NewStyle().Foreground(ColorRed).Bold(true),
	}
	savedStyle = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
)

var categoryColors = map[string]lipgloss.Color{
	"applied":   ColorBlue,
	"interview": ColorYellow,
	"offer":     ColorGreen,
	"rejected":  ColorRed,
}
