package tui

import tea "github.com/charmbracelet/bubbletea"

// Page ids.
const (
	PageDashboard = "dashboard"
	PageDetail    = "detail"
	PageForm      = "form"
)

// Page represents a top-level screen in the TUI.
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// Enterer is implemented by pages that take navigation parameters.
type Enterer interface {
	Enter(params any)
}

// Leaver is implemented by pages that release resources when navigated away from.
type Leaver interface {
	Leave()
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
	Params any
}
