package tui

import tea "github.com/charmbracelet/bubbletea"

// App is the top-level Bubble Tea model that routes between pages.
type App struct {
	pages      map[string]Page
	activePage string
	width      int
	height     int
}

// NewApp creates a new App with the given pages. The first page is the default.
func NewApp(pages ...Page) *App {
	pageMap := make(map[string]Page, len(pages))
	var firstID string
	for i, p := range pages {
		pageMap[p.ID()] = p
		if i == 0 {
			firstID = p.ID()
		}
	}
	return &App{
		pages:      pageMap,
		activePage: firstID,
	}
}

// ActivePage returns the id of the page currently shown.
func (a *App) ActivePage() string { return a.activePage }

func (a *App) Init() tea.Cmd {
	if p, ok := a.pages[a.activePage]; ok {
		return p.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.Close()
			return a, tea.Quit
		}
	}

	p, ok := a.pages[a.activePage]
	if !ok {
		return a, nil
	}

	cmd, nav := p.Update(msg)
	if nav == nil {
		return a, cmd
	}
	return a, tea.Batch(cmd, a.navigate(*nav))
}

// navigate switches to nav's page. Unknown ids are ignored.
func (a *App) navigate(nav PageNav) tea.Cmd {
	next, ok := a.pages[nav.PageID]
	if !ok {
		return nil
	}
	if l, ok := a.pages[a.activePage].(Leaver); ok && nav.PageID != a.activePage {
		l.Leave()
	}
	if e, ok := next.(Enterer); ok {
		e.Enter(nav.Params)
	}
	a.activePage = nav.PageID
	return next.Init()
}

// Close releases the active page's resources.
func (a *App) Close() {
	if l, ok := a.pages[a.activePage].(Leaver); ok {
		l.Leave()
	}
}

func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return "Initializing..."
	}
	if p, ok := a.pages[a.activePage]; ok {
		return p.View(a.width, a.height)
	}
	return "No active page"
}
