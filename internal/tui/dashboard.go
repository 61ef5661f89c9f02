package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/applytrack/internal/dashboard"
	"github.com/tinytelemetry/applytrack/internal/forms"
	"github.com/tinytelemetry/applytrack/internal/model"
	"github.com/tinytelemetry/applytrack/internal/sidebar"
)

const fetchTimeout = 10 * time.Second

type focusArea int

const (
	focusCards focusArea = iota
	focusSidebar
)

// readerSource adapts a RecordReader such as the socket client to a RecordSource.
type readerSource struct {
	reader model.RecordReader
}

func (s readerSource) FetchApplications(context.Context) ([]model.ApplicationRecord, error) {
	return s.reader.ListApplications()
}

// DashboardConfig configures the dashboard page.
type DashboardConfig struct {
	API             model.ReadAPI
	Variant         sidebar.Variant
	LoadAttempts    int
	LoadDelay       time.Duration
	NotificationTTL time.Duration
	Version         string
}

// DashboardPage shows the sidebar, status chart, tabs and application cards.
type DashboardPage struct {
	api      model.ReadAPI
	loader   dashboard.Loader
	ctl      *dashboard.Controller
	menu     sidebar.Menu
	sections *sidebar.Sections
	keys     KeyMap
	version  string
	ttl      time.Duration
	now      func() time.Time

	focus         focusArea
	sidebarCursor int
	cardCursor    int
	loading       bool
	started       bool
	lastView      dashboard.DashboardView
}

// NewDashboardPage builds the dashboard page. Records are fetched on Init.
func NewDashboardPage(cfg DashboardConfig) *DashboardPage {
	loader := dashboard.NewLoader(readerSource{reader: cfg.API})
	if cfg.LoadAttempts > 0 {
		loader.Attempts = cfg.LoadAttempts
	}
	if cfg.LoadDelay > 0 {
		loader.Delay = cfg.LoadDelay
	}
	ttl := cfg.NotificationTTL
	if ttl <= 0 {
		ttl = model.DefaultNotificationTTL
	}
	return &DashboardPage{
		api:      cfg.API,
		loader:   loader,
		ctl:      dashboard.NewController(dashboard.Options{NotificationTTL: ttl}),
		menu:     sidebar.DefaultMenu(),
		sections: sidebar.NewSections(cfg.Variant),
		keys:     DefaultKeyMap(),
		version:  cfg.Version,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (p *DashboardPage) ID() string { return PageDashboard }

// Init starts the first load; returning to the page does not reload.
func (p *DashboardPage) Init() tea.Cmd {
	if p.started {
		return nil
	}
	p.started = true
	return p.startLoad()
}

func (p *DashboardPage) startLoad() tea.Cmd {
	if p.loading {
		return nil
	}
	p.loading = true
	p.ctl.Begin()
	return tea.Batch(p.fetchCmd(1), spinnerTick())
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg { return spinnerTickMsg{} })
}

func (p *DashboardPage) fetchCmd(attempt int) tea.Cmd {
	loader := p.loader
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		records, err := loader.Try(ctx)
		return loadResultMsg{attempt: attempt, records: records, err: err}
	}
}

func (p *DashboardPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case loadAttemptMsg:
		return p.fetchCmd(msg.attempt), nil

	case loadResultMsg:
		return p.handleLoadResult(msg), nil

	case spinnerTickMsg:
		if p.loading {
			return spinnerTick(), nil
		}
		return nil, nil

	case toastExpiredMsg:
		return nil, nil

	case draftsClearedMsg:
		if msg.err != nil {
			log.Printf("tui: clear drafts: %v", msg.err)
			return p.notify("Could not clear drafts", dashboard.LevelError), nil
		}
		return p.notify("Drafts cleared", dashboard.LevelSuccess), nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil, nil
}

func (p *DashboardPage) handleLoadResult(msg loadResultMsg) tea.Cmd {
	if msg.err != nil && p.loader.Retry(msg.attempt, msg.err) {
		next := msg.attempt + 1
		return tea.Tick(p.loader.Delay, func(time.Time) tea.Msg { return loadAttemptMsg{attempt: next} })
	}

	p.loading = false
	err := msg.err
	if err != nil && errors.Is(err, model.ErrNotReady) {
		err = dashboard.Unavailable(msg.attempt)
	}
	p.cardCursor = 0
	if p.ctl.Apply(msg.records, err, p.now()) != nil {
		return p.expireCmd()
	}
	return nil
}

func (p *DashboardPage) notify(text string, level dashboard.Level) tea.Cmd {
	p.ctl.Notify(text, level, p.now())
	return p.expireCmd()
}

func (p *DashboardPage) expireCmd() tea.Cmd {
	return tea.Tick(p.ttl, func(time.Time) tea.Msg { return toastExpiredMsg{} })
}

func (p *DashboardPage) menuView() sidebar.MenuView {
	return p.menu.View(sidebar.DashboardHref, p.sections)
}

func (p *DashboardPage) handleKey(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	switch {
	case key.Matches(msg, p.keys.Quit):
		return tea.Quit, nil
	case key.Matches(msg, p.keys.Focus):
		if p.focus == focusCards {
			p.focus = focusSidebar
		} else {
			p.focus = focusCards
		}
		return nil, nil
	case key.Matches(msg, p.keys.NextTab):
		p.cycleTab(1)
		return nil, nil
	case key.Matches(msg, p.keys.PrevTab):
		p.cycleTab(-1)
		return nil, nil
	case key.Matches(msg, p.keys.Sort):
		p.cycleSort()
		return nil, nil
	case key.Matches(msg, p.keys.Reload):
		return p.startLoad(), nil
	case key.Matches(msg, p.keys.NewApp):
		return nil, &PageNav{PageID: PageForm}
	case key.Matches(msg, p.keys.Up):
		p.move(-1)
		return nil, nil
	case key.Matches(msg, p.keys.Down):
		p.move(1)
		return nil, nil
	case key.Matches(msg, p.keys.Enter):
		if p.focus == focusSidebar {
			return p.activateRow()
		}
		return p.openCard()
	}
	return nil, nil
}

func (p *DashboardPage) move(delta int) {
	if p.focus == focusSidebar {
		rows := sidebarRows(p.menuView())
		p.sidebarCursor = clamp(p.sidebarCursor+delta, 0, len(rows)-1)
		return
	}
	p.cardCursor = clamp(p.cardCursor+delta, 0, len(p.ctl.Visible())-1)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

func (p *DashboardPage) cycleTab(delta int) {
	tabs := dashboard.Tabs()
	idx := 0
	for i, t := range tabs {
		if t == p.ctl.Tab() {
			idx = i
		}
	}
	idx = (idx + delta + len(tabs)) % len(tabs)
	p.ctl.SwitchTab(tabs[idx])
	p.cardCursor = 0
}

func (p *DashboardPage) cycleSort() {
	keys := dashboard.SortKeys
	idx := -1
	for i, k := range keys {
		if k == p.ctl.SortKey() {
			idx = i
		}
	}
	p.ctl.SetSort(keys[(idx+1)%len(keys)])
	p.cardCursor = 0
}

// activateRow toggles a section header or follows a menu item.
func (p *DashboardPage) activateRow() (tea.Cmd, *PageNav) {
	rows := sidebarRows(p.menuView())
	if p.sidebarCursor >= len(rows) {
		return nil, nil
	}
	row := rows[p.sidebarCursor]
	if row.item == nil {
		p.sections.Toggle(row.section)
		p.sidebarCursor = clamp(p.sidebarCursor, 0, len(sidebarRows(p.menuView()))-1)
		return nil, nil
	}

	switch row.item.OnClick {
	case sidebar.ActionClearDrafts:
		return p.clearDraftsCmd(), nil
	case sidebar.ActionShowAbout:
		return p.notify(p.aboutText(), dashboard.LevelInfo), nil
	}

	var nav *PageNav
	var cmd tea.Cmd
	dashboard.Navigate(row.item.Href, func(href string) {
		switch href {
		case sidebar.DashboardHref:
			p.focus = focusCards
		case sidebar.NewAppHref:
			nav = &PageNav{PageID: PageForm}
		default:
			cmd = p.notify(row.item.Label+" is only available in the browser", dashboard.LevelInfo)
		}
	})
	return cmd, nav
}

func (p *DashboardPage) aboutText() string {
	v := p.version
	if v == "" {
		v = "dev"
	}
	return fmt.Sprintf("%s %s", p.menu.Title, v)
}

func (p *DashboardPage) clearDraftsCmd() tea.Cmd {
	api := p.api
	return func() tea.Msg {
		return draftsClearedMsg{err: forms.NewDrafts(api).Clear(forms.ApplicationFormID)}
	}
}

// openCard navigates to the detail page of the selected card.
func (p *DashboardPage) openCard() (tea.Cmd, *PageNav) {
	visible := p.ctl.Visible()
	if p.cardCursor >= len(visible) {
		return nil, nil
	}
	rec := visible[p.cardCursor]
	var nav *PageNav
	dashboard.Navigate(dashboard.DetailURL(rec), func(string) {
		nav = &PageNav{PageID: PageDetail, Params: rec}
	})
	return nil, nav
}

func (p *DashboardPage) View(width, height int) string {
	now := p.now()
	v, err := p.ctl.View(now)
	if err != nil {
		log.Printf("tui: render dashboard: %v", err)
		v = p.lastView
		v.Notifications = p.ctl.Notifications(now)
	} else {
		p.lastView = v
	}

	side := renderSidebar(p.menuView(), p.sidebarCursor, p.focus == focusSidebar, height-1)
	mainWidth := max(width-sidebarWidth-3, 20)

	var parts []string
	parts = append(parts, p.renderTabs(v))
	if v.State == dashboard.StateLoaded {
		parts = append(parts, renderStatusChart(p.ctl.StatusCounts(), mainWidth))
	}
	for _, n := range v.Notifications {
		parts = append(parts, toastStyles[string(n.Level)].Render(n.Message))
	}

	header := lipgloss.JoinVertical(lipgloss.Left, parts...)
	bodyHeight := max(height-lipgloss.Height(header)-2, 3)
	parts = []string{header, p.renderBody(v, now, mainWidth, bodyHeight)}

	help := helpStyle.Render(helpLine(p.keys.Focus, p.keys.Enter, p.keys.NextTab, p.keys.Sort, p.keys.Reload, p.keys.NewApp, p.keys.Quit))
	main := lipgloss.NewStyle().Width(mainWidth).Height(height - 1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return lipgloss.JoinVertical(lipgloss.Left, lipgloss.JoinHorizontal(lipgloss.Top, side, " ", main), help)
}

func (p *DashboardPage) renderTabs(v dashboard.DashboardView) string {
	var tabs []string
	for _, t := range v.Tabs {
		label := fmt.Sprintf("%s (%d)", t.Label, t.Count)
		if t.Active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	sortLabel := mutedStyle.Render("  sort: " + v.SortKey.Label())
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, sortLabel)...)
}

func (p *DashboardPage) renderBody(v dashboard.DashboardView, now time.Time, width, height int) string {
	switch v.State {
	case dashboard.StateLoading:
		return mutedStyle.Render(spinnerFrame(now) + " Loading applications...")
	case dashboard.StateError:
		return invalidStyle.Render(dashboard.LoadFailedMessage + ". Press r to retry.")
	}
	if len(v.Cards) == 0 {
		if v.ActiveTab == dashboard.TabAll {
			return mutedStyle.Render("No applications yet. Press n to add one.")
		}
		return mutedStyle.Render("No " + strings.ToLower(dashboard.TabLabel(v.ActiveTab)) + " applications.")
	}

	const cardHeight = 4
	perPage := max(height/cardHeight, 1)
	start := 0
	if p.cardCursor >= perPage {
		start = p.cardCursor - perPage + 1
	}
	end := min(start+perPage, len(v.Cards))

	var cards []string
	for i := start; i < end; i++ {
		cards = append(cards, renderCard(v.Cards[i], width-2, i == p.cardCursor && p.focus == focusCards))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderCard(c dashboard.CardView, width int, selected bool) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	status := lipgloss.NewStyle().Foreground(categoryColors[string(c.Category)]).Render(c.Status)
	title := lipgloss.NewStyle().Bold(true).Render(c.Company) + " · " + c.Title + "  " + status
	meta := []string{c.Location, "Applied " + c.Applied}
	if c.HasScore {
		meta = append(meta, "Match "+c.Match)
	}
	return style.Width(width).Render(title + "\n" + mutedStyle.Render(strings.Join(meta, " · ")))
}
