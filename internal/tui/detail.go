package tui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/applytrack/internal/dashboard"
	"github.com/tinytelemetry/applytrack/internal/model"
)

// DetailPage shows one application.
type DetailPage struct {
	keys KeyMap
	card dashboard.CardView
	err  error
}

// NewDetailPage creates an empty detail page; the record arrives through Enter.
func NewDetailPage() *DetailPage {
	return &DetailPage{keys: DefaultKeyMap()}
}

func (p *DetailPage) ID() string { return PageDetail }

// Enter takes the model.ApplicationRecord to display.
func (p *DetailPage) Enter(params any) {
	rec, ok := params.(model.ApplicationRecord)
	if !ok {
		p.card, p.err = dashboard.CardView{}, fmt.Errorf("no application selected")
		return
	}
	p.card, p.err = dashboard.CardFor(rec)
	if p.err != nil {
		log.Printf("tui: detail %s: %v", rec.ID, p.err)
	}
}

func (p *DetailPage) Init() tea.Cmd { return nil }

func (p *DetailPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}
	switch {
	case key.Matches(km, p.keys.Escape), km.String() == "backspace":
		return nil, &PageNav{PageID: PageDashboard}
	case key.Matches(km, p.keys.Quit):
		return tea.Quit, nil
	}
	return nil, nil
}

func (p *DetailPage) View(width, height int) string {
	help := helpStyle.Render(helpLine(p.keys.Escape, p.keys.Quit))
	if p.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left, invalidStyle.Render("Could not display this application"), help)
	}

	c := p.card
	status := lipgloss.NewStyle().Foreground(categoryColors[string(c.Category)]).Bold(true).Render(c.Status)
	rows := [][2]string{
		{"Status", status},
		{"Location", c.Location},
		{"Match", c.Match},
		{"Applied", c.Applied},
		{"Updated", c.Updated},
		{"Page", c.URL},
	}
	var lines []string
	for _, r := range rows {
		lines = append(lines, mutedStyle.Width(10).Render(r[0])+r[1])
	}

	body := cardStyle.Width(min(width-2, 80)).Render(
		lipgloss.NewStyle().Bold(true).Render(c.Title) + "\n" + c.Company + "\n\n" + strings.Join(lines, "\n"),
	)
	return lipgloss.Place(width, height-1, lipgloss.Left, lipgloss.Top, body) + "\n" + help
}
