package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/applytrack/internal/forms"
	"github.com/tinytelemetry/applytrack/internal/model"
)

// FormPage is the add-application form with live validation and autosave.
type FormPage struct {
	form     *forms.Form
	drafts   *forms.Drafts
	interval time.Duration
	keys     KeyMap
	now      func() time.Time

	inputs []textinput.Model
	focus  int

	saver   *forms.AutoSaver
	savedAt time.Time
	status  string
	isError bool
}

// NewFormPage creates the form page. Drafts are persisted through store
// every interval while the page is shown.
func NewFormPage(store model.DraftStore, interval time.Duration) *FormPage {
	p := &FormPage{
		form:     forms.NewApplicationForm(),
		drafts:   forms.NewDrafts(store),
		interval: interval,
		keys:     DefaultKeyMap(),
		now:      time.Now,
	}
	for _, spec := range p.form.Specs() {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = spec.Label
		if spec.Type == forms.TypeFile {
			ti.Placeholder = "path/to/" + spec.Name
		}
		if spec.MaxLength > 0 {
			ti.CharLimit = spec.MaxLength
		}
		ti.Width = 48
		p.inputs = append(p.inputs, ti)
	}
	return p
}

func (p *FormPage) ID() string { return PageForm }

// Enter restores the saved draft, if any, and starts autosaving.
func (p *FormPage) Enter(any) {
	p.status, p.isError = "", false
	if d, ok, err := p.drafts.Load(p.form.ID()); err != nil {
		p.setStatus("Could not load draft", true)
	} else if ok {
		p.applyValues(d.Values)
		p.setStatus("Draft restored", false)
	}
	p.focusField(0)
	if p.saver == nil {
		p.saver = forms.NewAutoSaver(p.form, p.drafts, p.interval)
	}
}

// Leave stops autosaving.
func (p *FormPage) Leave() {
	if p.saver != nil {
		p.saver.Stop()
		p.saver = nil
	}
}

func (p *FormPage) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, p.waitSaved())
}

// waitSaved delivers the next autosave event.
func (p *FormPage) waitSaved() tea.Cmd {
	if p.saver == nil {
		return nil
	}
	ch := p.saver.Saved()
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return savedMsg{event: ev}
	}
}

func (p *FormPage) setStatus(s string, isError bool) {
	p.status, p.isError = s, isError
}

func (p *FormPage) applyValues(values map[string]string) {
	p.form.Restore(values)
	for i, spec := range p.form.Specs() {
		p.inputs[i].SetValue(values[spec.Name])
	}
}

func (p *FormPage) focusField(i int) tea.Cmd {
	p.focus = clamp(i, 0, len(p.inputs)-1)
	var cmd tea.Cmd
	for j := range p.inputs {
		if j == p.focus {
			cmd = p.inputs[j].Focus()
		} else {
			p.inputs[j].Blur()
		}
	}
	return cmd
}

func (p *FormPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case savedMsg:
		p.savedAt = msg.event.Draft.UpdatedAt
		fade := tea.Tick(forms.SavedIndicatorTTL, func(time.Time) tea.Msg { return savedFadeMsg{} })
		return tea.Batch(fade, p.waitSaved()), nil

	case savedFadeMsg:
		return nil, nil

	case draftOpMsg:
		p.handleDraftOp(msg)
		return nil, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil, nil
}

func (p *FormPage) handleDraftOp(msg draftOpMsg) {
	if msg.err != nil {
		p.setStatus(fmt.Sprintf("Could not %s draft", msg.op), true)
		return
	}
	switch msg.op {
	case "save":
		p.savedAt = msg.draft.UpdatedAt
		p.setStatus("Draft saved", false)
	case "load":
		if !msg.found {
			p.setStatus("No draft saved", false)
			return
		}
		p.applyValues(msg.draft.Values)
		p.setStatus("Draft loaded", false)
	case "clear":
		p.form.Reset()
		for i := range p.inputs {
			p.inputs[i].SetValue("")
		}
		p.setStatus("Draft cleared", false)
	}
}

func (p *FormPage) handleKey(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	switch {
	case key.Matches(msg, p.keys.Escape):
		return nil, &PageNav{PageID: PageDashboard}
	case key.Matches(msg, p.keys.NextField):
		return p.focusField(p.focus + 1), nil
	case key.Matches(msg, p.keys.PrevField):
		return p.focusField(p.focus - 1), nil
	case key.Matches(msg, p.keys.Submit):
		if p.form.Submit() {
			p.setStatus("Application is valid and ready to submit", false)
		} else {
			p.setStatus("Please fix the highlighted fields", true)
		}
		return nil, nil
	case key.Matches(msg, p.keys.SaveDraft):
		return p.draftCmd("save"), nil
	case key.Matches(msg, p.keys.LoadDraft):
		return p.draftCmd("load"), nil
	case key.Matches(msg, p.keys.ClearDraft):
		return p.draftCmd("clear"), nil
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	name := p.form.Specs()[p.focus].Name
	if _, err := p.form.Input(name, p.inputs[p.focus].Value()); err != nil {
		p.setStatus(err.Error(), true)
	}
	return cmd, nil
}

func (p *FormPage) draftCmd(op string) tea.Cmd {
	drafts, id, values := p.drafts, p.form.ID(), p.form.Values()
	return func() tea.Msg {
		switch op {
		case "save":
			d, err := drafts.Save(id, values)
			return draftOpMsg{op: op, draft: d, err: err}
		case "load":
			d, ok, err := drafts.Load(id)
			return draftOpMsg{op: op, draft: d, found: ok, err: err}
		default:
			return draftOpMsg{op: op, err: drafts.Clear(id)}
		}
	}
}

func (p *FormPage) View(width, height int) string {
	lines := []string{titleStyle.Render("Add Application"), ""}
	for i, st := range p.form.States() {
		label := st.Label
		if st.Required {
			label += " *"
		}
		if i == p.focus {
			label = activeItemStyle.Render("› " + label)
		} else {
			label = "  " + label
		}
		lines = append(lines, label)

		field := "  " + p.inputs[i].View()
		switch st.Feedback {
		case forms.FeedbackValid:
			field += " " + validStyle.Render("✓")
		case forms.FeedbackInvalid:
			field += " " + invalidStyle.Render("✗ "+st.Result.Message)
		}
		lines = append(lines, field)

		if st.Type == forms.TypeFile {
			lines = append(lines, "  "+mutedStyle.Render(forms.FileLabel(st.Value)))
		}
		if st.MaxLength > 0 {
			c := forms.NewCounter(st.Value, st.MaxLength)
			lines = append(lines, "  "+counterStyles[string(c.Level)].Render(strconv.Itoa(c.Remaining)+" characters remaining"))
		}
		lines = append(lines, "")
	}

	var footer []string
	if forms.SavedVisible(p.savedAt, p.now()) {
		footer = append(footer, savedStyle.Render("Saved"))
	}
	if p.status != "" {
		style := validStyle
		if p.isError {
			style = invalidStyle
		}
		footer = append(footer, style.Render(p.status))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, footer...))
	lines = append(lines, helpStyle.Render(helpLine(p.keys.NextField, p.keys.Submit, p.keys.SaveDraft, p.keys.LoadDraft, p.keys.ClearDraft, p.keys.Escape)))

	return lipgloss.NewStyle().MaxHeight(height).Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
