package dashboard

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/tinytelemetry/applytrack/internal/view"
)

func renderShell(state State) *view.Node {
	return view.El("div", view.A("id", "dashboard", "class", "dashboard", "data-state", state.String()))
}

// RenderView projects v to the dashboard element tree. base is the page path
// tab and sort links point at.
func RenderView(v DashboardView, base string) *view.Node {
	root := renderShell(v.State)
	root.Append(
		renderNotifications(v.Notifications),
		renderToolbar(v, base),
	)
	for _, tab := range v.Tabs {
		root.Append(renderTabContent(v, tab))
	}
	return root
}

func tabHref(base, tab string, key SortKey) string {
	q := url.Values{}
	q.Set("tab", tab)
	q.Set("sort", string(key))
	return base + "?" + q.Encode()
}

func renderNotifications(notes []Notification) *view.Node {
	if len(notes) == 0 {
		return nil
	}
	box := view.El("div", view.A("class", "notifications", "role", "status"))
	for _, n := range notes {
		box.Append(view.El("div", view.A(
			"class", "notification notification-"+string(n.Level),
			"data-id", strconv.Itoa(n.ID),
			"data-expires", strconv.FormatInt(n.ExpiresAt.UnixMilli(), 10),
		), view.Text(n.Message)))
	}
	return box
}

func renderToolbar(v DashboardView, base string) *view.Node {
	tabs := view.El("nav", view.A("class", "tabs", "role", "tablist"))
	for _, t := range v.Tabs {
		btn := view.El("a", view.A(
			"href", tabHref(base, t.Name, v.SortKey),
			"class", "tab-button",
			"role", "tab",
			"data-tab", t.Name,
			"aria-selected", strconv.FormatBool(t.Active),
		),
			view.Text(t.Label+" "),
			view.El("span", view.A("class", "tab-count"), view.Text(strconv.Itoa(t.Count))),
		)
		btn.ToggleClass("active", t.Active)
		tabs.Append(btn)
	}

	sel := view.El("select", view.A("id", "sort-select", "class", "sort-select", "name", "sort"))
	for _, o := range v.SortOptions {
		opt := view.El("option", view.A("value", string(o.Key)), view.Text(o.Label))
		if o.Selected {
			opt.Set("selected", "selected")
		}
		sel.Append(opt)
	}
	form := view.El("form", view.A("class", "sort-form", "method", "get", "action", base),
		view.El("input", view.A("type", "hidden", "name", "tab", "value", v.ActiveTab)),
		view.El("label", view.A("for", "sort-select"), view.Text("Sort by")),
		sel,
		view.El("noscript", nil, view.El("button", view.A("type", "submit"), view.Text("Apply"))),
	)

	return view.El("div", view.A("class", "dashboard-toolbar"), tabs, form)
}

func renderTabContent(v DashboardView, tab TabView) *view.Node {
	pane := view.El("div", view.A("id", "tab-"+tab.Name, "class", "tab-content", "role", "tabpanel"))
	if !tab.Active {
		pane.Set("hidden", "hidden")
		return pane
	}
	pane.AddClass("active")

	switch v.State {
	case StateLoading:
		pane.Append(view.El("div", view.A("class", "loading-state"), view.Text("Loading applications...")))
		return pane
	case StateError:
		pane.Append(view.El("div", view.A("class", "error-state"), view.Text(LoadFailedMessage)))
		return pane
	}
	if len(v.Cards) == 0 {
		pane.Append(renderEmpty(tab))
		return pane
	}

	grid := view.El("div", view.A("class", "applications-grid"))
	for _, card := range v.Cards {
		grid.Append(RenderCard(card))
	}
	pane.Append(grid)
	return pane
}

func renderEmpty(tab TabView) *view.Node {
	msg := "No applications yet"
	if tab.Name != TabAll {
		msg = fmt.Sprintf("No applications in %s", tab.Label)
	}
	return view.El("div", view.A("class", "empty-state"),
		view.El("p", nil, view.Text(msg)),
		view.El("a", view.A("href", "/applications/new/index.html", "class", "button"), view.Text("Add Application")),
	)
}

// RenderCard projects one card.
func RenderCard(c CardView) *view.Node {
	card := view.El("div", view.A(
		"class", "card",
		"data-id", c.ID,
		"data-category", string(c.Category),
		"data-href", c.URL,
	))
	if c.HasScore {
		card.Set("data-score", strconv.FormatFloat(c.Score, 'f', -1, 64))
	}
	card.Append(
		view.El("div", view.A("class", "card-header"),
			view.El("h3", view.A("class", "card-company"), view.Text(c.Company)),
			view.El("span", view.A("class", "status-badge status-"+string(c.Category)), view.Text(c.Status)),
		),
		view.El("p", view.A("class", "card-title"), view.Text(c.Title)),
		view.El("p", view.A("class", "card-location"), view.Text(c.Location)),
		view.El("div", view.A("class", "card-meta"),
			view.El("span", view.A("class", "match-score"), view.Text("Match: "+c.Match)),
			view.El("span", view.A("class", "applied-date"), view.Text("Applied: "+c.Applied)),
			view.El("span", view.A("class", "updated-date"), view.Text("Updated: "+c.Updated)),
		),
		view.El("a", view.A("href", c.URL, "class", "card-action"), view.Text("View Details")),
	)
	return card
}

// RenderDetail projects the detail page content of one card.
func RenderDetail(c CardView) *view.Node {
	row := func(label, value string) *view.Node {
		return view.El("div", view.A("class", "detail-row"),
			view.El("dt", nil, view.Text(label)),
			view.El("dd", nil, view.Text(value)),
		)
	}
	return view.El("article", view.A("id", "application-detail", "class", "application-detail", "data-id", c.ID),
		view.El("h1", nil, view.Text(c.Title)),
		view.El("h2", nil, view.Text(c.Company)),
		view.El("dl", nil,
			row("Status", c.Status),
			row("Location", c.Location),
			row("Match", c.Match),
			row("Applied", c.Applied),
			row("Updated", c.Updated),
		),
		view.El("a", view.A("href", "/dashboard/index.html", "class", "back-link"), view.Text("Back to dashboard")),
	)
}
