package sidebar

import (
	"net/url"
	"strconv"

	"github.com/tinytelemetry/applytrack/internal/view"
)

// Render projects mv into the sidebar element tree rooted at nav#sidebar.
func Render(mv MenuView) *view.Node {
	nav := view.El("nav", view.A("id", "sidebar", "class", "sidebar", "aria-label", "Main navigation"))
	if mv.Title != "" {
		nav.Append(view.El("div", view.A("class", "sidebar-header"),
			view.El("a", view.A("href", DashboardHref, "class", "sidebar-title"), view.Text(mv.Title)),
		))
	}
	for _, sv := range mv.Sections {
		nav.Append(renderSection(sv))
	}
	return nav
}

// ToggleAction is the endpoint a section's toggle form posts to.
func ToggleAction(name string) string {
	return "/api/sections/" + url.PathEscape(name) + "/toggle"
}

func renderSection(sv SectionView) *view.Node {
	listID := "section-" + sv.Name
	button := view.El("button", view.A(
		"type", "submit",
		"class", "section-toggle",
		"data-toggle", sv.Name,
		"aria-controls", listID,
		"aria-expanded", strconv.FormatBool(sv.Expanded),
	), view.Text(sv.Title))
	toggle := view.El("form", view.A("method", "post", "action", ToggleAction(sv.Name), "class", "section-toggle-form"), button)

	list := view.El("ul", view.A("id", listID, "class", "section-items"))
	list.ToggleClass("collapsed", !sv.Expanded)
	for _, it := range sv.Items {
		list.Append(renderItem(it))
	}

	return view.El("div", view.A("class", "sidebar-section", "data-section", sv.Name), toggle, list)
}

func renderItem(it ItemView) *view.Node {
	link := view.El("a", view.A("href", it.Href, "class", "menu-item"))
	if it.OnClick != "" {
		link.Set("data-action", it.OnClick)
	}
	if it.Active {
		link.AddClass("active")
		link.Set("aria-current", "page")
	}
	if it.Icon != "" {
		link.Append(view.El("img", view.A("src", it.Icon, "alt", "", "class", "menu-icon")))
	}
	link.Append(view.El("span", view.A("class", "menu-label"), view.Text(it.Label)))
	return view.El("li", nil, link)
}
