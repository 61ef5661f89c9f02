// Package sidebar builds the navigation sidebar: the static menu
// configuration, active-item resolution, section expand/collapse state, and
// the HTML projection injected into every page.
package sidebar

import (
	"net/url"
	"strings"
)

// MenuItem is one navigation entry. Href "#" marks an action-only item.
type MenuItem struct {
	Href    string
	Label   string
	Icon    string
	OnClick string // bound UI action name, empty = plain link
}

// Inert reports whether following the item's href would navigate nowhere.
func (i MenuItem) Inert() bool {
	return i.Href == "" || i.Href == "#"
}

// Hrefs of items referenced by the path-family rules.
const (
	DashboardHref  = "/dashboard/index.html"
	NewAppHref     = "/applications/new/index.html"
	SettingsHref   = "/admin/settings/index.html"
	HelpCenterHref = "/help/index.html"
)

// Actions bound to action-only items.
const (
	ActionClearDrafts = "clearDrafts"
	ActionShowAbout   = "showAbout"
)

// MainItems, AdminItems and HelpItems are the configured sequences; order is
// display order.
var (
	MainItems = []MenuItem{
		{Href: DashboardHref, Label: "Dashboard", Icon: "/icons/dashboard.svg"},
		{Href: NewAppHref, Label: "Add Application", Icon: "/icons/add.svg"},
		{Href: "/resume/index.html", Label: "Resume", Icon: "/icons/resume.svg"},
		{Href: "/analytics/index.html", Label: "Analytics", Icon: "/icons/analytics.svg"},
	}
	AdminItems = []MenuItem{
		{Href: SettingsHref, Label: "Settings", Icon: "/icons/settings.svg"},
		{Href: "/admin/import/index.html", Label: "Import Data", Icon: "/icons/import.svg"},
		{Href: "#", Label: "Clear Drafts", Icon: "/icons/trash.svg", OnClick: ActionClearDrafts},
	}
	HelpItems = []MenuItem{
		{Href: HelpCenterHref, Label: "Help Center", Icon: "/icons/help.svg"},
		{Href: "/help/shortcuts/index.html", Label: "Keyboard Shortcuts", Icon: "/icons/keyboard.svg"},
		{Href: "#", Label: "About", Icon: "/icons/info.svg", OnClick: ActionShowAbout},
	}
)

// SectionConfig groups a section name, its heading and its items.
type SectionConfig struct {
	Name  string
	Title string
	Items []MenuItem
}

// Menu is the full sidebar configuration.
type Menu struct {
	Title    string
	Sections []SectionConfig
}

// DefaultMenu returns the tracker's sidebar configuration.
func DefaultMenu() Menu {
	return Menu{
		Title: "Job Tracker",
		Sections: []SectionConfig{
			{Name: SectionMain, Title: "Main", Items: MainItems},
			{Name: SectionAdmin, Title: "Admin", Items: AdminItems},
			{Name: SectionHelp, Title: "Help", Items: HelpItems},
		},
	}
}

// Items returns every configured item in display order.
func (m Menu) Items() []MenuItem {
	var out []MenuItem
	for _, s := range m.Sections {
		out = append(out, s.Items...)
	}
	return out
}

// familyRule maps a path family to the item that represents it.
type familyRule struct {
	match func(path string) bool
	href  string
}

var familyRules = []familyRule{
	{match: func(p string) bool { return p == "/" || p == "" || p == "/index.html" }, href: DashboardHref},
	{match: func(p string) bool {
		return strings.HasPrefix(p, "/applications/") && !strings.HasPrefix(p, "/applications/new/")
	}, href: DashboardHref},
	{match: func(p string) bool { return strings.HasPrefix(p, "/admin/") }, href: SettingsHref},
	{match: func(p string) bool { return strings.HasPrefix(p, "/help/") }, href: HelpCenterHref},
}

// ActiveHref resolves which item is active for currentPath (a path with an
// optional query string). Exact href matches on path+query win, then on path
// alone, then the path-family rules. When nothing matches the raw path is
// returned, which highlights no item.
func (m Menu) ActiveHref(currentPath string) string {
	path, full := splitPath(currentPath)
	items := m.Items()

	for _, it := range items {
		if !it.Inert() && it.Href == full {
			return it.Href
		}
	}
	for _, it := range items {
		if !it.Inert() && it.Href == path {
			return it.Href
		}
	}
	for _, rule := range familyRules {
		if rule.match(path) {
			return rule.href
		}
	}
	return path
}

func splitPath(currentPath string) (path, full string) {
	u, err := url.Parse(currentPath)
	if err != nil {
		return currentPath, currentPath
	}
	path = u.Path
	full = path
	if u.RawQuery != "" {
		full = path + "?" + u.RawQuery
	}
	return path, full
}

// ItemView is one rendered menu entry.
type ItemView struct {
	MenuItem
	Active bool
}

// SectionView is one rendered section.
type SectionView struct {
	Name     string
	Title    string
	Expanded bool
	Items    []ItemView
}

// MenuView is the sidebar view-model projected by HTML and terminal renderers.
type MenuView struct {
	Title      string
	ActiveHref string
	Sections   []SectionView
}

// View builds the sidebar view-model for currentPath and section state.
func (m Menu) View(currentPath string, sections *Sections) MenuView {
	active := m.ActiveHref(currentPath)
	mv := MenuView{Title: m.Title, ActiveHref: active}
	for _, sc := range m.Sections {
		sv := SectionView{
			Name:     sc.Name,
			Title:    sc.Title,
			Expanded: sections.Expanded(sc.Name),
		}
		for _, it := range sc.Items {
			sv.Items = append(sv.Items, ItemView{
				MenuItem: it,
				Active:   !it.Inert() && it.Href == active,
			})
		}
		mv.Sections = append(mv.Sections, sv)
	}
	return mv
}
