package sidebar

import (
	"strings"
	"testing"

	"github.com/tinytelemetry/applytrack/internal/view"
)

func TestActiveHref(t *testing.T) {
	t.Parallel()

	m := DefaultMenu()
	tests := []struct {
		path string
		want string
	}{
		{"/dashboard/index.html", DashboardHref},
		{"/dashboard/index.html?tab=offer", DashboardHref},
		{"/resume/index.html", "/resume/index.html"},
		{"/", DashboardHref},
		{"/index.html", DashboardHref},
		{"/applications/acme-engineer/index.html", DashboardHref},
		{"/applications/new/index.html", NewAppHref},
		{"/applications/new/step2.html", "/applications/new/step2.html"},
		{"/admin/users/index.html", SettingsHref},
		{"/help/faq/index.html", HelpCenterHref},
		{"/somewhere/else", "/somewhere/else"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := m.ActiveHref(tt.path); got != tt.want {
				t.Errorf("ActiveHref(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestActiveHrefPrefersPathWithQuery(t *testing.T) {
	t.Parallel()

	m := Menu{Sections: []SectionConfig{{
		Name: SectionMain,
		Items: []MenuItem{
			{Href: "/reports/index.html", Label: "Reports"},
			{Href: "/reports/index.html?view=weekly", Label: "Weekly"},
		},
	}}}
	if got := m.ActiveHref("/reports/index.html?view=weekly"); got != "/reports/index.html?view=weekly" {
		t.Fatalf("ActiveHref = %q", got)
	}
	if got := m.ActiveHref("/reports/index.html?view=monthly"); got != "/reports/index.html" {
		t.Fatalf("ActiveHref = %q", got)
	}
}

func TestViewMarksSingleActiveItem(t *testing.T) {
	t.Parallel()

	mv := DefaultMenu().View("/applications/x/index.html", NewSections(VariantDemo))
	active := 0
	for _, sv := range mv.Sections {
		for _, it := range sv.Items {
			if it.Active {
				active++
				if it.Href != DashboardHref {
					t.Errorf("active item = %s", it.Href)
				}
			}
		}
	}
	if active != 1 {
		t.Fatalf("active items = %d, want 1", active)
	}
	if mv.Sections[1].Expanded || !mv.Sections[2].Expanded {
		t.Fatalf("section flags = %+v", mv.Sections)
	}
}

func TestRenderSidebar(t *testing.T) {
	t.Parallel()

	nav := Render(DefaultMenu().View("/help/index.html", NewSections(VariantBase)))
	if nav.ID() != "sidebar" || !nav.HasClass("sidebar") {
		t.Fatalf("root = %s %v", nav.ID(), nav.Classes())
	}
	sections := nav.ByClass("sidebar-section")
	if len(sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(sections))
	}
	for _, sec := range sections {
		name, _ := sec.Get("data-section")
		list := sec.ByClass("section-items")[0]
		btn := sec.ByTag("button")
		expanded, _ := btn.Get("aria-expanded")
		if (expanded == "true") == list.HasClass("collapsed") {
			t.Errorf("section %s: aria-expanded=%s collapsed=%t", name, expanded, list.HasClass("collapsed"))
		}
		form := sec.ByTag("form")
		if form == nil {
			t.Fatalf("section %s: no toggle form", name)
		}
		method, _ := form.Get("method")
		action, _ := form.Get("action")
		if method != "post" || action != "/api/sections/"+name+"/toggle" {
			t.Errorf("section %s: form %s %s", name, method, action)
		}
		if typ, _ := btn.Get("type"); typ != "submit" {
			t.Errorf("section %s: toggle button type = %q", name, typ)
		}
	}

	active := nav.ByClass("active")
	if len(active) != 1 || !strings.Contains(active[0].TextContent(), "Help Center") {
		t.Fatalf("active = %v", active)
	}
	actions := nav.FindAll(func(n *view.Node) bool {
		_, ok := n.Get("data-action")
		return ok
	})
	if len(actions) != 2 {
		t.Fatalf("action items = %d, want 2", len(actions))
	}
}

func page() *view.Node {
	return view.Document(view.El("html", nil,
		view.El("head", nil, view.El("title", nil, view.Text("Dashboard"))),
		view.El("body", nil, view.El("main", view.A("id", "content"))),
	))
}

func TestInjectIdempotent(t *testing.T) {
	t.Parallel()

	p := page()
	menu := DefaultMenu()
	for i := 0; i < 3; i++ {
		nav := Render(menu.View("/", NewSections(VariantBase)))
		if !Inject(p, nav, false) {
			t.Fatalf("Inject #%d returned false", i)
		}
	}
	sidebars := p.FindAll(func(n *view.Node) bool { return n.ID() == "sidebar" })
	if len(sidebars) != 1 {
		t.Fatalf("sidebars = %d, want 1", len(sidebars))
	}
	body := p.ByTag("body")
	if body.Children[0].ID() != "sidebar" {
		t.Fatal("sidebar is not the first body child")
	}
	if !body.HasClass(BodyClass) {
		t.Fatal("body missing has-sidebar")
	}
	out, err := view.RenderString(p)
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if strings.Count(out, `id="sidebar"`) != 1 {
		t.Fatalf("rendered sidebars: %s", out)
	}
}

func TestInjectSkippedWhenEmbedded(t *testing.T) {
	t.Parallel()

	p := page()
	nav := Render(DefaultMenu().View("/", NewSections(VariantBase)))
	if Inject(p, nav, true) {
		t.Fatal("Inject returned true for embedded page")
	}
	if p.ByID("sidebar") != nil || p.ByTag("body").HasClass(BodyClass) {
		t.Fatal("embedded page was modified")
	}
}
