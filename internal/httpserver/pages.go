package httpserver

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinytelemetry/applytrack/internal/dashboard"
	"github.com/tinytelemetry/applytrack/internal/forms"
	"github.com/tinytelemetry/applytrack/internal/sidebar"
	"github.com/tinytelemetry/applytrack/internal/view"
)

const htmlContentType = "text/html; charset=utf-8"

func document(title string, content *view.Node) *view.Node {
	return view.Document(view.El("html", view.A("lang", "en"),
		view.El("head", nil,
			view.El("meta", view.A("charset", "utf-8")),
			view.El("meta", view.A("name", "viewport", "content", "width=device-width, initial-scale=1")),
			view.El("title", nil, view.Text(title+" - Job Tracker")),
			view.El("link", view.A("rel", "stylesheet", "href", "/static/app.css")),
			view.El("script", view.A("src", "/static/app.js", "defer", "")),
		),
		view.El("body", nil,
			view.El("main", view.A("id", "content", "class", "content"), content),
		),
	))
}

// renderPage wraps content in a page, injects the sidebar unless the request
// is embedded, and writes the markup.
func (s *Server) renderPage(c *gin.Context, status int, title string, content *view.Node) {
	vs := sessionFrom(c)
	page := document(title, content)
	menu := sidebar.Render(s.menu.View(c.Request.URL.RequestURI(), vs.sections))
	sidebar.Inject(page, menu, sidebar.Embedded(c.Request.URL.Query(), c.Request.Header))

	out, err := view.RenderString(page)
	if err != nil {
		log.Printf("httpserver: render %s: %v", c.Request.URL.Path, err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(status, htmlContentType, []byte(out))
}

// controllerFor builds a dashboard controller for the session and loads the
// stored records into it.
func (s *Server) controllerFor(vs *viewSession) *dashboard.Controller {
	ctl := dashboard.NewController(dashboard.Options{Tab: vs.tab, Sort: vs.sort})
	records, err := s.store.ListApplications()
	if err := ctl.Apply(records, err, time.Now()); err != nil {
		log.Printf("httpserver: list applications: %v", err)
	}
	return ctl
}

func (s *Server) handleDashboard(c *gin.Context) {
	vs := sessionFrom(c)
	if tab := c.Query("tab"); tab != "" && dashboard.IsTab(tab) {
		vs.tab = tab
	}
	if q := c.Query("sort"); q != "" {
		if key := dashboard.ParseSortKey(q); key.Valid() {
			vs.sort = key
		}
	}
	s.saveSession(c, vs)

	ctl := s.controllerFor(vs)
	s.renderPage(c, http.StatusOK, "Dashboard", ctl.Render(time.Now()))
}

func (s *Server) handleDetail(c *gin.Context) {
	records, err := s.store.ListApplications()
	if err != nil {
		log.Printf("httpserver: list applications: %v", err)
		s.renderPage(c, http.StatusInternalServerError, "Error",
			view.El("div", view.A("class", "error-state"), view.Text(dashboard.LoadFailedMessage)))
		return
	}

	rec, ok := dashboard.FindBySlug(records, c.Param("slug"))
	if !ok {
		s.renderPage(c, http.StatusNotFound, "Not Found",
			view.El("div", view.A("class", "empty-state"), view.Text("Application not found")))
		return
	}
	card, err := dashboard.CardFor(rec)
	if err != nil {
		log.Printf("httpserver: detail %s: %v", rec.ID, err)
		s.renderPage(c, http.StatusInternalServerError, "Error",
			view.El("div", view.A("class", "error-state"), view.Text("Could not display this application")))
		return
	}
	s.renderPage(c, http.StatusOK, card.Company+" - "+card.Title, dashboard.RenderDetail(card))
}

func (s *Server) handleNewApplication(c *gin.Context) {
	form := forms.NewApplicationForm()
	draft, ok, err := forms.NewDrafts(s.store).Load(form.ID())
	s.metrics.ObserveDraft("load", err)
	switch {
	case err != nil:
		log.Printf("httpserver: load draft: %v", err)
	case ok:
		form.Restore(draft.Values)
	}
	s.renderPage(c, http.StatusOK, "Add Application", forms.Render(form, forms.ApplicationFormAction, false))
}

// applicationInput is the posted new-application form.
type applicationInput struct {
	Company      string `form:"company" json:"company"`
	JobTitle     string `form:"job_title" json:"job_title"`
	Location     string `form:"location" json:"location"`
	JobURL       string `form:"job_url" json:"job_url"`
	ContactEmail string `form:"contact_email" json:"contact_email"`
	Notes        string `form:"notes" json:"notes"`
	Resume       string `form:"resume" json:"resume"`
}

func (in applicationInput) values() map[string]string {
	return map[string]string{
		"company":       in.Company,
		"job_title":     in.JobTitle,
		"location":      in.Location,
		"job_url":       in.JobURL,
		"contact_email": in.ContactEmail,
		"notes":         in.Notes,
		"resume":        in.Resume,
	}
}

func (s *Server) handleSubmitApplication(c *gin.Context) {
	var in applicationInput
	if err := c.ShouldBind(&in); err != nil {
		c.String(http.StatusBadRequest, "invalid form body")
		return
	}

	form := forms.NewApplicationForm()
	for name, v := range in.values() {
		if _, err := form.Input(name, v); err != nil {
			log.Printf("httpserver: submit application: %v", err)
		}
	}
	if !form.Submit() {
		s.renderPage(c, http.StatusUnprocessableEntity, "Add Application", forms.Render(form, forms.ApplicationFormAction, false))
		return
	}

	err := forms.NewDrafts(s.store).Clear(form.ID())
	s.metrics.ObserveDraft("clear", err)
	if err != nil {
		log.Printf("httpserver: clear draft: %v", err)
	}
	content := view.El("div", nil,
		view.El("div", view.A("class", "alert alert-success", "role", "status"), view.Text("Application submitted")),
		forms.Render(form, forms.ApplicationFormAction, false),
	)
	s.renderPage(c, http.StatusOK, "Add Application", content)
}
