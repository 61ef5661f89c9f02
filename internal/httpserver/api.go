package httpserver

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/tinytelemetry/applytrack/internal/dashboard"
	"github.com/tinytelemetry/applytrack/internal/export"
	"github.com/tinytelemetry/applytrack/internal/forms"
	"github.com/tinytelemetry/applytrack/internal/model"
	"github.com/tinytelemetry/applytrack/internal/sidebar"
)

func (s *Server) handleHealth(c *gin.Context) {
	count, err := s.store.CountApplications()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
		return
	}

	body := gin.H{
		"status":       "ok",
		"uptime":       time.Since(s.startTime).String(),
		"applications": count,
	}
	if s.reloader != nil {
		body["sync"] = s.reloader.Status()
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) handleApplications(c *gin.Context) {
	tab := c.DefaultQuery("tab", dashboard.TabAll)
	if !dashboard.IsTab(tab) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown tab " + tab})
		return
	}
	key := dashboard.ParseSortKey(c.Query("sort"))

	records, err := s.store.ListApplications()
	if err != nil {
		log.Printf("httpserver: list applications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": dashboard.LoadFailedMessage})
		return
	}

	ctl := dashboard.NewController(dashboard.Options{Tab: tab, Sort: key})
	ctl.SetRecords(records)
	visible := ctl.Visible()
	if visible == nil {
		visible = []model.ApplicationRecord{}
	}
	c.JSON(http.StatusOK, gin.H{
		"tab":          ctl.Tab(),
		"sort":         ctl.SortKey(),
		"total":        len(records),
		"applications": visible,
	})
}

func (s *Server) handleExport(c *gin.Context) {
	records, err := s.store.ListApplications()
	if err != nil {
		log.Printf("httpserver: list applications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": dashboard.LoadFailedMessage})
		return
	}
	key := dashboard.ParseSortKey(c.Query("sort"))

	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", `attachment; filename="applications.xlsx"`)
	c.Status(http.StatusOK)
	if err := export.WriteXLSX(c.Writer, dashboard.Sort(records, key)); err != nil {
		log.Printf("httpserver: export: %v", err)
	}
}

func (s *Server) handleReload(c *gin.Context) {
	if s.reloader == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "no application source configured"})
		return
	}
	n, err := s.reloader.Sync(c.Request.Context())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"count": n})
	case errors.Is(err, dashboard.ErrDataUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "applications not available yet"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

func (s *Server) handleToggleSection(c *gin.Context) {
	vs := sessionFrom(c)
	name := c.Param("name")
	if !vs.sections.Toggle(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown section " + name})
		return
	}
	s.metrics.ObserveToggle(name)
	s.saveSession(c, vs)
	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, backTo(c))
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": vs.sections.Snapshot()})
}

// wantsJSON reports whether the caller is a script rather than a plain
// form post.
func wantsJSON(c *gin.Context) bool {
	return c.ContentType() == binding.MIMEJSON ||
		strings.Contains(c.GetHeader("Accept"), binding.MIMEJSON)
}

// backTo returns the same-site page that referred the request, or the
// dashboard.
func backTo(c *gin.Context) string {
	u, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) || !strings.HasPrefix(u.Path, "/") {
		return sidebar.DashboardHref
	}
	return u.RequestURI()
}

func (s *Server) handleSwitchTab(c *gin.Context) {
	vs := sessionFrom(c)
	tab := c.Param("tab")
	if !dashboard.IsTab(tab) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tab " + tab})
		return
	}
	vs.tab = tab
	s.saveSession(c, vs)
	c.JSON(http.StatusOK, gin.H{"tab": tab})
}

type valuesBody struct {
	Values map[string]string `json:"values" binding:"required"`
}

func (s *Server) handleValidate(c *gin.Context) {
	specs, ok := forms.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown form"})
		return
	}
	var body valuesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	results, valid := forms.ValidateValues(specs, body.Values)
	status := http.StatusOK
	if !valid {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"valid": valid, "fields": results})
}

func draftJSON(d model.Draft) gin.H {
	return gin.H{"key": d.Key, "values": d.Values, "saved_at": d.UpdatedAt}
}

func (s *Server) handleLoadDraft(c *gin.Context) {
	d, ok, err := forms.NewDrafts(s.store).Load(c.Param("id"))
	s.metrics.ObserveDraft("load", err)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no draft saved"})
		return
	}
	c.JSON(http.StatusOK, draftJSON(d))
}

func (s *Server) handleSaveDraft(c *gin.Context) {
	var body valuesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	d, err := forms.NewDrafts(s.store).Save(c.Param("id"), body.Values)
	s.metrics.ObserveDraft("save", err)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, draftJSON(d))
}

func (s *Server) handleClearDraft(c *gin.Context) {
	err := forms.NewDrafts(s.store).Clear(c.Param("id"))
	s.metrics.ObserveDraft("clear", err)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
