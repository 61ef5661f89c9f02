package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	}
	m.ObserveLoad("loaded")
	m.SetApplications(map[string]int{"offer": 2})
	m.ObserveDraft("save", errors.New("boom"))
	m.ObserveToggle("admin")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(w.Body)
	out := string(body)

	for _, want := range []string{
		`applytrack_http_requests_total{method="GET",route="/api/health",status="200"} 3`,
		`applytrack_loads_total{result="loaded"} 1`,
		`applytrack_applications{category="offer"} 2`,
		`applytrack_draft_writes_total{op="save",result="error"} 1`,
		`applytrack_section_toggles_total{section="admin"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestNewUsesIndependentRegistries(t *testing.T) {
	// Registering twice on the default registry would panic.
	a, b := New(), New()
	if a.Registry() == b.Registry() {
		t.Fatal("registries are shared")
	}
}
