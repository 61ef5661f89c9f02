// Package httpserver serves the dashboard pages and the JSON API.
package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinytelemetry/applytrack/internal/ingest"
	"github.com/tinytelemetry/applytrack/internal/metrics"
	"github.com/tinytelemetry/applytrack/internal/model"
	"github.com/tinytelemetry/applytrack/internal/session"
	"github.com/tinytelemetry/applytrack/internal/sidebar"
)

// Store is the storage contract required by the HTTP server.
type Store interface {
	model.ReadAPI
	CountApplications() (int64, error)
}

// Reloader refreshes stored records from the configured source.
type Reloader interface {
	Sync(ctx context.Context) (int, error)
	Status() ingest.Status
}

// Options configures a Server. Store is required.
type Options struct {
	Addr     string
	Store    Store
	Reloader Reloader
	Sessions session.Store
	Metrics  *metrics.Metrics
	Menu     *sidebar.Menu
	Variant  sidebar.Variant
}

// Server provides the dashboard UI and API over HTTP.
type Server struct {
	addr     string
	store    Store
	reloader Reloader
	sessions session.Store
	metrics  *metrics.Metrics
	menu     sidebar.Menu
	variant  sidebar.Variant

	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP server.
func NewServer(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:3000"
	}
	if opts.Sessions == nil {
		opts.Sessions = session.NewMemoryStore(session.DefaultTTL)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	menu := sidebar.DefaultMenu()
	if opts.Menu != nil {
		menu = *opts.Menu
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:      opts.Addr,
		store:     opts.Store,
		reloader:  opts.Reloader,
		sessions:  opts.Sessions,
		metrics:   opts.Metrics,
		menu:      menu,
		variant:   opts.Variant,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.metrics.Middleware())

	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	r.GET("/api/health", s.handleHealth)
	r.StaticFS("/static", staticFS())

	api := r.Group("/api")
	api.GET("/applications", s.handleApplications)
	api.GET("/applications/export.xlsx", s.handleExport)
	api.POST("/applications/reload", s.handleReload)
	api.POST("/forms/:id/validate", s.handleValidate)
	api.GET("/forms/:id/draft", s.handleLoadDraft)
	api.PUT("/forms/:id/draft", s.handleSaveDraft)
	api.DELETE("/forms/:id/draft", s.handleClearDraft)

	stateful := r.Group("/", s.sessionMiddleware())
	stateful.POST("/api/sections/:name/toggle", s.handleToggleSection)
	stateful.POST("/api/tabs/:tab", s.handleSwitchTab)
	stateful.GET("/", s.handleDashboard)
	stateful.GET("/index.html", s.handleDashboard)
	stateful.GET("/dashboard/index.html", s.handleDashboard)
	stateful.GET("/applications/new/index.html", s.handleNewApplication)
	stateful.POST("/applications/new/index.html", s.handleSubmitApplication)
	stateful.GET("/applications/:slug/index.html", s.handleDetail)

	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.addr = listener.Addr().String()
	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Addr returns the listen address, resolved once Start has run.
func (s *Server) Addr() string { return s.addr }

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
