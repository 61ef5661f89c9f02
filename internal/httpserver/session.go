package httpserver

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tinytelemetry/applytrack/internal/dashboard"
	"github.com/tinytelemetry/applytrack/internal/session"
	"github.com/tinytelemetry/applytrack/internal/sidebar"
)

const (
	sessionCookie = "applytrack_session"
	sessionCtxKey = "applytrack.session"
)

// viewSession is the per-visitor state for one request.
type viewSession struct {
	id       string
	fresh    bool
	sections *sidebar.Sections
	tab      string
	sort     dashboard.SortKey
}

func (v *viewSession) state() session.State {
	return session.State{Sections: v.sections.State(), Tab: v.tab, Sort: string(v.sort)}
}

func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		vs := &viewSession{sections: sidebar.NewSections(s.variant)}

		id, err := c.Cookie(sessionCookie)
		if err == nil {
			if _, perr := uuid.Parse(id); perr == nil {
				vs.id = id
			}
		}
		if vs.id != "" {
			st, err := s.sessions.Get(c.Request.Context(), vs.id)
			switch {
			case err == nil:
				vs.sections = sidebar.RestoreSections(st.Sections, s.variant)
				vs.tab = st.Tab
				if key := dashboard.ParseSortKey(st.Sort); key.Valid() {
					vs.sort = key
				} else {
					vs.sort = dashboard.DefaultSortKey
				}
			case errors.Is(err, session.ErrNotFound):
				vs.fresh = true
			default:
				log.Printf("httpserver: load session: %v", err)
			}
		} else {
			vs.id = uuid.NewString()
			vs.fresh = true
		}

		c.SetCookie(sessionCookie, vs.id, int(session.DefaultTTL.Seconds()), "/", "", false, true)
		c.Set(sessionCtxKey, vs)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *viewSession {
	return c.MustGet(sessionCtxKey).(*viewSession)
}

// saveSession persists vs. Failures are logged; the response still succeeds
// with the in-request state.
func (s *Server) saveSession(c *gin.Context, vs *viewSession) {
	ctx := c.Request.Context()
	if err := s.sessions.Save(ctx, vs.id, vs.state()); err != nil {
		log.Printf("httpserver: save session: %v", err)
		return
	}
	if vs.fresh {
		vs.fresh = false
		if n, err := s.sessions.Count(ctx); err == nil {
			s.metrics.SetSessions(n)
		}
	}
}
