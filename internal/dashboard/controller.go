package dashboard

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/tinytelemetry/applytrack/internal/model"
	"github.com/tinytelemetry/applytrack/internal/view"
)

// State is the load state of the dashboard.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateEmpty
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	}
	return "unknown"
}

// LoadFailedMessage is the notification shown when loading fails.
const LoadFailedMessage = "Failed to load applications"

// Poller fetches records, retrying until data is available.
type Poller interface {
	Poll(ctx context.Context) ([]model.ApplicationRecord, error)
}

// Options configures a Controller.
type Options struct {
	Tab             string
	Sort            SortKey
	NotificationTTL time.Duration
	// Base is the page path used for tab and sort links.
	Base string
}

// Controller owns the dashboard view state: records, active tab, sort key,
// load state and notifications. It is not safe for concurrent use; each
// front end owns its controller from a single goroutine.
type Controller struct {
	records []model.ApplicationRecord
	tab     string
	sortKey SortKey
	state   State
	notes   notifications
	base    string

	// last successfully rendered tree, returned when a render fails
	last *view.Node
}

// NewController returns a controller in the loading state.
func NewController(opts Options) *Controller {
	c := &Controller{
		tab:     TabAll,
		sortKey: DefaultSortKey,
		state:   StateLoading,
		base:    opts.Base,
		notes:   notifications{ttl: opts.NotificationTTL},
	}
	if c.notes.ttl <= 0 {
		c.notes.ttl = model.DefaultNotificationTTL
	}
	if c.base == "" {
		c.base = "/dashboard/index.html"
	}
	if opts.Tab != "" {
		c.SwitchTab(opts.Tab)
	}
	if opts.Sort != "" {
		c.sortKey = opts.Sort
	}
	return c
}

// Load polls p and applies the outcome. See Apply.
func (c *Controller) Load(ctx context.Context, p Poller) error {
	c.Begin()
	records, err := p.Poll(ctx)
	return c.Apply(records, err, time.Now())
}

// Begin enters the loading state ahead of an asynchronous fetch whose
// outcome is later passed to Apply.
func (c *Controller) Begin() {
	c.state = StateLoading
}

// Apply moves the controller out of the loading state given the result of a
// fetch. Data becomes loaded, or empty when there are no records. Data that
// never became available is an empty state without notification. Any other
// error sets the error state and raises a transient notification. A
// cancelled context leaves the state untouched.
func (c *Controller) Apply(records []model.ApplicationRecord, err error, now time.Time) error {
	switch {
	case err == nil:
		c.SetRecords(records)
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, ErrDataUnavailable):
		log.Printf("dashboard: %v", err)
		c.records = nil
		c.state = StateEmpty
		return nil
	default:
		log.Printf("dashboard: load applications: %v", err)
		c.records = nil
		c.state = StateError
		c.notes.push(LoadFailedMessage, LevelError, now)
		return err
	}
}

// SetRecords replaces the record list wholesale.
func (c *Controller) SetRecords(records []model.ApplicationRecord) {
	c.records = append([]model.ApplicationRecord(nil), records...)
	if len(c.records) == 0 {
		c.state = StateEmpty
	} else {
		c.state = StateLoaded
	}
}

// Records returns the record list in load order.
func (c *Controller) Records() []model.ApplicationRecord {
	return append([]model.ApplicationRecord(nil), c.records...)
}

// State returns the current load state.
func (c *Controller) State() State { return c.state }

// Tab returns the active tab.
func (c *Controller) Tab() string { return c.tab }

// SortKey returns the active sort key.
func (c *Controller) SortKey() SortKey { return c.sortKey }

// SwitchTab activates tab. Unknown tabs are logged and ignored.
func (c *Controller) SwitchTab(tab string) bool {
	if !IsTab(tab) {
		log.Printf("dashboard: no tab %q, switch ignored", tab)
		return false
	}
	c.tab = tab
	return true
}

// SetSort changes the sort key. Unknown keys keep records in load order.
func (c *Controller) SetSort(key SortKey) {
	c.sortKey = key
}

// Notify shows msg until the notification TTL elapses.
func (c *Controller) Notify(msg string, level Level, now time.Time) Notification {
	return c.notes.push(msg, level, now)
}

// Dismiss removes a notification before it expires.
func (c *Controller) Dismiss(id int) bool {
	return c.notes.dismiss(id)
}

// Notifications returns the notifications still visible at now.
func (c *Controller) Notifications(now time.Time) []Notification {
	return c.notes.active(now)
}

// Visible returns the records of the active tab in sort order.
func (c *Controller) Visible() []model.ApplicationRecord {
	return Sort(c.inTab(c.tab), c.sortKey)
}

func (c *Controller) inTab(tab string) []model.ApplicationRecord {
	if tab == TabAll {
		return c.records
	}
	var out []model.ApplicationRecord
	for _, r := range c.records {
		if string(Categorize(r.Status)) == tab {
			out = append(out, r)
		}
	}
	return out
}

// StatusCounts returns the number of records per category.
func (c *Controller) StatusCounts() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, cat := range Categories {
		counts[cat] = 0
	}
	for _, r := range c.records {
		counts[Categorize(r.Status)]++
	}
	return counts
}

// TabView describes one tab button.
type TabView struct {
	Name   string
	Label  string
	Count  int
	Active bool
}

// SortOption describes one entry of the sort selector.
type SortOption struct {
	Key      SortKey
	Label    string
	Selected bool
}

// DashboardView is the render-ready projection of the controller.
type DashboardView struct {
	State         State
	ActiveTab     string
	SortKey       SortKey
	Total         int
	Tabs          []TabView
	SortOptions   []SortOption
	Cards         []CardView
	Notifications []Notification
}

// View projects the controller state at now. It fails with an error
// wrapping ErrRenderFailure when a visible record cannot be shown.
func (c *Controller) View(now time.Time) (DashboardView, error) {
	v := DashboardView{
		State:         c.state,
		ActiveTab:     c.tab,
		SortKey:       c.sortKey,
		Total:         len(c.records),
		Notifications: c.Notifications(now),
	}

	counts := c.StatusCounts()
	for _, tab := range Tabs() {
		n := len(c.records)
		if tab != TabAll {
			n = counts[Category(tab)]
		}
		v.Tabs = append(v.Tabs, TabView{Name: tab, Label: TabLabel(tab), Count: n, Active: tab == c.tab})
	}
	for _, k := range SortKeys {
		v.SortOptions = append(v.SortOptions, SortOption{Key: k, Label: k.Label(), Selected: k == c.sortKey})
	}

	if c.state != StateLoaded {
		return v, nil
	}
	for _, r := range c.Visible() {
		card, err := CardFor(r)
		if err != nil {
			return DashboardView{}, err
		}
		v.Cards = append(v.Cards, card)
	}
	return v, nil
}

// Render returns the dashboard element tree at now. When the view cannot be
// built the failure is logged and the previously rendered tree is returned.
func (c *Controller) Render(now time.Time) *view.Node {
	v, err := c.View(now)
	if err != nil {
		log.Printf("dashboard: render: %v", err)
		if c.last == nil {
			c.last = renderShell(c.state)
		}
		return c.last
	}
	c.last = RenderView(v, c.base)
	return c.last
}
