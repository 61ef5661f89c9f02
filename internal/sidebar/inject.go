package sidebar

import (
	"net/http"
	"net/url"

	"github.com/tinytelemetry/applytrack/internal/view"
)

// BodyClass marks a page body that carries the sidebar.
const BodyClass = "has-sidebar"

// Embedded reports whether a request renders inside a nested frame, in which
// case the sidebar is not injected.
func Embedded(query url.Values, header http.Header) bool {
	if v := query.Get("embedded"); v == "1" || v == "true" {
		return true
	}
	return header.Get("Sec-Fetch-Dest") == "iframe"
}

// Inject places menu as the first child of page's body, replacing any
// sidebar already present, and marks the body with BodyClass. Calling it
// repeatedly leaves exactly one sidebar. It does nothing and returns false
// when embedded is set or page has no body.
func Inject(page, menu *view.Node, embedded bool) bool {
	if embedded || page == nil || menu == nil {
		return false
	}
	body := page.ByTag("body")
	if body == nil {
		return false
	}
	page.RemoveByID("sidebar")
	body.Prepend(menu)
	body.AddClass(BodyClass)
	return true
}
