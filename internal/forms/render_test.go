package forms

import (
	"strings"
	"testing"

	"github.com/tinytelemetry/applytrack/internal/view"
)

func TestRenderFeedbackAndCounters(t *testing.T) {
	t.Parallel()

	f := NewApplicationForm()
	if _, err := f.Input("job_url", "not a url"); err != nil {
		t.Fatalf("Input: %v", err)
	}
	if _, err := f.Input("company", strings.Repeat("x", 95)); err != nil {
		t.Fatalf("Input: %v", err)
	}

	n := Render(f, ApplicationFormAction, true)
	if action, _ := n.Get("action"); action != "/applications/new/index.html" {
		t.Fatalf("form action = %q", action)
	}

	url := n.ByID("field-job_url")
	if url == nil || !url.HasClass(string(FeedbackInvalid)) {
		t.Fatalf("job_url input = %+v", url)
	}
	if fb := n.ByClass("invalid-feedback"); len(fb) != 1 || fb[0].TextContent() != "Please enter a valid URL" {
		t.Fatalf("invalid feedback = %d nodes", len(fb))
	}

	company := n.ByID("field-company")
	if !company.HasClass(string(FeedbackValid)) {
		t.Fatalf("company classes = %v", company.Classes())
	}
	var danger *view.Node
	for _, c := range n.ByClass("char-counter") {
		if c.HasClass(string(CounterDanger)) {
			danger = c
		}
	}
	if danger == nil || danger.TextContent() != "5 characters remaining" {
		t.Fatal("expected a danger counter with 5 remaining")
	}

	if got := n.ByClass("file-label"); len(got) != 1 || got[0].TextContent() != FilePlaceholder {
		t.Fatal("file label placeholder missing")
	}
	if ind := n.ByClass("autosave-indicator"); len(ind) != 1 || !ind[0].HasClass("visible") {
		t.Fatal("saved indicator should be visible")
	}
}
