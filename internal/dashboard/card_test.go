package dashboard

import (
	"errors"
	"math"
	"testing"

	"github.com/tinytelemetry/applytrack/internal/model"
)

func TestCardForDefaults(t *testing.T) {
	t.Parallel()

	card, err := CardFor(model.ApplicationRecord{ID: "1"})
	if err != nil {
		t.Fatalf("CardFor: %v", err)
	}
	want := CardView{
		ID:       "1",
		Company:  UnknownCompany,
		Title:    UnknownPosition,
		Status:   DefaultStatus,
		Category: CategoryApplied,
		Location: UnknownLocation,
		Match:    NoMatchScore,
		Applied:  UnknownDate,
		Updated:  UnknownDate,
		URL:      "#",
	}
	if card != want {
		t.Fatalf("CardFor = %+v\nwant %+v", card, want)
	}
}

func TestCardForFormatsFields(t *testing.T) {
	t.Parallel()

	card, err := CardFor(model.ApplicationRecord{
		ID:         "2",
		Company:    "Acme Corp",
		JobTitle:   "Backend Engineer",
		Status:     "Phone Screen",
		MatchScore: score(87.4),
		AppliedAt:  day(1),
	})
	if err != nil {
		t.Fatalf("CardFor: %v", err)
	}
	if card.Match != "87%" || !card.HasScore {
		t.Errorf("Match = %q", card.Match)
	}
	if card.Applied != "Mar 1, 2025" || card.Updated != "Mar 1, 2025" {
		t.Errorf("dates = %q / %q", card.Applied, card.Updated)
	}
	if card.Category != CategoryInterview {
		t.Errorf("Category = %s", card.Category)
	}
	if card.URL != "/applications/acme-corp-backend-engineer/index.html" {
		t.Errorf("URL = %q", card.URL)
	}
}

func TestCardForRejectsBadScore(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{math.NaN(), math.Inf(1), -1, 101} {
		_, err := CardFor(model.ApplicationRecord{ID: "x", MatchScore: score(v)})
		if !errors.Is(err, ErrRenderFailure) {
			t.Errorf("score %v: err = %v, want ErrRenderFailure", v, err)
		}
	}
}

func TestDetailURLAndSlugLookup(t *testing.T) {
	t.Parallel()

	records := []model.ApplicationRecord{
		{ID: "1", FolderName: "2025-03-acme", Company: "Acme"},
		{ID: "2", Company: "Globex", JobTitle: "SRE II"},
	}
	if got := DetailURL(records[0]); got != "/applications/2025-03-acme/index.html" {
		t.Errorf("DetailURL = %q", got)
	}
	slug := SlugFromDetailPath(DetailURL(records[1]))
	if slug != "globex-sre-ii" {
		t.Fatalf("slug = %q", slug)
	}
	r, ok := FindBySlug(records, slug)
	if !ok || r.ID != "2" {
		t.Fatalf("FindBySlug = %+v, %t", r, ok)
	}
	if SlugFromDetailPath("/applications/new/index.html") != "" {
		t.Error("new-application page treated as detail")
	}
}

func TestDetailURLKeepsFolderName(t *testing.T) {
	t.Parallel()

	records := []model.ApplicationRecord{
		{ID: "1", FolderName: " Acme_Corp_SWE_2024 ", Company: "Acme", JobTitle: "SWE"},
		{ID: "2", FolderName: "Globex Platform", Company: "Globex"},
	}
	if got := DetailURL(records[0]); got != "/applications/Acme_Corp_SWE_2024/index.html" {
		t.Errorf("DetailURL = %q", got)
	}
	if got := DetailURL(records[1]); got != "/applications/Globex%20Platform/index.html" {
		t.Errorf("DetailURL = %q", got)
	}
	if r, ok := FindBySlug(records, "Acme_Corp_SWE_2024"); !ok || r.ID != "1" {
		t.Fatalf("FindBySlug(folder) = %+v, %t", r, ok)
	}
	if r, ok := FindBySlug(records, "Globex Platform"); !ok || r.ID != "2" {
		t.Fatalf("FindBySlug(decoded) = %+v, %t", r, ok)
	}
	if _, ok := FindBySlug(records, "acme-corp-swe-2024"); ok {
		t.Error("new-application page treated as detail")
	}
}

func TestNavigateInert(t *testing.T) {
	t.Parallel()

	var opened []string
	open := func(u string) { opened = append(opened, u) }
	if Navigate("#", open) || Navigate("", open) {
		t.Fatal("inert url navigated")
	}
	if !Navigate("/applications/a/index.html", open) || len(opened) != 1 {
		t.Fatalf("opened = %v", opened)
	}
}
