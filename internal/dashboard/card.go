package dashboard

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/tinytelemetry/applytrack/internal/model"
)

// Display defaults for missing record fields.
const (
	UnknownCompany  = "Unknown Company"
	UnknownPosition = "Unknown Position"
	DefaultStatus   = "Applied"
	UnknownLocation = "Location not specified"
	NoMatchScore    = "N/A"
	UnknownDate     = "Unknown"

	DateLayout = "Jan 2, 2006"
)

// CardView is the display form of one application record.
type CardView struct {
	ID       string
	Company  string
	Title    string
	Status   string
	Category Category
	Location string
	Match    string
	// Score is the numeric match score; valid only when HasScore is set.
	Score    float64
	HasScore bool
	Applied  string
	Updated  string
	URL      string
}

// CardFor builds the card for r, substituting display defaults for missing
// fields. A match score that is not a finite value in [0, 100] cannot be
// shown and yields an error wrapping ErrRenderFailure.
func CardFor(r model.ApplicationRecord) (CardView, error) {
	card := CardView{
		ID:       r.ID,
		Company:  orDefault(r.Company, UnknownCompany),
		Title:    orDefault(r.JobTitle, UnknownPosition),
		Status:   orDefault(r.Status, DefaultStatus),
		Category: Categorize(r.Status),
		Location: orDefault(r.Location, UnknownLocation),
		Match:    NoMatchScore,
		Applied:  formatDate(r.AppliedAt),
		Updated:  formatDate(r.LastActivity()),
		URL:      DetailURL(r),
	}
	if r.MatchScore != nil {
		score := *r.MatchScore
		if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 || score > 100 {
			return CardView{}, fmt.Errorf("%w: record %q has match score %v", ErrRenderFailure, r.ID, score)
		}
		card.Score = score
		card.HasScore = true
		card.Match = fmt.Sprintf("%.0f%%", score)
	}
	return card, nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return UnknownDate
	}
	return t.Format(DateLayout)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// DetailSlug returns the detail page folder of r: the folder name as given,
// or a slug of company and title when the record has none.
func DetailSlug(r model.ApplicationRecord) string {
	if folder := strings.TrimSpace(r.FolderName); folder != "" {
		return folder
	}
	return Slugify(strings.TrimSpace(r.Company + " " + r.JobTitle))
}

// DetailURL returns the detail page address of r. Records with neither a
// folder name nor company and title get the inert "#".
func DetailURL(r model.ApplicationRecord) string {
	slug := DetailSlug(r)
	if slug == "" {
		return "#"
	}
	return "/applications/" + url.PathEscape(slug) + "/index.html"
}

// SlugFromDetailPath extracts the slug from a detail page path, or "" when
// path is not a detail page.
func SlugFromDetailPath(path string) string {
	rest, ok := strings.CutPrefix(path, "/applications/")
	if !ok {
		return ""
	}
	slug, _, _ := strings.Cut(rest, "/")
	if slug == "new" {
		return ""
	}
	return slug
}

// FindBySlug returns the record whose detail folder is slug. Both the
// decoded folder and its escaped path form match.
func FindBySlug(records []model.ApplicationRecord, slug string) (model.ApplicationRecord, bool) {
	if slug == "" {
		return model.ApplicationRecord{}, false
	}
	for _, r := range records {
		folder := DetailSlug(r)
		if folder != "" && (folder == slug || url.PathEscape(folder) == slug) {
			return r, true
		}
	}
	return model.ApplicationRecord{}, false
}

// Navigate follows href with open unless it is inert ("#" or empty).
// It reports whether navigation happened.
func Navigate(href string, open func(string)) bool {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" || open == nil {
		return false
	}
	open(href)
	return true
}
