package dashboard

import "strings"

// Category buckets free-form status strings into dashboard tabs.
type Category string

const (
	CategoryApplied   Category = "applied"
	CategoryInterview Category = "interview"
	CategoryOffer     Category = "offer"
	CategoryRejected  Category = "rejected"
)

// Categories in tab order.
var Categories = []Category{CategoryApplied, CategoryInterview, CategoryOffer, CategoryRejected}

// TabAll shows every record regardless of category.
const TabAll = "all"

// Tabs lists every tab name in display order.
func Tabs() []string {
	tabs := []string{TabAll}
	for _, c := range Categories {
		tabs = append(tabs, string(c))
	}
	return tabs
}

// TabLabel is the display title of a tab.
func TabLabel(tab string) string {
	switch tab {
	case TabAll:
		return "All"
	case string(CategoryApplied):
		return "Applied"
	case string(CategoryInterview):
		return "Interviewing"
	case string(CategoryOffer):
		return "Offers"
	case string(CategoryRejected):
		return "Rejected"
	}
	return tab
}

// IsTab reports whether tab names a dashboard tab.
func IsTab(tab string) bool {
	for _, t := range Tabs() {
		if t == tab {
			return true
		}
	}
	return false
}

// statusRules are checked in order; the first rule with a matching
// substring wins.
var statusRules = []struct {
	category Category
	needles  []string
}{
	{CategoryOffer, []string{"offer"}},
	{CategoryRejected, []string{"reject", "declin", "not selected", "no longer"}},
	{CategoryInterview, []string{"interview", "screen", "assessment", "onsite"}},
	{CategoryApplied, []string{"applied", "submitted", "pending"}},
}

// Categorize maps a status string to its category. Matching is
// case-insensitive; anything unrecognized counts as applied.
func Categorize(status string) Category {
	s := strings.ToLower(status)
	for _, rule := range statusRules {
		for _, needle := range rule.needles {
			if strings.Contains(s, needle) {
				return rule.category
			}
		}
	}
	return CategoryApplied
}
