package dashboard

import (
	"sort"
	"strings"

	"github.com/tinytelemetry/applytrack/internal/model"
)

// SortKey names an ordering of the application list.
type SortKey string

const (
	SortUpdatedDesc SortKey = "updated_desc"
	SortUpdatedAsc  SortKey = "updated_asc"
	SortAppliedDesc SortKey = "applied_desc"
	SortAppliedAsc  SortKey = "applied_asc"
	SortMatchDesc   SortKey = "match_desc"
	SortMatchAsc    SortKey = "match_asc"

	DefaultSortKey = SortUpdatedDesc
)

// SortKeys lists the canonical keys in the order the sort selector shows them.
var SortKeys = []SortKey{
	SortUpdatedDesc,
	SortUpdatedAsc,
	SortAppliedDesc,
	SortAppliedAsc,
	SortMatchDesc,
	SortMatchAsc,
}

var sortAliases = map[string]SortKey{
	"newest":       SortUpdatedDesc,
	"recent":       SortUpdatedDesc,
	"oldest":       SortUpdatedAsc,
	"applied":      SortAppliedDesc,
	"date_applied": SortAppliedDesc,
	"match":        SortMatchDesc,
	"best_match":   SortMatchDesc,
	"worst_match":  SortMatchAsc,
}

var sortLabels = map[SortKey]string{
	SortUpdatedDesc: "Recently Updated",
	SortUpdatedAsc:  "Least Recently Updated",
	SortAppliedDesc: "Newest Applied",
	SortAppliedAsc:  "Oldest Applied",
	SortMatchDesc:   "Best Match",
	SortMatchAsc:    "Lowest Match",
}

// ParseSortKey normalizes s to a canonical key. Empty input yields the
// default key; unrecognized input is returned lowercased so that sorting by
// it keeps the original order.
func ParseSortKey(s string) SortKey {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultSortKey
	}
	if k, ok := sortAliases[s]; ok {
		return k
	}
	return SortKey(s)
}

// Valid reports whether k is one of the canonical keys.
func (k SortKey) Valid() bool {
	_, ok := sortLabels[k]
	return ok
}

// Label is the human-readable name shown in the sort selector.
func (k SortKey) Label() string {
	if l, ok := sortLabels[k]; ok {
		return l
	}
	return string(k)
}

// Sort returns a stably sorted copy of records. Records with equal keys keep
// their relative order; an unknown key returns the records unchanged.
func Sort(records []model.ApplicationRecord, key SortKey) []model.ApplicationRecord {
	out := make([]model.ApplicationRecord, len(records))
	copy(out, records)

	less := lessFunc(out, key)
	if less == nil {
		return out
	}
	sort.SliceStable(out, less)
	return out
}

func lessFunc(rs []model.ApplicationRecord, key SortKey) func(i, j int) bool {
	switch key {
	case SortUpdatedDesc:
		return func(i, j int) bool {
			return model.EpochMillis(rs[i].LastActivity()) > model.EpochMillis(rs[j].LastActivity())
		}
	case SortUpdatedAsc:
		return func(i, j int) bool {
			return model.EpochMillis(rs[i].LastActivity()) < model.EpochMillis(rs[j].LastActivity())
		}
	case SortAppliedDesc:
		return func(i, j int) bool {
			return model.EpochMillis(rs[i].AppliedAt) > model.EpochMillis(rs[j].AppliedAt)
		}
	case SortAppliedAsc:
		return func(i, j int) bool {
			return model.EpochMillis(rs[i].AppliedAt) < model.EpochMillis(rs[j].AppliedAt)
		}
	case SortMatchDesc:
		return func(i, j int) bool { return rs[i].Score() > rs[j].Score() }
	case SortMatchAsc:
		return func(i, j int) bool { return rs[i].Score() < rs[j].Score() }
	}
	return nil
}
