package domain

import "strings"

type SortMode int

const (
	SortDefault SortMode = iota
	SortDate
	SortRelevance
	SortPopularity
)

func (s SortMode) String() string {
	switch s {
	case SortDate:
		return "date"
	case SortRelevance:
		return "relevance"
	case SortPopularity:
		return "popularity"
	default:
		return ""
	}
}

// ParseSortMode accepts "", "date", "relevance" and "popularity".
// The empty string yields SortDefault.
func ParseSortMode(s string) (SortMode, bool) {
	switch strings.TrimSpace(s) {
	case "":
		return SortDefault, true
	case "date":
		return SortDate, true
	case "relevance":
		return SortRelevance, true
	case "popularity":
		return SortPopularity, true
	default:
		return SortDefault, false
	}
}

// Resolve returns the ordering that will actually be applied for f.
// Relevance without a search term falls back to the default order.
func (s SortMode) Resolve(f FilterSet) SortMode {
	if s == SortRelevance && !f.HasSearch() {
		return SortDefault
	}
	switch s {
	case SortDate, SortRelevance, SortPopularity:
		return s
	default:
		return SortDefault
	}
}
