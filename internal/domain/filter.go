package domain

import "time"

// DateInterval is a closed range on event start time. From is 00:00:00 of its
// day and To is the last representable microsecond of its day.
type DateInterval struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls within the interval, bounds included.
func (d DateInterval) Contains(t time.Time) bool {
	return !t.Before(d.From) && !t.After(d.To)
}

// FilterSet is the canonical, already-normalized set of listing filters.
// A nil field means the filter is not applied.
type FilterSet struct {
	Modality *EventModality
	Pricing  *PricingModality
	Search   *string
	Region   *string
	Category *string
	Interval *DateInterval
}

func (f FilterSet) HasSearch() bool { return f.Search != nil && *f.Search != "" }

// Predicate is one clause of a listing query. All clauses of a FilterSet are
// combined with AND.
type Predicate interface {
	predicate()
}

type ModalityEquals struct{ Value EventModality }

type PricingEquals struct{ Value PricingModality }

// TextContains matches a case-insensitive substring of name, summary or description.
type TextContains struct{ Term string }

type RegionContains struct{ Term string }

type CategoryContains struct{ Term string }

type StartWithin struct{ Interval DateInterval }

func (ModalityEquals) predicate()   {}
func (PricingEquals) predicate()    {}
func (TextContains) predicate()     {}
func (RegionContains) predicate()   {}
func (CategoryContains) predicate() {}
func (StartWithin) predicate()      {}

// Predicates returns the clauses in a fixed order so that identical filter
// sets always produce identical queries.
func (f FilterSet) Predicates() []Predicate {
	var out []Predicate
	if f.Modality != nil {
		out = append(out, ModalityEquals{Value: *f.Modality})
	}
	if f.Pricing != nil {
		out = append(out, PricingEquals{Value: *f.Pricing})
	}
	if f.Region != nil && *f.Region != "" {
		out = append(out, RegionContains{Term: *f.Region})
	}
	if f.Category != nil && *f.Category != "" {
		out = append(out, CategoryContains{Term: *f.Category})
	}
	if f.Interval != nil {
		out = append(out, StartWithin{Interval: *f.Interval})
	}
	if f.HasSearch() {
		out = append(out, TextContains{Term: *f.Search})
	}
	return out
}
