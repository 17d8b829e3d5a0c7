package listing

import (
	"strings"
	"time"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/domain"
)

const dateLayout = "2006-01-02"

// RawFilters carries filter values exactly as the caller received them.
type RawFilters struct {
	Modality      string
	Pricing       string
	Search        string
	Region        string
	Category      string
	IntervalStart string
	IntervalEnd   string
}

// Normalize keeps only the well-formed subset of raw. It never fails:
// anything malformed is simply not applied. Interval days are read in loc
// (UTC when nil).
func Normalize(raw RawFilters, loc *time.Location) domain.FilterSet {
	var f domain.FilterSet

	if m := domain.EventModality(strings.TrimSpace(raw.Modality)); m.Valid() {
		f.Modality = &m
	}
	if p := domain.PricingModality(strings.TrimSpace(raw.Pricing)); p.Valid() {
		f.Pricing = &p
	}
	f.Search = nonEmpty(raw.Search)
	f.Region = nonEmpty(raw.Region)
	f.Category = nonEmpty(raw.Category)
	f.Interval = parseInterval(raw.IntervalStart, raw.IntervalEnd, loc)

	return f
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// parseInterval expands two YYYY-MM-DD days into full-day bounds. Either
// bound missing or unparseable drops the whole interval.
func parseInterval(start, end string, loc *time.Location) *domain.DateInterval {
	if loc == nil {
		loc = time.UTC
	}
	from, err := time.ParseInLocation(dateLayout, strings.TrimSpace(start), loc)
	if err != nil {
		return nil
	}
	to, err := time.ParseInLocation(dateLayout, strings.TrimSpace(end), loc)
	if err != nil {
		return nil
	}
	return &domain.DateInterval{
		From: from,
		To:   endOfDay(to),
	}
}

// endOfDay stops at microsecond precision, the resolution Postgres stores.
// A nanosecond bound would be rounded up into the next day.
func endOfDay(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 23, 59, 59, 999999000, day.Location())
}
