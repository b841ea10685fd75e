package schedule

import (
	"cmp"
	"net/url"
	"slices"
	"strings"

	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
)

// AllValue is the select-box value meaning "do not filter on this field".
const AllValue = "all"

// Criteria narrows an event list. Zero fields match everything; all set
// fields must match.
type Criteria struct {
	// Query is matched case-insensitively against title and description.
	Query      string
	Kind       model.Kind
	Category   model.Category
	Priority   model.Priority
	Status     model.Status
	Department string
	Location   string
	// Date keeps events that take place on this day.
	Date model.Date
}

// Match reports whether ev satisfies every set criterion.
func (c Criteria) Match(ev model.Event) bool {
	if c.Query != "" && !containsFold(ev.Title, c.Query) && !containsFold(ev.Description, c.Query) {
		return false
	}
	if c.Kind != "" && ev.Kind != c.Kind {
		return false
	}
	if c.Category != "" && ev.Category != c.Category {
		return false
	}
	if c.Priority != "" && ev.Priority != c.Priority {
		return false
	}
	if c.Status != "" && ev.Status != c.Status {
		return false
	}
	if c.Department != "" && !containsFold(ev.Department, c.Department) {
		return false
	}
	if c.Location != "" && !containsFold(ev.Location, c.Location) {
		return false
	}
	if !c.Date.IsZero() && !OccursOn(ev, c.Date) {
		return false
	}
	return true
}

// FilterEvents returns the events matching c in their original order.
func FilterEvents(events []model.Event, c Criteria) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if c.Match(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// FilterOccurrences applies c to expanded occurrences. The date criterion
// is compared with the occurrence date.
func FilterOccurrences(occs []Occurrence, c Criteria) []Occurrence {
	date := c.Date
	c.Date = model.Date{}
	out := make([]Occurrence, 0, len(occs))
	for _, o := range occs {
		if !date.IsZero() && o.Date != date {
			continue
		}
		if c.Match(o.Event) {
			out = append(out, o)
		}
	}
	return out
}

// SortForDay orders events for a day list: start time, then priority (high
// first), then id. The input slice is not modified.
func SortForDay(events []model.Event) []model.Event {
	out := slices.Clone(events)
	slices.SortStableFunc(out, compareForDay)
	return out
}

func compareForDay(a, b model.Event) int {
	return cmp.Or(
		cmp.Compare(a.StartTime, b.StartTime),
		cmp.Compare(a.Priority.Rank(), b.Priority.Rank()),
		cmp.Compare(a.ID, b.ID),
	)
}

// ParseCriteria reads criteria from query parameters (q, kind, category,
// priority, status, department, location, date). "all" or an empty value
// disables a field; unknown enumeration values are reported.
func ParseCriteria(v url.Values) (Criteria, error) {
	var c Criteria
	var flds []FieldError

	c.Query = strings.TrimSpace(v.Get("q"))
	c.Department = strings.TrimSpace(v.Get("department"))
	c.Location = strings.TrimSpace(v.Get("location"))

	parse := func(key string, dst interface{ UnmarshalText([]byte) error }) {
		raw := strings.ToLower(strings.TrimSpace(v.Get(key)))
		if raw == "" || raw == AllValue {
			return
		}
		if err := dst.UnmarshalText([]byte(raw)); err != nil {
			flds = append(flds, FieldError{Field: key, Error: err.Error()})
		}
	}
	parse("kind", &c.Kind)
	parse("category", &c.Category)
	parse("priority", &c.Priority)
	parse("status", &c.Status)
	parse("date", &c.Date)

	if len(flds) > 0 {
		return Criteria{}, newValidationError(flds...)
	}
	return c, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
