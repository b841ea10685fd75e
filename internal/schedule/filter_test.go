package schedule

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
)

func sampleEvents() []model.Event {
	return []model.Event{
		event("1", date(2026, 10, 19), "09:00", "10:30", recurring(model.RecurWeekly), func(ev *model.Event) {
			ev.Title = "Data Structures Lecture"
			ev.Kind = model.KindClass
			ev.Priority = model.PriorityHigh
			ev.Department = "Computer Science"
		}),
		event("2", date(2026, 10, 20), "14:00", "15:00", func(ev *model.Event) {
			ev.Title = "Department Meeting"
			ev.Description = "Budget review for the CS lab"
			ev.Category = model.CategoryAdministrative
			ev.Department = "Computer Science"
			ev.Location = "Conference Room B"
		}),
		event("3", date(2026, 10, 21), "11:00", "12:00", func(ev *model.Event) {
			ev.Title = "Calculus Midterm"
			ev.Kind = model.KindExam
			ev.Priority = model.PriorityHigh
			ev.Department = "Mathematics"
		}),
		event("4", date(2026, 10, 22), "16:00", "17:00", func(ev *model.Event) {
			ev.Title = "Office hours"
			ev.Kind = model.KindOfficeHours
			ev.Priority = model.PriorityLow
			ev.Status = model.StatusCancelled
		}),
		event("5", date(2026, 10, 19), "13:00", "14:00", func(ev *model.Event) {
			ev.Title = "Thesis committee"
			ev.Kind = model.KindClass
			ev.Priority = model.PriorityLow
			ev.Category = model.CategoryResearch
		}),
	}
}

func ids(events []model.Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.ID)
	}
	return out
}

func TestFilterEvents(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{name: "empty matches all", c: Criteria{}, want: []string{"1", "2", "3", "4", "5"}},
		{name: "query title case-insensitive", c: Criteria{Query: "LECTURE"}, want: []string{"1"}},
		{name: "query description", c: Criteria{Query: "budget"}, want: []string{"2"}},
		{name: "kind", c: Criteria{Kind: model.KindClass}, want: []string{"1", "5"}},
		{name: "category", c: Criteria{Category: model.CategoryAdministrative}, want: []string{"2"}},
		{name: "priority", c: Criteria{Priority: model.PriorityHigh}, want: []string{"1", "3"}},
		{name: "status", c: Criteria{Status: model.StatusCancelled}, want: []string{"4"}},
		{name: "department substring", c: Criteria{Department: "computer"}, want: []string{"1", "2"}},
		{name: "location", c: Criteria{Location: "conference"}, want: []string{"2"}},
		{name: "date anchor", c: Criteria{Date: date(2026, 10, 19)}, want: []string{"1", "5"}},
		{name: "date recurring occurrence", c: Criteria{Date: date(2026, 10, 26)}, want: []string{"1"}},
		{name: "combined", c: Criteria{Kind: model.KindClass, Priority: model.PriorityHigh}, want: []string{"1"}},
		{name: "nothing", c: Criteria{Query: "zoology"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterEvents(sampleEvents(), tt.c)))
		})
	}
}

func TestFilterIdempotent(t *testing.T) {
	criteria := []Criteria{
		{Query: "e"},
		{Kind: model.KindClass},
		{Department: "science", Priority: model.PriorityHigh},
		{Date: date(2026, 10, 19)},
	}
	for _, c := range criteria {
		once := FilterEvents(sampleEvents(), c)
		twice := FilterEvents(once, c)
		assert.Equal(t, once, twice)
	}
}

func TestFilterAndComposition(t *testing.T) {
	events := sampleEvents()
	both := FilterEvents(events, Criteria{Kind: model.KindClass, Priority: model.PriorityHigh})

	byKind := FilterEvents(events, Criteria{Kind: model.KindClass})
	byPriority := FilterEvents(events, Criteria{Priority: model.PriorityHigh})
	inPriority := map[string]bool{}
	for _, ev := range byPriority {
		inPriority[ev.ID] = true
	}
	var intersection []model.Event
	for _, ev := range byKind {
		if inPriority[ev.ID] {
			intersection = append(intersection, ev)
		}
	}
	assert.Equal(t, intersection, both)
}

func TestFilterOccurrences(t *testing.T) {
	occs := ExpandCollection(sampleEvents(), date(2026, 10, 18), date(2026, 10, 31))
	got := FilterOccurrences(occs, Criteria{Kind: model.KindClass, Date: date(2026, 10, 26)})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].Event.ID)
	assert.Equal(t, date(2026, 10, 26), got[0].Date)
}

func TestSortForDay(t *testing.T) {
	events := []model.Event{
		event("c", date(2026, 10, 19), "10:00", "11:00"),
		event("b", date(2026, 10, 19), "09:00", "10:00", func(ev *model.Event) { ev.Priority = model.PriorityLow }),
		event("z", date(2026, 10, 19), "09:00", "10:00", func(ev *model.Event) { ev.Priority = model.PriorityHigh }),
		event("a", date(2026, 10, 19), "09:00", "10:00", func(ev *model.Event) { ev.Priority = model.PriorityLow }),
	}
	sorted := SortForDay(events)
	assert.Equal(t, []string{"z", "a", "b", "c"}, ids(sorted))
	assert.Equal(t, []string{"c", "b", "z", "a"}, ids(events), "input must not be reordered")
}

func TestParseCriteria(t *testing.T) {
	c, err := ParseCriteria(url.Values{
		"q":        {" Lecture "},
		"kind":     {"all"},
		"priority": {"HIGH"},
		"status":   {""},
		"date":     {"2026-10-19"},
	})
	require.NoError(t, err)
	assert.Equal(t, Criteria{Query: "Lecture", Priority: model.PriorityHigh, Date: date(2026, 10, 19)}, c)

	_, err = ParseCriteria(url.Values{"kind": {"party"}, "date": {"19/10/2026"}})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Equal(t, "kind", verr.Fields[0].Field)
	assert.Equal(t, "date", verr.Fields[1].Field)
}
