package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
)

func conflictIDs(cs []Conflict) []string {
	out := []string{}
	for _, c := range cs {
		out = append(out, c.Event.ID)
	}
	return out
}

func TestDetectConflicts(t *testing.T) {
	day := date(2026, 10, 20)
	subject := event("s", day, "10:00", "11:00")

	tests := []struct {
		name  string
		other model.Event
		want  bool
	}{
		{name: "same slot", other: event("o", day, "10:00", "11:00"), want: true},
		{name: "partial overlap", other: event("o", day, "10:30", "12:00"), want: true},
		{name: "contains", other: event("o", day, "09:00", "12:00"), want: true},
		{name: "adjacent after", other: event("o", day, "11:00", "12:00"), want: false},
		{name: "adjacent before", other: event("o", day, "09:00", "10:00"), want: false},
		{name: "other day", other: event("o", day.AddDays(1), "10:00", "11:00"), want: false},
		{name: "zero length deadline", other: event("o", day, "10:30", "10:30"), want: false},
		{name: "weekly from earlier anchor", other: event("o", day.AddDays(-14), "10:30", "11:30", recurring(model.RecurWeekly)), want: true},
		{name: "weekly on other weekday", other: event("o", day.AddDays(-13), "10:30", "11:30", recurring(model.RecurWeekly)), want: false},
		{name: "daily starting later", other: event("o", day.AddDays(1), "10:30", "11:30", recurring(model.RecurDaily)), want: false},
		{name: "cancelled", other: event("o", day, "10:00", "11:00", withStatus(model.StatusCancelled)), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectConflicts(subject, []model.Event{subject, tt.other})
			if tt.want {
				require.Len(t, got, 1)
				assert.Equal(t, "o", got[0].Event.ID)
				assert.Equal(t, day, got[0].On)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestDetectConflictsRecurringPair(t *testing.T) {
	// Weekly Monday class and a daily stand-up starting mid-week first meet
	// on the following Monday.
	class := event("class", date(2026, 10, 19), "09:00", "10:00", recurring(model.RecurWeekly))
	standup := event("standup", date(2026, 10, 21), "09:30", "09:45", recurring(model.RecurDaily))

	got := DetectConflicts(class, []model.Event{class, standup})
	require.Len(t, got, 1)
	assert.Equal(t, date(2026, 10, 26), got[0].On)

	back := DetectConflicts(standup, []model.Event{class, standup})
	require.Len(t, back, 1)
	assert.Equal(t, date(2026, 10, 26), back[0].On)
}

func TestDetectConflictsSymmetric(t *testing.T) {
	base := date(2026, 10, 19)
	events := []model.Event{
		event("a", base, "09:00", "10:00"),
		event("b", base, "09:30", "11:00", recurring(model.RecurWeekly)),
		event("c", base.AddDays(7), "10:30", "11:30"),
		event("d", base.AddDays(2), "08:00", "09:15", recurring(model.RecurDaily)),
		event("e", base.AddDays(-31), "09:00", "12:00", recurring(model.RecurMonthly)),
		event("f", base.AddDays(3), "09:00", "09:00"),
		event("g", base, "09:00", "17:00", withStatus(model.StatusCancelled)),
		event("h", base.AddDays(14), "10:45", "12:00"),
	}

	conflicts := map[string]map[string]bool{}
	for _, ev := range events {
		conflicts[ev.ID] = map[string]bool{}
		for _, c := range DetectConflicts(ev, events) {
			conflicts[ev.ID][c.Event.ID] = true
		}
	}
	for a, others := range conflicts {
		for b := range others {
			assert.True(t, conflicts[b][a], "%s conflicts with %s but not the other way round", a, b)
		}
	}
	assert.True(t, conflicts["a"]["b"])
	assert.True(t, conflicts["b"]["c"])
	assert.False(t, conflicts["a"]["g"])
}

func TestReschedulePreservesIdentity(t *testing.T) {
	ev := event("r", date(2026, 10, 20), "10:00", "11:00", recurring(model.RecurWeekly), withReminder(model.Remind15Min))
	ev.Attendees = []string{"dr.smith", "dr.jones"}

	moved := Reschedule(ev, date(2026, 10, 22))
	assert.Equal(t, date(2026, 10, 22), moved.Date)

	moved.Date = ev.Date
	assert.Equal(t, ev, moved)

	// The copy does not share attendees with the original.
	moved.Attendees[0] = "someone else"
	assert.Equal(t, "dr.smith", ev.Attendees[0])
}
