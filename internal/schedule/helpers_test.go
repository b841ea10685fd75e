package schedule

import (
	"testing"
	"time"

	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
)

func date(y, m, d int) model.Date {
	return model.NewDate(y, time.Month(m), d)
}

func clock(s string) model.TimeOfDay {
	t, err := model.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// event builds a valid one-off event; opts adjust it.
func event(id string, on model.Date, start, end string, opts ...func(*model.Event)) model.Event {
	ev := model.Event{
		ID:        id,
		Title:     "Event " + id,
		Kind:      model.KindMeeting,
		Date:      on,
		StartTime: clock(start),
		EndTime:   clock(end),
		Location:  "Room 101",
		Attendees: []string{},
		Priority:  model.PriorityMedium,
		Category:  model.CategoryAcademic,
		Status:    model.StatusScheduled,
	}
	for _, opt := range opts {
		opt(&ev)
	}
	return ev
}

func recurring(p model.RecurrencePattern) func(*model.Event) {
	return func(ev *model.Event) {
		ev.Recurring = true
		ev.RecurrencePattern = p
	}
}

func withStatus(s model.Status) func(*model.Event) {
	return func(ev *model.Event) { ev.Status = s }
}

func withReminder(o model.ReminderOffset) func(*model.Event) {
	return func(ev *model.Event) {
		ev.Reminder = true
		ev.ReminderOffset = o
	}
}

// fixedIDs makes AddEvent hand out predictable ids for the test.
func fixedIDs(t *testing.T, ids ...string) {
	t.Helper()
	orig := newID
	i := 0
	newID = func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
	t.Cleanup(func() { newID = orig })
}
