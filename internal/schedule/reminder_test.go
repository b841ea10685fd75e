package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
)

func TestReminderTriggerTime(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	day := date(2026, 10, 20)

	tests := []struct {
		name   string
		start  string
		offset model.ReminderOffset
		want   time.Time
	}{
		{name: "30min", start: "14:00", offset: model.Remind30Min, want: time.Date(2026, 10, 20, 13, 30, 0, 0, loc)},
		{name: "5min", start: "09:00", offset: model.Remind5Min, want: time.Date(2026, 10, 20, 8, 55, 0, 0, loc)},
		{name: "15min over hour", start: "10:05", offset: model.Remind15Min, want: time.Date(2026, 10, 20, 9, 50, 0, 0, loc)},
		{name: "1hour", start: "00:30", offset: model.Remind1Hour, want: time.Date(2026, 10, 19, 23, 30, 0, 0, loc)},
		{name: "1day", start: "08:00", offset: model.Remind1Day, want: time.Date(2026, 10, 19, 8, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := event("r", day, tt.start, "23:59", withReminder(tt.offset))
			got, err := ReminderTriggerTime(ev, day, loc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestReminderTriggerTimeUsesOccurrence(t *testing.T) {
	ev := event("r", date(2026, 10, 19), "14:00", "15:00", recurring(model.RecurWeekly), withReminder(model.Remind30Min))

	got, err := ReminderTriggerTime(ev, date(2026, 11, 2), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 11, 2, 13, 30, 0, 0, time.UTC), got)
}

func TestReminderTriggerTimeWithoutReminder(t *testing.T) {
	ev := event("r", date(2026, 10, 19), "14:00", "15:00")
	_, err := ReminderTriggerTime(ev, ev.Date, time.UTC)
	assert.ErrorIs(t, err, ErrNoReminder)
}

func TestReminderForElapsed(t *testing.T) {
	ev := event("r", date(2026, 10, 20), "14:00", "15:00", withReminder(model.Remind30Min))

	before, err := ReminderFor(ev, ev.Date, time.Date(2026, 10, 20, 13, 0, 0, 0, time.UTC), time.UTC)
	require.NoError(t, err)
	assert.False(t, before.Elapsed)
	assert.Equal(t, time.Date(2026, 10, 20, 14, 0, 0, 0, time.UTC), before.StartsAt)

	after, err := ReminderFor(ev, ev.Date, time.Date(2026, 10, 20, 13, 45, 0, 0, time.UTC), time.UTC)
	require.NoError(t, err)
	assert.True(t, after.Elapsed)
}

func TestDueReminders(t *testing.T) {
	events := []model.Event{
		event("standup", date(2026, 10, 1), "09:00", "09:15", recurring(model.RecurDaily), withReminder(model.Remind15Min)),
		event("exam", date(2026, 10, 21), "08:00", "10:00", withReminder(model.Remind1Day)),
		event("seminar", date(2026, 10, 20), "09:05", "10:00", withReminder(model.Remind5Min)),
		event("done", date(2026, 10, 20), "08:50", "09:00", withReminder(model.Remind5Min), withStatus(model.StatusCompleted)),
		event("quiet", date(2026, 10, 20), "08:50", "09:00"),
	}

	after := time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)
	upTo := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)

	got := DueReminders(events, after, upTo, time.UTC)
	var keys []string
	for _, r := range got {
		keys = append(keys, r.EventID+"@"+r.TriggerAt.Format("15:04"))
		assert.False(t, r.Elapsed)
	}
	assert.Equal(t, []string{"standup@08:45", "seminar@09:00"}, keys)

	// The exam reminder fires one day early, exactly at `after`, so it
	// belongs to the previous scan.
	got = DueReminders(events, after.Add(-30*time.Minute), after, time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, "exam", got[0].EventID)

	assert.Empty(t, DueReminders(events, upTo, after, time.UTC))
}

func TestUpcomingReminders(t *testing.T) {
	events := []model.Event{
		event("standup", date(2026, 10, 19), "09:00", "09:15", recurring(model.RecurDaily), withReminder(model.Remind15Min)),
	}
	now := time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)

	got := UpcomingReminders(events, date(2026, 10, 19), date(2026, 10, 21), now, time.UTC)
	require.Len(t, got, 3)
	assert.True(t, got[0].Elapsed)
	assert.True(t, got[1].Elapsed)
	assert.False(t, got[2].Elapsed)
}
