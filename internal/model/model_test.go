package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMonthsClamps(t *testing.T) {
	tests := []struct {
		name   string
		from   Date
		months int
		want   Date
	}{
		{name: "plain", from: NewDate(2027, 3, 15), months: 1, want: NewDate(2027, 4, 15)},
		{name: "jan 31 to feb", from: NewDate(2027, 1, 31), months: 1, want: NewDate(2027, 2, 28)},
		{name: "jan 31 to leap feb", from: NewDate(2028, 1, 31), months: 1, want: NewDate(2028, 2, 29)},
		{name: "jan 31 to mar", from: NewDate(2027, 1, 31), months: 2, want: NewDate(2027, 3, 31)},
		{name: "backwards over year", from: NewDate(2027, 3, 31), months: -4, want: NewDate(2026, 11, 30)},
		{name: "dec to jan", from: NewDate(2026, 12, 10), months: 1, want: NewDate(2027, 1, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.AddMonths(tt.months))
		})
	}
}

func TestDateOfIgnoresClock(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	d := DateOf(time.Date(2026, 10, 17, 23, 59, 0, 0, loc))
	assert.Equal(t, NewDate(2026, 10, 17), d)
	assert.Equal(t, "2026-10-17", d.String())
}

func TestDaysBetweenAndWithin(t *testing.T) {
	a := NewDate(2026, 2, 25)
	b := NewDate(2026, 3, 3)
	assert.Equal(t, 6, a.DaysBetween(b))
	assert.Equal(t, -6, b.DaysBetween(a))
	assert.True(t, NewDate(2026, 3, 1).Within(a, b))
	assert.True(t, a.Within(a, b))
	assert.False(t, b.AddDays(1).Within(a, b))
}

func TestTimeOfDayParse(t *testing.T) {
	tod, err := ParseTimeOfDay("14:30")
	require.NoError(t, err)
	assert.Equal(t, 14, tod.Hour())
	assert.Equal(t, 30, tod.Minute())
	assert.Equal(t, "14:30", tod.String())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("2pm")
	assert.Error(t, err)
}

func TestDateIn(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	got := NewDate(2026, 10, 20).In(NewTimeOfDay(9, 15), loc)
	assert.Equal(t, time.Date(2026, 10, 20, 9, 15, 0, 0, loc), got)
}

func TestEventJSON(t *testing.T) {
	ev := Event{
		ID:                "ev-1",
		Title:             "Algorithms lecture",
		Kind:              KindClass,
		Date:              NewDate(2026, 10, 19),
		StartTime:         NewTimeOfDay(9, 0),
		EndTime:           NewTimeOfDay(10, 30),
		Location:          "Room 101",
		Attendees:         []string{"CS-201"},
		Recurring:         true,
		RecurrencePattern: RecurWeekly,
		Priority:          PriorityHigh,
		Category:          CategoryAcademic,
		Status:            StatusScheduled,
	}
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"date":"2026-10-19"`)
	assert.Contains(t, string(b), `"startTime":"09:00"`)
	assert.Contains(t, string(b), `"recurrencePattern":"weekly"`)

	var back Event
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, ev, back)
}

func TestEnumDecodingRejectsUnknown(t *testing.T) {
	var p struct {
		Priority Priority `json:"priority"`
	}
	err := json.Unmarshal([]byte(`{"priority":"urgent"}`), &p)
	assert.ErrorContains(t, err, `unknown priority "urgent"`)

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("office-hours")))
	assert.Equal(t, KindOfficeHours, k)
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusScheduled, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusCompleted, StatusScheduled, false},
		{StatusCancelled, StatusInProgress, false},
		{StatusCompleted, StatusCompleted, true},
		{StatusScheduled, Status("paused"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReminderOffsetDurations(t *testing.T) {
	assert.Equal(t, 5*time.Minute, Remind5Min.Duration())
	assert.Equal(t, 15*time.Minute, Remind15Min.Duration())
	assert.Equal(t, 30*time.Minute, Remind30Min.Duration())
	assert.Equal(t, time.Hour, Remind1Hour.Duration())
	assert.Equal(t, 24*time.Hour, Remind1Day.Duration())
	assert.Zero(t, ReminderOffset("2weeks").Duration())
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
}
