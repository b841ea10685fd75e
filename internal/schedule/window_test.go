package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekOf(t *testing.T) {
	w := WeekOf(date(2026, 10, 17))
	assert.Equal(t, date(2026, 10, 11), w.Start())
	assert.Equal(t, date(2026, 10, 17), w.End())
}

func TestWeekOfContainment(t *testing.T) {
	d := date(2026, 1, 1)
	for i := 0; i < 400; i++ {
		w := WeekOf(d)
		require.Equal(t, time.Sunday, w[0].Weekday(), "week of %s", d)
		require.True(t, w.Contains(d), "week of %s", d)
		for j := 1; j < len(w); j++ {
			require.Equal(t, 1, w[j-1].DaysBetween(w[j]))
		}
		d = d.AddDays(1)
	}
}

func TestWeekOfStartingMonday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday.
	w := WeekOfStarting(date(2026, 10, 18), time.Monday)
	assert.Equal(t, date(2026, 10, 12), w.Start())
	assert.Equal(t, time.Monday, w.Start().Weekday())
	assert.Equal(t, date(2026, 10, 18), w.End())
}

func TestNavigateWeek(t *testing.T) {
	w := WeekOf(date(2026, 10, 14))
	next := NavigateWeek(w, Next)
	prev := NavigateWeek(w, Prev)

	assert.Equal(t, date(2026, 10, 18), next.Start())
	assert.Equal(t, date(2026, 10, 4), prev.Start())
	assert.Equal(t, w, NavigateWeek(next, Prev))
}

func TestNavigateDayAndMonth(t *testing.T) {
	assert.Equal(t, date(2026, 11, 1), NavigateDay(date(2026, 10, 31), 1))
	assert.Equal(t, date(2026, 12, 31), NavigateDay(date(2027, 1, 1), -1))

	assert.Equal(t, date(2027, 2, 28), NavigateMonth(date(2027, 1, 31), 1))
	assert.Equal(t, date(2026, 9, 30), NavigateMonth(date(2026, 10, 31), -1))
	assert.Equal(t, date(2027, 10, 17), NavigateMonth(date(2026, 10, 17), 12))
}

func TestToday(t *testing.T) {
	now := time.Date(2026, 10, 17, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, date(2026, 10, 17), Today(now, time.UTC))
	assert.Equal(t, date(2026, 10, 18), Today(now, time.FixedZone("KST", 9*3600)))
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("Prev")
	require.NoError(t, err)
	assert.Equal(t, Prev, d)

	d, err = ParseDirection("next")
	require.NoError(t, err)
	assert.Equal(t, Next, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestMonthGrid(t *testing.T) {
	// February 2026 starts on a Sunday and has exactly four weeks.
	weeks := MonthGrid(date(2026, 2, 10), time.Sunday)
	require.Len(t, weeks, 4)
	assert.Equal(t, date(2026, 2, 1), weeks[0].Start())
	assert.Equal(t, date(2026, 2, 28), weeks[3].End())

	weeks = MonthGrid(date(2026, 10, 17), time.Sunday)
	require.Len(t, weeks, 5)
	assert.Equal(t, date(2026, 9, 27), weeks[0].Start())
	assert.Equal(t, date(2026, 10, 31), weeks[4].End())
}
