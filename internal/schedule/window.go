package schedule

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
)

// Week is seven consecutive dates starting on the configured first weekday.
type Week [7]model.Date

func (w Week) Start() model.Date { return w[0] }
func (w Week) End() model.Date   { return w[6] }

// Contains reports whether d falls inside the week.
func (w Week) Contains(d model.Date) bool {
	return d.Within(w.Start(), w.End())
}

// Direction is the way a calendar view moves.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// ParseDirection accepts "prev"/"previous" and "next".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prev", "previous":
		return Prev, nil
	case "next":
		return Next, nil
	}
	return 0, errors.Errorf("unknown direction %q", s)
}

// WeekOf returns the Sunday-first week containing d.
func WeekOf(d model.Date) Week {
	return WeekOfStarting(d, time.Sunday)
}

// WeekOfStarting returns the week containing d whose first day is start.
func WeekOfStarting(d model.Date, start time.Weekday) Week {
	back := (int(d.Weekday()) - int(start) + 7) % 7
	first := d.AddDays(-back)
	var w Week
	for i := range w {
		w[i] = first.AddDays(i)
	}
	return w
}

// NavigateWeek shifts the whole window by seven days.
func NavigateWeek(w Week, dir Direction) Week {
	var out Week
	for i, d := range w {
		out[i] = d.AddDays(7 * int(dir))
	}
	return out
}

func NavigateDay(d model.Date, delta int) model.Date {
	return d.AddDays(delta)
}

// NavigateMonth moves by calendar months, clamping the day the same way
// monthly recurrence does.
func NavigateMonth(d model.Date, delta int) model.Date {
	return d.AddMonths(delta)
}

// Today is the calendar date of now in loc. It is the only place "today"
// is derived and the caller provides the instant.
func Today(now time.Time, loc *time.Location) model.Date {
	if loc != nil {
		now = now.In(loc)
	}
	return model.DateOf(now)
}

// MonthGrid returns the weeks needed to display d's month, starting on the
// week containing the 1st and ending on the week containing the last day.
func MonthGrid(d model.Date, start time.Weekday) []Week {
	first := model.NewDate(d.Year(), d.Month(), 1)
	last := model.NewDate(d.Year(), d.Month(), model.DaysIn(d.Year(), d.Month()))

	var weeks []Week
	for w := WeekOfStarting(first, start); !w.Start().After(last); w = NavigateWeek(w, Next) {
		weeks = append(weeks, w)
	}
	return weeks
}
