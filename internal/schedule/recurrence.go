package schedule

import (
	"iter"
	"slices"

	"github.com/pkg/errors"
	"github.com/teambition/rrule-go"

	appLog "github.com/kranthikiran885366/faculty-dashboard-sub000/internal/log"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
)

const defaultMaxOccurrences = 5000

// MaxOccurrences caps how many dates a single expansion yields, so a daily
// event queried over a huge window cannot run away.
var MaxOccurrences = defaultMaxOccurrences

// Occurrence is one concrete date on which an event takes place.
type Occurrence struct {
	Event model.Event `json:"event"`
	Date  model.Date  `json:"date"`
}

// Occurrences yields the dates in the closed window [from, to] on which ev
// takes place, in ascending order. The sequence is computed from scratch on
// every range, so it can be iterated any number of times.
//
// At most MaxOccurrences dates are yielded; Truncated reports whether a
// window holds more.
func Occurrences(ev model.Event, from, to model.Date) iter.Seq[model.Date] {
	return func(yield func(model.Date) bool) {
		n := 0
		for d := range allOccurrences(ev, from, to) {
			if n >= MaxOccurrences {
				appLog.Warn("recurrence: expansion truncated", "id", ev.ID, "cap", MaxOccurrences, "to", to)
				return
			}
			n++
			if !yield(d) {
				return
			}
		}
	}
}

// Truncated reports whether Occurrences stops at MaxOccurrences before the
// end of [from, to].
func Truncated(ev model.Event, from, to model.Date) bool {
	n := 0
	for range allOccurrences(ev, from, to) {
		if n++; n > MaxOccurrences {
			return true
		}
	}
	return false
}

// TruncatedIDs lists the events whose expansion over [from, to] is cut short.
func TruncatedIDs(events []model.Event, from, to model.Date) []string {
	var ids []string
	for _, ev := range events {
		if Truncated(ev, from, to) {
			ids = append(ids, ev.ID)
		}
	}
	return ids
}

func allOccurrences(ev model.Event, from, to model.Date) iter.Seq[model.Date] {
	return func(yield func(model.Date) bool) {
		if ev.Date.IsZero() || to.Before(from) || to.Before(ev.Date) {
			return
		}
		if !ev.Recurring {
			if ev.Date.Within(from, to) {
				yield(ev.Date)
			}
			return
		}

		r, err := recurrenceRule(ev, seekStart(ev, from), to)
		if err != nil {
			appLog.Error("recurrence: cannot build rule", err, "id", ev.ID, "pattern", ev.RecurrencePattern)
			return
		}

		next := r.Iterator()
		for {
			t, ok := next()
			if !ok {
				return
			}
			d := model.DateOf(t)
			if d.After(to) {
				return
			}
			if d.Before(from) || d.Before(ev.Date) {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// ExpandOccurrences collects Occurrences into a slice.
func ExpandOccurrences(ev model.Event, from, to model.Date) []model.Date {
	return slices.Collect(Occurrences(ev, from, to))
}

// OccursOn reports whether ev takes place on d.
func OccursOn(ev model.Event, d model.Date) bool {
	for range Occurrences(ev, d, d) {
		return true
	}
	return false
}

// ExpandCollection expands every event over [from, to]. The result is ordered
// by date, and within a day the same way as SortForDay.
func ExpandCollection(events []model.Event, from, to model.Date) []Occurrence {
	out := make([]Occurrence, 0, len(events))
	for _, ev := range events {
		for d := range Occurrences(ev, from, to) {
			out = append(out, Occurrence{Event: ev, Date: d})
		}
	}
	slices.SortStableFunc(out, func(a, b Occurrence) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return compareForDay(a.Event, b.Event)
	})
	return out
}

// RuleString renders the recurrence of ev as an iCalendar RRULE value
// without DTSTART, or "" for a one-off event.
func RuleString(ev model.Event) string {
	if !ev.Recurring {
		return ""
	}
	opt, err := ruleOption(ev, ev.Date, model.Date{})
	if err != nil {
		return ""
	}
	return opt.RRuleString()
}

// recurrenceRule builds the rule for ev starting at dtstart and ending at
// until (inclusive).
func recurrenceRule(ev model.Event, dtstart, until model.Date) (*rrule.RRule, error) {
	opt, err := ruleOption(ev, dtstart, until)
	if err != nil {
		return nil, err
	}
	return rrule.NewRRule(opt)
}

// ruleOption maps the pattern of ev onto rrule options. A zero until leaves
// the rule open-ended.
//
// Monthly events keep the anchor's day of month. For days 29-31 the rule
// lists every candidate day from 28 up to the anchor day and keeps the last
// one present in each month, which clamps Jan 31 to Feb 28 (29 in leap
// years) and then returns to Mar 31.
func ruleOption(ev model.Event, dtstart, until model.Date) (rrule.ROption, error) {
	opt := rrule.ROption{
		Dtstart: dtstart.Time(),
		Until:   until.Time(),
	}
	switch ev.RecurrencePattern {
	case model.RecurDaily:
		opt.Freq = rrule.DAILY
	case model.RecurWeekly:
		opt.Freq = rrule.WEEKLY
	case model.RecurMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday, opt.Bysetpos = MonthlyDays(ev.Date.Day())
	default:
		return opt, errors.Errorf("unknown recurrence pattern %q", ev.RecurrencePattern)
	}
	return opt, nil
}

// MonthlyDays returns the BYMONTHDAY and BYSETPOS lists of a monthly rule
// anchored on the given day of month.
func MonthlyDays(day int) (bymonthday, bysetpos []int) {
	if day <= 28 {
		return []int{day}, nil
	}
	for d := 28; d <= day; d++ {
		bymonthday = append(bymonthday, d)
	}
	return bymonthday, []int{-1}
}

// seekStart returns a dtstart that produces the same occurrences as the
// anchor from `from` onwards without walking every step since the anchor.
func seekStart(ev model.Event, from model.Date) model.Date {
	if !from.After(ev.Date) {
		return ev.Date
	}
	switch ev.RecurrencePattern {
	case model.RecurDaily:
		return from
	case model.RecurWeekly:
		steps := (ev.Date.DaysBetween(from) + 6) / 7
		return ev.Date.AddDays(steps * 7)
	case model.RecurMonthly:
		months := (from.Year()-ev.Date.Year())*12 + int(from.Month()-ev.Date.Month())
		if months <= 1 {
			return ev.Date
		}
		// First of the month before `from`; the explicit BYMONTHDAY list
		// makes the day of dtstart irrelevant.
		first := model.NewDate(ev.Date.Year(), ev.Date.Month(), 1)
		return first.AddMonths(months - 1)
	}
	return ev.Date
}
