package schedule

import (
	"slices"
	"time"

	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
)

// Reminder is the computed trigger for one occurrence of an event.
type Reminder struct {
	EventID    string     `json:"eventId"`
	Title      string     `json:"title"`
	Occurrence model.Date `json:"occurrence"`
	StartsAt   time.Time  `json:"startsAt"`
	TriggerAt  time.Time  `json:"triggerAt"`
	// Elapsed is set when the trigger was already in the past at query
	// time. Elapsed reminders are reported, never fired late.
	Elapsed bool `json:"elapsed"`
}

// ReminderTriggerTime returns occurrence+startTime-offset in loc.
// occurrence should be ev.Date for one-off events or a date produced by
// Occurrences for recurring ones.
func ReminderTriggerTime(ev model.Event, occurrence model.Date, loc *time.Location) (time.Time, error) {
	if !ev.Reminder || !ev.ReminderOffset.Valid() {
		return time.Time{}, ErrNoReminder
	}
	start := occurrence.In(ev.StartTime, loc)
	return start.Add(-ev.ReminderOffset.Duration()), nil
}

// ReminderFor computes the reminder of one occurrence relative to now.
func ReminderFor(ev model.Event, occurrence model.Date, now time.Time, loc *time.Location) (Reminder, error) {
	trigger, err := ReminderTriggerTime(ev, occurrence, loc)
	if err != nil {
		return Reminder{}, err
	}
	return Reminder{
		EventID:    ev.ID,
		Title:      ev.Title,
		Occurrence: occurrence,
		StartsAt:   occurrence.In(ev.StartTime, loc),
		TriggerAt:  trigger,
		Elapsed:    trigger.Before(now),
	}, nil
}

// DueReminders returns the reminders whose trigger lies in (after, upTo],
// ordered by trigger time. Cancelled and completed events are skipped.
// Triggers at or before `after` are treated as already handled.
func DueReminders(events []model.Event, after, upTo time.Time, loc *time.Location) []Reminder {
	var out []Reminder
	if !upTo.After(after) {
		return out
	}
	// Offsets are at most one day, so an occurrence whose reminder falls in
	// the window starts no later than one day after upTo.
	from := Today(after, loc)
	to := Today(upTo.Add(24*time.Hour), loc)

	for _, ev := range events {
		if !ev.Reminder || ev.Status.Terminal() {
			continue
		}
		for d := range Occurrences(ev, from, to) {
			r, err := ReminderFor(ev, d, after, loc)
			if err != nil {
				continue
			}
			if r.TriggerAt.After(after) && !r.TriggerAt.After(upTo) {
				out = append(out, r)
			}
		}
	}
	slices.SortStableFunc(out, func(a, b Reminder) int {
		return a.TriggerAt.Compare(b.TriggerAt)
	})
	return out
}

// UpcomingReminders lists the reminders of every occurrence in [from, to],
// marking elapsed ones.
func UpcomingReminders(events []model.Event, from, to model.Date, now time.Time, loc *time.Location) []Reminder {
	var out []Reminder
	for _, ev := range events {
		if !ev.Reminder || ev.Status.Terminal() {
			continue
		}
		for d := range Occurrences(ev, from, to) {
			if r, err := ReminderFor(ev, d, now, loc); err == nil {
				out = append(out, r)
			}
		}
	}
	slices.SortStableFunc(out, func(a, b Reminder) int {
		return a.TriggerAt.Compare(b.TriggerAt)
	})
	return out
}
