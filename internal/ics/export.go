package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/schedule"
)

const (
	productService = "facultysched"
	calendarName   = "Faculty schedule"
	uidDomain      = "@facultysched"

	// Non-standard properties carrying fields iCalendar has no slot for.
	propKind       = "X-FACULTY-KIND"
	propDepartment = "X-FACULTY-DEPARTMENT"
)

// alarmTriggers maps reminder offsets to VALARM TRIGGER durations.
var alarmTriggers = map[model.ReminderOffset]string{
	model.Remind5Min:  "-PT5M",
	model.Remind15Min: "-PT15M",
	model.Remind30Min: "-PT30M",
	model.Remind1Hour: "-PT1H",
	model.Remind1Day:  "-P1D",
}

var objectStatus = map[model.Status]ical.ObjectStatus{
	model.StatusScheduled:  ical.ObjectStatusConfirmed,
	model.StatusInProgress: ical.ObjectStatusInProcess,
	model.StatusCompleted:  ical.ObjectStatusCompleted,
	model.StatusCancelled:  ical.ObjectStatusCancelled,
}

// priorityLevel follows the RFC 5545 convention: 1 highest, 9 lowest.
var priorityLevel = map[model.Priority]int{
	model.PriorityHigh:   1,
	model.PriorityMedium: 5,
	model.PriorityLow:    9,
}

// Export renders events as an iCalendar document. Wall-clock times are
// interpreted in loc and written in UTC; now is used as DTSTAMP.
// Recurring events are exported once with an RRULE rather than expanded.
func Export(events []model.Event, loc *time.Location, now time.Time) string {
	if loc == nil {
		loc = time.Local
	}
	cal := ical.NewCalendarFor(productService)
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName(calendarName)
	cal.SetXWRTimezone(loc.String())

	for _, ev := range events {
		addEvent(cal, ev, loc, now)
	}
	return cal.Serialize()
}

func addEvent(cal *ical.Calendar, ev model.Event, loc *time.Location, now time.Time) {
	ve := cal.AddEvent(ev.ID + uidDomain)
	ve.SetDtStampTime(now)
	ve.SetSummary(ev.Title)
	ve.SetStartAt(ev.Date.In(ev.StartTime, loc))
	ve.SetEndAt(ev.Date.In(ev.EndTime, loc))
	ve.SetLocation(ev.Location)
	if ev.Description != "" {
		ve.SetDescription(ev.Description)
	}
	if rule := schedule.RuleString(ev); rule != "" {
		ve.AddRrule(rule)
	}
	if s, ok := objectStatus[ev.Status]; ok {
		ve.SetStatus(s)
	}
	if p, ok := priorityLevel[ev.Priority]; ok {
		ve.SetPriority(p)
	}
	ve.AddCategory(string(ev.Category))
	ve.SetProperty(ical.ComponentPropertyExtended(propKind), string(ev.Kind))
	if ev.Department != "" {
		ve.SetProperty(ical.ComponentPropertyExtended(propDepartment), ev.Department)
	}
	for _, a := range ev.Attendees {
		ve.AddAttendee(a, ical.WithCN(a))
	}
	if ev.Color != "" {
		ve.SetColor(ev.Color)
	}

	if trigger, ok := alarmTriggers[ev.ReminderOffset]; ok && ev.Reminder {
		alarm := ve.AddAlarm()
		alarm.SetAction(ical.ActionDisplay)
		alarm.SetTrigger(trigger)
		alarm.SetDescription(ev.Title)
	}
}
