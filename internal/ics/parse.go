package ics

import (
	"bytes"
	"slices"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/pkg/errors"
	"github.com/teambition/rrule-go"

	appLog "github.com/kranthikiran885366/faculty-dashboard-sub000/internal/log"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/schedule"
)

var (
	errMissingStart    = errors.New("missing DTSTART")
	errOverrideSkipped = errors.New("RECURRENCE-ID overrides are not supported")
)

// ParseEvents converts every VEVENT in body into an add-event candidate.
// Times are converted to loc and truncated to the minute.
//
//   - All-day events span 00:00-23:59 of their start date.
//   - Events ending on a later day are cut at 23:59 of the start date.
//   - Recurrences other than plain DAILY, WEEKLY or MONTHLY import as a
//     single occurrence; EXDATE is ignored.
//   - Overridden instances (RECURRENCE-ID) are skipped.
//
// A VEVENT that cannot be converted is logged and skipped; the rest of the
// calendar is still imported.
func ParseEvents(src Source, body []byte, loc *time.Location) ([]schedule.Candidate, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}
	if loc == nil {
		loc = time.Local
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		appLog.Error("ics parse failed", err, "id", src.ID, "url", redactURL(src.URL))
		return nil, errors.Wrap(err, "parse calendar")
	}

	out := make([]schedule.Candidate, 0)
	for _, ve := range cal.Events() {
		c, perr := parseVEvent(ve, loc)
		if perr != nil {
			appLog.Warn("ics vevent skipped", "id", src.ID, "uid", ve.Id(), "reason", perr.Error())
			continue
		}
		out = append(out, c)
	}

	appLog.Info("ics parse completed", "id", src.ID, "url", redactURL(src.URL), "event_count", len(out))
	return out, nil
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (schedule.Candidate, error) {
	var c schedule.Candidate

	if ve.HasProperty(ical.ComponentPropertyRecurrenceId) {
		return c, errOverrideSkipped
	}

	dtstart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtstart == nil {
		return c, errMissingStart
	}

	c.Title = propValue(ve, ical.ComponentPropertySummary)
	c.Description = propValue(ve, ical.ComponentPropertyDescription)
	c.Location = propValue(ve, ical.ComponentPropertyLocation)
	c.Department = propValue(ve, ical.ComponentPropertyExtended(propDepartment))
	c.Color = propValue(ve, ical.ComponentPropertyColor)
	c.Kind = propValue(ve, ical.ComponentPropertyExtended(propKind))

	var day model.Date
	if isAllDay(dtstart) {
		start, err := ve.GetAllDayStartAt()
		if err != nil {
			return c, errors.Wrap(err, "DTSTART")
		}
		day = model.DateOf(start)
		c.Date = day.String()
		c.StartTime = "00:00"
		c.EndTime = "23:59"
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return c, errors.Wrap(err, "DTSTART")
		}
		start = start.In(loc)
		end, err := ve.GetEndAt()
		if err != nil {
			end = start
		}
		end = end.In(loc)

		day = model.DateOf(start)
		c.Date = day.String()
		c.StartTime = model.NewTimeOfDay(start.Hour(), start.Minute()).String()
		if model.DateOf(end).After(day) {
			c.EndTime = "23:59"
		} else {
			c.EndTime = model.NewTimeOfDay(end.Hour(), end.Minute()).String()
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		if pattern, ok := recurrencePattern(p.Value, day); ok {
			c.Recurring = true
			c.RecurrencePattern = string(pattern)
		} else {
			appLog.Warn("ics: unsupported recurrence, importing first occurrence only", "uid", ve.Id(), "rrule", p.Value)
		}
	}

	c.Status = string(eventStatus(propValue(ve, ical.ComponentPropertyStatus)))
	c.Priority = string(eventPriority(propValue(ve, ical.ComponentPropertyPriority)))

	for _, p := range ve.GetProperties(ical.ComponentPropertyCategories) {
		for _, v := range strings.Split(p.Value, ",") {
			v = strings.ToLower(strings.TrimSpace(v))
			switch {
			case c.Category == "" && model.Category(v).Valid():
				c.Category = v
			case c.Kind == "" && model.Kind(v).Valid():
				c.Kind = v
			}
		}
	}

	for _, a := range ve.Attendees() {
		name := a.Email()
		if cn := a.ICalParameters["CN"]; len(cn) > 0 && cn[0] != "" {
			name = cn[0]
		}
		c.Attendees = append(c.Attendees, name)
	}

	for _, alarm := range ve.Alarms() {
		p := alarm.GetProperty(ical.ComponentPropertyTrigger)
		if p == nil {
			continue
		}
		if offset, ok := reminderOffset(p.Value); ok {
			c.Reminder = true
			c.ReminderOffset = string(offset)
			break
		}
	}

	return c, nil
}

func propValue(ve *ical.VEvent, prop ical.ComponentProperty) string {
	if p := ve.GetProperty(prop); p != nil {
		return strings.TrimSpace(p.Value)
	}
	return ""
}

// isAllDay reports whether DTSTART holds a date rather than a date-time,
// either through VALUE=DATE or a value without a time part.
func isAllDay(dtstart *ical.IANAProperty) bool {
	if vs, ok := dtstart.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(dtstart.Value, "T")
}

// recurrencePattern maps an RRULE value onto one of the supported patterns
// for an event starting on start. Only rules producing exactly the dates of
// that pattern qualify: no interval, count or end date, and no BY* part
// except a weekly BYDAY on the start weekday or the monthly day list that
// Export writes for the start day.
func recurrencePattern(value string, start model.Date) (model.RecurrencePattern, bool) {
	opt, err := rrule.StrToROption(value)
	if err != nil {
		return "", false
	}
	if opt.Interval > 1 || opt.Count > 0 || !opt.Until.IsZero() {
		return "", false
	}
	if len(opt.Bymonth) > 0 || len(opt.Byyearday) > 0 || len(opt.Byweekno) > 0 || len(opt.Byeaster) > 0 ||
		len(opt.Byhour) > 0 || len(opt.Byminute) > 0 || len(opt.Bysecond) > 0 {
		return "", false
	}

	switch opt.Freq {
	case rrule.DAILY:
		if len(opt.Byweekday) == 0 && len(opt.Bymonthday) == 0 && len(opt.Bysetpos) == 0 {
			return model.RecurDaily, true
		}
	case rrule.WEEKLY:
		if len(opt.Bymonthday) == 0 && len(opt.Bysetpos) == 0 && weeklyOn(opt.Byweekday, start) {
			return model.RecurWeekly, true
		}
	case rrule.MONTHLY:
		if len(opt.Byweekday) == 0 && monthlyOn(opt.Bymonthday, opt.Bysetpos, start.Day()) {
			return model.RecurMonthly, true
		}
	}
	return "", false
}

// weeklyOn accepts no BYDAY or a single un-numbered BYDAY on start's weekday.
func weeklyOn(days []rrule.Weekday, start model.Date) bool {
	if len(days) == 0 {
		return true
	}
	// rrule numbers weekdays from Monday.
	return len(days) == 1 && days[0].N() == 0 && days[0].Day() == (int(start.Weekday())+6)%7
}

// monthlyOn accepts the day list schedule.MonthlyDays builds for day. A bare
// MONTHLY rule skips short months for days past the 28th, so it only
// qualifies up to day 28.
func monthlyOn(days, setpos []int, day int) bool {
	if len(days) == 0 && len(setpos) == 0 {
		return day <= 28
	}
	want, wantPos := schedule.MonthlyDays(day)
	return slices.Equal(days, want) && slices.Equal(setpos, wantPos)
}

func eventStatus(v string) model.Status {
	for s, obj := range objectStatus {
		if strings.EqualFold(v, string(obj)) {
			return s
		}
	}
	return model.StatusScheduled
}

// eventPriority buckets PRIORITY 1-4 as high, 5 as medium and 6-9 as low.
// 0 or a missing value means undefined.
func eventPriority(v string) model.Priority {
	n, err := strconv.Atoi(v)
	switch {
	case err != nil || n <= 0:
		return ""
	case n < 5:
		return model.PriorityHigh
	case n == 5:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

func reminderOffset(trigger string) (model.ReminderOffset, bool) {
	trigger = strings.ToUpper(strings.TrimSpace(trigger))
	for o, t := range alarmTriggers {
		if t == trigger {
			return o, true
		}
	}
	return "", false
}
