package store

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/schedule"
)

// Seed builds the startup collection: the events of seedFile when it is
// set, otherwise the built-in sample schedule around the week of today.
func Seed(seedFile string, today model.Date, weekStart time.Weekday) (schedule.Collection, error) {
	if seedFile == "" {
		return schedule.NewCollection(SampleEvents(schedule.WeekOfStarting(today, weekStart))...)
	}

	cands, err := LoadSeedFile(seedFile)
	if err != nil {
		return schedule.Collection{}, err
	}
	c, _ := schedule.NewCollection()
	for i, cand := range cands {
		c, _, err = schedule.AddEvent(c, cand)
		if err != nil {
			return schedule.Collection{}, errors.Wrapf(err, "%s: event #%d (%q)", seedFile, i+1, cand.Title)
		}
	}
	return c, nil
}

// LoadSeedFile reads a YAML list of events in add-event form:
//
//	- title: Data Structures
//	  kind: class
//	  date: "2026-10-19"
//	  startTime: "09:00"
//	  endTime: "10:30"
//	  recurring: true
//	  recurrencePattern: weekly
func LoadSeedFile(path string) ([]schedule.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read seed file")
	}
	var cands []schedule.Candidate
	if err := yaml.Unmarshal(data, &cands); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return cands, nil
}

// SampleEvents is the built-in schedule of a computer science faculty
// member, laid out over week w and the weeks after it.
func SampleEvents(w schedule.Week) []model.Event {
	day := func(n int) model.Date { return w.Start().AddDays(n) }
	at := func(h, m int) model.TimeOfDay { return model.NewTimeOfDay(h, m) }

	return []model.Event{
		{
			ID:                "evt-001",
			Title:             "Data Structures Lecture",
			Kind:              model.KindClass,
			Date:              day(1),
			StartTime:         at(9, 0),
			EndTime:           at(10, 30),
			Location:          "Room 204, Engineering Block",
			Department:        "Computer Science",
			Description:       "CS201 section A",
			Attendees:         []string{"CS201-A"},
			Recurring:         true,
			RecurrencePattern: model.RecurWeekly,
			Priority:          model.PriorityHigh,
			Category:          model.CategoryAcademic,
			Status:            model.StatusScheduled,
			Reminder:          true,
			ReminderOffset:    model.Remind15Min,
			Color:             "#1e88e5",
		},
		{
			ID:                "evt-002",
			Title:             "Office Hours",
			Kind:              model.KindOfficeHours,
			Date:              day(3),
			StartTime:         at(14, 0),
			EndTime:           at(16, 0),
			Location:          "Faculty Office 3.12",
			Department:        "Computer Science",
			Attendees:         []string{},
			Recurring:         true,
			RecurrencePattern: model.RecurWeekly,
			Priority:          model.PriorityMedium,
			Category:          model.CategoryAcademic,
			Status:            model.StatusScheduled,
		},
		{
			ID:             "evt-003",
			Title:          "Department Faculty Meeting",
			Kind:           model.KindMeeting,
			Date:           day(2),
			StartTime:      at(11, 0),
			EndTime:        at(12, 0),
			Location:       "Conference Room B",
			Department:     "Computer Science",
			Description:    "Curriculum revision and lab budget",
			Attendees:      []string{"Dr. Rao", "Dr. Menon", "Prof. Iyer"},
			Priority:       model.PriorityHigh,
			Category:       model.CategoryAdministrative,
			Status:         model.StatusScheduled,
			Reminder:       true,
			ReminderOffset: model.Remind30Min,
		},
		{
			ID:                "evt-004",
			Title:             "Research Group Sync",
			Kind:              model.KindResearch,
			Date:              day(1),
			StartTime:         at(16, 0),
			EndTime:           at(17, 0),
			Location:          "ML Lab",
			Department:        "Computer Science",
			Attendees:         []string{"PhD students"},
			Recurring:         true,
			RecurrencePattern: model.RecurWeekly,
			Priority:          model.PriorityMedium,
			Category:          model.CategoryResearch,
			Status:            model.StatusScheduled,
		},
		{
			ID:             "evt-005",
			Title:          "Algorithms Midterm",
			Kind:           model.KindExam,
			Date:           day(11),
			StartTime:      at(10, 0),
			EndTime:        at(12, 0),
			Location:       "Examination Hall 1",
			Department:     "Computer Science",
			Attendees:      []string{"CS301"},
			Priority:       model.PriorityHigh,
			Category:       model.CategoryAcademic,
			Status:         model.StatusScheduled,
			Reminder:       true,
			ReminderOffset: model.Remind1Day,
			Color:          "#e53935",
		},
		{
			ID:             "evt-006",
			Title:          "Grant Proposal Deadline",
			Kind:           model.KindDeadline,
			Date:           day(4),
			StartTime:      at(17, 0),
			EndTime:        at(17, 0),
			Location:       model.DefaultLocation,
			Description:    "Submit the national research foundation proposal",
			Attendees:      []string{},
			Priority:       model.PriorityHigh,
			Category:       model.CategoryResearch,
			Status:         model.StatusScheduled,
			Reminder:       true,
			ReminderOffset: model.Remind1Hour,
		},
		{
			ID:         "evt-007",
			Title:      "Teaching With Git Workshop",
			Kind:       model.KindWorkshop,
			Date:       day(5),
			StartTime:  at(10, 0),
			EndTime:    at(13, 0),
			Location:   "Seminar Hall",
			Department: "Computer Science",
			Attendees:  []string{},
			Priority:   model.PriorityLow,
			Category:   model.CategoryAcademic,
			Status:     model.StatusScheduled,
		},
		{
			ID:                "evt-008",
			Title:             "Library Committee",
			Kind:              model.KindMeeting,
			Date:              day(2),
			StartTime:         at(15, 0),
			EndTime:           at(16, 0),
			Location:          "Central Library",
			Attendees:         []string{},
			Recurring:         true,
			RecurrencePattern: model.RecurMonthly,
			Priority:          model.PriorityLow,
			Category:          model.CategoryAdministrative,
			Status:            model.StatusScheduled,
		},
	}
}
