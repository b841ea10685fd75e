package schedule

import (
	"strings"

	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
)

// Candidate is an event as submitted by an "add" dialog, before validation.
// Dates and times are kept as typed by the user.
type Candidate struct {
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Kind        string   `json:"kind" yaml:"kind" validate:"omitempty,kind"`
	Date        string   `json:"date" yaml:"date" validate:"required,isodate"`
	StartTime   string   `json:"startTime" yaml:"startTime" validate:"required,clock"`
	EndTime     string   `json:"endTime" yaml:"endTime" validate:"required,clock"`
	Location    string   `json:"location" yaml:"location"`
	Department  string   `json:"department" yaml:"department"`
	Description string   `json:"description" yaml:"description"`
	Attendees   []string `json:"attendees" yaml:"attendees"`

	Recurring         bool   `json:"recurring" yaml:"recurring"`
	RecurrencePattern string `json:"recurrencePattern" yaml:"recurrencePattern" validate:"omitempty,pattern"`

	Priority string `json:"priority" yaml:"priority" validate:"omitempty,priority"`
	Category string `json:"category" yaml:"category" validate:"omitempty,category"`
	Status   string `json:"status" yaml:"status" validate:"omitempty,status"`

	Reminder       bool   `json:"reminder" yaml:"reminder"`
	ReminderOffset string `json:"reminderOffset" yaml:"reminderOffset" validate:"omitempty,offset"`

	Color string `json:"color" yaml:"color"`
}

func (c *Candidate) clean() {
	c.Title = strings.TrimSpace(c.Title)
	c.Kind = strings.ToLower(strings.TrimSpace(c.Kind))
	c.Date = strings.TrimSpace(c.Date)
	c.StartTime = strings.TrimSpace(c.StartTime)
	c.EndTime = strings.TrimSpace(c.EndTime)
	c.Location = strings.TrimSpace(c.Location)
	c.Department = strings.TrimSpace(c.Department)
	c.RecurrencePattern = strings.ToLower(strings.TrimSpace(c.RecurrencePattern))
	c.Priority = strings.ToLower(strings.TrimSpace(c.Priority))
	c.Category = strings.ToLower(strings.TrimSpace(c.Category))
	c.Status = strings.ToLower(strings.TrimSpace(c.Status))
	c.ReminderOffset = strings.ToLower(strings.TrimSpace(c.ReminderOffset))
}

// NewEvent validates c and builds a normalized event with the given id.
// Missing title, date, start or end time are reported, never defaulted.
func NewEvent(id string, c Candidate) (model.Event, error) {
	c.clean()
	if err := check(c); err != nil {
		return model.Event{}, err
	}

	// check has already proved these parse.
	date, _ := model.ParseDate(c.Date)
	start, _ := model.ParseTimeOfDay(c.StartTime)
	end, _ := model.ParseTimeOfDay(c.EndTime)

	ev := model.Event{
		ID:                id,
		Title:             c.Title,
		Kind:              model.Kind(c.Kind),
		Date:              date,
		StartTime:         start,
		EndTime:           end,
		Location:          c.Location,
		Department:        c.Department,
		Description:       strings.TrimSpace(c.Description),
		Attendees:         append([]string{}, c.Attendees...),
		Recurring:         c.Recurring,
		RecurrencePattern: model.RecurrencePattern(c.RecurrencePattern),
		Priority:          model.Priority(c.Priority),
		Category:          model.Category(c.Category),
		Status:            model.Status(c.Status),
		Reminder:          c.Reminder,
		ReminderOffset:    model.ReminderOffset(c.ReminderOffset),
		Color:             strings.TrimSpace(c.Color),
	}
	Normalize(&ev)
	return ev, nil
}

// Normalize fills optional fields with their defaults and clears settings
// that do not apply (a pattern on a one-off event, an offset without a
// reminder).
func Normalize(ev *model.Event) {
	ev.Title = strings.TrimSpace(ev.Title)
	if strings.TrimSpace(ev.Location) == "" {
		ev.Location = model.DefaultLocation
	}
	if ev.Attendees == nil {
		ev.Attendees = []string{}
	}
	if ev.Kind == "" {
		ev.Kind = model.KindOther
	}
	if ev.Priority == "" {
		ev.Priority = model.PriorityMedium
	}
	if ev.Category == "" {
		ev.Category = model.CategoryOther
	}
	if ev.Status == "" {
		ev.Status = model.StatusScheduled
	}
	if !ev.Recurring {
		ev.RecurrencePattern = ""
	}
	if !ev.Reminder {
		ev.ReminderOffset = ""
	}
}

// Patch is a partial edit. Nil fields are left unchanged.
type Patch struct {
	Title       *string          `json:"title,omitempty"`
	Kind        *model.Kind      `json:"kind,omitempty"`
	Date        *model.Date      `json:"date,omitempty"`
	StartTime   *model.TimeOfDay `json:"startTime,omitempty"`
	EndTime     *model.TimeOfDay `json:"endTime,omitempty"`
	Location    *string          `json:"location,omitempty"`
	Department  *string          `json:"department,omitempty"`
	Description *string          `json:"description,omitempty"`
	Attendees   *[]string        `json:"attendees,omitempty"`

	Recurring         *bool                    `json:"recurring,omitempty"`
	RecurrencePattern *model.RecurrencePattern `json:"recurrencePattern,omitempty"`

	Priority *model.Priority `json:"priority,omitempty"`
	Category *model.Category `json:"category,omitempty"`
	Status   *model.Status   `json:"status,omitempty"`

	Reminder       *bool                 `json:"reminder,omitempty"`
	ReminderOffset *model.ReminderOffset `json:"reminderOffset,omitempty"`

	Color *string `json:"color,omitempty"`
}

// Apply returns a copy of ev with the patch applied. The result is not
// validated and the status change is not checked; see EditEvent.
func (p Patch) Apply(ev model.Event) model.Event {
	out := ev.Clone()
	set(&out.Title, p.Title)
	set(&out.Kind, p.Kind)
	set(&out.Date, p.Date)
	set(&out.StartTime, p.StartTime)
	set(&out.EndTime, p.EndTime)
	set(&out.Location, p.Location)
	set(&out.Department, p.Department)
	set(&out.Description, p.Description)
	if p.Attendees != nil {
		out.Attendees = append([]string{}, (*p.Attendees)...)
	}
	set(&out.Recurring, p.Recurring)
	set(&out.RecurrencePattern, p.RecurrencePattern)
	set(&out.Priority, p.Priority)
	set(&out.Category, p.Category)
	set(&out.Status, p.Status)
	set(&out.Reminder, p.Reminder)
	set(&out.ReminderOffset, p.ReminderOffset)
	set(&out.Color, p.Color)
	return out
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
