package model

// DefaultLocation is used when an event is created without a location.
const DefaultLocation = "TBD"

// Event is a schedulable item. For recurring events Date is the anchor
// (first) occurrence; later occurrences are derived on demand and never
// stored.
type Event struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title" validate:"required"`
	Kind  Kind   `json:"kind" yaml:"kind" validate:"required,kind"`

	Date      Date      `json:"date" yaml:"date" validate:"required"`
	StartTime TimeOfDay `json:"startTime" yaml:"startTime" validate:"min=0,max=1439"`
	EndTime   TimeOfDay `json:"endTime" yaml:"endTime" validate:"min=0,max=1439,gtefield=StartTime"`

	Location    string   `json:"location" yaml:"location"`
	Department  string   `json:"department,omitempty" yaml:"department,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Attendees   []string `json:"attendees" yaml:"attendees"`

	Recurring         bool              `json:"recurring" yaml:"recurring"`
	RecurrencePattern RecurrencePattern `json:"recurrencePattern,omitempty" yaml:"recurrencePattern,omitempty" validate:"omitempty,pattern"`

	Priority Priority `json:"priority" yaml:"priority" validate:"required,priority"`
	Category Category `json:"category" yaml:"category" validate:"required,category"`
	Status   Status   `json:"status" yaml:"status" validate:"required,status"`

	Reminder       bool           `json:"reminder" yaml:"reminder"`
	ReminderOffset ReminderOffset `json:"reminderOffset,omitempty" yaml:"reminderOffset,omitempty" validate:"omitempty,offset"`

	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Clone returns a copy of e that shares no slices with it.
func (e Event) Clone() Event {
	out := e
	out.Attendees = append([]string{}, e.Attendees...)
	return out
}

// Duration returns the scheduled length in minutes.
func (e Event) Duration() int {
	return int(e.EndTime - e.StartTime)
}
