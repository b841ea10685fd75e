package model

import (
	"fmt"
	"slices"
	"time"
)

// Kind is the event type used for icon/colour selection and filtering.
type Kind string

const (
	KindClass       Kind = "class"
	KindMeeting     Kind = "meeting"
	KindOfficeHours Kind = "office-hours"
	KindResearch    Kind = "research"
	KindExam        Kind = "exam"
	KindDeadline    Kind = "deadline"
	KindWorkshop    Kind = "workshop"
	KindOther       Kind = "other"
)

var Kinds = []Kind{KindClass, KindMeeting, KindOfficeHours, KindResearch, KindExam, KindDeadline, KindWorkshop, KindOther}

func (k Kind) Valid() bool { return slices.Contains(Kinds, k) }

func (k *Kind) UnmarshalText(b []byte) error { return parseInto(k, Kinds, "kind", b) }

// Category is orthogonal to Kind and used for secondary filtering.
type Category string

const (
	CategoryAcademic       Category = "academic"
	CategoryAdministrative Category = "administrative"
	CategoryResearch       Category = "research"
	CategoryPersonal       Category = "personal"
	CategoryOther          Category = "other"
)

var Categories = []Category{CategoryAcademic, CategoryAdministrative, CategoryResearch, CategoryPersonal, CategoryOther}

func (c Category) Valid() bool { return slices.Contains(Categories, c) }

func (c *Category) UnmarshalText(b []byte) error { return parseInto(c, Categories, "category", b) }

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool { return slices.Contains(Priorities, p) }

// Rank orders priorities for sorting: high sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

func (p *Priority) UnmarshalText(b []byte) error { return parseInto(p, Priorities, "priority", b) }

// Status is the event lifecycle state.
//
//	scheduled -> in-progress -> completed
//	scheduled -> cancelled, in-progress -> cancelled
//
// completed and cancelled are terminal.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var Statuses = []Status{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool { return slices.Contains(Statuses, s) }

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether an explicit status change from s to next is
// allowed. Staying in the same state is always allowed; leaving a terminal
// state never is.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	return !s.Terminal()
}

func (s *Status) UnmarshalText(b []byte) error { return parseInto(s, Statuses, "status", b) }

type RecurrencePattern string

const (
	RecurDaily   RecurrencePattern = "daily"
	RecurWeekly  RecurrencePattern = "weekly"
	RecurMonthly RecurrencePattern = "monthly"
)

var RecurrencePatterns = []RecurrencePattern{RecurDaily, RecurWeekly, RecurMonthly}

func (r RecurrencePattern) Valid() bool { return slices.Contains(RecurrencePatterns, r) }

func (r *RecurrencePattern) UnmarshalText(b []byte) error {
	return parseInto(r, RecurrencePatterns, "recurrence pattern", b)
}

// ReminderOffset is how long before an occurrence starts its reminder fires.
type ReminderOffset string

const (
	Remind5Min  ReminderOffset = "5min"
	Remind15Min ReminderOffset = "15min"
	Remind30Min ReminderOffset = "30min"
	Remind1Hour ReminderOffset = "1hour"
	Remind1Day  ReminderOffset = "1day"
)

var ReminderOffsets = []ReminderOffset{Remind5Min, Remind15Min, Remind30Min, Remind1Hour, Remind1Day}

func (o ReminderOffset) Valid() bool { return slices.Contains(ReminderOffsets, o) }

func (o ReminderOffset) Duration() time.Duration {
	switch o {
	case Remind5Min:
		return 5 * time.Minute
	case Remind15Min:
		return 15 * time.Minute
	case Remind30Min:
		return 30 * time.Minute
	case Remind1Hour:
		return time.Hour
	case Remind1Day:
		return 24 * time.Hour
	default:
		return 0
	}
}

func (o *ReminderOffset) UnmarshalText(b []byte) error {
	return parseInto(o, ReminderOffsets, "reminder offset", b)
}

// parseInto assigns b to dst when it names a member of set. An empty value
// leaves dst at its zero value.
func parseInto[T ~string](dst *T, set []T, name string, b []byte) error {
	v := T(b)
	if v == "" {
		*dst = v
		return nil
	}
	if !slices.Contains(set, v) {
		return fmt.Errorf("unknown %s %q", name, string(b))
	}
	*dst = v
	return nil
}
