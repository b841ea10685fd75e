package schedule

import (
	"slices"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
)

// newID generates ids for added events. Tests replace it.
var newID = uuid.NewString

// Collection is an immutable set of events with unique ids. Mutations
// return a new Collection and leave the receiver untouched.
type Collection struct {
	events []model.Event
}

// NewCollection builds a collection from already-formed events, for example
// seed data. Every event is normalized and validated and ids must be unique.
func NewCollection(events ...model.Event) (Collection, error) {
	out := make([]model.Event, 0, len(events))
	seen := make(map[string]bool, len(events))
	for _, ev := range events {
		ev = ev.Clone()
		if ev.ID == "" {
			ev.ID = newID()
		}
		if seen[ev.ID] {
			return Collection{}, errors.Wrapf(ErrDuplicateID, "id %q", ev.ID)
		}
		Normalize(&ev)
		if err := Validate(ev); err != nil {
			return Collection{}, errors.Wrapf(err, "event %q", ev.ID)
		}
		seen[ev.ID] = true
		out = append(out, ev)
	}
	return Collection{events: out}, nil
}

func (c Collection) Len() int { return len(c.events) }

// Events returns a copy of the events in insertion order.
func (c Collection) Events() []model.Event {
	out := make([]model.Event, len(c.events))
	for i, ev := range c.events {
		out[i] = ev.Clone()
	}
	return out
}

func (c Collection) Get(id string) (model.Event, bool) {
	if i := c.index(id); i >= 0 {
		return c.events[i].Clone(), true
	}
	return model.Event{}, false
}

func (c Collection) index(id string) int {
	return slices.IndexFunc(c.events, func(ev model.Event) bool { return ev.ID == id })
}

// replace returns a copy of c with the event at i swapped for ev.
func (c Collection) replace(i int, ev model.Event) Collection {
	events := slices.Clone(c.events)
	events[i] = ev
	return Collection{events: events}
}

// AddEvent validates cand and appends it under a fresh id with status
// scheduled unless another status was given.
func AddEvent(c Collection, cand Candidate) (Collection, model.Event, error) {
	id := newID()
	for c.index(id) >= 0 {
		id = newID()
	}
	ev, err := NewEvent(id, cand)
	if err != nil {
		return c, model.Event{}, err
	}
	events := append(slices.Clone(c.events), ev)
	return Collection{events: events}, ev.Clone(), nil
}

// EditEvent applies p to the event with the given id. The edited event must
// still validate, and a status change out of a terminal state is refused.
func EditEvent(c Collection, id string, p Patch) (Collection, model.Event, error) {
	i := c.index(id)
	if i < 0 {
		return c, model.Event{}, errors.Wrapf(ErrNotFound, "id %q", id)
	}
	old := c.events[i]
	if p.Status != nil && !old.Status.CanTransitionTo(*p.Status) {
		return c, model.Event{}, errors.Wrapf(ErrInvalidTransition, "%s -> %s", old.Status, *p.Status)
	}

	ev := p.Apply(old)
	Normalize(&ev)
	if err := Validate(ev); err != nil {
		return c, model.Event{}, err
	}
	return c.replace(i, ev), ev.Clone(), nil
}

// DeleteEvent removes the event with the given id.
func DeleteEvent(c Collection, id string) (Collection, error) {
	i := c.index(id)
	if i < 0 {
		return c, errors.Wrapf(ErrNotFound, "id %q", id)
	}
	return Collection{events: slices.Delete(slices.Clone(c.events), i, i+1)}, nil
}

// RescheduleEvent moves the event to newDate and reports the conflicts the
// move creates. Conflicts are advisory: the move is always applied.
func RescheduleEvent(c Collection, id string, newDate model.Date) (Collection, model.Event, []Conflict, error) {
	i := c.index(id)
	if i < 0 {
		return c, model.Event{}, nil, errors.Wrapf(ErrNotFound, "id %q", id)
	}
	if newDate.IsZero() {
		return c, model.Event{}, nil, newValidationError(FieldError{Field: "date", Error: requiredText})
	}
	ev := Reschedule(c.events[i], newDate)
	next := c.replace(i, ev)
	return next, ev.Clone(), DetectConflicts(ev, next.events), nil
}
