package store

import (
	"sync"

	"github.com/pkg/errors"

	appLog "github.com/kranthikiran885366/faculty-dashboard-sub000/internal/log"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/schedule"
)

// ErrConflict is returned by Reschedule under the reject policy.
var ErrConflict = errors.New("reschedule creates conflicts")

// Policy decides what Reschedule does with the conflicts a move creates.
type Policy string

const (
	// PolicyWarn applies the move and reports the conflicts.
	PolicyWarn Policy = "warn"
	// PolicyReject leaves the schedule unchanged when the move conflicts.
	PolicyReject Policy = "reject"
)

// Store owns the authoritative event collection of the process. Readers
// get copies; every mutation replaces the collection under the write lock.
type Store struct {
	mu     sync.RWMutex
	events schedule.Collection
	policy Policy
}

// New returns a store holding c.
func New(c schedule.Collection, policy Policy) *Store {
	if policy != PolicyReject {
		policy = PolicyWarn
	}
	return &Store{events: c, policy: policy}
}

// Snapshot returns the current collection. It is immutable, so callers may
// keep it while the store moves on.
func (s *Store) Snapshot() schedule.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events
}

// Events returns copies of every event in insertion order.
func (s *Store) Events() []model.Event {
	return s.Snapshot().Events()
}

// List returns the events matching c in insertion order.
func (s *Store) List(c schedule.Criteria) []model.Event {
	return schedule.FilterEvents(s.Events(), c)
}

func (s *Store) Get(id string) (model.Event, error) {
	ev, ok := s.Snapshot().Get(id)
	if !ok {
		return model.Event{}, errors.Wrapf(schedule.ErrNotFound, "id %q", id)
	}
	return ev, nil
}

func (s *Store) Add(cand schedule.Candidate) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ev, err := schedule.AddEvent(s.events, cand)
	if err != nil {
		return model.Event{}, err
	}
	s.events = next
	appLog.Info("event added", "id", ev.ID, "title", ev.Title, "date", ev.Date)
	return ev, nil
}

func (s *Store) Edit(id string, p schedule.Patch) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ev, err := schedule.EditEvent(s.events, id, p)
	if err != nil {
		return model.Event{}, err
	}
	s.events = next
	appLog.Info("event edited", "id", ev.ID, "status", ev.Status)
	return ev, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := schedule.DeleteEvent(s.events, id)
	if err != nil {
		return err
	}
	s.events = next
	appLog.Info("event deleted", "id", id)
	return nil
}

// Reschedule moves an event to a new date. The conflicts of the move are
// returned in both policies; under PolicyReject a conflicting move is not
// applied, the stored event is returned unchanged and the error wraps
// ErrConflict.
func (s *Store) Reschedule(id string, date model.Date) (model.Event, []schedule.Conflict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ev, conflicts, err := schedule.RescheduleEvent(s.events, id, date)
	if err != nil {
		return model.Event{}, nil, err
	}
	if len(conflicts) > 0 && s.policy == PolicyReject {
		stored, _ := s.events.Get(id)
		return stored, conflicts, errors.Wrapf(ErrConflict, "%d conflicting events", len(conflicts))
	}
	s.events = next
	appLog.Info("event rescheduled", "id", id, "date", date, "conflicts", len(conflicts))
	return ev, conflicts, nil
}

// Conflicts lists the events ev currently clashes with.
func (s *Store) Conflicts(id string) ([]schedule.Conflict, error) {
	c := s.Snapshot()
	ev, ok := c.Get(id)
	if !ok {
		return nil, errors.Wrapf(schedule.ErrNotFound, "id %q", id)
	}
	return schedule.DetectConflicts(ev, c.Events()), nil
}

// Import adds every candidate that validates. Rejected candidates are
// logged and returned as errors; they do not stop the import.
func (s *Store) Import(cands []schedule.Candidate) (int, []error) {
	var (
		added int
		errs  []error
	)
	for _, c := range cands {
		if _, err := s.Add(c); err != nil {
			appLog.Warn("import: event rejected", "title", c.Title, "date", c.Date, "reason", err.Error())
			errs = append(errs, errors.Wrapf(err, "import %q", c.Title))
			continue
		}
		added++
	}
	return added, errs
}

// IsConflict reports whether err was caused by a rejected conflicting move.
func IsConflict(err error) bool {
	return errors.Cause(err) == ErrConflict
}
