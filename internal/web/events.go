package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	appLog "github.com/kranthikiran885366/faculty-dashboard-sub000/internal/log"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/schedule"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/store"
)

type eventsResponse struct {
	Events []model.Event `json:"events"`
}

type occurrencesResponse struct {
	From        model.Date            `json:"from"`
	To          model.Date            `json:"to"`
	Occurrences []schedule.Occurrence `json:"occurrences"`
	// Truncated lists events expanded only up to schedule.MaxOccurrences.
	Truncated []string `json:"truncated"`
}

// eventResponse is returned by every mutation. Conflicts are advisory.
type eventResponse struct {
	Event     model.Event         `json:"event"`
	Conflicts []schedule.Conflict `json:"conflicts"`
}

type rescheduleRequest struct {
	Date model.Date `json:"date"`
}

type rescheduleRejected struct {
	Error     string              `json:"error"`
	Conflicts []schedule.Conflict `json:"conflicts"`
}

// handleListEvents lists events matching the filter parameters understood
// by schedule.ParseCriteria.
//
// GET /api/events?q=&kind=&category=&priority=&status=&department=&location=&date=
//   - date:      events taking place that day, ordered for a day view
//   - from, to:  expand into occurrences over [from, to] instead
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, err := schedule.ParseCriteria(q)
	if err != nil {
		writeScheduleError(w, err)
		return
	}

	if q.Has("from") || q.Has("to") {
		from, to, err := s.rangeParams(q, s.today(), 6)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		events := s.store.Events()
		occs := schedule.ExpandCollection(events, from, to)
		writeJSON(w, http.StatusOK, occurrencesResponse{
			From:        from,
			To:          to,
			Occurrences: schedule.FilterOccurrences(occs, c),
			Truncated:   nonNil(schedule.TruncatedIDs(schedule.FilterEvents(events, c), from, to)),
		})
		return
	}

	events := s.store.List(c)
	if !c.Date.IsZero() {
		events = schedule.SortForDay(events)
	}
	appLog.Debug("api events request", "matched", len(events), "query", r.URL.RawQuery)
	writeJSON(w, http.StatusOK, eventsResponse{Events: events})
}

func (s *Server) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	var cand schedule.Candidate
	if err := decodeJSON(w, r, &cand); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ev, err := s.store.Add(cand)
	if err != nil {
		writeScheduleError(w, err)
		return
	}
	s.writeEvent(w, http.StatusCreated, ev)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		writeScheduleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleEditEvent(w http.ResponseWriter, r *http.Request) {
	var p schedule.Patch
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ev, err := s.store.Edit(r.PathValue("id"), p)
	if err != nil {
		writeScheduleError(w, err)
		return
	}
	s.writeEvent(w, http.StatusOK, ev)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.PathValue("id")); err != nil {
		writeScheduleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReschedule moves an event to the date in the body:
//
//	POST /api/events/{id}/reschedule
//	{"date": "2026-10-21"}
//
// Under the reject conflict policy a clashing move answers 409 with the
// conflicts and leaves the event where it was.
func (s *Server) handleReschedule(w http.ResponseWriter, r *http.Request) {
	var req rescheduleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ev, conflicts, err := s.store.Reschedule(r.PathValue("id"), req.Date)
	if store.IsConflict(err) {
		writeJSON(w, http.StatusConflict, rescheduleRejected{Error: err.Error(), Conflicts: conflicts})
		return
	}
	if err != nil {
		writeScheduleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eventResponse{Event: ev, Conflicts: nonNil(conflicts)})
}

// handleOccurrences expands one event over [from, to], by default the
// current week.
func (s *Server) handleOccurrences(w http.ResponseWriter, r *http.Request) {
	ev, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		writeScheduleError(w, err)
		return
	}
	from, to, err := s.rangeParams(r.URL.Query(), s.today(), 6)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dates := schedule.ExpandOccurrences(ev, from, to)
	if dates == nil {
		dates = []model.Date{}
	}
	writeJSON(w, http.StatusOK, struct {
		Event     model.Event  `json:"event"`
		From      model.Date   `json:"from"`
		To        model.Date   `json:"to"`
		Dates     []model.Date `json:"dates"`
		Truncated bool         `json:"truncated"`
	}{ev, from, to, dates, schedule.Truncated(ev, from, to)})
}

func (s *Server) handleConflicts(w http.ResponseWriter, r *http.Request) {
	conflicts, err := s.store.Conflicts(r.PathValue("id"))
	if err != nil {
		writeScheduleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Conflicts []schedule.Conflict `json:"conflicts"`
	}{nonNil(conflicts)})
}

// handleReminder returns the reminder of one occurrence: ?date= or, by
// default, the next occurrence from today on.
func (s *Server) handleReminder(w http.ResponseWriter, r *http.Request) {
	ev, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		writeScheduleError(w, err)
		return
	}

	occ, err := dateParam(r.URL.Query(), "date", model.Date{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if occ.IsZero() {
		today := s.today()
		for d := range schedule.Occurrences(ev, today, today.AddDays(schedule.ConflictHorizon)) {
			occ = d
			break
		}
		if occ.IsZero() {
			writeError(w, http.StatusNotFound, "event has no upcoming occurrence")
			return
		}
	} else if !schedule.OccursOn(ev, occ) {
		writeError(w, http.StatusNotFound, "event does not take place on "+occ.String())
		return
	}

	rem, err := schedule.ReminderFor(ev, occ, s.now(), s.loc)
	if err != nil {
		writeScheduleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rem)
}

func (s *Server) writeEvent(w http.ResponseWriter, status int, ev model.Event) {
	conflicts, _ := s.store.Conflicts(ev.ID)
	writeJSON(w, status, eventResponse{Event: ev, Conflicts: nonNil(conflicts)})
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

// dateParam reads a YYYY-MM-DD query parameter, def when absent.
func dateParam(q url.Values, key string, def model.Date) (model.Date, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return model.Date{}, errors.Wrapf(err, "query %s", key)
	}
	return d, nil
}

// rangeParams reads the closed window [from, to]. A missing bound is span
// days away from the other; with neither, the window starts at the first
// day of the week containing def.
func (s *Server) rangeParams(q url.Values, def model.Date, span int) (model.Date, model.Date, error) {
	from, err := dateParam(q, "from", model.Date{})
	if err != nil {
		return model.Date{}, model.Date{}, err
	}
	to, err := dateParam(q, "to", model.Date{})
	if err != nil {
		return model.Date{}, model.Date{}, err
	}

	switch {
	case from.IsZero() && to.IsZero():
		from = schedule.WeekOfStarting(def, s.cfg.FirstWeekday()).Start()
		to = from.AddDays(span)
	case from.IsZero():
		from = to.AddDays(-span)
	case to.IsZero():
		to = from.AddDays(span)
	}
	if to.Before(from) {
		return model.Date{}, model.Date{}, errors.Errorf("to (%s) is before from (%s)", to, from)
	}
	return from, to, nil
}
