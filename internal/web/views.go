package web

import (
	"io"
	"net/http"
	"strconv"

	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/ics"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/model"
	"github.com/kranthikiran885366/faculty-dashboard-sub000/internal/schedule"
)

// dayDTO is one cell of a week or month view.
type dayDTO struct {
	Date    model.Date    `json:"date"`
	Weekday string        `json:"weekday"`
	Today   bool          `json:"today"`
	Events  []model.Event `json:"events"`
}

type weekResponse struct {
	Start model.Date `json:"start"`
	End   model.Date `json:"end"`
	Days  []dayDTO   `json:"days"`
}

type monthResponse struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Weeks [][]dayDTO `json:"weeks"`
}

// viewParams reads the anchor date (?date=, default today), an optional
// ?dir=prev|next and the filter criteria shared by the calendar views.
func (s *Server) viewParams(w http.ResponseWriter, r *http.Request) (model.Date, schedule.Direction, schedule.Criteria, bool) {
	q := r.URL.Query()
	c, err := schedule.ParseCriteria(q)
	if err != nil {
		writeScheduleError(w, err)
		return model.Date{}, 0, c, false
	}
	// The anchor is not a filter here.
	c.Date = model.Date{}

	anchor, err := dateParam(q, "date", s.today())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return model.Date{}, 0, c, false
	}

	var dir schedule.Direction
	if raw := q.Get("dir"); raw != "" {
		if dir, err = schedule.ParseDirection(raw); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return model.Date{}, 0, c, false
		}
	}
	return anchor, dir, c, true
}

// handleWeek returns the seven days of the week containing ?date=, moved
// one week by ?dir=, with each day's events in day-view order.
func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	anchor, dir, c, ok := s.viewParams(w, r)
	if !ok {
		return
	}
	week := schedule.WeekOfStarting(anchor, s.cfg.FirstWeekday())
	if dir != 0 {
		week = schedule.NavigateWeek(week, dir)
	}

	byDay := s.occurrencesByDay(week.Start(), week.End(), c)
	writeJSON(w, http.StatusOK, weekResponse{
		Start: week.Start(),
		End:   week.End(),
		Days:  s.days(week, byDay),
	})
}

// handleMonth returns the month grid of ?date=, moved one month by ?dir=.
func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	anchor, dir, c, ok := s.viewParams(w, r)
	if !ok {
		return
	}
	if dir != 0 {
		anchor = schedule.NavigateMonth(anchor, int(dir))
	}

	grid := schedule.MonthGrid(anchor, s.cfg.FirstWeekday())
	byDay := s.occurrencesByDay(grid[0].Start(), grid[len(grid)-1].End(), c)

	resp := monthResponse{Year: anchor.Year(), Month: int(anchor.Month())}
	for _, week := range grid {
		resp.Weeks = append(resp.Weeks, s.days(week, byDay))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) occurrencesByDay(from, to model.Date, c schedule.Criteria) map[model.Date][]model.Event {
	occs := schedule.FilterOccurrences(schedule.ExpandCollection(s.store.Events(), from, to), c)
	byDay := make(map[model.Date][]model.Event)
	for _, o := range occs {
		byDay[o.Date] = append(byDay[o.Date], o.Event)
	}
	return byDay
}

func (s *Server) days(week schedule.Week, byDay map[model.Date][]model.Event) []dayDTO {
	today := s.today()
	out := make([]dayDTO, 0, len(week))
	for _, d := range week {
		out = append(out, dayDTO{
			Date:    d,
			Weekday: d.Weekday().String(),
			Today:   d == today,
			Events:  nonNil(byDay[d]),
		})
	}
	return out
}

// handleReminders lists the reminders of every occurrence in [from, to],
// by default the next seven days.
func (s *Server) handleReminders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	today := s.today()
	from, err := dateParam(q, "from", today)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := dateParam(q, "to", from.AddDays(7))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "to is before from")
		return
	}

	rems := schedule.UpcomingReminders(s.store.Events(), from, to, s.now(), s.loc)
	writeJSON(w, http.StatusOK, struct {
		From      model.Date          `json:"from"`
		To        model.Date          `json:"to"`
		Reminders []schedule.Reminder `json:"reminders"`
	}{from, to, nonNil(rems)})
}

// handleExport serves the (optionally filtered) schedule as iCalendar.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	c, err := schedule.ParseCriteria(r.URL.Query())
	if err != nil {
		writeScheduleError(w, err)
		return
	}
	body := ics.Export(s.store.List(c), s.loc, s.now())

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="faculty-schedule.ics"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}

type importResponse struct {
	Added    int      `json:"added"`
	Rejected []string `json:"rejected"`
}

// handleImport merges the events of an uploaded .ics body into the schedule.
// Events that do not validate are listed in the response and skipped.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	cands, err := ics.ParseEvents(ics.Source{ID: "upload"}, body, s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	added, errs := s.store.Import(cands)
	resp := importResponse{Added: added, Rejected: []string{}}
	for _, err := range errs {
		resp.Rejected = append(resp.Rejected, err.Error())
	}
	writeJSON(w, http.StatusOK, resp)
}
